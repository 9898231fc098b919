package ui

import (
	"strings"

	"lia/internal/models"
	"lia/internal/styles"
)

// RefreshMessages re-renders the whole log from the store. The store is the
// source of truth; m.Messages is only its styled projection.
func (m *Model) RefreshMessages() {
	msgs := m.Store.Messages()
	rendered := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		if msg.Sender == models.SenderAssistant {
			rendered = append(rendered, m.FormatAssistantMessage(msg.Text))
		} else {
			rendered = append(rendered, FormatUserMessage(msg.Text))
		}
	}
	m.Messages = rendered
	m.UpdateViewport()
}

func FormatUserMessage(content string) string {
	label := styles.UserLabelStyle.Render(models.SenderUser)
	body := styles.UserMsgStyle.Render(content)
	return label + "\n" + body
}

func (m *Model) FormatAssistantMessage(content string) string {
	display := content
	if m.Renderer != nil {
		if rendered, err := m.Renderer.Render(content); err == nil {
			display = strings.TrimSpace(rendered)
		}
	}
	label := styles.AssistantLabelStyle.Render(models.SenderAssistant)
	body := styles.AssistantMsgStyle.Render(display)
	return label + "\n" + body
}

// toolRegistry is the ordered lookup list handed to the command parser:
// the user's own tools first, then shared concierge tools.
func (m *Model) toolRegistry() []models.Tool {
	registry := make([]models.Tool, 0, len(m.CustomTools)+len(m.ConciergeTools))
	registry = append(registry, m.CustomTools...)
	registry = append(registry, m.ConciergeTools...)
	return registry
}

func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
