package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lia/internal/speech"
	"lia/internal/styles"
)

func (m *Model) GetWelcomeScreen(width, height int) string {
	greeting := styles.WelcomeStyle.Render(WelcomeGreeting)
	hint := styles.WelcomeSubtitleStyle.Render(WelcomeHint)

	content := lipgloss.JoinVertical(lipgloss.Center, greeting, "", hint)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) UpdateViewport() {
	if len(m.Messages) == 0 && !m.Sending {
		m.Viewport.SetContent(m.GetWelcomeScreen(m.Viewport.Width, m.Viewport.Height))
		return
	}

	content := strings.Join(m.Messages, "\n\n")
	if m.Sending {
		loadingMsg := fmt.Sprintf("%s\n%s Thinking...",
			styles.AssistantLabelStyle.Render("LIA"), m.Spinner.View())
		if content != "" {
			content = content + "\n\n" + loadingMsg
		} else {
			content = loadingMsg
		}
	}
	m.Viewport.SetContent(content)
	m.Viewport.GotoBottom()
}

func (m *Model) RenderToolManager() string {
	title := styles.ModalTitleStyle.Render("कस्टम टूल्स प्रबंधित करें")

	var sections []string

	if m.ToolFormOpen {
		formTitle := styles.ModalHeaderStyle.Render("नया टूल जोड़ें")
		labels := []string{"टूल का नाम *", "विवरण", "URL टेम्पलेट *"}
		inputs := []string{m.ToolNameInput.View(), m.ToolDescInput.View(), m.ToolURLInput.View()}

		var rows []string
		for i := range labels {
			label := styles.ToolDetailStyle.Render(labels[i])
			if i == m.ToolFormFocus {
				label = styles.ToolNameStyle.Render(labels[i])
			}
			rows = append(rows, styles.ModalItemStyle.Render(label+"\n"+inputs[i]))
		}
		if m.ToolFormErr != "" {
			rows = append(rows, styles.ModalItemStyle.Render(styles.ErrorStyle.Render(m.ToolFormErr)))
		}
		rows = append(rows, styles.ModalItemStyle.Render(
			styles.ToolDetailStyle.Render("Use {query} as a placeholder for the search term")))

		sections = append(sections, formTitle, lipgloss.JoinVertical(lipgloss.Left, rows...))
	} else {
		listTitle := styles.ModalHeaderStyle.Render("आपके टूल्स")
		var rows []string
		if len(m.CustomTools) == 0 {
			rows = append(rows, styles.ModalItemStyle.Render(
				styles.ToolDetailStyle.Render("कोई कस्टम टूल नहीं। ऊपर एक जोड़ें!")))
		}
		for _, tool := range m.CustomTools {
			name := styles.ToolNameStyle.Render(tool.Name)
			detail := styles.ToolDetailStyle.Render(TruncateRunes(tool.URLTemplate, styles.ContentWidth-4))
			rows = append(rows, styles.ModalItemStyle.Render(name+"\n"+detail))
		}
		sections = append(sections, listTitle, lipgloss.JoinVertical(lipgloss.Left, rows...))

		if len(m.ConciergeTools) > 0 {
			conciergeTitle := styles.ModalHeaderStyle.Render("Concierge tools")
			var conciergeRows []string
			for _, tool := range m.ConciergeTools {
				name := styles.ToolNameStyle.Render(tool.Name)
				detail := styles.ToolDetailStyle.Render(TruncateRunes(tool.Description, styles.ContentWidth-4))
				conciergeRows = append(conciergeRows, styles.ModalItemStyle.Render(name+"\n"+detail))
			}
			sections = append(sections, conciergeTitle, lipgloss.JoinVertical(lipgloss.Left, conciergeRows...))
		}

		if m.Notice != "" {
			sections = append(sections, styles.ModalItemStyle.Render(m.Notice))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, append([]string{title}, sections...)...)

	hintText := "a: add tool • Esc: close"
	if m.ToolFormOpen {
		hintText = "Tab: next field • Enter: save • Esc: back"
	}
	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render(hintText)

	return lipgloss.JoinVertical(lipgloss.Left, content, hint)
}

func (m *Model) RenderSettings() string {
	title := styles.ModalTitleStyle.Render("सेटिंग्स")

	st := m.Settings.Get()

	ttsValue := "off"
	if st.TTSEnabled {
		ttsValue = "on"
	}
	voiceValue := "—"
	if m.Synthesizer.Capability() == speech.Unavailable {
		voiceValue = "आवाज़ आउटपुट समर्थित नहीं है"
	} else if v := m.Synthesizer.SelectedVoice(); v != nil {
		voiceValue = fmt.Sprintf("%s (%s)", v.Name, v.Lang)
	}

	items := []struct {
		label string
		value string
	}{
		{"आवाज़ सक्षम करें", ttsValue},
		{"आवाज़ चुनें", voiceValue},
		{"पहचान भाषा", st.RecognitionLanguage},
	}

	var rows []string
	for i, item := range items {
		line := fmt.Sprintf("%s  %s", item.label, styles.ToolNameStyle.Render(item.value))
		if i == m.SettingsSelectedIdx {
			rows = append(rows, styles.ModalSelectedStyle.Render(line))
		} else {
			rows = append(rows, styles.ModalItemStyle.Render(line))
		}
	}
	rows = append(rows, styles.ModalItemStyle.Render(
		styles.ToolDetailStyle.Render("पहचान भाषा अगली बार शुरू होने पर लागू होगी")))

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	content := lipgloss.JoinVertical(lipgloss.Left, title, body)

	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("↑/↓: navigate • ←/→: change • Esc: close")

	return lipgloss.JoinVertical(lipgloss.Left, content, hint)
}

func (m *Model) RenderShortcutsModal() string {
	title := styles.ModalTitleStyle.Render("Keyboard Shortcuts")

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send Message"},
		{"Ctrl+R", "Start/Stop Listening"},
		{"Ctrl+X", "Stop Speaking"},
		{"Ctrl+L", "Clear Conversation"},
		{"Ctrl+T", "Manage Custom Tools"},
		{"Ctrl+O", "Settings"},
		{"Ctrl+S", "View Shortcuts (this menu)"},
		{"Ctrl+C", "Quit Application"},
	}

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFCC80")).
		Bold(true).
		Width(12)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E0E0E0"))

	var items []string
	for _, s := range shortcuts {
		line := fmt.Sprintf("%s %s", keyStyle.Render(s.key), descStyle.Render(s.desc))
		items = append(items, styles.ModalItemStyle.Render(line))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title,
		lipgloss.JoinVertical(lipgloss.Left, items...))

	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("Esc/Enter: close")

	return lipgloss.JoinVertical(lipgloss.Left, content, hint)
}

func (m *Model) RenderProfileSetup() string {
	title := styles.ModalTitleStyle.Render("नमस्ते! मैं LIA हूँ")
	prompt := styles.ModalItemStyle.Render("What should I call you?")
	input := styles.ModalItemStyle.Render(m.ProfileInput.View())

	hint := lipgloss.NewStyle().
		Foreground(styles.HintColor).
		Width(styles.ContentWidth).
		PaddingTop(1).
		Render("Enter: save • Esc: skip")

	return lipgloss.JoinVertical(lipgloss.Left, title, prompt, input, hint)
}

func (m *Model) RenderPermissionGate() string {
	title := styles.ModalTitleStyle.Render(PermissionTitle)
	body := styles.ModalItemStyle.Render(PermissionBody)

	var rows []string
	rows = append(rows, body)
	if m.PermissionDenied {
		rows = append(rows, styles.ModalItemStyle.Render(styles.ErrorStyle.Render(PermissionDeniedMsg)))
	}

	action := PermissionGrant
	if m.PermissionDenied {
		action = PermissionRetry
	}
	rows = append(rows, styles.ModalItemStyle.Render(styles.ToolNameStyle.Render("Enter: "+action)))
	rows = append(rows, styles.ModalItemStyle.Render(styles.ToolDetailStyle.Render(PermissionSkipHint)))

	content := lipgloss.JoinVertical(lipgloss.Left, append([]string{title}, rows...)...)
	return content
}

func (m *Model) RenderBottomBar() string {
	var mic string
	switch {
	case m.Recognizer.Capability() == speech.Unavailable:
		mic = styles.ToolDetailStyle.Render("MIC OFF")
	case m.Listening:
		mic = styles.MicBadgeStyle.Render("● LISTENING")
	default:
		mic = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("MIC IDLE")
	}

	var speaker string
	switch {
	case m.Synthesizer.Capability() == speech.Unavailable || !m.Settings.Get().TTSEnabled:
		speaker = styles.ToolDetailStyle.Render("TTS OFF")
	case m.Speaking:
		speaker = styles.SpeakingBadgeStyle.Render("♪ SPEAKING")
	default:
		speaker = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("TTS READY")
	}

	mode := "LOCAL"
	if m.Session.Authenticated() && m.Session.Principal != "local" {
		mode = "REMOTE"
	}
	modeBadge := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#81D4FA")).
		Padding(0, 1).
		Render(mode)

	name := ""
	if m.Profile != nil && m.Profile.Name != "" {
		name = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B39DDB")).
			Render(TruncateRunes(m.Profile.Name, 20))
	}

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#555555")).
		Render("Help: ^S")

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, modeBadge, "  ", mic, "  ", speaker)
	if name != "" {
		leftSide = lipgloss.JoinHorizontal(lipgloss.Center, leftSide, "  ", name)
	}
	rightSide := help

	availableWidth := m.WindowWidth - lipgloss.Width(leftSide) - lipgloss.Width(rightSide) - 2
	if availableWidth < 0 {
		availableWidth = 0
	}
	spacer := strings.Repeat(" ", availableWidth)

	bar := lipgloss.JoinHorizontal(lipgloss.Center, leftSide, spacer, rightSide)

	return lipgloss.NewStyle().
		Width(m.WindowWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#333333")).
		Padding(0, 1).
		Render(bar)
}

func (m *Model) renderModal(body string) string {
	modal := styles.ModalStyle.Width(ModalWidth).Render(body)
	return lipgloss.Place(
		m.WindowWidth,
		m.WindowHeight,
		lipgloss.Center,
		lipgloss.Center,
		modal,
	)
}

func (m *Model) View() string {
	inputWidth := m.WindowWidth - 4
	inputBoxStyle := styles.InputBoxStyle
	if m.Listening {
		inputBoxStyle = styles.ListeningInputBoxStyle
	}
	inputBox := inputBoxStyle.Width(inputWidth).Render(m.TextInput.View())

	var statusLine string
	if m.Err != nil {
		statusLine = styles.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	}

	parts := []string{
		styles.TitleStyle.Render("LIA"),
		"",
		m.Viewport.View(),
		"",
	}
	if statusLine != "" {
		parts = append(parts, statusLine)
	}
	parts = append(parts, inputBox)

	chatContent := lipgloss.JoinVertical(lipgloss.Center, parts...)
	chatArea := lipgloss.PlaceHorizontal(m.WindowWidth, lipgloss.Center, chatContent)
	content := lipgloss.JoinVertical(lipgloss.Left, chatArea, m.RenderBottomBar())

	switch {
	case m.PermissionOpen:
		return m.renderModal(m.RenderPermissionGate())
	case m.ProfileSetupOpen:
		return m.renderModal(m.RenderProfileSetup())
	case m.ToolManagerOpen:
		return m.renderModal(m.RenderToolManager())
	case m.SettingsOpen:
		return m.renderModal(m.RenderSettings())
	case m.ShortcutsOpen:
		return m.renderModal(m.RenderShortcutsModal())
	}

	return content
}
