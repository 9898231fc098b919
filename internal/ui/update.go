package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"lia/internal/models"
	"lia/internal/settings"
	"lia/internal/speech"
	"lia/internal/styles"
)

const settingsItemCount = 3

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case spinner.TickMsg:
		m.Spinner, spCmd = m.Spinner.Update(msg)
		if m.Sending {
			m.UpdateViewport()
		}
		return m, spCmd

	case tea.KeyMsg:
		if m.PermissionOpen {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "enter":
				if m.Recognizer.Capability() == speech.Available {
					m.PermissionOpen = false
					m.PermissionDenied = false
					if err := m.Settings.Update(func(st *settings.Settings) { st.FirstRunComplete = true }); err != nil {
						m.Log.Warn("failed to record first-run completion", zap.Error(err))
					}
				} else {
					m.PermissionDenied = true
				}
				return m, nil
			case "esc":
				// Typing still works without a microphone; the gate shows
				// again on the next start until granted.
				m.PermissionOpen = false
				return m, nil
			}
			return m, nil
		}

		if m.ProfileSetupOpen {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc":
				m.ProfileSetupOpen = false
				m.ProfileInput.Blur()
				m.TextInput.Focus()
				return m, nil
			case "enter":
				name := strings.TrimSpace(m.ProfileInput.Value())
				if name == "" {
					return m, nil
				}
				m.ProfileSetupOpen = false
				m.ProfileInput.Blur()
				m.TextInput.Focus()
				return m, m.saveProfileCmd(models.UserProfile{Name: name})
			}
			m.ProfileInput, tiCmd = m.ProfileInput.Update(msg)
			return m, tiCmd
		}

		if m.ToolManagerOpen {
			if m.ToolFormOpen {
				switch msg.String() {
				case "ctrl+c":
					return m, tea.Quit
				case "esc":
					m.ToolFormOpen = false
					m.ToolFormErr = ""
					return m, nil
				case "tab", "down":
					m.focusToolForm(m.ToolFormFocus + 1)
					return m, nil
				case "shift+tab", "up":
					m.focusToolForm(m.ToolFormFocus - 1)
					return m, nil
				case "enter":
					if m.ToolFormFocus < 2 {
						m.focusToolForm(m.ToolFormFocus + 1)
						return m, nil
					}
					name := strings.TrimSpace(m.ToolNameInput.Value())
					urlTemplate := strings.TrimSpace(m.ToolURLInput.Value())
					if name == "" || urlTemplate == "" {
						m.ToolFormErr = ToolFormIncomplete
						return m, nil
					}
					m.ToolFormOpen = false
					m.ToolFormErr = ""
					return m, m.saveToolCmd(models.Tool{
						Name:        name,
						Description: strings.TrimSpace(m.ToolDescInput.Value()),
						URLTemplate: urlTemplate,
					})
				}
				switch m.ToolFormFocus {
				case 0:
					m.ToolNameInput, tiCmd = m.ToolNameInput.Update(msg)
				case 1:
					m.ToolDescInput, tiCmd = m.ToolDescInput.Update(msg)
				default:
					m.ToolURLInput, tiCmd = m.ToolURLInput.Update(msg)
				}
				return m, tiCmd
			}

			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc", "ctrl+t":
				m.ToolManagerOpen = false
				m.Notice = ""
				return m, nil
			case "a":
				m.ToolFormOpen = true
				m.ToolFormErr = ""
				m.ToolNameInput.Reset()
				m.ToolDescInput.Reset()
				m.ToolURLInput.Reset()
				m.focusToolForm(0)
				return m, nil
			}
			return m, nil
		}

		if m.SettingsOpen {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc", "ctrl+o":
				m.SettingsOpen = false
				return m, nil
			case "up", "k":
				m.SettingsSelectedIdx--
				if m.SettingsSelectedIdx < 0 {
					m.SettingsSelectedIdx = settingsItemCount - 1
				}
				return m, nil
			case "down", "j":
				m.SettingsSelectedIdx++
				if m.SettingsSelectedIdx >= settingsItemCount {
					m.SettingsSelectedIdx = 0
				}
				return m, nil
			case "enter", " ", "right", "l":
				m.applySettingsItem(1)
				return m, nil
			case "left", "h":
				m.applySettingsItem(-1)
				return m, nil
			}
			return m, nil
		}

		if m.ShortcutsOpen {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc", "enter", "ctrl+s":
				m.ShortcutsOpen = false
				return m, nil
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyCtrlT:
			m.ToolManagerOpen = true
			m.ToolFormOpen = false
			return m, nil

		case tea.KeyCtrlO:
			m.SettingsOpen = true
			m.SettingsSelectedIdx = 0
			return m, nil

		case tea.KeyCtrlS:
			m.ShortcutsOpen = true
			return m, nil

		case tea.KeyCtrlL:
			m.Store.Clear()
			m.SpokenCount = 0
			m.RefreshMessages()
			return m, nil

		case tea.KeyCtrlX:
			m.Synthesizer.Stop()
			return m, nil

		case tea.KeyCtrlR:
			// The microphone is unavailable while a turn is in flight.
			if m.Sending {
				return m, nil
			}
			if m.Listening {
				m.Recognizer.Stop()
				return m, nil
			}
			if err := m.Recognizer.Start(context.Background()); err != nil {
				m.Err = err
				return m, nil
			}
			m.TextInput.Blur()
			return m, nil

		case tea.KeyEnter:
			if m.Sending || m.Listening {
				return m, nil
			}
			input := strings.TrimSpace(m.TextInput.Value())
			if input == "" {
				return m, nil
			}

			m.Messages = append(m.Messages, FormatUserMessage(input))
			m.TextInput.Reset()
			m.Sending = true
			m.Err = nil
			m.UpdateViewport()
			return m, tea.Batch(m.sendCmd(input), m.Spinner.Tick)
		}

	case hydratedMsg:
		if msg.err != nil {
			m.Err = msg.err
		}
		// History restored from the backend is rendered but never spoken.
		m.SpokenCount = m.assistantCount()
		m.RefreshMessages()
		return m, nil

	case toolsLoadedMsg:
		m.CustomTools = msg.tools
		m.ConciergeTools = msg.concierge
		if msg.err != nil {
			m.Log.Warn("failed to load tools", zap.Error(msg.err))
		}
		return m, nil

	case profileLoadedMsg:
		if msg.err != nil {
			m.Log.Warn("failed to load profile", zap.Error(msg.err))
			return m, nil
		}
		m.Profile = msg.profile
		m.IsAdmin = msg.admin
		if msg.profile == nil {
			m.ProfileSetupOpen = true
			m.TextInput.Blur()
			m.ProfileInput.Focus()
		}
		return m, nil

	case profileSavedMsg:
		if msg.err != nil {
			m.Log.Warn("failed to save profile", zap.Error(msg.err))
			return m, nil
		}
		profile := msg.profile
		m.Profile = &profile
		return m, nil

	case sendDoneMsg:
		m.Sending = false
		m.RefreshMessages()
		if msg.sent {
			m.autoSpeak()
		}
		m.UpdateViewport()
		return m, nil

	case toolSavedMsg:
		if msg.err != nil {
			m.Notice = ToolSaveFailed
			m.Log.Warn("failed to add tool", zap.Error(msg.err))
			return m, nil
		}
		m.Notice = ToolSavedNotice
		return m, m.loadToolsCmd()

	case recognitionMsg:
		update := speech.RecognizerUpdate(msg)
		m.Listening = update.State == speech.StateListening
		if update.Final {
			m.TextInput.SetValue(update.Transcript)
			m.TextInput.CursorEnd()
			m.TextInput.Focus()
			if update.Err != nil {
				m.Err = update.Err
			}
		} else if update.Transcript != "" {
			m.TextInput.SetValue(update.Transcript)
			m.TextInput.CursorEnd()
		}
		return m, m.waitRecognitionCmd()

	case speakingMsg:
		m.Speaking = bool(msg)
		return m, m.waitSpeakingCmd()

	case tea.WindowSizeMsg:
		m.WindowWidth = msg.Width
		m.WindowHeight = msg.Height

		ModalWidth = msg.Width - 10
		if ModalWidth > 60 {
			ModalWidth = 60
		}
		if ModalWidth < 30 {
			ModalWidth = 30
		}
		styles.ContentWidth = ModalWidth - 6

		chatWidth := msg.Width - 2
		if chatWidth > MaxChatWidth {
			chatWidth = MaxChatWidth
		}
		m.Viewport.Width = chatWidth - 2
		m.Viewport.Height = msg.Height - 8
		if m.Viewport.Height < 5 {
			m.Viewport.Height = 5
		}
		m.TextInput.Width = msg.Width - 10

		glamourStyle := "dark"
		if !lipgloss.HasDarkBackground() {
			glamourStyle = "light"
		}
		m.Renderer, _ = glamour.NewTermRenderer(
			glamour.WithStylePath(glamourStyle),
			glamour.WithWordWrap(chatWidth-6),
		)
		m.RefreshMessages()
		return m, tea.Batch(tiCmd, vpCmd)
	}

	if !m.Listening {
		m.TextInput, tiCmd = m.TextInput.Update(msg)
	}
	m.Viewport, vpCmd = m.Viewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd)
}

// applySettingsItem acts on the selected settings row; direction is -1/+1
// for items that cycle through options.
func (m *Model) applySettingsItem(direction int) {
	switch m.SettingsSelectedIdx {
	case 0: // voice output on/off
		enabled := false
		if err := m.Settings.Update(func(st *settings.Settings) {
			st.TTSEnabled = !st.TTSEnabled
			enabled = st.TTSEnabled
		}); err != nil {
			m.Log.Warn("failed to save settings", zap.Error(err))
		}
		if !enabled {
			m.Synthesizer.Stop()
		}

	case 1: // voice selection
		voices := m.Synthesizer.Voices()
		if len(voices) == 0 {
			return
		}
		current := 0
		if selected := m.Synthesizer.SelectedVoice(); selected != nil {
			for i, v := range voices {
				if v.URI == selected.URI {
					current = i
					break
				}
			}
		}
		next := (current + direction + len(voices)) % len(voices)
		m.Synthesizer.SetVoice(voices[next])

	case 2: // recognition language, applied on next start
		current := 0
		lang := m.Settings.Get().RecognitionLanguage
		for i, l := range RecognitionLanguages {
			if l == lang {
				current = i
				break
			}
		}
		next := (current + direction + len(RecognitionLanguages)) % len(RecognitionLanguages)
		if err := m.Settings.Update(func(st *settings.Settings) {
			st.RecognitionLanguage = RecognitionLanguages[next]
		}); err != nil {
			m.Log.Warn("failed to save settings", zap.Error(err))
		}
	}
}

func (m *Model) focusToolForm(idx int) {
	if idx < 0 {
		idx = 2
	}
	if idx > 2 {
		idx = 0
	}
	m.ToolFormFocus = idx
	m.ToolNameInput.Blur()
	m.ToolDescInput.Blur()
	m.ToolURLInput.Blur()
	switch idx {
	case 0:
		m.ToolNameInput.Focus()
	case 1:
		m.ToolDescInput.Focus()
	default:
		m.ToolURLInput.Focus()
	}
}

// autoSpeak voices the newest assistant turn when it has not been seen yet.
func (m *Model) autoSpeak() {
	msgs := m.Store.Messages()
	count := 0
	for _, msg := range msgs {
		if msg.Sender == models.SenderAssistant {
			count++
		}
	}
	if count > m.SpokenCount && len(msgs) > 0 {
		if last := msgs[len(msgs)-1]; last.Sender == models.SenderAssistant {
			m.Synthesizer.Speak(last.Text)
		}
	}
	m.SpokenCount = count
}

func (m *Model) assistantCount() int {
	count := 0
	for _, msg := range m.Store.Messages() {
		if msg.Sender == models.SenderAssistant {
			count++
		}
	}
	return count
}
