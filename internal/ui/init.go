package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"lia/internal/backend"
	"lia/internal/convo"
	"lia/internal/dispatch"
	"lia/internal/models"
	"lia/internal/settings"
	"lia/internal/speech"
)

// Deps is everything the UI is wired with at startup.
type Deps struct {
	Store        *convo.Store
	Orchestrator *dispatch.Orchestrator
	Service      backend.Service
	Session      backend.Session
	Settings     *settings.Store
	Recognizer   *speech.Recognizer
	Synthesizer  *speech.Synthesizer
	Log          *zap.Logger
}

func InitialModel(deps Deps) Model {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = "Type a message..."
	ti.Prompt = "❯ "
	ti.CharLimit = 0
	ti.Width = 80
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B39DDB")).Bold(true)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#545454"))
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#B39DDB"))

	vp := viewport.New(60, 15)

	nameInput := textinput.New()
	nameInput.Placeholder = "e.g., Wikipedia Search"
	descInput := textinput.New()
	descInput.Placeholder = "What does this tool do?"
	urlInput := textinput.New()
	urlInput.Placeholder = "https://example.com/search?q={query}"

	profileInput := textinput.New()
	profileInput.Placeholder = "Your name"

	return Model{
		TextInput:      ti,
		Viewport:       vp,
		Spinner:        sp,
		Store:          deps.Store,
		Orchestrator:   deps.Orchestrator,
		Service:        deps.Service,
		Session:        deps.Session,
		Settings:       deps.Settings,
		Recognizer:     deps.Recognizer,
		Synthesizer:    deps.Synthesizer,
		Log:            log,
		Messages:       []string{},
		ToolNameInput:  nameInput,
		ToolDescInput:  descInput,
		ToolURLInput:   urlInput,
		ProfileInput:   profileInput,
		PermissionOpen: !deps.Settings.Get().FirstRunComplete,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.TextInput.Cursor.BlinkCmd(),
		m.Spinner.Tick,
		m.hydrateCmd(),
		m.loadToolsCmd(),
		m.loadProfileCmd(),
		m.waitRecognitionCmd(),
		m.waitSpeakingCmd(),
	)
}

func NewProgram(deps Deps) *tea.Program {
	m := InitialModel(deps)
	return tea.NewProgram(&m, tea.WithAltScreen())
}

func (m *Model) hydrateCmd() tea.Cmd {
	store := m.Store
	return func() tea.Msg {
		return hydratedMsg{err: store.Hydrate(context.Background())}
	}
}

func (m *Model) loadToolsCmd() tea.Cmd {
	svc := m.Service
	if !m.Session.Authenticated() {
		return nil
	}
	return func() tea.Msg {
		tools, err := svc.GetTools(context.Background())
		if err != nil {
			return toolsLoadedMsg{err: err}
		}
		concierge, err := svc.GetConciergeTools(context.Background())
		if err != nil {
			return toolsLoadedMsg{tools: tools, err: err}
		}
		return toolsLoadedMsg{tools: tools, concierge: concierge}
	}
}

func (m *Model) loadProfileCmd() tea.Cmd {
	svc := m.Service
	if !m.Session.Authenticated() {
		return nil
	}
	return func() tea.Msg {
		profile, err := svc.GetCallerUserProfile(context.Background())
		if err != nil {
			return profileLoadedMsg{err: err}
		}
		admin, err := svc.IsCallerAdmin(context.Background())
		if err != nil {
			return profileLoadedMsg{profile: profile, err: err}
		}
		return profileLoadedMsg{profile: profile, admin: admin}
	}
}

func (m *Model) sendCmd(text string) tea.Cmd {
	orchestrator := m.Orchestrator
	registry := m.toolRegistry()
	return func() tea.Msg {
		return sendDoneMsg{sent: orchestrator.Send(context.Background(), text, registry)}
	}
}

func (m *Model) saveToolCmd(tool models.Tool) tea.Cmd {
	svc := m.Service
	return func() tea.Msg {
		return toolSavedMsg{err: svc.AddTool(context.Background(), tool)}
	}
}

func (m *Model) saveProfileCmd(profile models.UserProfile) tea.Cmd {
	svc := m.Service
	return func() tea.Msg {
		return profileSavedMsg{
			profile: profile,
			err:     svc.SaveCallerUserProfile(context.Background(), profile),
		}
	}
}

func (m *Model) waitRecognitionCmd() tea.Cmd {
	updates := m.Recognizer.Updates()
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return nil
		}
		return recognitionMsg(u)
	}
}

func (m *Model) waitSpeakingCmd() tea.Cmd {
	updates := m.Synthesizer.Updates()
	return func() tea.Msg {
		speaking, ok := <-updates
		if !ok {
			return nil
		}
		return speakingMsg(speaking)
	}
}
