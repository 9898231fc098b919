package ui

import (
	"lia/internal/backend"
	"lia/internal/convo"
	"lia/internal/dispatch"
	"lia/internal/models"
	"lia/internal/settings"
	"lia/internal/speech"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"
)

const (
	MaxChatWidth = 100
)

var ModalWidth = 60

const (
	WelcomeGreeting = "नमस्ते! मैं LIA हूँ। मैं आपकी कैसे मदद कर सकती हूँ?"
	WelcomeHint     = `Type "help" to see available commands`

	PermissionTitle    = "माइक्रोफ़ोन की अनुमति चाहिए"
	PermissionBody     = "LIA के साथ बात करने के लिए, कृपया माइक्रोफ़ोन की अनुमति दें।"
	PermissionGrant    = "अनुमति दें"
	PermissionRetry    = "पुनः प्रयास करें"
	PermissionDeniedMsg = "Permission was denied. Please check your recognizer setup and try again."
	PermissionSkipHint = "आप बाद में भी टाइप करके बात कर सकते हैं"

	ToolFormIncomplete = "कृपया नाम और URL टेम्पलेट भरें"
	ToolSavedNotice    = "टूल जोड़ा गया!"
	ToolSaveFailed     = "टूल जोड़ने में विफल"
)

// RecognitionLanguages are the options offered by the settings panel. A
// change takes effect on the next start because the recognizer binds its
// language when it is constructed.
var RecognitionLanguages = []string{"hi-IN", "en-IN", "en-US"}

type hydratedMsg struct{ err error }

type toolsLoadedMsg struct {
	tools     []models.Tool
	concierge []models.Tool
	err       error
}

type profileLoadedMsg struct {
	profile *models.UserProfile
	admin   bool
	err     error
}

type profileSavedMsg struct {
	profile models.UserProfile
	err     error
}

type sendDoneMsg struct{ sent bool }

type toolSavedMsg struct{ err error }

type recognitionMsg speech.RecognizerUpdate

type speakingMsg bool

type Model struct {
	Viewport  viewport.Model
	TextInput textinput.Model
	Spinner   spinner.Model
	Renderer  *glamour.TermRenderer

	Store        *convo.Store
	Orchestrator *dispatch.Orchestrator
	Service      backend.Service
	Session      backend.Session
	Settings     *settings.Store
	Recognizer   *speech.Recognizer
	Synthesizer  *speech.Synthesizer
	Log          *zap.Logger

	Messages []string
	// SpokenCount is how many assistant turns auto-speak has already seen.
	// Hydration bumps it without speaking, so restored history stays silent.
	SpokenCount int

	Sending   bool
	Listening bool
	Speaking  bool

	CustomTools    []models.Tool
	ConciergeTools []models.Tool
	Profile        *models.UserProfile
	IsAdmin        bool

	WindowWidth  int
	WindowHeight int
	Err          error
	Notice       string

	ToolManagerOpen  bool
	ToolFormOpen     bool
	ToolFormFocus    int
	ToolNameInput    textinput.Model
	ToolDescInput    textinput.Model
	ToolURLInput     textinput.Model
	ToolFormErr      string

	SettingsOpen        bool
	SettingsSelectedIdx int

	ShortcutsOpen bool

	ProfileSetupOpen bool
	ProfileInput     textinput.Model

	PermissionOpen   bool
	PermissionDenied bool
}
