package command

import (
	"strings"

	"lia/internal/models"
)

// Kind identifies which action a parsed command maps to.
type Kind int

const (
	KindHelp Kind = iota
	KindSearch
	KindOpen
	KindYouTube
	KindCustom
)

// Parsed is a command recognized in user input. Query and URL keep the
// original casing; only keyword matching is case-insensitive.
type Parsed struct {
	Kind  Kind
	Query string
	URL   string
	Tool  *models.Tool
}

// Keyword prefixes with their localized synonyms. Built-ins are checked
// before custom tools, so a tool named "search" can never shadow the
// built-in search command.
var (
	helpKeywords    = []string{"help", "मदद"}
	searchPrefixes  = []string{"search:", "खोज:"}
	openPrefixes    = []string{"open:", "खोलें:"}
	youtubePrefixes = []string{"youtube:", "यूट्यूब:"}
)

// Parse matches text against the command grammar. It returns nil when no
// built-in keyword or registered tool name matches. Pure and deterministic:
// the same text and registry always produce the same result.
//
// The argument after the first ':' is sliced from the original string so its
// casing survives, then trimmed. An empty argument stays an empty string;
// validating non-empty is the executor's job.
func Parse(text string, customTools []models.Tool) *Parsed {
	trimmed := strings.ToLower(strings.TrimSpace(text))

	for _, kw := range helpKeywords {
		if trimmed == kw {
			return &Parsed{Kind: KindHelp}
		}
	}

	for _, p := range searchPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return &Parsed{Kind: KindSearch, Query: argAfterColon(text)}
		}
	}

	for _, p := range openPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return &Parsed{Kind: KindOpen, URL: argAfterColon(text)}
		}
	}

	for _, p := range youtubePrefixes {
		if strings.HasPrefix(trimmed, p) {
			return &Parsed{Kind: KindYouTube, Query: argAfterColon(text)}
		}
	}

	if tool, query, ok := ResolveTool(trimmed, text, customTools); ok {
		return &Parsed{Kind: KindCustom, Query: query, Tool: tool}
	}

	return nil
}

// ResolveTool matches the input against registered tool names, first match
// in registry order wins. Matching is case-insensitive on the name and
// case-preserving on the trailing query.
func ResolveTool(trimmedLower, original string, customTools []models.Tool) (*models.Tool, string, bool) {
	for i := range customTools {
		keyword := strings.ToLower(customTools[i].Name) + ":"
		if strings.HasPrefix(trimmedLower, keyword) {
			return &customTools[i], argAfterColon(original), true
		}
	}
	return nil, "", false
}

func argAfterColon(text string) string {
	idx := strings.Index(text, ":")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(text[idx+1:])
}
