package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lia/internal/models"
)

func TestParseBuiltins(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *Parsed
	}{
		{"help exact", "help", &Parsed{Kind: KindHelp}},
		{"help uppercase", "HELP", &Parsed{Kind: KindHelp}},
		{"help padded", "  help  ", &Parsed{Kind: KindHelp}},
		{"help hindi", "मदद", &Parsed{Kind: KindHelp}},
		{"help with args is not help", "help me", nil},
		{"search", "search: climate change", &Parsed{Kind: KindSearch, Query: "climate change"}},
		{"search keeps casing", "Search: Go Proverbs", &Parsed{Kind: KindSearch, Query: "Go Proverbs"}},
		{"search hindi", "खोज: मौसम", &Parsed{Kind: KindSearch, Query: "मौसम"}},
		{"search empty query stays search", "search: ", &Parsed{Kind: KindSearch, Query: ""}},
		{"open", "open: example.com", &Parsed{Kind: KindOpen, URL: "example.com"}},
		{"open empty url stays open", "open:", &Parsed{Kind: KindOpen, URL: ""}},
		{"youtube", "youtube: lo-fi beats", &Parsed{Kind: KindYouTube, Query: "lo-fi beats"}},
		{"no match", "unknownword", nil},
		{"empty input", "", nil},
		{"colon without keyword", "frobnicate: x", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input, nil)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIsDeterministic(t *testing.T) {
	tools := []models.Tool{{Name: "wiki", URLTemplate: "https://wiki.org/{query}"}}
	first := Parse("wiki: cats", tools)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Parse("wiki: cats", tools))
	}
}

func TestParseCustomTools(t *testing.T) {
	wiki := models.Tool{Name: "Wiki", Description: "wiki search", URLTemplate: "https://wiki.org/{query}"}
	maps := models.Tool{Name: "maps", URLTemplate: "https://maps.example/{query}"}

	t.Run("case-insensitive name, case-preserving query", func(t *testing.T) {
		got := Parse("wiki: Brown Cats", []models.Tool{wiki})
		require.NotNil(t, got)
		assert.Equal(t, KindCustom, got.Kind)
		assert.Equal(t, "Brown Cats", got.Query)
		require.NotNil(t, got.Tool)
		assert.Equal(t, "Wiki", got.Tool.Name)
	})

	t.Run("first registry match wins", func(t *testing.T) {
		dup := models.Tool{Name: "wiki", URLTemplate: "https://other.example/{query}"}
		got := Parse("wiki: x", []models.Tool{wiki, dup})
		require.NotNil(t, got)
		assert.Equal(t, "https://wiki.org/{query}", got.Tool.URLTemplate)
	})

	t.Run("registry order is the tie-break", func(t *testing.T) {
		got := Parse("maps: delhi", []models.Tool{wiki, maps})
		require.NotNil(t, got)
		assert.Equal(t, "maps", got.Tool.Name)
	})

	t.Run("built-in wins over same-named tool", func(t *testing.T) {
		shadow := models.Tool{Name: "search", URLTemplate: "https://evil.example/{query}"}
		got := Parse("search: x", []models.Tool{shadow})
		require.NotNil(t, got)
		assert.Equal(t, KindSearch, got.Kind)
		assert.Nil(t, got.Tool)
	})

	t.Run("tool without colon does not match", func(t *testing.T) {
		assert.Nil(t, Parse("wiki cats", []models.Tool{wiki}))
	})
}
