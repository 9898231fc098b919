package ui

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"lia/internal/backend"
	"lia/internal/convo"
	"lia/internal/models"
	"lia/internal/settings"
	"lia/internal/speech"
)

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "hello", TruncateRunes("hello", 10))
	assert.Equal(t, "hell…", TruncateRunes("hello world", 5))
	assert.Equal(t, "", TruncateRunes("hello", 0))
	// Devanagari must be cut on rune boundaries, not bytes.
	assert.Equal(t, "नमस्…", TruncateRunes("नमस्ते दुनिया", 5))
}

func TestToolRegistryOrder(t *testing.T) {
	m := Model{
		CustomTools:    []models.Tool{{Name: "Mine"}},
		ConciergeTools: []models.Tool{{Name: "Shared"}},
	}
	registry := m.toolRegistry()
	assert.Equal(t, []string{"Mine", "Shared"}, []string{registry[0].Name, registry[1].Name})
}

func TestAutoSpeakSkipsHydratedHistory(t *testing.T) {
	// Unauthenticated store never touches the service, so nil is fine here.
	store := convo.NewStore(nil, backend.Session{}, nil)
	st := settings.Open(filepath.Join(t.TempDir(), "settings.toml"))
	m := Model{
		Store:       store,
		Synthesizer: speech.NewSynthesizer(nil, st, nil),
	}

	store.Add(context.Background(), "help", models.SenderUser)
	store.Add(context.Background(), "reply", models.SenderAssistant)

	// Hydration path: adopt the count without speaking.
	m.SpokenCount = m.assistantCount()
	assert.Equal(t, 1, m.SpokenCount)

	store.Add(context.Background(), "खोज: मौसम", models.SenderUser)
	store.Add(context.Background(), "1. result", models.SenderAssistant)

	m.autoSpeak()
	assert.Equal(t, 2, m.SpokenCount)
}
