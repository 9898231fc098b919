package speech

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRecognizer hands out a channel the test feeds directly.
type scriptedRecognizer struct {
	events  chan EngineEvent
	aborted bool
	lang    string
}

func (s *scriptedRecognizer) Listen(ctx context.Context, lang string) (<-chan EngineEvent, func(), error) {
	s.lang = lang
	return s.events, func() {
		s.aborted = true
		close(s.events)
	}, nil
}

func drainUntilFinal(t *testing.T, r *Recognizer) RecognizerUpdate {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case u := <-r.Updates():
			if u.Final {
				return u
			}
		case <-deadline:
			t.Fatal("no final update")
		}
	}
}

func TestRecognizerSession(t *testing.T) {
	engine := &scriptedRecognizer{events: make(chan EngineEvent, 8)}
	r := NewRecognizer(engine, "hi-IN", nil)

	require.Equal(t, Available, r.Capability())
	require.Equal(t, StateIdle, r.State())

	require.NoError(t, r.Start(context.Background()))
	assert.Equal(t, StateListening, r.State())
	assert.Equal(t, "hi-IN", engine.lang, "language comes from adapter construction")

	// Interim results overwrite the transcript in place.
	engine.events <- EngineEvent{Transcript: "नम"}
	engine.events <- EngineEvent{Transcript: "नमस्ते"}
	close(engine.events)

	final := drainUntilFinal(t, r)
	assert.Equal(t, "नमस्ते", final.Transcript)
	assert.Equal(t, StateIdle, final.State)
	assert.Equal(t, StateIdle, r.State())
	assert.Equal(t, "नमस्ते", r.Transcript())
}

func TestRecognizerStartOnlyFromIdle(t *testing.T) {
	engine := &scriptedRecognizer{events: make(chan EngineEvent)}
	r := NewRecognizer(engine, "en-US", nil)

	require.NoError(t, r.Start(context.Background()))
	assert.ErrorIs(t, r.Start(context.Background()), ErrNotIdle)

	r.Stop()
	drainUntilFinal(t, r)
	assert.True(t, engine.aborted)

	// Back in Idle a new session may start; it clears the old transcript.
	engine.events = make(chan EngineEvent, 1)
	require.NoError(t, r.Start(context.Background()))
	assert.Equal(t, "", r.Transcript())
}

func TestRecognizerEngineErrorReturnsToIdle(t *testing.T) {
	engine := &scriptedRecognizer{events: make(chan EngineEvent, 2)}
	r := NewRecognizer(engine, "en-US", nil)

	require.NoError(t, r.Start(context.Background()))
	engine.events <- EngineEvent{Err: assert.AnError}
	close(engine.events)

	final := drainUntilFinal(t, r)
	assert.Equal(t, StateIdle, final.State)
	assert.ErrorIs(t, final.Err, assert.AnError)
}

func TestRecognizerUnavailableWithoutEngine(t *testing.T) {
	r := NewRecognizer(nil, "hi-IN", nil)
	assert.Equal(t, Unavailable, r.Capability())
	assert.Error(t, r.Start(context.Background()))
	assert.Equal(t, StateIdle, r.State())
}
