// Package speech wraps platform recognition and synthesis engines behind
// two small state machines. Engines are external collaborators resolved once
// at startup; a missing engine surfaces as an unavailable capability, never
// an error at call time.
package speech

import "context"

// Capability is the result of probing for an engine at startup.
type Capability int

const (
	Unavailable Capability = iota
	Available
)

// EngineEvent is one recognition event. A non-nil Err reports an engine
// error; otherwise Transcript carries the latest interim text. The engine
// closes its event channel when the listening session ends, for any reason.
type EngineEvent struct {
	Transcript string
	Err        error
}

// RecognizerEngine produces one event stream per listening session.
// The returned abort is a hard cancel with no partial-result flush.
type RecognizerEngine interface {
	Listen(ctx context.Context, lang string) (events <-chan EngineEvent, abort func(), err error)
}

// Voice is one synthesis voice the engine offers.
type Voice struct {
	URI  string
	Name string
	Lang string
}

// Utterance is one in-flight synthesis request. Done is closed when
// playback stops, completed or not; Cancel aborts playback and still
// results in Done closing.
type Utterance interface {
	Done() <-chan error
	Cancel()
}

// SynthesizerEngine speaks text with a chosen voice.
type SynthesizerEngine interface {
	Voices() []Voice
	Speak(text string, voice Voice) (Utterance, error)
}
