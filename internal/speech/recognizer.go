package speech

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// RecognizerState is the adapter's position in Idle → Listening → Idle.
type RecognizerState int

const (
	StateIdle RecognizerState = iota
	StateListening
)

var ErrNotIdle = errors.New("recognition already in progress")

// RecognizerUpdate is published on every state or transcript change.
// Final is set on the Listening→Idle transition; its Transcript is the
// complete utterance (possibly empty when nothing was heard).
type RecognizerUpdate struct {
	State      RecognizerState
	Transcript string
	Err        error
	Final      bool
}

// Recognizer owns one listening session at a time. The recognition language
// is fixed at construction: a language-setting change requires a fresh
// adapter, it cannot change mid-listen.
type Recognizer struct {
	engine RecognizerEngine
	lang   string
	log    *zap.Logger

	mu         sync.Mutex
	state      RecognizerState
	transcript string
	abort      func()

	updates chan RecognizerUpdate
}

func NewRecognizer(engine RecognizerEngine, lang string, log *zap.Logger) *Recognizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recognizer{
		engine:  engine,
		lang:    lang,
		log:     log,
		updates: make(chan RecognizerUpdate, 32),
	}
}

func (r *Recognizer) Capability() Capability {
	if r.engine == nil {
		return Unavailable
	}
	return Available
}

func (r *Recognizer) Language() string { return r.lang }

func (r *Recognizer) State() RecognizerState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Transcript is the live text of the current or most recent session. It is
// overwritten in place per engine event, never appended across events.
func (r *Recognizer) Transcript() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.transcript
}

// Updates delivers state machine transitions to the UI loop.
func (r *Recognizer) Updates() <-chan RecognizerUpdate {
	return r.updates
}

// Start begins a listening session. Valid only from Idle; the previous
// transcript is cleared on entry.
func (r *Recognizer) Start(ctx context.Context) error {
	if r.engine == nil {
		return errors.New("speech recognition is not available")
	}

	r.mu.Lock()
	if r.state != StateIdle {
		r.mu.Unlock()
		return ErrNotIdle
	}
	r.state = StateListening
	r.transcript = ""
	r.mu.Unlock()

	events, abort, err := r.engine.Listen(ctx, r.lang)
	if err != nil {
		r.mu.Lock()
		r.state = StateIdle
		r.mu.Unlock()
		r.log.Warn("failed to start recognition", zap.Error(err))
		return err
	}

	r.mu.Lock()
	r.abort = abort
	r.mu.Unlock()

	r.publish(RecognizerUpdate{State: StateListening})
	go r.consume(events)
	return nil
}

// Stop aborts the session. The engine closing its event stream drives the
// actual transition back to Idle.
func (r *Recognizer) Stop() {
	r.mu.Lock()
	abort := r.abort
	r.mu.Unlock()
	if abort != nil {
		abort()
	}
}

func (r *Recognizer) consume(events <-chan EngineEvent) {
	var lastErr error
	for ev := range events {
		if ev.Err != nil {
			lastErr = ev.Err
			r.log.Warn("recognition error", zap.Error(ev.Err))
			continue
		}
		r.mu.Lock()
		r.transcript = ev.Transcript
		r.mu.Unlock()
		r.publish(RecognizerUpdate{State: StateListening, Transcript: ev.Transcript})
	}

	// Engine end and engine error both land here: back to Idle.
	r.mu.Lock()
	r.state = StateIdle
	r.abort = nil
	final := r.transcript
	r.mu.Unlock()
	r.publish(RecognizerUpdate{State: StateIdle, Transcript: final, Err: lastErr, Final: true})
}

func (r *Recognizer) publish(u RecognizerUpdate) {
	select {
	case r.updates <- u:
	default:
		r.log.Warn("recognizer update dropped")
	}
}
