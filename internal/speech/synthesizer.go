package speech

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"lia/internal/settings"
)

// femaleVoiceTokens is the fixed heuristic used when auto-picking a voice.
var femaleVoiceTokens = []string{"female", "woman", "lekha", "nicky"}

// Synthesizer speaks assistant replies. At most one utterance is audible at
// any time: Speak unconditionally cancels whatever is in flight before
// starting the next utterance.
type Synthesizer struct {
	engine   SynthesizerEngine
	settings *settings.Store
	log      *zap.Logger

	mu         sync.Mutex
	voices     []Voice
	voice      *Voice
	speaking   bool
	cancel     func()
	generation int

	updates chan bool
}

func NewSynthesizer(engine SynthesizerEngine, st *settings.Store, log *zap.Logger) *Synthesizer {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Synthesizer{
		engine:   engine,
		settings: st,
		log:      log,
		updates:  make(chan bool, 32),
	}
	if engine != nil {
		s.loadVoices()
	}
	return s
}

func (s *Synthesizer) Capability() Capability {
	if s.engine == nil {
		return Unavailable
	}
	return Available
}

func (s *Synthesizer) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speaking
}

// Updates reports speaking-flag transitions to the UI loop.
func (s *Synthesizer) Updates() <-chan bool {
	return s.updates
}

func (s *Synthesizer) Voices() []Voice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Voice, len(s.voices))
	copy(out, s.voices)
	return out
}

func (s *Synthesizer) SelectedVoice() *Voice {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.voice == nil {
		return nil
	}
	v := *s.voice
	return &v
}

// SetVoice selects a voice and persists its URI so it survives reload.
func (s *Synthesizer) SetVoice(v Voice) {
	s.mu.Lock()
	s.voice = &v
	s.mu.Unlock()
	if err := s.settings.Update(func(st *settings.Settings) {
		st.SelectedVoiceURI = v.URI
	}); err != nil {
		s.log.Warn("failed to persist voice selection", zap.Error(err))
	}
}

// Speak starts a new utterance. No-op when synthesis is unavailable or
// disabled in settings. New speech always pre-empts old: any in-flight
// utterance is cancelled first.
func (s *Synthesizer) Speak(text string) {
	if s.engine == nil || !s.settings.Get().TTSEnabled {
		return
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.speaking {
		s.speaking = false
		s.publish(false)
	}
	s.generation++
	gen := s.generation
	var voice Voice
	if s.voice != nil {
		voice = *s.voice
	}
	s.mu.Unlock()

	utt, err := s.engine.Speak(text, voice)
	if err != nil {
		s.log.Warn("failed to start utterance", zap.Error(err))
		return
	}

	s.mu.Lock()
	// Speak may race with another Speak; only the latest generation owns
	// the flag.
	if gen != s.generation {
		s.mu.Unlock()
		utt.Cancel()
		return
	}
	s.speaking = true
	s.cancel = utt.Cancel
	s.mu.Unlock()
	s.publish(true)

	go func() {
		// Completed and aborted utterances both close Done; either way the
		// flag must drop.
		err := <-utt.Done()
		if err != nil {
			s.log.Debug("utterance ended with error", zap.Error(err))
		}
		s.mu.Lock()
		if gen == s.generation && s.speaking {
			s.speaking = false
			s.cancel = nil
			s.mu.Unlock()
			s.publish(false)
			return
		}
		s.mu.Unlock()
	}()
}

// Stop cancels the in-flight utterance, if any.
func (s *Synthesizer) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	wasSpeaking := s.speaking
	s.speaking = false
	s.generation++
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if wasSpeaking {
		s.publish(false)
	}
}

// loadVoices pulls the engine's voice list once and restores the persisted
// selection, or auto-picks one when nothing is chosen yet.
func (s *Synthesizer) loadVoices() {
	voices := s.engine.Voices()
	s.mu.Lock()
	s.voices = voices
	s.mu.Unlock()
	if len(voices) == 0 {
		return
	}

	saved := s.settings.Get().SelectedVoiceURI
	if saved != "" {
		for _, v := range voices {
			if v.URI == saved {
				s.mu.Lock()
				s.voice = &v
				s.mu.Unlock()
				return
			}
		}
	}

	picked := PickVoice(voices, s.settings.Get().RecognitionLanguage)
	s.SetVoice(picked)
}

// PickVoice chooses a default voice: first one whose language tag starts
// with the configured language's primary subtag, preferring names matching
// the female-voice heuristic, falling back to the first voice of any
// language.
func PickVoice(voices []Voice, langTag string) Voice {
	primary, _, _ := strings.Cut(langTag, "-")

	var sameLang []Voice
	for _, v := range voices {
		if strings.HasPrefix(v.Lang, primary) {
			sameLang = append(sameLang, v)
		}
	}

	for _, v := range sameLang {
		name := strings.ToLower(v.Name)
		for _, token := range femaleVoiceTokens {
			if strings.Contains(name, token) {
				return v
			}
		}
	}
	if len(sameLang) > 0 {
		return sameLang[0]
	}
	return voices[0]
}

func (s *Synthesizer) publish(speaking bool) {
	select {
	case s.updates <- speaking:
	default:
		s.log.Warn("synthesizer update dropped")
	}
}
