// Package convo holds the ordered conversation log and reconciles it with
// the remotely persisted history.
package convo

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"lia/internal/backend"
	"lia/internal/models"
)

// Store owns the session's message log. Writes are a two-phase commit:
// the local append always happens (the UI reflects the turn before any
// network round trip), the remote save is best-effort with no rollback.
// Availability over durability, on purpose.
type Store struct {
	mu       sync.Mutex
	svc      backend.Service
	session  backend.Session
	log      *zap.Logger
	messages []models.Message

	// now is wall-clock millis, injectable for tests.
	now func() int64
}

func NewStore(svc backend.Service, session backend.Session, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		svc:     svc,
		session: session,
		log:     log,
		now:     func() int64 { return time.Now().UnixMilli() },
	}
}

// Messages returns a copy of the ordered log.
func (s *Store) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Add appends a turn locally and, when authenticated, persists it remotely.
// A failed remote save is logged and otherwise ignored: the message stays
// visible locally with no retry and no user-facing error.
func (s *Store) Add(ctx context.Context, text, sender string) models.Message {
	msg := models.Message{Text: text, Sender: sender, Timestamp: s.now()}

	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()

	if s.session.Authenticated() {
		if err := s.svc.SaveMessage(ctx, msg); err != nil {
			s.log.Warn("failed to save message", zap.String("sender", sender), zap.Error(err))
		}
	}
	return msg
}

// Hydrate adopts the remote history into local state. An empty remote
// response is indistinguishable from "not yet persisted", so it never
// overwrites local messages; only a non-empty history replaces the log.
func (s *Store) Hydrate(ctx context.Context) error {
	if !s.session.Authenticated() {
		return nil
	}

	remote, err := s.svc.GetConversationHistory(ctx)
	if err != nil {
		s.log.Error("failed to load conversation history", zap.Error(err))
		return err
	}
	if len(remote) == 0 {
		return nil
	}

	s.mu.Lock()
	s.messages = remote
	s.mu.Unlock()
	return nil
}

// Clear wipes the local log only. The backend has no delete operation, so
// the next hydration restores everything this removed.
func (s *Store) Clear() {
	s.mu.Lock()
	s.messages = nil
	s.mu.Unlock()
}
