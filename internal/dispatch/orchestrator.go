// Package dispatch sequences one user turn: parse the input, run the
// matched action, and write both sides of the exchange into the
// conversation store.
package dispatch

import (
	"context"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"lia/internal/command"
	"lia/internal/convo"
	"lia/internal/models"
)

// Assistant turns synthesized by the orchestrator itself, as opposed to
// responses produced by an executor.
const (
	NotUnderstoodReply = `मुझे समझ नहीं आया। कृपया "help" टाइप करें उपलब्ध कमांड देखने के लिए।`
	FailureReply       = "क्षमा करें, कुछ गलत हो गया। कृपया पुनः प्रयास करें।"
)

// Executor runs a parsed command and always resolves to response text.
type Executor interface {
	Execute(ctx context.Context, cmd *command.Parsed) string
}

type Orchestrator struct {
	store   *convo.Store
	exec    Executor
	log     *zap.Logger
	sending atomic.Bool
}

func NewOrchestrator(store *convo.Store, exec Executor, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{store: store, exec: exec, log: log}
}

// Sending reports whether a turn is currently in flight.
func (o *Orchestrator) Sending() bool {
	return o.sending.Load()
}

// Send runs one turn end to end. It returns false when the turn was dropped:
// blank input, or another send already in flight (re-entrant sends are
// dropped silently, never queued). The in-flight flag is released on every
// path, including panics, which surface to the user as a generic failure
// turn rather than an error.
func (o *Orchestrator) Send(ctx context.Context, text string, registry []models.Tool) (sent bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	if !o.sending.CompareAndSwap(false, true) {
		return false
	}
	defer o.sending.Store(false)

	// A panicking executor still counts as a handled turn: the user message
	// was persisted and the failure reply takes the assistant slot.
	defer func() {
		if r := recover(); r != nil {
			o.log.Error("dispatch failed", zap.Any("panic", r))
			o.store.Add(ctx, FailureReply, models.SenderAssistant)
			sent = true
		}
	}()

	o.store.Add(ctx, trimmed, models.SenderUser)

	var response string
	if cmd := command.Parse(trimmed, registry); cmd != nil {
		response = o.exec.Execute(ctx, cmd)
	} else {
		response = NotUnderstoodReply
	}

	o.store.Add(ctx, response, models.SenderAssistant)
	return true
}
