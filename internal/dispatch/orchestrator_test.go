package dispatch

import (
	"context"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lia/internal/backend"
	"lia/internal/command"
	"lia/internal/convo"
	"lia/internal/models"
)

// nullService satisfies backend.Service for stores that never reach the
// network (unauthenticated session).
type nullService struct {
	backend.Service
}

type echoExecutor struct {
	mu      sync.Mutex
	release chan struct{} // when set, Execute blocks until closed
	calls   int
}

func (e *echoExecutor) Execute(ctx context.Context, cmd *command.Parsed) string {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	if e.release != nil {
		<-e.release
	}
	return "done"
}

func newTestOrchestrator(exec Executor) (*Orchestrator, *convo.Store) {
	store := convo.NewStore(nullService{}, backend.Session{}, nil)
	return NewOrchestrator(store, exec, nil), store
}

func TestSendPersistsBothTurns(t *testing.T) {
	o, store := newTestOrchestrator(&echoExecutor{})

	require.True(t, o.Send(context.Background(), "help", nil))

	msgs := store.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, models.SenderUser, msgs[0].Sender)
	assert.Equal(t, "help", msgs[0].Text)
	assert.Equal(t, models.SenderAssistant, msgs[1].Sender)
	assert.Equal(t, "done", msgs[1].Text)
}

func TestSendDropsBlankInput(t *testing.T) {
	o, store := newTestOrchestrator(&echoExecutor{})

	assert.False(t, o.Send(context.Background(), "", nil))
	assert.False(t, o.Send(context.Background(), "   \n\t", nil))
	assert.Empty(t, store.Messages())
}

func TestSendSynthesizesNotUnderstood(t *testing.T) {
	exec := &echoExecutor{}
	o, store := newTestOrchestrator(exec)

	require.True(t, o.Send(context.Background(), "unknownword", nil))

	msgs := store.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, NotUnderstoodReply, msgs[1].Text)
	assert.Zero(t, exec.calls, "no executor runs on NoMatch")
}

func TestSendGuardDropsConcurrentSends(t *testing.T) {
	release := make(chan struct{})
	exec := &echoExecutor{release: release}
	o, store := newTestOrchestrator(exec)

	firstDone := make(chan bool)
	go func() {
		firstDone <- o.Send(context.Background(), "help", nil)
	}()

	// Wait until the first send is inside the executor, then try again.
	for !o.Sending() {
		runtime.Gosched()
	}
	assert.False(t, o.Send(context.Background(), "help", nil), "re-entrant send must be dropped")

	close(release)
	assert.True(t, <-firstDone)

	// Exactly one user message was persisted, not two.
	var userTurns int
	for _, m := range store.Messages() {
		if m.Sender == models.SenderUser {
			userTurns++
		}
	}
	assert.Equal(t, 1, userTurns)
	assert.False(t, o.Sending(), "flag released after completion")
}

type panickyExecutor struct{}

func (panickyExecutor) Execute(ctx context.Context, cmd *command.Parsed) string {
	panic("boom")
}

func TestSendFailureBecomesGenericAssistantTurn(t *testing.T) {
	o, store := newTestOrchestrator(panickyExecutor{})

	require.True(t, o.Send(context.Background(), "help", nil))

	msgs := store.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, FailureReply, msgs[1].Text)
	assert.False(t, o.Sending(), "flag released even on failure")
}

func TestSendUsesRegistryForCustomTools(t *testing.T) {
	exec := &echoExecutor{}
	o, store := newTestOrchestrator(exec)
	registry := []models.Tool{{Name: "wiki", URLTemplate: "https://wiki.org/{query}"}}

	require.True(t, o.Send(context.Background(), "wiki: cats", registry))

	assert.Equal(t, 1, exec.calls)
	assert.Equal(t, "done", store.Messages()[1].Text)
}
