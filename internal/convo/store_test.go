package convo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lia/internal/backend"
	"lia/internal/models"
)

// fakeService records saves and serves a scripted history.
type fakeService struct {
	backend.Service
	history    []models.Message
	historyErr error
	saved      []models.Message
	saveErr    error
}

func (f *fakeService) GetConversationHistory(ctx context.Context) ([]models.Message, error) {
	return f.history, f.historyErr
}

func (f *fakeService) SaveMessage(ctx context.Context, msg models.Message) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, msg)
	return nil
}

var authed = backend.Session{Principal: "principal-1"}

func TestAddAppendsLocallyAndPersists(t *testing.T) {
	svc := &fakeService{}
	s := NewStore(svc, authed, nil)
	s.now = func() int64 { return 1234 }

	msg := s.Add(context.Background(), "hello", models.SenderUser)

	assert.Equal(t, models.Message{Text: "hello", Sender: models.SenderUser, Timestamp: 1234}, msg)
	require.Len(t, s.Messages(), 1)
	require.Len(t, svc.saved, 1)
	assert.Equal(t, msg, svc.saved[0])
}

func TestAddKeepsLocalWhenRemoteSaveFails(t *testing.T) {
	svc := &fakeService{saveErr: errors.New("backend down")}
	s := NewStore(svc, authed, nil)

	s.Add(context.Background(), "hello", models.SenderUser)

	assert.Len(t, s.Messages(), 1, "local commit survives remote failure")
	assert.Empty(t, svc.saved)
}

func TestAddSkipsRemoteWhenUnauthenticated(t *testing.T) {
	svc := &fakeService{}
	s := NewStore(svc, backend.Session{}, nil)

	s.Add(context.Background(), "hello", models.SenderUser)

	assert.Len(t, s.Messages(), 1)
	assert.Empty(t, svc.saved)
}

func TestHydrateAdoptsNonEmptyHistory(t *testing.T) {
	remote := []models.Message{
		{Text: "old question", Sender: models.SenderUser, Timestamp: 1},
		{Text: "old answer", Sender: models.SenderAssistant, Timestamp: 2},
	}
	s := NewStore(&fakeService{history: remote}, authed, nil)

	require.NoError(t, s.Hydrate(context.Background()))
	assert.Equal(t, remote, s.Messages())
}

func TestHydrateIsStableAcrossReloads(t *testing.T) {
	remote := []models.Message{{Text: "q", Sender: models.SenderUser, Timestamp: 1}}
	s := NewStore(&fakeService{history: remote}, authed, nil)

	require.NoError(t, s.Hydrate(context.Background()))
	first := s.Messages()
	require.NoError(t, s.Hydrate(context.Background()))
	assert.Equal(t, first, s.Messages(), "two hydrations with no appends converge")
}

func TestHydrateEmptyRemoteNeverWipesLocal(t *testing.T) {
	svc := &fakeService{}
	s := NewStore(svc, authed, nil)
	s.Add(context.Background(), "fresh local turn", models.SenderUser)

	require.NoError(t, s.Hydrate(context.Background()))
	assert.Len(t, s.Messages(), 1, "empty remote is treated as not-yet-loaded")
}

func TestHydrateSkipsWhenUnauthenticated(t *testing.T) {
	svc := &fakeService{history: []models.Message{{Text: "x"}}}
	s := NewStore(svc, backend.Session{}, nil)

	require.NoError(t, s.Hydrate(context.Background()))
	assert.Empty(t, s.Messages())
}

func TestHydrateErrorLeavesLocalIntact(t *testing.T) {
	svc := &fakeService{historyErr: errors.New("boom")}
	s := NewStore(svc, authed, nil)
	s.Add(context.Background(), "local", models.SenderUser)

	assert.Error(t, s.Hydrate(context.Background()))
	assert.Len(t, s.Messages(), 1)
}

func TestClearIsLocalOnly(t *testing.T) {
	remote := []models.Message{{Text: "persisted", Sender: models.SenderUser, Timestamp: 1}}
	s := NewStore(&fakeService{history: remote}, authed, nil)

	require.NoError(t, s.Hydrate(context.Background()))
	s.Clear()
	assert.Empty(t, s.Messages())

	// A reload re-hydrates everything the clear removed.
	require.NoError(t, s.Hydrate(context.Background()))
	assert.Equal(t, remote, s.Messages())
}
