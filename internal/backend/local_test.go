package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lia/internal/models"
)

func openTestService(t *testing.T) *LocalService {
	t.Helper()
	svc, err := OpenLocalService(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestLocalMessagesRoundTrip(t *testing.T) {
	svc := openTestService(t)
	ctx := context.Background()

	msgs, err := svc.GetConversationHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	require.NoError(t, svc.SaveMessage(ctx, models.Message{Text: "hi", Sender: models.SenderUser, Timestamp: 100}))
	require.NoError(t, svc.SaveMessage(ctx, models.Message{Text: "hello", Sender: models.SenderAssistant, Timestamp: 200}))

	msgs, err = svc.GetConversationHistory(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "hi", msgs[0].Text)
	assert.Equal(t, models.SenderAssistant, msgs[1].Sender)
	assert.EqualValues(t, 200, msgs[1].Timestamp)
}

func TestLocalToolsKeepRegistryOrder(t *testing.T) {
	svc := openTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.AddTool(ctx, models.Tool{Name: "wiki", URLTemplate: "https://wiki.org/{query}"}))
	require.NoError(t, svc.AddTool(ctx, models.Tool{Name: "maps", Description: "maps", URLTemplate: "https://maps.example/{query}"}))

	tools, err := svc.GetTools(ctx)
	require.NoError(t, err)
	require.Len(t, tools, 2)
	assert.Equal(t, "wiki", tools[0].Name)
	assert.Equal(t, "maps", tools[1].Name)
}

func TestLocalProfileLifecycle(t *testing.T) {
	svc := openTestService(t)
	ctx := context.Background()

	profile, err := svc.GetCallerUserProfile(ctx)
	require.NoError(t, err)
	assert.Nil(t, profile, "no profile before first setup")

	require.NoError(t, svc.SaveCallerUserProfile(ctx, models.UserProfile{Name: "Mj"}))
	profile, err = svc.GetCallerUserProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Mj", profile.Name)

	// Saving again overwrites the single profile row.
	require.NoError(t, svc.SaveCallerUserProfile(ctx, models.UserProfile{Name: "M"}))
	profile, err = svc.GetCallerUserProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "M", profile.Name)
}

func TestLocalRoleSurface(t *testing.T) {
	svc := openTestService(t)
	ctx := context.Background()

	role, err := svc.GetCallerUserRole(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)

	admin, err := svc.IsCallerAdmin(ctx)
	require.NoError(t, err)
	assert.True(t, admin)

	err = svc.AssignCallerUserRole(ctx, "someone", models.RoleUser)
	var reject *RejectError
	require.ErrorAs(t, err, &reject)
}
