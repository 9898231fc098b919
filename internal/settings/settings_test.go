package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingFileUsesDefaults(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "settings.toml"))
	got := s.Get()
	assert.Equal(t, "hi-IN", got.RecognitionLanguage)
	assert.True(t, got.TTSEnabled)
	assert.False(t, got.FirstRunComplete)
	assert.Empty(t, got.SelectedVoiceURI)
}

func TestUpdateRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	s := Open(path)

	require.NoError(t, s.Update(func(st *Settings) {
		st.RecognitionLanguage = "en-US"
		st.SelectedVoiceURI = "voice://lekha"
		st.TTSEnabled = false
		st.FirstRunComplete = true
	}))

	reloaded := Open(path).Get()
	assert.Equal(t, "en-US", reloaded.RecognitionLanguage)
	assert.Equal(t, "voice://lekha", reloaded.SelectedVoiceURI)
	assert.False(t, reloaded.TTSEnabled)
	assert.True(t, reloaded.FirstRunComplete)
}

func TestOpenPartialFileKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("recognition_language = \"en-GB\"\n"), 0o600))

	got := Open(path).Get()
	assert.Equal(t, "en-GB", got.RecognitionLanguage)
	assert.True(t, got.TTSEnabled, "missing key falls back to default")
}

func TestOpenCorruptFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0o600))

	got := Open(path).Get()
	assert.Equal(t, Defaults(), got)
}
