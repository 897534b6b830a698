package capture

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	saved := Session{
		Token:   "signed-token",
		Email:   "alice@example.com",
		SavedAt: time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, SaveSession(path, saved))

	loaded, err := LoadSession(path)
	require.NoError(t, err)
	assert.Equal(t, saved.Token, loaded.Token)
	assert.Equal(t, saved.Email, loaded.Email)
	assert.True(t, saved.SavedAt.Equal(loaded.SavedAt))
}

func TestLoadSession_Missing(t *testing.T) {
	_, err := LoadSession(filepath.Join(t.TempDir(), "nope.json"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestLoadSession_EmptyToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, SaveSession(path, Session{Email: "alice@example.com"}))

	_, err := LoadSession(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSaveSession_EmptyPath(t *testing.T) {
	require.Error(t, SaveSession("", Session{Token: "signed-token"}))
}

func TestClearSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, SaveSession(path, Session{Token: "signed-token"}))

	require.NoError(t, ClearSession(path))

	_, err := LoadSession(path)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// clearing twice is fine
	require.NoError(t, ClearSession(path))
}
