package capture

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrSessionNotFound is returned by LoadSession when no token has been
// stored yet, or the stored session carries no token.
var ErrSessionNotFound = errors.New("local session not found")

// Session is the jobclip login state persisted between invocations.
type Session struct {
	Token   string    `json:"token"`
	Email   string    `json:"email,omitempty"`
	SavedAt time.Time `json:"saved_at"`
}

// SaveSession writes the session to path with owner-only permissions,
// creating parent directories as needed.
func SaveSession(path string, session Session) error {
	if path == "" {
		return fmt.Errorf("empty session path")
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	// token is a credential
	if err = os.WriteFile(path, payload, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}

	return nil
}

// LoadSession reads the session stored at path. Returns
// [ErrSessionNotFound] when the file does not exist or holds no token.
func LoadSession(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, ErrSessionNotFound
		}
		return Session{}, fmt.Errorf("read session file: %w", err)
	}

	var session Session
	if err = json.Unmarshal(data, &session); err != nil {
		return Session{}, fmt.Errorf("decode session file: %w", err)
	}
	if session.Token == "" {
		return Session{}, ErrSessionNotFound
	}

	return session, nil
}

// ClearSession removes the stored session. A missing file is not an error.
func ClearSession(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}

	return nil
}
