package session

import (
	"errors"        // Error inspection
	"os"            // File access
	"path/filepath" // Path handling
	"strings"       // Trimming
	"time"          // Token lifetime
)

// FileName is the session file inside the data directory
const FileName = "session"

// Manager remembers one logged in user across runs of the console
type Manager struct {
	path   string        // Session file
	secret string        // Signing secret
	ttl    time.Duration // Token lifetime
}

// NewManager returns nil when secret is empty, which disables remembered sessions
func NewManager(dataDir, secret string, ttl time.Duration) *Manager {
	if secret == "" {
		return nil
	}
	return &Manager{path: filepath.Join(dataDir, FileName), secret: secret, ttl: ttl}
}

// Remember writes a fresh token for username
func (m *Manager) Remember(username string) error {
	token, err := GenerateToken(username, m.secret, m.ttl)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(m.path, []byte(token+"\n"), 0o600)
}

// Resume returns the remembered username. An absent file yields "" and no error.
func (m *Manager) Resume() (string, error) {
	b, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	claims, err := ParseToken(strings.TrimSpace(string(b)), m.secret)
	if err != nil {
		return "", err
	}
	return claims.Username, nil
}

// Forget deletes the session file
func (m *Manager) Forget() error {
	if err := os.Remove(m.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
