package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/noshnavigator/nosh-cli/internal/domain"
)

const (
	defaultDirName  = ".nosh"
	defaultFileName = "session.json"
	envSessionPath  = "NOSH_SESSION_PATH"
)

// Store persists session state (cart, chat history, cached location)
// between command invocations. A missing or corrupt backing file always
// degrades to an empty session, never to a caller-visible failure.
type Store struct {
	path string
}

// NewStore creates a store using env overrides or defaults.
func NewStore() (*Store, error) {
	if path := os.Getenv(envSessionPath); path != "" {
		return &Store{path: path}, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	return &Store{path: filepath.Join(home, defaultDirName, defaultFileName)}, nil
}

// Path returns the current session path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the session, or an empty one when nothing usable is stored.
func (s *Store) Load(_ context.Context) (domain.Session, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		return domain.Session{}, nil
	}
	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return domain.Session{}, nil
	}
	return sess, nil
}

// Save writes the session payload.
func (s *Store) Save(_ context.Context, sess domain.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// FreshLocation returns the cached coordinate only while it is younger
// than the freshness window; a stale entry behaves as if nothing were stored.
func FreshLocation(sess domain.Session, now time.Time) (domain.Location, bool) {
	if sess.Location == nil || !sess.Location.Fresh(now) {
		return domain.Location{}, false
	}
	return sess.Location.Location, true
}

// RememberLocation stores the coordinate with the current timestamp,
// overwriting any previous value.
func RememberLocation(sess *domain.Session, loc domain.Location, now time.Time) {
	sess.Location = &domain.CachedLocation{Location: loc, StoredAt: now}
}
