package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/PhucLH2303/RentEase-sub000/models"
)

// ErrNotLoggedIn is returned when a command needs a session and the
// store holds no access token.
var ErrNotLoggedIn = errors.New("session: not logged in")

// Session is the persisted login state: the three values the client
// keeps between runs — the bearer token, the minimal account object and
// the role id.
type Session struct {
	AccessToken string         `json:"accessToken"`
	Account     models.Account `json:"account"`
	RoleID      int            `json:"roleId"`
}

// Provider exposes read-only session accessors. Every data-fetching
// component takes a Provider instead of reading storage on its own.
type Provider interface {
	Token() (string, error)
	Current() (*models.Account, error)
}

// Store persists the session as a JSON file. Safe for concurrent use.
type Store struct {
	path string

	mu     sync.RWMutex
	cached *Session
}

// NewStore creates a Store backed by the file at path. Nothing is read
// until the first accessor call.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save writes the session to disk and refreshes the in-memory copy.
func (s *Store) Save(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("session: create dir: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("session: write %q: %w", s.path, err)
	}

	s.cached = sess
	return nil
}

// Clear removes the persisted session. Used on logout and when the
// backend answers 401.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cached = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

// Token returns the stored access token, or ErrNotLoggedIn.
func (s *Store) Token() (string, error) {
	sess, err := s.load()
	if err != nil {
		return "", err
	}
	return sess.AccessToken, nil
}

// Current returns the stored minimal account profile, or ErrNotLoggedIn.
func (s *Store) Current() (*models.Account, error) {
	sess, err := s.load()
	if err != nil {
		return nil, err
	}
	acc := sess.Account
	return &acc, nil
}

// Require returns the session or a GateError naming the command the
// user was attempting, so the CLI can point back at it after login.
func (s *Store) Require(from string) (*Session, error) {
	sess, err := s.load()
	if err != nil {
		return nil, &GateError{From: from}
	}
	return sess, nil
}

func (s *Store) load() (*Session, error) {
	s.mu.RLock()
	if s.cached != nil {
		defer s.mu.RUnlock()
		return s.cached, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != nil {
		return s.cached, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, ErrNotLoggedIn
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("session: decode %q: %w", s.path, err)
	}
	if sess.AccessToken == "" {
		return nil, ErrNotLoggedIn
	}

	s.cached = &sess
	return s.cached, nil
}

// GateError is returned when a session-gated command runs without a
// login; From is the command to re-run once logged in.
type GateError struct {
	From string
}

func (e *GateError) Error() string {
	return fmt.Sprintf("not logged in — run 'rentease login', then retry %q", e.From)
}

func (e *GateError) Unwrap() error { return ErrNotLoggedIn }
