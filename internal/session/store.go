package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	zlog "github.com/rs/zerolog/log"

	"github.com/fsp-platform/console-bff/internal/domain"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	stateFile = "state.json"
)

// State is what survives a restart: the bearer token, the user record that
// came with it, and the theme preference.
type State struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
	Theme string       `json:"theme,omitempty"`
}

// Store is the single process-wide session. All token reads go through this
// store; the upstream gateway never touches the state file directly.
//
// Transitions: anonymous -> authenticated on Login, authenticated ->
// anonymous on Logout or when the persisted token turns out to be missing,
// malformed or expired at load time.
type Store struct {
	mu    sync.RWMutex
	path  string
	state State
	now   func() time.Time
}

// Open loads the persisted session from dir, discarding a stale token. The
// console holds no signing secret, so expiry is checked from the token's own
// claims without signature verification; the server remains the authority.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	s := &Store{
		path: filepath.Join(dir, stateFile),
		now:  time.Now,
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.state.Theme = ThemeLight
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(raw, &s.state); err != nil {
		zlog.Warn().Err(err).Str("path", s.path).Msg("session state unreadable, starting anonymous")
		s.state = State{Theme: ThemeLight}
		return s, nil
	}
	if s.state.Theme == "" {
		s.state.Theme = ThemeLight
	}

	if s.state.Token != "" && tokenExpired(s.state.Token, s.now()) {
		zlog.Info().Msg("persisted token expired, starting anonymous")
		s.state.Token = ""
		s.state.User = nil
		_ = s.persistLocked()
	}

	return s, nil
}

// Login stores the credentials returned by a successful login or register
// call and persists them.
func (s *Store) Login(token string, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Token = token
	s.state.User = &user
	return s.persistLocked()
}

// Logout clears the token and user but keeps the theme preference.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Token = ""
	s.state.User = nil
	return s.persistLocked()
}

// Token is the read accessor the gateway uses when attaching the
// Authorization header. Empty means anonymous.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *Store) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return domain.User{}, false
	}
	return *s.state.User, true
}

func (s *Store) Role() domain.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return ""
	}
	return s.state.User.Role.Name
}

// UpdateUser refreshes the cached user record, e.g. after a profile edit.
func (s *Store) UpdateUser(user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Token == "" {
		return nil
	}
	s.state.User = &user
	return s.persistLocked()
}

func (s *Store) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Theme
}

func (s *Store) SetTheme(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return errors.New("unknown theme")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Theme = theme
	return s.persistLocked()
}

func (s *Store) persistLocked() error {
	raw, err := json.MarshalIndent(s.state, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}

func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return true
	}
	if exp == nil {
		// No expiry claim: let individual calls fail server-side instead of
		// forcing a logout the server never asked for.
		return false
	}
	return exp.Before(now)
}
