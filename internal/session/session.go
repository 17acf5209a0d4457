// Package session holds the logged-in identity shared by every screen: the
// bearer token and the user profile. The pair is always replaced together.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/joshua-takyi/grooviti/internal/models"
)

var ErrNoSession = errors.New("session: not signed in")

type State struct {
	Token string
	User  *models.User
}

func (s State) Authenticated() bool {
	return s.Token != ""
}

// TokenStore keeps a durable copy of the token across restarts.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type Store struct {
	mu     sync.RWMutex
	state  State
	tokens TokenStore
	logger *slog.Logger
}

func New(tokens TokenStore, logger *slog.Logger) *Store {
	if tokens == nil {
		tokens = &MemoryTokens{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{tokens: tokens, logger: logger}
}

// Restore loads the durable token, if any. The user stays empty until the
// profile is fetched again.
func (s *Store) Restore(ctx context.Context) error {
	token, err := s.tokens.Load(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if token == "" {
		return nil
	}
	s.mu.Lock()
	s.state = State{Token: token}
	s.mu.Unlock()
	s.logger.Debug("session restored")
	return nil
}

// Set replaces token and user in one write. The in-memory pair is updated even
// when the durable copy cannot be written; that error is returned.
func (s *Store) Set(ctx context.Context, token string, user *models.User) error {
	s.mu.Lock()
	s.state = State{Token: token, User: copyUser(user)}
	s.mu.Unlock()

	if err := s.tokens.Save(ctx, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

// SetUser replaces the profile, keeping the token.
func (s *Store) SetUser(user *models.User) {
	s.mu.Lock()
	s.state.User = copyUser(user)
	s.mu.Unlock()
}

func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{Token: s.state.Token, User: copyUser(s.state.User)}
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyUser(s.state.User)
}

// Logout clears both halves of the session and the durable token.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.state = State{}
	s.mu.Unlock()

	if err := s.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}

// MemoryTokens is a TokenStore that forgets everything on exit.
type MemoryTokens struct {
	mu    sync.Mutex
	token string
}

func (m *MemoryTokens) Load(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryTokens) Save(ctx context.Context, token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *MemoryTokens) Clear(ctx context.Context) error {
	return m.Save(ctx, "")
}
