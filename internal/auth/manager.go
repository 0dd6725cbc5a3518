// Package auth keeps the signed-in user's token and profile in the local
// store and validates the sign-in and sign-up forms.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/flashiz/internal/api"
	"github.com/abhisek/flashiz/internal/models"
	"github.com/abhisek/flashiz/internal/store"
)

// Storage keys.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Backend is the part of the API the manager calls.
type Backend interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	Register(ctx context.Context, name, email, password string) (*models.User, error)
}

// Manager owns the persisted session.
type Manager struct {
	backend Backend
	kv      store.KV
	logger  *zap.Logger
}

// NewManager creates a Manager. A nil logger discards log output.
func NewManager(backend Backend, kv store.KV, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{backend: backend, kv: kv, logger: logger}
}

// Login validates the form, signs in and persists the token and user.
func (m *Manager) Login(ctx context.Context, form LoginForm) (*models.User, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	resp, err := m.backend.Login(ctx, form.Email, form.Password)
	if err != nil {
		return nil, err
	}
	user, err := json.Marshal(resp.User)
	if err != nil {
		return nil, fmt.Errorf("encode user: %w", err)
	}
	if err := m.kv.Set(ctx, KeyToken, resp.Token); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}
	if err := m.kv.Set(ctx, KeyUser, string(user)); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	m.logger.Info("signed in", zap.String("email", resp.User.Email))
	return &resp.User, nil
}

// Register validates the form and creates the account. It does not sign in.
func (m *Manager) Register(ctx context.Context, form RegisterForm) (*models.User, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	user, err := m.backend.Register(ctx, form.Name, form.Email, form.Password)
	if err != nil {
		return nil, err
	}
	m.logger.Info("registered", zap.String("email", form.Email))
	return user, nil
}

// Logout forgets the token and the user.
func (m *Manager) Logout(ctx context.Context) error {
	return m.kv.Clear(ctx, KeyToken, KeyUser)
}

// Token implements api.TokenSource. It returns "" when nobody is signed in.
func (m *Manager) Token(ctx context.Context) (string, error) {
	tok, err := m.kv.Get(ctx, KeyToken)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	return tok, err
}

// CurrentUser returns the cached profile, or nil when nobody is signed in.
func (m *Manager) CurrentUser(ctx context.Context) (*models.User, error) {
	raw, err := m.kv.Get(ctx, KeyUser)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &u, nil
}

// SignedIn reports whether a token is stored.
func (m *Manager) SignedIn(ctx context.Context) bool {
	tok, err := m.Token(ctx)
	return err == nil && tok != ""
}

// HandleError clears the session when err says the token was rejected and
// reports whether it did so. Callers then send the user back to sign-in.
func (m *Manager) HandleError(ctx context.Context, err error) bool {
	if !api.IsUnauthorized(err) {
		return false
	}
	if cerr := m.Logout(ctx); cerr != nil {
		m.logger.Warn("clear session", zap.Error(cerr))
	}
	m.logger.Info("session expired", zap.String("reason", api.Message(err)))
	return true
}
