// Package session owns the auth lifecycle: one process-wide object
// holding the token/user pair, with the pairing invariant enforced
// here and nowhere else. Consumers read snapshots; they never mutate
// fields directly.
package session

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"pcos-companion/internal/backend"
	"pcos-companion/internal/domain"
)

// Manager is the session state machine. States move
// unauthenticated -> validating -> authenticated; any validation
// failure lands back in unauthenticated with the persisted token
// discarded.
type Manager struct {
	api   backend.Client
	store TokenStore

	mu    sync.Mutex
	state domain.SessionState
	token string
	user  *domain.User
}

// NewManager creates a Manager in the unauthenticated state.
func NewManager(api backend.Client, store TokenStore) *Manager {
	return &Manager{
		api:   api,
		store: store,
		state: domain.SessionUnauthenticated,
	}
}

// Restore reads the persisted token and revalidates it against the
// backend. Called once at startup; a cached user record is never
// trusted, only a fresh /auth/me response.
func (m *Manager) Restore(ctx context.Context) error {
	token, err := m.store.Load()
	if err != nil {
		return fmt.Errorf("load persisted token: %w", err)
	}
	if token == "" {
		return nil
	}
	if err := m.validate(ctx, token); err != nil {
		log.Printf("session: persisted token rejected: %v", err)
		return nil
	}
	return nil
}

// Login exchanges credentials for a token, persists it, then
// immediately validates it. On any failure no partial state remains.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	req := domain.LoginRequest{Email: normalizeEmail(email), Password: password}
	resp, err := m.api.Login(ctx, req)
	if err != nil {
		return err
	}
	return m.adopt(ctx, resp.Token)
}

// Register creates an account and adopts the returned token the same
// way Login does. fullName and age are optional.
func (m *Manager) Register(ctx context.Context, email, password, fullName string, age *int) error {
	req := domain.RegisterRequest{
		Email:    normalizeEmail(email),
		Password: password,
		FullName: fullName,
		Age:      age,
	}
	resp, err := m.api.Register(ctx, req)
	if err != nil {
		return err
	}
	return m.adopt(ctx, resp.Token)
}

// Logout clears the persisted token and the in-memory pair. It is
// synchronous, idempotent, and makes no network call.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
}

// Invalidate drops the session after the backend rejected its token
// mid-flight. Same effect as Logout; the separate name records why.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
}

// Snapshot returns the current state for read-only consumers. User is
// set only when authenticated.
func (m *Manager) Snapshot() domain.SessionResponse {
	m.mu.Lock()
	defer m.mu.Unlock()
	resp := domain.SessionResponse{State: m.state}
	if m.state == domain.SessionAuthenticated {
		resp.User = m.user
	}
	return resp
}

// Token returns the bearer token, or "" when not authenticated.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != domain.SessionAuthenticated {
		return ""
	}
	return m.token
}

// Authenticated reports whether a validated session is present.
func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == domain.SessionAuthenticated
}

// adopt persists then validates a freshly issued token. The persisted
// token is rolled back if validation fails.
func (m *Manager) adopt(ctx context.Context, token string) error {
	if err := m.store.Save(token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	if err := m.validate(ctx, token); err != nil {
		return fmt.Errorf("failed to validate token with server: %w", err)
	}
	return nil
}

// validate confirms a token via /auth/me. The lock is released around
// the network call so readers can observe the validating state.
func (m *Manager) validate(ctx context.Context, token string) error {
	m.mu.Lock()
	m.state = domain.SessionValidating
	m.mu.Unlock()

	user, err := m.api.CurrentUser(ctx, token)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.clearLocked()
		return err
	}
	m.state = domain.SessionAuthenticated
	m.token = token
	m.user = user
	return nil
}

func (m *Manager) clearLocked() {
	_ = m.store.Clear()
	m.state = domain.SessionUnauthenticated
	m.token = ""
	m.user = nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
