package session

import (
	"context"
	"errors"
	"strings"

	"rentauto-client/internal/domain"
	"rentauto-client/internal/gateway"
	"rentauto-client/internal/logger"
)

// IncorrectPasswordMessage replaces any backend message mentioning an
// incorrect password, so the wording shown to the user stays consistent
// across backend revisions.
const IncorrectPasswordMessage = "Incorrect password. Please try again."

// Manager runs the authentication flows and keeps the persisted session in
// step with their outcomes.
type Manager struct {
	api   gateway.API
	store *Store
}

func NewManager(api gateway.API, store *Store) *Manager {
	return &Manager{api: api, store: store}
}

// Login authenticates a user and persists the session on success.
func (m *Manager) Login(ctx context.Context, email, password string) (*gateway.LoginResult, error) {
	res, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, normalizeAuthFailure(err)
	}
	if err := m.store.Save(domain.Session{UserID: res.UserID, LoggedIn: true}); err != nil {
		return nil, err
	}
	return res, nil
}

// AdminLogin authenticates an administrator and persists an admin session.
func (m *Manager) AdminLogin(ctx context.Context, username, password string) (*gateway.AdminLoginResult, error) {
	res, err := m.api.AdminLogin(ctx, username, password)
	if err != nil {
		return nil, normalizeAuthFailure(err)
	}
	if err := m.store.Save(domain.Session{UserID: res.AdminID, LoggedIn: true, Admin: true}); err != nil {
		return nil, err
	}
	return res, nil
}

// RegisterUser creates an account. The user still logs in afterwards; no
// session is persisted here.
func (m *Manager) RegisterUser(ctx context.Context, req gateway.RegisterUserRequest) (*gateway.LoginResult, error) {
	return m.api.RegisterUser(ctx, req)
}

func (m *Manager) RegisterAdmin(ctx context.Context, req gateway.RegisterAdminRequest) (*gateway.AdminLoginResult, error) {
	return m.api.RegisterAdmin(ctx, req)
}

// Logout clears the persisted session and barcode archive.
func (m *Manager) Logout() error {
	return m.store.Clear()
}

// Current returns the persisted session state.
func (m *Manager) Current() (domain.Session, error) {
	return m.store.Current()
}

// Profile fetches the logged-in user's profile with documents. Failures are
// logged, never silently discarded.
func (m *Manager) Profile(ctx context.Context) (*domain.UserProfile, error) {
	sess, err := m.store.Current()
	if err != nil {
		return nil, err
	}
	if !sess.LoggedIn {
		return nil, domain.NewValidationFailure("not logged in")
	}
	profile, err := m.api.UserProfile(ctx, sess.UserID)
	if err != nil {
		logger.Warn("profile fetch failed", "user_id", sess.UserID, "error", err)
		return nil, err
	}
	return profile, nil
}

// normalizeAuthFailure rewrites business rejections that mention an
// incorrect password; every other failure passes through untouched.
func normalizeAuthFailure(err error) error {
	var f *domain.Failure
	if errors.As(err, &f) && f.Kind == domain.FailureBusiness &&
		strings.Contains(strings.ToLower(f.Message), "incorrect password") {
		return domain.NewBusinessRejection(IncorrectPasswordMessage)
	}
	return err
}
