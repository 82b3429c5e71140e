// Package services contains application services for the uploader client.
// This file defines the authentication service: login, register, logout and
// restoring a session from the locally stored token.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/uploader/internal/client/client"
	"github.com/dmitrijs2005/uploader/internal/client/repositories/prefs"
	"github.com/dmitrijs2005/uploader/internal/client/session"
	"github.com/dmitrijs2005/uploader/internal/common"
	"github.com/dmitrijs2005/uploader/internal/logging"
)

var (
	ErrMissingCredentials  = fmt.Errorf("email and password are required: %w", common.ErrorValidation)
	ErrMissingRegistration = fmt.Errorf("username, email and password are required: %w", common.ErrorValidation)
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server, persist the token and mark the
//     session authenticated.
//   - Register: create a new account. It does not log in.
//   - Logout: forget the token locally and in the session.
//   - Restore: re-authenticate the session from a persisted token.
type AuthService interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, username, email, password string) error
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (bool, error)
}

type authService struct {
	client  client.Client
	db      *sql.DB
	session *session.Session
	log     logging.Logger
}

func NewAuthService(client client.Client, db *sql.DB, s *session.Session, log logging.Logger) AuthService {
	return &authService{client: client, db: db, session: s, log: log.With("service", "auth")}
}

func (a *authService) getPrefsRepo() prefs.Repository {
	return prefs.NewSQLiteRepository(a.db)
}

// Login requires both fields. On success the token is stored under
// prefs.KeyToken before the session flips to authenticated.
func (a *authService) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return ErrMissingCredentials
	}

	token, err := a.client.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	if err := a.getPrefsRepo().Set(ctx, prefs.KeyToken, token); err != nil {
		return fmt.Errorf("token saving error: %w", err)
	}

	a.session.Login(token)
	a.log.Info(ctx, "logged in", "email", email)
	return nil
}

func (a *authService) Register(ctx context.Context, username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return ErrMissingRegistration
	}

	if err := a.client.Register(ctx, username, email, password); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	a.log.Info(ctx, "registered", "username", username)
	return nil
}

// Logout always clears the session, even when removing the stored token fails.
func (a *authService) Logout(ctx context.Context) error {
	a.session.Logout()
	if err := a.getPrefsRepo().Delete(ctx, prefs.KeyToken); err != nil {
		return fmt.Errorf("token removal error: %w", err)
	}
	return nil
}

// Restore logs the session in with the persisted token, if any. The token is
// not checked with the server.
func (a *authService) Restore(ctx context.Context) (bool, error) {
	token, err := a.getPrefsRepo().Get(ctx, prefs.KeyToken)
	if err != nil {
		return false, err
	}
	if token == "" {
		return false, nil
	}
	a.session.Login(token)
	a.log.Debug(ctx, "session restored from local storage")
	return true, nil
}

// IsValidationError reports whether err was caused by missing user input.
func IsValidationError(err error) bool {
	return errors.Is(err, common.ErrorValidation)
}
