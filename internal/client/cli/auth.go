package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/uploader/internal/client/client"
	"github.com/dmitrijs2005/uploader/internal/client/services"
	"github.com/dmitrijs2005/uploader/internal/common"
)

// getSimpleText, getPassword and confirm are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	confirm       = Confirm
)

const (
	msgMissingLogin    = "Please provide both email and password"
	msgMissingRegister = "Please provide username, email and password"
	msgLoginFailed     = "Invalid credentials or server error"
	msgRegisterFailed  = "Registration failed"
)

// Register prompts for a username, email and password and creates an
// account. Registering does not log the user in.
//
// On failure the server's message is shown when it sent one, otherwise
// "Registration failed". The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, username, email, string(password)); err != nil {
		switch {
		case errors.Is(err, services.ErrMissingRegistration):
			fmt.Fprintln(a.out, msgMissingRegister)
		default:
			fmt.Fprintln(a.out, client.ServerMessage(err, msgRegisterFailed))
		}
		return err
	}

	fmt.Fprintln(a.out, "Registration successful. You can now login.")
	return nil
}

// Login prompts for credentials and authenticates. On success the file list
// is fetched and the first page shown.
//
// Failures are printed inline: a missing field gives "Please provide both
// email and password"; a rejected login shows the server's message or
// "Invalid credentials or server error".
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, string(password)); err != nil {
		switch {
		case errors.Is(err, services.ErrMissingCredentials):
			fmt.Fprintln(a.out, msgMissingLogin)
		default:
			fmt.Fprintln(a.out, client.ServerMessage(err, msgLoginFailed))
		}
		return err
	}

	fmt.Fprintln(a.out, "Login successful")
	return a.Refresh(ctx, nil)
}

// Logout forgets the session and the stored token.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.log.Warn(ctx, "logout cleanup failed", "err", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
