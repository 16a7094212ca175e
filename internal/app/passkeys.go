package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"

	"beer_machine/internal/models"
	"beer_machine/internal/pkg/auth"
	"beer_machine/internal/pkg/session"
)

var (
	// ErrPasskeysDisabled indicates the relying party could not be configured
	// at startup, so ceremonies are unavailable.
	ErrPasskeysDisabled = errors.New("app: passkey support is disabled")
	// ErrCeremonyExpired indicates the challenge saved by the begin step was
	// not found, usually because its TTL ran out.
	ErrCeremonyExpired = errors.New("app: passkey ceremony expired")
	// ErrPasskeyNotFound indicates an unknown or foreign credential.
	ErrPasskeyNotFound = errors.New("app: passkey not found")
)

func registrationSessionKey(userID int32) string {
	return fmt.Sprintf("webauthn:reg:%d", userID)
}

func loginSessionKey(username string) string {
	return "webauthn:login:" + username
}

// ProcessPasskeyRegisterOptions starts registering a new passkey for the
// authenticated staff account. The challenge is parked in the session store
// until the verify step.
func (app *App) ProcessPasskeyRegisterOptions(ctx context.Context, userID int32) (*protocol.CredentialCreation, error) {
	if app.webauthn == nil {
		return nil, ErrPasskeysDisabled
	}

	user, err := app.db.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	passkeys, err := app.db.GetPasskeysByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	options, sessionData, err := app.webauthn.BeginRegistration(user, passkeys)
	if err != nil {
		return nil, err
	}

	if err := app.sessions.Save(ctx, registrationSessionKey(userID), sessionData, session.DefaultTTL); err != nil {
		return nil, err
	}

	return options, nil
}

// ProcessPasskeyRegisterVerify checks the authenticator's response against
// the parked challenge and stores the new credential.
func (app *App) ProcessPasskeyRegisterVerify(ctx context.Context, userID int32, deviceName string, body io.Reader) (*models.Passkey, error) {
	if app.webauthn == nil {
		return nil, ErrPasskeysDisabled
	}

	sessionData := webauthn.SessionData{}
	key := registrationSessionKey(userID)
	if err := app.sessions.Load(ctx, key, &sessionData); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrCeremonyExpired
		}
		return nil, err
	}

	user, err := app.db.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	passkeys, err := app.db.GetPasskeysByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	passkey, err := app.webauthn.FinishRegistration(user, passkeys, sessionData, body)
	if err != nil {
		return nil, err
	}
	passkey.DeviceName = deviceName

	created, err := app.db.CreatePasskey(ctx, passkey)
	if err != nil {
		return nil, err
	}

	if err := app.sessions.Delete(ctx, key); err != nil {
		app.log.Sugar().Errorf("Failed to delete registration challenge: %s", err)
	}

	return created, nil
}

// ProcessPasskeyLoginOptions starts a passkey login ceremony for the named
// account. Only accounts that could also log in with a password may use one.
func (app *App) ProcessPasskeyLoginOptions(ctx context.Context, username string) (*protocol.CredentialAssertion, error) {
	if app.webauthn == nil {
		return nil, ErrPasskeysDisabled
	}
	if username == "" {
		return nil, ErrMissingUsername
	}

	user, err := app.db.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !user.CanLogin() {
		return nil, ErrInvalidCredentials
	}
	passkeys, err := app.db.GetPasskeysByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	options, sessionData, err := app.webauthn.BeginLogin(user, passkeys)
	if err != nil {
		return nil, err
	}

	if err := app.sessions.Save(ctx, loginSessionKey(username), sessionData, session.DefaultTTL); err != nil {
		return nil, err
	}

	return options, nil
}

// ProcessPasskeyLoginVerify validates the assertion, bumps the credential's
// sign counter, and issues the same token a password login would.
func (app *App) ProcessPasskeyLoginVerify(ctx context.Context, username string, body io.Reader) (*models.LoginResponse, error) {
	if app.webauthn == nil {
		return nil, ErrPasskeysDisabled
	}
	if username == "" {
		return nil, ErrMissingUsername
	}

	sessionData := webauthn.SessionData{}
	key := loginSessionKey(username)
	if err := app.sessions.Load(ctx, key, &sessionData); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrCeremonyExpired
		}
		return nil, err
	}

	user, err := app.db.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !user.CanLogin() {
		return nil, ErrInvalidCredentials
	}
	passkeys, err := app.db.GetPasskeysByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	credentialID, signCount, err := app.webauthn.FinishLogin(user, passkeys, sessionData, body)
	if err != nil {
		return nil, err
	}

	stored, err := app.db.GetPasskeyByCredentialID(ctx, credentialID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPasskeyNotFound
		}
		return nil, err
	}
	if stored.UserID != user.ID {
		return nil, ErrInvalidCredentials
	}

	if err := app.db.UpdatePasskeySignCount(ctx, credentialID, signCount); err != nil {
		app.log.Sugar().Errorf("Failed to update passkey sign count: %s", err)
	}
	if err := app.sessions.Delete(ctx, key); err != nil {
		app.log.Sugar().Errorf("Failed to delete login challenge: %s", err)
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.UserType)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Token: token,
		User: models.UserBrief{
			ID:       user.ID,
			Username: user.Username,
			UserType: user.UserType,
		},
	}, nil
}

// ProcessListPasskeys lists the authenticated account's registered passkeys.
func (app *App) ProcessListPasskeys(ctx context.Context, userID int32) ([]models.Passkey, error) {
	return app.db.GetPasskeysByUser(ctx, userID)
}

// ProcessDeletePasskey removes one of the authenticated account's passkeys.
func (app *App) ProcessDeletePasskey(ctx context.Context, userID, passkeyID int32) error {
	err := app.db.DeletePasskey(ctx, userID, passkeyID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPasskeyNotFound
	}
	return err
}
