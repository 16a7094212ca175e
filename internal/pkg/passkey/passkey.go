// Package passkey wraps the WebAuthn registration and login ceremonies for
// staff accounts. It adapts the stored User and Passkey models to the
// webauthn library's interfaces and converts verified credentials back into
// storable rows. Challenge state between the begin and finish steps lives in
// the caller's session store.
package passkey

import (
	"encoding/base64"
	"io"
	"strconv"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"

	"beer_machine/internal/models"
)

// WebAuthn performs the ceremonies for one relying party.
type WebAuthn struct {
	wa *webauthn.WebAuthn
}

// New configures the relying party.
func New(rpName, rpID, rpOrigin string) (*WebAuthn, error) {
	wa, err := webauthn.New(&webauthn.Config{
		RPDisplayName: rpName,
		RPID:          rpID,
		RPOrigins:     []string{rpOrigin},
	})
	if err != nil {
		return nil, err
	}
	return &WebAuthn{wa: wa}, nil
}

// BeginRegistration starts a credential registration ceremony for the user,
// excluding already-registered credentials. The returned session data must be
// kept until FinishRegistration.
func (w *WebAuthn) BeginRegistration(user *models.User, passkeys []models.Passkey) (*protocol.CredentialCreation, *webauthn.SessionData, error) {
	waUser := newWebauthnUser(user, passkeys)

	exclusions := make([]protocol.CredentialDescriptor, 0, len(passkeys))
	for _, cred := range waUser.credentials {
		exclusions = append(exclusions, cred.Descriptor())
	}

	return w.wa.BeginRegistration(waUser,
		webauthn.WithExclusions(exclusions),
		webauthn.WithConveyancePreference(protocol.PreferNoAttestation),
		webauthn.WithAuthenticatorSelection(protocol.AuthenticatorSelection{
			ResidentKey:      protocol.ResidentKeyRequirementPreferred,
			UserVerification: protocol.VerificationPreferred,
		}),
	)
}

// FinishRegistration verifies the authenticator's response read from body and
// returns the new credential as a storable Passkey row.
func (w *WebAuthn) FinishRegistration(user *models.User, passkeys []models.Passkey, session webauthn.SessionData, body io.Reader) (*models.Passkey, error) {
	parsed, err := protocol.ParseCredentialCreationResponseBody(body)
	if err != nil {
		return nil, err
	}

	credential, err := w.wa.CreateCredential(newWebauthnUser(user, passkeys), session, parsed)
	if err != nil {
		return nil, err
	}

	transports := make([]string, 0, len(credential.Transport))
	for _, transport := range credential.Transport {
		transports = append(transports, string(transport))
	}

	return &models.Passkey{
		UserID:       user.ID,
		CredentialID: base64.RawURLEncoding.EncodeToString(credential.ID),
		PublicKey:    credential.PublicKey,
		Counter:      credential.Authenticator.SignCount,
		Transports:   transports,
	}, nil
}

// BeginLogin starts an assertion ceremony against the user's stored
// credentials.
func (w *WebAuthn) BeginLogin(user *models.User, passkeys []models.Passkey) (*protocol.CredentialAssertion, *webauthn.SessionData, error) {
	return w.wa.BeginLogin(newWebauthnUser(user, passkeys))
}

// FinishLogin verifies the assertion read from body. The returned credential
// id and sign count let the caller update the stored row.
func (w *WebAuthn) FinishLogin(user *models.User, passkeys []models.Passkey, session webauthn.SessionData, body io.Reader) (string, uint32, error) {
	parsed, err := protocol.ParseCredentialRequestResponseBody(body)
	if err != nil {
		return "", 0, err
	}

	credential, err := w.wa.ValidateLogin(newWebauthnUser(user, passkeys), session, parsed)
	if err != nil {
		return "", 0, err
	}

	credentialID := base64.RawURLEncoding.EncodeToString(credential.ID)
	return credentialID, credential.Authenticator.SignCount, nil
}

// webauthnUser adapts a stored account to the webauthn.User interface.
type webauthnUser struct {
	user        *models.User
	credentials []webauthn.Credential
}

func newWebauthnUser(user *models.User, passkeys []models.Passkey) *webauthnUser {
	credentials := make([]webauthn.Credential, 0, len(passkeys))
	for _, passkey := range passkeys {
		id, err := base64.RawURLEncoding.DecodeString(passkey.CredentialID)
		if err != nil {
			// A row that cannot decode is unusable; leave it out of the
			// ceremony rather than failing login for the healthy ones.
			continue
		}

		transports := make([]protocol.AuthenticatorTransport, 0, len(passkey.Transports))
		for _, transport := range passkey.Transports {
			transports = append(transports, protocol.AuthenticatorTransport(transport))
		}

		credentials = append(credentials, webauthn.Credential{
			ID:        id,
			PublicKey: passkey.PublicKey,
			Transport: transports,
			Authenticator: webauthn.Authenticator{
				SignCount: passkey.Counter,
			},
		})
	}

	return &webauthnUser{user: user, credentials: credentials}
}

func (u *webauthnUser) WebAuthnID() []byte {
	return []byte(strconv.Itoa(int(u.user.ID)))
}

func (u *webauthnUser) WebAuthnName() string {
	return u.user.Username
}

func (u *webauthnUser) WebAuthnDisplayName() string {
	return u.user.Username
}

func (u *webauthnUser) WebAuthnCredentials() []webauthn.Credential {
	return u.credentials
}

func (u *webauthnUser) WebAuthnIcon() string {
	return ""
}
