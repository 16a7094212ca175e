package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"beer_machine/internal/models"
)

const (
	passkeyColumns = `id, user_id, credential_id, public_key, counter, transports, device_name, last_used_at`

	createPasskeyQuery          = `INSERT INTO passkeys (user_id, credential_id, public_key, counter, transports, device_name) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;`
	getPasskeysByUserQuery      = `SELECT ` + passkeyColumns + ` FROM passkeys WHERE user_id = $1 ORDER BY id ASC;`
	getPasskeyByCredentialQuery = `SELECT ` + passkeyColumns + ` FROM passkeys WHERE credential_id = $1;`
	updatePasskeyCounterQuery   = `UPDATE passkeys SET counter = $1, last_used_at = NOW() WHERE credential_id = $2;`
	deletePasskeyQuery          = `DELETE FROM passkeys WHERE id = $1 AND user_id = $2;`
)

// Transports are stored as a comma-joined text column; the set is tiny
// (usb, nfc, ble, internal, hybrid) and never queried individually.
func joinTransports(transports []string) string {
	return strings.Join(transports, ",")
}

func splitTransports(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}

// CreatePasskey stores a newly registered WebAuthn credential.
func (postgresql *PostgreSQL) CreatePasskey(ctx context.Context, passkey *models.Passkey) (*models.Passkey, error) {
	err := postgresql.db.QueryRowContext(ctx, createPasskeyQuery, passkey.UserID, passkey.CredentialID,
		passkey.PublicKey, passkey.Counter, joinTransports(passkey.Transports), passkey.DeviceName).Scan(&passkey.ID)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query createPasskeyQuery: %s", err)
		return passkey, err
	}
	return passkey, nil
}

// GetPasskeysByUser lists the stored credentials of one account.
func (postgresql *PostgreSQL) GetPasskeysByUser(ctx context.Context, userID int32) ([]models.Passkey, error) {
	rows, err := postgresql.db.QueryContext(ctx, getPasskeysByUserQuery, userID)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query getPasskeysByUserQuery: %s", err)
		return nil, err
	}
	defer rows.Close()

	passkeys := make([]models.Passkey, 0)
	for rows.Next() {
		passkey := models.Passkey{}
		var transports string
		if err := rows.Scan(&passkey.ID, &passkey.UserID, &passkey.CredentialID, &passkey.PublicKey,
			&passkey.Counter, &transports, &passkey.DeviceName, &passkey.LastUsedAt); err != nil {
			postgresql.log.Sugar().Errorf("Failed to scan passkey row in GetPasskeysByUser: %s", err)
			return nil, err
		}
		passkey.Transports = splitTransports(transports)
		passkeys = append(passkeys, passkey)
	}
	if err := rows.Err(); err != nil {
		postgresql.log.Sugar().Errorf("The last error encountered by Rows.Scan in GetPasskeysByUser: %s", err)
		return passkeys, err
	}

	return passkeys, nil
}

// GetPasskeyByCredentialID resolves a credential presented during login.
func (postgresql *PostgreSQL) GetPasskeyByCredentialID(ctx context.Context, credentialID string) (*models.Passkey, error) {
	passkey := &models.Passkey{}
	var transports string

	err := postgresql.db.QueryRowContext(ctx, getPasskeyByCredentialQuery, credentialID).Scan(&passkey.ID,
		&passkey.UserID, &passkey.CredentialID, &passkey.PublicKey, &passkey.Counter,
		&transports, &passkey.DeviceName, &passkey.LastUsedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query getPasskeyByCredentialQuery: %s", err)
		return nil, err
	}
	passkey.Transports = splitTransports(transports)

	return passkey, nil
}

// UpdatePasskeySignCount records the authenticator's counter and last-used
// timestamp after a successful assertion.
func (postgresql *PostgreSQL) UpdatePasskeySignCount(ctx context.Context, credentialID string, counter uint32) error {
	result, err := postgresql.db.ExecContext(ctx, updatePasskeyCounterQuery, counter, credentialID)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query updatePasskeyCounterQuery: %s", err)
		return err
	}
	if _, err = result.RowsAffected(); err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute RowsAffected in updatePasskeyCounterQuery: %s", err)
		return err
	}

	return nil
}

// DeletePasskey removes one of the owner's credentials. The user id is part
// of the predicate so an account can only delete its own passkeys.
func (postgresql *PostgreSQL) DeletePasskey(ctx context.Context, userID, passkeyID int32) error {
	result, err := postgresql.db.ExecContext(ctx, deletePasskeyQuery, passkeyID, userID)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query deletePasskeyQuery: %s", err)
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute RowsAffected in deletePasskeyQuery: %s", err)
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
