package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"beer_machine/internal/ledger"
	"beer_machine/internal/models"
)

const (
	userColumns = `id, username, password, credits, date_of_birth, user_type, is_active`

	getUserByUsernameQuery = `SELECT ` + userColumns + ` FROM users WHERE username = $1;`
	getUserByIDQuery       = `SELECT ` + userColumns + ` FROM users WHERE id = $1;`
	createUserQuery        = `INSERT INTO users (username, password, credits, date_of_birth, user_type, is_active) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;`
	updateUserQuery        = `UPDATE users SET username = $1, password = $2, credits = $3, date_of_birth = $4, user_type = $5, is_active = $6, updated_at = NOW() WHERE id = $7;`
	countActiveAdminsQuery = `SELECT COUNT(*) FROM users WHERE user_type = 'admin' AND is_active = TRUE;`

	getUserForUpdateQuery     = `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE;`
	getAdminUsernameQuery     = `SELECT username FROM users WHERE id = $1;`
	updateUserCreditsQuery    = `UPDATE users SET credits = $1, updated_at = NOW() WHERE id = $2;`
	insertCreditAdditionQuery = `INSERT INTO transactions (user_id, admin_id, type, amount, description) VALUES ($1, $2, 'credit_addition', $3, $4) RETURNING id;`
)

func scanUser(row *sql.Row, user *models.User) error {
	return row.Scan(&user.ID, &user.Username, &user.Password, &user.Credits,
		&user.DateOfBirth, &user.UserType, &user.IsActive)
}

// GetUserByUsername retrieves a user by their unique username.
func (postgresql *PostgreSQL) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}

	err := scanUser(postgresql.db.QueryRowContext(ctx, getUserByUsernameQuery, username), user)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrUserNotFound
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query getUserByUsernameQuery: %s", err)
		return nil, err
	}

	return user, nil
}

// GetUserByID retrieves a user by their primary key.
func (postgresql *PostgreSQL) GetUserByID(ctx context.Context, userID int32) (*models.User, error) {
	user := &models.User{}

	err := scanUser(postgresql.db.QueryRowContext(ctx, getUserByIDQuery, userID), user)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrUserNotFound
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query getUserByIDQuery: %s", err)
		return nil, err
	}

	return user, nil
}

// CreateUser inserts a new user row and returns it with its assigned id.
// The password, when present, must already be hashed by the caller.
func (postgresql *PostgreSQL) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	err := postgresql.db.QueryRowContext(ctx, createUserQuery,
		user.Username, user.Password, user.Credits, user.DateOfBirth, user.UserType, user.IsActive).Scan(&user.ID)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query createUserQuery: %s", err)
		return user, err
	}
	return user, nil
}

// UpdateUser persists all mutable fields of the given user.
func (postgresql *PostgreSQL) UpdateUser(ctx context.Context, user *models.User) error {
	result, err := postgresql.db.ExecContext(ctx, updateUserQuery,
		user.Username, user.Password, user.Credits, user.DateOfBirth, user.UserType, user.IsActive, user.ID)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query updateUserQuery: %s", err)
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute RowsAffected in updateUserQuery: %s", err)
		return err
	}
	if rows == 0 {
		return ledger.ErrUserNotFound
	}

	return nil
}

// ListUsers returns a page of users matching the filter, ordered by
// username, along with the total match count for pagination.
func (postgresql *PostgreSQL) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	conditions := []string{"TRUE"}
	args := []any{}

	if filter.UserType != "" {
		args = append(args, filter.UserType)
		conditions = append(conditions, "user_type = $"+strconv.Itoa(len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, "username ILIKE $"+strconv.Itoa(len(args)))
	}
	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM users WHERE ` + where
	if err := postgresql.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		postgresql.log.Sugar().Errorf("Failed to count users in ListUsers: %s", err)
		return nil, 0, err
	}

	// A non-positive limit means no pagination: LIMIT NULL reads everything.
	var limit any
	offset := 0
	if filter.Limit > 0 {
		limit = filter.Limit
		offset = (filter.Page - 1) * filter.Limit
	}
	args = append(args, limit, offset)
	listQuery := fmt.Sprintf(`SELECT %s FROM users WHERE %s ORDER BY username ASC LIMIT $%d OFFSET $%d`,
		userColumns, where, len(args)-1, len(args))

	rows, err := postgresql.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query in ListUsers: %s", err)
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user := models.User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.Password, &user.Credits,
			&user.DateOfBirth, &user.UserType, &user.IsActive); err != nil {
			postgresql.log.Sugar().Errorf("Failed to scan user row in ListUsers: %s", err)
			return nil, 0, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		postgresql.log.Sugar().Errorf("The last error encountered by Rows.Scan in ListUsers: %s", err)
		return users, total, err
	}

	return users, total, nil
}

// CountActiveAdmins returns the number of active admin accounts. Used to
// refuse deactivating the last one.
func (postgresql *PostgreSQL) CountActiveAdmins(ctx context.Context) (int, error) {
	var count int
	if err := postgresql.db.QueryRowContext(ctx, countActiveAdminsQuery).Scan(&count); err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query countActiveAdminsQuery: %s", err)
		return 0, err
	}
	return count, nil
}

// AddUserCredits tops up a user's balance in blocks of 10 and records the
// credit_addition ledger entry, both inside one transaction so that the
// balance and the ledger can never disagree.
func (postgresql *PostgreSQL) AddUserCredits(ctx context.Context, userID int32, amount int, adminID int32) (*models.User, error) {
	tx, err := postgresql.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	user, err := postgresql.getUserForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	if err = ledger.AddCredits(user, amount); err != nil {
		return nil, err
	}

	if err = postgresql.updateUserCredits(ctx, tx, user); err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Credits added: %d", amount)
	var transactionID int64
	err = tx.QueryRowContext(ctx, insertCreditAdditionQuery, user.ID, adminID, amount, description).Scan(&transactionID)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query insertCreditAdditionQuery: %s", err)
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return user, nil
}

// getUserForUpdate loads a user inside the transaction with a row lock, so
// concurrent units of work on the same account serialize.
func (postgresql *PostgreSQL) getUserForUpdate(ctx context.Context, tx *sql.Tx, userID int32) (*models.User, error) {
	user := &models.User{}

	err := tx.QueryRowContext(ctx, getUserForUpdateQuery, userID).Scan(&user.ID, &user.Username,
		&user.Password, &user.Credits, &user.DateOfBirth, &user.UserType, &user.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrUserNotFound
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query getUserForUpdateQuery: %s", err)
		return nil, err
	}

	return user, nil
}

// updateUserCredits persists the already-validated balance of the user row.
func (postgresql *PostgreSQL) updateUserCredits(ctx context.Context, tx *sql.Tx, user *models.User) error {
	result, err := tx.ExecContext(ctx, updateUserCreditsQuery, user.Credits, user.ID)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query updateUserCreditsQuery: %s", err)
		return err
	}
	if _, err = result.RowsAffected(); err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute RowsAffected in updateUserCreditsQuery: %s", err)
		return err
	}

	return nil
}

// getAdminBrief resolves the operating admin's username inside the same
// transaction as the operation it will be reported with.
func (postgresql *PostgreSQL) getAdminBrief(ctx context.Context, tx *sql.Tx, adminID int32) (models.AdminBrief, error) {
	admin := models.AdminBrief{ID: adminID}

	err := tx.QueryRowContext(ctx, getAdminUsernameQuery, adminID).Scan(&admin.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return admin, ledger.ErrUserNotFound
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query getAdminUsernameQuery: %s", err)
		return admin, err
	}

	return admin, nil
}
