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
	drinkColumns = `id, name, description, price, stock, is_active, category`

	createDrinkQuery       = `INSERT INTO drinks (name, description, price, stock, category) VALUES ($1, $2, $3, $4, $5) RETURNING id;`
	getDrinkByIDQuery      = `SELECT ` + drinkColumns + ` FROM drinks WHERE id = $1;`
	updateDrinkQuery       = `UPDATE drinks SET name = $1, description = $2, price = $3, stock = $4, is_active = $5, category = $6, updated_at = NOW() WHERE id = $7;`
	deactivateDrinkQuery   = `UPDATE drinks SET is_active = FALSE, updated_at = NOW() WHERE id = $1;`
	getDrinkForUpdateQuery = `SELECT ` + drinkColumns + ` FROM drinks WHERE id = $1 FOR UPDATE;`
	updateDrinkStockQuery  = `UPDATE drinks SET stock = $1, updated_at = NOW() WHERE id = $2;`
)

// CreateDrink inserts a new drink row and returns it with its assigned id.
func (postgresql *PostgreSQL) CreateDrink(ctx context.Context, drink *models.Drink) (*models.Drink, error) {
	err := postgresql.db.QueryRowContext(ctx, createDrinkQuery,
		drink.Name, drink.Description, drink.Price, drink.Stock, drink.Category).Scan(&drink.ID)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query createDrinkQuery: %s", err)
		return drink, err
	}
	drink.IsActive = true
	return drink, nil
}

// GetDrinkByID retrieves a drink by its primary key.
func (postgresql *PostgreSQL) GetDrinkByID(ctx context.Context, drinkID int32) (*models.Drink, error) {
	drink := &models.Drink{}

	err := postgresql.db.QueryRowContext(ctx, getDrinkByIDQuery, drinkID).Scan(&drink.ID, &drink.Name,
		&drink.Description, &drink.Price, &drink.Stock, &drink.IsActive, &drink.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrDrinkNotFound
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query getDrinkByIDQuery: %s", err)
		return nil, err
	}

	return drink, nil
}

// UpdateDrink persists all mutable fields of the given drink.
func (postgresql *PostgreSQL) UpdateDrink(ctx context.Context, drink *models.Drink) error {
	result, err := postgresql.db.ExecContext(ctx, updateDrinkQuery,
		drink.Name, drink.Description, drink.Price, drink.Stock, drink.IsActive, drink.Category, drink.ID)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query updateDrinkQuery: %s", err)
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute RowsAffected in updateDrinkQuery: %s", err)
		return err
	}
	if rows == 0 {
		return ledger.ErrDrinkNotFound
	}

	return nil
}

// ListDrinks returns a page of drinks matching the filter, ordered by name,
// along with the total match count for pagination.
func (postgresql *PostgreSQL) ListDrinks(ctx context.Context, filter models.DrinkFilter) ([]models.Drink, int, error) {
	conditions := []string{"TRUE"}
	args := []any{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, "name ILIKE $"+strconv.Itoa(len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, "category = $"+strconv.Itoa(len(args)))
	}
	if filter.InStock {
		conditions = append(conditions, "stock > 0 AND is_active = TRUE")
	}
	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM drinks WHERE ` + where
	if err := postgresql.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		postgresql.log.Sugar().Errorf("Failed to count drinks in ListDrinks: %s", err)
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)
	listQuery := fmt.Sprintf(`SELECT %s FROM drinks WHERE %s ORDER BY name ASC LIMIT $%d OFFSET $%d`,
		drinkColumns, where, len(args)-1, len(args))

	rows, err := postgresql.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query in ListDrinks: %s", err)
		return nil, 0, err
	}
	defer rows.Close()

	drinks := make([]models.Drink, 0, filter.Limit)
	for rows.Next() {
		drink := models.Drink{}
		if err := rows.Scan(&drink.ID, &drink.Name, &drink.Description, &drink.Price,
			&drink.Stock, &drink.IsActive, &drink.Category); err != nil {
			postgresql.log.Sugar().Errorf("Failed to scan drink row in ListDrinks: %s", err)
			return nil, 0, err
		}
		drinks = append(drinks, drink)
	}
	if err := rows.Err(); err != nil {
		postgresql.log.Sugar().Errorf("The last error encountered by Rows.Scan in ListDrinks: %s", err)
		return drinks, total, err
	}

	return drinks, total, nil
}

// AddDrinkStock increases a drink's stock inside one transaction, applying
// the positive-quantity rule before persisting.
func (postgresql *PostgreSQL) AddDrinkStock(ctx context.Context, drinkID int32, quantity int) (*models.Drink, error) {
	tx, err := postgresql.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	drink, err := postgresql.getDrinkForUpdate(ctx, tx, drinkID)
	if err != nil {
		return nil, err
	}

	if err = ledger.AddStock(drink, quantity); err != nil {
		return nil, err
	}

	if err = postgresql.updateDrinkStock(ctx, tx, drink); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return drink, nil
}

// DeactivateDrink soft-deletes a drink so it stops being sellable while its
// historical ledger entries keep resolving.
func (postgresql *PostgreSQL) DeactivateDrink(ctx context.Context, drinkID int32) error {
	result, err := postgresql.db.ExecContext(ctx, deactivateDrinkQuery, drinkID)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query deactivateDrinkQuery: %s", err)
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute RowsAffected in deactivateDrinkQuery: %s", err)
		return err
	}
	if rows == 0 {
		return ledger.ErrDrinkNotFound
	}

	return nil
}

// getDrinkForUpdate loads a drink inside the transaction with a row lock.
func (postgresql *PostgreSQL) getDrinkForUpdate(ctx context.Context, tx *sql.Tx, drinkID int32) (*models.Drink, error) {
	drink := &models.Drink{}

	err := tx.QueryRowContext(ctx, getDrinkForUpdateQuery, drinkID).Scan(&drink.ID, &drink.Name,
		&drink.Description, &drink.Price, &drink.Stock, &drink.IsActive, &drink.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrDrinkNotFound
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query getDrinkForUpdateQuery: %s", err)
		return nil, err
	}

	return drink, nil
}

// updateDrinkStock persists the already-validated stock of the drink row.
func (postgresql *PostgreSQL) updateDrinkStock(ctx context.Context, tx *sql.Tx, drink *models.Drink) error {
	result, err := tx.ExecContext(ctx, updateDrinkStockQuery, drink.Stock, drink.ID)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query updateDrinkStockQuery: %s", err)
		return err
	}
	if _, err = result.RowsAffected(); err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute RowsAffected in updateDrinkStockQuery: %s", err)
		return err
	}

	return nil
}
