package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"beer_machine/internal/ledger"
	"beer_machine/internal/models"
)

const (
	insertSaleQuery = `INSERT INTO transactions (user_id, drink_id, admin_id, type, amount, quantity, description) VALUES ($1, $2, $3, 'sale', $4, $5, $6) RETURNING id;`

	getTransactionForUpdateQuery = `SELECT id, user_id, drink_id, admin_id, type, amount, quantity, description, transaction_date FROM transactions WHERE id = $1 FOR UPDATE;`
	deleteTransactionQuery       = `DELETE FROM transactions WHERE id = $1;`

	salesStatsQuery  = `SELECT COUNT(id), COALESCE(SUM(amount), 0), COALESCE(SUM(quantity), 0) FROM transactions WHERE type = 'sale'`
	creditStatsQuery = `SELECT COUNT(id), COALESCE(SUM(amount), 0) FROM transactions WHERE type = 'credit_addition'`
	topDrinksQuery   = `SELECT t.drink_id, d.name, COUNT(t.id), SUM(t.quantity), SUM(t.amount) FROM transactions t JOIN drinks d ON t.drink_id = d.id WHERE t.type = 'sale'`
)

// SellDrink is the sale coordinator. Inside one transaction it locks the
// buyer and the drink, validates availability and balance, applies the
// checked deductions, and appends the sale to the ledger. Any failure rolls
// everything back: a credit debit without a matching stock debit is never
// observable. The operation is not idempotent and is never retried.
func (postgresql *PostgreSQL) SellDrink(ctx context.Context, buyerID, drinkID int32, quantity int, adminID int32) (*models.SaleResult, error) {
	if quantity <= 0 {
		quantity = 1
	}

	tx, err := postgresql.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	user, err := postgresql.getUserForUpdate(ctx, tx, buyerID)
	if err != nil {
		return nil, err
	}

	drink, err := postgresql.getDrinkForUpdate(ctx, tx, drinkID)
	if err != nil {
		return nil, err
	}

	if !ledger.InStock(drink) || drink.Stock < quantity {
		return nil, ledger.ErrDrinkUnavailable
	}

	totalCost := drink.Price * quantity

	if err = ledger.DeductCredits(user, totalCost); err != nil {
		return nil, err
	}
	if err = ledger.DeductStock(drink, quantity); err != nil {
		return nil, err
	}

	if err = postgresql.updateUserCredits(ctx, tx, user); err != nil {
		return nil, err
	}
	if err = postgresql.updateDrinkStock(ctx, tx, drink); err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Sale: %dx %s", quantity, drink.Name)
	var transactionID int64
	err = tx.QueryRowContext(ctx, insertSaleQuery,
		user.ID, drink.ID, adminID, totalCost, quantity, description).Scan(&transactionID)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query insertSaleQuery: %s", err)
		return nil, err
	}

	admin, err := postgresql.getAdminBrief(ctx, tx, adminID)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return &models.SaleResult{
		TransactionID: transactionID,
		User:          models.SaleUser{ID: user.ID, Username: user.Username, RemainingCredits: user.Credits},
		Drink:         models.SaleDrink{ID: drink.ID, Name: drink.Name, RemainingStock: drink.Stock},
		Quantity:      quantity,
		TotalCost:     totalCost,
		Admin:         admin,
	}, nil
}

// UndoTransaction is the compensating coordinator. Inside one transaction it
// locks the ledger entry and its subject, reverses the entry's financial and
// stock effect through the unchecked mutators, and deletes the entry. A sale
// whose drink row no longer exists restores credits only; the stock
// restoration is skipped, not errored.
func (postgresql *PostgreSQL) UndoTransaction(ctx context.Context, transactionID int64, adminID int32) (*models.UndoResult, error) {
	tx, err := postgresql.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	entry := models.Transaction{}
	err = tx.QueryRowContext(ctx, getTransactionForUpdateQuery, transactionID).Scan(&entry.ID,
		&entry.UserID, &entry.DrinkID, &entry.AdminID, &entry.Type, &entry.Amount,
		&entry.Quantity, &entry.Description, &entry.TransactionDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ledger.ErrTransactionNotFound
	}
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query getTransactionForUpdateQuery: %s", err)
		return nil, err
	}

	user, err := postgresql.getUserForUpdate(ctx, tx, entry.UserID)
	if err != nil {
		return nil, err
	}

	var undoDrink *models.UndoDrink

	switch entry.Type {
	case models.TransactionSale:
		ledger.AddCreditsUnchecked(user, entry.Amount)

		if entry.DrinkID != nil {
			drink, err := postgresql.getDrinkForUpdate(ctx, tx, *entry.DrinkID)
			switch {
			case errors.Is(err, ledger.ErrDrinkNotFound):
				// Drink removed since the sale: restore credits only.
			case err != nil:
				return nil, err
			default:
				quantity := entry.Quantity
				if quantity <= 0 {
					quantity = 1
				}
				if err = ledger.AddStock(drink, quantity); err != nil {
					return nil, err
				}
				if err = postgresql.updateDrinkStock(ctx, tx, drink); err != nil {
					return nil, err
				}
				undoDrink = &models.UndoDrink{ID: drink.ID, Name: drink.Name, NewStock: drink.Stock}
			}
		}

	case models.TransactionCreditAddition:
		if err = ledger.DeductCreditsUnchecked(user, entry.Amount); err != nil {
			return nil, err
		}

	default:
		return nil, ledger.ErrUnsupportedTransactionType
	}

	if err = postgresql.updateUserCredits(ctx, tx, user); err != nil {
		return nil, err
	}

	result, err := tx.ExecContext(ctx, deleteTransactionQuery, entry.ID)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query deleteTransactionQuery: %s", err)
		return nil, err
	}
	if _, err = result.RowsAffected(); err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute RowsAffected in deleteTransactionQuery: %s", err)
		return nil, err
	}

	admin, err := postgresql.getAdminBrief(ctx, tx, adminID)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return &models.UndoResult{
		Transaction: models.UndoTransactionInfo{ID: entry.ID, Type: entry.Type, Amount: entry.Amount, Quantity: entry.Quantity},
		User:        models.UndoUser{ID: user.ID, Username: user.Username, NewCredits: user.Credits},
		Drink:       undoDrink,
		UndoneBy:    admin,
	}, nil
}

// ListTransactions returns a page of ledger history matching the filter,
// newest first, with usernames and drink names joined in for display.
func (postgresql *PostgreSQL) ListTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, int, error) {
	conditions := []string{"TRUE"}
	args := []any{}

	if filter.UserID != 0 {
		args = append(args, filter.UserID)
		conditions = append(conditions, "t.user_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Type == models.TransactionSale || filter.Type == models.TransactionCreditAddition {
		args = append(args, filter.Type)
		conditions = append(conditions, "t.type = $"+strconv.Itoa(len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, "t.transaction_date >= $"+strconv.Itoa(len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, "t.transaction_date <= $"+strconv.Itoa(len(args)))
	}
	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM transactions t WHERE ` + where
	if err := postgresql.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		postgresql.log.Sugar().Errorf("Failed to count transactions in ListTransactions: %s", err)
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)
	listQuery := fmt.Sprintf(`SELECT t.id, t.user_id, t.drink_id, t.admin_id, t.type, t.amount, t.quantity, t.description, t.transaction_date, u.username, a.username, d.name
		FROM transactions t
		JOIN users u ON t.user_id = u.id
		JOIN users a ON t.admin_id = a.id
		LEFT JOIN drinks d ON t.drink_id = d.id
		WHERE %s ORDER BY t.transaction_date DESC LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := postgresql.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query in ListTransactions: %s", err)
		return nil, 0, err
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0, filter.Limit)
	for rows.Next() {
		t := models.Transaction{}
		if err := rows.Scan(&t.ID, &t.UserID, &t.DrinkID, &t.AdminID, &t.Type, &t.Amount,
			&t.Quantity, &t.Description, &t.TransactionDate, &t.Username, &t.AdminUsername, &t.DrinkName); err != nil {
			postgresql.log.Sugar().Errorf("Failed to scan transaction row in ListTransactions: %s", err)
			return nil, 0, err
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		postgresql.log.Sugar().Errorf("The last error encountered by Rows.Scan in ListTransactions: %s", err)
		return transactions, total, err
	}

	return transactions, total, nil
}

// GetSalesStats aggregates the ledger over an optional date range: sale and
// credit-addition totals plus the ten best-selling drinks by quantity.
func (postgresql *PostgreSQL) GetSalesStats(ctx context.Context, startDate, endDate *time.Time) (*models.SalesStats, error) {
	stats := &models.SalesStats{}

	dateFilter := func(base string, args []any) (string, []any) {
		if startDate != nil {
			args = append(args, *startDate)
			base += " AND transaction_date >= $" + strconv.Itoa(len(args))
		}
		if endDate != nil {
			args = append(args, *endDate)
			base += " AND transaction_date <= $" + strconv.Itoa(len(args))
		}
		return base, args
	}

	query, args := dateFilter(salesStatsQuery, nil)
	err := postgresql.db.QueryRowContext(ctx, query+";", args...).Scan(&stats.TotalSales, &stats.TotalRevenue, &stats.TotalItemsSold)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query salesStatsQuery: %s", err)
		return nil, err
	}

	query, args = dateFilter(creditStatsQuery, nil)
	err = postgresql.db.QueryRowContext(ctx, query+";", args...).Scan(&stats.TotalCreditAdditions, &stats.TotalCreditsAdded)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query creditStatsQuery: %s", err)
		return nil, err
	}

	topQuery := topDrinksQuery
	args = nil
	if startDate != nil {
		args = append(args, *startDate)
		topQuery += " AND t.transaction_date >= $" + strconv.Itoa(len(args))
	}
	if endDate != nil {
		args = append(args, *endDate)
		topQuery += " AND t.transaction_date <= $" + strconv.Itoa(len(args))
	}
	topQuery += " GROUP BY t.drink_id, d.name ORDER BY SUM(t.quantity) DESC LIMIT 10;"

	rows, err := postgresql.db.QueryContext(ctx, topQuery, args...)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query topDrinksQuery: %s", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		top := models.TopDrink{}
		if err := rows.Scan(&top.DrinkID, &top.Name, &top.SalesCount, &top.TotalQuantity, &top.TotalRevenue); err != nil {
			postgresql.log.Sugar().Errorf("Failed to scan top drink row in GetSalesStats: %s", err)
			return nil, err
		}
		stats.TopDrinks = append(stats.TopDrinks, top)
	}
	if err := rows.Err(); err != nil {
		postgresql.log.Sugar().Errorf("The last error encountered by Rows.Scan in GetSalesStats: %s", err)
		return stats, err
	}

	return stats, nil
}
