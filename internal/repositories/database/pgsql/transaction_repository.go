package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fbsys/fbs_backend/internal/apperrors"
	"github.com/fbsys/fbs_backend/internal/core/domain"
	portsrepo "github.com/fbsys/fbs_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxTransactionRepository persists transactions in PostgreSQL.
type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `
	t.id, t.user_id, t.category_id, c.name, t.type, t.amount, t.date, t.description, t.created_at, t.updated_at`

const transactionFrom = `
	FROM transactions t
	LEFT JOIN categories c ON t.category_id = c.id`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	var categoryName *string
	err := row.Scan(
		&txn.TransactionID,
		&txn.UserID,
		&txn.CategoryID,
		&categoryName,
		&txn.Type,
		&txn.Amount,
		&txn.Date,
		&txn.Description,
		&txn.CreatedAt,
		&txn.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if categoryName != nil {
		txn.CategoryName = *categoryName
	}
	return &txn, nil
}

// SaveTransaction inserts a new transaction and returns it with generated
// fields populated.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, category_id, type, amount, date, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at;
	`
	err := r.Pool.QueryRow(ctx, query,
		txn.UserID,
		txn.CategoryID,
		txn.Type,
		txn.Amount,
		txn.Date,
		txn.Description,
	).Scan(&txn.TransactionID, &txn.CreatedAt, &txn.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}
	return &txn, nil
}

// FindTransactionByID retrieves one transaction scoped to its owner.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID, userID int64) (*domain.Transaction, error) {
	query := `SELECT` + transactionColumns + transactionFrom + `
		WHERE t.id = $1 AND t.user_id = $2;`

	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %d", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to find transaction %d: %w", transactionID, err)
	}
	return txn, nil
}

// ListTransactions returns a filtered page ordered by date desc then
// created_at desc, plus the total matching row count.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID int64, filter portsrepo.TransactionFilter, limit, offset int) ([]domain.Transaction, int64, error) {
	where := ` WHERE t.user_id = $1`
	args := []any{userID}

	appendCond := func(cond string, value any) {
		args = append(args, value)
		where += ` AND ` + cond + `$` + strconv.Itoa(len(args))
	}

	if filter.Type != nil {
		appendCond(`t.type = `, *filter.Type)
	}
	if filter.CategoryID != nil {
		appendCond(`t.category_id = `, *filter.CategoryID)
	}
	if filter.StartDate != nil {
		appendCond(`t.date >= `, *filter.StartDate)
	}
	if filter.EndDate != nil {
		appendCond(`t.date <= `, *filter.EndDate)
	}
	if filter.MinAmount != nil {
		appendCond(`t.amount >= `, *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		appendCond(`t.amount <= `, *filter.MaxAmount)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM transactions t` + where
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	args = append(args, limit, offset)
	query := `SELECT` + transactionColumns + transactionFrom + where +
		` ORDER BY t.date DESC, t.created_at DESC` +
		` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate transaction rows: %w", err)
	}

	return txns, total, nil
}

// FindByDateRange returns all of a user's transactions within the inclusive
// calendar-date range, newest first.
func (r *PgxTransactionRepository) FindByDateRange(ctx context.Context, userID int64, start, end time.Time) ([]domain.Transaction, error) {
	query := `SELECT` + transactionColumns + transactionFrom + `
		WHERE t.user_id = $1 AND t.date >= $2 AND t.date <= $3
		ORDER BY t.date DESC, t.created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by date range: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transaction rows: %w", err)
	}

	return txns, nil
}

// UpdateTransaction persists field changes to an existing transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		UPDATE transactions
		SET category_id = $1, amount = $2, date = $3, description = $4, updated_at = now()
		WHERE id = $5 AND user_id = $6;
	`
	tag, err := r.Pool.Exec(ctx, query,
		txn.CategoryID,
		txn.Amount,
		txn.Date,
		txn.Description,
		txn.TransactionID,
		txn.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %d", apperrors.ErrNotFound, txn.TransactionID)
	}
	return nil
}

// DeleteTransaction removes a transaction scoped to its owner.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID, userID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2;`, transactionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %d", apperrors.ErrNotFound, transactionID)
	}
	return nil
}

// IsDuplicate reports whether an identical transaction already exists.
func (r *PgxTransactionRepository) IsDuplicate(ctx context.Context, userID int64, date time.Time, amount decimal.Decimal, txnType domain.TransactionType, description string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM transactions
			WHERE user_id = $1 AND date = $2 AND amount = $3 AND type = $4 AND description = $5
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, userID, date, amount, txnType, description).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check for duplicate transaction: %w", err)
	}
	return exists, nil
}

// SumByType totals amounts of one type, optionally bounded by an inclusive
// date range.
func (r *PgxTransactionRepository) SumByType(ctx context.Context, userID int64, txnType domain.TransactionType, from, to *time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE user_id = $1 AND type = $2`
	args := []any{userID, txnType}

	if from != nil {
		args = append(args, *from)
		query += ` AND date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND date <= $` + strconv.Itoa(len(args))
	}

	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s transactions: %w", txnType, err)
	}
	return total, nil
}

// CountByUser returns the total number of the user's transactions.
func (r *PgxTransactionRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE user_id = $1;`, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// ExpensesByCategory returns per-category expense totals, largest first.
// Uncategorized expenses are grouped under a nil category ID.
func (r *PgxTransactionRepository) ExpensesByCategory(ctx context.Context, userID int64) ([]domain.CategoryExpense, error) {
	query := `
		SELECT t.category_id, COALESCE(c.name, 'Uncategorized'), SUM(t.amount) AS total
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1 AND t.type = 'expense'
		GROUP BY t.category_id, c.name
		ORDER BY total DESC;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses by category: %w", err)
	}
	defer rows.Close()

	result := []domain.CategoryExpense{}
	for rows.Next() {
		var row domain.CategoryExpense
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &row.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category expense row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category expense rows: %w", err)
	}

	return result, nil
}

// LastUpdateTimestamp returns the newest updated_at among the user's
// transactions in the range, or nil when none exist.
func (r *PgxTransactionRepository) LastUpdateTimestamp(ctx context.Context, userID int64, start, end time.Time) (*time.Time, error) {
	query := `
		SELECT MAX(updated_at) FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date <= $3;
	`
	var last *time.Time
	if err := r.Pool.QueryRow(ctx, query, userID, start, end).Scan(&last); err != nil {
		return nil, fmt.Errorf("failed to query last transaction update: %w", err)
	}
	return last, nil
}
