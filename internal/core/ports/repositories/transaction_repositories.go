package repositories

import (
	"context"
	"time"

	"github.com/fbsys/fbs_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionFilter narrows a transaction listing. Nil fields are ignored.
type TransactionFilter struct {
	Type       *domain.TransactionType
	CategoryID *int64
	StartDate  *time.Time
	EndDate    *time.Time
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
}

// TransactionRepositoryFacade defines persistence operations for transactions.
// Date-range filters are inclusive on both ends and compare calendar dates,
// not timestamps.
type TransactionRepositoryFacade interface {
	// SaveTransaction inserts a new transaction and returns it with its
	// generated ID and timestamps populated.
	SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)

	// FindTransactionByID retrieves one transaction scoped to its owner.
	FindTransactionByID(ctx context.Context, transactionID, userID int64) (*domain.Transaction, error)

	// ListTransactions returns a filtered page ordered by date desc, then
	// created_at desc, plus the total row count for pagination metadata.
	ListTransactions(ctx context.Context, userID int64, filter TransactionFilter, limit, offset int) ([]domain.Transaction, int64, error)

	// FindByDateRange returns all of a user's transactions within the range.
	FindByDateRange(ctx context.Context, userID int64, start, end time.Time) ([]domain.Transaction, error)

	// UpdateTransaction persists field changes to an existing transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction scoped to its owner.
	DeleteTransaction(ctx context.Context, transactionID, userID int64) error

	// IsDuplicate reports whether an identical transaction already exists
	// for the user (same date, amount, type and description).
	IsDuplicate(ctx context.Context, userID int64, date time.Time, amount decimal.Decimal, txnType domain.TransactionType, description string) (bool, error)

	// SumByType totals amounts of the given type, optionally bounded by an
	// inclusive date range (nil bounds are open).
	SumByType(ctx context.Context, userID int64, txnType domain.TransactionType, from, to *time.Time) (decimal.Decimal, error)

	// CountByUser returns the total number of the user's transactions.
	CountByUser(ctx context.Context, userID int64) (int, error)

	// ExpensesByCategory returns per-category expense totals, largest first.
	ExpensesByCategory(ctx context.Context, userID int64) ([]domain.CategoryExpense, error)

	// LastUpdateTimestamp returns the newest updated_at among the user's
	// transactions in the range, or nil when none exist.
	LastUpdateTimestamp(ctx context.Context, userID int64, start, end time.Time) (*time.Time, error)
}
