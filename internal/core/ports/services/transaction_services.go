package services

import (
	"context"
	"time"

	"github.com/fbsys/fbs_backend/internal/core/domain"
	"github.com/fbsys/fbs_backend/internal/dto"
)

// TransactionSvcFacade defines the application operations on transactions.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, userID int64, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, transactionID, userID int64) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID int64, params dto.ListTransactionsParams) ([]domain.Transaction, int64, error)
	UpdateTransaction(ctx context.Context, transactionID, userID int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID, userID int64) error

	// GetSummary computes lifetime totals and month-over-month trends as of
	// the given reference time.
	GetSummary(ctx context.Context, userID int64, now time.Time) (*domain.TransactionSummary, error)

	// GetExpensesByCategory returns the per-category expense breakdown.
	GetExpensesByCategory(ctx context.Context, userID int64) ([]domain.CategoryExpense, error)
}
