package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fbsys/fbs_backend/internal/apperrors"
	"github.com/fbsys/fbs_backend/internal/core/domain"
	portsrepo "github.com/fbsys/fbs_backend/internal/core/ports/repositories"
	portssvc "github.com/fbsys/fbs_backend/internal/core/ports/services"
	"github.com/fbsys/fbs_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// transactionService implements the TransactionSvcFacade interface
type transactionService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepositoryFacade
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:      txnRepo,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction records a new transaction after checking that the
// category (if any) matches the transaction type and that the row is not a
// duplicate of an existing one.
func (s *transactionService) CreateTransaction(ctx context.Context, userID int64, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	txnType := domain.TransactionType(req.Type)
	if !txnType.IsValid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, req.Type)
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Date)
	}

	var categoryName string
	if req.CategoryID != nil {
		category, err := s.categoryRepo.FindCategoryByID(ctx, *req.CategoryID, userID)
		if err != nil {
			return nil, err
		}
		if category.Type != txnType {
			return nil, fmt.Errorf("%w: category %q is for %s transactions", apperrors.ErrValidation, category.Name, category.Type)
		}
		categoryName = category.Name
	}

	duplicate, err := s.txnRepo.IsDuplicate(ctx, userID, date, req.Amount, txnType, req.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate transaction: %w", err)
	}
	if duplicate {
		return nil, fmt.Errorf("%w: identical transaction already recorded", apperrors.ErrDuplicate)
	}

	txn := domain.Transaction{
		UserID:       userID,
		CategoryID:   req.CategoryID,
		CategoryName: categoryName,
		Type:         txnType,
		Amount:       req.Amount,
		Date:         date,
		Description:  req.Description,
	}

	saved, err := s.txnRepo.SaveTransaction(ctx, txn)
	if err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.Int64("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created",
		slog.Int64("user_id", userID),
		slog.Int64("transaction_id", saved.TransactionID))
	return saved, nil
}

// GetTransactionByID retrieves one transaction scoped to its owner.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID, userID int64) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, transactionID, userID)
}

// ListTransactions returns a filtered page plus the total row count.
func (s *transactionService) ListTransactions(ctx context.Context, userID int64, params dto.ListTransactionsParams) ([]domain.Transaction, int64, error) {
	filter, err := buildTransactionFilter(params)
	if err != nil {
		return nil, 0, err
	}

	offset := (params.Page - 1) * params.PerPage
	return s.txnRepo.ListTransactions(ctx, userID, filter, params.PerPage, offset)
}

// UpdateTransaction applies the supplied field changes and returns the
// updated transaction.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID, userID int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID, userID)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		category, err := s.categoryRepo.FindCategoryByID(ctx, *req.CategoryID, userID)
		if err != nil {
			return nil, err
		}
		if category.Type != txn.Type {
			return nil, fmt.Errorf("%w: category %q is for %s transactions", apperrors.ErrValidation, category.Name, category.Type)
		}
		txn.CategoryID = req.CategoryID
		txn.CategoryName = category.Name
	}
	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
		}
		txn.Amount = *req.Amount
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, *req.Date)
		}
		txn.Date = date
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction",
			slog.Int64("user_id", userID),
			slog.Int64("transaction_id", transactionID))
		return nil, err
	}

	return s.txnRepo.FindTransactionByID(ctx, transactionID, userID)
}

// DeleteTransaction removes a transaction scoped to its owner.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID, userID int64) error {
	if err := s.txnRepo.DeleteTransaction(ctx, transactionID, userID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Transaction deleted",
		slog.Int64("user_id", userID),
		slog.Int64("transaction_id", transactionID))
	return nil
}

// GetSummary computes lifetime totals plus month-over-month trends as of
// the given reference time.
func (s *transactionService) GetSummary(ctx context.Context, userID int64, now time.Time) (*domain.TransactionSummary, error) {
	income, err := s.txnRepo.SumByType(ctx, userID, domain.Income, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to sum income: %w", err)
	}
	expenses, err := s.txnRepo.SumByType(ctx, userID, domain.Expense, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}
	count, err := s.txnRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	thisMonthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonthStart := thisMonthStart.AddDate(0, -1, 0)
	lastMonthEnd := thisMonthStart.AddDate(0, 0, -1)

	incomeThisMonth, err := s.txnRepo.SumByType(ctx, userID, domain.Income, &thisMonthStart, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to sum this month's income: %w", err)
	}
	incomeLastMonth, err := s.txnRepo.SumByType(ctx, userID, domain.Income, &lastMonthStart, &lastMonthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to sum last month's income: %w", err)
	}
	expensesThisMonth, err := s.txnRepo.SumByType(ctx, userID, domain.Expense, &thisMonthStart, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to sum this month's expenses: %w", err)
	}
	expensesLastMonth, err := s.txnRepo.SumByType(ctx, userID, domain.Expense, &lastMonthStart, &lastMonthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to sum last month's expenses: %w", err)
	}

	netThisMonth := incomeThisMonth.Sub(expensesThisMonth)
	netLastMonth := incomeLastMonth.Sub(expensesLastMonth)

	return &domain.TransactionSummary{
		TotalIncome:         income,
		TotalExpenses:       expenses,
		NetBalance:          income.Sub(expenses),
		TransactionCount:    count,
		IncomeThisMonth:     incomeThisMonth,
		ExpensesThisMonth:   expensesThisMonth,
		NetBalanceThisMonth: netThisMonth,
		IncomeTrend:         domain.TrendPercentage(incomeThisMonth, incomeLastMonth),
		ExpenseTrend:        domain.TrendPercentage(expensesThisMonth, expensesLastMonth),
		NetBalanceTrend:     domain.TrendPercentage(netThisMonth, netLastMonth),
	}, nil
}

// GetExpensesByCategory returns per-category expense totals, largest first.
func (s *transactionService) GetExpensesByCategory(ctx context.Context, userID int64) ([]domain.CategoryExpense, error) {
	return s.txnRepo.ExpensesByCategory(ctx, userID)
}

func buildTransactionFilter(params dto.ListTransactionsParams) (portsrepo.TransactionFilter, error) {
	var filter portsrepo.TransactionFilter

	if params.Type != "" {
		txnType := domain.TransactionType(params.Type)
		filter.Type = &txnType
	}
	filter.CategoryID = params.CategoryID

	if params.StartDate != "" {
		start, err := time.Parse("2006-01-02", params.StartDate)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid start_date %q", apperrors.ErrValidation, params.StartDate)
		}
		filter.StartDate = &start
	}
	if params.EndDate != "" {
		end, err := time.Parse("2006-01-02", params.EndDate)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid end_date %q", apperrors.ErrValidation, params.EndDate)
		}
		filter.EndDate = &end
	}

	if params.MinAmount != nil {
		min := decimal.NewFromFloat(*params.MinAmount)
		filter.MinAmount = &min
	}
	if params.MaxAmount != nil {
		max := decimal.NewFromFloat(*params.MaxAmount)
		filter.MaxAmount = &max
	}

	return filter, nil
}
