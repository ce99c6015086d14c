package dto

import (
	"time"

	"github.com/fbsys/fbs_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// Amount is always non-negative; direction is carried by Type.
type CreateTransactionRequest struct {
	CategoryID  *int64          `json:"category_id"`
	Type        string          `json:"type" binding:"required,oneof=income expense"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
	Description string          `json:"description" binding:"required,max=255"`
}

// UpdateTransactionRequest defines the fields allowed when editing a
// transaction. Pointers differentiate omitted fields from zero values.
type UpdateTransactionRequest struct {
	CategoryID  *int64           `json:"category_id"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Description *string          `json:"description" binding:"omitempty,max=255"`
}

// ListTransactionsParams defines the query parameters for listing
// transactions. Dates are inclusive calendar days.
type ListTransactionsParams struct {
	Type       string   `form:"type" binding:"omitempty,oneof=income expense"`
	CategoryID *int64   `form:"category_id"`
	StartDate  string   `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate    string   `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	MinAmount  *float64 `form:"min_amount"`
	MaxAmount  *float64 `form:"max_amount"`
	Page       int      `form:"page,default=1" binding:"omitempty,min=1"`
	PerPage    int      `form:"per_page,default=10" binding:"omitempty,min=1,max=100"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	ID           int64           `json:"id"`
	CategoryID   *int64          `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ListTransactionsResponse wraps a transaction page with pagination metadata.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	PerPage      int                   `json:"per_page"`
}

// SummaryResponse defines the dashboard summary payload.
type SummaryResponse struct {
	TotalIncome         decimal.Decimal `json:"total_income"`
	TotalExpenses       decimal.Decimal `json:"total_expenses"`
	NetBalance          decimal.Decimal `json:"net_balance"`
	TransactionCount    int             `json:"transaction_count"`
	IncomeThisMonth     decimal.Decimal `json:"income_this_month"`
	ExpensesThisMonth   decimal.Decimal `json:"expenses_this_month"`
	NetBalanceThisMonth decimal.Decimal `json:"net_balance_this_month"`
	IncomeTrend         decimal.Decimal `json:"income_trend"`
	ExpenseTrend        decimal.Decimal `json:"expense_trend"`
	NetBalanceTrend     decimal.Decimal `json:"net_balance_trend"`
}

// CategoryExpenseResponse is one row of the expenses-by-category breakdown.
type CategoryExpenseResponse struct {
	CategoryID   *int64          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
}

// ToTransactionResponse converts a domain.Transaction to a DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           txn.TransactionID,
		CategoryID:   txn.CategoryID,
		CategoryName: txn.CategoryName,
		Type:         string(txn.Type),
		Amount:       txn.Amount,
		Date:         txn.Date.Format("2006-01-02"),
		Description:  txn.Description,
		CreatedAt:    txn.CreatedAt,
		UpdatedAt:    txn.UpdatedAt,
	}
}

// ToListTransactionsResponse converts a transaction page to a DTO.
func ToListTransactionsResponse(txns []domain.Transaction, total int64, page, perPage int) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(&txn)
	}
	return ListTransactionsResponse{
		Transactions: res,
		Total:        total,
		Page:         page,
		PerPage:      perPage,
	}
}

// ToSummaryResponse converts a domain.TransactionSummary to a DTO.
func ToSummaryResponse(summary *domain.TransactionSummary) SummaryResponse {
	return SummaryResponse{
		TotalIncome:         summary.TotalIncome,
		TotalExpenses:       summary.TotalExpenses,
		NetBalance:          summary.NetBalance,
		TransactionCount:    summary.TransactionCount,
		IncomeThisMonth:     summary.IncomeThisMonth,
		ExpensesThisMonth:   summary.ExpensesThisMonth,
		NetBalanceThisMonth: summary.NetBalanceThisMonth,
		IncomeTrend:         summary.IncomeTrend,
		ExpenseTrend:        summary.ExpenseTrend,
		NetBalanceTrend:     summary.NetBalanceTrend,
	}
}

// ToCategoryExpenseResponses converts the breakdown rows to DTOs.
func ToCategoryExpenseResponses(rows []domain.CategoryExpense) []CategoryExpenseResponse {
	res := make([]CategoryExpenseResponse, len(rows))
	for i, row := range rows {
		res[i] = CategoryExpenseResponse{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Total:        row.Total,
		}
	}
	return res
}
