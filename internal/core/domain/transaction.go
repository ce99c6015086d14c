package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType discriminates the direction of a transaction. The amount
// itself is always non-negative; direction is carried here, never by sign.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// IsValid checks whether the type is one of the known values.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// Transaction represents a single user-entered financial transaction.
// Date has calendar-day granularity; CreatedAt/UpdatedAt are full timestamps.
type Transaction struct {
	TransactionID int64           `json:"id"`
	UserID        int64           `json:"userID"`
	CategoryID    *int64          `json:"categoryID,omitempty"`
	CategoryName  string          `json:"categoryName,omitempty"` // joined from categories, empty when uncategorized
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// TransactionSummary holds lifetime totals plus month-over-month trend data
// for a user's dashboard.
type TransactionSummary struct {
	TotalIncome         decimal.Decimal
	TotalExpenses       decimal.Decimal
	NetBalance          decimal.Decimal
	TransactionCount    int
	IncomeThisMonth     decimal.Decimal
	ExpensesThisMonth   decimal.Decimal
	NetBalanceThisMonth decimal.Decimal
	IncomeTrend         decimal.Decimal
	ExpenseTrend        decimal.Decimal
	NetBalanceTrend     decimal.Decimal
}

// CategoryExpense is one row of the expenses-by-category breakdown.
type CategoryExpense struct {
	CategoryID   *int64
	CategoryName string
	Total        decimal.Decimal
}

// TrendPercentage computes the percentage change from previous to current.
// A zero previous value yields 100 when current is positive, otherwise 0.
func TrendPercentage(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsPositive() {
			return decimal.NewFromInt(100)
		}
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100))
}
