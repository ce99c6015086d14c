package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeekBounds is a Monday-through-Sunday evaluation window. Both bounds have
// calendar-day granularity: Start is the Monday of the ISO week, End the
// Sunday, so End.Sub(Start) is always exactly six days.
type WeekBounds struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// WeekBoundsFor computes the bounds of the ISO week containing d.
func WeekBoundsFor(d time.Time) WeekBounds {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	// time.Weekday numbers Sunday as 0; shift so Monday is the week anchor.
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return WeekBounds{Start: start, End: start.AddDate(0, 0, 6)}
}

// Contains reports whether the calendar day of d falls inside the window.
func (w WeekBounds) Contains(d time.Time) bool {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(w.Start) && !day.After(w.End)
}

// WeeklySummary is the derived aggregate the rule engine evaluates. It is
// recomputed on demand and never persisted; caching happens one layer up, at
// the feedback level.
type WeeklySummary struct {
	TotalExpenses         decimal.Decimal            `json:"totalExpenses"`
	TransactionCount      int                        `json:"transactionCount"`
	SmallTransactionCount int                        `json:"smallTransactionCount"`
	SmallTransactionTotal decimal.Decimal            `json:"smallTransactionTotal"`
	CategoryTotals        map[string]decimal.Decimal `json:"categoryTotals"`
}

// NewWeeklySummary aggregates expense transactions into a WeeklySummary.
// Transactions of other types are ignored. A transaction counts as "small"
// when its amount is strictly below smallThreshold. Uncategorized
// transactions contribute to the totals but are excluded from
// CategoryTotals. An empty input yields a zero-valued summary, not an error.
func NewWeeklySummary(txns []Transaction, smallThreshold decimal.Decimal) WeeklySummary {
	summary := WeeklySummary{
		TotalExpenses:         decimal.Zero,
		SmallTransactionTotal: decimal.Zero,
		CategoryTotals:        make(map[string]decimal.Decimal),
	}

	for _, txn := range txns {
		if txn.Type != Expense {
			continue
		}
		summary.TotalExpenses = summary.TotalExpenses.Add(txn.Amount)
		summary.TransactionCount++

		if txn.Amount.LessThan(smallThreshold) {
			summary.SmallTransactionCount++
			summary.SmallTransactionTotal = summary.SmallTransactionTotal.Add(txn.Amount)
		}

		if txn.CategoryName != "" {
			current, ok := summary.CategoryTotals[txn.CategoryName]
			if !ok {
				current = decimal.Zero
			}
			summary.CategoryTotals[txn.CategoryName] = current.Add(txn.Amount)
		}
	}

	return summary
}

// RuleResult is the outcome of evaluating a single behavioral rule.
type RuleResult struct {
	RuleID    string         `json:"rule_id"`
	Triggered bool           `json:"triggered"`
	Data      map[string]any `json:"data"`
}

// EvaluationResult is the transient outcome of a weekly rule evaluation.
// Cached marks results reconstructed from feedback history; those can only
// carry rules that did trigger, since non-triggering rules leave no record.
type EvaluationResult struct {
	UserID         int64        `json:"user_id"`
	EvaluationDate time.Time    `json:"evaluation_date"`
	Week           WeekBounds   `json:"week"`
	Rules          []RuleResult `json:"triggered_rules"`
	Cached         bool         `json:"cached"`
}
