package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fbsys/fbs_backend/internal/core/domain"
	portsrepo "github.com/fbsys/fbs_backend/internal/core/ports/repositories"
	portssvc "github.com/fbsys/fbs_backend/internal/core/ports/services"
	"github.com/fbsys/fbs_backend/internal/platform/config"
	"github.com/shopspring/decimal"
)

// Rule identifiers. These are the keys feedback history is stored under, so
// renaming one orphans previously generated feedback for that rule.
const (
	RuleWeeklyOverspending    = "weekly_overspending"
	RuleCategoryConcentration = "category_concentration"
	RuleSmallTransactions     = "small_transaction_accumulation"
)

// ruleEngineService implements the RuleEngineSvcFacade interface
type ruleEngineService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepositoryFacade
	feedbackRepo portsrepo.FeedbackRepositoryFacade
	rules        config.RuleConfig
}

// NewRuleEngineService creates a new rule engine service. All thresholds
// come from the injected RuleConfig; the engine reads no ambient state.
func NewRuleEngineService(txnRepo portsrepo.TransactionRepositoryFacade, feedbackRepo portsrepo.FeedbackRepositoryFacade, rules config.RuleConfig) portssvc.RuleEngineSvcFacade {
	return &ruleEngineService{
		txnRepo:      txnRepo,
		feedbackRepo: feedbackRepo,
		rules:        rules,
	}
}

var _ portssvc.RuleEngineSvcFacade = (*ruleEngineService)(nil)

// GetWeeklySummary aggregates the user's expense transactions for the week.
func (s *ruleEngineService) GetWeeklySummary(ctx context.Context, userID int64, week domain.WeekBounds) (domain.WeeklySummary, error) {
	txns, err := s.txnRepo.FindByDateRange(ctx, userID, week.Start, week.End)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for weekly summary",
			slog.Int64("user_id", userID),
			slog.String("week_start", week.Start.Format("2006-01-02")))
		return domain.WeeklySummary{}, fmt.Errorf("failed to load transactions for weekly summary: %w", err)
	}
	return domain.NewWeeklySummary(txns, s.rules.SmallTransactionThreshold), nil
}

// EvaluateRules runs every behavioral rule against the weekly aggregate for
// the week containing targetDate. The result includes non-triggered rules.
func (s *ruleEngineService) EvaluateRules(ctx context.Context, userID int64, targetDate time.Time) (*domain.EvaluationResult, error) {
	week := domain.WeekBoundsFor(targetDate)

	summary, err := s.GetWeeklySummary(ctx, userID, week)
	if err != nil {
		return nil, err
	}

	result := &domain.EvaluationResult{
		UserID:         userID,
		EvaluationDate: targetDate,
		Week:           week,
		Rules: []domain.RuleResult{
			s.evaluateOverspending(summary),
			s.evaluateCategoryConcentration(summary),
			s.evaluateSmallTransactions(summary),
		},
		Cached: false,
	}

	s.LogInfo(ctx, "Rule evaluation completed",
		slog.Int64("user_id", userID),
		slog.String("week_start", week.Start.Format("2006-01-02")),
		slog.Int("rule_count", len(result.Rules)))
	return result, nil
}

// ShouldReevaluate reports whether the week containing targetDate needs a
// fresh evaluation: either no feedback exists for the week yet, or
// transactions in the week were modified after the stored feedback was
// generated.
func (s *ruleEngineService) ShouldReevaluate(ctx context.Context, userID int64, targetDate time.Time) (bool, error) {
	week := domain.WeekBoundsFor(targetDate)

	feedback, err := s.feedbackRepo.FindByUserAndWeek(ctx, userID, week.Start)
	if err != nil {
		return false, fmt.Errorf("failed to load feedback history: %w", err)
	}
	if len(feedback) == 0 {
		return true, nil
	}

	lastTxnUpdate, err := s.txnRepo.LastUpdateTimestamp(ctx, userID, week.Start, week.End)
	if err != nil {
		return false, fmt.Errorf("failed to check transaction recency: %w", err)
	}
	if lastTxnUpdate == nil {
		// Feedback exists but the week has no transactions left; nothing
		// newer than the stored feedback can exist.
		return false, nil
	}

	newestFeedback := feedback[0].GeneratedAt
	for _, record := range feedback[1:] {
		if record.GeneratedAt.After(newestFeedback) {
			newestFeedback = record.GeneratedAt
		}
	}

	return lastTxnUpdate.After(newestFeedback), nil
}

func (s *ruleEngineService) evaluateOverspending(summary domain.WeeklySummary) domain.RuleResult {
	triggered := summary.TotalExpenses.GreaterThan(s.rules.WeeklySpendingLimit)
	data := map[string]any{
		"total_expenses": summary.TotalExpenses.String(),
		"limit":          s.rules.WeeklySpendingLimit.String(),
	}
	if triggered {
		data["overage"] = summary.TotalExpenses.Sub(s.rules.WeeklySpendingLimit).String()
	}
	return domain.RuleResult{RuleID: RuleWeeklyOverspending, Triggered: triggered, Data: data}
}

func (s *ruleEngineService) evaluateCategoryConcentration(summary domain.WeeklySummary) domain.RuleResult {
	data := map[string]any{
		"total_expenses": summary.TotalExpenses.String(),
		"ratio":          s.rules.CategoryDominanceRatio.String(),
	}

	if summary.TotalExpenses.IsZero() || len(summary.CategoryTotals) == 0 {
		return domain.RuleResult{RuleID: RuleCategoryConcentration, Triggered: false, Data: data}
	}

	topCategory := ""
	topTotal := decimal.Zero
	for name, total := range summary.CategoryTotals {
		// Ties resolve to the lexicographically smaller name so the
		// outcome is deterministic regardless of map iteration order.
		if total.GreaterThan(topTotal) || (total.Equal(topTotal) && (topCategory == "" || name < topCategory)) {
			topCategory = name
			topTotal = total
		}
	}

	share := topTotal.Div(summary.TotalExpenses)
	triggered := share.GreaterThanOrEqual(s.rules.CategoryDominanceRatio)
	data["category"] = topCategory
	data["category_total"] = topTotal.String()
	data["share"] = share.Round(4).String()
	return domain.RuleResult{RuleID: RuleCategoryConcentration, Triggered: triggered, Data: data}
}

func (s *ruleEngineService) evaluateSmallTransactions(summary domain.WeeklySummary) domain.RuleResult {
	triggered := summary.SmallTransactionCount >= s.rules.SmallTransactionLimit
	data := map[string]any{
		"count":     summary.SmallTransactionCount,
		"total":     summary.SmallTransactionTotal.String(),
		"threshold": s.rules.SmallTransactionThreshold.String(),
		"limit":     s.rules.SmallTransactionLimit,
	}
	return domain.RuleResult{RuleID: RuleSmallTransactions, Triggered: triggered, Data: data}
}
