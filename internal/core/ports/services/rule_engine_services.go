package services

import (
	"context"
	"time"

	"github.com/fbsys/fbs_backend/internal/core/domain"
)

// RuleEngineSvcFacade evaluates behavioral spending rules against a user's
// weekly aggregates.
type RuleEngineSvcFacade interface {
	// EvaluateRules computes the weekly aggregate for the week containing
	// targetDate and runs every rule against it. The result includes
	// non-triggered rules.
	EvaluateRules(ctx context.Context, userID int64, targetDate time.Time) (*domain.EvaluationResult, error)

	// ShouldReevaluate reports whether stored feedback for the week
	// containing targetDate is missing or stale. It never mutates state and
	// is deterministic for a fixed data snapshot.
	ShouldReevaluate(ctx context.Context, userID int64, targetDate time.Time) (bool, error)

	// GetWeeklySummary exposes the aggregate on its own for diagnostics.
	GetWeeklySummary(ctx context.Context, userID int64, week domain.WeekBounds) (domain.WeeklySummary, error)
}

// FeedbackEngineSvcFacade turns rule evaluation results into persisted,
// user-facing feedback.
type FeedbackEngineSvcFacade interface {
	// ProcessRuleResults renders and persists one feedback record per
	// triggered rule and returns the stored records. Non-triggered rules
	// produce nothing.
	ProcessRuleResults(ctx context.Context, evaluation *domain.EvaluationResult) ([]domain.FeedbackRecord, error)
}

// EvaluationSvcFacade is the gating workflow: reuse stored feedback when it
// is still fresh, otherwise run the rule and feedback engines.
type EvaluationSvcFacade interface {
	// Evaluate returns the evaluation for the week containing targetDate
	// together with the feedback records backing it. Cached results are
	// reconstructed from feedback history and can only carry rules that
	// did trigger.
	Evaluate(ctx context.Context, userID int64, targetDate time.Time) (*domain.EvaluationResult, []domain.FeedbackRecord, error)
}
