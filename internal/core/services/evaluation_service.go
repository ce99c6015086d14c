package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fbsys/fbs_backend/internal/core/domain"
	portsrepo "github.com/fbsys/fbs_backend/internal/core/ports/repositories"
	portssvc "github.com/fbsys/fbs_backend/internal/core/ports/services"
)

// evaluationService implements the EvaluationSvcFacade interface. It owns
// the reuse-or-recompute decision: stored feedback is the cache, and
// transaction recency invalidates it.
type evaluationService struct {
	BaseService
	ruleEngine     portssvc.RuleEngineSvcFacade
	feedbackEngine portssvc.FeedbackEngineSvcFacade
	feedbackRepo   portsrepo.FeedbackRepositoryFacade
}

// NewEvaluationService creates a new evaluation service.
func NewEvaluationService(ruleEngine portssvc.RuleEngineSvcFacade, feedbackEngine portssvc.FeedbackEngineSvcFacade, feedbackRepo portsrepo.FeedbackRepositoryFacade) portssvc.EvaluationSvcFacade {
	return &evaluationService{
		ruleEngine:     ruleEngine,
		feedbackEngine: feedbackEngine,
		feedbackRepo:   feedbackRepo,
	}
}

var _ portssvc.EvaluationSvcFacade = (*evaluationService)(nil)

// Evaluate returns the rule evaluation for the week containing targetDate.
// When stored feedback is still fresh it is reused; the reconstructed result
// carries only rules that did trigger, since non-triggering rules leave no
// history, and is marked Cached so callers can tell the two shapes apart.
func (s *evaluationService) Evaluate(ctx context.Context, userID int64, targetDate time.Time) (*domain.EvaluationResult, []domain.FeedbackRecord, error) {
	week := domain.WeekBoundsFor(targetDate)

	reevaluate, err := s.ruleEngine.ShouldReevaluate(ctx, userID, targetDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to decide whether reevaluation is needed",
			slog.Int64("user_id", userID))
		return nil, nil, err
	}

	if !reevaluate {
		return s.reconstructFromHistory(ctx, userID, targetDate, week)
	}

	evaluation, err := s.ruleEngine.EvaluateRules(ctx, userID, targetDate)
	if err != nil {
		return nil, nil, err
	}

	feedback, err := s.feedbackEngine.ProcessRuleResults(ctx, evaluation)
	if err != nil {
		return nil, nil, err
	}

	s.LogInfo(ctx, "Fresh evaluation completed",
		slog.Int64("user_id", userID),
		slog.String("week_start", week.Start.Format("2006-01-02")),
		slog.Int("feedback_count", len(feedback)))
	return evaluation, feedback, nil
}

// reconstructFromHistory rebuilds an evaluation-shaped result from stored
// feedback records. Every stored record corresponds to a rule that fired,
// so each one maps to a triggered entry.
func (s *evaluationService) reconstructFromHistory(ctx context.Context, userID int64, targetDate time.Time, week domain.WeekBounds) (*domain.EvaluationResult, []domain.FeedbackRecord, error) {
	feedback, err := s.feedbackRepo.FindByUserAndWeek(ctx, userID, week.Start)
	if err != nil {
		s.LogError(ctx, err, "Failed to load feedback history for cached evaluation",
			slog.Int64("user_id", userID))
		return nil, nil, fmt.Errorf("failed to load feedback history: %w", err)
	}

	rules := make([]domain.RuleResult, len(feedback))
	for i, record := range feedback {
		rules[i] = domain.RuleResult{
			RuleID:    record.RuleID,
			Triggered: true,
			Data:      record.Data,
		}
	}

	result := &domain.EvaluationResult{
		UserID:         userID,
		EvaluationDate: targetDate,
		Week:           week,
		Rules:          rules,
		Cached:         true,
	}

	s.LogInfo(ctx, "Evaluation served from feedback history",
		slog.Int64("user_id", userID),
		slog.String("week_start", week.Start.Format("2006-01-02")),
		slog.Int("rule_count", len(rules)))
	return result, feedback, nil
}
