package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fbsys/fbs_backend/internal/core/domain"
	portsrepo "github.com/fbsys/fbs_backend/internal/core/ports/repositories"
	portssvc "github.com/fbsys/fbs_backend/internal/core/ports/services"
)

// feedbackTemplate pairs a severity level with a message template. Template
// placeholders are {key} references into the rule's data payload.
type feedbackTemplate struct {
	level    domain.FeedbackLevel
	template string
}

var feedbackTemplates = map[string]feedbackTemplate{
	RuleWeeklyOverspending: {
		level:    domain.LevelAlert,
		template: "You spent {total_expenses} this week, {overage} over your weekly limit of {limit}.",
	},
	RuleCategoryConcentration: {
		level:    domain.LevelWarning,
		template: "{category} accounts for most of this week's spending ({category_total} of {total_expenses}).",
	},
	RuleSmallTransactions: {
		level:    domain.LevelInfo,
		template: "You made {count} small purchases under {threshold} this week, adding up to {total}.",
	},
}

// feedbackEngineService implements the FeedbackEngineSvcFacade interface
type feedbackEngineService struct {
	BaseService
	feedbackRepo portsrepo.FeedbackRepositoryFacade
	now          func() time.Time
}

// NewFeedbackEngineService creates a new feedback engine service.
func NewFeedbackEngineService(feedbackRepo portsrepo.FeedbackRepositoryFacade) portssvc.FeedbackEngineSvcFacade {
	return &feedbackEngineService{
		feedbackRepo: feedbackRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.FeedbackEngineSvcFacade = (*feedbackEngineService)(nil)

// ProcessRuleResults renders one feedback record per triggered rule and
// persists them through the upsert keyed on (user, rule, week), so running
// the same evaluation twice cannot duplicate rows.
func (s *feedbackEngineService) ProcessRuleResults(ctx context.Context, evaluation *domain.EvaluationResult) ([]domain.FeedbackRecord, error) {
	generatedAt := s.now()

	var records []domain.FeedbackRecord
	for _, rule := range evaluation.Rules {
		if !rule.Triggered {
			continue
		}

		tmpl, ok := feedbackTemplates[rule.RuleID]
		if !ok {
			s.LogError(ctx, fmt.Errorf("no feedback template for rule %q", rule.RuleID), "Skipping rule without template",
				slog.String("rule_id", rule.RuleID))
			continue
		}

		records = append(records, domain.FeedbackRecord{
			UserID:      evaluation.UserID,
			RuleID:      rule.RuleID,
			Level:       tmpl.level,
			Message:     renderTemplate(tmpl.template, rule.Data),
			Data:        rule.Data,
			WeekStart:   evaluation.Week.Start,
			GeneratedAt: generatedAt,
		})
	}

	if len(records) == 0 {
		return []domain.FeedbackRecord{}, nil
	}

	stored, err := s.feedbackRepo.UpsertFeedback(ctx, records)
	if err != nil {
		s.LogError(ctx, err, "Failed to persist feedback records",
			slog.Int64("user_id", evaluation.UserID),
			slog.String("week_start", evaluation.Week.Start.Format("2006-01-02")))
		return nil, fmt.Errorf("failed to persist feedback: %w", err)
	}

	s.LogInfo(ctx, "Feedback generated",
		slog.Int64("user_id", evaluation.UserID),
		slog.String("week_start", evaluation.Week.Start.Format("2006-01-02")),
		slog.Int("record_count", len(stored)))
	return stored, nil
}

// renderTemplate substitutes {key} placeholders with values from data.
// Unknown placeholders are left as-is rather than erroring; a partially
// rendered message is more useful than none.
func renderTemplate(template string, data map[string]any) string {
	out := template
	for key, value := range data {
		out = strings.ReplaceAll(out, "{"+key+"}", fmt.Sprintf("%v", value))
	}
	return out
}
