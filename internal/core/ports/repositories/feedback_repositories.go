package repositories

import (
	"context"
	"time"

	"github.com/fbsys/fbs_backend/internal/core/domain"
)

// FeedbackRepositoryFacade defines persistence for generated feedback.
// History is append-only from the caller's perspective: there is no update
// or delete API. Writes go through an upsert keyed on
// (user_id, rule_id, week_start) so concurrent evaluations of the same week
// cannot accumulate duplicate rows.
type FeedbackRepositoryFacade interface {
	// FindByUserAndWeek returns all records for the exact week-start key in
	// stable insertion order.
	FindByUserAndWeek(ctx context.Context, userID int64, weekStart time.Time) ([]domain.FeedbackRecord, error)

	// UpsertFeedback persists the records, replacing any existing row with
	// the same (user, rule, week) key, and returns them with IDs populated.
	UpsertFeedback(ctx context.Context, records []domain.FeedbackRecord) ([]domain.FeedbackRecord, error)
}
