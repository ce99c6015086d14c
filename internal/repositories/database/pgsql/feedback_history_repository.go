package pgsql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fbsys/fbs_backend/internal/core/domain"
	portsrepo "github.com/fbsys/fbs_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxFeedbackRepository persists feedback history in PostgreSQL. The table
// carries a unique index on (user_id, rule_id, week_start) which backs the
// upsert semantics of the port.
type PgxFeedbackRepository struct {
	BaseRepository
}

// newPgxFeedbackRepository creates a new repository for feedback history.
func newPgxFeedbackRepository(pool *pgxpool.Pool) portsrepo.FeedbackRepositoryFacade {
	return &PgxFeedbackRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FeedbackRepositoryFacade = (*PgxFeedbackRepository)(nil)

// FindByUserAndWeek returns all feedback rows for the exact week-start key,
// ordered by id so callers see stable insertion order.
func (r *PgxFeedbackRepository) FindByUserAndWeek(ctx context.Context, userID int64, weekStart time.Time) ([]domain.FeedbackRecord, error) {
	query := `
		SELECT id, user_id, rule_id, level, message, data, week_start, generated_at
		FROM feedback_history
		WHERE user_id = $1 AND week_start = $2
		ORDER BY id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, userID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback history: %w", err)
	}
	defer rows.Close()

	records := []domain.FeedbackRecord{}
	for rows.Next() {
		var record domain.FeedbackRecord
		var rawData []byte
		err := rows.Scan(
			&record.FeedbackID,
			&record.UserID,
			&record.RuleID,
			&record.Level,
			&record.Message,
			&rawData,
			&record.WeekStart,
			&record.GeneratedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		if len(rawData) > 0 {
			if err := json.Unmarshal(rawData, &record.Data); err != nil {
				return nil, fmt.Errorf("failed to decode feedback data for record %d: %w", record.FeedbackID, err)
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feedback rows: %w", err)
	}

	return records, nil
}

// UpsertFeedback writes the records inside a single transaction. A record
// that collides on (user_id, rule_id, week_start) replaces the stored level,
// message, data and generated_at instead of creating a duplicate row.
func (r *PgxFeedbackRepository) UpsertFeedback(ctx context.Context, records []domain.FeedbackRecord) ([]domain.FeedbackRecord, error) {
	if len(records) == 0 {
		return records, nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		INSERT INTO feedback_history (user_id, rule_id, level, message, data, week_start, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, rule_id, week_start)
		DO UPDATE SET level = EXCLUDED.level,
		              message = EXCLUDED.message,
		              data = EXCLUDED.data,
		              generated_at = EXCLUDED.generated_at
		RETURNING id;
	`
	saved := make([]domain.FeedbackRecord, 0, len(records))
	for _, record := range records {
		rawData, err := json.Marshal(record.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode feedback data for rule %s: %w", record.RuleID, err)
		}
		err = tx.QueryRow(ctx, query,
			record.UserID,
			record.RuleID,
			record.Level,
			record.Message,
			rawData,
			record.WeekStart,
			record.GeneratedAt,
		).Scan(&record.FeedbackID)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert feedback for rule %s: %w", record.RuleID, err)
		}
		saved = append(saved, record)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return saved, nil
}
