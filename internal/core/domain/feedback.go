package domain

import "time"

// FeedbackLevel is the severity band of a behavioral message.
type FeedbackLevel string

const (
	LevelInfo    FeedbackLevel = "info"
	LevelWarning FeedbackLevel = "warning"
	LevelAlert   FeedbackLevel = "alert"
)

// FeedbackRecord is one persisted behavioral message for a (user, week).
// Records are append-only history; they are never mutated after creation.
// Data carries the structured payload that explains why the rule fired.
type FeedbackRecord struct {
	FeedbackID  int64          `json:"id"`
	UserID      int64          `json:"userID"`
	RuleID      string         `json:"ruleID"`
	Level       FeedbackLevel  `json:"level"`
	Message     string         `json:"message"`
	Data        map[string]any `json:"data"`
	WeekStart   time.Time      `json:"weekStart"`
	GeneratedAt time.Time      `json:"generatedAt"`
}
