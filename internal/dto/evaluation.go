package dto

import (
	"time"

	"github.com/fbsys/fbs_backend/internal/core/domain"
)

// EvaluateParams defines the query parameters for the rule evaluation
// endpoint. An absent date means "today"; a malformed one is rejected, never
// silently replaced.
type EvaluateParams struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// TriggeredRuleResponse is one rule outcome in the evaluation payload.
type TriggeredRuleResponse struct {
	RuleID    string         `json:"rule_id"`
	Triggered bool           `json:"triggered"`
	Data      map[string]any `json:"data"`
}

// WeekResponse is a Monday..Sunday window rendered as calendar dates.
type WeekResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// EvaluationResponse mirrors the evaluation structure the browser client
// consumes. Cached marks results reconstructed from feedback history.
type EvaluationResponse struct {
	UserID         int64  `json:"user_id"`
	EvaluationDate string `json:"evaluation_date"`
	Weeks          struct {
		Current WeekResponse `json:"current"`
	} `json:"weeks"`
	TriggeredRules []TriggeredRuleResponse `json:"triggered_rules"`
	Cached         bool                    `json:"cached"`
}

// FeedbackResponse defines the data returned for a feedback record.
type FeedbackResponse struct {
	ID          int64          `json:"id"`
	RuleID      string         `json:"rule_id"`
	Level       string         `json:"level"`
	Message     string         `json:"message"`
	Data        map[string]any `json:"data"`
	WeekStart   string         `json:"week_start"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// EvaluateResponse is the full envelope for the evaluation endpoint.
type EvaluateResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Evaluation EvaluationResponse `json:"evaluation"`
		Feedback   []FeedbackResponse `json:"feedback"`
	} `json:"data"`
}

// ToEvaluationResponse converts a domain.EvaluationResult to a DTO.
func ToEvaluationResponse(result *domain.EvaluationResult) EvaluationResponse {
	rules := make([]TriggeredRuleResponse, len(result.Rules))
	for i, rule := range result.Rules {
		rules[i] = TriggeredRuleResponse{
			RuleID:    rule.RuleID,
			Triggered: rule.Triggered,
			Data:      rule.Data,
		}
	}

	response := EvaluationResponse{
		UserID:         result.UserID,
		EvaluationDate: result.EvaluationDate.Format(time.DateTime),
		TriggeredRules: rules,
		Cached:         result.Cached,
	}
	response.Weeks.Current = WeekResponse{
		Start: result.Week.Start.Format("2006-01-02"),
		End:   result.Week.End.Format("2006-01-02"),
	}
	return response
}

// ToFeedbackResponses converts feedback records to DTOs.
func ToFeedbackResponses(records []domain.FeedbackRecord) []FeedbackResponse {
	res := make([]FeedbackResponse, len(records))
	for i, record := range records {
		res[i] = FeedbackResponse{
			ID:          record.FeedbackID,
			RuleID:      record.RuleID,
			Level:       string(record.Level),
			Message:     record.Message,
			Data:        record.Data,
			WeekStart:   record.WeekStart.Format("2006-01-02"),
			GeneratedAt: record.GeneratedAt,
		}
	}
	return res
}

// ToEvaluateResponse assembles the endpoint envelope.
func ToEvaluateResponse(result *domain.EvaluationResult, feedback []domain.FeedbackRecord) EvaluateResponse {
	response := EvaluateResponse{Success: true}
	response.Data.Evaluation = ToEvaluationResponse(result)
	response.Data.Feedback = ToFeedbackResponses(feedback)
	return response
}
