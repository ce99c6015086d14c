package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fbsys/fbs_backend/internal/core/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type FeedbackEngineServiceTestSuite struct {
	suite.Suite
	feedbackRepo *MockFeedbackRepository
	service      *feedbackEngineService
	fixedNow     time.Time
}

func (s *FeedbackEngineServiceTestSuite) SetupTest() {
	s.feedbackRepo = new(MockFeedbackRepository)
	s.fixedNow = time.Date(2024, time.June, 12, 15, 0, 0, 0, time.UTC)
	s.service = NewFeedbackEngineService(s.feedbackRepo).(*feedbackEngineService)
	s.service.now = func() time.Time { return s.fixedNow }
}

func (s *FeedbackEngineServiceTestSuite) evaluation(rules ...domain.RuleResult) *domain.EvaluationResult {
	return &domain.EvaluationResult{
		UserID:         1,
		EvaluationDate: s.fixedNow,
		Week:           domain.WeekBoundsFor(s.fixedNow),
		Rules:          rules,
	}
}

func (s *FeedbackEngineServiceTestSuite) TestProcessRuleResults_NothingTriggered() {
	evaluation := s.evaluation(
		domain.RuleResult{RuleID: RuleWeeklyOverspending, Triggered: false},
		domain.RuleResult{RuleID: RuleSmallTransactions, Triggered: false},
	)

	records, err := s.service.ProcessRuleResults(context.Background(), evaluation)

	s.NoError(err)
	s.Empty(records)
	s.feedbackRepo.AssertNotCalled(s.T(), "UpsertFeedback")
}

func (s *FeedbackEngineServiceTestSuite) TestProcessRuleResults_RendersAndPersists() {
	evaluation := s.evaluation(domain.RuleResult{
		RuleID:    RuleWeeklyOverspending,
		Triggered: true,
		Data: map[string]any{
			"total_expenses": "600",
			"overage":        "100",
			"limit":          "500",
		},
	})

	s.feedbackRepo.On("UpsertFeedback", mock.Anything, mock.MatchedBy(func(records []domain.FeedbackRecord) bool {
		if len(records) != 1 {
			return false
		}
		r := records[0]
		return r.RuleID == RuleWeeklyOverspending &&
			r.Level == domain.LevelAlert &&
			r.WeekStart.Equal(evaluation.Week.Start) &&
			r.GeneratedAt.Equal(s.fixedNow) &&
			r.Message == "You spent 600 this week, 100 over your weekly limit of 500."
	})).Return([]domain.FeedbackRecord{{FeedbackID: 7, RuleID: RuleWeeklyOverspending}}, nil).Once()

	records, err := s.service.ProcessRuleResults(context.Background(), evaluation)

	s.NoError(err)
	s.Len(records, 1)
	s.Equal(int64(7), records[0].FeedbackID)
	s.feedbackRepo.AssertExpectations(s.T())
}

func (s *FeedbackEngineServiceTestSuite) TestProcessRuleResults_MixedRules() {
	evaluation := s.evaluation(
		domain.RuleResult{RuleID: RuleWeeklyOverspending, Triggered: false},
		domain.RuleResult{
			RuleID:    RuleSmallTransactions,
			Triggered: true,
			Data: map[string]any{
				"count":     6,
				"total":     "27.3",
				"threshold": "10",
				"limit":     5,
			},
		},
	)

	s.feedbackRepo.On("UpsertFeedback", mock.Anything, mock.MatchedBy(func(records []domain.FeedbackRecord) bool {
		return len(records) == 1 &&
			records[0].Level == domain.LevelInfo &&
			records[0].Message == "You made 6 small purchases under 10 this week, adding up to 27.3."
	})).Return([]domain.FeedbackRecord{{FeedbackID: 3, RuleID: RuleSmallTransactions}}, nil).Once()

	records, err := s.service.ProcessRuleResults(context.Background(), evaluation)

	s.NoError(err)
	s.Len(records, 1)
}

func (s *FeedbackEngineServiceTestSuite) TestProcessRuleResults_RepoError() {
	evaluation := s.evaluation(domain.RuleResult{
		RuleID:    RuleWeeklyOverspending,
		Triggered: true,
		Data:      map[string]any{"total_expenses": "600", "overage": "100", "limit": "500"},
	})

	s.feedbackRepo.On("UpsertFeedback", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection reset")).Once()

	records, err := s.service.ProcessRuleResults(context.Background(), evaluation)

	s.Error(err)
	s.Nil(records)
}

func TestFeedbackEngineService(t *testing.T) {
	suite.Run(t, new(FeedbackEngineServiceTestSuite))
}

func TestRenderTemplate(t *testing.T) {
	t.Run("unknown placeholder left intact", func(t *testing.T) {
		out := renderTemplate("spent {total} of {limit}", map[string]any{"total": "42"})
		if out != "spent 42 of {limit}" {
			t.Fatalf("unexpected render: %q", out)
		}
	})
}
