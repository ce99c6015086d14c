package services

import (
	"context"
	"testing"
	"time"

	"github.com/fbsys/fbs_backend/internal/core/domain"
	"github.com/fbsys/fbs_backend/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func testRuleConfig() config.RuleConfig {
	return config.RuleConfig{
		SmallTransactionThreshold: decimal.NewFromInt(10),
		SmallTransactionLimit:     5,
		WeeklySpendingLimit:       decimal.NewFromInt(500),
		CategoryDominanceRatio:    decimal.RequireFromString("0.5"),
	}
}

type RuleEngineServiceTestSuite struct {
	suite.Suite
	txnRepo      *MockTransactionRepository
	feedbackRepo *MockFeedbackRepository
	service      *ruleEngineService
}

func (s *RuleEngineServiceTestSuite) SetupTest() {
	s.txnRepo = new(MockTransactionRepository)
	s.feedbackRepo = new(MockFeedbackRepository)
	s.service = NewRuleEngineService(s.txnRepo, s.feedbackRepo, testRuleConfig()).(*ruleEngineService)
}

func (s *RuleEngineServiceTestSuite) ruleByID(result *domain.EvaluationResult, ruleID string) domain.RuleResult {
	for _, rule := range result.Rules {
		if rule.RuleID == ruleID {
			return rule
		}
	}
	s.FailNowf("rule missing from result", "rule %s not found", ruleID)
	return domain.RuleResult{}
}

func (s *RuleEngineServiceTestSuite) TestEvaluateRules_NothingTriggered() {
	targetDate := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)
	week := domain.WeekBoundsFor(targetDate)

	s.txnRepo.On("FindByDateRange", mock.Anything, int64(1), week.Start, week.End).
		Return([]domain.Transaction{
			{Type: domain.Expense, Amount: decimal.NewFromInt(40), CategoryName: "Food"},
			{Type: domain.Expense, Amount: decimal.NewFromInt(35), CategoryName: "Transport"},
			{Type: domain.Expense, Amount: decimal.NewFromInt(30), CategoryName: "Bills"},
		}, nil).Once()

	result, err := s.service.EvaluateRules(context.Background(), 1, targetDate)

	s.NoError(err)
	s.Len(result.Rules, 3)
	s.False(result.Cached)
	s.Equal(week, result.Week)
	for _, rule := range result.Rules {
		s.False(rule.Triggered, "rule %s should not trigger", rule.RuleID)
	}
	s.txnRepo.AssertExpectations(s.T())
}

func (s *RuleEngineServiceTestSuite) TestEvaluateRules_Overspending() {
	targetDate := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)
	week := domain.WeekBoundsFor(targetDate)

	s.txnRepo.On("FindByDateRange", mock.Anything, int64(1), week.Start, week.End).
		Return([]domain.Transaction{
			{Type: domain.Expense, Amount: decimal.NewFromInt(600), CategoryName: "Rent"},
		}, nil).Once()

	result, err := s.service.EvaluateRules(context.Background(), 1, targetDate)

	s.NoError(err)
	rule := s.ruleByID(result, RuleWeeklyOverspending)
	s.True(rule.Triggered)
	s.Equal("600", rule.Data["total_expenses"])
	s.Equal("100", rule.Data["overage"])
}

func (s *RuleEngineServiceTestSuite) TestEvaluateRules_SpendAtLimitDoesNotTrigger() {
	targetDate := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)
	week := domain.WeekBoundsFor(targetDate)

	s.txnRepo.On("FindByDateRange", mock.Anything, int64(1), week.Start, week.End).
		Return([]domain.Transaction{
			{Type: domain.Expense, Amount: decimal.NewFromInt(500), CategoryName: "Rent"},
		}, nil).Once()

	result, err := s.service.EvaluateRules(context.Background(), 1, targetDate)

	s.NoError(err)
	s.False(s.ruleByID(result, RuleWeeklyOverspending).Triggered)
}

func (s *RuleEngineServiceTestSuite) TestEvaluateRules_CategoryConcentration() {
	targetDate := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)
	week := domain.WeekBoundsFor(targetDate)

	// Food is 75% of spending, above the 50% dominance ratio.
	s.txnRepo.On("FindByDateRange", mock.Anything, int64(1), week.Start, week.End).
		Return([]domain.Transaction{
			{Type: domain.Expense, Amount: decimal.NewFromInt(150), CategoryName: "Food"},
			{Type: domain.Expense, Amount: decimal.NewFromInt(50), CategoryName: "Transport"},
		}, nil).Once()

	result, err := s.service.EvaluateRules(context.Background(), 1, targetDate)

	s.NoError(err)
	rule := s.ruleByID(result, RuleCategoryConcentration)
	s.True(rule.Triggered)
	s.Equal("Food", rule.Data["category"])
	s.Equal("0.75", rule.Data["share"])
}

func (s *RuleEngineServiceTestSuite) TestEvaluateRules_CategoryTieBreaksLexicographically() {
	targetDate := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)
	week := domain.WeekBoundsFor(targetDate)

	s.txnRepo.On("FindByDateRange", mock.Anything, int64(1), week.Start, week.End).
		Return([]domain.Transaction{
			{Type: domain.Expense, Amount: decimal.NewFromInt(100), CategoryName: "Transport"},
			{Type: domain.Expense, Amount: decimal.NewFromInt(100), CategoryName: "Food"},
		}, nil).Once()

	result, err := s.service.EvaluateRules(context.Background(), 1, targetDate)

	s.NoError(err)
	rule := s.ruleByID(result, RuleCategoryConcentration)
	s.True(rule.Triggered)
	s.Equal("Food", rule.Data["category"])
}

func (s *RuleEngineServiceTestSuite) TestEvaluateRules_SmallTransactionAccumulation() {
	targetDate := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)
	week := domain.WeekBoundsFor(targetDate)

	txns := make([]domain.Transaction, 5)
	for i := range txns {
		txns[i] = domain.Transaction{Type: domain.Expense, Amount: decimal.RequireFromString("4.20"), CategoryName: "Snacks"}
	}
	s.txnRepo.On("FindByDateRange", mock.Anything, int64(1), week.Start, week.End).
		Return(txns, nil).Once()

	result, err := s.service.EvaluateRules(context.Background(), 1, targetDate)

	s.NoError(err)
	rule := s.ruleByID(result, RuleSmallTransactions)
	s.True(rule.Triggered)
	s.Equal(5, rule.Data["count"])
	s.Equal("21", rule.Data["total"])
}

func (s *RuleEngineServiceTestSuite) TestShouldReevaluate_NoFeedback() {
	targetDate := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)
	week := domain.WeekBoundsFor(targetDate)

	s.feedbackRepo.On("FindByUserAndWeek", mock.Anything, int64(1), week.Start).
		Return([]domain.FeedbackRecord{}, nil).Once()

	reevaluate, err := s.service.ShouldReevaluate(context.Background(), 1, targetDate)

	s.NoError(err)
	s.True(reevaluate)
	s.txnRepo.AssertNotCalled(s.T(), "LastUpdateTimestamp")
}

// A fresh evaluation that triggers nothing persists no feedback rows, so a
// quiet week never looks cached and is recomputed on every call.
func (s *RuleEngineServiceTestSuite) TestShouldReevaluate_QuietWeekKeepsRecomputing() {
	targetDate := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)
	week := domain.WeekBoundsFor(targetDate)

	s.feedbackRepo.On("FindByUserAndWeek", mock.Anything, int64(1), week.Start).
		Return([]domain.FeedbackRecord{}, nil).Twice()

	for i := 0; i < 2; i++ {
		reevaluate, err := s.service.ShouldReevaluate(context.Background(), 1, targetDate)
		s.NoError(err)
		s.True(reevaluate)
	}
	s.feedbackRepo.AssertExpectations(s.T())
}

func (s *RuleEngineServiceTestSuite) TestShouldReevaluate_FreshFeedback() {
	targetDate := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)
	week := domain.WeekBoundsFor(targetDate)
	generatedAt := time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC)
	lastUpdate := generatedAt.Add(-time.Hour)

	s.feedbackRepo.On("FindByUserAndWeek", mock.Anything, int64(1), week.Start).
		Return([]domain.FeedbackRecord{{RuleID: RuleWeeklyOverspending, GeneratedAt: generatedAt}}, nil).Once()
	s.txnRepo.On("LastUpdateTimestamp", mock.Anything, int64(1), week.Start, week.End).
		Return(&lastUpdate, nil).Once()

	reevaluate, err := s.service.ShouldReevaluate(context.Background(), 1, targetDate)

	s.NoError(err)
	s.False(reevaluate)
}

func (s *RuleEngineServiceTestSuite) TestShouldReevaluate_StaleFeedback() {
	targetDate := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)
	week := domain.WeekBoundsFor(targetDate)
	generatedAt := time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC)
	lastUpdate := generatedAt.Add(time.Minute)

	s.feedbackRepo.On("FindByUserAndWeek", mock.Anything, int64(1), week.Start).
		Return([]domain.FeedbackRecord{{RuleID: RuleWeeklyOverspending, GeneratedAt: generatedAt}}, nil).Once()
	s.txnRepo.On("LastUpdateTimestamp", mock.Anything, int64(1), week.Start, week.End).
		Return(&lastUpdate, nil).Once()

	reevaluate, err := s.service.ShouldReevaluate(context.Background(), 1, targetDate)

	s.NoError(err)
	s.True(reevaluate)
}

func (s *RuleEngineServiceTestSuite) TestShouldReevaluate_FeedbackButNoTransactions() {
	targetDate := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)
	week := domain.WeekBoundsFor(targetDate)
	generatedAt := time.Date(2024, time.June, 12, 10, 0, 0, 0, time.UTC)

	s.feedbackRepo.On("FindByUserAndWeek", mock.Anything, int64(1), week.Start).
		Return([]domain.FeedbackRecord{{RuleID: RuleWeeklyOverspending, GeneratedAt: generatedAt}}, nil).Once()
	s.txnRepo.On("LastUpdateTimestamp", mock.Anything, int64(1), week.Start, week.End).
		Return(nil, nil).Once()

	reevaluate, err := s.service.ShouldReevaluate(context.Background(), 1, targetDate)

	s.NoError(err)
	s.False(reevaluate)
}

func TestRuleEngineService(t *testing.T) {
	suite.Run(t, new(RuleEngineServiceTestSuite))
}
