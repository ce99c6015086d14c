package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fbsys/fbs_backend/internal/core/domain"
	portssvc "github.com/fbsys/fbs_backend/internal/core/ports/services"
	"github.com/fbsys/fbs_backend/internal/dto"
	"github.com/fbsys/fbs_backend/internal/middleware"
	"github.com/fbsys/fbs_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock EvaluationService ---
type MockEvaluationService struct {
	mock.Mock
}

func (m *MockEvaluationService) Evaluate(ctx context.Context, userID int64, targetDate time.Time) (*domain.EvaluationResult, []domain.FeedbackRecord, error) {
	args := m.Called(ctx, userID, targetDate)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.EvaluationResult), args.Get(1).([]domain.FeedbackRecord), args.Error(2)
}

var _ portssvc.EvaluationSvcFacade = (*MockEvaluationService)(nil)

// --- Test Suite ---
type RuleEngineHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockEvaluationService *MockEvaluationService
	jwtSecret             string
}

func (suite *RuleEngineHandlerTestSuite) generateTestToken(userID int64) string {
	token, err := utils.GenerateJWT(userID, suite.jwtSecret, "fbs-test", time.Hour)
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *RuleEngineHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockEvaluationService = new(MockEvaluationService)

	v1 := suite.router.Group("/api/v1")
	registerRuleEngineRoutes(v1, suite.mockEvaluationService)
}

func (suite *RuleEngineHandlerTestSuite) doRequest(url string, userID int64) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Accept", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *RuleEngineHandlerTestSuite) TestEvaluate_Success() {
	userID := int64(42)
	targetDate := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)
	week := domain.WeekBoundsFor(targetDate)

	result := &domain.EvaluationResult{
		UserID:         userID,
		EvaluationDate: targetDate,
		Week:           week,
		Rules: []domain.RuleResult{
			{RuleID: "weekly_overspending", Triggered: true, Data: map[string]any{"overage": "100"}},
		},
		Cached: false,
	}
	feedback := []domain.FeedbackRecord{
		{FeedbackID: 1, UserID: userID, RuleID: "weekly_overspending", Level: domain.LevelAlert, WeekStart: week.Start},
	}

	suite.mockEvaluationService.On("Evaluate",
		mock.AnythingOfType("*context.valueCtx"),
		userID,
		mock.MatchedBy(func(d time.Time) bool {
			return d.Year() == 2024 && d.Month() == time.June && d.Day() == 12
		}),
	).Return(result, feedback, nil).Once()

	w := suite.doRequest("/api/v1/rules/evaluate?date=2024-06-12", userID)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.EvaluateResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(body.Success)
	suite.Equal(userID, body.Data.Evaluation.UserID)
	suite.Equal("2024-06-10", body.Data.Evaluation.Weeks.Current.Start)
	suite.Equal("2024-06-16", body.Data.Evaluation.Weeks.Current.End)
	suite.False(body.Data.Evaluation.Cached)
	suite.Len(body.Data.Evaluation.TriggeredRules, 1)
	suite.Len(body.Data.Feedback, 1)

	suite.mockEvaluationService.AssertExpectations(suite.T())
}

func (suite *RuleEngineHandlerTestSuite) TestEvaluate_InvalidDateRejected() {
	w := suite.doRequest("/api/v1/rules/evaluate?date=12-06-2024", 42)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockEvaluationService.AssertNotCalled(suite.T(), "Evaluate")
}

func (suite *RuleEngineHandlerTestSuite) TestEvaluate_MissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/rules/evaluate", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockEvaluationService.AssertNotCalled(suite.T(), "Evaluate")
}

func (suite *RuleEngineHandlerTestSuite) TestEvaluate_ServiceError() {
	suite.mockEvaluationService.On("Evaluate", mock.Anything, int64(42), mock.Anything).
		Return(nil, nil, errors.New("db down")).Once()

	w := suite.doRequest("/api/v1/rules/evaluate", 42)

	suite.Equal(http.StatusInternalServerError, w.Code)
}

func TestRuleEngineHandler(t *testing.T) {
	suite.Run(t, new(RuleEngineHandlerTestSuite))
}
