package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/fbsys/fbs_backend/internal/core/ports/services"
	"github.com/fbsys/fbs_backend/internal/dto"
	"github.com/fbsys/fbs_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// ruleEngineHandler exposes the weekly behavioral evaluation endpoint.
type ruleEngineHandler struct {
	evaluationService portssvc.EvaluationSvcFacade
}

// newRuleEngineHandler creates a new ruleEngineHandler.
func newRuleEngineHandler(es portssvc.EvaluationSvcFacade) *ruleEngineHandler {
	return &ruleEngineHandler{
		evaluationService: es,
	}
}

// registerRuleEngineRoutes registers the rule evaluation routes.
func registerRuleEngineRoutes(rg *gin.RouterGroup, evaluationService portssvc.EvaluationSvcFacade) {
	h := newRuleEngineHandler(evaluationService)

	rules := rg.Group("/rules")
	{
		rules.GET("/evaluate", h.evaluate)
	}
}

// evaluate godoc
// @Summary Evaluate spending rules for a week
// @Description Evaluates behavioral spending rules for the week containing the given date (today when omitted). Fresh stored feedback is reused instead of recomputing.
// @Tags rules
// @Produce json
// @Param date query string false "Target date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.EvaluateResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Evaluation failed"
// @Security BearerAuth
// @Router /rules/evaluate [get]
func (h *ruleEngineHandler) evaluate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.EvaluateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	targetDate := time.Now().UTC()
	if params.Date != "" {
		parsed, err := time.Parse("2006-01-02", params.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		targetDate = parsed
	}

	result, feedback, err := h.evaluationService.Evaluate(c.Request.Context(), userID, targetDate)
	if err != nil {
		logger.Error("Rule evaluation failed", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Evaluation failed"})
		return
	}

	c.JSON(http.StatusOK, dto.ToEvaluateResponse(result, feedback))
}
