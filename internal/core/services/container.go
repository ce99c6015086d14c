package services

import (
	portsrepo "github.com/fbsys/fbs_backend/internal/core/ports/repositories"
	portssvc "github.com/fbsys/fbs_backend/internal/core/ports/services"
	"github.com/fbsys/fbs_backend/internal/platform/config"
)

// NewServiceContainer wires all application services from the repository
// provider and configuration.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	ruleEngine := NewRuleEngineService(repos.TransactionRepo, repos.FeedbackRepo, cfg.Rules)
	feedbackEngine := NewFeedbackEngineService(repos.FeedbackRepo)

	return &portssvc.ServiceContainer{
		User:        NewUserService(repos.UserRepo),
		Category:    NewCategoryService(repos.CategoryRepo),
		Transaction: NewTransactionService(repos.TransactionRepo, repos.CategoryRepo),
		RuleEngine:  ruleEngine,
		Feedback:    feedbackEngine,
		Evaluation:  NewEvaluationService(ruleEngine, feedbackEngine, repos.FeedbackRepo),
		GoogleOAuth: NewGoogleOAuthService(cfg),
	}
}
