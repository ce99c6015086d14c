package services

import (
	"context"
	"time"

	"github.com/fbsys/fbs_backend/internal/core/domain"
	portsrepo "github.com/fbsys/fbs_backend/internal/core/ports/repositories"
	portssvc "github.com/fbsys/fbs_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID, userID int64) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, userID int64, filter portsrepo.TransactionFilter, limit, offset int) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, userID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) FindByDateRange(ctx context.Context, userID int64, start, end time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID, userID int64) error {
	args := m.Called(ctx, transactionID, userID)
	return args.Error(0)
}

func (m *MockTransactionRepository) IsDuplicate(ctx context.Context, userID int64, date time.Time, amount decimal.Decimal, txnType domain.TransactionType, description string) (bool, error) {
	args := m.Called(ctx, userID, date, amount, txnType, description)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) SumByType(ctx context.Context, userID int64, txnType domain.TransactionType, from, to *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, txnType, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockTransactionRepository) ExpensesByCategory(ctx context.Context, userID int64) ([]domain.CategoryExpense, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryExpense), args.Error(1)
}

func (m *MockTransactionRepository) LastUpdateTimestamp(ctx context.Context, userID int64, start, end time.Time) (*time.Time, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

// --- Mock FeedbackRepository ---
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) FindByUserAndWeek(ctx context.Context, userID int64, weekStart time.Time) ([]domain.FeedbackRecord, error) {
	args := m.Called(ctx, userID, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeedbackRecord), args.Error(1)
}

func (m *MockFeedbackRepository) UpsertFeedback(ctx context.Context, records []domain.FeedbackRecord) ([]domain.FeedbackRecord, error) {
	args := m.Called(ctx, records)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeedbackRecord), args.Error(1)
}

var _ portsrepo.FeedbackRepositoryFacade = (*MockFeedbackRepository)(nil)

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, categoryID, userID int64) (*domain.Category, error) {
	args := m.Called(ctx, categoryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, userID int64) ([]domain.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByNameAndType(ctx context.Context, name string, categoryType domain.TransactionType, userID int64) (*domain.Category, error) {
	args := m.Called(ctx, name, categoryType, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, categoryID, userID int64) error {
	args := m.Called(ctx, categoryID, userID)
	return args.Error(0)
}

var _ portsrepo.CategoryRepositoryFacade = (*MockCategoryRepository)(nil)

// --- Mock RuleEngineService ---
type MockRuleEngineService struct {
	mock.Mock
}

func (m *MockRuleEngineService) EvaluateRules(ctx context.Context, userID int64, targetDate time.Time) (*domain.EvaluationResult, error) {
	args := m.Called(ctx, userID, targetDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EvaluationResult), args.Error(1)
}

func (m *MockRuleEngineService) ShouldReevaluate(ctx context.Context, userID int64, targetDate time.Time) (bool, error) {
	args := m.Called(ctx, userID, targetDate)
	return args.Bool(0), args.Error(1)
}

func (m *MockRuleEngineService) GetWeeklySummary(ctx context.Context, userID int64, week domain.WeekBounds) (domain.WeeklySummary, error) {
	args := m.Called(ctx, userID, week)
	return args.Get(0).(domain.WeeklySummary), args.Error(1)
}

var _ portssvc.RuleEngineSvcFacade = (*MockRuleEngineService)(nil)

// --- Mock FeedbackEngineService ---
type MockFeedbackEngineService struct {
	mock.Mock
}

func (m *MockFeedbackEngineService) ProcessRuleResults(ctx context.Context, evaluation *domain.EvaluationResult) ([]domain.FeedbackRecord, error) {
	args := m.Called(ctx, evaluation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeedbackRecord), args.Error(1)
}

var _ portssvc.FeedbackEngineSvcFacade = (*MockFeedbackEngineService)(nil)
