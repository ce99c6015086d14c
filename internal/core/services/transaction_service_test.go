package services

import (
	"context"
	"testing"
	"time"

	"github.com/fbsys/fbs_backend/internal/apperrors"
	"github.com/fbsys/fbs_backend/internal/core/domain"
	"github.com/fbsys/fbs_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	txnRepo      *MockTransactionRepository
	categoryRepo *MockCategoryRepository
	service      *transactionService
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.txnRepo = new(MockTransactionRepository)
	s.categoryRepo = new(MockCategoryRepository)
	s.service = NewTransactionService(s.txnRepo, s.categoryRepo).(*transactionService)
}

func int64Ptr(v int64) *int64 { return &v }

func (s *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	req := dto.CreateTransactionRequest{
		CategoryID:  int64Ptr(2),
		Type:        "expense",
		Amount:      decimal.RequireFromString("12.50"),
		Date:        "2024-06-12",
		Description: "Lunch",
	}
	category := &domain.Category{CategoryID: 2, Name: "Food", Type: domain.Expense}
	expectedDate := time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC)

	s.categoryRepo.On("FindCategoryByID", mock.Anything, int64(2), int64(1)).Return(category, nil).Once()
	s.txnRepo.On("IsDuplicate", mock.Anything, int64(1), expectedDate, req.Amount, domain.Expense, "Lunch").
		Return(false, nil).Once()
	s.txnRepo.On("SaveTransaction", mock.Anything, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.UserID == 1 &&
			txn.CategoryName == "Food" &&
			txn.Type == domain.Expense &&
			txn.Date.Equal(expectedDate)
	})).Return(&domain.Transaction{TransactionID: 9, UserID: 1, CategoryName: "Food"}, nil).Once()

	txn, err := s.service.CreateTransaction(context.Background(), 1, req)

	s.NoError(err)
	s.Equal(int64(9), txn.TransactionID)
	s.txnRepo.AssertExpectations(s.T())
	s.categoryRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_CategoryTypeMismatch() {
	req := dto.CreateTransactionRequest{
		CategoryID:  int64Ptr(2),
		Type:        "expense",
		Amount:      decimal.NewFromInt(100),
		Date:        "2024-06-12",
		Description: "Paycheck",
	}
	category := &domain.Category{CategoryID: 2, Name: "Salary", Type: domain.Income}

	s.categoryRepo.On("FindCategoryByID", mock.Anything, int64(2), int64(1)).Return(category, nil).Once()

	txn, err := s.service.CreateTransaction(context.Background(), 1, req)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(txn)
	s.txnRepo.AssertNotCalled(s.T(), "SaveTransaction")
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_Duplicate() {
	req := dto.CreateTransactionRequest{
		Type:        "expense",
		Amount:      decimal.NewFromInt(20),
		Date:        "2024-06-12",
		Description: "Lunch",
	}

	s.txnRepo.On("IsDuplicate", mock.Anything, int64(1), mock.Anything, req.Amount, domain.Expense, "Lunch").
		Return(true, nil).Once()

	txn, err := s.service.CreateTransaction(context.Background(), 1, req)

	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.Nil(txn)
	s.txnRepo.AssertNotCalled(s.T(), "SaveTransaction")
}

func (s *TransactionServiceTestSuite) TestCreateTransaction_InvalidType() {
	req := dto.CreateTransactionRequest{Type: "transfer", Amount: decimal.NewFromInt(5), Date: "2024-06-12"}

	txn, err := s.service.CreateTransaction(context.Background(), 1, req)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(txn)
}

func (s *TransactionServiceTestSuite) TestListTransactions_PaginationOffset() {
	params := dto.ListTransactionsParams{Page: 3, PerPage: 10}

	s.txnRepo.On("ListTransactions", mock.Anything, int64(1), mock.Anything, 10, 20).
		Return([]domain.Transaction{}, int64(42), nil).Once()

	_, total, err := s.service.ListTransactions(context.Background(), 1, params)

	s.NoError(err)
	s.Equal(int64(42), total)
	s.txnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestListTransactions_InvalidDate() {
	params := dto.ListTransactionsParams{Page: 1, PerPage: 10, StartDate: "12-06-2024"}

	_, _, err := s.service.ListTransactions(context.Background(), 1, params)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.txnRepo.AssertNotCalled(s.T(), "ListTransactions")
}

func (s *TransactionServiceTestSuite) TestUpdateTransaction_AppliesFields() {
	existing := &domain.Transaction{
		TransactionID: 9,
		UserID:        1,
		Type:          domain.Expense,
		Amount:        decimal.NewFromInt(20),
		Description:   "Lunch",
	}
	newAmount := decimal.RequireFromString("25.50")
	newDescription := "Team lunch"
	updated := &domain.Transaction{TransactionID: 9, Amount: newAmount, Description: newDescription}

	s.txnRepo.On("FindTransactionByID", mock.Anything, int64(9), int64(1)).Return(existing, nil).Once()
	s.txnRepo.On("UpdateTransaction", mock.Anything, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Amount.Equal(newAmount) && txn.Description == newDescription
	})).Return(nil).Once()
	s.txnRepo.On("FindTransactionByID", mock.Anything, int64(9), int64(1)).Return(updated, nil).Once()

	txn, err := s.service.UpdateTransaction(context.Background(), 9, 1, dto.UpdateTransactionRequest{
		Amount:      &newAmount,
		Description: &newDescription,
	})

	s.NoError(err)
	s.Equal(newDescription, txn.Description)
	s.txnRepo.AssertExpectations(s.T())
}

func (s *TransactionServiceTestSuite) TestUpdateTransaction_NotFound() {
	s.txnRepo.On("FindTransactionByID", mock.Anything, int64(9), int64(1)).
		Return(nil, apperrors.ErrNotFound).Once()

	txn, err := s.service.UpdateTransaction(context.Background(), 9, 1, dto.UpdateTransactionRequest{})

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(txn)
}

func (s *TransactionServiceTestSuite) TestGetSummary_Trends() {
	now := time.Date(2024, time.June, 12, 9, 0, 0, 0, time.UTC)
	thisMonthStart := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	lastMonthStart := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	lastMonthEnd := time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC)

	s.txnRepo.On("SumByType", mock.Anything, int64(1), domain.Income, (*time.Time)(nil), (*time.Time)(nil)).
		Return(decimal.NewFromInt(3000), nil).Once()
	s.txnRepo.On("SumByType", mock.Anything, int64(1), domain.Expense, (*time.Time)(nil), (*time.Time)(nil)).
		Return(decimal.NewFromInt(1800), nil).Once()
	s.txnRepo.On("CountByUser", mock.Anything, int64(1)).Return(57, nil).Once()
	s.txnRepo.On("SumByType", mock.Anything, int64(1), domain.Income, &thisMonthStart, (*time.Time)(nil)).
		Return(decimal.NewFromInt(1000), nil).Once()
	s.txnRepo.On("SumByType", mock.Anything, int64(1), domain.Income, &lastMonthStart, &lastMonthEnd).
		Return(decimal.NewFromInt(800), nil).Once()
	s.txnRepo.On("SumByType", mock.Anything, int64(1), domain.Expense, &thisMonthStart, (*time.Time)(nil)).
		Return(decimal.NewFromInt(600), nil).Once()
	s.txnRepo.On("SumByType", mock.Anything, int64(1), domain.Expense, &lastMonthStart, &lastMonthEnd).
		Return(decimal.NewFromInt(400), nil).Once()

	summary, err := s.service.GetSummary(context.Background(), 1, now)

	s.NoError(err)
	s.Equal("1200", summary.NetBalance.String())
	s.Equal(57, summary.TransactionCount)
	s.Equal("25", summary.IncomeTrend.String())
	s.Equal("50", summary.ExpenseTrend.String())
	s.Equal("0", summary.NetBalanceTrend.String())
	s.txnRepo.AssertExpectations(s.T())
}

func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
