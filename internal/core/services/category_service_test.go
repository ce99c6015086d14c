package services

import (
	"context"
	"testing"

	"github.com/fbsys/fbs_backend/internal/apperrors"
	"github.com/fbsys/fbs_backend/internal/core/domain"
	"github.com/fbsys/fbs_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	categoryRepo *MockCategoryRepository
	service      *categoryService
}

func (s *CategoryServiceTestSuite) SetupTest() {
	s.categoryRepo = new(MockCategoryRepository)
	s.service = NewCategoryService(s.categoryRepo).(*categoryService)
}

func (s *CategoryServiceTestSuite) TestCreateCategory_Success() {
	req := dto.CreateCategoryRequest{Name: "Books", Type: "expense", Color: "#FF0000"}

	s.categoryRepo.On("FindByNameAndType", mock.Anything, "Books", domain.Expense, int64(1)).
		Return(nil, apperrors.ErrNotFound).Once()
	s.categoryRepo.On("SaveCategory", mock.Anything, mock.MatchedBy(func(c domain.Category) bool {
		return c.Name == "Books" && c.UserID != nil && *c.UserID == 1 && !c.IsDefault
	})).Return(&domain.Category{CategoryID: 5, Name: "Books", Type: domain.Expense}, nil).Once()

	category, err := s.service.CreateCategory(context.Background(), 1, req)

	s.NoError(err)
	s.Equal(int64(5), category.CategoryID)
	s.categoryRepo.AssertExpectations(s.T())
}

func (s *CategoryServiceTestSuite) TestCreateCategory_DuplicateName() {
	req := dto.CreateCategoryRequest{Name: "Food", Type: "expense"}

	s.categoryRepo.On("FindByNameAndType", mock.Anything, "Food", domain.Expense, int64(1)).
		Return(&domain.Category{CategoryID: 2, Name: "Food"}, nil).Once()

	category, err := s.service.CreateCategory(context.Background(), 1, req)

	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.Nil(category)
	s.categoryRepo.AssertNotCalled(s.T(), "SaveCategory")
}

func (s *CategoryServiceTestSuite) TestUpdateCategory_DefaultForbidden() {
	s.categoryRepo.On("FindCategoryByID", mock.Anything, int64(2), int64(1)).
		Return(&domain.Category{CategoryID: 2, Name: "Food", IsDefault: true}, nil).Once()

	name := "Groceries"
	category, err := s.service.UpdateCategory(context.Background(), 2, 1, dto.UpdateCategoryRequest{Name: &name})

	s.ErrorIs(err, apperrors.ErrForbidden)
	s.Nil(category)
	s.categoryRepo.AssertNotCalled(s.T(), "UpdateCategory")
}

func (s *CategoryServiceTestSuite) TestDeleteCategory_DefaultForbidden() {
	s.categoryRepo.On("FindCategoryByID", mock.Anything, int64(2), int64(1)).
		Return(&domain.Category{CategoryID: 2, IsDefault: true}, nil).Once()

	err := s.service.DeleteCategory(context.Background(), 2, 1)

	s.ErrorIs(err, apperrors.ErrForbidden)
	s.categoryRepo.AssertNotCalled(s.T(), "DeleteCategory")
}

func (s *CategoryServiceTestSuite) TestDeleteCategory_Success() {
	s.categoryRepo.On("FindCategoryByID", mock.Anything, int64(3), int64(1)).
		Return(&domain.Category{CategoryID: 3}, nil).Once()
	s.categoryRepo.On("DeleteCategory", mock.Anything, int64(3), int64(1)).Return(nil).Once()

	err := s.service.DeleteCategory(context.Background(), 3, 1)

	s.NoError(err)
	s.categoryRepo.AssertExpectations(s.T())
}

func TestCategoryService(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
