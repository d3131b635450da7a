package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"blogapi/internal/errors"
	"blogapi/internal/model"
)

func TestCategoryService_Create(t *testing.T) {
	t.Run("creates with derived slug", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockRepo.On("FindByName", mock.Anything, "Distributed Systems").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Category")).Return(nil)

		svc := NewCategoryService(mockRepo)
		category, err := svc.Create(context.Background(), "Distributed Systems")

		assert.NoError(t, err)
		assert.Equal(t, "Distributed Systems", category.Name)
		assert.Equal(t, "distributed-systems", category.Slug)
		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate name", func(t *testing.T) {
		mockRepo := new(MockCategoryRepository)
		mockRepo.On("FindByName", mock.Anything, "Technology").Return(&model.Category{Name: "Technology"}, nil)

		svc := NewCategoryService(mockRepo)
		category, err := svc.Create(context.Background(), "Technology")

		assert.Equal(t, errors.ErrDuplicateCategory, err)
		assert.Nil(t, category)
		mockRepo.AssertExpectations(t)
	})
}

func TestCategoryService_List(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	mockRepo.On("List", mock.Anything).Return([]model.Category{
		{Name: "Career"},
		{Name: "Technology"},
	}, nil)

	svc := NewCategoryService(mockRepo)
	categories, err := svc.List(context.Background())

	assert.NoError(t, err)
	assert.Len(t, categories, 2)
	mockRepo.AssertExpectations(t)
}
