package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

// MockPostRepository is a mock implementation of PostRepository.
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, opts repository.ListOptions) ([]model.Post, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*model.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func newPostService(postRepo *MockPostRepository, categoryRepo *MockCategoryRepository) PostService {
	// nil cache behaves like an always-empty cache
	return NewPostService(postRepo, categoryRepo, nil)
}

func TestPostService_Create(t *testing.T) {
	authorID := uuid.New()

	t.Run("sets slug and author", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockCategories := new(MockCategoryRepository)
		mockPosts.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)

		svc := newPostService(mockPosts, mockCategories)
		post, err := svc.Create(context.Background(), authorID, CreatePostInput{
			Title:   "E2E Post",
			Content: "E2E Content",
		})

		assert.NoError(t, err)
		assert.NotNil(t, post)
		assert.Equal(t, "e2e-post", post.Slug)
		assert.Equal(t, authorID, post.AuthorID)
		assert.Equal(t, "E2E Post", post.Title)
		assert.Equal(t, "E2E Content", post.Content)
		mockPosts.AssertExpectations(t)
	})

	t.Run("unknown category", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockCategories := new(MockCategoryRepository)
		categoryID := uuid.New()
		mockCategories.On("FindByID", mock.Anything, categoryID).Return(nil, gorm.ErrRecordNotFound)

		svc := newPostService(mockPosts, mockCategories)
		post, err := svc.Create(context.Background(), authorID, CreatePostInput{
			Title:      "Post",
			Content:    "Content",
			CategoryID: &categoryID,
		})

		assert.Equal(t, errors.ErrCategoryNotFound, err)
		assert.Nil(t, post)
		mockCategories.AssertExpectations(t)
	})
}

func TestPostService_Get(t *testing.T) {
	t.Run("round-trips title and content", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockCategories := new(MockCategoryRepository)
		id := uuid.New()
		mockPosts.On("FindByID", mock.Anything, id).Return(&model.Post{
			ID:      id,
			Title:   "New Post",
			Content: "Content",
		}, nil)

		svc := newPostService(mockPosts, mockCategories)
		post, err := svc.Get(context.Background(), id)

		assert.NoError(t, err)
		assert.Equal(t, "New Post", post.Title)
		assert.Equal(t, "Content", post.Content)
	})

	t.Run("not found", func(t *testing.T) {
		mockPosts := new(MockPostRepository)
		mockCategories := new(MockCategoryRepository)
		id := uuid.New()
		mockPosts.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		svc := newPostService(mockPosts, mockCategories)
		post, err := svc.Get(context.Background(), id)

		assert.Equal(t, errors.ErrPostNotFound, err)
		assert.Nil(t, post)
	})
}

func TestPostService_Update(t *testing.T) {
	postID := uuid.New()
	authorID := uuid.New()
	otherUserID := uuid.New()

	newTitle := "Updated"

	tests := []struct {
		name          string
		requesterID   uuid.UUID
		setupMock     func(*MockPostRepository)
		expectedError error
	}{
		{
			name:        "author updates own post",
			requesterID: authorID,
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, postID).Return(&model.Post{
					ID:       postID,
					Title:    "Original",
					Slug:     "original",
					Content:  "Content",
					AuthorID: authorID,
				}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:        "non-author is forbidden",
			requesterID: otherUserID,
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, postID).Return(&model.Post{
					ID:       postID,
					AuthorID: authorID,
				}, nil)
			},
			expectedError: errors.ErrUpdateForbidden,
		},
		{
			name:        "post does not exist",
			requesterID: otherUserID,
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, postID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPosts := new(MockPostRepository)
			mockCategories := new(MockCategoryRepository)
			tt.setupMock(mockPosts)

			svc := newPostService(mockPosts, mockCategories)
			post, err := svc.Update(context.Background(), postID, tt.requesterID, UpdatePostInput{Title: &newTitle})

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, post)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "Updated", post.Title)
				// The slug keeps its original value when the title changes.
				assert.Equal(t, "original", post.Slug)
			}

			mockPosts.AssertExpectations(t)
		})
	}
}

func TestPostService_Delete(t *testing.T) {
	postID := uuid.New()
	authorID := uuid.New()
	otherUserID := uuid.New()

	tests := []struct {
		name          string
		requesterID   uuid.UUID
		setupMock     func(*MockPostRepository)
		expectedError error
	}{
		{
			name:        "author deletes own post",
			requesterID: authorID,
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, postID).Return(&model.Post{
					ID:       postID,
					AuthorID: authorID,
				}, nil)
				m.On("Delete", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:        "non-author is forbidden",
			requesterID: otherUserID,
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, postID).Return(&model.Post{
					ID:       postID,
					AuthorID: authorID,
				}, nil)
			},
			expectedError: errors.ErrDeleteForbidden,
		},
		{
			name:        "post does not exist",
			requesterID: authorID,
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, postID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPosts := new(MockPostRepository)
			mockCategories := new(MockCategoryRepository)
			tt.setupMock(mockPosts)

			svc := newPostService(mockPosts, mockCategories)
			err := svc.Delete(context.Background(), postID, tt.requesterID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockPosts.AssertExpectations(t)
		})
	}
}

func TestPostService_List(t *testing.T) {
	mockPosts := new(MockPostRepository)
	mockCategories := new(MockCategoryRepository)

	opts := repository.ListOptions{Page: 1, Limit: 10, Order: "created_at desc"}
	mockPosts.On("List", mock.Anything, opts).Return([]model.Post{
		{Title: "First"},
		{Title: "Second"},
	}, nil)

	svc := newPostService(mockPosts, mockCategories)
	posts, err := svc.List(context.Background(), opts)

	assert.NoError(t, err)
	assert.Len(t, posts, 2)
	mockPosts.AssertExpectations(t)
}
