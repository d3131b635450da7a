package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"blogapi/internal/cache"
	"blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

const postCacheTTL = 5 * time.Minute

// CreatePostInput carries the fields of a new post.
type CreatePostInput struct {
	Title      string
	Content    string
	CategoryID *uuid.UUID
}

// UpdatePostInput carries a partial patch; nil fields are left unchanged.
// The slug is not recomputed when the title changes.
type UpdatePostInput struct {
	Title      *string
	Content    *string
	CategoryID *uuid.UUID
}

// PostService handles post operations. Every mutation after creation is
// restricted to the post's author.
type PostService interface {
	Create(ctx context.Context, authorID uuid.UUID, input CreatePostInput) (*model.Post, error)
	List(ctx context.Context, opts repository.ListOptions) ([]model.Post, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Post, error)
	Update(ctx context.Context, id, requesterID uuid.UUID, input UpdatePostInput) (*model.Post, error)
	Delete(ctx context.Context, id, requesterID uuid.UUID) error
}

type postService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
	cache        *cache.Client
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository, categoryRepo repository.CategoryRepository, cache *cache.Client) PostService {
	return &postService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

func (s *postService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("post:%s", id.String())
}

// Create persists a post owned by authorID with a slug derived from its title.
func (s *postService) Create(ctx context.Context, authorID uuid.UUID, input CreatePostInput) (*model.Post, error) {
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *input.CategoryID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.ErrCategoryNotFound
			}
			return nil, fmt.Errorf("find category: %w", err)
		}
	}

	post := &model.Post{
		ID:         uuid.New(),
		Title:      input.Title,
		Slug:       Slugify(input.Title),
		Content:    input.Content,
		AuthorID:   authorID,
		CategoryID: input.CategoryID,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return post, nil
}

// List returns a page of posts with author and category relations.
func (s *postService) List(ctx context.Context, opts repository.ListOptions) ([]model.Post, error) {
	posts, err := s.postRepo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Get retrieves a post by ID with read-through caching.
func (s *postService) Get(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	// Try cache first
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Post
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	// Cache the result
	if payload, err := json.Marshal(post); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, postCacheTTL)
	}

	return post, nil
}

// Update applies a patch to a post. Existence is checked before ownership,
// so a missing post reports not-found even to a non-author.
func (s *postService) Update(ctx context.Context, id, requesterID uuid.UUID, input UpdatePostInput) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	if post.AuthorID != requesterID {
		return nil, errors.ErrUpdateForbidden
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *input.CategoryID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.ErrCategoryNotFound
			}
			return nil, fmt.Errorf("find category: %w", err)
		}
		post.CategoryID = input.CategoryID
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	// Invalidate cache
	_ = s.cache.Delete(ctx, s.cacheKey(id))

	return post, nil
}

// Delete removes a post after the same existence and ownership checks as Update.
func (s *postService) Delete(ctx context.Context, id, requesterID uuid.UUID) error {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrPostNotFound
		}
		return fmt.Errorf("find post: %w", err)
	}

	if post.AuthorID != requesterID {
		return errors.ErrDeleteForbidden
	}

	if err := s.postRepo.Delete(ctx, post); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	// Invalidate cache
	_ = s.cache.Delete(ctx, s.cacheKey(id))

	return nil
}
