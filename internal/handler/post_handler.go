package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"blogapi/internal/errors"
	"blogapi/internal/repository"
	"blogapi/internal/service"
)

// PostHandler handles post endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePostRequest represents a post creation request.
type CreatePostRequest struct {
	Title      string `json:"title" validate:"required,max=255"`
	Content    string `json:"content" validate:"required"`
	CategoryID string `json:"category_id" validate:"omitempty,uuid4"`
}

// UpdatePostRequest represents a partial post update. Absent fields are left
// unchanged.
type UpdatePostRequest struct {
	Title      *string `json:"title" validate:"omitempty,min=1,max=255"`
	Content    *string `json:"content" validate:"omitempty,min=1"`
	CategoryID *string `json:"category_id" validate:"omitempty,uuid4"`
}

// MessageResponse represents a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// Create godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePostRequest true "Post data"
// @Success 201 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	authorID, err := requesterID(c)
	if err != nil {
		return err
	}

	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid request body", Code: "INVALID_BODY"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: err.Error(), Code: "VALIDATION_ERROR"})
	}

	input := service.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
	}
	if req.CategoryID != "" {
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid category id", Code: "VALIDATION_ERROR"})
		}
		input.CategoryID = &categoryID
	}

	post, err := h.postService.Create(c.Request().Context(), authorID, input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, post)
}

// List godoc
// @Summary List posts
// @Tags posts
// @Produce json
// @Param category query string false "Filter by category ID"
// @Param author query string false "Filter by author ID"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Param sort query string false "Sort order: newest, oldest or title"
// @Success 200 {array} model.Post
// @Failure 500 {object} errors.ErrorResponse
// @Router /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	opts, err := listOptionsFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: err.Error(), Code: "VALIDATION_ERROR"})
	}

	posts, err := h.postService.List(c.Request().Context(), opts)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, posts)
}

// Get godoc
// @Summary Get a post by ID
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} model.Post
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrPostNotFound)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	post, err := h.postService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, post)
}

// Update godoc
// @Summary Update a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body UpdatePostRequest true "Fields to update"
// @Success 200 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	userID, err := requesterID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrPostNotFound)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid request body", Code: "INVALID_BODY"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: err.Error(), Code: "VALIDATION_ERROR"})
	}

	input := service.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid category id", Code: "VALIDATION_ERROR"})
		}
		input.CategoryID = &categoryID
	}

	post, err := h.postService.Update(c.Request().Context(), id, userID, input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, post)
}

// Delete godoc
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	userID, err := requesterID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrPostNotFound)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if err := h.postService.Delete(c.Request().Context(), id, userID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Post deleted"})
}

// listOptionsFromQuery builds repository.ListOptions from query parameters.
func listOptionsFromQuery(c echo.Context) (repository.ListOptions, error) {
	var opts repository.ListOptions

	if v := c.QueryParam("category"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return opts, fmt.Errorf("invalid category filter")
		}
		opts.CategoryID = &id
	}
	if v := c.QueryParam("author"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return opts, fmt.Errorf("invalid author filter")
		}
		opts.AuthorID = &id
	}
	if v := c.QueryParam("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil {
			opts.Page = page
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			opts.Limit = limit
		}
	}

	// Whitelisted sort keys keep the order clause out of caller control.
	switch c.QueryParam("sort") {
	case "", "newest":
		opts.Order = "created_at desc"
	case "oldest":
		opts.Order = "created_at asc"
	case "title":
		opts.Order = "title asc"
	default:
		opts.Order = "created_at desc"
	}

	return opts, nil
}
