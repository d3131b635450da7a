package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailTaken is returned when registering with an email that already exists.
	ErrEmailTaken = errors.New("duplicate email")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound is returned when a user lookup fails.
	ErrUserNotFound = errors.New("user not found")
	// ErrPostNotFound is returned when a post lookup fails.
	ErrPostNotFound = errors.New("post not found")
	// ErrUpdateForbidden is returned when a non-author attempts to update a post.
	ErrUpdateForbidden = errors.New("not authorized to update this post")
	// ErrDeleteForbidden is returned when a non-author attempts to delete a post.
	ErrDeleteForbidden = errors.New("not authorized to delete this post")
	// ErrCategoryNotFound is returned when a referenced category does not exist.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrDuplicateCategory is returned when a category name already exists.
	ErrDuplicateCategory = errors.New("duplicate category name")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Both halves of a failed
// login collapse into the same response so callers cannot tell whether the
// email or the password was wrong.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, "duplicate email", "DUPLICATE_EMAIL")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, "Invalid credentials", "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, "User not found", "USER_NOT_FOUND")
	case errors.Is(err, ErrPostNotFound):
		return NewHTTPError(http.StatusNotFound, "Post not found", "POST_NOT_FOUND")
	case errors.Is(err, ErrUpdateForbidden):
		return NewHTTPError(http.StatusForbidden, "Not authorized to update this post", "NOT_POST_AUTHOR")
	case errors.Is(err, ErrDeleteForbidden):
		return NewHTTPError(http.StatusForbidden, "Not authorized to delete this post", "NOT_POST_AUTHOR")
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusNotFound, "Category not found", "CATEGORY_NOT_FOUND")
	case errors.Is(err, ErrDuplicateCategory):
		return NewHTTPError(http.StatusBadRequest, "duplicate category name", "DUPLICATE_CATEGORY")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
