package apperrors

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error carries a stable code and an HTTP status so handlers can map any
// domain failure to the response envelope without inspecting its origin.
type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}

func New(code, message string, status int) *Error {
	return &Error{Code: code, Message: message, Status: status}
}

var (
	// Common
	ErrInternal     = New("C001", "internal server error", http.StatusInternalServerError)
	ErrInvalidInput = New("C002", "invalid input", http.StatusBadRequest)
	ErrUnauthorized = New("C003", "authentication required", http.StatusUnauthorized)
	ErrAccessDenied = New("C004", "access denied", http.StatusForbidden)

	// User
	ErrUserNotFound = New("U001", "user not found", http.StatusNotFound)

	// Shop
	ErrShopNotFound = New("S001", "shop not found", http.StatusNotFound)

	// Category
	ErrCategoryNotFound = New("CT001", "category not found", http.StatusNotFound)
	ErrCategoryCycle    = New("CT002", "category parent would create a cycle", http.StatusBadRequest)

	// Product
	ErrProductNotFound = New("P001", "product not found", http.StatusNotFound)
	ErrDuplicateSlug   = New("P002", "slug is already in use", http.StatusConflict)

	// Review
	ErrReviewNotFound  = New("R001", "review not found", http.StatusNotFound)
	ErrDuplicateReview = New("R002", "review already written for this product", http.StatusConflict)

	// File
	ErrFileSizeExceeded        = New("F002", "file size exceeds the limit", http.StatusBadRequest)
	ErrFileCountExceeded       = New("F003", "file count exceeds the limit", http.StatusBadRequest)
	ErrFileExtensionNotAllowed = New("F004", "file extension is not allowed", http.StatusBadRequest)
	ErrFileSaveFailed          = New("F005", "failed to save file", http.StatusInternalServerError)
)

// Invalid returns an INVALID_INPUT error with a specific message.
func Invalid(message string) *Error {
	return New(ErrInvalidInput.Code, message, http.StatusBadRequest)
}

// FromValidation joins field-level validation failures into one
// INVALID_INPUT error message.
func FromValidation(err error) *Error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ErrInvalidInput
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Field()+" failed on "+fe.Tag())
	}
	return Invalid(strings.Join(msgs, "; "))
}
