package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    "BAD_REQUEST",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func Forbidden(message string, err error) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// ListingSold is returned when a buyer tries to reserve a listing that was
// already sold. Clients show it as "no longer available".
func ListingSold(err error) *AppError {
	return &AppError{
		Code:    "LISTING_SOLD",
		Message: "This item is no longer available",
		Status:  http.StatusConflict,
		Err:     err,
	}
}

// ListingReserved is returned when another buyer holds a reservation on the
// listing and the reservation window has not elapsed yet.
func ListingReserved(err error) *AppError {
	return &AppError{
		Code:    "LISTING_RESERVED",
		Message: "This item is no longer available",
		Status:  http.StatusConflict,
		Err:     err,
	}
}

func InvalidStateTransition(from, to string) *AppError {
	return &AppError{
		Code:    "INVALID_STATE_TRANSITION",
		Message: fmt.Sprintf("Order cannot move from %s to %s", from, to),
		Status:  http.StatusConflict,
		Err:     nil,
	}
}

func AlreadyReviewed() *AppError {
	return &AppError{
		Code:    "ALREADY_REVIEWED",
		Message: "You've already reviewed this order",
		Status:  http.StatusConflict,
		Err:     nil,
	}
}

func InvalidRating() *AppError {
	return &AppError{
		Code:    "INVALID_RATING",
		Message: "Rating must be an integer between 1 and 5",
		Status:  http.StatusBadRequest,
		Err:     nil,
	}
}

func UploadFailed(err error) *AppError {
	return &AppError{
		Code:    "UPLOAD_FAILED",
		Message: "Failed to upload one or more files",
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
		Status:  http.StatusConflict,
		Err:     nil,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
