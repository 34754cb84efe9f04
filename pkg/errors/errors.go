package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	CodeNotFound        = "NOT_FOUND"
	CodeBadRequest      = "BAD_REQUEST"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeConflict        = "CONFLICT"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
	CodeInternal        = "INTERNAL_ERROR"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
	// RetryAfter is set on TOO_MANY_REQUESTS errors.
	RetryAfter time.Duration
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
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
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound, err)
}

func BadRequest(message string, err error) *AppError {
	return New(CodeBadRequest, message, http.StatusBadRequest, err)
}

func Unauthorized(message string, err error) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized, err)
}

func Forbidden(message string, err error) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden, err)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message, http.StatusConflict, nil)
}

func Internal(message string, err error) *AppError {
	return New(CodeInternal, message, http.StatusInternalServerError, err)
}

func TooManyRequests(message string, waitTime time.Duration) *AppError {
	appErr := New(CodeTooManyRequests, message, http.StatusTooManyRequests, nil)
	appErr.RetryAfter = waitTime
	return appErr
}

// Is reports whether err is an AppError carrying code.
func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
