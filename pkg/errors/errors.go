package errors

import (
	"fmt"
	"net/http"
	"strconv"
)

// AppError is an application error carrying the HTTP status and the
// title/message pair rendered into the error envelope.
type AppError struct {
	StatusCode int    `json:"-"`
	Title      string `json:"error_title"`
	Message    string `json:"error_message"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	return fmt.Sprintf("[%d] %s: %s", e.StatusCode, e.Title, e.Message)
}

// Code returns the envelope error code for the status
func (e *AppError) Code() string {
	return strconv.Itoa(e.StatusCode)
}

// New creates a new application error
func New(statusCode int, title, message string) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Title:      title,
		Message:    message,
	}
}

// NewBadRequestError creates a 400 Bad Request error
func NewBadRequestError(title, message string) *AppError {
	return New(http.StatusBadRequest, title, message)
}

// NewUnauthorizedError creates a 401 Unauthorized error
func NewUnauthorizedError(title, message string) *AppError {
	return New(http.StatusUnauthorized, title, message)
}

// NewNotFoundError creates a 404 Not Found error
func NewNotFoundError(title, message string) *AppError {
	return New(http.StatusNotFound, title, message)
}

// NewConflictError creates a 409 Conflict error
func NewConflictError(title, message string) *AppError {
	return New(http.StatusConflict, title, message)
}

// FromError converts any error to an AppError. Unrecognized errors map to
// a generic 400-class envelope without internal detail.
func FromError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return NewBadRequestError("Request Failed", "The request could not be processed")
}
