package services

import (
	"fmt"
	"net/http"
)

// AppError HTTPステータスに対応付けられるサービスエラー
type AppError struct {
	Status  int
	Message string
}

// Error error インターフェースの実装
func (e *AppError) Error() string {
	return e.Message
}

// NewNotFoundError 404
func NewNotFoundError(format string, args ...interface{}) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewForbiddenError 403
func NewForbiddenError(format string, args ...interface{}) *AppError {
	return &AppError{Status: http.StatusForbidden, Message: fmt.Sprintf(format, args...)}
}

// NewBadRequestError 400
func NewBadRequestError(format string, args ...interface{}) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// NewUnprocessableError 422
func NewUnprocessableError(format string, args ...interface{}) *AppError {
	return &AppError{Status: http.StatusUnprocessableEntity, Message: fmt.Sprintf(format, args...)}
}

// NewUnauthorizedError 401
func NewUnauthorizedError(format string, args ...interface{}) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// NewUnavailableError 503
func NewUnavailableError(format string, args ...interface{}) *AppError {
	return &AppError{Status: http.StatusServiceUnavailable, Message: fmt.Sprintf(format, args...)}
}
