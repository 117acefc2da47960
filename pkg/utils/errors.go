package utils

import (
	"fmt"
	"net/http"
)

// ResponseCode business response code
type ResponseCode int

// Response codes
const (
	CodeSuccess ResponseCode = 0

	// Parameter and auth errors
	CodeInvalidParam ResponseCode = 40001
	CodeUnauthorized ResponseCode = 40101
	CodeForbidden    ResponseCode = 40301

	// User related errors
	CodeUserNotFound ResponseCode = 40401
	CodeUserExists   ResponseCode = 40901

	// Inventory related errors
	CodeItemNotFound ResponseCode = 40402

	// Order related errors
	CodeOrderNotFound ResponseCode = 40403

	// Rate limiting
	CodeRateLimit ResponseCode = 42901

	// System errors
	CodeInternalError ResponseCode = 50001
	CodeDatabaseError ResponseCode = 50002
	CodeRedisError    ResponseCode = 50003
)

// HTTPStatus maps a response code to an HTTP status code
func (c ResponseCode) HTTPStatus() int {
	switch c {
	case CodeSuccess:
		return http.StatusOK
	case CodeInvalidParam:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeUserNotFound, CodeItemNotFound, CodeOrderNotFound:
		return http.StatusNotFound
	case CodeUserExists:
		return http.StatusConflict
	case CodeRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// AppError application error structure
type AppError struct {
	Code    ResponseCode `json:"code"`
	Message string       `json:"message"`
	Err     error        `json:"-"`
}

// Error implement error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("code: %d, message: %s, error: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("code: %d, message: %s", e.Code, e.Message)
}

// Unwrap implement errors.Unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewError create new application error
func NewError(code ResponseCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewErrorWithErr create application error with original error
func NewErrorWithErr(code ResponseCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Predefined errors
var (
	ErrInvalidParam = NewError(CodeInvalidParam, "invalid parameter")
	ErrUnauthorized = NewError(CodeUnauthorized, "unauthorized")
	ErrForbidden    = NewError(CodeForbidden, "forbidden")

	ErrUserNotFound = NewError(CodeUserNotFound, "user not found")
	ErrUserExists   = NewError(CodeUserExists, "user already exists")

	ErrItemNotFound  = NewError(CodeItemNotFound, "inventory item not found")
	ErrOrderNotFound = NewError(CodeOrderNotFound, "order not found")

	ErrRateLimit     = NewError(CodeRateLimit, "rate limit exceeded")
	ErrInternalError = NewError(CodeInternalError, "internal server error")
	ErrDatabaseError = NewError(CodeDatabaseError, "database error")
)

// IsAppError check if it's an application error
func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

// GetErrorCode get error code
func GetErrorCode(err error) ResponseCode {
	if appErr, ok := IsAppError(err); ok {
		return appErr.Code
	}
	return CodeInternalError
}

// GetErrorMessage get error message
func GetErrorMessage(err error) string {
	if appErr, ok := IsAppError(err); ok {
		return appErr.Message
	}
	return err.Error()
}
