package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode string

const (
	// Authentication errors (1xxx)
	ErrCodeInvalidCredentials ErrorCode = "AUTH_1001"
	ErrCodeInactiveAccount    ErrorCode = "AUTH_1002"
	ErrCodeUnauthenticated    ErrorCode = "AUTH_1003"
	ErrCodeUserNotFound       ErrorCode = "AUTH_1004"
	ErrCodeInvalidToken       ErrorCode = "AUTH_1005"

	// Rate limiting errors (3xxx)
	ErrCodeRateLimited ErrorCode = "RATE_3001"

	// Server errors (6xxx)
	ErrCodeInternal ErrorCode = "SERVER_6001"
)

// AppError is a structured application error carrying a stable code and the
// fixed message exposed on the HTTP surface.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is match two AppErrors by code, so sentinel-style
// comparisons against the constructors below work.
func (e *AppError) Is(target error) bool {
	var appErr *AppError
	if errors.As(target, &appErr) {
		return e.Code == appErr.Code
	}
	return false
}

func New(code ErrorCode, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

// Messages mirror the public API contract and must not change casually.

func ErrInvalidCredentials() *AppError {
	return New(ErrCodeInvalidCredentials, "Incorrect email or password", nil)
}

func ErrInactiveAccount() *AppError {
	return New(ErrCodeInactiveAccount, "Inactive user", nil)
}

func ErrUnauthenticated() *AppError {
	return New(ErrCodeUnauthenticated, "Could not validate credentials", nil)
}

func ErrUserNotFound() *AppError {
	return New(ErrCodeUserNotFound, "The user with this username does not exist in the system.", nil)
}

func ErrInvalidToken() *AppError {
	return New(ErrCodeInvalidToken, "Invalid token", nil)
}

func ErrRateLimited() *AppError {
	return New(ErrCodeRateLimited, "Too many login attempts. Please try again later.", nil)
}

func ErrInternal(cause error) *AppError {
	return New(ErrCodeInternal, "Internal server error", cause)
}

// HTTPStatus maps an error to its fixed HTTP status code.
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case ErrCodeInvalidCredentials, ErrCodeInactiveAccount, ErrCodeInvalidToken:
		return http.StatusBadRequest
	case ErrCodeUnauthenticated:
		return http.StatusUnauthorized
	case ErrCodeUserNotFound:
		return http.StatusNotFound
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
