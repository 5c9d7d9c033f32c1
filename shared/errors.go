package shared

import (
	"errors"
	"net/http"
)

// AppError is an error that maps directly onto an HTTP response.
type AppError struct {
	StatusCode int         `json:"code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`

	cause error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

func NewAppError(cause error, statusCode int, message string) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, cause: cause}
}

func NewBadRequestError(cause error, message string) *AppError {
	return NewAppError(cause, http.StatusBadRequest, message)
}

func NewInternalError(cause error, message string) *AppError {
	return NewAppError(cause, http.StatusInternalServerError, message)
}

// GetAppError unwraps err down to an *AppError if one is in the chain.
func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
