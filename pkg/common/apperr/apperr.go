package apperr

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Error codes carried in the response envelope.
const (
	CodeInternal     = 10000
	CodeInvalidParam = 10001
	CodeValidation   = 10002
	CodeUnauthorized = 10003
	CodeNotFound     = 10004
	CodeUnavailable  = 10005
)

// AppError is an error with a stable code and the HTTP status it maps to.
type AppError struct {
	Code       int
	Message    string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError. cause may be nil.
func New(code int, msg string, httpStatus int, cause error) *AppError {
	if cause != nil {
		cause = errors.WithStack(cause)
	}
	return &AppError{Code: code, Message: msg, HTTPStatus: httpStatus, Err: cause}
}

// Wrap attaches code and status to err. It returns nil for a nil err.
func Wrap(err error, code int, msg string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return New(code, msg, httpStatus, err)
}

// From returns the AppError in err's chain, or wraps err as an internal error.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeInternal, "internal error", http.StatusInternalServerError)
}

func NotFound(what string, cause error) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s %s", what, MsgNotFound), http.StatusNotFound, cause)
}

func InvalidParam(msg string, cause error) *AppError {
	return New(CodeInvalidParam, msg, http.StatusBadRequest, cause)
}

func Unauthorized(msg string) *AppError {
	return New(CodeUnauthorized, msg, http.StatusUnauthorized, nil)
}
