package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/skinsight/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// fromServiceError maps domain error codes onto HTTP statuses. Unknown
// failures keep fallbackCode with a 500.
func fromServiceError(err error, fallbackCode string) *HTTPError {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeInvalidInput:
		return NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err)
	case apperrors.CodeRateLimited:
		return NewHTTPError(http.StatusTooManyRequests, apperrors.CodeRateLimited, errMessage(err), err)
	case apperrors.CodeCatalog:
		return NewHTTPError(http.StatusServiceUnavailable, "catalog_unavailable", errMessage(err), err)
	case apperrors.CodeLLM, apperrors.CodeConfig:
		return NewHTTPError(http.StatusBadGateway, fallbackCode, errMessage(err), err)
	default:
		return NewHTTPError(http.StatusInternalServerError, fallbackCode, errMessage(err), err)
	}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
