package errors

import "errors"

// Codes shared by the domain services and the HTTP layer.
const (
	CodeInvalidInput = "invalid_input"
	CodeRateLimited  = "rate_limited"
	CodeConfig       = "config_error"
	CodeLLM          = "llm_error"
	CodeCatalog      = "catalog_error"
)

// AppError encodes domain specific error details.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap produces a new AppError instance.
func Wrap(code, message string, err error) error {
	if err == nil {
		return &AppError{Code: code, Message: message}
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// IsCode reports whether err carries an AppError with the given code.
func IsCode(err error, code string) bool {
	return code != "" && CodeOf(err) == code
}

// CodeOf returns the code of the outermost AppError in err's chain, or "".
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
