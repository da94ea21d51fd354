package output

import "errors"

// Exit codes returned by the CLI.
// 0 = Success
// 1 = User error (unknown template, invalid slug, output already exists)
// 2 = System error (I/O failure, unexpected internal error)
const (
	ExitSuccess     = 0
	ExitUserError   = 1
	ExitSystemError = 2
)

// UserFacing is implemented by errors that describe a configuration problem
// the user can fix. Such errors are reported without a stack dump.
type UserFacing interface {
	error
	UserFacing() bool
}

// ExitError is an error that carries an exit code for the CLI.
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// UserFacing reports whether the error maps to ExitUserError.
func (e *ExitError) UserFacing() bool {
	return e.Code == ExitUserError
}

// NewUserError creates an error for user-caused issues (exit code 1).
func NewUserError(message string) *ExitError {
	return &ExitError{
		Code:    ExitUserError,
		Message: message,
	}
}

// NewSystemErrorWithCause creates a system error wrapping an underlying cause.
func NewSystemErrorWithCause(message string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitSystemError,
		Message: message,
		Cause:   cause,
	}
}

// IsUserFacing reports whether err is a recognized configuration error.
func IsUserFacing(err error) bool {
	var uf UserFacing
	return errors.As(err, &uf) && uf.UserFacing()
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, the carried code for an ExitError,
// ExitUserError for recognized errors and ExitSystemError otherwise.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if IsUserFacing(err) {
		return ExitUserError
	}
	return ExitSystemError
}
