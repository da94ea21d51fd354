package blocktemplate

import "fmt"

// InvalidDefinitionMessage is reported when a template is found but its
// definition is unusable.
const InvalidDefinitionMessage = "Template found but invalid definition provided."

// InvalidTemplateError reports an unknown, malformed or unfetchable template.
// It is a recognized configuration error: the CLI prints the message and
// exits with status 1.
type InvalidTemplateError struct {
	Message string
	Issues  []ValidationIssue
	Err     error
}

// NewInvalidTemplateError formats a new InvalidTemplateError.
func NewInvalidTemplateError(format string, args ...any) *InvalidTemplateError {
	return &InvalidTemplateError{Message: fmt.Sprintf(format, args...)}
}

func (e *InvalidTemplateError) Error() string {
	if len(e.Issues) == 0 {
		return e.Message
	}
	msg := e.Message
	for _, issue := range e.Issues {
		if issue.Path != "" {
			msg += "\n  " + issue.Path + ": " + issue.Message
		} else {
			msg += "\n  " + issue.Message
		}
	}
	return msg
}

func (e *InvalidTemplateError) Unwrap() error { return e.Err }

// UserFacing marks the error as a recognized configuration error.
func (e *InvalidTemplateError) UserFacing() bool { return true }
