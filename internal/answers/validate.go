package answers

import (
	"fmt"
	"regexp"
)

// IdentifierPattern is the format shared by slugs and namespaces.
var IdentifierPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidationError reports a slug or namespace that does not match IdentifierPattern.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Invalid block %s specified. Block %s can contain only lowercase alphanumeric characters or dashes, and start with a letter.", e.Field, e.Field)
}

// UserFacing marks the error as a recognized configuration error.
func (e *ValidationError) UserFacing() bool { return true }

// ValidateIdentifier checks a single slug or namespace value.
func ValidateIdentifier(field, value string) error {
	if !IdentifierPattern.MatchString(value) {
		return &ValidationError{Field: field, Value: value}
	}
	return nil
}

// Validate checks the slug and namespace of a set, when present.
func Validate(s Set) error {
	for _, field := range []string{KeySlug, KeyNamespace} {
		value, ok := s[field]
		if !ok {
			continue
		}
		if err := ValidateIdentifier(field, value); err != nil {
			return err
		}
	}
	return nil
}
