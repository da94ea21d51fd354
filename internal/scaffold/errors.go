package scaffold

import (
	"errors"
	"fmt"
)

// ErrOutputExists matches an OutputExistsError with errors.Is.
var ErrOutputExists = errors.New("output directory already exists")

// OutputExistsError reports that the output root is already present.
type OutputExistsError struct {
	Path string
}

func (e *OutputExistsError) Error() string {
	return fmt.Sprintf("The %q folder already exists. Choose a different slug or namespace, or remove the folder first.", e.Path)
}

func (e *OutputExistsError) Is(target error) bool { return target == ErrOutputExists }

// UserFacing marks the error as a recognized configuration error.
func (e *OutputExistsError) UserFacing() bool { return true }
