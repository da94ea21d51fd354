package resolver

import (
	"context"

	"github.com/t2-labs/create-block/internal/blocktemplate"
)

// Outcome tags a strategy Result.
type Outcome int

const (
	// NotFound means the strategy does not know the identifier.
	NotFound Outcome = iota
	// Found means the strategy produced a block template.
	Found
	// Fatal means the identifier was recognized but could not be loaded.
	Fatal
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Fatal:
		return "fatal"
	default:
		return "not-found"
	}
}

// Result is the tagged answer of a Strategy.
type Result struct {
	Outcome  Outcome
	Template *blocktemplate.BlockTemplate
	Err      error
}

// FoundResult wraps a materialized template.
func FoundResult(t *blocktemplate.BlockTemplate) Result {
	return Result{Outcome: Found, Template: t}
}

// NotFoundResult reports that a strategy does not apply.
func NotFoundResult() Result {
	return Result{Outcome: NotFound}
}

// FatalResult stops resolution with err.
func FatalResult(err error) Result {
	return Result{Outcome: Fatal, Err: err}
}

// Strategy looks an identifier up in one template source. Strategies that
// fetch into a scratch directory materialize the template before returning
// so the result never refers into the scratch directory.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, id string) Result
}

// InvalidTemplateError is the error returned for unknown or unusable
// templates.
type InvalidTemplateError = blocktemplate.InvalidTemplateError
