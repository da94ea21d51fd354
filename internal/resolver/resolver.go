package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/kurtosis-tech/stacktrace"
	"github.com/rs/zerolog"

	"github.com/t2-labs/create-block/internal/blocktemplate"
	"github.com/t2-labs/create-block/internal/npm"
)

// Resolver folds an ordered list of strategies over an identifier.
type Resolver struct {
	Strategies []Strategy
	// Names are the built-in names listed when no strategy finds a template.
	Names  []string
	Logger zerolog.Logger
}

// Options configure the default strategy chain.
type Options struct {
	// BaseDir anchors relative local template paths.
	BaseDir string
	// ScratchDir is where git and npm fetches are staged. Empty means the
	// system temp dir.
	ScratchDir string
	// Npm overrides the npm client, mainly for tests.
	Npm    *npm.Client
	Logger zerolog.Logger
}

// New returns a Resolver trying, in order, the registry, local paths, git
// repositories and the npm registry.
func New(registry *Registry, opts Options) *Resolver {
	client := opts.Npm
	if client == nil {
		client = npm.NewClient(opts.Logger)
	}
	return &Resolver{
		Strategies: []Strategy{
			&BuiltinStrategy{Registry: registry},
			&LocalStrategy{BaseDir: opts.BaseDir, Logger: opts.Logger},
			&GitStrategy{ScratchDir: opts.ScratchDir, Logger: opts.Logger},
			&NpmStrategy{Client: client, ScratchDir: opts.ScratchDir, Logger: opts.Logger},
		},
		Names:  registry.Names(),
		Logger: opts.Logger,
	}
}

// Resolve returns the block template for id. Unknown identifiers fail with
// an InvalidTemplateError listing the built-in names.
func (r *Resolver) Resolve(ctx context.Context, id string) (*blocktemplate.BlockTemplate, error) {
	for _, s := range r.Strategies {
		if err := ctx.Err(); err != nil {
			return nil, stacktrace.Propagate(err, "An error occurred resolving template '%s'", id)
		}

		res := s.Resolve(ctx, id)
		r.Logger.Debug().Str("template", id).Str("strategy", s.Name()).Stringer("outcome", res.Outcome).Msg("template lookup")

		switch res.Outcome {
		case Found:
			return res.Template, nil
		case Fatal:
			return nil, res.Err
		}
	}
	return nil, UnknownTemplateError(id, r.Names)
}

// UnknownTemplateError reports an identifier no strategy recognized.
func UnknownTemplateError(id string, names []string) *InvalidTemplateError {
	quoted := make([]string, 0, len(names)+1)
	for _, n := range names {
		quoted = append(quoted, fmt.Sprintf("%q", n))
	}
	quoted = append(quoted, "or an existing package name")
	return blocktemplate.NewInvalidTemplateError(
		"Invalid block template type name: %q. Allowed values: %s.", id, strings.Join(quoted, ", "))
}
