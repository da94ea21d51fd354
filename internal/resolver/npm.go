package resolver

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"

	"github.com/t2-labs/create-block/internal/blocktemplate"
	"github.com/t2-labs/create-block/internal/npm"
)

// NpmStrategy fetches a template package from the npm registry into a
// scratch directory. A package the registry does not know is NotFound.
type NpmStrategy struct {
	Client     *npm.Client
	ScratchDir string
	Logger     zerolog.Logger
}

func (s *NpmStrategy) Name() string { return "npm" }

func (s *NpmStrategy) Resolve(ctx context.Context, id string) Result {
	name, constraint, err := npm.ParseIdentifier(id)
	if err != nil {
		return NotFoundResult()
	}

	versions, err := s.Client.Versions(ctx, name)
	if err != nil {
		if errors.Is(err, npm.ErrNpmNotFound) {
			s.Logger.Warn().Str("package", name).Msg("npm is not installed; remote templates are unavailable")
		} else {
			s.Logger.Debug().Err(err).Str("package", name).Msg("package probe failed")
		}
		return NotFoundResult()
	}

	version, err := npm.SelectVersion(versions, constraint)
	if err != nil {
		return FatalResult(blocktemplate.NewInvalidTemplateError(
			"Invalid block template loaded. Error: %s: %v", name, err))
	}

	scratch, err := newScratchDir(s.ScratchDir)
	if err != nil {
		return FatalResult(err)
	}
	defer removeScratch(s.Logger, scratch)

	pkgDir, err := s.Client.Install(ctx, scratch, name, version)
	if err != nil {
		return FatalResult(loadFailure(err))
	}

	return loadFetched(pkgDir)
}

func removeScratch(logger zerolog.Logger, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		logger.Warn().Err(err).Str("dir", dir).Msg("failed to remove scratch directory")
	}
}
