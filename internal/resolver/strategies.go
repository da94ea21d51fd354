package resolver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/kurtosis-tech/stacktrace"
	"github.com/rs/zerolog"

	"github.com/t2-labs/create-block/internal/blocktemplate"
	"github.com/t2-labs/create-block/internal/branding"
)

// BuiltinStrategy serves templates from the injected registry.
type BuiltinStrategy struct {
	Registry *Registry
}

func (s *BuiltinStrategy) Name() string { return "builtin" }

func (s *BuiltinStrategy) Resolve(_ context.Context, id string) Result {
	def, ok := s.Registry.Lookup(id)
	if !ok {
		return NotFoundResult()
	}
	return materialize(def)
}

// LocalStrategy loads a template from a directory or manifest file on disk.
// Bare package names are looked up under node_modules of BaseDir.
type LocalStrategy struct {
	// BaseDir anchors relative identifiers. Empty means the working directory.
	BaseDir string
	Logger  zerolog.Logger
}

func (s *LocalStrategy) Name() string { return "local" }

func (s *LocalStrategy) Resolve(_ context.Context, id string) Result {
	for _, candidate := range s.candidates(id) {
		def, err := loadPath(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			s.Logger.Debug().Str("path", candidate).Msg("no local template")
			continue
		}
		if err != nil {
			return FatalResult(loadFailure(err))
		}
		return materialize(def)
	}
	return NotFoundResult()
}

func (s *LocalStrategy) candidates(id string) []string {
	if id == "" {
		return nil
	}
	if isPathLike(id) {
		return []string{s.abs(id)}
	}
	return []string{s.abs(filepath.Join("node_modules", filepath.FromSlash(id)))}
}

func (s *LocalStrategy) abs(p string) string {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, filepath.FromSlash(p[2:]))
		}
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(s.BaseDir, p)
}

// isPathLike reports whether id names a filesystem path rather than a
// package. Scoped package names ("@scope/name") are not paths.
func isPathLike(id string) bool {
	if filepath.IsAbs(id) || id == "." || id == ".." {
		return true
	}
	for _, prefix := range []string{"./", "../", "~/", "." + string(filepath.Separator), ".." + string(filepath.Separator)} {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}
	return false
}

// loadPath loads a definition from a manifest file or a template directory.
// A missing path or a directory without a manifest matches fs.ErrNotExist.
func loadPath(p string) (*blocktemplate.Definition, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return blocktemplate.LoadDir(p)
	}
	return blocktemplate.LoadManifest(p)
}

// materialize converts a definition into a Found or Fatal result.
func materialize(def *blocktemplate.Definition) Result {
	tmpl, err := blocktemplate.Materialize(def)
	if err != nil {
		return FatalResult(loadFailure(err))
	}
	return FoundResult(tmpl)
}

// loadFetched loads and materializes a template fetched into dir. A fetched
// source without a manifest is an invalid definition.
func loadFetched(dir string) Result {
	def, err := blocktemplate.LoadDir(dir)
	if errors.Is(err, blocktemplate.ErrNoManifest) {
		return FatalResult(&InvalidTemplateError{Message: blocktemplate.InvalidDefinitionMessage, Err: err})
	}
	if err != nil {
		return FatalResult(loadFailure(err))
	}
	return materialize(def)
}

// loadFailure reports err as an InvalidTemplateError unless it already is one.
func loadFailure(err error) error {
	var ite *InvalidTemplateError
	if errors.As(err, &ite) {
		return err
	}
	return &InvalidTemplateError{
		Message: "Invalid block template loaded. Error: " + err.Error(),
		Err:     err,
	}
}

// newScratchDir creates a uniquely named directory under base (the system
// temp dir when empty). Callers remove it with os.RemoveAll.
func newScratchDir(base string) (string, error) {
	if base == "" {
		base = os.TempDir()
	}
	dir := filepath.Join(base, branding.ScratchPrefix()+uuid.NewString())
	if err := os.Mkdir(dir, 0o700); err != nil {
		return "", stacktrace.Propagate(err, "An error occurred creating scratch directory '%s'", dir)
	}
	return dir, nil
}
