package scaffold

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cbroglie/mustache"
	"github.com/google/uuid"
	"github.com/kurtosis-tech/stacktrace"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/t2-labs/create-block/internal/answers"
	"github.com/t2-labs/create-block/internal/blocktemplate"
)

// AssetsDir is the output subdirectory raw assets are copied into.
const AssetsDir = "assets"

// DefaultConcurrency bounds parallel file writes.
const DefaultConcurrency = 8

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
}

// Writer writes rendered block templates below BaseDir.
type Writer struct {
	FS          afero.Fs
	BaseDir     string
	Concurrency int
	Logger      zerolog.Logger
}

// NewWriter returns a Writer on the OS filesystem.
func NewWriter(baseDir string, logger zerolog.Logger) *Writer {
	return &Writer{FS: afero.NewOsFs(), BaseDir: baseDir, Logger: logger}
}

// OutputRootName returns the output folder name for a block. "_" cannot
// appear in either identifier, so distinct pairs never share a folder.
func OutputRootName(namespace, slug string) string {
	return strings.ToLower(namespace) + "_" + strings.ToLower(slug)
}

// file is one pending write, addressed relative to the output root.
type file struct {
	rel  string
	data []byte
}

// Write renders tmpl with set and writes the block folder. The folder must
// not exist yet. Nothing is left at the output root when a write fails.
func (w *Writer) Write(ctx context.Context, tmpl *blocktemplate.BlockTemplate, set answers.Set) (*Result, error) {
	view := NewView(set)
	if view.Slug == "" || view.Namespace == "" {
		return nil, stacktrace.NewError("Block slug and namespace are required, got slug '%s' and namespace '%s'", view.Slug, view.Namespace)
	}
	root := filepath.Join(w.BaseDir, OutputRootName(view.Namespace, view.Slug))

	files, err := w.render(tmpl, view)
	if err != nil {
		return nil, err
	}

	exists, err := afero.Exists(w.FS, root)
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred checking whether '%s' exists", root)
	}
	if exists {
		return nil, &OutputExistsError{Path: root}
	}

	if err := w.FS.MkdirAll(w.baseDir(), 0o755); err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred creating output directory '%s'", w.baseDir())
	}
	staging := filepath.Join(w.BaseDir, "."+filepath.Base(root)+".staging-"+uuid.NewString())
	if err := w.FS.Mkdir(staging, 0o755); err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred creating staging directory '%s'", staging)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if err := w.FS.RemoveAll(staging); err != nil {
			w.Logger.Warn().Err(err).Str("dir", staging).Msg("failed to remove staging directory")
		}
	}()

	if err := w.writeAll(ctx, staging, files); err != nil {
		return nil, err
	}
	if err := w.FS.Rename(staging, root); err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred moving '%s' to '%s'", staging, root)
	}
	committed = true

	result := &Result{OutputDir: root, Files: make([]string, 0, len(files))}
	for _, f := range files {
		result.Files = append(result.Files, f.rel)
	}
	w.Logger.Info().Str("dir", root).Int("files", len(files)).Msg("block scaffolded")
	return result, nil
}

func (w *Writer) baseDir() string {
	if w.BaseDir == "" {
		return "."
	}
	return w.BaseDir
}

// render produces every output file in sorted path order. It touches no
// filesystem.
func (w *Writer) render(tmpl *blocktemplate.BlockTemplate, view *View) ([]file, error) {
	data, err := view.context()
	if err != nil {
		return nil, stacktrace.Propagate(err, "building template data")
	}
	seen := make(map[string]string)
	var files []file

	add := func(rel, source string, data []byte) error {
		clean := path.Clean(rel)
		if clean == "." || path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
			return blocktemplate.NewInvalidTemplateError(
				"Invalid block template loaded. Error: output path %q escapes the block folder", source)
		}
		if other, dup := seen[clean]; dup {
			return blocktemplate.NewInvalidTemplateError(
				"Invalid block template loaded. Error: %q and %q both write %q", other, source, clean)
		}
		seen[clean] = source
		files = append(files, file{rel: clean, data: data})
		return nil
	}

	for _, name := range tmpl.TemplatePaths() {
		t, err := mustache.ParseString(tmpl.OutputTemplates[name])
		if err != nil {
			return nil, blocktemplate.NewInvalidTemplateError(
				"Invalid block template loaded. Error: parsing %s: %v", name, err)
		}
		out, err := t.Render(data)
		if err != nil {
			return nil, blocktemplate.NewInvalidTemplateError(
				"Invalid block template loaded. Error: rendering %s: %v", name, err)
		}
		rel := strings.ReplaceAll(name, blocktemplate.SlugPlaceholder, view.Slug)
		if err := add(rel, name, []byte(out)); err != nil {
			return nil, err
		}
	}

	for _, name := range tmpl.AssetPaths() {
		if err := add(path.Join(AssetsDir, name), path.Join(AssetsDir, name), tmpl.OutputAssets[name]); err != nil {
			return nil, err
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].rel < files[j].rel })
	return files, nil
}

// writeAll writes files below dir concurrently and waits for all of them.
func (w *Writer) writeAll(ctx context.Context, dir string, files []file) error {
	limit := w.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			target := filepath.Join(dir, filepath.FromSlash(f.rel))
			if err := w.FS.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("creating directory for %s: %w", f.rel, err)
			}
			if err := afero.WriteFile(w.FS, target, f.data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", f.rel, err)
			}
			w.Logger.Debug().Str("file", f.rel).Msg("wrote file")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return stacktrace.Propagate(err, "An error occurred writing block files")
	}
	return nil
}
