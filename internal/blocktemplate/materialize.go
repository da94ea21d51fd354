package blocktemplate

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Materialize reads every file a definition points at. Files ending in
// TemplateSuffix under the templates directory are kept as template text
// keyed by their relative path without the suffix; other files there are
// ignored. Every file under the assets directory is kept as raw bytes.
// Dotfiles are included.
//
// A definition without a templates path fails before any filesystem access.
func Materialize(def *Definition) (*BlockTemplate, error) {
	if def == nil || def.TemplatesPath == "" {
		return nil, &InvalidTemplateError{Message: InvalidDefinitionMessage}
	}

	tfs, err := def.dir(def.TemplatesPath)
	if err != nil {
		return nil, &InvalidTemplateError{Message: InvalidDefinitionMessage, Err: err}
	}
	templates := make(map[string]string)
	err = walkFiles(tfs, func(p string, data []byte) {
		if name, ok := strings.CutSuffix(p, TemplateSuffix); ok && name != "" {
			templates[name] = string(data)
		}
	})
	if err != nil {
		return nil, walkError("templates", def.TemplatesPath, err)
	}

	assets := make(map[string][]byte)
	if def.AssetsPath != "" {
		afs, err := def.dir(def.AssetsPath)
		if err != nil {
			return nil, &InvalidTemplateError{Message: InvalidDefinitionMessage, Err: err}
		}
		err = walkFiles(afs, func(p string, data []byte) {
			assets[p] = data
		})
		if err != nil {
			return nil, walkError("assets", def.AssetsPath, err)
		}
	}

	defaults := make(map[string]string, len(def.DefaultValues))
	for k, v := range def.DefaultValues {
		defaults[k] = v
	}

	return &BlockTemplate{
		DefaultValues:   defaults,
		OutputTemplates: templates,
		OutputAssets:    assets,
	}, nil
}

func walkFiles(fsys fs.FS, visit func(path string, data []byte)) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		visit(p, data)
		return nil
	})
}

func walkError(kind, root string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &InvalidTemplateError{
			Message: fmt.Sprintf("Invalid block template loaded. Error: %s directory %q not found", kind, root),
			Err:     err,
		}
	}
	return fmt.Errorf("reading %s directory %s: %w", kind, root, err)
}
