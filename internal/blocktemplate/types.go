package blocktemplate

import (
	"io/fs"
	"os"
	"sort"
)

// TemplateSuffix marks files under a templates directory that are rendered.
const TemplateSuffix = ".mustache"

// SlugPlaceholder is replaced with the block slug in output paths.
const SlugPlaceholder = "$slug"

// Definition locates a template's files and carries its default answers.
type Definition struct {
	// Source names where the definition came from (identifier or manifest path).
	Source string
	// FS is the filesystem the paths are resolved against. Nil means the
	// paths are operating-system paths.
	FS            fs.FS
	TemplatesPath string
	AssetsPath    string
	DefaultValues map[string]string
}

// BlockTemplate is a fully loaded template. It holds no references to the
// directories it was read from.
type BlockTemplate struct {
	DefaultValues map[string]string
	// OutputTemplates maps a slash-separated output path to template text.
	OutputTemplates map[string]string
	// OutputAssets maps a slash-separated path below assets/ to raw bytes.
	OutputAssets map[string][]byte
}

// TemplatePaths returns the output template paths in sorted order.
func (t *BlockTemplate) TemplatePaths() []string {
	return sortedKeys(t.OutputTemplates)
}

// AssetPaths returns the asset paths in sorted order.
func (t *BlockTemplate) AssetPaths() []string {
	return sortedKeys(t.OutputAssets)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// dir returns the filesystem rooted at p.
func (d *Definition) dir(p string) (fs.FS, error) {
	if d.FS == nil {
		return os.DirFS(p), nil
	}
	return fs.Sub(d.FS, p)
}
