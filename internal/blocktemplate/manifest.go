package blocktemplate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// ManifestNames are the manifest file names looked up inside a template
// directory, in order.
var ManifestNames = []string{"template.yaml", "template.yml", "template.json"}

// PackageFile is the npm package descriptor that may point at a manifest.
const PackageFile = "package.json"

// ErrNoManifest is returned when a directory holds no template manifest.
var ErrNoManifest = fmt.Errorf("no template manifest: %w", fs.ErrNotExist)

// manifestFile is the on-disk manifest shape.
type manifestFile struct {
	TemplatesPath string         `yaml:"templatesPath" json:"templatesPath"`
	AssetsPath    string         `yaml:"assetsPath" json:"assetsPath"`
	DefaultValues map[string]any `yaml:"defaultValues" json:"defaultValues"`
}

// packageFile holds the package.json fields used to find a manifest.
type packageFile struct {
	Name          string `json:"name"`
	Main          string `json:"main"`
	BlockTemplate string `json:"blockTemplate"`
}

// LoadManifest reads and validates the manifest at path. Relative template
// and asset paths are resolved against the manifest's directory.
func LoadManifest(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	def, err := ParseManifest(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	def.Source = path
	def.TemplatesPath = resolveAgainst(base, def.TemplatesPath)
	if def.AssetsPath != "" {
		def.AssetsPath = resolveAgainst(base, def.AssetsPath)
	}
	return def, nil
}

// ParseManifest decodes and validates manifest content. The ext argument
// selects JSON decoding for ".json"; anything else is decoded as YAML.
func ParseManifest(data []byte, ext string) (*Definition, error) {
	isJSON := strings.EqualFold(ext, ".json")

	var raw any
	if err := unmarshal(data, isJSON, &raw); err != nil {
		return nil, &InvalidTemplateError{Message: InvalidDefinitionMessage, Err: err}
	}
	issues, err := validateRaw(raw)
	if err != nil {
		return nil, err
	}
	if len(issues) > 0 {
		return nil, &InvalidTemplateError{Message: InvalidDefinitionMessage, Issues: issues}
	}

	var mf manifestFile
	if err := unmarshal(data, isJSON, &mf); err != nil {
		return nil, &InvalidTemplateError{Message: InvalidDefinitionMessage, Err: err}
	}
	return &Definition{
		TemplatesPath: mf.TemplatesPath,
		AssetsPath:    mf.AssetsPath,
		DefaultValues: flattenDefaults(mf.DefaultValues),
	}, nil
}

// LoadDir loads the template definition of a directory. A package.json
// entry point wins over the conventional manifest names. ErrNoManifest is
// returned when neither is present.
func LoadDir(dir string) (*Definition, error) {
	path, err := FindManifest(dir)
	if err != nil {
		return nil, err
	}
	return LoadManifest(path)
}

// FindManifest returns the manifest path for a template directory.
func FindManifest(dir string) (string, error) {
	if entry, err := packageEntryPoint(dir); err != nil {
		return "", err
	} else if entry != "" {
		return entry, nil
	}

	for _, name := range ManifestNames {
		p := filepath.Join(dir, name)
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("checking %s: %w", p, err)
		}
	}
	return "", ErrNoManifest
}

// packageEntryPoint reads dir/package.json and returns the manifest it
// names, or "" when there is no package.json or it names none.
func packageEntryPoint(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, PackageFile))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", PackageFile, err)
	}

	var pkg packageFile
	if err := json.Unmarshal(data, &pkg); err != nil {
		return "", &InvalidTemplateError{Message: InvalidDefinitionMessage, Err: err}
	}

	entry := pkg.BlockTemplate
	if entry == "" && isManifestExt(pkg.Main) {
		entry = pkg.Main
	}
	if entry == "" {
		return "", nil
	}
	return resolveAgainst(dir, entry), nil
}

func isManifestExt(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func unmarshal(data []byte, isJSON bool, v any) error {
	if isJSON {
		return json.Unmarshal(data, v)
	}
	return yaml.Unmarshal(data, v)
}

func resolveAgainst(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, filepath.FromSlash(p))
}

// flattenDefaults converts manifest default values to strings. Lists are
// joined with commas, the form keywords take on the command line.
func flattenDefaults(in map[string]any) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			out[k] = val
		case []any:
			parts := make([]string, 0, len(val))
			for _, item := range val {
				parts = append(parts, fmt.Sprint(item))
			}
			out[k] = strings.Join(parts, ",")
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}
