// Package builtin bundles the predefined block templates into the binary.
package builtin

import (
	"embed"
	"io/fs"

	"github.com/t2-labs/create-block/internal/blocktemplate"
	"github.com/t2-labs/create-block/internal/resolver"
)

//go:embed all:templates
var files embed.FS

// DefaultTemplate is used when neither a flag nor the config names one.
const DefaultTemplate = "innerblocks"

// Template describes one bundled template.
type Template struct {
	Name        string
	Dir         string
	Description string
}

// Templates lists the bundled templates in presentation order.
var Templates = []Template{
	{Name: "plain", Dir: "templates/plain", Description: "Static block with JavaScript sources"},
	{Name: "plainTypeScript", Dir: "templates/plain-typescript", Description: "Static block with TypeScript sources"},
	{Name: "innerblocks", Dir: "templates/innerblocks", Description: "Container block using InnerBlocks"},
	{Name: "innerblocksTypeScript", Dir: "templates/innerblocks-typescript", Description: "Container block using InnerBlocks, in TypeScript"},
}

// FS returns the embedded template files.
func FS() fs.FS { return files }

// DefaultValues returns the answers every bundled template starts from.
func DefaultValues() map[string]string {
	return map[string]string{
		"slug":        "block-name",
		"namespace":   "project-name",
		"title":       "Block Name",
		"description": "Example block description.",
	}
}

// Registry returns a registry of the bundled templates.
func Registry() *resolver.Registry {
	entries := make([]resolver.Entry, 0, len(Templates))
	for _, t := range Templates {
		entries = append(entries, resolver.Entry{
			Name: t.Name,
			Definition: blocktemplate.Definition{
				Source:        "builtin:" + t.Name,
				FS:            files,
				TemplatesPath: t.Dir,
				DefaultValues: DefaultValues(),
			},
		})
	}
	return resolver.NewRegistry(entries...)
}
