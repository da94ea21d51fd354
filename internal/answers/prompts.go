package answers

import (
	"slices"

	"github.com/t2-labs/create-block/internal/prompt"
)

// Categories lists the block categories offered by the category prompt.
var Categories = []string{"text", "media", "design", "widgets", "theme", "embed"}

// Prompts returns the ordered questions for interactive mode with defaults
// taken from the merged defaults. Keys present in skip are left out, which
// is how flags suppress their question.
func Prompts(defaults Set, skip Set) []prompt.Descriptor {
	all := []prompt.Descriptor{
		{
			Name:     KeySlug,
			Message:  "The block slug used for identification:",
			Validate: identifierValidator(KeySlug),
		},
		{
			Name:     KeyNamespace,
			Message:  "The internal namespace for the block name (often project name or text domain):",
			Validate: identifierValidator(KeyNamespace),
		},
		{
			Name:    KeyTitle,
			Message: "The display title for your block:",
			Filter:  UpperFirst,
		},
		{
			Name:    KeyDescription,
			Message: "The short description for your block (optional):",
			Filter:  UpperFirst,
		},
		{
			Name:    KeyCategory,
			Message: "The category name to help users browse and discover your block:",
			Choices: slices.Clone(Categories),
		},
	}

	out := make([]prompt.Descriptor, 0, len(all))
	for _, d := range all {
		if _, ok := skip[d.Name]; ok {
			continue
		}
		d.Default = defaults[d.Name]
		out = append(out, d)
	}
	return out
}

func identifierValidator(field string) func(string) error {
	return func(input string) error {
		return ValidateIdentifier(field, input)
	}
}
