package answers

import (
	"fmt"
	"maps"
	"strings"
	"unicode"
	"unicode/utf8"

	"dario.cat/mergo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Recognized answer keys.
const (
	KeySlug        = "slug"
	KeyNamespace   = "namespace"
	KeyTitle       = "title"
	KeyDescription = "description"
	KeyCategory    = "category"
	KeyKeywords    = "keywords"
)

// Set is a mapping of answer key to value. Keywords are stored as a
// comma-separated list; use Keywords to read them back.
type Set map[string]string

// Global default values, applied beneath every template's own defaults.
const (
	DefaultNamespace = "project-name"
	DefaultCategory  = "text"
)

// Defaults returns a fresh copy of the global defaults.
func Defaults() Set {
	return Set{
		KeyNamespace: DefaultNamespace,
		KeyCategory:  DefaultCategory,
	}
}

// Get returns the value stored under key.
func (s Set) Get(key string) string {
	return s[key]
}

// Keywords splits the keywords entry into trimmed, non-empty items.
func (s Set) Keywords() []string {
	raw := s[KeyKeywords]
	if raw == "" {
		return nil
	}
	var out []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// Clone returns a shallow copy of the set.
func (s Set) Clone() Set {
	if s == nil {
		return Set{}
	}
	return maps.Clone(s)
}

// Compact returns a copy of s without keys whose value is empty, so an
// unset flag or an empty prompt answer never shadows a lower layer.
func Compact(s Set) Set {
	out := make(Set, len(s))
	for k, v := range s {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Merge folds the layers from lowest to highest precedence. For any key set
// in more than one layer the value from the last layer wins. Empty values
// are ignored in every layer.
//
// The canonical order is Merge(globalDefaults, templateDefaults, flags, promptAnswers).
func Merge(layers ...Set) (Set, error) {
	merged := Set{}
	for i, layer := range layers {
		if err := mergo.Merge(&merged, Compact(layer), mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merging answer layer %d: %w", i, err)
		}
	}
	return merged, nil
}

// QuickMode builds the answer set for a non-interactive run where the slug
// was given on the command line. The title falls back to the title-cased
// slug unless a title flag is present.
func QuickMode(defaults Set, slug string, flags Set) (Set, error) {
	return Merge(defaults, Set{KeySlug: slug, KeyTitle: TitleCase(slug)}, flags)
}

var titleCaser = cases.Title(language.English, cases.NoLower)

// TitleCase turns an identifier into display words: "todo-list" → "Todo List",
// "myBlock_name" → "My Block Name".
func TitleCase(s string) string {
	words := splitWords(s)
	for i, w := range words {
		words[i] = titleCaser.String(w)
	}
	return strings.Join(words, " ")
}

// splitWords breaks s on separators, lower-to-upper case transitions and
// letter/digit boundaries: "h1-heading" gives ["h", "1", "heading"].
func splitWords(s string) []string {
	var (
		words   []string
		current []rune
		prev    rune
	)
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}
	for _, r := range s {
		switch {
		case r == '-' || r == '_' || r == ' ' || r == '.':
			flush()
		case isUpper(r) && (isLower(prev) || isDigit(prev)),
			isDigit(r) && isLetter(prev),
			isLetter(r) && isDigit(prev):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
		prev = r
	}
	flush()
	return words
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }

// UpperFirst upper-cases the first letter of s and leaves the rest untouched.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
