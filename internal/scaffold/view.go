package scaffold

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/t2-labs/create-block/internal/answers"
)

// View holds all template variables available to block templates.
type View struct {
	Slug         string   // e.g., "todo-list"
	Namespace    string   // e.g., "project-name"
	Title        string   // e.g., "Todo List"
	Description  string   // Short description
	Category     string   // Block inserter category
	Keywords     []string // Optional search keywords
	Textdomain   string   // Derived: namespace
	PHPNamespace string   // Derived: Project_Name
	PHPSlug      string   // Derived: Todo_List
	PHPPrefix    string   // Derived: project_name_todo_list
}

// NewView creates a View from an answer set with derived fields populated.
// Slug and namespace are lower-cased.
func NewView(set answers.Set) *View {
	v := &View{
		Slug:        strings.ToLower(set.Get(answers.KeySlug)),
		Namespace:   strings.ToLower(set.Get(answers.KeyNamespace)),
		Title:       set.Get(answers.KeyTitle),
		Description: set.Get(answers.KeyDescription),
		Category:    set.Get(answers.KeyCategory),
		Keywords:    set.Keywords(),
	}
	v.Textdomain = v.Namespace
	v.PHPNamespace = phpIdentifier(v.Namespace)
	v.PHPSlug = phpIdentifier(v.Slug)
	v.PHPPrefix = strings.ReplaceAll(v.Namespace+"_"+v.Slug, "-", "_")
	return v
}

// context returns the mustache lookup map.
func (v *View) context() (map[string]any, error) {
	keywords := v.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	keywordsJSON, err := json.Marshal(keywords)
	if err != nil {
		return nil, fmt.Errorf("encoding keywords: %w", err)
	}
	return map[string]any{
		answers.KeySlug:        v.Slug,
		answers.KeyNamespace:   v.Namespace,
		answers.KeyTitle:       v.Title,
		answers.KeyDescription: v.Description,
		answers.KeyCategory:    v.Category,
		answers.KeyKeywords:    keywords,
		"keywordsJSON":         string(keywordsJSON),
		"textdomain":           v.Textdomain,
		"phpNamespace":         v.PHPNamespace,
		"phpSlug":              v.PHPSlug,
		"phpPrefix":            v.PHPPrefix,
	}, nil
}

var titleCaser = cases.Title(language.English)

// phpIdentifier turns "project-name" into "Project_Name".
func phpIdentifier(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		parts[i] = titleCaser.String(p)
	}
	return strings.Join(parts, "_")
}
