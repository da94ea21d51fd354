package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kurtosis-tech/stacktrace"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/t2-labs/create-block/internal/answers"
	"github.com/t2-labs/create-block/internal/blocktemplate"
	"github.com/t2-labs/create-block/internal/builtin"
	"github.com/t2-labs/create-block/internal/npm"
	"github.com/t2-labs/create-block/internal/output"
	"github.com/t2-labs/create-block/internal/resolver"
	"github.com/t2-labs/create-block/internal/scaffold"
)

// absentRegistry fails every npm probe, as for a package that does not exist.
type absentRegistry struct{}

func (absentRegistry) Run(context.Context, string, string, ...string) ([]byte, error) {
	return nil, errors.New("npm ERR! code E404")
}

// stubResolver serves one template and counts calls.
type stubResolver struct {
	tmpl  *blocktemplate.BlockTemplate
	calls int
}

func (s *stubResolver) Resolve(context.Context, string) (*blocktemplate.BlockTemplate, error) {
	s.calls++
	return s.tmpl, nil
}

type testEnv struct {
	env    *createEnv
	out    *bytes.Buffer
	errOut *bytes.Buffer
	base   string
}

func newTestEnv(t *testing.T, r templateResolver) *testEnv {
	t.Helper()
	var out, errOut bytes.Buffer
	base := t.TempDir()
	if r == nil {
		r = resolver.New(builtin.Registry(), resolver.Options{
			BaseDir:    t.TempDir(),
			ScratchDir: t.TempDir(),
			Npm:        &npm.Client{Runner: absentRegistry{}, Logger: zerolog.Nop()},
			Logger:     zerolog.Nop(),
		})
	}
	return &testEnv{
		env: &createEnv{
			In:       strings.NewReader(""),
			Out:      &out,
			Printer:  output.NewPrinter(&out, false).WithStderr(&errOut),
			Resolver: r,
			Writer:   &scaffold.Writer{FS: afero.NewOsFs(), BaseDir: base, Logger: zerolog.Nop()},
		},
		out:    &out,
		errOut: &errOut,
		base:   base,
	}
}

func simpleTemplate() *blocktemplate.BlockTemplate {
	return &blocktemplate.BlockTemplate{
		DefaultValues: map[string]string{"slug": "block-name", "namespace": "tpl-ns", "title": "Block Name"},
		OutputTemplates: map[string]string{
			"answers.txt": "{{slug}}|{{namespace}}|{{title}}|{{description}}|{{category}}",
		},
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func TestRunCreate_QuickModePlain(t *testing.T) {
	te := newTestEnv(t, nil)
	opts := createOptions{Slug: "todo-list", Template: "plain"}

	if err := runCreate(context.Background(), opts, te.env); err != nil {
		t.Fatalf("runCreate error: %v", err)
	}

	root := filepath.Join(te.base, "project-name_todo-list")
	php := readFile(t, filepath.Join(root, "todo-list.php"))
	if !strings.Contains(php, "Plugin Name:     Todo List") {
		t.Errorf("plugin header missing title:\n%s", php)
	}
	if !strings.Contains(php, "project_name_todo_list_block_init") {
		t.Errorf("plugin file missing PHP prefix:\n%s", php)
	}
	blockJSON := readFile(t, filepath.Join(root, "block.json"))
	if !strings.Contains(blockJSON, `"name": "project-name/todo-list"`) {
		t.Errorf("block.json missing block name:\n%s", blockJSON)
	}
	if !strings.Contains(blockJSON, `"category": "text"`) {
		t.Errorf("block.json missing default category:\n%s", blockJSON)
	}

	out := te.out.String()
	want := `Done: block "Todo List" bootstrapped in the "` + root + `" folder.`
	if !strings.Contains(out, want) {
		t.Errorf("output missing %q:\n%s", want, out)
	}
	if !strings.Contains(out, `Creating a new WordPress block in "project-name_todo-list" folder.`) {
		t.Errorf("output missing progress line:\n%s", out)
	}
}

func TestRunCreate_InnerBlocks(t *testing.T) {
	te := newTestEnv(t, nil)
	if err := runCreate(context.Background(), createOptions{Slug: "hero", Template: "innerblocks"}, te.env); err != nil {
		t.Fatalf("runCreate error: %v", err)
	}
	root := filepath.Join(te.base, "project-name_hero")
	edit, err := os.ReadFile(filepath.Join(root, "src", "edit.js"))
	if err != nil {
		t.Fatalf("reading edit.js: %v", err)
	}
	if !strings.Contains(string(edit), "InnerBlocks") {
		t.Errorf("edit.js does not use InnerBlocks:\n%s", edit)
	}
	if _, err := os.Stat(filepath.Join(root, "assets")); !os.IsNotExist(err) {
		t.Errorf("innerblocks should not create an assets folder, stat error: %v", err)
	}
}

func TestRunCreate_UnknownTemplate(t *testing.T) {
	te := newTestEnv(t, nil)
	err := runCreate(context.Background(), createOptions{Slug: "todo-list", Template: "does-not-exist"}, te.env)

	var ite *blocktemplate.InvalidTemplateError
	if !errors.As(err, &ite) {
		t.Fatalf("expected InvalidTemplateError, got %v", err)
	}
	want := `Invalid block template type name: "does-not-exist". Allowed values: "plain", "plainTypeScript", "innerblocks", "innerblocksTypeScript", or an existing package name.`
	if ite.Message != want {
		t.Errorf("message = %q\nwant      %q", ite.Message, want)
	}
	if code := output.GetExitCode(err); code != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
	}
	entries, _ := os.ReadDir(te.base)
	if len(entries) != 0 {
		t.Errorf("nothing should be written, found %d entries", len(entries))
	}
}

func TestRunCreate_Precedence(t *testing.T) {
	tests := []struct {
		name     string
		opts     createOptions
		wantLine string
	}{
		{
			name:     "template defaults over global defaults",
			opts:     createOptions{Slug: "todo-list"},
			wantLine: "todo-list|tpl-ns|Todo List||text",
		},
		{
			name: "settings over template defaults",
			opts: createOptions{
				Slug:     "todo-list",
				Settings: answers.Set{answers.KeyNamespace: "acme", answers.KeyCategory: "widgets"},
			},
			wantLine: "todo-list|acme|Todo List||widgets",
		},
		{
			name: "flags over settings",
			opts: createOptions{
				Slug:     "todo-list",
				Settings: answers.Set{answers.KeyNamespace: "acme"},
				Flags: answers.Set{
					answers.KeyNamespace:   "flagged",
					answers.KeyTitle:       "My TODO",
					answers.KeyDescription: "From flags.",
					answers.KeyCategory:    "",
				},
			},
			wantLine: "todo-list|flagged|My TODO|From flags.|text",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te := newTestEnv(t, &stubResolver{tmpl: simpleTemplate()})
			if err := runCreate(context.Background(), tt.opts, te.env); err != nil {
				t.Fatalf("runCreate error: %v", err)
			}
			entries, err := os.ReadDir(te.base)
			if err != nil || len(entries) != 1 {
				t.Fatalf("expected one output root, got %v (%v)", entries, err)
			}
			got := readFile(t, filepath.Join(te.base, entries[0].Name(), "answers.txt"))
			if got != tt.wantLine {
				t.Errorf("answers.txt = %q, want %q", got, tt.wantLine)
			}
		})
	}
}

func TestRunCreate_InvalidFlagsExitBeforeResolving(t *testing.T) {
	tests := []struct {
		name string
		opts createOptions
	}{
		{"bad slug", createOptions{Slug: "Todo_List"}},
		{"bad namespace flag", createOptions{Slug: "todo-list", Flags: answers.Set{answers.KeyNamespace: "1acme"}}},
		{"bad namespace setting", createOptions{Slug: "todo-list", Settings: answers.Set{answers.KeyNamespace: "Acme"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubResolver{tmpl: simpleTemplate()}
			te := newTestEnv(t, stub)
			err := runCreate(context.Background(), tt.opts, te.env)

			var ve *answers.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if output.GetExitCode(err) != output.ExitUserError {
				t.Errorf("exit code = %d, want 1", output.GetExitCode(err))
			}
			if stub.calls != 0 {
				t.Errorf("resolver called %d times, want 0", stub.calls)
			}
		})
	}
}

func TestRunCreate_Interactive(t *testing.T) {
	te := newTestEnv(t, &stubResolver{tmpl: simpleTemplate()})
	te.env.Interactive = true
	// slug, namespace, title (accept default), description, category (#3)
	te.env.In = strings.NewReader("my-block\nacme\n\nsomething useful\n3\n")

	if err := runCreate(context.Background(), createOptions{Template: "plain"}, te.env); err != nil {
		t.Fatalf("runCreate error: %v", err)
	}

	got := readFile(t, filepath.Join(te.base, "acme_my-block", "answers.txt"))
	if want := "my-block|acme|Block Name|Something useful|design"; got != want {
		t.Errorf("answers.txt = %q, want %q", got, want)
	}
	out := te.out.String()
	if !strings.Contains(out, "Let's customize your block:") {
		t.Errorf("missing prompt intro:\n%s", out)
	}
	if !strings.Contains(out, "The block slug used for identification:") {
		t.Errorf("missing slug question:\n%s", out)
	}
}

func TestRunCreate_InteractiveSkipsFlaggedQuestions(t *testing.T) {
	te := newTestEnv(t, &stubResolver{tmpl: simpleTemplate()})
	te.env.Interactive = true
	// slug, title, description; namespace and category come from flags.
	te.env.In = strings.NewReader("my-block\nFancy\n\n")

	opts := createOptions{Flags: answers.Set{answers.KeyNamespace: "acme", answers.KeyCategory: "embed"}}
	if err := runCreate(context.Background(), opts, te.env); err != nil {
		t.Fatalf("runCreate error: %v", err)
	}

	if strings.Contains(te.out.String(), "internal namespace") {
		t.Error("namespace question should be skipped when --namespace is given")
	}
	got := readFile(t, filepath.Join(te.base, "acme_my-block", "answers.txt"))
	if want := "my-block|acme|Fancy||embed"; got != want {
		t.Errorf("answers.txt = %q, want %q", got, want)
	}
}

func TestRunCreate_InteractiveInputClosed(t *testing.T) {
	te := newTestEnv(t, &stubResolver{tmpl: simpleTemplate()})
	te.env.Interactive = true
	te.env.In = strings.NewReader("my-block\n")

	err := runCreate(context.Background(), createOptions{}, te.env)
	if err == nil || output.GetExitCode(err) != output.ExitUserError {
		t.Fatalf("expected user error, got %v", err)
	}
}

func TestRunCreate_NoSlugWithoutTerminal(t *testing.T) {
	stub := &stubResolver{tmpl: simpleTemplate()}
	te := newTestEnv(t, stub)

	err := runCreate(context.Background(), createOptions{}, te.env)
	if !output.IsUserFacing(err) {
		t.Fatalf("expected user-facing error, got %v", err)
	}
	if stub.calls != 0 {
		t.Errorf("resolver called %d times, want 0", stub.calls)
	}
}

func TestRunCreate_OutputExists(t *testing.T) {
	te := newTestEnv(t, &stubResolver{tmpl: simpleTemplate()})
	if err := os.Mkdir(filepath.Join(te.base, "tpl-ns_todo-list"), 0o755); err != nil {
		t.Fatal(err)
	}

	err := runCreate(context.Background(), createOptions{Slug: "todo-list"}, te.env)
	if !errors.Is(err, scaffold.ErrOutputExists) {
		t.Fatalf("expected ErrOutputExists, got %v", err)
	}
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("exit code = %d, want 1", output.GetExitCode(err))
	}
}

func TestReportError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		want     string
		wantCode int
	}{
		{"recognized", blocktemplate.NewInvalidTemplateError("Template found but invalid definition provided."), "Template found but invalid definition provided.\n", 1},
		{"unrecognized", stacktrace.NewError("disk on fire"), "Unexpected error: ", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			reportError(output.NewPrinter(&out, false).WithStderr(&errOut), tt.err)
			if out.Len() != 0 {
				t.Errorf("stdout should be empty, got %q", out.String())
			}
			if !strings.HasPrefix(errOut.String(), tt.want) {
				t.Errorf("stderr = %q, want prefix %q", errOut.String(), tt.want)
			}
			if code := output.GetExitCode(tt.err); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
		})
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "config", "default"); got != "config" {
		t.Errorf("firstNonEmpty = %q, want config", got)
	}
	if got := firstNonEmpty("", ""); got != "" {
		t.Errorf("firstNonEmpty = %q, want empty", got)
	}
}
