//go:build integration

package integration_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/t2-labs/create-block/internal/answers"
	"github.com/t2-labs/create-block/internal/blocktemplate"
	"github.com/t2-labs/create-block/internal/builtin"
	"github.com/t2-labs/create-block/internal/npm"
	"github.com/t2-labs/create-block/internal/resolver"
	"github.com/t2-labs/create-block/internal/scaffold"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // HOME, so user settings never leak in
	ProjectDir string // where local templates live (resolver base dir)
	OutputDir  string // where block folders are written
	ScratchDir string // where fetched templates are staged
}

// setupTestEnv creates isolated temp directories and points HOME at one of
// them. The env vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: t.TempDir(),
		OutputDir:  t.TempDir(),
		ScratchDir: t.TempDir(),
	}
	t.Setenv("HOME", env.HomeDir)
	return env
}

// offlineRegistry answers every npm command as if the registry does not
// know the package.
type offlineRegistry struct{}

func (offlineRegistry) Run(_ context.Context, _, _ string, args ...string) ([]byte, error) {
	return nil, fmt.Errorf("npm %s: 404 Not Found", strings.Join(args, " "))
}

// newResolver returns the production strategy chain rooted in env.
func (env *testEnv) newResolver(runner npm.Runner) *resolver.Resolver {
	return resolver.New(builtin.Registry(), resolver.Options{
		BaseDir:    env.ProjectDir,
		ScratchDir: env.ScratchDir,
		Npm:        &npm.Client{Runner: runner, Logger: zerolog.Nop()},
		Logger:     zerolog.Nop(),
	})
}

// newWriter returns a writer on the OS filesystem below env.OutputDir.
func (env *testEnv) newWriter() *scaffold.Writer {
	return scaffold.NewWriter(env.OutputDir, zerolog.Nop())
}

// quickAnswers builds the answer set of a quick-mode run over tmpl.
func quickAnswers(t *testing.T, tmpl *blocktemplate.BlockTemplate, slug string, flags answers.Set) answers.Set {
	t.Helper()
	defaults, err := answers.Merge(answers.Defaults(), tmpl.DefaultValues)
	if err != nil {
		t.Fatalf("merging defaults: %v", err)
	}
	set, err := answers.QuickMode(defaults, slug, flags)
	if err != nil {
		t.Fatalf("quick mode answers: %v", err)
	}
	return set
}

// writeFile creates parent directories and writes content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirEmpty fails the test if dir has any entries.
func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Errorf("reading %s: %v", dir, err)
		return
	}
	if len(entries) != 0 {
		t.Errorf("expected %s to be empty, found %d entries", dir, len(entries))
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
