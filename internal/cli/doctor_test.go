package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/t2-labs/create-block/internal/config"
	"github.com/t2-labs/create-block/internal/output"
)

func resetDoctorFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { checkTemplate = "" })
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDoctor_AllChecks(t *testing.T) {
	isolateConfig(t)
	resetDoctorFlags(t)

	out, err := executeCommand(t, "doctor")
	if err != nil {
		t.Fatalf("doctor error: %v\n%s", err, out)
	}
	for _, want := range []string{
		"Runtime check:",
		"[INFO] No config file, using defaults",
		"[ OK ] innerblocks:",
		"[ OK ] plainTypeScript:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDoctor_InvalidConfigNamespace(t *testing.T) {
	isolateConfig(t)
	resetDoctorFlags(t)
	writeTestFile(t, config.FilePath(), "namespace: Not Valid\ncolour: red\n")

	out, err := executeCommand(t, "doctor")
	if err == nil {
		t.Fatalf("expected failure:\n%s", out)
	}
	if code := output.GetExitCode(err); code != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
	}
	if !strings.Contains(out, `[WARN] Unknown key "colour" is ignored`) {
		t.Errorf("unknown key not reported:\n%s", out)
	}
	if !strings.Contains(out, "[FAIL]") {
		t.Errorf("namespace failure not reported:\n%s", out)
	}
}

func TestDoctor_CheckTemplate(t *testing.T) {
	resetDoctorFlags(t)
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "template.yaml"), "templatesPath: files\n")
	writeTestFile(t, filepath.Join(dir, "files", "$slug.php.mustache"), "<?php // {{title}}\n")
	writeTestFile(t, filepath.Join(dir, "files", "block.json.mustache"), "{}\n")

	out, err := executeCommand(t, "doctor", "--check-template", dir)
	if err != nil {
		t.Fatalf("doctor error: %v\n%s", err, out)
	}
	if !strings.Contains(out, "[ OK ] Valid template: 2 template(s), 0 asset(s)") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestDoctor_CheckTemplateReportsIssues(t *testing.T) {
	resetDoctorFlags(t)
	manifest := filepath.Join(t.TempDir(), "template.yaml")
	writeTestFile(t, manifest, "templatesPath: files\ndefaultValues:\n  slug: Not A Slug\n")

	out, err := executeCommand(t, "doctor", "--check-template", manifest)
	if err == nil {
		t.Fatalf("expected failure:\n%s", out)
	}
	if code := output.GetExitCode(err); code != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
	}
	if !strings.Contains(out, "validation issue(s):") || !strings.Contains(out, "- /defaultValues/slug:") {
		t.Errorf("issues not listed:\n%s", out)
	}
}

func TestDoctor_CheckTemplateMissingPath(t *testing.T) {
	resetDoctorFlags(t)

	out, err := executeCommand(t, "doctor", "--check-template", filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatalf("expected failure:\n%s", out)
	}
	if !strings.Contains(out, "[FAIL]") {
		t.Errorf("missing path not reported:\n%s", out)
	}
}
