package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/t2-labs/create-block/internal/answers"
	"github.com/t2-labs/create-block/internal/blocktemplate"
	"github.com/t2-labs/create-block/internal/builtin"
	"github.com/t2-labs/create-block/internal/config"
	"github.com/t2-labs/create-block/internal/output"
)

var checkTemplate string

func init() {
	doctorCmd.Flags().StringVar(&checkTemplate, "check-template", "", "Validate a block template directory or manifest file at the given path")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment block templates are resolved in",
	Long: `Run diagnostic checks: the node and npm binaries used for npm templates,
the user config file and the bundled templates.

With --check-template only the given template is validated. Use it while
authoring a template to see schema issues before scaffolding with it.`,
	Args: exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := &doctor{w: cmd.OutOrStdout()}
		if checkTemplate != "" {
			d.templateCheck(checkTemplate)
		} else {
			d.runtimeCheck()
			d.configCheck()
			d.builtinCheck()
		}
		if d.failures > 0 {
			return output.NewUserError(fmt.Sprintf("%d check(s) failed.", d.failures))
		}
		return nil
	},
}

// doctor prints check lines and counts failures.
type doctor struct {
	w        io.Writer
	failures int
}

func (d *doctor) printf(format string, args ...any) {
	fmt.Fprintf(d.w, format, args...)
}

func (d *doctor) fail(format string, args ...any) {
	d.failures++
	d.printf("  [FAIL] "+format+"\n", args...)
}

func (d *doctor) runtimeCheck() {
	d.printf("Runtime check:\n")
	// Missing binaries only disable npm templates, so they are not failures.
	for _, name := range []string{"node", "npm"} {
		path, err := exec.LookPath(name)
		if err != nil {
			d.printf("  [MISS] %s not found (npm templates are unavailable)\n", name)
			continue
		}
		d.printf("  [ OK ] %s found at %s\n", name, path)
	}
}

func (d *doctor) configCheck() {
	path := config.FilePath()
	d.printf("Config check: %s\n", path)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		d.printf("  [INFO] No config file, using defaults\n")
		return
	}
	if err != nil {
		d.fail("Cannot read config file: %v", err)
		return
	}

	before := d.failures
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		d.fail("Cannot parse config file: %v", err)
		return
	}
	for key, value := range values {
		if !config.IsKnownKey(key) {
			d.printf("  [WARN] Unknown key %q is ignored\n", key)
			continue
		}
		if key == config.KeyNamespace {
			if err := answers.ValidateIdentifier(answers.KeyNamespace, fmt.Sprint(value)); err != nil {
				d.fail("%v", err)
			}
		}
	}
	if d.failures == before {
		d.printf("  [ OK ] Config file is valid\n")
	}
}

func (d *doctor) builtinCheck() {
	d.printf("Built-in templates:\n")
	registry := builtin.Registry()
	for _, name := range registry.Names() {
		def, _ := registry.Lookup(name)
		tmpl, err := blocktemplate.Materialize(def)
		if err != nil {
			d.fail("%s: %v", name, err)
			continue
		}
		d.printf("  [ OK ] %s: %d template(s), %d asset(s)\n", name, len(tmpl.OutputTemplates), len(tmpl.OutputAssets))
	}
}

func (d *doctor) templateCheck(path string) {
	d.printf("Template validation: %s\n", path)

	info, err := os.Stat(path)
	if err != nil {
		d.fail("%v", err)
		return
	}
	var def *blocktemplate.Definition
	if info.IsDir() {
		def, err = blocktemplate.LoadDir(path)
	} else {
		def, err = blocktemplate.LoadManifest(path)
	}
	if err == nil {
		var tmpl *blocktemplate.BlockTemplate
		if tmpl, err = blocktemplate.Materialize(def); err == nil {
			d.printf("  [ OK ] Valid template: %d template(s), %d asset(s)\n", len(tmpl.OutputTemplates), len(tmpl.OutputAssets))
			return
		}
	}

	var ite *blocktemplate.InvalidTemplateError
	if !errors.As(err, &ite) || len(ite.Issues) == 0 {
		d.fail("%v", err)
		return
	}
	d.fail("%d validation issue(s):", len(ite.Issues))
	for _, issue := range ite.Issues {
		if issue.Path != "" {
			d.printf("    - %s: %s\n", issue.Path, issue.Message)
		} else {
			d.printf("    - %s\n", issue.Message)
		}
	}
}
