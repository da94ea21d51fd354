package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/t2-labs/create-block/internal/branding"
	"github.com/t2-labs/create-block/internal/output"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Persistent flags.
var (
	flagVerbose bool
	flagColor   string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " [slug]",
	Short: branding.Description(),
	Long: `Generates PHP, JS and CSS code for registering a block for a WordPress plugin.

[slug] is optional. When provided it triggers the quick mode where it is used
as the block slug used for its identification, the output location for
scaffolded files, and the name of the WordPress plugin. The rest of the
configuration is set to all default values unless overridden with some of the
options listed below.

The subcommands "config", "doctor", "templates" and "version" take precedence over a
slug with the same name.`,
	Example: fmt.Sprintf(`  $ %[1]s
  $ %[1]s todo-list
  $ %[1]s todo-list --template innerblocks --title "TODO List"`, branding.CLIName()),
	Args:          maximumArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Print diagnostic logs to stderr")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "Color output: auto, always or never")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return output.NewUserError(err.Error())
	})
}

// maximumArgs wraps cobra.MaximumNArgs so argument mistakes exit as user errors.
func maximumArgs(n int) cobra.PositionalArgs {
	check := cobra.MaximumNArgs(n)
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return output.NewUserError(err.Error())
		}
		return nil
	}
}

// exactArgs wraps cobra.ExactArgs so argument mistakes exit as user errors.
func exactArgs(n int) cobra.PositionalArgs {
	check := cobra.ExactArgs(n)
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return output.NewUserError(err.Error())
		}
		return nil
	}
}

// newPrinter returns a printer on the command's writers honoring --color.
func newPrinter(cmd *cobra.Command) *output.Printer {
	out := cmd.OutOrStdout()
	tty := output.ResolveColorMode(flagColor, output.IsTTY(out))
	return output.NewPrinter(out, tty).WithStderr(cmd.ErrOrStderr())
}

// Execute runs the root command with build info injected via ldflags. Errors
// are printed here: recognized ones as a plain message, anything else with
// its full diagnostic. The caller maps the returned error to an exit code.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionLine() + "\n")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd, err := rootCmd.ExecuteContextC(ctx)
	if cmd == nil {
		cmd = rootCmd
	}
	if err != nil {
		reportError(newPrinter(cmd), err)
	}
	return err
}

func reportError(p *output.Printer, err error) {
	if output.IsUserFacing(err) {
		p.Error(err)
		return
	}
	p.Fatal(err)
}
