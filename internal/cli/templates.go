package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/t2-labs/create-block/internal/builtin"
)

func init() {
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the built-in block templates",
	Long: `List the block templates bundled with the CLI.

Besides these, --template accepts a local directory or manifest file, a git
repository URL ending in .git, or the name of an npm package (optionally with
a version range, e.g. my-template@^1.0.0).`,
	Args: exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		for _, t := range builtin.Templates {
			marker := " "
			if t.Name == builtin.DefaultTemplate {
				marker = "*"
			}
			if _, err := fmt.Fprintf(w, "%s %s\t%s\n", marker, t.Name, t.Description); err != nil {
				return err
			}
		}
		return w.Flush()
	},
}
