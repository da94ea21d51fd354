package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/t2-labs/create-block/internal/answers"
	"github.com/t2-labs/create-block/internal/config"
	"github.com/t2-labs/create-block/internal/output"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write settings stored at ~/.t2-create-block/config.yaml.

Known keys: ` + strings.Join(config.Keys, ", ") + `. Settings can also come from
T2_CREATE_BLOCK_<KEY> environment variables. Command-line flags always win.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		key, value := args[0], args[1]
		if !config.IsKnownKey(key) {
			return output.NewUserError(fmt.Sprintf("Unknown config key %q. Known keys: %s.", key, strings.Join(config.Keys, ", ")))
		}
		if key == config.KeyNamespace {
			if err := answers.ValidateIdentifier(answers.KeyNamespace, value); err != nil {
				return err
			}
		}
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		newPrinter(cmd).Info("Set %s = %s", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		newPrinter(cmd).Info("%s", config.Get(args[0]))
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		p := newPrinter(cmd)
		for _, key := range config.Keys {
			p.Info("%s = %s", key, config.Get(key))
		}
		return nil
	},
}
