package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/billmal071/bookshelf/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and modify bookshelf configuration.

Configuration is stored in ~/.config/bookshelf/config.yaml and every key
can be overridden with a BOOKSHELF_ environment variable
(api.max_results becomes BOOKSHELF_API_MAX_RESULTS).

Examples:
  bookshelf config get api.default_query
  bookshelf config set api.default_query "bebop"
  bookshelf config set log.file ~/.cache/bookshelf.log`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		value := config.GetValue(key)
		if value == nil {
			return fmt.Errorf("key not found: %s", key)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", key, value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		value := args[1]

		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("failed to set config: %w", err)
		}

		Successf("Set %s = %s", key, value)
		fmt.Printf("Config saved to: %s\n", config.GetConfigPath())
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Config file: %s\n", config.GetConfigPath())
		fmt.Fprintf(w, "Config dir:  %s\n", config.GetConfigDir())
		if file := config.Get().Log.File; file != "" {
			fmt.Fprintf(w, "Log file:    %s\n", file)
		}
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}
