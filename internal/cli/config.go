package cli

import (
	"fmt"

	"github.com/octet-labs/mkexample/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Manage settings",
	Long:        `Read and write settings stored in ./` + config.FilePath() + ` (or the file given with --config).`,
	Annotations: map[string]string{skipSetup: "true"},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.SetFile(cfgFile)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  `Set a configuration value. List keys (artifact_patterns, binary_extensions) take a comma-separated value.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.FilePath())
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the config file against the schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.FilePath()
		result, err := config.ValidateFile(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !result.Valid {
			fmt.Fprintf(out, "%s: %d issue(s)\n", path, len(result.Issues))
			for _, issue := range result.Issues {
				fmt.Fprintf(out, "  %s: %s\n", issue.Path, issue.Message)
			}
			return fmt.Errorf("invalid config file %s", path)
		}
		fmt.Fprintf(out, "%s: ok\n", path)
		return nil
	},
}
