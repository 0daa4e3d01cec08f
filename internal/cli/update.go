package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Add new prototype files to every existing example",
	Long: `Re-run create for every example_* project so that files added to the
prototype since the project was generated appear in it. Existing files are
never modified.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(cmd)
	},
}

func runUpdate(cmd *cobra.Command) error {
	engine, err := openEngine()
	if err != nil {
		return err
	}

	results, err := engine.Update()
	for _, result := range results {
		printResult(cmd.OutOrStdout(), result)
	}
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No examples to update.")
	}
	return nil
}
