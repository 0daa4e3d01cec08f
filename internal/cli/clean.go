package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(cleanCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove generated IDE project files from every example",
	Long: `Delete build-system artifacts (by default *.sln, *.vcxproj,
*.vcxproj.filters, *.vcxproj.user and *.xcodeproj bundles) from every
example_* project. Sources and the project directories themselves stay.
Run update afterwards to regenerate the project files from the prototype.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runClean(cmd)
	},
}

func runClean(cmd *cobra.Command) error {
	engine, err := openEngine()
	if err != nil {
		return err
	}

	results, err := engine.Clean()
	out := cmd.OutOrStdout()
	for _, result := range results {
		fmt.Fprintf(out, "Cleaned %s/ (%d removed)\n", result.Project.Dir, len(result.Removed))
		for _, f := range result.Removed {
			fmt.Fprintf(out, "  - %s\n", f)
		}
	}
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(out, "No examples to clean.")
	}
	return nil
}
