package cli

import (
	"fmt"
	"io"

	"github.com/octet-labs/mkexample/internal/scaffold"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create <name>...",
	Short: "Create or complete example projects",
	Long: `Create example_<name> for each name from the prototype project.

Files that already exist in the project are left alone. A name may be given
with its prefix (example_foo is the same as foo).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate(cmd, args)
	},
}

func runCreate(cmd *cobra.Command, names []string) error {
	engine, err := openEngine()
	if err != nil {
		return err
	}

	for _, name := range names {
		result, err := engine.Create(name)
		if result != nil {
			printResult(cmd.OutOrStdout(), result)
		}
		if err != nil {
			return fmt.Errorf("creating %s: %w", name, err)
		}
	}
	return nil
}

func printResult(w io.Writer, result *scaffold.Result) {
	verb := "Created"
	if len(result.Created) == 0 {
		verb = "Up to date"
	}
	fmt.Fprintf(w, "%s %s/ (%d created, %d kept)\n", verb, result.Project.Dir, len(result.Created), len(result.Kept))
	for _, f := range result.Created {
		fmt.Fprintf(w, "  + %s\n", f)
	}
	if len(result.Skipped) > 0 {
		fmt.Fprintln(w, "\nSkipped (not a regular file):")
		for _, f := range result.Skipped {
			fmt.Fprintf(w, "  - %s\n", f)
		}
	}
}
