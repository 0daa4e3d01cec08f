package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/octet-labs/mkexample/internal/registry"
	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated example projects",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a generated project for display.
type listEntry struct {
	Name string `json:"name"`
	Dir  string `json:"dir"`
}

func runList(cmd *cobra.Command, args []string) error {
	engine, err := openEngine()
	if err != nil {
		return err
	}

	projects, err := engine.List()
	if err != nil {
		return fmt.Errorf("listing examples: %w", err)
	}

	entries := make([]listEntry, 0, len(projects))
	for _, p := range projects {
		entries = append(entries, toListEntry(p))
	}

	if listJSON {
		return printListJSON(cmd, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No examples yet.")
		return nil
	}
	return printListTable(cmd, entries)
}

func toListEntry(p registry.Project) listEntry {
	return listEntry{Name: p.Name, Dir: p.Dir}
}

func printListTable(cmd *cobra.Command, entries []listEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tDIRECTORY")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\n", e.Name, e.Dir)
	}
	return w.Flush()
}

func printListJSON(cmd *cobra.Command, entries []listEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
