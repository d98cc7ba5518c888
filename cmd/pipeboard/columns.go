package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pipeboard-org/pipeboard/helpers"
	"github.com/pipeboard-org/pipeboard/schema"
)

var columnsFile string

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "Print the expected export columns",
	Long: `Print the column schema pipeboard expects from an opportunity export.
With --file, also compare the file's header against the schema and report
missing or unrecognized columns. Missing columns are not fatal — their
fields normalize to empty values.`,
	RunE: runColumns,
}

func init() {
	columnsCmd.Flags().StringVar(&columnsFile, "file", "", "CSV export to diagnose")
}

func runColumns(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%-30s %-10s %s\n", "COLUMN", "KIND", "MAPS TO")
	for _, col := range schema.Columns() {
		note := ""
		if col.Format != "" {
			note = " (" + col.Format + ")"
		}
		fmt.Fprintf(out, "%-30s %-10s %s%s\n", col.Name, col.Kind, col.MapsTo, note)
	}

	if columnsFile == "" {
		return nil
	}

	data, err := os.ReadFile(columnsFile)
	if err != nil {
		return fmt.Errorf("reading export: %w", err)
	}
	report := schema.Diagnose(helpers.Headers(string(data)))

	fmt.Fprintln(out)
	if report.Clean() && len(report.Extra) == 0 {
		fmt.Fprintf(out, "%s: header matches the expected schema\n", columnsFile)
		return nil
	}
	for _, name := range report.Missing {
		fmt.Fprintf(out, "missing: %s\n", name)
	}
	for _, name := range report.Extra {
		fmt.Fprintf(out, "unrecognized: %s\n", name)
	}
	return nil
}
