package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import games from external libraries",
	}

	steamCmd := &cobra.Command{
		Use:   "steam",
		Short: "Import your Steam library",
		Long: `Fetch your owned games from Steam, match them against the catalog,
and add new matches to the library. Already-owned titles are skipped.`,
		Args: cobra.NoArgs,
		RunE: runImportSteam,
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show past import runs",
		Args:  cobra.NoArgs,
		RunE:  runImportHistory,
	}
	historyCmd.Flags().IntP("limit", "l", 20, "Maximum number of runs to show")

	importCmd.AddCommand(steamCmd)
	importCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(importCmd)
}

func runImportSteam(cmd *cobra.Command, args []string) error {
	fmt.Println("Importing Steam library... (this may take a while)")

	client := NewClient(serverURL)
	result, err := client.ImportSteam()
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(result)
		return nil
	}

	fmt.Printf("\nImport complete (run %s, %s):\n", result.RunID,
		(time.Duration(result.DurationMS) * time.Millisecond).Round(time.Millisecond))
	fmt.Printf("  Processed:     %d\n", result.TotalProcessed)
	fmt.Printf("  Matched:       %d\n", result.TotalMatched)
	fmt.Printf("  Imported:      %d\n", result.TotalImported)
	fmt.Printf("  Already owned: %d\n", result.TotalSkippedOwned)
	fmt.Printf("  No match:      %d\n", result.TotalNoMatch)

	if len(result.Imported) == 0 {
		return nil
	}

	fmt.Println()
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Title", "Status", "Playtime"})
	for i := range result.Imported {
		g := &result.Imported[i]
		t.AppendRow(table.Row{g.ID, g.Title, g.Status, formatPlaytime(g.PlaytimeMinutes)})
	}
	t.Render()
	return nil
}

func runImportHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	client := NewClient(serverURL)
	runs, err := client.ImportHistory(limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(runs)
		return nil
	}

	if len(runs) == 0 {
		fmt.Println("No import runs yet.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Run", "Source", "Started", "Processed", "Imported", "Owned", "No Match"})
	for i := range runs {
		r := &runs[i]
		t.AppendRow(table.Row{
			shortRunID(r.RunID), r.Source, formatTimestamp(r.StartedAt),
			r.TotalProcessed, r.TotalImported, r.TotalSkippedOwned, r.TotalNoMatch,
		})
	}
	t.Render()
	return nil
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatTimestamp(ts string) string {
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return parsed.Local().Format("2006-01-02 15:04")
}
