package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the game catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearchCmd,
}

func init() {
	searchCmd.Flags().IntP("limit", "l", 10, "Maximum number of results")
	rootCmd.AddCommand(searchCmd)
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	client := NewClient(serverURL)
	data, err := client.Search(query, limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(data)
		return nil
	}

	if len(data.Results) == 0 {
		fmt.Printf("No results for %q.\n", query)
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"IGDB ID", "Name", "Year", "Rating", "Summary"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Summary", WidthMax: 60, WidthMaxEnforcer: text.Trim},
	})
	for i := range data.Results {
		r := &data.Results[i]
		year := "-"
		if r.Year > 0 {
			year = fmt.Sprintf("%d", r.Year)
		}
		rating := "-"
		if r.Rating != nil {
			rating = fmt.Sprintf("%.0f", *r.Rating)
		}
		t.AppendRow(table.Row{r.IGDBID, r.Name, year, rating, r.Summary})
	}
	t.Render()
	return nil
}
