package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	libraryCmd := &cobra.Command{
		Use:   "library",
		Short: "Manage your game library",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List games in the library",
		RunE:  runLibraryList,
	}
	listCmd.Flags().StringP("status", "s", "", "Filter by status (want-to-play, playing, played)")
	listCmd.Flags().IntP("limit", "l", 50, "Maximum number of games to return")

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a game to the library",
		Args:  cobra.ExactArgs(1),
		RunE:  runLibraryAdd,
	}
	addCmd.Flags().StringP("status", "s", "", "Initial status (default: want-to-play)")
	addCmd.Flags().Int64("igdb-id", 0, "IGDB catalog ID")

	setStatusCmd := &cobra.Command{
		Use:   "set-status <id> <status>",
		Short: "Change a game's status",
		Args:  cobra.ExactArgs(2),
		RunE:  runLibrarySetStatus,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a game from the library",
		Args:  cobra.ExactArgs(1),
		RunE:  runLibraryDelete,
	}

	libraryCmd.AddCommand(listCmd)
	libraryCmd.AddCommand(addCmd)
	libraryCmd.AddCommand(setStatusCmd)
	libraryCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(libraryCmd)
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")

	client := NewClient(serverURL)
	data, err := client.Games(status, limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(data)
		return nil
	}

	if len(data.Items) == 0 {
		fmt.Println("No games in library.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Title", "Status", "Rating", "Playtime"})
	for i := range data.Items {
		g := &data.Items[i]
		rating := "-"
		if g.Rating != nil {
			rating = fmt.Sprintf("%.0f", *g.Rating)
		}
		t.AppendRow(table.Row{g.ID, g.Title, g.Status, rating, formatPlaytime(g.PlaytimeMinutes)})
	}
	t.Render()

	if data.Total > len(data.Items) {
		fmt.Printf("Showing %d of %d games. Use --limit to see more.\n", len(data.Items), data.Total)
	}
	return nil
}

func formatPlaytime(minutes int) string {
	if minutes == 0 {
		return "-"
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%.1fh", float64(minutes)/60)
}

func runLibraryAdd(cmd *cobra.Command, args []string) error {
	status, _ := cmd.Flags().GetString("status")
	igdbID, _ := cmd.Flags().GetInt64("igdb-id")

	var idPtr *int64
	if igdbID != 0 {
		idPtr = &igdbID
	}

	client := NewClient(serverURL)
	game, err := client.AddGame(args[0], status, idPtr)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(game)
		return nil
	}

	fmt.Printf("Added: %s [ID: %d, status: %s]\n", game.Title, game.ID, game.Status)
	return nil
}

func runLibrarySetStatus(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid ID: %s", args[0])
	}

	client := NewClient(serverURL)
	game, err := client.SetGameStatus(id, args[1])
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(game)
		return nil
	}

	fmt.Printf("Updated: %s -> %s\n", game.Title, game.Status)
	return nil
}

func runLibraryDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid ID: %s", args[0])
	}

	client := NewClient(serverURL)

	// First get the game to show what we're deleting
	game, err := client.Game(id)
	if err != nil {
		return err
	}
	if err := client.DeleteGame(id); err != nil {
		return err
	}

	fmt.Printf("Deleted: %s\n", game.Title)
	return nil
}
