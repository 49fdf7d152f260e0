/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/mikyjpeg/asynchis/internal/store"

	"github.com/spf13/cobra"
)

// gameCmd represents the game command
var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "Manage game instances",
	Long: `The game command manages isolated game instances. Each game is a
document tree under the games directory holding factions, spaces, cards
and the command history.

Use subcommands 'create', 'load' and 'list' to work with games.`,
}

var gameListCmd = &cobra.Command{
	Use:   "list",
	Short: "List existing games",
	RunE: func(cmd *cobra.Command, args []string) error {
		games := store.NewGameManager(gamesDir())
		ids, err := games.List()
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Println("No games found.")
			return nil
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gameCmd)
	gameCmd.AddCommand(gameListCmd)
}
