/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/mikyjpeg/asynchis/internal/session"
	"github.com/mikyjpeg/asynchis/internal/store"

	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl [game_id]",
	Short: "Start the interactive shell for a game",
	Long: `Starts the interactive loop for issuing game commands.
Usage:
	> add_formation space=istanbul power=ottoman regulars=5 secondary=3
	> declare_war target=france action=declare_war
	> undo`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		gameID := args[0]
		actor, _ := cmd.Flags().GetString("actor")
		faction, _ := cmd.Flags().GetString("faction")

		games := store.NewGameManager(gamesDir())
		sess, err := session.Open(games, gameID, dataDirs(), nil, nil)
		if err != nil {
			fmt.Printf("Failed to bootstrap game session: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Starting shell for '%s'...\nType 'exit' or 'quit' to leave.\n\n", gameID)

		if err := RunTUI(sess, actor, faction); err != nil {
			fmt.Printf("Fatal TUI Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().StringP("actor", "a", "gm", "Name of the acting user")
	replCmd.Flags().StringP("faction", "f", "", "Faction the commands act for")
}
