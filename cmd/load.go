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

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load [game_id]",
	Short: "Load a game and print its current state",
	Long: `Opens a game's document tree, verifies the command history, and
prints a summary of the factions and the deck status.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		gameID := args[0]

		games := store.NewGameManager(gamesDir())
		sess, err := session.Open(games, gameID, dataDirs(), nil, nil)
		if err != nil {
			fmt.Printf("Error loading game: %v\n", err)
			os.Exit(1)
		}

		entries, err := sess.History()
		if err != nil {
			fmt.Printf("Error reading history: %v\n", err)
			os.Exit(1)
		}

		st, err := sess.Status()
		if err != nil {
			fmt.Printf("Error reading status: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Successfully loaded game '%s'!\n", gameID)
		fmt.Printf("Turn %d, %d history entries.\n", st.Turn, len(entries))
		if st.ActiveCard != "" {
			fmt.Printf("Active impulse: %s (%d CP remaining)\n", st.ActiveCard, st.AvailableCP)
		}

		names, err := sess.Factions().List()
		if err != nil {
			fmt.Printf("Error listing factions: %v\n", err)
			os.Exit(1)
		}
		for _, name := range names {
			f, err := sess.Factions().Get(name)
			if err != nil {
				fmt.Printf("Error reading faction %s: %v\n", name, err)
				os.Exit(1)
			}
			controller := "uncontrolled"
			if f.Controller != "" {
				controller = f.Controller
			}
			fmt.Printf("- %s (%s): %d VP, %d cards in hand\n", f.Name, controller, f.TotalVP(), len(f.Hand))
		}
	},
}

func init() {
	gameCmd.AddCommand(loadCmd)
}
