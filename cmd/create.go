/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/mikyjpeg/asynchis/internal/data"
	"github.com/mikyjpeg/asynchis/internal/store"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create [game_id]",
	Short: "Create a new game and seed it from the reference data",
	Long: `Bootstraps a fresh game document tree under the games directory and
seeds it with the reference dataset: factions, the map, sea zones,
rulers, leaders, the card set and the starting forces.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		gameID := args[0]

		games := store.NewGameManager(gamesDir())
		st, err := games.Create(gameID)
		if err != nil {
			fmt.Printf("Error creating game: %v\n", err)
			os.Exit(1)
		}

		loader := data.NewLoader(dataDirs())
		set, err := loader.LoadSet()
		if err != nil {
			fmt.Printf("Error loading reference data: %v\n", err)
			os.Exit(1)
		}

		bar := progressbar.Default(int64(set.Count()), "Seeding game")
		if err := data.Seed(st, set, func() { _ = bar.Add(1) }); err != nil {
			fmt.Printf("Error seeding game: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("\nSuccessfully created game '%s'!\n", gameID)
		fmt.Printf("Documents stored under: %s\n", gamesDir())
	},
}

func init() {
	gameCmd.AddCommand(createCmd)
}
