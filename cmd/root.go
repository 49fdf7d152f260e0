/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "asynchis",
	Short: "Asynchronous multi-faction strategy game engine",
	Long: `asynchis is the rules and state engine for an asynchronous,
turn-based strategy game of renaissance power politics. Each game is an
isolated document store on disk; every command is validated, applied and
recorded in an append-only history that supports undo.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.asynchis.yaml)")
	rootCmd.PersistentFlags().String("games_dir", "", "directory holding game stores (default ./games)")
	if err := viper.BindPFlag("games_dir", rootCmd.PersistentFlags().Lookup("games_dir")); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".asynchis")
	}

	viper.SetEnvPrefix("asynchis")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// gamesDir resolves the configured games directory.
func gamesDir() string {
	dir := viper.GetString("games_dir")
	if dir == "" {
		dir = "./games"
	}
	return dir
}

// dataDirs resolves the reference-data search path; the embedded defaults
// remain the final fallback.
func dataDirs() []string {
	if dir := viper.GetString("data_dir"); dir != "" {
		return []string{dir}
	}
	return nil
}
