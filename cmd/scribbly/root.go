package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scribbly",
	Short: "A notes service with an in-memory cache over a Redis store",
	Long: `Scribbly serves a note-taking API: an in-memory cache mediates all
reads and writes between the UI and the Redis-backed note store, with
optimistic updates and debounced autosave.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
