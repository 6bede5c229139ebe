package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scribbly/scribbly/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of scribbly",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("scribbly %s (commit=%s, built=%s, go=%s)\n",
			version.Version, version.Commit, version.BuildDate, version.GoVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
