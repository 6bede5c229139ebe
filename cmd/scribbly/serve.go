package main

import (
	"github.com/spf13/cobra"

	"github.com/scribbly/scribbly/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.New().Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
