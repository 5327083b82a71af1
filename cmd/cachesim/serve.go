package main

import (
	"github.com/spf13/cobra"

	"github.com/sarchlab/cachesim/api"
)

var portFlag int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the cache simulator HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return api.NewServer().
			WithPortNumber(portFlag).
			Run()
	},
}

func init() {
	serveCmd.Flags().IntVar(&portFlag, "port", 8000,
		"Port to listen on (0 picks a free port)")
}
