// Package main provides the cachesim command line interface.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "cachesim",
	Short: "Set-associative cache simulator",
	Long: "cachesim models a hardware set-associative cache: configure its " +
		"size, block size, associativity, and replacement policy, then feed " +
		"it memory addresses and observe hits, misses, and evictions.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logrus.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Log verbosity level (debug, info, warn, error)")
	rootCmd.AddCommand(runCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
