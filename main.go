// Package main provides the entry point for cachesim.
// cachesim is a functional set-associative cache simulator.
//
// For the full CLI, use: go run ./cmd/cachesim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("cachesim - Set-Associative Cache Simulator")
	fmt.Println("")
	fmt.Println("Usage: cachesim <command>")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  run      Run the simulator over a trace or interactively")
	fmt.Println("  serve    Serve the cache simulator HTTP API")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/cachesim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/cachesim' instead.")
	}
}
