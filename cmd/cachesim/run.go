package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/config"
	"github.com/sarchlab/cachesim/trace"
)

var (
	sizeFlag          string
	blockSizeFlag     string
	associativityFlag string
	policyFlag        string
	traceFlag         string
	interactiveFlag   bool
	configFlag        string
	recordFlag        string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulator over an address trace or interactively",
	RunE:  runSimulation,
}

func init() {
	runCmd.Flags().StringVar(&sizeFlag, "size", "1KB",
		"Total cache size (e.g. 1KB, 512B)")
	runCmd.Flags().StringVar(&blockSizeFlag, "block-size", "64B",
		"Block/line size (e.g. 64B, 4B)")
	runCmd.Flags().StringVar(&associativityFlag, "associativity", "1",
		"Associativity (1=direct, fully=fully associative, or N for N-way)")
	runCmd.Flags().StringVar(&policyFlag, "policy", "LRU",
		"Replacement policy (LRU or FIFO)")
	runCmd.Flags().StringVar(&traceFlag, "trace", "",
		"Comma-separated list of addresses to access")
	runCmd.Flags().BoolVar(&interactiveFlag, "interactive", false,
		"Run in interactive mode")
	runCmd.Flags().StringVar(&configFlag, "config", "",
		"Path to a JSON configuration file")
	runCmd.Flags().StringVar(&recordFlag, "record", "",
		"Record accesses into a SQLite database at the given path")
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if configFlag != "" {
		loaded, err := config.Load(configFlag)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags set explicitly on the command line override the config file.
	if cmd.Flags().Changed("size") {
		cfg.Size = sizeFlag
	}
	if cmd.Flags().Changed("block-size") {
		cfg.BlockSize = blockSizeFlag
	}
	if cmd.Flags().Changed("associativity") {
		cfg.Associativity = associativityFlag
	}
	if cmd.Flags().Changed("policy") {
		cfg.Policy = policyFlag
	}

	totalSize, blockSize, associativity, kind, err := cfg.Resolve()
	if err != nil {
		return fmt.Errorf("error configuring cache: %w", err)
	}

	c, err := cache.New(totalSize, blockSize, associativity, kind)
	if err != nil {
		return fmt.Errorf("error configuring cache: %w", err)
	}

	fmt.Println("\nCache Configuration:")
	fmt.Printf("Total Size: %s\n", cfg.Size)
	fmt.Printf("Block Size: %s\n", cfg.BlockSize)
	fmt.Printf("Associativity: %s\n", cfg.Associativity)
	fmt.Printf("Replacement Policy: %s\n", cfg.Policy)
	fmt.Printf("Number of Sets: %d\n", c.NumSets())
	fmt.Printf("Ways per Set: %d\n\n", c.Ways())

	var recorder *trace.Recorder
	if recordFlag != "" {
		recorder = trace.NewRecorder(recordFlag)
		defer recorder.Flush()
	}

	switch {
	case interactiveFlag:
		return runInteractive(c, recorder)
	case traceFlag != "":
		return runTrace(c, recorder)
	default:
		return cmd.Help()
	}
}

func runTrace(c *cache.Cache, recorder *trace.Recorder) error {
	addresses, err := trace.ParseAddresses(traceFlag)
	if err != nil {
		return err
	}

	fmt.Println("Processing trace...")
	for _, addr := range addresses {
		if err := accessAndReport(c, recorder, addr); err != nil {
			return err
		}
	}

	return nil
}

func runInteractive(c *cache.Cache, recorder *trace.Recorder) error {
	fmt.Println("Enter memory addresses to access (empty line to exit):")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}

		addr, err := strconv.ParseUint(line, 0, 64)
		if err != nil {
			fmt.Printf("Invalid address: %s\n", line)
			continue
		}

		if err := accessAndReport(c, recorder, addr); err != nil {
			return err
		}
	}

	return scanner.Err()
}

func accessAndReport(c *cache.Cache, recorder *trace.Recorder, addr uint64) error {
	hit, evicted, err := c.Access(addr, false)
	if err != nil {
		return err
	}

	if recorder != nil {
		recorder.Record(addr, false, hit, evicted)
	}

	outcome := "MISS"
	if hit {
		outcome = "HIT"
	}
	fmt.Printf("\nAccessed %d: %s\n", addr, outcome)
	if evicted != nil {
		fmt.Printf("Evicted block with tag %d\n", evicted.Tag)
	}

	fmt.Println("\nCache State:")
	fmt.Println(formatCacheState(c))
	fmt.Println()

	return nil
}
