// Package config loads and saves cache simulator configuration files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/cache/policy"
	"github.com/sarchlab/cachesim/units"
)

// A Config holds the cache parameters in their human-readable form, as
// accepted on the command line and in configuration files.
type Config struct {
	// Size is the total cache size, e.g. "1KB" or "4096".
	Size string `json:"size"`

	// BlockSize is the cache line size, e.g. "64B".
	BlockSize string `json:"block_size"`

	// Associativity is "1" for direct-mapped, "fully" for fully
	// associative, or N for N-way set associative.
	Associativity string `json:"associativity"`

	// Policy selects the replacement policy, "LRU" or "FIFO".
	Policy string `json:"policy"`
}

// Default returns a Config with the standard defaults: a 1KB direct-mapped
// cache with 64-byte lines and LRU replacement.
func Default() *Config {
	return &Config{
		Size:          "1KB",
		BlockSize:     "64B",
		Associativity: "1",
		Policy:        "LRU",
	}
}

// Load reads a Config from a JSON file. Fields missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// Save writes the Config to a JSON file.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that every field parses. It does not check topology
// constraints such as divisibility; cache construction does that.
func (c *Config) Validate() error {
	if _, err := units.ParseSize(c.Size); err != nil {
		return fmt.Errorf("size: %w", err)
	}
	if _, err := units.ParseSize(c.BlockSize); err != nil {
		return fmt.Errorf("block_size: %w", err)
	}
	if _, err := ParseAssociativity(c.Associativity); err != nil {
		return fmt.Errorf("associativity: %w", err)
	}
	if _, err := policy.ParseKind(c.Policy); err != nil {
		return fmt.Errorf("policy: %w", err)
	}
	return nil
}

// Resolve parses the string fields into validated core parameters.
func (c *Config) Resolve() (totalSize, blockSize, associativity int, kind policy.Kind, err error) {
	totalSize, err = units.ParseSize(c.Size)
	if err != nil {
		return 0, 0, 0, "", fmt.Errorf("size: %w", err)
	}

	blockSize, err = units.ParseSize(c.BlockSize)
	if err != nil {
		return 0, 0, 0, "", fmt.Errorf("block_size: %w", err)
	}

	associativity, err = ParseAssociativity(c.Associativity)
	if err != nil {
		return 0, 0, 0, "", fmt.Errorf("associativity: %w", err)
	}

	kind, err = policy.ParseKind(c.Policy)
	if err != nil {
		return 0, 0, 0, "", fmt.Errorf("policy: %w", err)
	}

	return totalSize, blockSize, associativity, kind, nil
}

// ParseAssociativity converts an associativity value into its numeric form.
// "fully" (case-insensitive) maps to the fully-associative sentinel.
func ParseAssociativity(s string) (int, error) {
	if strings.EqualFold(strings.TrimSpace(s), "fully") {
		return cache.FullyAssociative, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid associativity value: %q", s)
	}
	return n, nil
}
