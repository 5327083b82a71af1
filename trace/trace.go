// Package trace parses address traces and records access outcomes.
package trace

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAddresses parses a comma-separated list of memory addresses.
// Addresses may be decimal or 0x-prefixed hexadecimal.
func ParseAddresses(s string) ([]uint64, error) {
	parts := strings.Split(s, ",")
	addresses := make([]uint64, 0, len(parts))

	for _, part := range parts {
		addr, err := strconv.ParseUint(strings.TrimSpace(part), 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid address %q in trace", strings.TrimSpace(part))
		}
		addresses = append(addresses, addr)
	}

	return addresses, nil
}
