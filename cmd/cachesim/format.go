package main

import (
	"fmt"
	"strings"

	"github.com/sarchlab/cachesim/cache"
)

// formatCacheState renders the cache contents and statistics as text, one
// line per set with dirty blocks marked by an asterisk.
func formatCacheState(c *cache.Cache) string {
	contents := c.Contents()
	var lines []string

	for _, set := range contents.Sets {
		var blocks []string
		for _, b := range set.Blocks {
			if !b.Valid {
				continue
			}
			marker := ""
			if b.Dirty {
				marker = "*"
			}
			blocks = append(blocks, fmt.Sprintf("T:%d%s", b.Tag, marker))
		}

		if len(blocks) > 0 {
			lines = append(lines,
				fmt.Sprintf("Set %d: [%s]", set.Index, strings.Join(blocks, ", ")))
		} else {
			lines = append(lines, fmt.Sprintf("Set %d: [empty]", set.Index))
		}
	}

	stats := contents.Stats
	lines = append(lines,
		"",
		fmt.Sprintf("Accesses: %d", stats.Accesses),
		fmt.Sprintf("Hits: %d", stats.Hits),
		fmt.Sprintf("Misses: %d", stats.Misses),
		fmt.Sprintf("Hit Rate: %.2f%%", stats.HitRate*100),
		fmt.Sprintf("Evictions: %d", stats.Evictions),
	)

	return strings.Join(lines, "\n")
}
