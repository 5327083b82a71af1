// Package units parses human-readable byte sizes such as "1KB" or "512B".
package units

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSizeFormat reports a malformed size string.
var ErrInvalidSizeFormat = errors.New("invalid size format")

var multipliers = map[string]int64{
	"B":  1,
	"KB": 1 << 10,
	"MB": 1 << 20,
	"GB": 1 << 30,
}

// ParseSize converts a size string into a byte count. It accepts a string
// of plain digits (a raw byte count) or a number immediately followed by
// one of B, KB, MB, or GB. Units are case-insensitive and surrounding
// whitespace is ignored. Decimal values such as "1.5KB" are truncated
// toward zero after the multiplier is applied.
func ParseSize(input string) (int, error) {
	s := strings.ToUpper(strings.TrimSpace(input))
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidSizeFormat)
	}

	if isDigits(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidSizeFormat, input)
		}
		return int(n), nil
	}

	var number, unit strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' || r == '.' {
			number.WriteRune(r)
		} else {
			unit.WriteRune(r)
		}
	}

	unitStr := strings.TrimSpace(unit.String())
	if number.Len() == 0 || unitStr == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSizeFormat, input)
	}

	mult, ok := multipliers[unitStr]
	if !ok {
		return 0, fmt.Errorf("%w: unknown unit %q", ErrInvalidSizeFormat, unitStr)
	}

	value, err := strconv.ParseFloat(number.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSizeFormat, input)
	}

	return int(value * float64(mult)), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
