package textnorm

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber leniently parses a decimal number. Blank, malformed and
// non-finite input yield nil.
func ParseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}

	return &v
}
