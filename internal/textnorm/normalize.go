// Package textnorm normalizes place names and addresses for display and comparison.
package textnorm

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Floor and unit qualifiers at the end of Korean addresses. The range pattern
// must run before the single floor pattern, which would otherwise eat half of it.
// The trailing group stands in for a word boundary and is put back on replace.
var (
	floorRangeRe = regexp.MustCompile(`\s+\d+\s*[~\-]\s*\d+\s*층($|[^\p{L}\p{N}])`)
	floorRe      = regexp.MustCompile(`\s+\d+\s*층($|[^\p{L}\p{N}])`)
	unitRe       = regexp.MustCompile(`\s+\d+\s*호($|[^\p{L}\p{N}])`)
)

// NormalizeSpace collapses runs of whitespace into a single space and trims the result.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripAddressDetail removes floor and unit qualifiers such as "2층", "1~3층" or "101호".
func StripAddressDetail(address string) string {
	out := NormalizeSpace(address)
	for _, re := range []*regexp.Regexp{floorRangeRe, floorRe, unitRe} {
		out = re.ReplaceAllString(out, "${1}")
	}

	return NormalizeSpace(out)
}

// NormalizeCompareText reduces s to lowercase ASCII letters, digits and Hangul syllables.
// The result is a comparison key and must not be displayed.
func NormalizeCompareText(s string) string {
	s = strings.ToLower(NormalizeSpace(norm.NFC.String(s)))

	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if isCompareRune(r) {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

func isCompareRune(r rune) bool {
	return ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('가' <= r && r <= '힣')
}
