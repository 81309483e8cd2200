package textnorm

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"
)

var unicodeEscapeRe = regexp.MustCompile(`\\u([0-9a-fA-F]{4})`)

// UnescapeJSONText decodes the escapes left in JSON string fragments scraped out of HTML:
// \uXXXX (including surrogate pairs), \/, \" and \\. The result is trimmed.
func UnescapeJSONText(text string) string {
	if text == "" {
		return ""
	}

	var pending rune = -1
	var sb strings.Builder
	last := 0
	flush := func() {
		if pending >= 0 {
			sb.WriteRune(utf16.DecodeRune(pending, 0))
			pending = -1
		}
	}

	for _, loc := range unicodeEscapeRe.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] != last {
			flush()
			sb.WriteString(text[last:loc[0]])
		}
		last = loc[1]

		code, _ := strconv.ParseUint(text[loc[2]:loc[3]], 16, 16)
		r := rune(code)
		switch {
		case pending >= 0 && utf16.IsSurrogate(r) && r >= 0xDC00:
			sb.WriteRune(utf16.DecodeRune(pending, r))
			pending = -1
		case utf16.IsSurrogate(r) && r < 0xDC00:
			flush()
			pending = r
		default:
			flush()
			sb.WriteRune(r)
		}
	}
	flush()
	sb.WriteString(text[last:])

	out := sb.String()
	out = strings.ReplaceAll(out, `\/`, "/")
	out = strings.ReplaceAll(out, `\"`, `"`)
	out = strings.ReplaceAll(out, `\\`, `\`)

	return strings.TrimSpace(out)
}
