package repair

import (
	"fmt"
	"strings"
)

// Sanitize escapes raw ASCII control characters (0x00-0x1F) found inside
// quoted string literals, replacing them with their JSON escape sequences.
// Characters outside string literals are left untouched, so structural syntax
// is never corrupted. The scan tracks quote and escape state precisely,
// which makes it idempotent: Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false

	for _, r := range s {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			b.WriteRune(r)
			escaped = true
			continue
		}
		if r == '"' {
			inString = !inString
			b.WriteRune(r)
			continue
		}
		if inString && r < 0x20 {
			switch r {
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			case '\b':
				b.WriteString(`\b`)
			case '\f':
				b.WriteString(`\f`)
			default:
				fmt.Fprintf(&b, `\u%04x`, r)
			}
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
