package transform

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Internalize maps a source identifier to a deterministic, target-safe
// identifier: NFC-normalized, with runes the target cannot carry replaced by
// underscores, and a leading underscore added when the result would start
// with a digit or collide with a reserved word. Internalize is idempotent:
// applying it to its own output returns the output unchanged.
func Internalize(name string) string {
	if name == "" {
		return "_"
	}
	normalized := norm.NFC.String(name)

	var b strings.Builder
	b.Grow(len(normalized))
	for i, r := range normalized {
		switch {
		case r == '_' || r == '$':
			b.WriteRune(r)
		case unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if IsReserved(out) {
		out = "_" + out
	}
	return out
}
