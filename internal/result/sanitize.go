package result

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// SanitizeName turns a raw query into a file name stem.
// The query is NFC-normalized, then every rune that is not a Unicode letter
// or digit becomes '_'. "foo bar?" becomes "foo_bar_", "Zürich" stays
// "Zürich" whether the umlaut arrived composed or decomposed.
func SanitizeName(query string) string {
	normalized := norm.NFC.String(query)

	var b strings.Builder
	b.Grow(len(normalized))
	for _, r := range normalized {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
