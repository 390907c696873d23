// Package normalize expands a raw lookup query into the canonical forms the
// stored digests were computed from.
package normalize

import "strings"

// Phone is the normalized form of a phone query.
type Phone struct {
	// Digits holds the ASCII digits of the query, in order.
	Digits string

	// Plus records whether the raw query contained a '+' anywhere.
	Plus bool
}

// ParsePhone keeps the digits of raw and notes whether a '+' was present.
// Everything else (spaces, dashes, parentheses, letters) is dropped.
func ParsePhone(raw string) Phone {
	var b strings.Builder
	b.Grow(len(raw))

	var p Phone
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '+':
			p.Plus = true
		case c >= '0' && c <= '9':
			b.WriteByte(c)
		}
	}
	p.Digits = b.String()
	return p
}

// Candidates returns both the E.164-with-plus and bare-digit forms.
// The form matching the raw query's convention comes first; both are always
// tried because ingestion may have used either.
func (p Phone) Candidates() []string {
	withPlus := "+" + p.Digits
	if p.Plus {
		return []string{withPlus, p.Digits}
	}
	return []string{p.Digits, withPlus}
}

// PhoneCandidates is ParsePhone(raw).Candidates().
// An empty query yields ["", "+"].
func PhoneCandidates(raw string) []string {
	return ParsePhone(raw).Candidates()
}

// AddressPattern wraps raw in LIKE wildcards for a substring match.
// raw is used verbatim: '%' and '_' inside it keep their LIKE meaning.
func AddressPattern(raw string) string {
	return "%" + raw + "%"
}

// HashInput returns the plaintext to digest for a hash lookup.
// Callers pass the pre-digest value, so this is the identity.
func HashInput(raw string) string {
	return raw
}
