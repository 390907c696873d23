package schema

import "strings"

// Role is the part a column plays in lookups.
type Role int

const (
	RoleUnclassified Role = iota
	RoleDigest
	RoleListDigest
	RoleFreeText
)

// DefaultListColumn is the column holding a JSON array of row digests.
const DefaultListColumn = "row_hashes"

var (
	digestSuffixes = []string{"_sha", "_sha256"}
	freeTextTerms  = []string{"addr", "street", "city"}
)

func (r Role) String() string {
	switch r {
	case RoleDigest:
		return "digest"
	case RoleListDigest:
		return "list_digest"
	case RoleFreeText:
		return "free_text"
	default:
		return "unclassified"
	}
}

// Rules holds the classification settings that can vary per invocation.
type Rules struct {
	// ListColumn is matched exactly (case-sensitive).
	ListColumn string
}

// DefaultRules returns the rules used when nothing is configured.
func DefaultRules() Rules {
	return Rules{ListColumn: DefaultListColumn}
}

// Classify maps a column name to its role.
// Precedence when a name matches several rules: ListDigest, Digest, FreeText.
// "address_sha256" is therefore a digest column and never substring-searched.
func (r Rules) Classify(name string) Role {
	if r.ListColumn != "" && name == r.ListColumn {
		return RoleListDigest
	}

	lower := strings.ToLower(name)
	for _, suffix := range digestSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return RoleDigest
		}
	}
	for _, term := range freeTextTerms {
		if strings.Contains(lower, term) {
			return RoleFreeText
		}
	}
	return RoleUnclassified
}

// Classify applies DefaultRules.
func Classify(name string) Role {
	return DefaultRules().Classify(name)
}
