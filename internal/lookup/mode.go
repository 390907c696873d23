package lookup

import "strings"

// Mode selects how a query is interpreted.
type Mode string

const (
	ModePhone   Mode = "phone"
	ModeAddress Mode = "address"
	ModeHash    Mode = "hash"
)

// Modes lists the valid modes in display order.
var Modes = []Mode{ModePhone, ModeAddress, ModeHash}

// ParseMode validates a mode name. Matching is exact.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", NewUsageError("unknown mode %q: must be one of %s", s, modeList())
}

func modeList() string {
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}
	return strings.Join(names, "|")
}
