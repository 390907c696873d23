package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhoneCandidates(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"formatted with plus", "+1 (415) 555-0100", []string{"+14155550100", "14155550100"}},
		{"bare digits", "14155550100", []string{"14155550100", "+14155550100"}},
		{"plus in the middle", "1415+5550100", []string{"+14155550100", "14155550100"}},
		{"letters dropped", "tel:+44 20 7946 0958", []string{"+442079460958", "442079460958"}},
		{"empty", "", []string{"", "+"}},
		{"only plus", "+", []string{"+", ""}},
		{"non-ascii digits dropped", "+1٢3", []string{"+13", "13"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PhoneCandidates(tt.raw))
		})
	}
}

func TestPhoneCandidates_SameSetRegardlessOfPlus(t *testing.T) {
	a := PhoneCandidates("+1 (415) 555-0100")
	b := PhoneCandidates("14155550100")

	assert.ElementsMatch(t, a, b)
	assert.ElementsMatch(t, []string{"+14155550100", "14155550100"}, a)
}

func TestParsePhone(t *testing.T) {
	p := ParsePhone(" +1-800-FLOWERS ")
	assert.True(t, p.Plus)
	assert.Equal(t, "1800", p.Digits)

	p = ParsePhone("(020) 7946")
	assert.False(t, p.Plus)
	assert.Equal(t, "0207946", p.Digits)
}

func TestAddressPattern(t *testing.T) {
	assert.Equal(t, "%main%", AddressPattern("main"))
	assert.Equal(t, "%%", AddressPattern(""))
	assert.Equal(t, "%50% off_%", AddressPattern("50% off_"))
}

func TestHashInput(t *testing.T) {
	assert.Equal(t, "Jane Doe", HashInput("Jane Doe"))
	assert.Equal(t, "", HashInput(""))
}
