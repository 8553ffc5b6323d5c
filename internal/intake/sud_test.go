package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSUD(t *testing.T) {
	cases := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"je dirais 7 sur 10", 7, true},
		{"7", 7, true},
		{"0", 0, true},
		{"10", 10, true},
		{"je suis à 12", 0, false},
		{"ça va bien", 0, false},
		{"", 0, false},
		// Long digit runs are never candidate ratings.
		{"en 2010 c'était pareil", 0, false},
		{"100", 0, false},
		// A skipped long run does not hide a later rating.
		{"depuis 2019 je suis à 8", 8, true},
	}
	for _, tc := range cases {
		got, ok := ParseSUD(tc.in)
		assert.Equal(t, tc.wantOK, ok, "input: %q", tc.in)
		if tc.wantOK {
			assert.Equal(t, tc.want, got, "input: %q", tc.in)
		}
	}
}
