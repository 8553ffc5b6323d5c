package intake

import (
	"regexp"
	"strconv"
)

var digitRunRe = regexp.MustCompile(`[0-9]+`)

// ParseSUD extracts a 0-10 subjective intensity rating from free text.
//
// The text is scanned for maximal digit runs. Runs longer than two digits
// (years, "100") are not candidate ratings and are skipped. The first
// candidate run decides the outcome: in range it is the rating, out of
// range ("je suis à 12") the whole text yields nothing.
func ParseSUD(text string) (int, bool) {
	for _, run := range digitRunRe.FindAllString(text, -1) {
		if len(run) > 2 {
			continue
		}
		n, err := strconv.Atoi(run)
		if err != nil || n > 10 {
			return 0, false
		}
		return n, true
	}
	return 0, false
}
