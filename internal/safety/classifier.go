// Package safety intercepts every inbound utterance before it reaches the
// dialogue backend: it classifies medical and self-harm risk signals and
// drives the multi-turn yes/no confirmation protocol around them.
package safety

import (
	"regexp"
	"strings"
)

// Risk is the crisis classification of a single utterance.
type Risk string

const (
	RiskNone              Risk = "none"
	RiskPhysicalEmergency Risk = "physical_emergency"
	RiskSuicide           Risk = "suicide"
)

// Classify pattern-matches an utterance against the crisis tables.
// Physical-emergency indicators are checked first and win ties: cardiac
// or airway symptoms justify their own immediate question even when
// self-harm wording is also present. The benign whitelist applies to the
// suicide table only. Pure; same input always yields the same result.
func Classify(utterance string) Risk {
	text := strings.TrimSpace(utterance)
	if text == "" {
		return RiskNone
	}

	if matchAny(physicalPatterns, text) {
		return RiskPhysicalEmergency
	}
	if matchAny(suicidePatterns, text) && !matchAny(benignPatterns, text) {
		return RiskSuicide
	}
	return RiskNone
}

func matchAny(patterns []*regexp.Regexp, text string) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
