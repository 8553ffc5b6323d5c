// Package intake normalizes free-text self-report phrases into the
// canonical grammatical forms the session prompts are built from.
package intake

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Canonical self-report constructions. Each rewrite keeps the user's own
// complement words; only grammatical particles (articles, contractions)
// are touched.
var (
	// "j'ai mal au genou", "j'ai très mal à l'épaule"
	malRe = regexp.MustCompile(`(?i)^j[’']?ai\s+(?:tr[eè]s\s+)?mal\s+(aux?|à\s+la|à\s+l[’'])\s*(\S.*)$`)

	// "j'ai peur des araignées", "j'ai une grande peur de l'avion"
	peurRe = regexp.MustCompile(`(?i)^j[’']?ai\s+(?:une\s+|la\s+)?(?:grande\s+|grosse\s+)?peur\s+(des?|du|d[’'])\s*(\S.*)$`)

	// "j'ai une tension dans la nuque", "j'ai une boule au ventre"
	nounRe = regexp.MustCompile(`(?i)^j[’']?ai\s+(?:une\s+|la\s+)?(tension|g[êe]ne|douleur|boule|oppression|angoisse|tristesse|col[èe]re)\s+(\S.*)$`)
)

// NormalizeIntake rewrites a raw symptom/emotion phrase into its canonical
// "<noun> <complement>" form. Unrecognized constructions are returned
// cleaned but otherwise unchanged, so the function never fails and is
// idempotent: canonical forms no longer match any rewrite pattern.
func NormalizeIntake(raw string) string {
	clean := whitespaceRe.ReplaceAllString(strings.TrimSpace(raw), " ")
	if clean == "" {
		return ""
	}

	if m := malRe.FindStringSubmatch(clean); m != nil {
		return "mal " + joinParticle(m[1], m[2])
	}
	if m := peurRe.FindStringSubmatch(clean); m != nil {
		return "peur " + joinParticle(m[1], m[2])
	}
	if m := nounRe.FindStringSubmatch(clean); m != nil {
		return strings.ToLower(m[1]) + " " + m[2]
	}
	return clean
}

// joinParticle glues a captured particle to the complement. Elided
// particles ("l'", "d'") attach directly; all others take a space.
func joinParticle(particle, complement string) string {
	p := strings.ToLower(whitespaceRe.ReplaceAllString(particle, " "))
	if strings.HasSuffix(p, "'") || strings.HasSuffix(p, "’") {
		return p + complement
	}
	return p + " " + complement
}

// IsMasculine reports whether the normalized intake takes masculine
// agreement. Only "mal" is masculine among the nouns the normalizer can
// produce; every other leading noun agrees as feminine. This is not
// general gender detection.
func IsMasculine(intake string) bool {
	n := strings.ToLower(NormalizeIntake(intake))
	return n == "mal" || strings.HasPrefix(n, "mal ")
}
