package intake

import (
	"regexp"
	"strings"
)

var (
	leadingPunctRe = regexp.MustCompile(`^[\s,;:.\-–—]+`)
	commaSpacingRe = regexp.MustCompile(`\s*,\s*`)
)

// BuildAspect composes the canonical reference phrase an acceptance
// statement is built around: the normalized intake, the gender-agreeing
// linking phrase, and the cleaned context. With an empty context the
// normalized intake stands alone, never a dangling "lié à".
//
// "J'ai mal au genou" + "quand je cours" → "mal au genou lié à quand je cours".
func BuildAspect(rawIntake, shortContext string) string {
	intake := NormalizeIntake(rawIntake)
	ctx := cleanContext(shortContext)
	if ctx == "" {
		return intake
	}

	link := "liée à"
	if IsMasculine(intake) {
		link = "lié à"
	}
	return intake + " " + link + " " + ctx
}

// cleanContext strips leading punctuation, standardizes comma spacing and
// collapses runs of whitespace. Idempotent.
func cleanContext(ctx string) string {
	c := leadingPunctRe.ReplaceAllString(ctx, "")
	c = whitespaceRe.ReplaceAllString(c, " ")
	c = commaSpacingRe.ReplaceAllString(c, ", ")
	return strings.TrimSpace(c)
}
