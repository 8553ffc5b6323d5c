package safety

import "regexp"

// Pattern tables for the crisis classifier. Kept as explicit package data
// so the classification is auditable and testable independent of the
// request plumbing. Order inside a table is not significant; the tables
// themselves are checked in a fixed order (physical before suicide).

// physicalPatterns flag utterances describing a possible medical
// emergency: cardiac-type chest pain, radiating arm pain, breathing
// difficulty.
var physicalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(douleur|mal|serrement|oppression)[^.!?]{0,30}(poitrine|thorax|cœur|coeur)`),
	regexp.MustCompile(`(?i)(poitrine|thorax)[^.!?]{0,30}(serr|oppress|écras|ecras)`),
	regexp.MustCompile(`(?i)(douleur|mal)[^.!?]{0,30}bras gauche`),
	regexp.MustCompile(`(?i)irradie[^.!?]{0,20}(bras|mâchoire|machoire)`),
	regexp.MustCompile(`(?i)(du mal|difficult\S*|n[’']arrive (plus|pas)) à respirer`),
	regexp.MustCompile(`(?i)je ne peux (plus|pas) respirer`),
	regexp.MustCompile(`(?i)(j[’']étouffe|j[’']etouffe|je suffoque)`),
	regexp.MustCompile(`(?i)crise cardiaque`),
	regexp.MustCompile(`(?i)chest pain`),
	regexp.MustCompile(`(?i)(can[’']?t|cannot) breathe`),
}

// suicidePatterns flag explicit self-harm intent and its common
// circumlocutions (wanting to die, disappear, end it).
var suicidePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)suicid`),
	regexp.MustCompile(`(?i)me (tuer|supprimer|faire du mal)`),
	regexp.MustCompile(`(?i)mettre fin à (ma vie|mes jours)`),
	regexp.MustCompile(`(?i)\ben finir\b`),
	regexp.MustCompile(`(?i)(envie|idées?) de mourir`),
	regexp.MustCompile(`(?i)plus envie de vivre`),
	regexp.MustCompile(`(?i)plus (envie|la force) de continuer`),
	regexp.MustCompile(`(?i)idées noires`),
	regexp.MustCompile(`(?i)(veux|voudrais|aimerais) (mourir|disparaître|disparaitre)`),
	regexp.MustCompile(`(?i)kill myself`),
	regexp.MustCompile(`(?i)want to die`),
	regexp.MustCompile(`(?i)end it all`),
}

// benignPatterns whitelist joking or quoting contexts. They suppress a
// suicide match only; a physical-emergency match is never down-ranked by
// joke detection.
var benignPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)je (rigole|plaisante|déconne|deconne)`),
	regexp.MustCompile(`(?i)c[’']est (une blague|pour rire)`),
	regexp.MustCompile(`(?i)\b(mdr|lol|ptdr)\b`),
	regexp.MustCompile(`(?i)(just )?(kidding|joking)`),
	regexp.MustCompile(`(?i)dans (un film|une série|une serie|un livre|une chanson)`),
}
