package chat

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/apaise/internal/intake"
)

// systemInstructions are the fixed guide instructions handed to the
// completion backend with every forwarded turn.
const systemInstructions = `Tu es un guide bienveillant d'auto-aide par l'EFT (Emotional Freedom Techniques).
Tu accompagnes la personne pas à pas : accueil de l'émotion ou de la sensation,
évaluation de son intensité de 0 à 10 (SUD), phrase de préparation, ronde de
tapping sur les points, puis réévaluation de l'intensité.

Règles :
- Tu tutoies la personne et tu restes chaleureux, simple et concret.
- Une seule question ou consigne à la fois, en quelques phrases courtes.
- Tu reprends toujours les mots exacts de la personne pour décrire ce qu'elle ressent.
- Tu ne poses aucun diagnostic et tu ne donnes aucun conseil médical.
- Si l'intensité ne baisse pas après deux rondes, tu proposes de préciser l'aspect travaillé.`

// buildSystemPrompt extends the fixed instructions with deterministic
// context pulled from the latest utterance: the announced SUD rating and,
// when the utterance is a recognized self-report construction, a
// grammatically agreed setup statement the guide can reuse verbatim.
func buildSystemPrompt(latest string) string {
	var b strings.Builder
	b.WriteString(systemInstructions)

	if sud, ok := intake.ParseSUD(latest); ok {
		fmt.Fprintf(&b, "\n\nIntensité (SUD) annoncée dans le dernier message : %d/10.", sud)
	}

	clean := strings.Join(strings.Fields(latest), " ")
	if norm := intake.NormalizeIntake(latest); norm != "" && !strings.EqualFold(norm, clean) {
		article := "cette"
		if intake.IsMasculine(norm) {
			article = "ce"
		}
		fmt.Fprintf(&b,
			"\n\nPhrase de préparation suggérée : « Même si j'ai %s %s, je m'accepte profondément et complètement. »",
			article, intake.BuildAspect(latest, ""))
	}

	return b.String()
}
