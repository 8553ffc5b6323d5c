package safety

// Gate-authored replies. These short-circuit the dialogue backend, so
// their wording is fixed here rather than generated.
const (
	askMedical = "Avant de continuer : ce que tu décris peut être un signe d'urgence " +
		"médicale. Est-ce une urgence médicale en ce moment ? Réponds simplement par oui ou par non."

	askSuicide = "Je préfère m'arrêter un instant, ce que tu écris me semble important. " +
		"As-tu des pensées suicidaires en ce moment ? Réponds simplement par oui ou par non."

	blockMedical = "Appelle immédiatement le 15 (SAMU) ou le 112. " +
		"Si tu le peux, préviens une personne proche pour ne pas rester seul·e. " +
		"Cette conversation ne remplace pas les secours, elle est suspendue."

	blockSuicide = "Tu n'es pas seul·e. Appelle maintenant le 3114 (prévention du suicide, " +
		"gratuit, 24h/24) ou le 15. En cas de danger immédiat, appelle le 112. " +
		"Cette conversation est suspendue pour ta sécurité."

	reaskMedical = "Je n'ai pas compris ta réponse. Peux-tu répondre par oui ou par non : " +
		"est-ce une urgence médicale en ce moment ?"

	reaskSuicide = "Je n'ai pas compris ta réponse. Peux-tu répondre par oui ou par non : " +
		"as-tu des pensées suicidaires en ce moment ?"

	releaseMessage = "Merci pour ta réponse, on peut continuer. " +
		"Dis-moi ce que tu ressens en ce moment."
)

func blockMessage(reason Reason) string {
	if reason == ReasonMedical {
		return blockMedical
	}
	return blockSuicide
}

func reaskMessage(reason Reason) string {
	if reason == ReasonMedical {
		return reaskMedical
	}
	return reaskSuicide
}
