package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate_NormalCleanTurnForwards(t *testing.T) {
	d := Evaluate(StateNormal, ReasonNone, "j'ai mal au genou quand je cours")
	assert.Equal(t, StateNormal, d.Next)
	assert.False(t, d.Intercepted)
	assert.Equal(t, CrisisNone, d.Crisis)
	assert.Empty(t, d.Message)
}

func TestEvaluate_NormalSuicideSignalAsks(t *testing.T) {
	d := Evaluate(StateNormal, ReasonNone, "je n'ai plus envie de vivre")
	assert.Equal(t, StateAwaitingSuicideConfirm, d.Next)
	assert.True(t, d.Intercepted)
	assert.Equal(t, CrisisAsk, d.Crisis)
	assert.Equal(t, ReasonSuicide, d.Reason)
	assert.True(t, d.FocusInput)
	assert.False(t, d.LockInput)
	assert.NotEmpty(t, d.Message)
}

func TestEvaluate_NormalMedicalSignalAsks(t *testing.T) {
	d := Evaluate(StateNormal, ReasonNone, "j'ai une douleur dans la poitrine")
	assert.Equal(t, StateAwaitingMedicalConfirm, d.Next)
	assert.Equal(t, CrisisAsk, d.Crisis)
	assert.Equal(t, ReasonMedical, d.Reason)
}

func TestEvaluate_AwaitingSuicide_YesBlocks(t *testing.T) {
	for _, reply := range []string{"oui", "Oui, souvent", "ouais", "yes"} {
		d := Evaluate(StateAwaitingSuicideConfirm, ReasonSuicide, reply)
		assert.Equal(t, StateBlocked, d.Next, "reply: %q", reply)
		assert.Equal(t, CrisisBlock, d.Crisis, "reply: %q", reply)
		assert.True(t, d.LockInput, "reply: %q", reply)
		assert.Contains(t, d.Message, "3114", "reply: %q", reply)
	}
}

func TestEvaluate_AwaitingSuicide_NoReleases(t *testing.T) {
	for _, reply := range []string{"non", "Non pas du tout", "no", "nan"} {
		d := Evaluate(StateAwaitingSuicideConfirm, ReasonSuicide, reply)
		assert.Equal(t, StateNormal, d.Next, "reply: %q", reply)
		assert.Equal(t, CrisisNone, d.Crisis, "reply: %q", reply)
		assert.True(t, d.Intercepted, "reply: %q", reply)
		assert.True(t, d.FocusInput, "reply: %q", reply)
	}
}

func TestEvaluate_AwaitingSuicide_AmbiguousReasks(t *testing.T) {
	replies := []string{
		"je ne sais pas",
		"c'est compliqué",
		"pourquoi tu demandes ça ?",
		"",
	}
	for _, reply := range replies {
		d := Evaluate(StateAwaitingSuicideConfirm, ReasonSuicide, reply)
		assert.Equal(t, StateAwaitingSuicideConfirm, d.Next, "reply: %q", reply)
		assert.Equal(t, CrisisAsk, d.Crisis, "reply: %q", reply)
		assert.Contains(t, d.Message, "oui ou par non", "reply: %q", reply)
	}
}

func TestEvaluate_AwaitingMedical_Branches(t *testing.T) {
	d := Evaluate(StateAwaitingMedicalConfirm, ReasonMedical, "oui")
	assert.Equal(t, StateBlocked, d.Next)
	assert.Contains(t, d.Message, "15")
	assert.True(t, d.LockInput)

	d = Evaluate(StateAwaitingMedicalConfirm, ReasonMedical, "non c'était juste une gêne")
	assert.Equal(t, StateNormal, d.Next)

	d = Evaluate(StateAwaitingMedicalConfirm, ReasonMedical, "peut-être")
	assert.Equal(t, StateAwaitingMedicalConfirm, d.Next)
	assert.Equal(t, ReasonMedical, d.Reason)
}

func TestEvaluate_BlockedIsAbsorbing(t *testing.T) {
	replies := []string{"non", "je vais mieux", "bonjour", "oui"}
	for _, reply := range replies {
		d := Evaluate(StateBlocked, ReasonSuicide, reply)
		assert.Equal(t, StateBlocked, d.Next, "reply: %q", reply)
		assert.Equal(t, CrisisBlock, d.Crisis, "reply: %q", reply)
		assert.True(t, d.Intercepted, "reply: %q", reply)
		assert.True(t, d.LockInput, "reply: %q", reply)
	}
}

func TestEvaluate_BlockedKeepsMedicalDirective(t *testing.T) {
	d := Evaluate(StateBlocked, ReasonMedical, "aide")
	assert.Contains(t, d.Message, "15")
	assert.Equal(t, ReasonMedical, d.Reason)
}

func TestParseConfirmation_PrefixPolicy(t *testing.T) {
	assert.Equal(t, confirmYes, parseConfirmation("  OUI  "))
	assert.Equal(t, confirmYes, parseConfirmation("oui enfin je crois"))
	assert.Equal(t, confirmNo, parseConfirmation("Non."))
	assert.Equal(t, confirmNo, parseConfirmation("pas du tout"))
	// Elaboration without a leading token stays ambiguous on purpose.
	assert.Equal(t, confirmAmbiguous, parseConfirmation("je crois que oui"))
	assert.Equal(t, confirmAmbiguous, parseConfirmation("bof"))
}
