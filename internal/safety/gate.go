package safety

import "strings"

// State is the per-session position in the confirmation protocol.
type State string

const (
	StateNormal                 State = "normal"
	StateAwaitingSuicideConfirm State = "awaiting_suicide_confirm"
	StateAwaitingMedicalConfirm State = "awaiting_medical_confirm"

	// StateBlocked is absorbing: once a risk is confirmed the session is
	// sealed and no further turn reaches the dialogue backend.
	StateBlocked State = "blocked"
)

// Reason tags which crisis branch produced an ask or a block.
type Reason string

const (
	ReasonNone    Reason = ""
	ReasonMedical Reason = "medical"
	ReasonSuicide Reason = "suicide"
)

// CrisisTag is the outward-facing crisis marker on a turn response.
type CrisisTag string

const (
	CrisisNone  CrisisTag = "none"
	CrisisAsk   CrisisTag = "ask"
	CrisisBlock CrisisTag = "block"
)

// Decision is the gate's verdict on one inbound turn.
type Decision struct {
	Next        State
	Reason      Reason
	Crisis      CrisisTag
	Intercepted bool // true when the turn must not reach the dialogue backend
	Message     string
	LockInput   bool
	FocusInput  bool
}

// Evaluate runs one turn through the safety state machine. It is total:
// every reachable state has a defined verdict for every utterance, so the
// gate never hangs without a response. reason carries the stored crisis
// branch for sessions already awaiting a confirmation or blocked.
func Evaluate(current State, reason Reason, utterance string) Decision {
	switch current {
	case StateAwaitingSuicideConfirm:
		return resolveConfirmation(current, ReasonSuicide, utterance)
	case StateAwaitingMedicalConfirm:
		return resolveConfirmation(current, ReasonMedical, utterance)
	case StateBlocked:
		if reason == ReasonNone {
			reason = ReasonSuicide
		}
		return Decision{
			Next:        StateBlocked,
			Reason:      reason,
			Crisis:      CrisisBlock,
			Intercepted: true,
			Message:     blockMessage(reason),
			LockInput:   true,
		}
	default:
		return evaluateNormal(utterance)
	}
}

func evaluateNormal(utterance string) Decision {
	switch Classify(utterance) {
	case RiskPhysicalEmergency:
		return Decision{
			Next:        StateAwaitingMedicalConfirm,
			Reason:      ReasonMedical,
			Crisis:      CrisisAsk,
			Intercepted: true,
			Message:     askMedical,
			FocusInput:  true,
		}
	case RiskSuicide:
		return Decision{
			Next:        StateAwaitingSuicideConfirm,
			Reason:      ReasonSuicide,
			Crisis:      CrisisAsk,
			Intercepted: true,
			Message:     askSuicide,
			FocusInput:  true,
		}
	default:
		return Decision{Next: StateNormal, Crisis: CrisisNone}
	}
}

func resolveConfirmation(current State, reason Reason, reply string) Decision {
	switch parseConfirmation(reply) {
	case confirmYes:
		return Decision{
			Next:        StateBlocked,
			Reason:      reason,
			Crisis:      CrisisBlock,
			Intercepted: true,
			Message:     blockMessage(reason),
			LockInput:   true,
		}
	case confirmNo:
		return Decision{
			Next:        StateNormal,
			Crisis:      CrisisNone,
			Intercepted: true,
			Message:     releaseMessage,
			FocusInput:  true,
		}
	default:
		return Decision{
			Next:        current,
			Reason:      reason,
			Crisis:      CrisisAsk,
			Intercepted: true,
			Message:     reaskMessage(reason),
			FocusInput:  true,
		}
	}
}

type confirmation int

const (
	confirmAmbiguous confirmation = iota
	confirmYes
	confirmNo
)

// Closed confirmation vocabularies, matched as a prefix of the lowered
// reply. Free-text elaboration on a safety question is deliberately
// treated as non-confirmation: re-asking is cheaper than a false release.
var (
	yesWords = []string{"oui", "ouais", "yes", "yep", "si"}
	noWords  = []string{"non", "no", "nan", "nope", "pas du tout"}
)

func parseConfirmation(reply string) confirmation {
	r := strings.ToLower(strings.TrimSpace(reply))
	for _, w := range noWords {
		if strings.HasPrefix(r, w) {
			return confirmNo
		}
	}
	for _, w := range yesWords {
		if strings.HasPrefix(r, w) {
			return confirmYes
		}
	}
	return confirmAmbiguous
}
