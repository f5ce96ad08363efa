package session

// Outcome reports what a single operation did to the session.
type Outcome int

// Outcomes returned by SelectLetter and SubmitCurrentWord.
const (
	Selected Outcome = iota
	Accepted
	Won
	ContinuationMismatch
	AdjacentSideReuse
	WordTooShort
	UnknownWord
)

// Rejected reports whether the operation was refused.
func (o Outcome) Rejected() bool {
	switch o {
	case ContinuationMismatch, AdjacentSideReuse, WordTooShort, UnknownWord:
		return true
	default:
		return false
	}
}

func (o Outcome) String() string {
	switch o {
	case Selected:
		return "selected"
	case Accepted:
		return "accepted"
	case Won:
		return "won"
	case ContinuationMismatch:
		return "continuation-mismatch"
	case AdjacentSideReuse:
		return "adjacent-side-reuse"
	case WordTooShort:
		return "word-too-short"
	case UnknownWord:
		return "unknown-word"
	default:
		return "unknown"
	}
}

// Phase is the coarse state of word construction.
type Phase string

const (
	PhaseIdle                 Phase = "IDLE"                  // No word in progress, any first letter allowed
	PhaseAwaitingContinuation Phase = "AWAITING_CONTINUATION" // No word in progress, first letter is fixed
	PhaseBuilding             Phase = "BUILDING"              // Word in progress
)

func (p Phase) String() string {
	return string(p)
}
