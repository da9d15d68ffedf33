package gate

import "strings"

// Decision is the operator's answer at a gate.
type Decision int

const (
	// Retry re-runs whatever the gate guards.
	Retry Decision = iota
	// ForceContinue accepts the current state and moves on.
	ForceContinue
	// Cancel stops the whole run.
	Cancel
)

const (
	forceContinueToken = "c"
	cancelToken        = "n"
)

func (d Decision) String() string {
	switch d {
	case ForceContinue:
		return "force_continue"
	case Cancel:
		return "cancel"
	default:
		return "retry"
	}
}

// ParseAnswer maps a raw input line to a Decision. Matching is
// case-insensitive and ignores surrounding whitespace. Unrecognised input,
// and "c" when force-continue is not offered, means Retry.
func ParseAnswer(raw string, allowForceContinue bool) Decision {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case cancelToken:
		return Cancel
	case forceContinueToken:
		if allowForceContinue {
			return ForceContinue
		}
		return Retry
	default:
		return Retry
	}
}

// RetryPrompt is the standard question asked after a failed verification.
func RetryPrompt(allowForceContinue bool) string {
	if allowForceContinue {
		return "Press Enter to try again, 'c' to continue, or 'n' to cancel:"
	}
	return "Press Enter to try again or 'n' to cancel:"
}
