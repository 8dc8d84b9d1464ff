package game

// Verdict is the result of evaluating a run after a mutation.
type Verdict int

const (
	VerdictContinue Verdict = iota
	VerdictWin
	VerdictCorruptionLoss
	VerdictTimeoutLoss
)

// String returns a human-readable name for the verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictContinue:
		return "continue"
	case VerdictWin:
		return "win"
	case VerdictCorruptionLoss:
		return "corruption-loss"
	case VerdictTimeoutLoss:
		return "timeout-loss"
	default:
		return "unknown"
	}
}

// Evaluate decides whether a run has ended. The checks run in a fixed
// priority: reaching the vote target wins even if corruption maxed out or
// time ran out in the same update. A decided run always continues, so a
// verdict can never override an existing outcome.
func Evaluate(s *RunState) Verdict {
	if s.Terminal() {
		return VerdictContinue
	}
	if s.TotalVotes() >= VoteTarget {
		return VerdictWin
	}
	if s.Corruption() >= MeterMax {
		return VerdictCorruptionLoss
	}
	if s.TimeLeft() <= 0 {
		return VerdictTimeoutLoss
	}
	return VerdictContinue
}
