package game

import "testing"

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name       string
		votes      int
		fake       int
		corruption int
		timeLeft   int
		want       Verdict
	}{
		{"running", 1000, 0, 50, 40, VerdictContinue},
		{"win by real votes", VoteTarget, 0, 50, 40, VerdictWin},
		{"win by fake votes", 1000, VoteTarget - 1000, 50, 40, VerdictWin},
		{"win beats corruption", 30000, 20000, 100, 40, VerdictWin},
		{"win beats timeout", 50000, 0, 10, 0, VerdictWin},
		{"win beats both", 50000, 0, 100, 0, VerdictWin},
		{"corruption", 1000, 0, 100, 40, VerdictCorruptionLoss},
		{"corruption beats timeout", 1000, 0, 100, 0, VerdictCorruptionLoss},
		{"timeout", 49999, 0, 99, 0, VerdictTimeoutLoss},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewRunState(testCharacter(), StartValues{})
			s.AddVotes(tt.votes)
			s.AddFakeVotes(tt.fake)
			s.SetCorruption(tt.corruption)
			s.SetTimeLeft(tt.timeLeft)

			if got := Evaluate(s); got != tt.want {
				t.Errorf("Evaluate() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateDecidedRun(t *testing.T) {
	s := NewRunState(testCharacter(), StartValues{})
	s.SetTimeLeft(0)
	s.conclude(OutcomeLost, CauseTimeout)

	if got := Evaluate(s); got != VerdictContinue {
		t.Errorf("Evaluate() on decided run = %v, expected continue", got)
	}
}

func TestPhaseTransitions(t *testing.T) {
	tests := []struct {
		from, to Phase
		want     bool
	}{
		{PhaseLobby, PhaseCharacterSelect, true},
		{PhaseLobby, PhasePlaying, false},
		{PhaseCharacterSelect, PhasePlaying, true},
		{PhaseCharacterSelect, PhaseGameOver, false},
		{PhasePlaying, PhaseGameOver, true},
		{PhasePlaying, PhaseCharacterSelect, false},
		{PhaseGameOver, PhasePlaying, false},
		{PhaseGameOver, PhaseLobby, true},
		{PhasePlaying, PhaseLobby, true},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%v.CanTransitionTo(%v) = %v, expected %v", tt.from, tt.to, got, tt.want)
		}
	}
}
