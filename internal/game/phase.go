package game

// Phase is a top-level screen of the game.
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseCharacterSelect
	PhasePlaying
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseCharacterSelect:
		return "character-select"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// CanTransitionTo reports whether the controller may move from p to target.
// Any phase may return to the lobby; that path is the reset/abort route.
func (p Phase) CanTransitionTo(target Phase) bool {
	if target == PhaseLobby {
		return true
	}
	switch p {
	case PhaseLobby:
		return target == PhaseCharacterSelect
	case PhaseCharacterSelect:
		return target == PhasePlaying
	case PhasePlaying:
		return target == PhaseGameOver
	default:
		return false
	}
}
