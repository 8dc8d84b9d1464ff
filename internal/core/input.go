package core

// Command represents a semantic player intent, abstracted from physical key presses.
// The platform maps keys to commands; the game controller only sees the result.
type Command int

const (
	CommandNone    Command = iota
	CommandUp              // Up arrow, k - move cursor up
	CommandDown            // Down arrow, j - move cursor down
	CommandConfirm         // Enter - confirm selection, start run, seal a deal
	CommandBack            // Esc, n - dismiss a modal
	CommandVote            // Space, v - manual vote
	CommandPromise         // 1 - promise rally
	CommandStuff           // 2 - ballot stuffing
	CommandAlly            // a, d, r, m - open an ally's modal
	CommandReplay          // p - play again after game over
	CommandQuit            // Q, Ctrl+C - exit
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "None"
	case CommandUp:
		return "Up"
	case CommandDown:
		return "Down"
	case CommandConfirm:
		return "Confirm"
	case CommandBack:
		return "Back"
	case CommandVote:
		return "Vote"
	case CommandPromise:
		return "Promise"
	case CommandStuff:
		return "Stuff"
	case CommandAlly:
		return "Ally"
	case CommandReplay:
		return "Replay"
	case CommandQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
