// Package game implements the election run: the resource model, the action
// catalog, the countdown timer, outcome evaluation and the phase controller.
// It has no knowledge of terminals or text generation backends.
package game

import "time"

// Fixed rules of a run. These are part of the game design and are not
// read from configuration.
const (
	VoteTarget          = 50000 // votes + fake votes needed to win
	RunDuration         = 90    // seconds on the clock at run start
	ManualVoteIncrement = 150   // votes per manual click
	NewsLogSize         = 5     // headlines kept, most recent first
	MeterMax            = 100   // upper bound for corruption and support

	TickInterval        = time.Second
	CorruptionLossDelay = 1500 * time.Millisecond
)
