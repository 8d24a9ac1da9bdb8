package loop

import "time"

// Game configuration constants.

// Timing
const (
	// FrameBudget is the minimum wall time of one tick.
	FrameBudget = 17 * time.Millisecond
	// sleepSlack is how close to the budget the pacer switches from sleeping to yielding.
	sleepSlack = 2 * time.Millisecond
)

// Playfield
const (
	DecalMaxCount = 2
	CloudsMin     = 5
	CloudsMax     = 7
	// MaxDucks bounds the live duck list. Reaching it stops further spawns for the session.
	MaxDucks = 512
)

// Inactivity, used by the ssh frontend.
const (
	InactivityWarnUser       = 90 * time.Second
	InactivityDisconnectUser = 120 * time.Second
)
