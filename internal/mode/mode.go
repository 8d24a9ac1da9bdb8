// Package mode defines the game modes and how each one progresses between rounds.
package mode

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownMode is returned by ByName when no mode matches.
var ErrUnknownMode = errors.New("unknown game mode")

// RoundsPerLevel is how many rounds make up one difficulty level.
const RoundsPerLevel = 5

// Rule selects the progression applied when a round is cleared.
type Rule int

const (
	// RuleLevels advances the round and, every RoundsPerLevel rounds, the difficulty.
	RuleLevels Rule = iota
	// RuleTimeSchedule walks a shrinking time limit per round and raises the
	// difficulty when the schedule wraps.
	RuleTimeSchedule
)

// fastFingerSchedule is the time limit for rounds 1 to RoundsPerLevel.
var fastFingerSchedule = [RoundsPerLevel]time.Duration{
	90 * time.Second,
	75 * time.Second,
	60 * time.Second,
	45 * time.Second,
	30 * time.Second,
}

// Settings are the per-mode constants restored by ResetGame.
type Settings struct {
	Name         string
	Description  string
	Ammo         int
	Ducks        int
	Lives        int
	TimeLimit    time.Duration // zero means no limit
	ShotModifier bool
	Rule         Rule
	DebugOnly    bool
}

// Mode is a game mode together with its progress through the levels.
type Mode struct {
	Settings
	Difficulty int
	Round      int
}

// New builds a mode from settings, reset to level 1.
func New(s Settings) *Mode {
	m := &Mode{Settings: s}
	m.ResetGame()
	return m
}

var presets = []Settings{
	{
		Name:        "Classic Quacks",
		Description: "3 shots, 1 duck, 5 rounds per level, 3 lives & 15 second time limit",
		Ammo:        3,
		Ducks:       1,
		Lives:       3,
		TimeLimit:   15 * time.Second,
	},
	{
		Name:        "Classic Quacks*2",
		Description: "3 shots, 2 ducks, 5 rounds per level, 3 lives & 30 second time limit",
		Ammo:        3,
		Ducks:       2,
		Lives:       3,
		TimeLimit:   30 * time.Second,
	},
	{
		Name:        "Aduckalypse Now",
		Description: "20 shots, 15 ducks, 5 rounds per level, 3 lives & no time limit",
		Ammo:        20,
		Ducks:       15,
		Lives:       3,
	},
	{
		Name:         "Fast Draw McDuck",
		Description:  "30 shots, 15 ducks, 5 lives, shrinking time limit & fewer points per wasted shot",
		Ammo:         30,
		Ducks:        15,
		Lives:        5,
		TimeLimit:    fastFingerSchedule[0],
		ShotModifier: true,
		Rule:         RuleTimeSchedule,
	},
	{
		Name:        "Test Mode",
		Description: "Special mode for testing",
		Ammo:        5,
		Ducks:       1,
		Lives:       1,
		TimeLimit:   60 * time.Second,
		DebugOnly:   true,
	},
}

// Classic is one duck, three shots, fifteen seconds.
func Classic() *Mode { return New(presets[0]) }

// ClassicSquared doubles the ducks and the time of Classic.
func ClassicSquared() *Mode { return New(presets[1]) }

// Aduckalypse floods the screen with ducks and has no time limit.
func Aduckalypse() *Mode { return New(presets[2]) }

// FastFinger shortens the time limit every round and scores accuracy.
func FastFinger() *Mode { return New(presets[3]) }

// Test is a short mode available only in debug builds.
func Test() *Mode { return New(presets[4]) }

// All returns fresh instances of every mode, in menu order. Debug-only modes
// are included only when debug is set.
func All(debug bool) []*Mode {
	modes := make([]*Mode, 0, len(presets))
	for _, s := range presets {
		if s.DebugOnly && !debug {
			continue
		}
		modes = append(modes, New(s))
	}
	return modes
}

// ByName returns a fresh mode whose name matches, ignoring case.
func ByName(name string, debug bool) (*Mode, error) {
	for _, m := range All(debug) {
		if strings.EqualFold(m.Name, strings.TrimSpace(name)) {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// ResetGame returns the mode to level 1, round 1 with its default settings.
func (m *Mode) ResetGame() {
	for _, s := range presets {
		if s.Name == m.Name {
			m.Settings = s
			break
		}
	}
	m.Difficulty = 1
	m.Round = 1
}

// UpdateState applies the progression rule. Call once per cleared round.
func (m *Mode) UpdateState() {
	switch m.Rule {
	case RuleTimeSchedule:
		m.Round++
		if m.Round > RoundsPerLevel {
			m.Round = 1
			m.Difficulty++
		}
		m.TimeLimit = fastFingerSchedule[m.Round-1]
	default:
		if m.Round >= RoundsPerLevel {
			m.Round = 1
			m.Difficulty++
		} else {
			m.Round++
		}
	}
}

// HasTimeLimit reports whether rounds are timed.
func (m *Mode) HasTimeLimit() bool {
	return m.TimeLimit > 0
}

func (m *Mode) String() string {
	return m.Name
}
