package mode

import (
	"errors"
	"testing"
	"time"
)

// TestPresets verifies the constants of every mode after reset
func TestPresets(t *testing.T) {
	tests := []struct {
		mode     *Mode
		ammo     int
		ducks    int
		lives    int
		limit    time.Duration
		modifier bool
	}{
		{Classic(), 3, 1, 3, 15 * time.Second, false},
		{ClassicSquared(), 3, 2, 3, 30 * time.Second, false},
		{Aduckalypse(), 20, 15, 3, 0, false},
		{FastFinger(), 30, 15, 5, 90 * time.Second, true},
		{Test(), 5, 1, 1, 60 * time.Second, false},
	}
	for _, tt := range tests {
		t.Run(tt.mode.Name, func(t *testing.T) {
			m := tt.mode
			if m.Ammo != tt.ammo || m.Ducks != tt.ducks || m.Lives != tt.lives {
				t.Errorf("ammo/ducks/lives = %d/%d/%d", m.Ammo, m.Ducks, m.Lives)
			}
			if m.TimeLimit != tt.limit || m.HasTimeLimit() != (tt.limit > 0) {
				t.Errorf("time limit = %v", m.TimeLimit)
			}
			if m.ShotModifier != tt.modifier {
				t.Errorf("shot modifier = %v", m.ShotModifier)
			}
			if m.Difficulty != 1 || m.Round != 1 {
				t.Errorf("difficulty/round = %d/%d", m.Difficulty, m.Round)
			}
		})
	}
}

// TestLevelProgression verifies five rounds per difficulty level
func TestLevelProgression(t *testing.T) {
	m := Classic()
	for i := 2; i <= RoundsPerLevel; i++ {
		m.UpdateState()
		if m.Round != i || m.Difficulty != 1 {
			t.Fatalf("step %d: round %d difficulty %d", i, m.Round, m.Difficulty)
		}
	}
	m.UpdateState()
	if m.Round != 1 || m.Difficulty != 2 {
		t.Errorf("after wrap: round %d difficulty %d", m.Round, m.Difficulty)
	}
	if m.TimeLimit != 15*time.Second {
		t.Errorf("classic time limit changed to %v", m.TimeLimit)
	}
}

// TestFastFingerSchedule verifies the shrinking limits and single difficulty bump
func TestFastFingerSchedule(t *testing.T) {
	m := FastFinger()
	want := []time.Duration{75 * time.Second, 60 * time.Second, 45 * time.Second, 30 * time.Second, 90 * time.Second}
	for i, w := range want {
		m.UpdateState()
		if m.TimeLimit != w {
			t.Errorf("step %d: limit %v, want %v", i+1, m.TimeLimit, w)
		}
	}
	if m.Difficulty != 2 || m.Round != 1 {
		t.Errorf("difficulty %d round %d, want 2 and 1", m.Difficulty, m.Round)
	}
}

// TestResetGame verifies progress and schedule are restored
func TestResetGame(t *testing.T) {
	m := FastFinger()
	m.UpdateState()
	m.UpdateState()
	m.ResetGame()
	if m.Round != 1 || m.Difficulty != 1 || m.TimeLimit != 90*time.Second {
		t.Errorf("reset mode = %+v", m)
	}
}

// TestByName verifies lookup and the debug gate on Test Mode
func TestByName(t *testing.T) {
	m, err := ByName("aduckalypse now", false)
	if err != nil || m.Name != "Aduckalypse Now" {
		t.Fatalf("ByName = %v, %v", m, err)
	}
	if _, err := ByName("Test Mode", false); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("Test Mode without debug: err = %v", err)
	}
	if _, err := ByName("Test Mode", true); err != nil {
		t.Errorf("Test Mode with debug: %v", err)
	}
	if len(All(false)) != 4 || len(All(true)) != 5 {
		t.Errorf("All sizes = %d/%d", len(All(false)), len(All(true)))
	}
}
