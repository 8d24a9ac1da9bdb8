// Package render defines the frame snapshot the game loop hands to a display.
package render

import (
	"github.com/tomz197/duckhunter/internal/object"
	"github.com/tomz197/duckhunter/internal/score"
)

// Surface displays frames. Draw is called once per tick from the loop goroutine.
type Surface interface {
	// Size returns the logical playfield the surface scales from.
	Size() object.Screen
	Draw(f *Frame) error
}

// Banner is a message shown over the playfield.
type Banner int

const (
	BannerNone Banner = iota
	BannerPaused
	BannerFlyAway
	BannerRoundEnd
	BannerGameOver
	BannerOptions
)

func (b Banner) String() string {
	switch b {
	case BannerPaused:
		return "PAUSED"
	case BannerFlyAway:
		return "FLY AWAY!"
	case BannerRoundEnd:
		return "ROUND COMPLETE"
	case BannerGameOver:
		return "GAME OVER"
	case BannerOptions:
		return "OPTIONS"
	}
	return ""
}

// HUD is the status shown in the toolbars.
type HUD struct {
	Player     string
	Mode       string
	Score      int
	Lives      int
	TotalLives int
	Difficulty int
	Round      int
	Shots      int
	TotalShots int
	DucksShot  int
	DucksTotal int
	TimeLeft   string
	FPS        int
	ShowFPS    bool
}

// Popup is the points awarded for the last hit, drawn where the shot landed.
type Popup struct {
	X, Y   int
	Points int
}

// Frame is an immutable snapshot of one tick.
type Frame struct {
	FlyAway bool
	Decals  []object.Instance
	Ducks   []object.Instance
	Clouds  []object.Instance
	Popup   *Popup
	HUD     HUD
	Banner  Banner

	// Debug lines are set only in debug mode.
	Debug []string
	// Scores and Options are set with the game over and options banners.
	Scores  []score.Entry
	Options string
}

// Layers returns the sprites in paint order: decals, ducks, then clouds.
func (f *Frame) Layers() [][]object.Instance {
	return [][]object.Instance{f.Decals, f.Ducks, f.Clouds}
}

// ToolbarHeight is the height of each of the top and bottom toolbars.
func ToolbarHeight(s object.Screen) int {
	return s.Height / 10
}
