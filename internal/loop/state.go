package loop

import (
	"time"

	"github.com/tomz197/duckhunter/internal/input"
	"github.com/tomz197/duckhunter/internal/object"
	"github.com/tomz197/duckhunter/internal/render"
	"github.com/tomz197/duckhunter/internal/score"
)

// State holds the round session owned by the loop goroutine.
type State struct {
	Ducks  []*object.Duck
	Decals []*object.Decoration
	Clouds []*object.Decoration

	RoundCompleted bool // no duck in Ducks is alive
	FlyAway        bool // ducks escaped this round
	DucksShot      int
	RoundStart     time.Time

	Paused      bool
	ShowOptions bool
	ShowFPS     bool
	// GameOver holds the final table while the game over screen is up.
	GameOver []score.Entry

	// MaxDucksReached is set once spawning fails and stays set for the session.
	MaxDucksReached bool

	popup      *render.Popup
	lastClick  *input.Click
	pauseMark  time.Time
	usedTime   time.Duration
	timeString string
	// pausedUnderOptions records whether the round was already paused when
	// the options overlay opened.
	pausedUnderOptions bool
}

// AliveDucks counts ducks that can still be shot.
func (s *State) AliveDucks() int {
	n := 0
	for _, d := range s.Ducks {
		if d.Alive() {
			n++
		}
	}
	return n
}
