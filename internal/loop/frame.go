package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/duckhunter/internal/object"
	"github.com/tomz197/duckhunter/internal/render"
)

// Frame snapshots the session for the render surface.
func (e *Engine) Frame() *render.Frame {
	s := &e.state
	f := &render.Frame{
		FlyAway: s.FlyAway,
		Clouds:  instances(s.Clouds),
		HUD:     e.hud(),
		Banner:  e.banner(),
	}
	if e.opts.Decals {
		f.Decals = instances(s.Decals)
	}
	// Ducks stay hidden while paused so the pause cannot be used to aim.
	if !s.Paused {
		f.Ducks = make([]object.Instance, 0, len(s.Ducks))
		for _, d := range s.Ducks {
			f.Ducks = append(f.Ducks, d.Instance())
		}
		if s.popup != nil && e.popupVisible() {
			p := *s.popup
			f.Popup = &p
		}
	}

	switch f.Banner {
	case render.BannerGameOver:
		f.Scores = append(f.Scores, s.GameOver...)
	case render.BannerOptions:
		f.Options = e.opts.String()
		if e.scores != nil {
			f.Scores = e.scores.Top()
		}
	}
	if e.opts.Debug {
		f.Debug = e.debugLines()
	}
	return f
}

func instances(decorations []*object.Decoration) []object.Instance {
	out := make([]object.Instance, 0, len(decorations))
	for _, d := range decorations {
		out = append(out, d.Instance())
	}
	return out
}

// popupVisible keeps the points on screen while a shot duck is still falling.
func (e *Engine) popupVisible() bool {
	for _, d := range e.state.Ducks {
		switch d.State() {
		case object.DuckShot, object.DuckDying:
			return true
		}
	}
	return false
}

func (e *Engine) banner() render.Banner {
	s := &e.state
	switch {
	case s.GameOver != nil:
		return render.BannerGameOver
	case s.ShowOptions:
		return render.BannerOptions
	case s.Paused:
		return render.BannerPaused
	case s.FlyAway:
		return render.BannerFlyAway
	case s.RoundCompleted:
		return render.BannerRoundEnd
	}
	return render.BannerNone
}

func (e *Engine) hud() render.HUD {
	s := &e.state
	if !s.RoundCompleted && !s.FlyAway {
		s.timeString = "--:--"
		if left, limited := e.TimeLeft(); limited {
			s.timeString = formatTimeLeft(left)
		}
	}
	h := render.HUD{
		Player:     e.player.Name,
		Mode:       e.mode.Name,
		Score:      e.player.Score,
		Lives:      e.player.Lives(),
		TotalLives: e.player.TotalLives(),
		Difficulty: e.mode.Difficulty,
		Round:      e.mode.Round,
		Shots:      e.player.Shots(),
		TotalShots: e.player.TotalShots(),
		DucksShot:  s.DucksShot,
		DucksTotal: e.mode.Ducks,
		TimeLeft:   s.timeString,
		ShowFPS:    s.ShowFPS,
	}
	if s.usedTime > 0 {
		h.FPS = int(time.Second / s.usedTime)
	}
	return h
}

// formatTimeLeft renders d as m:ss.t, clamping expired time to zero.
func formatTimeLeft(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	seconds := int((d % time.Minute) / time.Second)
	tenths := int((d % time.Second) / (100 * time.Millisecond))
	return fmt.Sprintf("%d:%02d.%d", minutes, seconds, tenths)
}

func (e *Engine) debugLines() []string {
	s := &e.state
	lines := make([]string, 0, len(s.Ducks)+2)
	click := "none"
	if s.lastClick != nil {
		click = fmt.Sprintf("%d,%d", s.lastClick.X, s.lastClick.Y)
	}
	lines = append(lines,
		"Pointer clicked at: "+click,
		fmt.Sprintf("Number of Ducks: %d", len(s.Ducks)))
	for i, d := range s.Ducks {
		lines = append(lines, fmt.Sprintf("#%d: dx: %d, dy: %d, x: %d, y: %d, %v",
			i, d.VX, d.VY, d.X, d.Y, d.State()))
	}
	return lines
}
