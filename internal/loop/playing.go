package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/duckhunter/internal/audio"
	"github.com/tomz197/duckhunter/internal/input"
	"github.com/tomz197/duckhunter/internal/object"
	"github.com/tomz197/duckhunter/internal/player"
	"github.com/tomz197/duckhunter/internal/render"
	"github.com/tomz197/duckhunter/internal/score"
)

// Tick runs one update: drain input, advance the world, resolve round and
// game transitions. It does not draw.
func (e *Engine) Tick() {
	if !e.started {
		e.start()
	}

	in := e.input.Drain()
	e.handleKey(in.Key)

	var click *input.Click
	if in.HasClick {
		c := in.Click
		click = &c
	}
	if click != nil && e.state.GameOver != nil {
		e.dismissGameOver()
		click = nil
	}
	if click != nil && click.Button == input.ButtonRight {
		if e.opts.Debug {
			e.reload()
		}
		click = nil
	}

	e.updateWorld(click)
}

func (e *Engine) updateWorld(click *input.Click) {
	if e.state.Paused {
		e.holdTimer()
		return
	}

	if len(e.state.Ducks) == 0 {
		if e.player.HasLivesRemaining() {
			e.ResetRound()
		} else {
			e.gameOver()
		}
		return
	}

	if click != nil {
		e.resolveShot(*click)
	}
	e.updateSprites()
}

// holdTimer moves the round start forward by the time spent paused so the
// remaining time is unchanged on resume.
func (e *Engine) holdTimer() {
	now := e.clock.Now()
	if e.mode.HasTimeLimit() {
		e.state.RoundStart = e.state.RoundStart.Add(now.Sub(e.state.pauseMark))
	}
	e.state.pauseMark = now
}

func (e *Engine) resolveShot(c input.Click) {
	e.state.lastClick = &c

	points, hit := e.CheckForHit(c.X, c.Y)
	if hit {
		e.AddDecal(c.X, c.Y, true)
		e.state.DucksShot++
		e.player.RecordHit(points)
		e.state.popup = &render.Popup{X: c.X, Y: c.Y, Points: points}
		e.audio.Stop(audio.DuckAliveLoop)
		e.audio.Play(audio.GunHit)
		return
	}

	if e.player.Shots() <= 0 {
		e.audio.Play(audio.GunNoAmmo)
		return
	}
	e.player.RecordMiss()
	e.audio.Play(audio.GunMiss)
	e.AddDecal(c.X, c.Y, false)
}

// CheckForHit finds the first alive duck, in list order, whose frame
// contains (x, y) and shoots it. It returns the duck's points and whether a
// duck was hit. Nothing is hit once the player is out of shots.
func (e *Engine) CheckForHit(x, y int) (int, bool) {
	if e.player.Shots() <= 0 {
		return 0, false
	}
	for i, d := range e.state.Ducks {
		if !d.Alive() || !d.Contains(x, y) {
			continue
		}
		points := d.Score(e.mode.ShotModifier, e.mode.Ammo, e.player.Shots())
		d.Shoot()
		if e.opts.Debug {
			e.logger.Debug("duck hit", "index", i, "points", points)
		}
		return points, true
	}
	return 0, false
}

func (e *Engine) updateSprites() {
	ctx := e.updateContext()

	for _, c := range e.state.Clouds {
		c.Update(ctx)
	}

	if !e.state.RoundCompleted && !e.state.FlyAway && e.outOfShotsOrTime() {
		for _, d := range e.state.Ducks {
			if d.FlyAway() {
				e.player.LoseLife()
				e.state.FlyAway = true
			}
		}
		if e.state.FlyAway {
			e.logger.Info("ducks flew away", "lives", e.player.Lives())
		}
	}

	kept := e.state.Ducks[:0]
	for i, d := range e.state.Ducks {
		remove, err := e.updateDuck(d, ctx)
		if err != nil {
			e.logger.Error("duck update failed", "index", i, "err", err)
			continue
		}
		if remove {
			e.audio.Play(audio.DuckDead)
			continue
		}
		kept = append(kept, d)
	}
	for i := len(kept); i < len(e.state.Ducks); i++ {
		e.state.Ducks[i] = nil
	}
	e.state.Ducks = kept

	e.state.RoundCompleted = e.state.AliveDucks() == 0
}

func (e *Engine) outOfShotsOrTime() bool {
	if e.player.Shots() <= 0 {
		return true
	}
	left, limited := e.TimeLeft()
	return limited && left < 0
}

// updateDuck advances one duck, converting a panic into an error.
func (e *Engine) updateDuck(d *object.Duck, ctx object.UpdateContext) (remove bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return d.Update(ctx)
}

// ResetRound clears the playfield and spawns the next round's ducks,
// advancing the mode first when the previous round was cleared.
func (e *Engine) ResetRound() {
	if e.state.RoundCompleted && !e.state.FlyAway {
		e.mode.UpdateState()
	}

	clear(e.state.Decals)
	e.state.Decals = e.state.Decals[:0]
	clear(e.state.Ducks)
	e.state.Ducks = e.state.Ducks[:0]
	e.state.DucksShot = 0
	e.state.FlyAway = false
	e.state.RoundCompleted = false
	e.state.popup = nil
	e.player.ResetShots()
	e.state.RoundStart = e.clock.Now()
	e.state.pauseMark = e.state.RoundStart

	e.audio.Play(audio.GunReload)
	e.audio.Stop(audio.DuckAliveLoop)
	e.audio.Loop(audio.DuckAliveLoop)

	e.logger.Info("round reset",
		"mode", e.mode.Name,
		"difficulty", e.mode.Difficulty,
		"round", e.mode.Round,
		"lives", e.player.Lives(),
		"score", e.player.Score)

	e.SpawnDucks(e.mode.Ducks)
}

// SpawnDucks adds n ducks at the bottom centre of the screen. Once the duck
// list cannot grow any further, spawning is disabled for the session.
func (e *Engine) SpawnDucks(n int) {
	if e.state.MaxDucksReached {
		e.logger.Debug("maximum number of ducks reached, spawn skipped", "requested", n)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.state.MaxDucksReached = true
			e.logger.Error("cannot create any more ducks", "err", r)
		}
	}()

	e.logger.Debug("spawning ducks", "count", n, "current", len(e.state.Ducks))
	for i := 0; i < n; i++ {
		if len(e.state.Ducks) >= MaxDucks {
			e.state.MaxDucksReached = true
			e.logger.Warn("cannot create any more ducks", "limit", MaxDucks)
			return
		}
		d := object.NewDuck(0, 0, e.mode.Difficulty, e.newRand())
		d.X = (e.screen.Width - d.Width()) / 2
		d.Y = e.screen.Height - d.Height()
		e.state.Ducks = append(e.state.Ducks, d)
	}
}

// RemoveDucks drops up to n of the most recently added ducks.
func (e *Engine) RemoveDucks(n int) {
	if len(e.state.Ducks) == 0 {
		e.logger.Debug("all ducks have been removed")
		return
	}
	keep := max(len(e.state.Ducks)-n, 0)
	clear(e.state.Ducks[keep:])
	e.state.Ducks = e.state.Ducks[:keep]
}

// AddDecal marks a hit or miss at (x, y). With the limiter on, the oldest
// decals are evicted to stay within DecalMaxCount.
func (e *Engine) AddDecal(x, y int, hit bool) {
	if !e.opts.Decals {
		return
	}
	e.state.Decals = append(e.state.Decals, object.NewDecal(x, y, hit, e.newRand()))
	if e.opts.DecalLimit && len(e.state.Decals) > DecalMaxCount {
		drop := len(e.state.Decals) - DecalMaxCount
		clear(e.state.Decals[:drop])
		e.state.Decals = e.state.Decals[drop:]
	}
}

// TimeLeft returns the remaining round time and whether the mode is timed.
// The result goes negative once the limit has passed.
func (e *Engine) TimeLeft() (time.Duration, bool) {
	if !e.mode.HasTimeLimit() {
		return 0, false
	}
	return e.state.RoundStart.Add(e.mode.TimeLimit).Sub(e.clock.Now()), true
}

// Pause freezes the round. The timer is held until Resume.
func (e *Engine) Pause() {
	if e.state.Paused {
		return
	}
	e.state.Paused = true
	e.state.pauseMark = e.clock.Now()
}

// Resume continues a paused round with the time it had left.
func (e *Engine) Resume() {
	if !e.state.Paused {
		return
	}
	e.holdTimer()
	e.state.Paused = false
}

func (e *Engine) gameOver() {
	entry := score.Entry{
		Name:       e.player.Name,
		Score:      e.player.Score,
		Mode:       e.mode.Name,
		Difficulty: e.mode.Difficulty,
		Round:      e.mode.Round,
	}
	top := []score.Entry{}
	if e.scores != nil {
		rank, err := e.scores.Submit(entry)
		if err != nil {
			e.logger.Error("saving score failed", "err", err)
		}
		top = e.scores.Top()
		e.logger.Info("game over", "player", entry.Name, "score", entry.Score, "rank", rank+1)
	} else {
		e.logger.Info("game over", "player", entry.Name, "score", entry.Score)
	}
	for i, s := range top {
		e.logger.Info("high score", "rank", i+1, "name", s.Name, "score", s.Score)
	}

	e.mode.ResetGame()
	e.player = player.New(e.player.Name, e.mode.Ammo, e.mode.Lives)
	e.state.RoundCompleted = false
	e.state.FlyAway = false
	e.ResetRound()

	e.state.GameOver = top
	e.Pause()
}

func (e *Engine) dismissGameOver() {
	e.state.GameOver = nil
	e.Resume()
}

func (e *Engine) handleKey(k input.Key) {
	if k == input.KeyNone {
		return
	}
	if k == input.KeyQuit {
		e.running.Store(false)
		return
	}
	if e.state.GameOver != nil {
		e.dismissGameOver()
		return
	}
	if k.Debug() && !e.opts.Debug {
		return
	}

	switch k {
	case input.KeyPause:
		if e.state.ShowOptions {
			return
		}
		if e.state.Paused {
			e.Resume()
		} else {
			e.Pause()
		}
	case input.KeyOptions:
		e.state.ShowOptions = !e.state.ShowOptions
		if e.state.ShowOptions {
			e.state.pausedUnderOptions = e.state.Paused
			e.Pause()
		} else if !e.state.pausedUnderOptions {
			e.Resume()
		}
	case input.KeyToggleFPS:
		e.state.ShowFPS = !e.state.ShowFPS
	case input.KeyMute:
		e.toggleSound()
	case input.KeyNudgeUp:
		e.nudge(true, true)
	case input.KeyNudgeDown:
		e.nudge(false, true)
	case input.KeyNudgeRight:
		e.nudge(true, false)
	case input.KeyNudgeLeft:
		e.nudge(false, false)
	case input.KeySpawnDuck:
		e.SpawnDucks(1)
	case input.KeyRemoveDuck:
		e.RemoveDucks(1)
	case input.KeyAmmoUp:
		e.player.SetShotCount(e.player.Shots() + 1)
	case input.KeyAmmoDown:
		e.player.SetShotCount(e.player.Shots() - 1)
	case input.KeyReload:
		e.reload()
	}
}

func (e *Engine) nudge(increment, vertical bool) {
	for _, d := range e.state.Ducks {
		d.Nudge(increment, vertical)
	}
}

// toggleSound flips the master sound option and restarts the loops that
// belong to the current round when sound comes back.
func (e *Engine) toggleSound() {
	e.opts.Sound = !e.opts.Sound
	if s, ok := e.audio.(switchable); ok {
		s.SetSwitches(e.opts.AudioSwitches())
	}
	if !e.opts.Sound {
		e.audio.Stop(audio.AmbienceLoop)
		e.audio.Stop(audio.DuckAliveLoop)
	} else {
		e.audio.Loop(audio.AmbienceLoop)
		if e.state.AliveDucks() > 0 {
			e.audio.Loop(audio.DuckAliveLoop)
		}
	}
	e.logger.Info("sound toggled", "on", e.opts.Sound)
}

func (e *Engine) reload() {
	e.audio.Play(audio.GunReload)
	e.player.ResetShots()
}
