package object

import (
	"fmt"

	"github.com/tomz197/duckhunter/internal/rng"
)

// DuckState is a stage of the duck lifecycle.
type DuckState int

const (
	DuckDead DuckState = iota
	DuckAlive
	DuckDying
	DuckShot
	DuckFlyAway
)

func (s DuckState) String() string {
	switch s {
	case DuckDead:
		return "dead"
	case DuckAlive:
		return "alive"
	case DuckDying:
		return "dying"
	case DuckShot:
		return "shot"
	case DuckFlyAway:
		return "fly-away"
	}
	return fmt.Sprintf("DuckState(%d)", int(s))
}

// Duck tuning, in pixels and ticks.
const (
	FallSpeed       = 7
	FlyAwaySpeed    = -10
	ShotWaitTicks   = 20
	BoundingBoxSize = 5
	DirChangeChance = 4
	velocitySpread  = 10
)

// Duck is the target actor. Its difficulty is fixed at spawn and scales both
// its speed and the points it is worth.
type Duck struct {
	Actor
	state      DuckState
	difficulty int
	hangTime   int
	rand       *rng.Randomizer
}

// NewDuck creates an alive duck at (x, y) with a randomized velocity.
// Each axis is drawn from [difficulty, difficulty+10] until the horizontal
// magnitude is at least the vertical one, then the horizontal direction is
// mirrored on a coin flip.
func NewDuck(x, y, difficulty int, r *rng.Randomizer) *Duck {
	if r == nil {
		r = rng.New()
	}
	d := &Duck{
		Actor:      Actor{X: x, Y: y, Anim: NewAnimation(SpriteDuckLeft)},
		state:      DuckAlive,
		difficulty: difficulty,
		rand:       r,
	}
	d.setupVelocity()
	return d
}

func (d *Duck) setupVelocity() {
	upper := d.difficulty + velocitySpread
	var dx, dy int
	for {
		dx = d.rand.Next(d.difficulty, upper)
		dy = d.rand.Next(d.difficulty, upper)
		if dx >= dy {
			break
		}
	}
	if d.rand.Bool() {
		dx = -dx
	}
	d.VX, d.VY = dx, dy
}

// State returns the current lifecycle stage.
func (d *Duck) State() DuckState { return d.state }

// Difficulty returns the level the duck was spawned at.
func (d *Duck) Difficulty() int { return d.difficulty }

// HangTime returns the ticks spent in the shot state.
func (d *Duck) HangTime() int { return d.hangTime }

// Alive reports whether the duck can still be shot.
func (d *Duck) Alive() bool { return d.state == DuckAlive }

// Shoot moves an alive duck to the shot state. Returns false for any other state.
func (d *Duck) Shoot() bool {
	if d.state != DuckAlive {
		return false
	}
	d.state = DuckShot
	d.hangTime = 0
	return true
}

// FlyAway sends an alive duck off the top of the screen. Returns false for
// any other state.
func (d *Duck) FlyAway() bool {
	if d.state != DuckAlive {
		return false
	}
	d.state = DuckFlyAway
	return true
}

// Score is the value of hitting the duck at its current velocity.
// With modifier set, the value is divided by the shots already spent this
// round, skipping the division when none have been.
func (d *Duck) Score(modifier bool, ammoTotal, shotsRemaining int) int {
	points := (abs(d.VX) + abs(d.VY)) * d.difficulty
	if modifier {
		if spent := ammoTotal - shotsRemaining; spent != 0 {
			points /= spent
		}
	}
	return points * 10
}

// Nudge changes the speed on one axis by one pixel per tick, keeping its direction.
func (d *Duck) Nudge(increment, vertical bool) {
	v := &d.VX
	if vertical {
		v = &d.VY
	}
	step := 1
	if !increment {
		step = -1
	}
	if *v < 0 {
		step = -step
	}
	*v += step
}

// Update advances the state machine by one tick. Dead ducks ask to be removed.
func (d *Duck) Update(ctx UpdateContext) (bool, error) {
	if d.state == DuckDead {
		return true, nil
	}
	d.Anim.Advance()

	switch d.state {
	case DuckAlive:
		d.aliveMovement(ctx.Screen)
	case DuckShot:
		d.shotMovement()
	case DuckDying:
		d.dyingMovement(ctx.Screen)
	case DuckFlyAway:
		d.flyAwayMovement()
	default:
		return false, fmt.Errorf("duck in unknown state %v", d.state)
	}
	return false, nil
}

func (d *Duck) aliveMovement(screen Screen) {
	maxX := screen.Width - d.Width()
	maxY := screen.Height - d.Height()

	if d.rand.Next(1, 100) < DirChangeChance && (d.VX > 0 || d.X < maxX) {
		d.VX = -d.VX
	}
	if d.rand.Next(1, 100) < DirChangeChance && (d.VY > 0 || d.Y < maxY) {
		d.VY = -d.VY
	}

	d.checkBounds(maxX, maxY)

	if d.VX > 0 {
		d.Anim.Set(SpriteDuckRight)
	} else {
		d.Anim.Set(SpriteDuckLeft)
	}

	d.X = clamp(d.X+d.VX, 0, maxX)
	d.Y = clamp(d.Y+d.VY, 0, maxY)
}

// checkBounds reverses velocity when the duck is inside the edge margin and
// still heading outwards.
func (d *Duck) checkBounds(maxX, maxY int) {
	left, top := BoundingBoxSize, BoundingBoxSize
	right := maxX - BoundingBoxSize
	bottom := maxY - BoundingBoxSize

	if d.X < left && d.VX < 0 {
		d.VX = -d.VX
	} else if d.X > right && d.VX > 0 {
		d.VX = -d.VX
	}
	if d.Y < top && d.VY < 0 {
		d.VY = -d.VY
	} else if d.Y > bottom && d.VY > 0 {
		d.VY = -d.VY
	}
}

func (d *Duck) shotMovement() {
	d.Anim.Set(SpriteDuckShot)
	d.hangTime++
	if d.hangTime > ShotWaitTicks {
		d.state = DuckDying
	}
}

func (d *Duck) dyingMovement(screen Screen) {
	d.Anim.Set(SpriteDuckFalling)
	if d.Y >= screen.Height {
		d.state = DuckDead
		return
	}
	d.Y += FallSpeed
}

func (d *Duck) flyAwayMovement() {
	if d.Y < -d.Height() {
		d.state = DuckDead
		return
	}
	if d.VX > 0 {
		d.Anim.Set(SpriteDuckUpRight)
	} else {
		d.Anim.Set(SpriteDuckUpLeft)
	}
	d.VY = FlyAwaySpeed
	d.Y += FlyAwaySpeed
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
