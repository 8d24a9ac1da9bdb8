package object

import "github.com/tomz197/duckhunter/internal/rng"

// DecorationKind selects how a decoration behaves.
type DecorationKind int

const (
	KindCloud DecorationKind = iota
	KindDecal
)

// Decoration is a background object that takes no part in the game rules.
type Decoration struct {
	Actor
	Kind DecorationKind
}

// NewCloud places a cloud at a random spot in the upper quarter of the
// screen drifting sideways.
func NewCloud(screen Screen, r *rng.Randomizer) *Decoration {
	c := &Decoration{Kind: KindCloud, Actor: Actor{Anim: NewAnimation(SpriteCloud)}}
	c.X = r.Next(10, max(10, screen.Width-c.Width()))
	c.Y = r.Next(25, max(25, screen.Height/4))
	c.VX = r.Next(1, 3)
	if r.Bool() {
		c.VX = -c.VX
	}
	return c
}

// NewDecal creates a blood mark for a hit or a bullet hole for a miss,
// centred on (x, y).
func NewDecal(x, y int, hit bool, r *rng.Randomizer) *Decoration {
	base := SpriteHole0
	if hit {
		base = SpriteBlood0
	}
	s := base + Sprite(r.Next(0, 2))
	d := &Decoration{Kind: KindDecal, Actor: Actor{Anim: NewAnimation(s)}}
	d.X = x - d.Width()/2
	d.Y = y - d.Height()/2
	return d
}

// Update moves clouds, bouncing them off the screen edges. Decals are static.
func (d *Decoration) Update(ctx UpdateContext) (bool, error) {
	if d.Kind != KindCloud {
		return false, nil
	}
	if d.X >= ctx.Screen.Width-d.Width() || d.X < 0 {
		d.VX = -d.VX
	}
	if d.Y >= ctx.Screen.Height-d.Height() || d.Y < 0 {
		d.VY = -d.VY
	}
	d.X += d.VX
	d.Y += d.VY
	return false, nil
}
