package object

// Sprite names an image set known to every renderer.
type Sprite int

const (
	SpriteNone Sprite = iota
	SpriteDuckLeft
	SpriteDuckRight
	SpriteDuckUpLeft
	SpriteDuckUpRight
	SpriteDuckShot
	SpriteDuckFalling
	SpriteCloud
	SpriteBlood0
	SpriteBlood1
	SpriteBlood2
	SpriteHole0
	SpriteHole1
	SpriteHole2
	spriteCount
)

// SpriteInfo describes the frame set behind a Sprite.
type SpriteInfo struct {
	Name   string
	Width  int
	Height int
	Frames int
}

var catalogue = [spriteCount]SpriteInfo{
	SpriteNone:        {Name: "none", Frames: 1},
	SpriteDuckLeft:    {Name: "duck/flyleft", Width: 72, Height: 64, Frames: 23},
	SpriteDuckRight:   {Name: "duck/flyright", Width: 72, Height: 64, Frames: 23},
	SpriteDuckUpLeft:  {Name: "duck/flyupleft", Width: 72, Height: 64, Frames: 23},
	SpriteDuckUpRight: {Name: "duck/flyupright", Width: 72, Height: 64, Frames: 23},
	SpriteDuckShot:    {Name: "duck/shot", Width: 72, Height: 64, Frames: 1},
	SpriteDuckFalling: {Name: "duck/deathspiral", Width: 72, Height: 64, Frames: 20},
	SpriteCloud:       {Name: "background/cloud", Width: 160, Height: 72, Frames: 1},
	SpriteBlood0:      {Name: "decals/blood0", Width: 32, Height: 32, Frames: 1},
	SpriteBlood1:      {Name: "decals/blood1", Width: 28, Height: 28, Frames: 1},
	SpriteBlood2:      {Name: "decals/blood2", Width: 36, Height: 30, Frames: 1},
	SpriteHole0:       {Name: "decals/hole0", Width: 16, Height: 16, Frames: 1},
	SpriteHole1:       {Name: "decals/hole1", Width: 14, Height: 14, Frames: 1},
	SpriteHole2:       {Name: "decals/hole2", Width: 18, Height: 18, Frames: 1},
}

// Info returns the catalogue entry for s. Unknown sprites map to SpriteNone.
func (s Sprite) Info() SpriteInfo {
	if s < 0 || s >= spriteCount {
		return catalogue[SpriteNone]
	}
	return catalogue[s]
}

func (s Sprite) String() string { return s.Info().Name }

// Size returns the frame width and height of s.
func (s Sprite) Size() (int, int) {
	info := s.Info()
	return info.Width, info.Height
}

// Animation cycles through the frames of a sprite, one frame per tick.
type Animation struct {
	sprite Sprite
	frame  int
}

// NewAnimation starts an animation on the first frame of s.
func NewAnimation(s Sprite) Animation {
	return Animation{sprite: s}
}

// Sprite returns the sprite being animated.
func (a *Animation) Sprite() Sprite { return a.sprite }

// Frame returns the current frame index.
func (a *Animation) Frame() int { return a.frame }

// Set switches to s. The frame index is kept when s is already playing.
func (a *Animation) Set(s Sprite) {
	if a.sprite == s {
		return
	}
	a.sprite = s
	a.frame = 0
}

// Advance moves to the next frame, wrapping at the end.
func (a *Animation) Advance() {
	frames := a.sprite.Info().Frames
	if frames <= 1 {
		a.frame = 0
		return
	}
	a.frame = (a.frame + 1) % frames
}
