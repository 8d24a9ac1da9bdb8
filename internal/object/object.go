package object

// Screen represents the logical playfield dimensions.
type Screen struct {
	Width  int
	Height int
}

// Display is the fixed playfield every frontend scales to.
var Display = Screen{Width: 1024, Height: 768}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Screen Screen
}

// Instance is one sprite placed on the playfield for a single frame.
type Instance struct {
	Sprite Sprite
	Frame  int
	X, Y   int
}

// Object is an updatable playfield entity.
type Object interface {
	// Update advances the object by one tick. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Instance returns what to draw for the current frame.
	Instance() Instance
}

// Actor is the position, velocity and animation shared by every object.
// Velocities are pixels per tick.
type Actor struct {
	X, Y   int
	VX, VY int
	Anim   Animation
}

// Width returns the width of the current frame.
func (a *Actor) Width() int {
	w, _ := a.Anim.Sprite().Size()
	return w
}

// Height returns the height of the current frame.
func (a *Actor) Height() int {
	_, h := a.Anim.Sprite().Size()
	return h
}

// Contains reports whether (px, py) lies strictly inside the current frame.
func (a *Actor) Contains(px, py int) bool {
	return px > a.X && px < a.X+a.Width() &&
		py > a.Y && py < a.Y+a.Height()
}

// Instance returns what to draw for the current frame.
func (a *Actor) Instance() Instance {
	return Instance{Sprite: a.Anim.Sprite(), Frame: a.Anim.Frame(), X: a.X, Y: a.Y}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
