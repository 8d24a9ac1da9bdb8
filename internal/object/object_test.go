package object

import (
	"testing"

	"github.com/tomz197/duckhunter/internal/rng"
)

var ctx = UpdateContext{Screen: Display}

// TestNewDuckVelocity verifies spawn velocity ranges and horizontal bias
func TestNewDuckVelocity(t *testing.T) {
	r := rng.NewSeeded(42)
	for difficulty := 1; difficulty <= 5; difficulty++ {
		for i := 0; i < 200; i++ {
			d := NewDuck(0, 0, difficulty, r)
			vx, vy := abs(d.VX), d.VY
			if vx < difficulty || vx > difficulty+10 {
				t.Fatalf("|vx| = %d out of range for difficulty %d", vx, difficulty)
			}
			if vy < difficulty || vy > difficulty+10 {
				t.Fatalf("vy = %d out of range for difficulty %d", vy, difficulty)
			}
			if vx < vy {
				t.Fatalf("|vx| %d < vy %d", vx, vy)
			}
			if d.State() != DuckAlive {
				t.Fatalf("new duck state = %v", d.State())
			}
		}
	}
}

// TestDuckStaysInPlayfield verifies alive ducks never leave the display
func TestDuckStaysInPlayfield(t *testing.T) {
	r := rng.NewSeeded(7)
	d := NewDuck((Display.Width-72)/2, Display.Height-64, 8, r)
	for tick := 0; tick < 5000; tick++ {
		if _, err := d.Update(ctx); err != nil {
			t.Fatal(err)
		}
		if d.X < 0 || d.X > Display.Width-d.Width() {
			t.Fatalf("tick %d: x = %d escaped", tick, d.X)
		}
		if d.Y < 0 || d.Y > Display.Height-d.Height() {
			t.Fatalf("tick %d: y = %d escaped", tick, d.Y)
		}
	}
}

// TestDuckShotLifecycle verifies SHOT -> DYING -> DEAD timing and removal
func TestDuckShotLifecycle(t *testing.T) {
	d := NewDuck(100, 100, 1, rng.NewSeeded(1))
	if !d.Shoot() {
		t.Fatal("Shoot on alive duck failed")
	}
	if d.Shoot() {
		t.Error("second Shoot should be rejected")
	}
	if d.HangTime() != 0 {
		t.Errorf("hang time = %d on entry", d.HangTime())
	}

	for i := 1; i <= ShotWaitTicks; i++ {
		d.Update(ctx)
		if d.State() != DuckShot {
			t.Fatalf("tick %d: state = %v, want shot", i, d.State())
		}
	}
	d.Update(ctx)
	if d.State() != DuckDying {
		t.Fatalf("after %d ticks state = %v, want dying", ShotWaitTicks+1, d.State())
	}

	lastY := d.Y
	for d.State() == DuckDying {
		d.Update(ctx)
		if d.Y < lastY {
			t.Fatal("falling duck moved up")
		}
		lastY = d.Y
	}
	if d.State() != DuckDead {
		t.Fatalf("state = %v, want dead", d.State())
	}
	if d.Y < Display.Height {
		t.Errorf("duck died above the bottom edge: y = %d", d.Y)
	}
	if remove, _ := d.Update(ctx); !remove {
		t.Error("dead duck should request removal")
	}
}

// TestDuckFlyAway verifies fly-away rises off the top edge then dies
func TestDuckFlyAway(t *testing.T) {
	d := NewDuck(300, 300, 1, rng.NewSeeded(3))
	if !d.FlyAway() {
		t.Fatal("FlyAway on alive duck failed")
	}
	if d.FlyAway() || d.Shoot() {
		t.Error("fly-away duck accepted another transition")
	}
	ticks := 0
	for d.State() == DuckFlyAway {
		d.Update(ctx)
		ticks++
		if ticks > 1000 {
			t.Fatal("duck never left the screen")
		}
	}
	if d.State() != DuckDead || d.Y >= -d.Height() {
		t.Errorf("state = %v y = %d", d.State(), d.Y)
	}
	if d.VY != FlyAwaySpeed {
		t.Errorf("vy = %d, want %d", d.VY, FlyAwaySpeed)
	}
}

// TestDuckScore verifies hit scoring with and without the shot modifier
func TestDuckScore(t *testing.T) {
	tests := []struct {
		name       string
		vx, vy     int
		difficulty int
		modifier   bool
		ammo, left int
		want       int
	}{
		{"plain", 3, 4, 2, false, 3, 3, 140},
		{"negative velocity", -3, -4, 2, false, 3, 3, 140},
		{"modifier", 3, 3, 1, true, 10, 7, 20},
		{"modifier zero denominator", 3, 3, 1, true, 10, 10, 60},
		{"modifier ignored", 3, 3, 1, false, 10, 7, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Duck{Actor: Actor{VX: tt.vx, VY: tt.vy}, difficulty: tt.difficulty, state: DuckAlive}
			if got := d.Score(tt.modifier, tt.ammo, tt.left); got != tt.want {
				t.Errorf("Score = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestDuckContains verifies the strict bounding box test
func TestDuckContains(t *testing.T) {
	d := &Duck{Actor: Actor{X: 100, Y: 200, Anim: NewAnimation(SpriteDuckLeft)}}
	w, h := SpriteDuckLeft.Size()
	tests := []struct {
		x, y int
		want bool
	}{
		{101, 201, true},
		{100 + w/2, 200 + h/2, true},
		{100, 201, false},
		{101, 200, false},
		{100 + w, 201, false},
		{101, 200 + h, false},
	}
	for _, tt := range tests {
		if got := d.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

// TestDuckNudge verifies debug nudges change magnitude and keep direction
func TestDuckNudge(t *testing.T) {
	d := &Duck{Actor: Actor{VX: -5, VY: 4}}
	d.Nudge(true, false)
	if d.VX != -6 {
		t.Errorf("VX = %d, want -6", d.VX)
	}
	d.Nudge(false, false)
	if d.VX != -5 {
		t.Errorf("VX = %d, want -5", d.VX)
	}
	d.Nudge(true, true)
	if d.VY != 5 {
		t.Errorf("VY = %d, want 5", d.VY)
	}
}

// TestAnimationCycles verifies frames wrap and reset on sprite change
func TestAnimationCycles(t *testing.T) {
	a := NewAnimation(SpriteDuckFalling)
	frames := SpriteDuckFalling.Info().Frames
	for i := 0; i < frames; i++ {
		a.Advance()
	}
	if a.Frame() != 0 {
		t.Errorf("frame after full cycle = %d", a.Frame())
	}
	a.Advance()
	a.Set(SpriteDuckFalling)
	if a.Frame() != 1 {
		t.Error("Set with same sprite reset the frame")
	}
	a.Set(SpriteDuckShot)
	a.Advance()
	if a.Frame() != 0 {
		t.Error("single frame sprite advanced")
	}
}

// TestCloudPlacementAndBounce verifies clouds spawn in the upper quarter and bounce
func TestCloudPlacementAndBounce(t *testing.T) {
	r := rng.NewSeeded(5)
	for i := 0; i < 100; i++ {
		c := NewCloud(Display, r)
		if c.Y < 25 || c.Y > Display.Height/4 {
			t.Fatalf("cloud y = %d", c.Y)
		}
		if c.VX == 0 || abs(c.VX) > 3 || c.VY != 0 {
			t.Fatalf("cloud velocity = (%d,%d)", c.VX, c.VY)
		}
	}

	c := &Decoration{Kind: KindCloud, Actor: Actor{X: Display.Width - 160, VX: 2, Anim: NewAnimation(SpriteCloud)}}
	c.Update(ctx)
	if c.VX != -2 {
		t.Errorf("cloud did not bounce at right edge, vx = %d", c.VX)
	}
}

// TestDecalCentred verifies decals centre on the shot and pick the right family
func TestDecalCentred(t *testing.T) {
	r := rng.NewSeeded(11)
	for i := 0; i < 30; i++ {
		hit := NewDecal(500, 400, true, r)
		if hit.Anim.Sprite() < SpriteBlood0 || hit.Anim.Sprite() > SpriteBlood2 {
			t.Fatalf("hit decal sprite = %v", hit.Anim.Sprite())
		}
		miss := NewDecal(500, 400, false, r)
		if miss.Anim.Sprite() < SpriteHole0 || miss.Anim.Sprite() > SpriteHole2 {
			t.Fatalf("miss decal sprite = %v", miss.Anim.Sprite())
		}
		if miss.X+miss.Width()/2 != 500 || miss.Y+miss.Height()/2 != 400 {
			t.Errorf("decal not centred: %d,%d", miss.X, miss.Y)
		}
		if remove, _ := miss.Update(ctx); remove || miss.X != 500-miss.Width()/2 {
			t.Error("decal should be static")
		}
	}
}
