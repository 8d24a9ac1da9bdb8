package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tomz197/duckhunter/internal/object"
	"github.com/tomz197/duckhunter/internal/render"
	"github.com/tomz197/duckhunter/internal/score"
)

// TestClampTermSize verifies large terminals get a centred render area
func TestClampTermSize(t *testing.T) {
	tests := []struct {
		w, h                   int
		rw, rh, offCol, offRow int
	}{
		{80, 24, 80, 24, 0, 0},
		{300, 100, MaxTermWidth, MaxTermHeight, 50, 12},
		{MaxTermWidth, 30, MaxTermWidth, 30, 0, 0},
	}
	for _, tt := range tests {
		rw, rh, oc, or := ClampTermSize(tt.w, tt.h)
		if rw != tt.rw || rh != tt.rh || oc != tt.offCol || or != tt.offRow {
			t.Errorf("ClampTermSize(%d, %d) = %d %d %d %d", tt.w, tt.h, rw, rh, oc, or)
		}
	}
}

// TestCanvasShapes verifies fills land in scaled pixel space
func TestCanvasShapes(t *testing.T) {
	c := NewScaledCanvas(1024, 384, 1024, 768)

	c.FillEllipse(100, 100, 10, 10, ColorBlood)
	if c.Pixel(100, 100) != ColorBlood {
		t.Error("ellipse centre not filled")
	}
	if c.Pixel(115, 100) != Transparent {
		t.Error("ellipse spilled outside its radius")
	}

	c.FillRect(200, 200, 20, 10, ColorGrass)
	if c.Pixel(205, 205) != ColorGrass || c.Pixel(221, 205) != Transparent {
		t.Error("rect fill wrong")
	}

	c.FillPolygon([]Point{{X: 300, Y: 300}, {X: 340, Y: 300}, {X: 320, Y: 340}}, ColorDuckBeak)
	if c.Pixel(320, 310) != ColorDuckBeak {
		t.Error("polygon interior not filled")
	}

	c.Clear()
	if c.Pixel(100, 100) != Transparent {
		t.Error("Clear left pixels set")
	}
}

// TestCanvasScaling verifies logical coordinates shrink onto a small terminal
func TestCanvasScaling(t *testing.T) {
	c := NewScaledCanvas(64, 24, 1024, 768)
	c.FillRect(0, 0, 1024, 768, ColorSky)
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			if c.Pixel(x, y) != ColorSky {
				t.Fatalf("pixel %d,%d not covered", x, y)
			}
		}
	}
}

// TestRenderOnlyChangedCells verifies repeated frames emit nothing new
func TestRenderOnlyChangedCells(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.FillRect(0, 0, 10, 10, ColorSky)

	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), string(BlockFull)) != 50 {
		t.Errorf("first render drew %d full cells", strings.Count(buf.String(), string(BlockFull)))
	}

	buf.Reset()
	c.Render(&buf)
	if buf.Len() != 0 {
		t.Errorf("unchanged frame wrote %q", buf.String())
	}

	c.Set(3, 0, ColorDuckBody)
	buf.Reset()
	c.Render(&buf)
	out := buf.String()
	if !strings.Contains(out, string(BlockUpperHalf)) || !strings.Contains(out, "\033[1;4H") {
		t.Errorf("changed cell output = %q", out)
	}
	if strings.Count(out, string(BlockUpperHalf)) != 1 {
		t.Error("more than the changed cell was redrawn")
	}

	c.ForceRedraw()
	buf.Reset()
	c.Render(&buf)
	if strings.Count(buf.String(), string(BlockFull)) != 49 {
		t.Error("ForceRedraw did not repaint everything")
	}
}

// TestMarkTextDirty verifies text cells are repainted next frame
func TestMarkTextDirty(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.FillRect(0, 0, 10, 10, ColorSky)
	var buf bytes.Buffer
	c.Render(&buf)

	c.MarkTextDirty(2, 3, 3)
	buf.Reset()
	c.Render(&buf)
	if n := strings.Count(buf.String(), string(BlockFull)); n != 3 {
		t.Errorf("repainted %d cells, want 3", n)
	}
}

// TestTerminalToLogical verifies mouse cells map back onto the playfield
func TestTerminalToLogical(t *testing.T) {
	c := NewScaledCanvas(128, 48, 1024, 768)
	x, y := c.TerminalToLogical(1, 1)
	if x != 4 || y != 8 {
		t.Errorf("cell 1,1 = %d,%d", x, y)
	}
	x, y = c.TerminalToLogical(128, 48)
	if x != 1020 || y != 760 {
		t.Errorf("cell 128,48 = %d,%d", x, y)
	}

	c.SetOffset(10, 2)
	x, y = c.TerminalToLogical(11, 3)
	if x != 4 || y != 8 {
		t.Errorf("offset cell = %d,%d", x, y)
	}
}

// TestDrawInstance verifies sprites paint inside their frame
func TestDrawInstance(t *testing.T) {
	sprites := []object.Sprite{
		object.SpriteDuckLeft, object.SpriteDuckUpRight, object.SpriteDuckShot,
		object.SpriteDuckFalling, object.SpriteCloud, object.SpriteBlood1, object.SpriteHole2,
	}
	for _, s := range sprites {
		c := NewScaledCanvas(1024, 384, 1024, 768)
		DrawInstance(c, object.Instance{Sprite: s, X: 400, Y: 300})
		w, h := s.Size()
		inside, outside := 0, 0
		for y := 0; y < 768; y++ {
			for x := 0; x < 1024; x++ {
				if c.Pixel(x, y) == Transparent {
					continue
				}
				if x >= 400 && x <= 400+w && y >= 300 && y <= 300+h {
					inside++
				} else {
					outside++
				}
			}
		}
		if inside == 0 || outside != 0 {
			t.Errorf("%v: %d pixels inside, %d outside", s, inside, outside)
		}
	}
}

func fixedSize(w, h int) TermSizeFunc {
	return func() (int, int, error) { return w, h, nil }
}

// TestTerminalDraw verifies the surface writes the HUD and banners
func TestTerminalDraw(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, fixedSize(120, 40))
	if term.Size() != object.Display {
		t.Errorf("size = %+v", term.Size())
	}

	f := &render.Frame{
		Ducks:  []object.Instance{{Sprite: object.SpriteDuckRight, X: 100, Y: 200}},
		Popup:  &render.Popup{X: 500, Y: 400, Points: 140},
		Banner: render.BannerGameOver,
		HUD: render.HUD{
			Mode: "Classic Quacks", Score: 1234, Shots: 2, TotalShots: 3,
			DucksShot: 1, DucksTotal: 2, TimeLeft: "0:12.5", Lives: 3, TotalLives: 5, Player: "ann",
		},
		Scores: []score.Entry{{Name: "bob", Score: 900, Mode: "Classic Quacks"}},
	}
	if err := term.Draw(f); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Score: 1234", "0:12.5", "Shots: ||.", "Ducks: xo", "+140", "GAME OVER", "bob", "Lives: 3/5"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	term.SetNotice([]string{"INACTIVITY WARNING"})
	buf.Reset()
	term.Draw(&render.Frame{})
	if !strings.Contains(buf.String(), "INACTIVITY WARNING") {
		t.Error("notice not drawn")
	}
}

// TestTerminalToPlayfield verifies the surface maps cells through its canvas
func TestTerminalToPlayfield(t *testing.T) {
	term := NewTerminal(&bytes.Buffer{}, fixedSize(128, 48))
	x, y := term.ToPlayfield(64, 24)
	if x < 500 || x > 512 || y < 360 || y > 376 {
		t.Errorf("centre cell = %d,%d", x, y)
	}
}

// TestMeter verifies ammo and duck meters
func TestMeter(t *testing.T) {
	tests := []struct {
		n, total int
		want     string
	}{
		{0, 3, "..."},
		{2, 3, "||."},
		{5, 3, "|||"},
		{7, 30, "7/30"},
	}
	for _, tt := range tests {
		if got := meter(tt.n, tt.total, "|", "."); got != tt.want {
			t.Errorf("meter(%d, %d) = %q, want %q", tt.n, tt.total, got, tt.want)
		}
	}
}
