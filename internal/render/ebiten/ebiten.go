// Package ebiten displays the game in a desktop window.
package ebiten

import (
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/duckhunter/internal/input"
	"github.com/tomz197/duckhunter/internal/object"
	"github.com/tomz197/duckhunter/internal/render"
)

// Surface hands frames from the game loop goroutine to the window.
type Surface struct {
	screen object.Screen
	frame  atomic.Pointer[render.Frame]
	closed atomic.Bool
}

// NewSurface creates a surface with the standard playfield size.
func NewSurface() *Surface {
	return &Surface{screen: object.Display}
}

// Size implements render.Surface.
func (s *Surface) Size() object.Screen { return s.screen }

// Draw implements render.Surface. The window paints the latest frame on its
// own schedule.
func (s *Surface) Draw(f *render.Frame) error {
	s.frame.Store(f)
	return nil
}

// Close tells the window to shut down on its next update.
func (s *Surface) Close() { s.closed.Store(true) }

var keymap = map[ebiten.Key]input.Key{
	ebiten.KeySpace:          input.KeyPause,
	ebiten.KeyO:              input.KeyOptions,
	ebiten.KeyEscape:         input.KeyOptions,
	ebiten.KeyF:              input.KeyToggleFPS,
	ebiten.KeyQ:              input.KeyQuit,
	ebiten.KeyM:              input.KeyMute,
	ebiten.KeyArrowUp:        input.KeyNudgeUp,
	ebiten.KeyArrowDown:      input.KeyNudgeDown,
	ebiten.KeyArrowLeft:      input.KeyNudgeLeft,
	ebiten.KeyArrowRight:     input.KeyNudgeRight,
	ebiten.KeyEnter:          input.KeySpawnDuck,
	ebiten.KeyBackspace:      input.KeyRemoveDuck,
	ebiten.KeyEqual:          input.KeyAmmoUp,
	ebiten.KeyNumpadAdd:      input.KeyAmmoUp,
	ebiten.KeyMinus:          input.KeyAmmoDown,
	ebiten.KeyNumpadSubtract: input.KeyAmmoDown,
	ebiten.KeyR:              input.KeyReload,
}

// Game is the ebiten.Game running the window. It feeds clicks and keys into
// the loop's input buffer and paints whatever frame the loop produced last.
type Game struct {
	surface *Surface
	input   *input.Buffer
	quit    func()
}

// NewGame wires a window to surface and buf. quit is called once when the
// player closes the game from the keyboard.
func NewGame(surface *Surface, buf *input.Buffer, quit func()) *Game {
	return &Game{surface: surface, input: buf, quit: quit}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.surface.closed.Load() {
		return ebiten.Termination
	}

	x, y := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.input.SetClick(input.Click{X: x, Y: y, Button: input.ButtonLeft})
	} else if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.input.SetClick(input.Click{X: x, Y: y, Button: input.ButtonRight})
	}

	for k, cmd := range keymap {
		if !inpututil.IsKeyJustPressed(k) {
			continue
		}
		if cmd == input.KeyQuit {
			if g.quit != nil {
				g.quit()
			}
			return ebiten.Termination
		}
		g.input.SetKey(cmd)
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	f := g.surface.frame.Load()
	if f == nil {
		screen.Fill(colorSky)
		return
	}
	paintFrame(screen, g.surface.screen, f)
}

// Layout implements ebiten.Game. The playfield is fixed and ebiten scales it
// to the window, so cursor positions are already in playfield coordinates.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.surface.screen.Width, g.surface.screen.Height
}

// Run opens the window and blocks until it closes.
func Run(g *Game, title string) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.surface.screen.Width, g.surface.screen.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
