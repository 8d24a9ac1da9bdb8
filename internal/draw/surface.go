package draw

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/tomz197/duckhunter/internal/object"
	"github.com/tomz197/duckhunter/internal/render"
)

// Terminal is a render.Surface drawing frames as half-block art on an ANSI terminal.
type Terminal struct {
	w        io.Writer
	screen   object.Screen
	sizeFunc TermSizeFunc
	canvas   *Canvas
	cw       *ChunkWriter

	mu     sync.Mutex
	notice []string
	banner render.Banner
}

// NewTerminal creates a surface writing to w. A nil sizeFunc reads the size of stdout.
func NewTerminal(w io.Writer, sizeFunc TermSizeFunc) *Terminal {
	if sizeFunc == nil {
		sizeFunc = DefaultTermSizeFunc
	}
	screen := object.Display
	termWidth, termHeight, err := sizeFunc()
	if err != nil {
		termWidth, termHeight = 80, 24
	}
	renderWidth, renderHeight, offsetCol, offsetRow := ClampTermSize(termWidth, termHeight)
	canvas := NewScaledCanvas(renderWidth, renderHeight, float64(screen.Width), float64(screen.Height))
	canvas.SetOffset(offsetCol, offsetRow)

	return &Terminal{
		w:        w,
		screen:   screen,
		sizeFunc: sizeFunc,
		canvas:   canvas,
		cw:       NewChunkWriter(w, offsetCol, offsetRow),
	}
}

// Size implements render.Surface.
func (t *Terminal) Size() object.Screen { return t.screen }

// SetNotice shows lines centred over everything else until cleared with nil.
// It may be called from any goroutine.
func (t *Terminal) SetNotice(lines []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notice = lines
}

// ToPlayfield maps a 1-based terminal cell to logical playfield coordinates.
func (t *Terminal) ToPlayfield(col, row int) (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.canvas.TerminalToLogical(col, row)
}

// Start prepares the terminal for drawing.
func (t *Terminal) Start() {
	HideCursor(t.w)
	EnableMouse(t.w)
	ClearScreen(t.w)
}

// Stop restores the terminal.
func (t *Terminal) Stop() {
	DisableMouse(t.w)
	io.WriteString(t.w, ColorReset)
	ClearScreen(t.w)
	ShowCursor(t.w)
}

// Draw implements render.Surface.
func (t *Terminal) Draw(f *render.Frame) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.updateScreen()
	if f.Banner != t.banner {
		// Overlay text from the previous banner would otherwise linger.
		t.cw.WriteString("\033[H\033[2J")
		t.canvas.ForceRedraw()
		t.banner = f.Banner
	}

	t.paint(f)
	if err := t.canvas.Render(t.cw); err != nil {
		return err
	}
	t.canvas.RenderBorder(t.cw)

	t.drawHUD(&f.HUD)
	if f.Popup != nil {
		col, row := t.canvas.LogicalToTerminal(float64(f.Popup.X), float64(f.Popup.Y))
		t.text(col, row, ColorBold+ColorYellow, fmt.Sprintf("+%d", f.Popup.Points))
	}
	t.drawDebug(f.Debug)
	t.drawBanner(f)
	if len(t.notice) > 0 {
		t.centred(t.canvas.TerminalHeight()/2-len(t.notice)/2, ColorBold, t.notice)
	}
	return t.cw.Flush()
}

func (t *Terminal) updateScreen() {
	termWidth, termHeight, err := t.sizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := ClampTermSize(termWidth, termHeight)
	if renderWidth != t.canvas.TerminalWidth() || renderHeight != t.canvas.TerminalHeight() ||
		offsetCol != t.canvas.OffsetCol() || offsetRow != t.canvas.OffsetRow() {
		t.cw.WriteString("\033[H\033[2J")
		t.canvas.ForceRedraw()
	}
	t.canvas.Resize(renderWidth, renderHeight)
	t.canvas.SetOffset(offsetCol, offsetRow)
	t.cw.SetOffset(offsetCol, offsetRow)
}

func (t *Terminal) paint(f *render.Frame) {
	c := t.canvas
	w, h := float64(t.screen.Width), float64(t.screen.Height)
	bar := float64(render.ToolbarHeight(t.screen))

	c.Clear()
	sky := ColorSky
	if f.FlyAway {
		sky = ColorSkyFlyAway
	}
	c.FillRect(0, 0, w, h, sky)
	c.FillRect(0, h-bar*2, w, bar, ColorGrass)

	for _, layer := range f.Layers() {
		for _, in := range layer {
			DrawInstance(c, in)
		}
	}

	c.FillRect(0, 0, w, bar/2, ColorToolbar)
	c.FillRect(0, h-bar/2, w, bar/2, ColorToolbar)
}

func (t *Terminal) drawHUD(h *render.HUD) {
	width := t.canvas.TerminalWidth()
	bottom := t.canvas.TerminalHeight()
	style := Background(ColorToolbar) + Foreground(ColorCloud)

	top := fmt.Sprintf(" %s  Score: %-8d Level %d  Round %d", h.Mode, h.Score, h.Difficulty, h.Round)
	t.text(1, 1, style, top)
	clock := fmt.Sprintf("Time: %-7s", h.TimeLeft)
	t.text(width-len(clock), 1, style, clock)

	ammo := "Shots: " + meter(h.Shots, h.TotalShots, "|", ".")
	ducks := "Ducks: " + meter(h.DucksShot, h.DucksTotal, "x", "o")
	lives := fmt.Sprintf("Lives: %d/%d", h.Lives, h.TotalLives)
	t.text(2, bottom, style, ammo)
	t.text(2+len(ammo)+3, bottom, style, ducks)
	right := h.Player + "  " + lives
	if h.ShowFPS {
		right = fmt.Sprintf("FPS: %-4d %s", h.FPS, right)
	}
	t.text(width-len(right), bottom, style, right)
}

// meter draws one mark per slot, filled for the first n. Long meters are
// shortened to a count.
func meter(n, total int, full, empty string) string {
	if total > 20 {
		return fmt.Sprintf("%d/%d", n, total)
	}
	n = min(max(n, 0), total)
	return strings.Repeat(full, n) + strings.Repeat(empty, total-n)
}

func (t *Terminal) drawDebug(lines []string) {
	for i, line := range lines {
		row := 3 + i
		if row >= t.canvas.TerminalHeight()-2 {
			return
		}
		t.text(2, row, ColorBrightCyan, line)
	}
}

func (t *Terminal) drawBanner(f *render.Frame) {
	if f.Banner == render.BannerNone {
		return
	}
	lines := []string{f.Banner.String()}
	switch f.Banner {
	case render.BannerGameOver:
		lines = append(lines, "", "High scores")
		lines = append(lines, scoreLines(f)...)
		lines = append(lines, "", "Press any key to play again")
	case render.BannerOptions:
		lines = append(lines, "")
		lines = append(lines, strings.Split(strings.TrimRight(f.Options, "\n"), "\n")...)
		if len(f.Scores) > 0 {
			lines = append(lines, "", "High scores")
			lines = append(lines, scoreLines(f)...)
		}
		lines = append(lines, "", "Press O to close")
	case render.BannerPaused:
		lines = append(lines, "", "Press SPACE to resume")
	}
	t.centred(t.canvas.TerminalHeight()/2-len(lines)/2, ColorBold, lines)
}

func scoreLines(f *render.Frame) []string {
	out := make([]string, 0, len(f.Scores))
	for i, s := range f.Scores {
		out = append(out, fmt.Sprintf("%2d. %-16s %8d  %s", i+1, s.Name, s.Score, s.Mode))
	}
	return out
}

func (t *Terminal) centred(row int, style string, lines []string) {
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	col := t.canvas.TerminalWidth()/2 - width/2
	for i, l := range lines {
		t.text(col, row+i, style, fmt.Sprintf("%-*s", width, l))
	}
}

// text writes s at a 1-based canvas position, clipped to the canvas, and
// marks the cells so the canvas paints over them next frame.
func (t *Terminal) text(col, row int, style, s string) {
	width := t.canvas.TerminalWidth()
	if row < 1 || row > t.canvas.TerminalHeight() || col > width {
		return
	}
	if col < 1 {
		if 1-col >= len(s) {
			return
		}
		s = s[1-col:]
		col = 1
	}
	if col+len(s)-1 > width {
		s = s[:width-col+1]
	}
	t.cw.WriteStyled(col, row, style, s)
	t.canvas.MarkTextDirty(col, row, len(s))
}
