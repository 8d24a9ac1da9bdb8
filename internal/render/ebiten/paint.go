package ebiten

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/duckhunter/internal/object"
	"github.com/tomz197/duckhunter/internal/render"
)

var (
	colorSky        = color.RGBA{0x87, 0xd7, 0xff, 0xff}
	colorSkyFlyAway = color.RGBA{0xff, 0xaf, 0xaf, 0xff}
	colorGrass      = color.RGBA{0x5f, 0x87, 0x00, 0xff}
	colorToolbar    = color.RGBA{0x30, 0x30, 0x30, 0xff}
	colorShade      = color.RGBA{0x00, 0x00, 0x00, 0xa0}
	colorDuckBody   = color.RGBA{0x87, 0x5f, 0x00, 0xff}
	colorDuckHead   = color.RGBA{0x00, 0x87, 0x00, 0xff}
	colorDuckWing   = color.RGBA{0xaf, 0x87, 0x5f, 0xff}
	colorDuckBeak   = color.RGBA{0xff, 0xaf, 0x00, 0xff}
	colorDuckShot   = color.RGBA{0xff, 0x00, 0x00, 0xff}
	colorCloud      = color.RGBA{0xee, 0xee, 0xee, 0xff}
	colorBlood      = color.RGBA{0xaf, 0x00, 0x00, 0xff}
	colorHole       = color.RGBA{0x44, 0x44, 0x44, 0xff}
)

// Debug font cell size.
const (
	charWidth  = 6
	lineHeight = 16
)

func paintFrame(dst *ebiten.Image, screen object.Screen, f *render.Frame) {
	w, h := float32(screen.Width), float32(screen.Height)
	bar := float32(render.ToolbarHeight(screen))

	if f.FlyAway {
		dst.Fill(colorSkyFlyAway)
	} else {
		dst.Fill(colorSky)
	}
	vector.DrawFilledRect(dst, 0, h-bar*2, w, bar, colorGrass, false)

	for _, layer := range f.Layers() {
		for _, in := range layer {
			paintInstance(dst, in)
		}
	}

	vector.DrawFilledRect(dst, 0, 0, w, bar/2, colorToolbar, false)
	vector.DrawFilledRect(dst, 0, h-bar/2, w, bar/2, colorToolbar, false)
	paintHUD(dst, screen, &f.HUD)

	if f.Popup != nil {
		ebitenutil.DebugPrintAt(dst, fmt.Sprintf("+%d", f.Popup.Points), f.Popup.X, f.Popup.Y)
	}
	for i, line := range f.Debug {
		ebitenutil.DebugPrintAt(dst, line, 8, int(bar/2)+8+i*lineHeight)
	}
	paintBanner(dst, screen, f)
}

func paintInstance(dst *ebiten.Image, in object.Instance) {
	iw, ih := in.Sprite.Size()
	x, y, w, h := float32(in.X), float32(in.Y), float32(iw), float32(ih)

	switch in.Sprite {
	case object.SpriteDuckLeft, object.SpriteDuckRight, object.SpriteDuckUpLeft, object.SpriteDuckUpRight:
		right := in.Sprite == object.SpriteDuckRight || in.Sprite == object.SpriteDuckUpRight
		headX, beakX := x+w*0.18, x
		if right {
			headX, beakX = x+w*0.82, x+w*0.88
		}
		headY := y + h*0.35
		if in.Sprite == object.SpriteDuckUpLeft || in.Sprite == object.SpriteDuckUpRight {
			headY = y + h*0.2
		}
		vector.DrawFilledRect(dst, x+w*0.2, y+h*0.45, w*0.6, h*0.3, colorDuckBody, false)
		vector.DrawFilledCircle(dst, headX, headY, h*0.13, colorDuckHead, true)
		vector.DrawFilledRect(dst, beakX, headY, w*0.12, h*0.06, colorDuckBeak, false)
		wingY := y + h*0.15
		if (in.Frame/4)%2 == 1 {
			wingY = y + h*0.6
		}
		vector.DrawFilledRect(dst, x+w*0.4, wingY, w*0.2, h*0.3, colorDuckWing, false)
	case object.SpriteDuckShot:
		vector.DrawFilledRect(dst, x+w*0.25, y+h*0.35, w*0.5, h*0.45, colorDuckBody, false)
		vector.DrawFilledCircle(dst, x+w/2, y+h*0.2, h*0.14, colorDuckHead, true)
		vector.StrokeLine(dst, x+w*0.42, y+h*0.12, x+w*0.58, y+h*0.28, 2, colorDuckShot, true)
		vector.StrokeLine(dst, x+w*0.58, y+h*0.12, x+w*0.42, y+h*0.28, 2, colorDuckShot, true)
	case object.SpriteDuckFalling:
		sway := w * 0.12
		if in.Frame%2 == 1 {
			sway = -sway
		}
		vector.DrawFilledRect(dst, x+w*0.3, y+h*0.1, w*0.4, h*0.6, colorDuckBody, false)
		vector.DrawFilledCircle(dst, x+w/2+sway, y+h*0.8, h*0.13, colorDuckHead, true)
	case object.SpriteCloud:
		vector.DrawFilledCircle(dst, x+w*0.3, y+h*0.6, h*0.3, colorCloud, true)
		vector.DrawFilledCircle(dst, x+w*0.7, y+h*0.6, h*0.3, colorCloud, true)
		vector.DrawFilledCircle(dst, x+w*0.5, y+h*0.45, h*0.4, colorCloud, true)
	case object.SpriteBlood0, object.SpriteBlood1, object.SpriteBlood2:
		vector.DrawFilledCircle(dst, x+w/2, y+h/2, min(w, h)/2, colorBlood, true)
	case object.SpriteHole0, object.SpriteHole1, object.SpriteHole2:
		vector.DrawFilledCircle(dst, x+w/2, y+h/2, min(w, h)/2, colorHole, true)
	}
}

func paintHUD(dst *ebiten.Image, screen object.Screen, h *render.HUD) {
	top := fmt.Sprintf("%s   Score: %d   Level %d   Round %d", h.Mode, h.Score, h.Difficulty, h.Round)
	ebitenutil.DebugPrintAt(dst, top, 8, 8)
	clock := "Time: " + h.TimeLeft
	ebitenutil.DebugPrintAt(dst, clock, screen.Width-len(clock)*charWidth-8, 8)

	bottom := screen.Height - lineHeight - 8
	shots := fmt.Sprintf("Shots: %d/%d   Ducks: %d/%d", h.Shots, h.TotalShots, h.DucksShot, h.DucksTotal)
	ebitenutil.DebugPrintAt(dst, shots, 8, bottom)
	right := fmt.Sprintf("%s   Lives: %d/%d", h.Player, h.Lives, h.TotalLives)
	if h.ShowFPS {
		right = fmt.Sprintf("FPS: %d   %s", h.FPS, right)
	}
	ebitenutil.DebugPrintAt(dst, right, screen.Width-len(right)*charWidth-8, bottom)
}

func paintBanner(dst *ebiten.Image, screen object.Screen, f *render.Frame) {
	if f.Banner == render.BannerNone {
		return
	}
	lines := []string{f.Banner.String()}
	switch f.Banner {
	case render.BannerGameOver:
		lines = append(lines, "", "High scores")
		lines = append(lines, scoreLines(f)...)
		lines = append(lines, "", "Click or press any key to play again")
	case render.BannerOptions:
		lines = append(lines, "")
		lines = append(lines, strings.Split(strings.TrimRight(f.Options, "\n"), "\n")...)
		if len(f.Scores) > 0 {
			lines = append(lines, "", "High scores")
			lines = append(lines, scoreLines(f)...)
		}
	case render.BannerPaused:
		lines = append(lines, "", "Press SPACE to resume")
	}

	width := 0
	for _, l := range lines {
		width = max(width, len(l)*charWidth)
	}
	height := len(lines) * lineHeight
	x := (screen.Width - width) / 2
	y := (screen.Height - height) / 2
	vector.DrawFilledRect(dst, float32(x-16), float32(y-16), float32(width+32), float32(height+32), colorShade, false)
	for i, l := range lines {
		ebitenutil.DebugPrintAt(dst, l, x, y+i*lineHeight)
	}
}

func scoreLines(f *render.Frame) []string {
	out := make([]string, 0, len(f.Scores))
	for i, s := range f.Scores {
		out = append(out, fmt.Sprintf("%2d. %-16s %8d  %s", i+1, s.Name, s.Score, s.Mode))
	}
	return out
}
