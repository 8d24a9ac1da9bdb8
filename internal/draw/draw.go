// Package draw renders game frames to an ANSI terminal using half-block cells.
package draw

import "strconv"

// Point represents a 2D coordinate in logical space.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is an xterm 256-colour palette index. Transparent leaves a pixel unset.
type Color uint8

const Transparent Color = 0

// Palette used by the sprite painters and toolbars.
const (
	ColorSky        Color = 117
	ColorSkyFlyAway Color = 217
	ColorGrass      Color = 64
	ColorToolbar    Color = 236
	ColorDuckBody   Color = 94
	ColorDuckHead   Color = 28
	ColorDuckWing   Color = 137
	ColorDuckBeak   Color = 214
	ColorDuckEye    Color = 231
	ColorDuckShot   Color = 196
	ColorCloud      Color = 255
	ColorCloudEdge  Color = 253
	ColorBlood      Color = 124
	ColorHole       Color = 238
)

// ANSI text attributes written through ChunkWriter.
const (
	ColorReset      = "\033[0m"
	ColorBrightCyan = "\033[96m"
	ColorYellow     = "\033[93m"
	ColorBold       = "\033[1m"
)

// Foreground returns the escape sequence selecting c as text colour.
func Foreground(c Color) string {
	return "\033[38;5;" + strconv.Itoa(int(c)) + "m"
}

// Background returns the escape sequence selecting c as background colour.
func Background(c Color) string {
	return "\033[48;5;" + strconv.Itoa(int(c)) + "m"
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
