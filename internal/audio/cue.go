// Package audio plays the game's sound cues on a bounded pool of workers.
package audio

import "fmt"

// Cue is one entry in the sound catalogue.
type Cue int

const (
	GunHit Cue = iota
	GunMiss
	GunNoAmmo
	GunReload
	DuckAliveLoop
	DuckDead
	AmbienceLoop
	cueCount
)

// Category groups cues under one on/off switch.
type Category int

const (
	CategoryShot Category = iota
	CategoryDuck
	CategoryAmbience
)

var cueNames = [cueCount]string{
	GunHit:        "gun-hit",
	GunMiss:       "gun-miss",
	GunNoAmmo:     "gun-no-ammo",
	GunReload:     "gun-reload",
	DuckAliveLoop: "duck-alive-loop",
	DuckDead:      "duck-dead",
	AmbienceLoop:  "ambience-loop",
}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return fmt.Sprintf("Cue(%d)", int(c))
	}
	return cueNames[c]
}

// Category returns the switch that controls c.
func (c Cue) Category() Category {
	switch c {
	case DuckAliveLoop, DuckDead:
		return CategoryDuck
	case AmbienceLoop:
		return CategoryAmbience
	}
	return CategoryShot
}

// Looping reports whether c repeats until stopped.
func (c Cue) Looping() bool {
	return c == DuckAliveLoop || c == AmbienceLoop
}

// Cues returns the whole catalogue.
func Cues() []Cue {
	out := make([]Cue, 0, cueCount)
	for c := Cue(0); c < cueCount; c++ {
		out = append(out, c)
	}
	return out
}
