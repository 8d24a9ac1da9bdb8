// Package input decodes player input and hands it to the game loop.
package input

import (
	"fmt"
	"sync"
)

// Key is a discrete command.
type Key int

const (
	KeyNone Key = iota
	KeyPause
	KeyOptions
	KeyToggleFPS
	KeyQuit
	KeyMute
	KeyNudgeUp
	KeyNudgeDown
	KeyNudgeLeft
	KeyNudgeRight
	KeySpawnDuck
	KeyRemoveDuck
	KeyAmmoUp
	KeyAmmoDown
	KeyReload
)

var keyNames = map[Key]string{
	KeyNone:       "none",
	KeyPause:      "pause",
	KeyOptions:    "options",
	KeyToggleFPS:  "toggle-fps",
	KeyQuit:       "quit",
	KeyMute:       "mute",
	KeyNudgeUp:    "nudge-up",
	KeyNudgeDown:  "nudge-down",
	KeyNudgeLeft:  "nudge-left",
	KeyNudgeRight: "nudge-right",
	KeySpawnDuck:  "spawn-duck",
	KeyRemoveDuck: "remove-duck",
	KeyAmmoUp:     "ammo-up",
	KeyAmmoDown:   "ammo-down",
	KeyReload:     "reload",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// Debug reports whether k is only honoured in debug mode.
func (k Key) Debug() bool {
	return k >= KeyNudgeUp
}

// Button identifies a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
)

// Click is a pointer press in playfield coordinates.
type Click struct {
	X, Y   int
	Button Button
}

// State is what the loop sees once per tick.
type State struct {
	Click    Click
	HasClick bool
	Key      Key
}

// Buffer is the single-slot handoff between an input producer and the loop.
// Later writes replace earlier ones that have not been drained yet.
type Buffer struct {
	mu    sync.Mutex
	state State
}

// SetClick records a pointer press.
func (b *Buffer) SetClick(c Click) {
	b.mu.Lock()
	b.state.Click = c
	b.state.HasClick = true
	b.mu.Unlock()
}

// SetKey records a key press.
func (b *Buffer) SetKey(k Key) {
	if k == KeyNone {
		return
	}
	b.mu.Lock()
	b.state.Key = k
	b.mu.Unlock()
}

// Drain returns the buffered input and empties the buffer.
func (b *Buffer) Drain() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.state
	b.state = State{}
	return s
}
