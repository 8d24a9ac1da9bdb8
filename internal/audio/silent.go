package audio

import (
	"context"
	"sync"
)

// Silent is a Backend that makes no sound. It records what it was asked to
// play, which the ssh frontend and the tests rely on.
type Silent struct {
	mu     sync.Mutex
	played []Cue
}

// Play records cue. Looping cues block until ctx is cancelled.
func (s *Silent) Play(ctx context.Context, cue Cue) error {
	s.mu.Lock()
	s.played = append(s.played, cue)
	s.mu.Unlock()
	if cue.Looping() {
		<-ctx.Done()
	}
	return nil
}

// Played returns the cues seen so far, in order.
func (s *Silent) Played() []Cue {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Cue, len(s.played))
	copy(out, s.played)
	return out
}

// Count returns how many times cue was played.
func (s *Silent) Count(cue Cue) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.played {
		if c == cue {
			n++
		}
	}
	return n
}
