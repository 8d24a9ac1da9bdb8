package audio

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// BeepBackend synthesizes every cue and plays it through the system speaker.
type BeepBackend struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewBeepBackend creates an uninitialized backend. Call Initialize before use.
func NewBeepBackend() *BeepBackend {
	return &BeepBackend{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker. It fails on machines without an audio device;
// callers fall back to Silent.
func (b *BeepBackend) Initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Cleanup silences everything still on the mixer.
func (b *BeepBackend) Cleanup() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return
	}
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	b.initialized = false
}

// Play mixes cue in and waits for it to end or for ctx to be cancelled.
func (b *BeepBackend) Play(ctx context.Context, cue Cue) error {
	b.mu.Lock()
	ready := b.initialized
	b.mu.Unlock()
	if !ready {
		return nil
	}

	v, ok := voices[cue]
	if !ok {
		return fmt.Errorf("no voice for cue %v", cue)
	}
	gen := newSynth(sampleRate, v)

	done := make(chan struct{})
	var streamer beep.Streamer = gen
	if !cue.Looping() {
		streamer = beep.Seq(
			beep.Take(sampleRate.N(v.length), gen),
			beep.Callback(func() { close(done) }),
		)
	}
	ctrl := &beep.Ctrl{Streamer: streamer}

	speaker.Lock()
	b.mixer.Add(ctrl)
	speaker.Unlock()

	select {
	case <-done:
	case <-ctx.Done():
		speaker.Lock()
		ctrl.Streamer = nil
		speaker.Unlock()
	}
	return nil
}

// voice describes how to synthesize a cue. For looping cues length is the
// period of the pattern.
type voice struct {
	length time.Duration
	wave   func(t float64, noise float64) float64
}

var voices = map[Cue]voice{
	GunHit: {
		length: 250 * time.Millisecond,
		wave: func(t, noise float64) float64 {
			return 0.5 * noise * math.Exp(-t*18)
		},
	},
	GunMiss: {
		length: 350 * time.Millisecond,
		wave: func(t, noise float64) float64 {
			freq := 2200 - 4000*t
			return 0.2*math.Sin(2*math.Pi*freq*t)*math.Exp(-t*6) + 0.2*noise*math.Exp(-t*40)
		},
	},
	GunNoAmmo: {
		length: 40 * time.Millisecond,
		wave: func(t, _ float64) float64 {
			return 0.3 * square(1800, t) * math.Exp(-t*120)
		},
	},
	GunReload: {
		length: 300 * time.Millisecond,
		wave: func(t, noise float64) float64 {
			click := 0.0
			if t < 0.03 || (t > 0.18 && t < 0.21) {
				click = 0.35 * noise
			}
			return click
		},
	},
	DuckAliveLoop: {
		length: 900 * time.Millisecond,
		wave: func(t, _ float64) float64 {
			t = math.Mod(t, 0.9)
			if t > 0.16 {
				return 0
			}
			env := math.Sin(math.Pi * t / 0.16)
			freq := 520 - 400*t
			return 0.12 * env * saw(freq, t)
		},
	},
	DuckDead: {
		length: 200 * time.Millisecond,
		wave: func(t, noise float64) float64 {
			return (0.4*math.Sin(2*math.Pi*70*t) + 0.1*noise) * math.Exp(-t*20)
		},
	},
	AmbienceLoop: {
		length: 4 * time.Second,
		wave: func(t, noise float64) float64 {
			swell := 0.5 + 0.5*math.Sin(2*math.Pi*t/4)
			return 0.04 * swell * noise
		},
	},
}

func square(freq, t float64) float64 {
	if math.Sin(2*math.Pi*freq*t) >= 0 {
		return 1
	}
	return -1
}

func saw(freq, t float64) float64 {
	p := freq * t
	return 2 * (p - math.Floor(p+0.5))
}

// synth streams a voice forever; non-looping cues are cut with beep.Take.
type synth struct {
	sr     beep.SampleRate
	pos    int
	v      voice
	rnd    *rand.Rand
	smooth float64
}

func newSynth(sr beep.SampleRate, v voice) *synth {
	return &synth{sr: sr, v: v, rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (g *synth) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		g.smooth = 0.7*g.smooth + 0.3*(g.rnd.Float64()*2-1)
		sample := g.v.wave(t, g.smooth)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *synth) Err() error {
	return nil
}
