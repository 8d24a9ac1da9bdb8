// Package loop provides the main game loop and session state.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/duckhunter/internal/audio"
	"github.com/tomz197/duckhunter/internal/config"
	"github.com/tomz197/duckhunter/internal/input"
	"github.com/tomz197/duckhunter/internal/mode"
	"github.com/tomz197/duckhunter/internal/object"
	"github.com/tomz197/duckhunter/internal/player"
	"github.com/tomz197/duckhunter/internal/render"
	"github.com/tomz197/duckhunter/internal/rng"
	"github.com/tomz197/duckhunter/internal/score"
)

// Audio receives cues from the loop. *audio.Dispatcher implements it.
type Audio interface {
	Play(cue audio.Cue)
	Loop(cue audio.Cue)
	Stop(cue audio.Cue)
}

// switchable is implemented by Audio sinks whose cue categories can change
// while the game runs.
type switchable interface {
	SetSwitches(s audio.Switches)
}

// Scores records finished games. *score.Store implements it.
type Scores interface {
	Submit(e score.Entry) (int, error)
	Top() []score.Entry
}

// Options configures an Engine. Surface and Input are required.
type Options struct {
	Config  config.Options
	Mode    *mode.Mode
	Surface render.Surface
	Input   *input.Buffer
	// Pump, when set, is called at the start of every tick to move pending
	// input into Input. Returning input.ErrClosed ends the loop.
	Pump   func() error
	Audio  Audio
	Scores Scores
	Clock  Clock
	Rand   *rng.Randomizer
	Logger *log.Logger
}

// Engine owns one game session. Everything except the input buffer is
// touched only from the goroutine running Run or Tick.
type Engine struct {
	opts    config.Options
	mode    *mode.Mode
	surface render.Surface
	input   *input.Buffer
	pump    func() error
	audio   Audio
	scores  Scores
	clock   Clock
	rand    *rng.Randomizer
	logger  *log.Logger
	screen  object.Screen

	state   State
	player  *player.Player
	running atomic.Bool
	started bool
}

// NewEngine validates opts and builds an engine. The first round starts on
// the first tick.
func NewEngine(o Options) (*Engine, error) {
	if o.Surface == nil {
		return nil, errors.New("loop: a render surface is required")
	}
	if o.Input == nil {
		return nil, errors.New("loop: an input buffer is required")
	}
	if o.Mode == nil {
		m, err := mode.ByName(o.Config.Mode, o.Config.Debug)
		if err != nil {
			return nil, err
		}
		o.Mode = m
	}
	if o.Audio == nil {
		o.Audio = noAudio{}
	}
	if o.Clock == nil {
		o.Clock = SystemClock{}
	}
	if o.Rand == nil {
		o.Rand = rng.New()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	name := o.Config.Player
	if name == "" {
		name = "Player"
	}

	e := &Engine{
		opts:    o.Config,
		mode:    o.Mode,
		surface: o.Surface,
		input:   o.Input,
		pump:    o.Pump,
		audio:   o.Audio,
		scores:  o.Scores,
		clock:   o.Clock,
		rand:    o.Rand,
		logger:  o.Logger,
		screen:  o.Surface.Size(),
	}
	e.player = player.New(name, e.mode.Ammo, e.mode.Lives)
	e.state.ShowFPS = o.Config.ShowFPS
	e.running.Store(true)
	return e, nil
}

// Run ticks until the player quits, ctx is cancelled, or drawing fails.
// Each tick is followed by a wait until FrameBudget has elapsed since it
// started; overruns are not made up.
func (e *Engine) Run(ctx context.Context) error {
	e.logger.Info("game started", "mode", e.mode.Name, "player", e.player.Name)
	defer e.shutdown()

	for e.running.Load() {
		tickStart := time.Now()
		if ctx.Err() != nil {
			break
		}
		if e.pump != nil {
			if err := e.pump(); err != nil {
				if !errors.Is(err, input.ErrClosed) {
					return fmt.Errorf("read input: %w", err)
				}
				e.running.Store(false)
			}
		}

		e.Tick()

		if err := e.surface.Draw(e.Frame()); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		e.state.usedTime = time.Since(tickStart)
		pace(tickStart)
	}
	return nil
}

// pace holds the caller until FrameBudget has passed since start. It sleeps
// while far from the deadline and yields the processor for the remainder.
func pace(start time.Time) {
	for {
		remaining := FrameBudget - time.Since(start)
		if remaining <= 0 {
			return
		}
		if remaining > sleepSlack {
			time.Sleep(remaining - sleepSlack)
			continue
		}
		runtime.Gosched()
	}
}

func (e *Engine) shutdown() {
	e.audio.Stop(audio.DuckAliveLoop)
	e.audio.Stop(audio.AmbienceLoop)
	e.logger.Info("game ended", "player", e.player.Name, "score", e.player.Score)
}

// Running reports whether the session is still going.
func (e *Engine) Running() bool { return e.running.Load() }

// Stop ends Run after the current tick. It is safe to call from any goroutine.
func (e *Engine) Stop() { e.running.Store(false) }

// Player returns the current player.
func (e *Engine) Player() *player.Player { return e.player }

// Mode returns the active game mode.
func (e *Engine) Mode() *mode.Mode { return e.mode }

// State returns the session state for inspection.
func (e *Engine) State() *State { return &e.state }

// start runs once before the first tick.
func (e *Engine) start() {
	e.started = true
	e.spawnClouds()
	e.audio.Loop(audio.AmbienceLoop)
	e.ResetRound()
}

func (e *Engine) spawnClouds() {
	n := e.rand.Next(CloudsMin, CloudsMax)
	e.state.Clouds = e.state.Clouds[:0]
	for i := 0; i < n; i++ {
		e.state.Clouds = append(e.state.Clouds, object.NewCloud(e.screen, e.newRand()))
	}
}

// newRand derives an independent Randomizer from the engine's source.
func (e *Engine) newRand() *rng.Randomizer {
	return rng.NewSeeded(int64(e.rand.Next(0, math.MaxInt32)))
}

func (e *Engine) updateContext() object.UpdateContext {
	return object.UpdateContext{Screen: e.screen}
}

type noAudio struct{}

func (noAudio) Play(audio.Cue) {}
func (noAudio) Loop(audio.Cue) {}
func (noAudio) Stop(audio.Cue) {}
