package audio

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// Backend turns a cue into sound. Play blocks until the cue has finished,
// or for looping cues until ctx is cancelled.
type Backend interface {
	Play(ctx context.Context, cue Cue) error
}

// Switches enables cue categories. All are on by default.
type Switches struct {
	Shot     bool
	Duck     bool
	Ambience bool
}

// AllOn enables every category.
var AllOn = Switches{Shot: true, Duck: true, Ambience: true}

func (s Switches) enabled(c Category) bool {
	switch c {
	case CategoryShot:
		return s.Shot
	case CategoryDuck:
		return s.Duck
	case CategoryAmbience:
		return s.Ambience
	}
	return false
}

type loopHandle struct {
	cancel context.CancelFunc
}

// Dispatcher is the fire-and-forget cue interface used by the game loop.
type Dispatcher struct {
	pool    *Pool
	backend Backend
	logger  *log.Logger

	mu       sync.Mutex
	switches Switches
	loops    map[Cue]*loopHandle
	draining bool
}

// NewDispatcher plays cues through backend on pool.
func NewDispatcher(pool *Pool, backend Backend, switches Switches, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{
		pool:     pool,
		backend:  backend,
		logger:   logger,
		switches: switches,
		loops:    make(map[Cue]*loopHandle),
	}
}

// SetSwitches replaces the category switches. Loops in a category that is
// turned off are stopped.
func (d *Dispatcher) SetSwitches(s Switches) {
	d.mu.Lock()
	d.switches = s
	var off []Cue
	for cue := range d.loops {
		if !s.enabled(cue.Category()) {
			off = append(off, cue)
		}
	}
	d.mu.Unlock()
	for _, cue := range off {
		d.Stop(cue)
	}
}

// Enabled reports whether cue would currently be played.
func (d *Dispatcher) Enabled(cue Cue) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.switches.enabled(cue.Category())
}

// Play queues a single playback of cue.
func (d *Dispatcher) Play(cue Cue) {
	if !d.Enabled(cue) {
		return
	}
	if err := d.pool.Submit(func(ctx context.Context) { d.play(ctx, cue) }); err != nil {
		d.logger.Debug("cue dropped", "cue", cue, "err", err)
	}
}

// Loop starts cue repeating until Stop. A cue that is already looping is left alone.
func (d *Dispatcher) Loop(cue Cue) {
	d.mu.Lock()
	if !d.switches.enabled(cue.Category()) {
		d.mu.Unlock()
		return
	}
	if _, ok := d.loops[cue]; ok || d.draining {
		d.mu.Unlock()
		return
	}
	loopCtx, cancel := context.WithCancel(context.Background())
	h := &loopHandle{cancel: cancel}
	d.loops[cue] = h
	d.mu.Unlock()

	err := d.pool.Submit(func(ctx context.Context) {
		ctx, stop := context.WithCancel(ctx)
		defer stop()
		unhook := context.AfterFunc(loopCtx, stop)
		defer unhook()

		d.play(ctx, cue)
		d.release(cue, h)
	})
	if err != nil {
		d.logger.Debug("loop dropped", "cue", cue, "err", err)
		d.release(cue, h)
	}
}

// Stop ends a looping cue.
func (d *Dispatcher) Stop(cue Cue) {
	d.mu.Lock()
	h, ok := d.loops[cue]
	delete(d.loops, cue)
	d.mu.Unlock()
	if ok {
		h.cancel()
	}
}

// StopAll ends every looping cue.
func (d *Dispatcher) StopAll() {
	d.mu.Lock()
	loops := d.loops
	d.loops = make(map[Cue]*loopHandle)
	d.mu.Unlock()
	for _, h := range loops {
		h.cancel()
	}
}

// Looping reports whether cue is currently looping.
func (d *Dispatcher) Looping(cue Cue) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.loops[cue]
	return ok
}

// Drain refuses new loops, stops the running ones and waits for queued cues
// to finish playing.
func (d *Dispatcher) Drain() {
	d.mu.Lock()
	d.draining = true
	d.mu.Unlock()
	d.StopAll()
	d.pool.Drain()
}

// Close stops all loops and shuts the pool down hard.
func (d *Dispatcher) Close() {
	d.StopAll()
	d.pool.Close()
}

func (d *Dispatcher) release(cue Cue, h *loopHandle) {
	d.mu.Lock()
	if d.loops[cue] == h {
		delete(d.loops, cue)
	}
	d.mu.Unlock()
	h.cancel()
}

func (d *Dispatcher) play(ctx context.Context, cue Cue) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("cue panicked", "cue", cue, "panic", r)
		}
	}()
	if err := d.backend.Play(ctx, cue); err != nil && ctx.Err() == nil {
		d.logger.Warn("cue failed", "cue", cue, "err", err)
	}
}
