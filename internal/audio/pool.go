package audio

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// DefaultWorkers is the pool size used when none is given.
const DefaultWorkers = 5

// ErrPoolClosed is returned by Submit after Close or Drain.
var ErrPoolClosed = errors.New("audio: pool closed")

// Task is a unit of work. ctx is cancelled when the pool is closed hard.
type Task func(ctx context.Context)

// Pool runs tasks on a fixed set of workers in submission order.
type Pool struct {
	mu       sync.Mutex
	cond     *sync.Cond
	queue    []Task
	accept   bool
	stopping bool
	active   int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *log.Logger
}

// NewPool starts workers goroutines. A non-positive count uses DefaultWorkers.
func NewPool(workers int, logger *log.Logger) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		accept: true,
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
	p.cond = sync.NewCond(&p.mu)
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}
	return p
}

// Submit queues task without blocking.
func (p *Pool) Submit(task Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.accept {
		return ErrPoolClosed
	}
	p.queue = append(p.queue, task)
	p.cond.Signal()
	return nil
}

// Pending returns the number of queued tasks not yet picked up.
func (p *Pool) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

// Active returns the number of tasks currently running.
func (p *Pool) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Close drops queued tasks, cancels running ones and waits for the workers to exit.
func (p *Pool) Close() {
	p.mu.Lock()
	p.accept = false
	p.stopping = true
	p.queue = nil
	p.cond.Broadcast()
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
}

// Drain stops accepting tasks and waits until everything queued has run.
// A task that runs until its context is cancelled, such as a looping cue,
// keeps Drain waiting; Dispatcher.Drain stops loops first.
func (p *Pool) Drain() {
	p.mu.Lock()
	p.accept = false
	p.cond.Broadcast()
	p.mu.Unlock()

	p.wg.Wait()
	p.cancel()
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && p.accept && !p.stopping {
			p.cond.Wait()
		}
		if p.stopping || len(p.queue) == 0 {
			p.mu.Unlock()
			return
		}
		task := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
		p.active++
		p.mu.Unlock()

		p.run(id, task)

		p.mu.Lock()
		p.active--
		p.mu.Unlock()
	}
}

func (p *Pool) run(id int, task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("audio task panicked", "worker", id, "panic", r)
		}
	}()
	task(p.ctx)
}
