package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/duckhunter/internal/app"
	"github.com/tomz197/duckhunter/internal/config"
	"github.com/tomz197/duckhunter/internal/draw"
	"github.com/tomz197/duckhunter/internal/input"
	"github.com/tomz197/duckhunter/internal/loop"
	"github.com/tomz197/duckhunter/internal/score"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"

	maxUsernameLength = 16
	shutdownNotice    = 5 * time.Second
)

func main() {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	opts := config.LoadOptions()

	logger, closeLog, err := app.NewLogger(opts, os.Stderr, "ssh")
	if err != nil {
		log.Fatal("logger", "err", err)
	}
	defer closeLog()
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "scores", opts.ScoreFile)

	// One score table is shared by every session.
	scores, err := score.Open(opts.ScoreFile, logger)
	if err != nil {
		logger.Fatal("open score file", "err", err)
	}

	games := &sessions{active: make(map[*session]struct{})}
	sshOpts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware(games, opts, scores, logger),
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		sshOpts = append(sshOpts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(sshOpts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server", "sessions", games.count())
	games.shutdown(shutdownNotice)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware runs one game per SSH session.
func gameMiddleware(games *sessions, base config.Options, scores *score.Store, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			user := sess.User()
			if len(user) > maxUsernameLength {
				user = user[:maxUsernameLength]
			}
			sessLog := logger.With("user", user)
			sessLog.Info("new game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			if err := play(sess, games, base, user, scores, sizeTracker, sessLog); err != nil {
				sessLog.Error("game error", "err", err)
			}
			sessLog.Info("session ended")
			next(sess)
		}
	}
}

func play(sess ssh.Session, games *sessions, opts config.Options, user string, scores *score.Store, size *sizeTracker, logger *log.Logger) error {
	opts.Player = user
	sounds, closeAudio := app.NewAudio(opts, logger, false)
	defer closeAudio()

	surface := draw.NewTerminal(sess, size.getSize)
	surface.Start()
	defer surface.Stop()

	buf := &input.Buffer{}
	stream := input.StartStream(bufio.NewReader(sess))
	idle := newIdleWatch(surface)
	engine, err := loop.NewEngine(loop.Options{
		Config:  opts,
		Surface: surface,
		Input:   buf,
		Pump: func() error {
			if err := stream.Pump(buf, surface.ToPlayfield); err != nil {
				return err
			}
			return idle.check(stream.Received(), time.Now())
		},
		Audio:  sounds,
		Scores: scores,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	s := &session{engine: engine, surface: surface}
	games.add(s)
	defer games.remove(s)
	return engine.Run(sess.Context())
}

// idleWatch warns and then disconnects players who stop sending input.
type idleWatch struct {
	surface  *draw.Terminal
	seen     int
	last     time.Time
	warning  bool
	lastSecs int
}

func newIdleWatch(surface *draw.Terminal) *idleWatch {
	return &idleWatch{surface: surface, last: time.Now()}
}

func (w *idleWatch) check(received int, now time.Time) error {
	if received != w.seen {
		w.seen = received
		w.last = now
		if w.warning {
			w.warning = false
			w.surface.SetNotice(nil)
		}
		return nil
	}

	idle := now.Sub(w.last)
	switch {
	case idle > loop.InactivityDisconnectUser:
		return input.ErrClosed
	case idle > loop.InactivityWarnUser:
		secs := int((loop.InactivityDisconnectUser - idle).Seconds())
		if !w.warning || secs != w.lastSecs {
			w.warning = true
			w.lastSecs = secs
			w.surface.SetNotice([]string{
				"INACTIVITY WARNING",
				"",
				fmt.Sprintf("You will be disconnected in %d seconds.", secs),
				"Press any key to continue",
			})
		}
	}
	return nil
}

type session struct {
	engine  *loop.Engine
	surface *draw.Terminal
}

// sessions tracks running games so a shutdown can reach every player.
type sessions struct {
	mu     sync.Mutex
	active map[*session]struct{}
	wg     sync.WaitGroup
}

func (s *sessions) add(g *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[g] = struct{}{}
	s.wg.Add(1)
}

func (s *sessions) remove(g *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.active[g]; ok {
		delete(s.active, g)
		s.wg.Done()
	}
}

func (s *sessions) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

// shutdown warns every player, waits for the notice period, then stops the
// remaining games and waits for them to end.
func (s *sessions) shutdown(notice time.Duration) {
	s.mu.Lock()
	for g := range s.active {
		g.surface.SetNotice([]string{
			"SERVER SHUTTING DOWN",
			"",
			"The server is restarting for maintenance.",
			"Please reconnect in a moment.",
		})
	}
	s.mu.Unlock()
	if s.count() > 0 {
		time.Sleep(notice)
	}

	s.mu.Lock()
	for g := range s.active {
		g.engine.Stop()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
