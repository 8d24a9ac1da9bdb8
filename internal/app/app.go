// Package app holds the setup shared by the command entry points.
package app

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/tomz197/duckhunter/internal/audio"
	"github.com/tomz197/duckhunter/internal/config"
)

// NewLogger builds the process logger. Output goes to opts.LogFile when set,
// otherwise to fallback. Debug mode lowers the level to debug.
func NewLogger(opts config.Options, fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	out := fallback
	closeFn := func() {}
	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}
	if out == nil {
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if opts.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}

// NewAudio builds a cue dispatcher on a fresh worker pool. With useDevice set
// and sound enabled it plays through the speaker, falling back to a silent
// backend when no device can be opened. The returned func releases everything.
func NewAudio(opts config.Options, logger *log.Logger, useDevice bool) (*audio.Dispatcher, func()) {
	var backend audio.Backend = &audio.Silent{}
	cleanup := func() {}

	if useDevice && opts.Sound {
		b := audio.NewBeepBackend()
		if err := b.Initialize(); err != nil {
			logger.Warn("audio unavailable, continuing without sound", "err", err)
		} else {
			backend = b
			cleanup = b.Cleanup
		}
	}

	pool := audio.NewPool(audio.DefaultWorkers, logger)
	d := audio.NewDispatcher(pool, backend, opts.AudioSwitches(), logger)
	return d, func() {
		d.Drain()
		cleanup()
	}
}
