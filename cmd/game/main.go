package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/tomz197/duckhunter/internal/app"
	"github.com/tomz197/duckhunter/internal/config"
	"github.com/tomz197/duckhunter/internal/draw"
	"github.com/tomz197/duckhunter/internal/input"
	"github.com/tomz197/duckhunter/internal/loop"
	"github.com/tomz197/duckhunter/internal/score"
	"golang.org/x/term"
)

func main() {
	opts := config.LoadOptions()
	opts.RegisterFlags(flag.CommandLine)
	flag.Parse()

	// The canvas owns the terminal, so logs only reach stderr when it is redirected.
	var logOut io.Writer = os.Stderr
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logOut = io.Discard
	}
	logger, closeLog, err := app.NewLogger(opts, logOut, "duckhunter")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}

	err = run(opts, logger)
	_ = term.Restore(fd, oldState)
	if err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts config.Options, logger *log.Logger) error {
	scores, err := score.Open(opts.ScoreFile, logger)
	if err != nil {
		return err
	}

	sounds, closeAudio := app.NewAudio(opts, logger, true)
	defer closeAudio()

	surface := draw.NewTerminal(os.Stdout, nil)
	surface.Start()
	defer surface.Stop()

	buf := &input.Buffer{}
	stream := input.StartStream(bufio.NewReader(os.Stdin))
	engine, err := loop.NewEngine(loop.Options{
		Config:  opts,
		Surface: surface,
		Input:   buf,
		Pump:    func() error { return stream.Pump(buf, surface.ToPlayfield) },
		Audio:   sounds,
		Scores:  scores,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return engine.Run(ctx)
}
