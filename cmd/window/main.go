package main

import (
	"context"
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/tomz197/duckhunter/internal/app"
	"github.com/tomz197/duckhunter/internal/config"
	"github.com/tomz197/duckhunter/internal/input"
	"github.com/tomz197/duckhunter/internal/loop"
	"github.com/tomz197/duckhunter/internal/render/ebiten"
	"github.com/tomz197/duckhunter/internal/score"
)

func main() {
	opts := config.LoadOptions()
	opts.RegisterFlags(flag.CommandLine)
	flag.Parse()

	logger, closeLog, err := app.NewLogger(opts, os.Stderr, "duckhunter")
	if err != nil {
		log.Fatal("logger", "err", err)
	}
	defer closeLog()

	if err := run(opts, logger); err != nil {
		logger.Error("game error", "err", err)
		closeLog()
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

	surface := ebiten.NewSurface()
	buf := &input.Buffer{}
	engine, err := loop.NewEngine(loop.Options{
		Config:  opts,
		Surface: surface,
		Input:   buf,
		Audio:   sounds,
		Scores:  scores,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	// The window must own the main goroutine, so the loop runs beside it.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- engine.Run(ctx)
		surface.Close()
	}()

	winErr := ebiten.Run(ebiten.NewGame(surface, buf, engine.Stop), "Duck Hunter")
	cancel()
	if err := <-done; err != nil {
		return err
	}
	return winErr
}
