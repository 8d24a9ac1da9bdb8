package main

import (
	_ "embed"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/duckhunter/internal/app"
	"github.com/tomz197/duckhunter/internal/config"
	"github.com/tomz197/duckhunter/internal/score"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	opts := config.LoadOptions()

	logger, closeLog, err := app.NewLogger(opts, os.Stderr, "web")
	if err != nil {
		log.Fatal("logger", "err", err)
	}
	defer closeLog()

	addr := net.JoinHostPort(host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           newMux(sshHost, opts.ScoreFile, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("starting web server", "addr", "http://"+addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

func newMux(sshHost, scoreFile string, logger *log.Logger) *http.ServeMux {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	})
	mux.HandleFunc("GET /scores", func(w http.ResponseWriter, r *http.Request) {
		// The ssh server owns the file; reopen it so every request sees its latest save.
		store, err := score.Open(scoreFile, logger)
		if err != nil {
			logger.Error("read scores", "err", err)
			http.Error(w, "scores unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(store.Top()); err != nil {
			logger.Warn("write scores", "err", err)
		}
	})
	return mux
}
