package score

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// FileVersion is the current score file format.
const FileVersion = 1

// ErrUnsupportedVersion is returned when a score file has a newer format.
var ErrUnsupportedVersion = errors.New("unsupported score file version")

type fileFormat struct {
	Version int     `json:"version"`
	Entries []Entry `json:"entries"`
}

// Store is a Board backed by a JSON file. It is safe for concurrent use so
// several sessions can share one table.
type Store struct {
	mu     sync.Mutex
	path   string
	board  *Board
	logger *log.Logger
	now    func() time.Time
}

// Open loads the table at path. A missing file yields an empty table.
func Open(path string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Store{path: path, board: NewBoard(nil), logger: logger, now: time.Now}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("no score file yet", "path", s.path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read scores: %w", err)
	}
	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("decode scores %s: %w", s.path, err)
	}
	if f.Version > FileVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, f.Version)
	}
	s.board = NewBoard(f.Entries)
	return nil
}

// Submit records a finished game and writes the table back to disk.
// The returned rank is 0-based, or -1 if the score did not place.
func (s *Store) Submit(e Entry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.At.IsZero() {
		e.At = s.now()
	}
	rank := s.board.Insert(e)
	if rank < 0 {
		s.logger.Info("score below the table", "name", e.Name, "score", e.Score)
		return rank, nil
	}
	s.logger.Info("score submitted", "name", e.Name, "score", e.Score, "rank", rank+1)
	if err := s.save(); err != nil {
		return rank, err
	}
	return rank, nil
}

// Top returns the current table.
func (s *Store) Top() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Top()
}

// save writes to a temporary file and renames it over the table.
func (s *Store) save() error {
	data, err := json.MarshalIndent(fileFormat{Version: FileVersion, Entries: s.board.Top()}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".scores-*.json")
	if err != nil {
		return fmt.Errorf("save scores: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save scores: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save scores: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save scores: %w", err)
	}
	return nil
}
