package score

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestInsertKeepsTopTen verifies eleven inserts evict the lowest score
func TestInsertKeepsTopTen(t *testing.T) {
	b := NewBoard(nil)
	scores := []int{50, 10, 90, 30, 70, 110, 20, 60, 80, 100, 40}
	for _, s := range scores {
		b.Insert(Entry{Score: s})
	}
	top := b.Top()
	if len(top) != MaxEntries {
		t.Fatalf("len = %d", len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i-1].Score < top[i].Score {
			t.Fatalf("not descending at %d: %v", i, top)
		}
	}
	if top[0].Score != 110 || top[len(top)-1].Score != 20 {
		t.Errorf("top = %d bottom = %d", top[0].Score, top[len(top)-1].Score)
	}
}

// TestInsertTieGoesAbove verifies a new equal score ranks above older entries
func TestInsertTieGoesAbove(t *testing.T) {
	b := NewBoard([]Entry{{Name: "old", Score: 100}, {Name: "low", Score: 10}})
	rank := b.Insert(Entry{Name: "new", Score: 100})
	if rank != 0 {
		t.Errorf("rank = %d, want 0", rank)
	}
	if got := b.Top()[0].Name; got != "new" {
		t.Errorf("first = %s", got)
	}
	if rank := b.Insert(Entry{Name: "lowest", Score: 1}); rank != 3 {
		t.Errorf("lowest rank = %d, want appended at 3", rank)
	}
}

// TestInsertFullBoard verifies a low score on a full board does not place
func TestInsertFullBoard(t *testing.T) {
	b := NewBoard(nil)
	for i := 0; i < MaxEntries; i++ {
		b.Insert(Entry{Score: 100})
	}
	if b.Qualifies(99) {
		t.Error("99 should not qualify")
	}
	if rank := b.Insert(Entry{Score: 99}); rank != -1 {
		t.Errorf("rank = %d, want -1", rank)
	}
	if n := len(b.Top()); n != MaxEntries {
		t.Errorf("len = %d", n)
	}
}

// TestStoreRoundTrip verifies submitted scores survive reopening
func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	s, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Top()) != 0 {
		t.Fatal("new store should be empty")
	}
	if _, err := s.Submit(Entry{Name: "a", Score: 10, Mode: "Classic Quacks"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit(Entry{Name: "b", Score: 30}); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	top := reopened.Top()
	if len(top) != 2 || top[0].Name != "b" || top[1].Name != "a" {
		t.Fatalf("reopened = %+v", top)
	}
	if top[0].At.IsZero() {
		t.Error("timestamp not recorded")
	}
}

// TestStoreSkipsLowScores verifies a score below a full table leaves the file alone
func TestStoreSkipsLowScores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	s, err := Open(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < MaxEntries; i++ {
		if _, err := s.Submit(Entry{Name: "hi", Score: 500}); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	rank, err := s.Submit(Entry{Name: "lo", Score: 10})
	if err != nil || rank != -1 {
		t.Fatalf("rank = %d, err = %v", rank, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file rewritten for an unplaced score: %v", err)
	}
}

// TestStoreRejectsNewerVersion verifies the version gate
func TestStoreRejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	if err := os.WriteFile(path, []byte(`{"version": 99, "entries": []}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path, nil); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("err = %v", err)
	}
}

// TestStoreCorruptFile verifies decode errors are reported
func TestStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path, nil); err == nil {
		t.Error("expected decode error")
	}
}
