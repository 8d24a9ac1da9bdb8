// Package score keeps the ranked high-score table and persists it.
package score

import "time"

// MaxEntries is the size of the high-score table.
const MaxEntries = 10

// Entry is one finished game.
type Entry struct {
	Name       string    `json:"name"`
	Score      int       `json:"score"`
	Mode       string    `json:"mode,omitempty"`
	Difficulty int       `json:"difficulty,omitempty"`
	Round      int       `json:"round,omitempty"`
	At         time.Time `json:"at"`
}

// Board is a top-ten list, highest score first.
type Board struct {
	entries []Entry
}

// NewBoard builds a board from entries, keeping their order and the first MaxEntries.
func NewBoard(entries []Entry) *Board {
	b := &Board{}
	for _, e := range entries {
		if len(b.entries) == MaxEntries {
			break
		}
		b.entries = append(b.entries, e)
	}
	return b
}

// Insert places e above the first entry whose score is equal or lower,
// appends it otherwise, then trims the table. It returns the 0-based rank
// of e, or -1 when e did not make the table.
func (b *Board) Insert(e Entry) int {
	if !b.Qualifies(e.Score) {
		return -1
	}
	rank := len(b.entries)
	for i, cur := range b.entries {
		if cur.Score <= e.Score {
			rank = i
			break
		}
	}
	b.entries = append(b.entries, Entry{})
	copy(b.entries[rank+1:], b.entries[rank:])
	b.entries[rank] = e

	if len(b.entries) > MaxEntries {
		b.entries = b.entries[:MaxEntries]
	}
	return rank
}

// Qualifies reports whether score would enter the table.
func (b *Board) Qualifies(score int) bool {
	if len(b.entries) < MaxEntries {
		return true
	}
	return b.entries[len(b.entries)-1].Score <= score
}

// Top returns a copy of the table.
func (b *Board) Top() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}
