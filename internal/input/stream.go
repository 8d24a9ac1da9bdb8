package input

import (
	"bufio"
	"errors"
	"strconv"
	"time"
)

// ErrClosed is returned by Pump once the reader has hit EOF or an error.
var ErrClosed = errors.New("input: stream closed")

// escapeTimeout is how long a lone ESC waits for the rest of a sequence
// before it counts as the Escape key.
const escapeTimeout = 50 * time.Millisecond

// CellMapper converts a 1-based terminal cell to playfield coordinates.
type CellMapper func(col, row int) (x, y int)

// Stream delivers terminal input bytes via a channel.
type Stream struct {
	ch       chan byte
	pending  []byte
	closed   bool
	received int

	now      func() time.Time
	escSince time.Time
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 256), now: time.Now}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Pump drains all available bytes without blocking, decodes them, and writes
// the result into buf. Mouse reports are mapped through toPlayfield.
func (s *Stream) Pump(buf *Buffer, toPlayfield CellMapper) error {
	if s.closed {
		return ErrClosed
	}
	data := s.pending
	s.pending = nil

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			data = append(data, b)
			s.received++
		default:
			break drain
		}
	}

	s.pending = decode(data, buf, toPlayfield)
	s.resolveEscape(buf)
	if s.closed {
		buf.SetKey(KeyQuit)
		return ErrClosed
	}
	return nil
}

// resolveEscape turns a pending lone ESC into the Escape key once nothing has
// followed it for escapeTimeout.
func (s *Stream) resolveEscape(buf *Buffer) {
	if len(s.pending) != 1 || s.pending[0] != '\x1b' {
		s.escSince = time.Time{}
		return
	}
	now := s.now()
	if s.escSince.IsZero() {
		s.escSince = now
	}
	if s.closed || now.Sub(s.escSince) >= escapeTimeout {
		buf.SetKey(KeyOptions)
		s.pending = nil
		s.escSince = time.Time{}
	}
}

// Received returns how many bytes Pump has taken from the reader so far.
func (s *Stream) Received() int { return s.received }

// decode parses data into buf and returns any trailing incomplete sequence.
func decode(data []byte, buf *Buffer, toPlayfield CellMapper) []byte {
	for i := 0; i < len(data); i++ {
		b := data[i]
		if b != '\x1b' {
			buf.SetKey(keyForByte(b))
			continue
		}

		if i+1 >= len(data) {
			return append([]byte(nil), data[i:]...)
		}
		if data[i+1] != '[' {
			buf.SetKey(KeyOptions)
			continue
		}
		if i+2 >= len(data) {
			return append([]byte(nil), data[i:]...)
		}

		switch data[i+2] {
		case 'A':
			buf.SetKey(KeyNudgeUp)
			i += 2
		case 'B':
			buf.SetKey(KeyNudgeDown)
			i += 2
		case 'C':
			buf.SetKey(KeyNudgeRight)
			i += 2
		case 'D':
			buf.SetKey(KeyNudgeLeft)
			i += 2
		case '<':
			n, complete := decodeMouse(data[i:], buf, toPlayfield)
			if !complete {
				return append([]byte(nil), data[i:]...)
			}
			i += n - 1
		default:
			buf.SetKey(KeyOptions)
		}
	}
	return nil
}

// decodeMouse parses an SGR mouse report: ESC [ < button ; col ; row (M|m).
// It returns the length consumed and whether the sequence was complete.
func decodeMouse(data []byte, buf *Buffer, toPlayfield CellMapper) (int, bool) {
	var fields [3]int
	field := 0
	start := 3
	for j := start; j < len(data); j++ {
		c := data[j]
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';' || c == 'M' || c == 'm':
			if field < len(fields) {
				n, err := strconv.Atoi(string(data[start:j]))
				if err != nil {
					return j + 1, true
				}
				fields[field] = n
			}
			field++
			start = j + 1
			if c == ';' {
				continue
			}
			if c == 'M' && field == 3 {
				applyMouse(fields, buf, toPlayfield)
			}
			return j + 1, true
		default:
			return j + 1, true
		}
	}
	return len(data), false
}

func applyMouse(fields [3]int, buf *Buffer, toPlayfield CellMapper) {
	code, col, row := fields[0], fields[1], fields[2]
	// Motion and wheel events carry bits above the button number.
	if code&(32|64) != 0 {
		return
	}
	var button Button
	switch code & 3 {
	case 0:
		button = ButtonLeft
	case 2:
		button = ButtonRight
	default:
		return
	}
	x, y := col, row
	if toPlayfield != nil {
		x, y = toPlayfield(col, row)
	}
	buf.SetClick(Click{X: x, Y: y, Button: button})
}

func keyForByte(b byte) Key {
	switch b {
	case ' ':
		return KeyPause
	case 'o', 'O':
		return KeyOptions
	case 'f', 'F':
		return KeyToggleFPS
	case 'q', 'Q', 0x03:
		return KeyQuit
	case '\r', '\n':
		return KeySpawnDuck
	case '\b', 0x7f:
		return KeyRemoveDuck
	case '+', '=':
		return KeyAmmoUp
	case '-', '_':
		return KeyAmmoDown
	case 'r', 'R':
		return KeyReload
	case 'm', 'M':
		return KeyMute
	}
	return KeyNone
}
