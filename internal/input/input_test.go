package input

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

// TestBufferLastWriterWins verifies the single slot keeps only the latest input
func TestBufferLastWriterWins(t *testing.T) {
	var b Buffer
	b.SetClick(Click{X: 1, Y: 2})
	b.SetClick(Click{X: 30, Y: 40, Button: ButtonRight})
	b.SetKey(KeyPause)
	b.SetKey(KeyToggleFPS)
	b.SetKey(KeyNone)

	s := b.Drain()
	if !s.HasClick || s.Click != (Click{X: 30, Y: 40, Button: ButtonRight}) {
		t.Errorf("click = %+v", s.Click)
	}
	if s.Key != KeyToggleFPS {
		t.Errorf("key = %v", s.Key)
	}
	if again := b.Drain(); again.HasClick || again.Key != KeyNone {
		t.Errorf("drain did not empty buffer: %+v", again)
	}
}

// TestDecodeKeys verifies byte and arrow decoding
func TestDecodeKeys(t *testing.T) {
	tests := []struct {
		in   string
		want Key
	}{
		{" ", KeyPause},
		{"o", KeyOptions},
		{"\x1bx", KeyOptions},
		{"F", KeyToggleFPS},
		{"q", KeyQuit},
		{"\x03", KeyQuit},
		{"\x1b[A", KeyNudgeUp},
		{"\x1b[B", KeyNudgeDown},
		{"\x1b[C", KeyNudgeRight},
		{"\x1b[D", KeyNudgeLeft},
		{"\r", KeySpawnDuck},
		{"\x7f", KeyRemoveDuck},
		{"+", KeyAmmoUp},
		{"-", KeyAmmoDown},
		{"m", KeyMute},
		{"x", KeyNone},
	}
	for _, tt := range tests {
		var b Buffer
		if rest := decode([]byte(tt.in), &b, nil); len(rest) != 0 {
			t.Errorf("%q left %q", tt.in, rest)
		}
		if got := b.Drain().Key; got != tt.want {
			t.Errorf("%q: key = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// TestDecodeMouse verifies SGR press reports become clicks
func TestDecodeMouse(t *testing.T) {
	double := func(col, row int) (int, int) { return col * 2, row * 2 }
	tests := []struct {
		in     string
		click  bool
		want   Click
		hasKey Key
	}{
		{"\x1b[<0;10;20M", true, Click{X: 20, Y: 40}, KeyNone},
		{"\x1b[<2;5;6M", true, Click{X: 10, Y: 12, Button: ButtonRight}, KeyNone},
		{"\x1b[<0;10;20m", false, Click{}, KeyNone},
		{"\x1b[<35;10;20M", false, Click{}, KeyNone},
		{"\x1b[<64;10;20M", false, Click{}, KeyNone},
		{"\x1b[<0;1;1M ", true, Click{X: 2, Y: 2}, KeyPause},
	}
	for _, tt := range tests {
		var b Buffer
		decode([]byte(tt.in), &b, double)
		s := b.Drain()
		if s.HasClick != tt.click || s.Click != tt.want {
			t.Errorf("%q: click = %+v (%v)", tt.in, s.Click, s.HasClick)
		}
		if s.Key != tt.hasKey {
			t.Errorf("%q: key = %v", tt.in, s.Key)
		}
	}
}

// TestDecodeKeepsPartialMouse verifies a split report is completed by the next read
func TestDecodeKeepsPartialMouse(t *testing.T) {
	var b Buffer
	rest := decode([]byte("\x1b[<0;12"), &b, nil)
	if string(rest) != "\x1b[<0;12" {
		t.Fatalf("rest = %q", rest)
	}
	if b.Drain().HasClick {
		t.Fatal("partial report produced a click")
	}
	decode(append(rest, []byte(";7M")...), &b, nil)
	if s := b.Drain(); !s.HasClick || s.Click.X != 12 || s.Click.Y != 7 {
		t.Errorf("completed click = %+v", s)
	}
}

// TestStreamPump verifies bytes from a reader reach the buffer and EOF reports closure
func TestStreamPump(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("f\x1b[<0;3;4M")))
	var b Buffer
	deadline := time.Now().Add(2 * time.Second)
	var err error
	for time.Now().Before(deadline) {
		if err = s.Pump(&b, nil); err != nil {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if !errors.Is(err, ErrClosed) {
		t.Fatalf("Pump err = %v", err)
	}
	st := b.Drain()
	if st.Key != KeyQuit {
		t.Errorf("closed stream key = %v, want quit", st.Key)
	}
	if !st.HasClick || st.Click.X != 3 || st.Click.Y != 4 {
		t.Errorf("click = %+v", st.Click)
	}
	if s.Received() != 10 {
		t.Errorf("received = %d, want 10", s.Received())
	}
}

// TestDecodeHoldsLoneEscape verifies a trailing ESC waits for the rest of its sequence
func TestDecodeHoldsLoneEscape(t *testing.T) {
	var b Buffer
	rest := decode([]byte("f\x1b"), &b, nil)
	if string(rest) != "\x1b" {
		t.Fatalf("rest = %q", rest)
	}
	if k := b.Drain().Key; k != KeyToggleFPS {
		t.Errorf("key = %v", k)
	}
}

// pumpUntil pumps s until it has received n bytes.
func pumpUntil(t *testing.T, s *Stream, b *Buffer, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.Received() < n {
		if time.Now().After(deadline) {
			t.Fatalf("received %d of %d bytes", s.Received(), n)
		}
		if err := s.Pump(b, nil); err != nil {
			t.Fatal(err)
		}
		time.Sleep(time.Millisecond)
	}
}

// TestStreamSplitMouseReport verifies a report whose ESC arrives alone still becomes a click
func TestStreamSplitMouseReport(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	s := StartStream(bufio.NewReader(pr))
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	var b Buffer

	if _, err := pw.Write([]byte("\x1b")); err != nil {
		t.Fatal(err)
	}
	pumpUntil(t, s, &b, 1)
	if st := b.Drain(); st.HasClick || st.Key != KeyNone {
		t.Fatalf("lone ESC produced input %+v", st)
	}

	if _, err := pw.Write([]byte("[<0;10;5M")); err != nil {
		t.Fatal(err)
	}
	pumpUntil(t, s, &b, 10)
	st := b.Drain()
	if !st.HasClick || st.Click != (Click{X: 10, Y: 5}) {
		t.Errorf("click = %+v (%v)", st.Click, st.HasClick)
	}
	if st.Key != KeyNone {
		t.Errorf("key = %v, want none", st.Key)
	}
}

// TestStreamLoneEscape verifies a lone ESC becomes the Escape key after the timeout
func TestStreamLoneEscape(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	s := StartStream(bufio.NewReader(pr))
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	var b Buffer

	if _, err := pw.Write([]byte("\x1b")); err != nil {
		t.Fatal(err)
	}
	pumpUntil(t, s, &b, 1)
	if k := b.Drain().Key; k != KeyNone {
		t.Fatalf("key before timeout = %v", k)
	}

	now = now.Add(escapeTimeout)
	if err := s.Pump(&b, nil); err != nil {
		t.Fatal(err)
	}
	if k := b.Drain().Key; k != KeyOptions {
		t.Errorf("key after timeout = %v, want options", k)
	}
}

// TestStreamPumpEmpty verifies pumping with no data is a no-op
func TestStreamPumpEmpty(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	s := StartStream(bufio.NewReader(pr))
	var b Buffer
	if err := s.Pump(&b, nil); err != nil {
		t.Fatal(err)
	}
	if st := b.Drain(); st.HasClick || st.Key != KeyNone {
		t.Errorf("unexpected input %+v", st)
	}
}

// TestDebugKeys verifies which keys are gated behind debug mode
func TestDebugKeys(t *testing.T) {
	for _, k := range []Key{KeyPause, KeyOptions, KeyToggleFPS, KeyQuit, KeyMute} {
		if k.Debug() {
			t.Errorf("%v should not be debug-only", k)
		}
	}
	for _, k := range []Key{KeyNudgeUp, KeySpawnDuck, KeyAmmoDown, KeyReload} {
		if !k.Debug() {
			t.Errorf("%v should be debug-only", k)
		}
	}
}
