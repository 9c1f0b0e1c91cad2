// Package input turns a raw terminal byte stream into per-frame key state.
package input

import (
	"bufio"
	"sync"
	"time"

	"github.com/tomz197/starfall/internal/object"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals report no key-up, so holds are inferred from auto-repeat.
const keyHoldDuration = 60 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Space   bool
	Enter   bool
	Escape  bool
	Number  int // Digit pressed this frame, or -1
	Pressed []byte
}

// Intent returns the movement part of the input.
func (in Input) Intent() object.Intent {
	return object.Intent{Left: in.Left, Right: in.Right}
}

// Confirm reports whether the player pressed a start/continue key.
func (in Input) Confirm() bool {
	return in.Space || in.Enter
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit      time.Time
	left      time.Time
	right     time.Time
	space     time.Time
	enter     time.Time
	escape    time.Time
	number    time.Time
	numberVal int
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch       chan byte
	done     chan struct{} // Closed by Stop
	stopped  chan struct{} // Closed when the reader goroutine returns
	stopOnce sync.Once
	state    keyState
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The channel is closed when r returns an error (e.g. the session ended).
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		defer close(s.stopped)
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{
		ch:      make(chan byte, 128),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		state:   keyState{numberVal: -1},
	}
}

// Stop abandons the stream once its owner no longer reads it. The reader
// goroutine exits after its next byte instead of blocking on a full channel.
// Safe to call more than once.
func (s *Stream) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// ReadInput drains all available bytes from the stream (non-blocking).
// A closed stream reports Quit so the caller's loop ends.
func ReadInput(s *Stream) Input {
	var buf []byte
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := s.apply(buf, time.Now())
	if closed {
		in.Quit = true
	}
	return in
}

// apply parses buf into the key state at time now and builds the frame's input.
// Keys are "pressed" if seen within keyHoldDuration.
func (s *Stream) apply(buf []byte, now time.Time) Input {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C': // Right arrow
				s.state.right = now
				i += 2
				continue
			case 'D': // Left arrow
				s.state.left = now
				i += 2
				continue
			case 'A', 'B': // Up/down arrows are ignored
				i += 2
				continue
			}
		}

		applyByteToState(&s.state, b, now)
	}

	in := Input{
		Quit:    now.Sub(s.state.quit) < keyHoldDuration,
		Left:    now.Sub(s.state.left) < keyHoldDuration,
		Right:   now.Sub(s.state.right) < keyHoldDuration,
		Space:   now.Sub(s.state.space) < keyHoldDuration,
		Enter:   now.Sub(s.state.enter) < keyHoldDuration,
		Escape:  now.Sub(s.state.escape) < keyHoldDuration,
		Number:  -1,
		Pressed: buf,
	}

	if now.Sub(s.state.number) < keyHoldDuration {
		in.Number = s.state.numberVal
	}

	return in
}

// ResetKeyInput forgets all held keys, so a key that started a scene does not
// also act in the next one.
func ResetKeyInput(s *Stream) {
	if s == nil {
		return
	}
	s.state = keyState{numberVal: -1}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03': // Ctrl+C arrives as a byte in raw mode
		state.quit = now
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		state.number = now
		state.numberVal = int(b - '0')
	}
}
