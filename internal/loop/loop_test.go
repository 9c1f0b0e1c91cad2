package loop

import (
	"bufio"
	"bytes"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/starfall/internal/input"
	"github.com/tomz197/starfall/internal/object"
)

type recordingCues struct {
	stars, asteroids, gameOvers int
}

func (r *recordingCues) StarCaught()  { r.stars++ }
func (r *recordingCues) AsteroidHit() { r.asteroids++ }
func (r *recordingCues) GameOver()    { r.gameOvers++ }

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

func newTestClient(t *testing.T, out *bytes.Buffer, cues *recordingCues) *Client {
	t.Helper()
	return NewClient(out, Options{
		TermSizeFunc: fixedSize(80, 24),
		Cues:         cues,
		Rand:         rand.New(rand.NewSource(1)),
	})
}

func press(c *Client, in input.Input) {
	c.state.Input = in
	c.trackActivity()
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		termW, termH           int
		wantW, wantH           int
		wantOffCol, wantOffRow int
	}{
		{80, 24, 80, 22, 0, 1},
		{192, 54, 192, 54, 0, 0},
		{300, 100, 192, 54, 54, 23},
		{200, 20, 71, 20, 64, 0},
		{0, 0, 1, 1, 0, 0},
	}
	for _, tt := range tests {
		w, h, oc, or := clampTermSize(tt.termW, tt.termH)
		if w != tt.wantW || h != tt.wantH || oc != tt.wantOffCol || or != tt.wantOffRow {
			t.Errorf("clampTermSize(%d, %d) = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
				tt.termW, tt.termH, w, h, oc, or, tt.wantW, tt.wantH, tt.wantOffCol, tt.wantOffRow)
		}
	}
}

func TestMenuPicksShip(t *testing.T) {
	var out bytes.Buffer
	c := newTestClient(t, &out, &recordingCues{})

	press(c, input.Input{Number: 3})
	c.update(time.Millisecond)

	if c.Scene() != ScenePlaying {
		t.Fatalf("scene = %v, want playing", c.Scene())
	}
	if c.state.Ship != object.ShipRed {
		t.Fatalf("ship = %v, want red", c.state.Ship)
	}
	if got := c.state.Session.Player().Color; got != object.ShipRed {
		t.Fatalf("player colour = %v, want red", got)
	}
}

func TestMenuIgnoresOutOfRangeDigit(t *testing.T) {
	var out bytes.Buffer
	c := newTestClient(t, &out, &recordingCues{})

	press(c, input.Input{Number: 7})
	c.update(time.Millisecond)
	if c.Scene() != SceneMenu {
		t.Fatalf("scene = %v, want menu", c.Scene())
	}

	press(c, input.Input{Number: -1, Enter: true})
	c.update(time.Millisecond)
	if c.Scene() != ScenePlaying || c.state.Ship != object.ShipBlue {
		t.Fatalf("Enter should start with the default ship, got scene %v ship %v", c.Scene(), c.state.Ship)
	}
}

func TestFullGame(t *testing.T) {
	var out bytes.Buffer
	cues := &recordingCues{}
	c := newTestClient(t, &out, cues)

	press(c, input.Input{Number: -1, Space: true})
	c.update(time.Millisecond)

	for i := 0; i < 20000 && c.Scene() == ScenePlaying; i++ {
		press(c, input.Input{Number: -1})
		c.update(16 * time.Millisecond)
		if i%50 == 0 {
			if err := c.drawFrame(); err != nil {
				t.Fatal(err)
			}
		}
	}

	if c.Scene() != SceneGameOver {
		t.Fatalf("scene = %v after a long game, want game over", c.Scene())
	}
	if cues.gameOvers != 1 {
		t.Fatalf("game over cue played %d times, want 1", cues.gameOvers)
	}
	if cues.asteroids < 3 {
		t.Fatalf("asteroid cue played %d times, want at least 3", cues.asteroids)
	}
	if c.state.Session.Lives() != 0 {
		t.Fatalf("lives = %d, want 0", c.state.Session.Lives())
	}

	out.Reset()
	if err := c.drawFrame(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Final Score: ") {
		t.Fatalf("game over overlay missing final score in %q", out.String())
	}

	// The overlay stays until the player confirms, then returns to the menu.
	press(c, input.Input{Number: -1})
	c.update(16 * time.Millisecond)
	if c.Scene() != SceneGameOver {
		t.Fatalf("scene = %v, want game over", c.Scene())
	}
	press(c, input.Input{Number: -1, Enter: true})
	c.update(16 * time.Millisecond)
	if c.Scene() != SceneMenu {
		t.Fatalf("scene = %v, want menu", c.Scene())
	}
}

func TestPlayingHUD(t *testing.T) {
	var out bytes.Buffer
	c := newTestClient(t, &out, &recordingCues{})

	press(c, input.Input{Number: 1})
	c.update(time.Millisecond)

	out.Reset()
	if err := c.drawFrame(); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Lives: 3", "Score: 0000"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("HUD missing %q", want)
		}
	}
}

func TestIdleDisconnect(t *testing.T) {
	var out bytes.Buffer
	c := NewClient(&out, Options{
		TermSizeFunc: fixedSize(80, 24),
		IdleTimeout:  120 * time.Second,
	})
	start := time.Unix(1000, 0)
	now := start
	c.now = func() time.Time { return now }
	c.lastInput = start

	now = start.Add(60 * time.Second)
	press(c, input.Input{Number: -1})
	if c.state.isInactive {
		t.Fatal("warned too early")
	}

	now = start.Add(100 * time.Second)
	press(c, input.Input{Number: -1})
	if !c.state.isInactive || !c.state.Running {
		t.Fatalf("want warning without disconnect, got inactive=%v running=%v", c.state.isInactive, c.state.Running)
	}

	// Any key clears the warning.
	press(c, input.Input{Number: -1, Pressed: []byte{'x'}})
	if c.state.isInactive {
		t.Fatal("key press did not clear the warning")
	}

	now = now.Add(121 * time.Second)
	press(c, input.Input{Number: -1})
	if c.state.Running {
		t.Fatal("idle session was not disconnected")
	}
}

func TestQuit(t *testing.T) {
	var out bytes.Buffer
	c := newTestClient(t, &out, &recordingCues{})
	press(c, input.Input{Number: -1, Quit: true})
	if c.state.Running {
		t.Fatal("quit did not stop the client")
	}
}

func TestRunQuitsOnQ(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("q"))
	err := Run(r, &out, Options{TermSizeFunc: fixedSize(80, 24)})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "\033[?25l") {
		t.Fatalf("cursor not hidden first: %q", out.String()[:min(out.Len(), 20)])
	}
}

func TestHubShutdown(t *testing.T) {
	hub := NewHub()
	var out bytes.Buffer
	c := NewClient(&out, Options{TermSizeFunc: fixedSize(80, 24), Hub: hub, Username: "ada"})
	if hub.Players() != 1 {
		t.Fatalf("players = %d, want 1", hub.Players())
	}

	done := make(chan bool)
	go func() { done <- hub.Shutdown(time.Second) }()

	// The client notices the shutdown, counts down and leaves.
	for i := 0; i < 100 && c.state.Scene != SceneShutdown; i++ {
		c.processShutdown()
		time.Sleep(time.Millisecond)
	}
	if c.Scene() != SceneShutdown {
		t.Fatalf("scene = %v, want shutdown", c.Scene())
	}
	c.update(6 * time.Second)
	if c.state.Running {
		t.Fatal("client still running after the shutdown notice")
	}
	c.handle.Close()

	if !<-done {
		t.Fatal("Shutdown timed out although the client left")
	}
	if hub.Players() != 0 {
		t.Fatalf("players = %d, want 0", hub.Players())
	}
	if _, ok := hub.Register("late"); ok {
		t.Fatal("registered after shutdown")
	}
}

func TestHubShutdownTimeout(t *testing.T) {
	hub := NewHub()
	h, ok := hub.Register("")
	if !ok {
		t.Fatal("register failed")
	}
	if hub.Shutdown(10 * time.Millisecond) {
		t.Fatal("Shutdown reported success with a client still connected")
	}
	h.Close()
	h.Close()
	if !hub.Shutdown(time.Second) {
		t.Fatal("Shutdown should succeed once the client left")
	}
}

func TestSceneNames(t *testing.T) {
	for s, want := range map[Scene]string{
		SceneMenu:     "menu",
		ScenePlaying:  "playing",
		SceneGameOver: "game over",
		SceneShutdown: "shutdown",
	} {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", int(s), s.String(), want)
		}
	}
}

func TestStarfieldColor(t *testing.T) {
	if got := starfieldColor(0); got != 232 {
		t.Fatalf("starfieldColor(0) = %d, want 232", got)
	}
	if got := starfieldColor(1); got != 255 {
		t.Fatalf("starfieldColor(1) = %d, want 255", got)
	}
	if got := starfieldColor(7); got != 255 {
		t.Fatalf("starfieldColor(7) = %d, want clamped 255", got)
	}
}

func TestEscapeLeavesGameOver(t *testing.T) {
	var out bytes.Buffer
	c := newTestClient(t, &out, &recordingCues{})
	press(c, input.Input{Number: 1})
	c.update(time.Millisecond)

	c.state.Scene = SceneGameOver
	press(c, input.Input{Number: -1, Escape: true})
	c.update(16 * time.Millisecond)
	if c.Scene() != SceneMenu {
		t.Fatalf("scene = %v, want menu", c.Scene())
	}
}

func TestEscapeDoesNotEndGame(t *testing.T) {
	var out bytes.Buffer
	c := newTestClient(t, &out, &recordingCues{})
	press(c, input.Input{Number: 1})
	c.update(time.Millisecond)

	// A split arrow-key sequence can surface as a lone escape mid-game.
	press(c, input.Input{Number: -1, Escape: true})
	c.update(16 * time.Millisecond)
	if c.Scene() != ScenePlaying {
		t.Fatalf("scene = %v, want playing", c.Scene())
	}
}

func TestHubUsernames(t *testing.T) {
	hub := NewHub()
	a, _ := hub.Register("ada")
	b, _ := hub.Register("grace")
	c, _ := hub.Register("linus")
	b.Close()

	got := hub.Usernames()
	if len(got) != 2 || got[0] != "ada" || got[1] != "linus" {
		t.Fatalf("Usernames() = %v, want [ada linus]", got)
	}
	a.Close()
	c.Close()
	if got := hub.Usernames(); len(got) != 0 {
		t.Fatalf("Usernames() = %v after all left", got)
	}
}
