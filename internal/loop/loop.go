// Package loop runs the terminal front end: one frame loop per connection
// that samples input, drives a game session and draws it.
package loop

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/starfall/internal/audio"
	"github.com/tomz197/starfall/internal/draw"
	"github.com/tomz197/starfall/internal/game"
	"github.com/tomz197/starfall/internal/input"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
)

// Options configures a client.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Cues         audio.Cues
	IdleTimeout  time.Duration // 0 disables idle disconnects
	Logger       *log.Logger
	Hub          *Hub
	Rand         object.Rand
	Username     string
	Ship         object.ShipColor // Preselected in the menu
}

// Client handles rendering and input for a single connection.
type Client struct {
	state        *clientState
	screen       object.Screen
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	cues         audio.Cues
	idleTimeout  time.Duration
	logger       *log.Logger
	handle       *Handle
	hub          *Hub
	rng          object.Rand
	styles       styles
	now          func() time.Time
}

// Run plays on r and w until the player quits, the session idles out or the
// hub shuts down.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	c := NewClient(w, opts)
	c.inputStream = input.StartStream(r)
	return c.Run()
}

// NewClient creates a client writing to w. Run starts reading input only when
// the client is created through the package-level Run.
func NewClient(w io.Writer, opts Options) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	cues := opts.Cues
	if cues == nil {
		cues = audio.NopCues{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rng := opts.Rand
	if rng == nil {
		rng = object.DefaultRand()
	}

	screen := object.NewScreen(config.ScreenWidth, config.ScreenHeight)

	termWidth, termHeight, err := termSizeFunc()
	if err != nil {
		termWidth, termHeight = config.MaxTermWidth, config.MaxTermHeight
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, screen.Width, screen.Height)
	canvas.SetOffset(offsetCol, offsetRow)

	c := &Client{
		state:        newClientState(object.NewStarfield(screen, config.MenuStarCount, rng)),
		screen:       screen,
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		termSizeFunc: termSizeFunc,
		cues:         cues,
		idleTimeout:  opts.IdleTimeout,
		logger:       logger,
		hub:          opts.Hub,
		rng:          rng,
		styles:       newStyles(w),
		now:          time.Now,
	}
	c.lastInput = c.now()
	c.state.Ship = opts.Ship

	if opts.Hub != nil {
		handle, ok := opts.Hub.Register(opts.Username)
		if !ok {
			c.state.Scene = SceneShutdown
			c.state.shutdownTimer = 0
		}
		c.handle = handle
	}
	return c
}

// Run starts the client loop. Blocks until the client disconnects or the
// hub shuts down.
func (c *Client) Run() error {
	if c.handle != nil {
		defer c.handle.Close()
	}
	if c.inputStream != nil {
		defer c.inputStream.Stop()
	}

	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := c.now()

	for c.state.Running {
		frameStart := c.now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processShutdown()
		c.updateScreen()
		c.update(delta)

		if err := c.drawFrame(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// Scene returns the scene the client is showing.
func (c *Client) Scene() Scene { return c.state.Scene }

// processInput samples the keyboard and tracks inactivity.
func (c *Client) processInput() {
	if c.inputStream != nil {
		c.state.Input = input.ReadInput(c.inputStream)
	} else {
		c.state.Input = input.Input{Number: -1}
	}
	c.trackActivity()
}

func (c *Client) trackActivity() {
	now := c.now()
	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = now
		c.state.isInactive = false
	} else if c.idleTimeout > 0 {
		idle := now.Sub(c.lastInput)
		warnAfter := c.idleTimeout * config.InactivityWarnUser / config.InactivityDisconnectUser
		switch {
		case idle > c.idleTimeout:
			c.logger.Info("disconnecting idle session", "idle", idle.Round(time.Second))
			c.state.Running = false
		case idle > warnAfter:
			c.state.isInactive = true
		}
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}
}

// processShutdown switches to the shutdown notice once the hub starts
// shutting down.
func (c *Client) processShutdown() {
	if c.handle == nil || c.state.Scene == SceneShutdown {
		return
	}
	select {
	case <-c.handle.ShuttingDown():
		c.state.Scene = SceneShutdown
		c.state.shutdownTimer = config.ShutdownDisplaySeconds
	default:
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize fits a 16:9 render area into the terminal, no larger than the
// max render resolution, and computes the offset that centres it. A cell is
// two pixels tall, so 16:9 means cols : rows*2 = 16 : 9.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(max(termWidth, 1), config.MaxTermWidth)
	renderHeight = min(max(termHeight, 1), config.MaxTermHeight)

	if renderWidth*9 > renderHeight*2*16 {
		renderWidth = renderHeight * 2 * 16 / 9
	} else {
		renderHeight = renderWidth * 9 / (16 * 2)
	}
	renderWidth = max(renderWidth, 1)
	renderHeight = max(renderHeight, 1)

	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}

// update advances the current scene by one frame.
func (c *Client) update(delta time.Duration) {
	switch c.state.Scene {
	case SceneMenu:
		c.updateMenu()
	case ScenePlaying:
		c.updatePlaying(delta)
	case SceneGameOver:
		c.updateGameOver()
	case SceneShutdown:
		c.updateShutdown(delta)
	}
}

// updateMenu animates the starfield and waits for a ship choice. A digit
// picks a ship and starts at once; Enter or Space starts with the current one.
func (c *Client) updateMenu() {
	c.state.Starfield.Update()

	in := c.state.Input
	if n := in.Number; n >= 1 && n <= len(object.ShipColors) {
		c.state.Ship = object.ShipColors[n-1]
		c.startGame()
		return
	}
	if in.Confirm() {
		c.startGame()
	}
}

// startGame begins a fresh session with the selected ship.
func (c *Client) startGame() {
	if c.inputStream != nil {
		input.ResetKeyInput(c.inputStream)
	}
	c.state.Session = game.NewSession(
		game.WithRand(c.rng),
		game.WithShip(c.state.Ship),
	)
	c.state.Scene = ScenePlaying
	c.logger.Debug("game started", "ship", c.state.Ship)
}

// updatePlaying ticks the session and plays cues for what happened.
func (c *Client) updatePlaying(delta time.Duration) {
	s := c.state.Session
	report := s.Tick(delta, c.state.Input.Intent())

	for range report.StarsCaught {
		c.cues.StarCaught()
	}
	for range report.AsteroidsHit {
		c.cues.AsteroidHit()
	}

	if report.Phase == game.PhaseGameOver {
		c.cues.GameOver()
		c.state.Scene = SceneGameOver
		c.logger.Info("game over", "score", s.Score(), "elapsed", s.Elapsed().Round(time.Millisecond), "ship", c.state.Ship)
	}
}

// updateGameOver waits for the player to return to the menu with Enter,
// Space or Escape.
func (c *Client) updateGameOver() {
	if in := c.state.Input; in.Confirm() || in.Escape {
		if c.inputStream != nil {
			input.ResetKeyInput(c.inputStream)
		}
		c.state.Scene = SceneMenu
	}
}

// updateShutdown counts down the shutdown notice.
func (c *Client) updateShutdown(delta time.Duration) {
	c.state.shutdownTimer -= delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
