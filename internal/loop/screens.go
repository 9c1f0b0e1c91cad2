package loop

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/tomz197/starfall/internal/game"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
)

// styles holds the text styles of one client. Each client gets its own
// renderer so SSH sessions do not share terminal detection.
type styles struct {
	title  lipgloss.Style
	text   lipgloss.Style
	dim    lipgloss.Style
	prompt lipgloss.Style
	warn   lipgloss.Style
	hud    lipgloss.Style
	ship   map[object.ShipColor]lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)

	s := styles{
		title: r.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("245")).
			Padding(0, 3),
		text:   r.NewStyle().Foreground(lipgloss.Color("15")),
		dim:    r.NewStyle().Foreground(lipgloss.Color("245")),
		prompt: r.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
		warn:   r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		hud:    r.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
		ship:   make(map[object.ShipColor]lipgloss.Style, len(object.ShipColors)),
	}
	for _, sc := range object.ShipColors {
		s.ship[sc] = r.NewStyle().Foreground(lipgloss.Color(fmt.Sprint(int(shipColor(sc)))))
	}
	return s
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On scene or inactivity transitions, do a full terminal clear so UI
	// elements from the previous scene don't persist on screen.
	sceneChanged := c.state.Scene != c.state.prevScene
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if sceneChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevScene = c.state.Scene
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	c.drawWorld()

	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}
	// Draw border when terminal exceeds max render resolution
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawWorld draws the canvas part of the current scene.
func (c *Client) drawWorld() {
	s := c.state.Session
	switch {
	case c.state.Scene == SceneMenu || s == nil:
		drawStarfield(c.canvas, c.state.Starfield)
		if c.state.Scene == SceneMenu {
			c.drawShipChoices()
		}
	default:
		drawLane(c.canvas, s.Player().Lane, c.screen.Height)
		for _, e := range s.Entities() {
			drawEntity(c.canvas, e)
		}
		drawPlayer(c.canvas, s.Player())
	}
}

// shipChoiceY is the height of the ship previews on the menu, in world units.
const shipChoiceY = 0.5 * config.ScreenHeight

// shipChoiceX returns the world x of the i-th ship preview.
func shipChoiceX(i int) float64 {
	return config.ScreenWidth * (0.2 + 0.2*float64(i))
}

// drawShipChoices draws the four selectable ships on the menu.
func (c *Client) drawShipChoices() {
	for i, sc := range object.ShipColors {
		drawShip(c.canvas, shipChoiceX(i), shipChoiceY, config.PlayerWidth, config.PlayerHeight, shipColor(sc))
	}
}

// drawUI draws the text overlay.
func (c *Client) drawUI() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.Scene == SceneShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.Scene {
	case SceneMenu:
		c.drawMenuScreen(centerX, termHeight)
	case ScenePlaying:
		c.drawPlayingHUD(termWidth, termHeight)
	case SceneGameOver:
		c.drawPlayingHUD(termWidth, termHeight)
		c.drawGameOverScreen(centerX, centerY)
	}
}

// writeCentered writes a possibly multi-line styled block centred on col.
func (c *Client) writeCentered(centerX, row int, s string) {
	c.chunkWriter.WriteLines(centerX-lipgloss.Width(s)/2, row, s)
}

// writeBlinking writes s when the blink phase is on and blanks it otherwise.
// The canvas does not repaint cells under text, so the blank is written explicitly.
func (c *Client) writeBlinking(centerX, row int, s string) {
	if c.now().UnixMilli()/config.PromptBlinkMillis%2 == 0 {
		c.writeCentered(centerX, row, s)
		return
	}
	c.writeCentered(centerX, row, strings.Repeat(" ", lipgloss.Width(s)))
}

// drawMenuScreen draws the title and the ship choice labels.
func (c *Client) drawMenuScreen(centerX, termHeight int) {
	st := c.styles

	titleRow := max(termHeight/6, 1)
	c.writeCentered(centerX, titleRow, st.title.Render("S T A R F A L L"))
	c.writeCentered(centerX, titleRow+4, st.dim.Render("~ Catch the stars, dodge the asteroids ~"))

	_, shipRow := c.canvas.LogicalToTerminal(0, shipChoiceY+config.PlayerHeight)
	for i, sc := range object.ShipColors {
		col, _ := c.canvas.LogicalToTerminal(shipChoiceX(i), shipChoiceY)
		label := fmt.Sprintf(" %d %s ", i+1, sc)
		if sc == c.state.Ship {
			label = fmt.Sprintf("[%d %s]", i+1, sc)
		}
		c.writeCentered(col, shipRow+1, st.ship[sc].Render(label))
	}

	controls := []string{
		"A D / < >  . . . . Move",
		"1 - 4  . . . Pick a ship",
		"Q  . . . . . . . . Quit",
	}
	controlsRow := shipRow + 3
	for i, line := range controls {
		c.writeCentered(centerX, controlsRow+i, st.text.Render(line))
	}

	c.writeBlinking(centerX, controlsRow+len(controls)+1, st.prompt.Render(">>  Press SPACE to Start  <<"))
}

// drawPlayingHUD draws lives, score and streak.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth, termHeight int) {
	s := c.state.Session
	if s == nil {
		return
	}
	cw := c.chunkWriter
	st := c.styles

	cw.WriteAt(2, 1, st.hud.Render(fmt.Sprintf("Lives: %-2d", s.Lives())))

	scoreText := st.hud.Render("Score: " + game.FormatScore(s.Score()))
	cw.WriteAt(termWidth-lipgloss.Width(scoreText)-1, 1, scoreText)

	cw.WriteAt(2, termHeight, st.dim.Render(fmt.Sprintf("Streak: %-4d", s.Streak())))

	if c.hub != nil {
		players := st.dim.Render(fmt.Sprintf("Players: %-4d", c.hub.Players()))
		cw.WriteAt(termWidth-lipgloss.Width(players)-1, termHeight, players)
	}
}

// drawGameOverScreen draws the final score overlay.
func (c *Client) drawGameOverScreen(centerX, centerY int) {
	st := c.styles
	c.writeCentered(centerX, centerY-3, st.title.Render("Game Over"))
	c.writeCentered(centerX, centerY+1, st.text.Render("Final Score: "+game.FormatScore(c.state.Session.Score())))
	c.writeBlinking(centerX, centerY+3, st.prompt.Render(">>  Press SPACE or ESC to return to menu  <<"))
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	st := c.styles
	c.writeCentered(centerX, centerY-2, st.warn.Render("INACTIVITY WARNING"))

	remaining := max(c.idleTimeout-c.now().Sub(c.lastInput), 0)
	msg := fmt.Sprintf("You have been inactive for too long. You will be disconnected in %d seconds.",
		int(remaining.Round(time.Second).Seconds()))
	c.writeCentered(centerX, centerY, st.text.Render(msg))

	c.writeCentered(centerX, centerY+2, st.dim.Render("Press any key to continue"))
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	st := c.styles
	c.writeCentered(centerX, centerY-3, st.warn.Render("SERVER SHUTTING DOWN"))
	c.writeCentered(centerX, centerY-1, st.text.Render("The server is restarting for maintenance."))
	c.writeCentered(centerX, centerY, st.text.Render("Please reconnect in a moment."))

	remaining := int(c.state.shutdownTimer) + 1
	c.writeCentered(centerX, centerY+2, st.dim.Render(fmt.Sprintf("Disconnecting in %d seconds...", remaining)))
	c.writeCentered(centerX, centerY+4, st.dim.Render("Press Q to disconnect now"))
}
