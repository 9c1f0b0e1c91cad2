// Command browser runs the game in a window, or in a web page when built for
// GOOS=js GOARCH=wasm.
package main

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/starfall/internal/audio"
	"github.com/tomz197/starfall/internal/audio/speaker"
	"github.com/tomz197/starfall/internal/game"
	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
)

const (
	windowWidth  = 960
	windowHeight = 540

	// Debug font glyphs are 6x16; text is drawn small and scaled up.
	glyphWidth  = 6
	glyphHeight = 16
	textScale   = 3
)

type scene int

const (
	sceneMenu scene = iota
	scenePlaying
	sceneGameOver
)

var (
	colorBackground = color.RGBA{0x05, 0x05, 0x10, 0xff}
	colorStar       = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	colorAsteroid   = color.RGBA{0xaf, 0x87, 0x5f, 0xff}
	colorLane       = color.RGBA{0x30, 0x30, 0x30, 0xff}
	colorOverlay    = color.RGBA{0x00, 0x00, 0x00, 0xa0}
)

var shipRGBA = map[object.ShipColor]color.RGBA{
	object.ShipBlue:   {0x00, 0x87, 0xff, 0xff},
	object.ShipGreen:  {0x00, 0xd7, 0x00, 0xff},
	object.ShipRed:    {0xff, 0x00, 0x00, 0xff},
	object.ShipPurple: {0xaf, 0x5f, 0xff, 0xff},
}

// Game adapts a game session to ebiten.
type Game struct {
	scene     scene
	ship      object.ShipColor
	session   *game.Session
	starfield *object.Starfield
	cues      audio.Cues
	textBuf   *ebiten.Image
}

// NewGame creates a game showing the menu.
func NewGame(cues audio.Cues) *Game {
	screen := object.NewScreen(config.ScreenWidth, config.ScreenHeight)
	return &Game{
		scene:     sceneMenu,
		starfield: object.NewStarfield(screen, config.MenuStarCount, nil),
		cues:      cues,
		textBuf:   ebiten.NewImage(config.ScreenWidth/textScale, glyphHeight),
	}
}

// Update advances one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	switch g.scene {
	case sceneMenu:
		g.starfield.Update()
		for i, key := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4} {
			if inpututil.IsKeyJustPressed(key) {
				g.ship = object.ShipColors[i]
				g.start()
				return nil
			}
		}
		if confirmPressed() {
			g.start()
		}
	case scenePlaying:
		intent := game.Intent{
			Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
			Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		}
		delta := time.Second / time.Duration(ebiten.TPS())
		report := g.session.Tick(delta, intent)
		for range report.StarsCaught {
			g.cues.StarCaught()
		}
		for range report.AsteroidsHit {
			g.cues.AsteroidHit()
		}
		if report.Phase == game.PhaseGameOver {
			g.cues.GameOver()
			g.scene = sceneGameOver
		}
	case sceneGameOver:
		if confirmPressed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.scene = sceneMenu
		}
	}
	return nil
}

func confirmPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace)
}

func (g *Game) start() {
	g.session = game.NewSession(game.WithShip(g.ship))
	g.scene = scenePlaying
}

// Draw renders the current scene.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	if g.scene == sceneMenu {
		g.drawMenu(screen)
		return
	}

	s := g.session
	lane := s.Player().Lane
	for _, x := range []float64{lane.Left, lane.Right} {
		vector.StrokeLine(screen, float32(x), 0, float32(x), config.ScreenHeight, 2, colorLane, false)
	}
	for _, e := range s.Entities() {
		drawEntity(screen, e)
	}
	p := s.Player()
	drawShip(screen, p.X, p.Y, p.Width, p.Height, shipRGBA[p.Color])

	g.printAt(screen, fmt.Sprintf("Lives: %d", s.Lives()), 20, 20)
	score := "Score: " + game.FormatScore(s.Score())
	g.printAt(screen, score, config.ScreenWidth-20-len(score)*glyphWidth*textScale, 20)

	if g.scene == sceneGameOver {
		vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, colorOverlay, false)
		g.printCentered(screen, "Game Over", config.ScreenHeight/2-80)
		g.printCentered(screen, "Final Score: "+game.FormatScore(s.Score()), config.ScreenHeight/2)
		g.printCentered(screen, "Press SPACE or ESC to return to menu", config.ScreenHeight/2+80)
	}
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	for _, st := range g.starfield.Stars {
		v := uint8(0x40 + st.Brightness*0xbf)
		vector.DrawFilledCircle(screen, float32(st.X), float32(st.Y), 2, color.RGBA{v, v, v, 0xff}, false)
	}

	g.printCentered(screen, "S T A R F A L L", config.ScreenHeight/4)
	for i, sc := range object.ShipColors {
		x := config.ScreenWidth * (0.2 + 0.2*float64(i))
		drawShip(screen, x, config.ScreenHeight/2, config.PlayerWidth, config.PlayerHeight, shipRGBA[sc])
		label := fmt.Sprintf("%d %s", i+1, sc)
		if sc == g.ship {
			label = "[" + label + "]"
		}
		g.printAt(screen, label, int(x)-len(label)*glyphWidth*textScale/2, config.ScreenHeight/2+80)
	}
	g.printCentered(screen, "A D / arrows: move   1-4: pick a ship   Q: quit", config.ScreenHeight*3/4)
	g.printCentered(screen, "Press SPACE to Start", config.ScreenHeight*3/4+80)
}

// printAt draws scaled debug text with its top-left corner at (x, y).
func (g *Game) printAt(screen *ebiten.Image, msg string, x, y int) {
	g.textBuf.Clear()
	ebitenutil.DebugPrintAt(g.textBuf, msg, 0, 0)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(textScale, textScale)
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(g.textBuf, op)
}

func (g *Game) printCentered(screen *ebiten.Image, msg string, y int) {
	g.printAt(screen, msg, (config.ScreenWidth-len(msg)*glyphWidth*textScale)/2, y)
}

func drawEntity(screen *ebiten.Image, e *object.FallingEntity) {
	r := float32(e.Width / 2)
	switch e.Kind {
	case object.KindStar:
		vector.DrawFilledCircle(screen, float32(e.X), float32(e.Y), r*0.6, colorStar, true)
		// Rotating spikes
		for i := range 5 {
			a := e.Rotation + float64(i)*2*math.Pi/5
			x := e.X + float64(r)*math.Cos(a)
			y := e.Y + float64(r)*math.Sin(a)
			vector.StrokeLine(screen, float32(e.X), float32(e.Y), float32(x), float32(y), 6, colorStar, true)
		}
	case object.KindAsteroid:
		vector.DrawFilledCircle(screen, float32(e.X), float32(e.Y), r*0.9, colorAsteroid, true)
		// Crater marks the rotation
		cx := e.X + float64(r)*0.4*math.Cos(e.Rotation)
		cy := e.Y + float64(r)*0.4*math.Sin(e.Rotation)
		vector.DrawFilledCircle(screen, float32(cx), float32(cy), r*0.2, colorBackground, true)
	}
}

// drawShip draws a ship pointing up with its centre at (x, y).
func drawShip(screen *ebiten.Image, x, y, w, h float64, c color.RGBA) {
	top := [2]float32{float32(x), float32(y - h/2)}
	left := [2]float32{float32(x - w/2), float32(y + h/2)}
	right := [2]float32{float32(x + w/2), float32(y + h/2)}
	notch := [2]float32{float32(x), float32(y + h/4)}
	for _, seg := range [][2][2]float32{{top, right}, {right, notch}, {notch, left}, {left, top}} {
		vector.StrokeLine(screen, seg[0][0], seg[0][1], seg[1][0], seg[1][1], 6, c, true)
	}
	vector.DrawFilledRect(screen, float32(x-w/8), float32(y-h/8), float32(w/4), float32(h/4), c, false)
}

// Layout keeps the world resolution; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	os.Exit(run())
}

func run() int {
	var cues audio.Cues = audio.NopCues{}
	if sc, err := speaker.New(); err != nil {
		fmt.Fprintf(os.Stderr, "sound disabled: %v\n", err)
	} else {
		defer sc.Close()
		cues = sc
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Starfall")
	ebiten.SetTPS(config.ClientTargetFPS)

	if err := ebiten.RunGame(NewGame(cues)); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		return 1
	}
	return 0
}
