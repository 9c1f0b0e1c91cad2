package loop

import (
	"github.com/tomz197/starfall/internal/game"
	"github.com/tomz197/starfall/internal/input"
	"github.com/tomz197/starfall/internal/object"
)

// Scene is the screen a client is currently showing.
type Scene int

const (
	SceneMenu     Scene = iota // Title screen with ship choice
	ScenePlaying               // Active gameplay
	SceneGameOver              // Final score overlay
	SceneShutdown              // Server is shutting down
)

func (s Scene) String() string {
	switch s {
	case SceneMenu:
		return "menu"
	case ScenePlaying:
		return "playing"
	case SceneGameOver:
		return "game over"
	case SceneShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// clientState holds what one connection shows and remembers between frames.
type clientState struct {
	Input     input.Input
	Scene     Scene
	prevScene Scene
	Ship      object.ShipColor // Selected in the menu, kept across games
	Session   *game.Session    // nil until the first game starts
	Starfield *object.Starfield
	Running   bool

	shutdownTimer float64 // Seconds left before auto-disconnect on shutdown
	isInactive    bool
	wasInactive   bool
}

func newClientState(starfield *object.Starfield) *clientState {
	return &clientState{
		Scene:     SceneMenu,
		Ship:      object.ShipBlue,
		Starfield: starfield,
		Running:   true,
	}
}
