// Package game runs one play session of the simulation: it advances the
// player, the spawn schedule and the falling objects once per tick and
// drives the Playing → GameOver transition.
//
// A Session is not safe for concurrent use. The host calls Tick from its
// frame loop and reads state between ticks.
package game

import (
	"fmt"
	"time"

	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
	"github.com/tomz197/starfall/internal/physics"
)

// Intent is an alias for the object package's movement intent.
type Intent = object.Intent

// Phase is the lifecycle stage of a session.
type Phase int

const (
	PhasePlaying  Phase = iota // Objects fall and the player moves
	PhaseGameOver              // Terminal; nothing changes anymore
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game over"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Report summarizes what happened during one tick.
type Report struct {
	Phase        Phase
	Spawned      bool // A new object entered at the top
	Dropped      int  // Objects that fell off the bottom
	StarsCaught  int
	AsteroidsHit int
}

// Session owns all simulation state of one play-through.
type Session struct {
	screen  object.Screen
	rng     object.Rand
	score   *object.ScoreTracker
	spawner *object.SpawnScheduler
	pool    *object.Pool
	player  *object.Player
	phase   Phase
	ticks   int
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the randomness source for spawning. A nil source keeps the default.
func WithRand(rng object.Rand) Option {
	return func(s *Session) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithLives sets the starting number of lives.
func WithLives(lives int) Option {
	return func(s *Session) {
		s.score = object.NewScoreTracker(lives)
	}
}

// WithShip sets the colour of the player's ship.
func WithShip(color object.ShipColor) Option {
	return func(s *Session) {
		s.player.Color = color
	}
}

// NewSession creates a session in the Playing phase.
func NewSession(opts ...Option) *Session {
	screen := object.NewScreen(config.ScreenWidth, config.ScreenHeight)
	s := &Session{
		screen:  screen,
		rng:     object.DefaultRand(),
		score:   object.NewScoreTracker(config.InitialLives),
		spawner: object.NewSpawnScheduler(),
		player:  object.NewPlayer(screen),
		phase:   PhasePlaying,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.pool = object.NewPool(screen, s.rng)
	return s
}

// Tick advances the simulation by one frame.
//
// The lives check runs before anything else, so the tick that costs the last
// life still resolves all of its collisions and the following tick moves the
// session to GameOver.
func (s *Session) Tick(delta time.Duration, intent Intent) Report {
	if s.phase == PhaseGameOver {
		return Report{Phase: s.phase}
	}
	if s.score.Lives() == 0 {
		s.phase = PhaseGameOver
		return Report{Phase: s.phase}
	}

	s.ticks++
	var r Report

	s.player.Move(intent)

	if s.spawner.Update(delta) {
		s.pool.Spawn(object.RandomKind(s.rng), s.player.Lane)
		r.Spawned = true
	}

	r.Dropped = s.pool.AdvanceAll(delta)

	playerBounds := s.player.Bounds()
	s.pool.RemoveIf(func(e *object.FallingEntity) bool {
		if !physics.Intersects(e.Bounds(), playerBounds) {
			return false
		}
		switch e.Kind {
		case object.KindStar:
			s.score.StarCaught()
			r.StarsCaught++
		case object.KindAsteroid:
			s.score.AsteroidHit()
			r.AsteroidsHit++
		}
		return true
	})

	r.Phase = s.phase
	return r
}

// Phase returns the current lifecycle stage.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the current score.
func (s *Session) Score() int { return s.score.Score() }

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.score.Lives() }

// Streak returns the number of consecutive stars caught.
func (s *Session) Streak() int { return s.score.Streak() }

// Player returns the player ship. Callers must treat it as read-only.
func (s *Session) Player() *object.Player { return s.player }

// Entities returns the live falling objects in pool order.
// The slice is only valid until the next Tick.
func (s *Session) Entities() []*object.FallingEntity { return s.pool.Entities() }

// Screen returns the world dimensions.
func (s *Session) Screen() object.Screen { return s.screen }

// Ticks returns the number of ticks simulated while playing.
func (s *Session) Ticks() int { return s.ticks }

// Elapsed returns the accumulated play time.
func (s *Session) Elapsed() time.Duration { return s.spawner.Elapsed() }

// FormatScore renders a score the way the HUD shows it: zero-padded to four digits.
func FormatScore(score int) string {
	return fmt.Sprintf("%04d", score)
}
