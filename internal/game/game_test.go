package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/starfall/internal/loop/config"
	"github.com/tomz197/starfall/internal/object"
)

// dropOnPlayer places an object so that it overlaps the ship after the next fall step.
func dropOnPlayer(s *Session, kind object.Kind) *object.FallingEntity {
	e := s.pool.Spawn(kind, s.player.Lane)
	e.X = s.player.X
	e.Y = s.player.Y - config.FallSpeed
	return e
}

func newTestSession(opts ...Option) *Session {
	opts = append([]Option{WithRand(rand.New(rand.NewSource(7)))}, opts...)
	return NewSession(opts...)
}

func TestThreeAsteroidsEndTheGame(t *testing.T) {
	s := newTestSession()
	wantLives := []int{2, 1, 0}

	for i, want := range wantLives {
		dropOnPlayer(s, object.KindAsteroid)
		r := s.Tick(0, Intent{})
		if r.AsteroidsHit != 1 {
			t.Fatalf("hit %d: AsteroidsHit = %d, want 1", i+1, r.AsteroidsHit)
		}
		if s.Lives() != want {
			t.Fatalf("hit %d: lives = %d, want %d", i+1, s.Lives(), want)
		}
		if r.Phase != PhasePlaying {
			t.Fatalf("hit %d: phase = %v, want playing on the tick of the hit", i+1, r.Phase)
		}
	}

	r := s.Tick(16*time.Millisecond, Intent{})
	if r.Phase != PhaseGameOver || s.Phase() != PhaseGameOver {
		t.Fatalf("phase after lives reached 0 = %v, want game over", s.Phase())
	}
}

func TestNineStarsScore(t *testing.T) {
	s := newTestSession()
	for i := 0; i < 9; i++ {
		dropOnPlayer(s, object.KindStar)
		r := s.Tick(0, Intent{})
		if r.StarsCaught != 1 {
			t.Fatalf("catch %d: StarsCaught = %d, want 1", i+1, r.StarsCaught)
		}
	}
	if s.Score() != 21 {
		t.Fatalf("score = %d, want 21", s.Score())
	}
	if s.Streak() != 9 {
		t.Fatalf("streak = %d, want 9", s.Streak())
	}
	if len(s.Entities()) != 0 {
		t.Fatalf("caught stars still in pool: %d", len(s.Entities()))
	}
}

func TestAllCollisionsResolveOnFinalLife(t *testing.T) {
	s := newTestSession(WithLives(1))
	dropOnPlayer(s, object.KindAsteroid)
	dropOnPlayer(s, object.KindStar)
	dropOnPlayer(s, object.KindAsteroid)

	r := s.Tick(0, Intent{})
	if r.AsteroidsHit != 2 || r.StarsCaught != 1 {
		t.Fatalf("report = %+v, want 2 hits and 1 catch", r)
	}
	if s.Lives() != 0 {
		t.Fatalf("lives = %d, want 0", s.Lives())
	}
	// Streak was reset by the second asteroid after the star.
	if s.Score() != 1 || s.Streak() != 0 {
		t.Fatalf("score=%d streak=%d, want 1 and 0", s.Score(), s.Streak())
	}
	if len(s.Entities()) != 0 {
		t.Fatalf("entities left = %d, want 0", len(s.Entities()))
	}
	if s.Phase() != PhasePlaying {
		t.Fatalf("phase = %v, want playing until the next tick", s.Phase())
	}
}

func TestGameOverIsTerminal(t *testing.T) {
	s := newTestSession(WithLives(0))
	if r := s.Tick(16*time.Millisecond, Intent{Left: true}); r.Phase != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", r.Phase)
	}

	x := s.Player().X
	ticks := s.Ticks()
	elapsed := s.Elapsed()
	for i := 0; i < 100; i++ {
		r := s.Tick(time.Second, Intent{Left: true})
		if r.Phase != PhaseGameOver || r.Spawned || r.Dropped != 0 {
			t.Fatalf("tick %d after game over: report %+v", i, r)
		}
	}
	if s.Player().X != x || s.Ticks() != ticks || s.Elapsed() != elapsed || len(s.Entities()) != 0 {
		t.Fatal("state changed after game over")
	}
}

func TestMissedObjectsFallAway(t *testing.T) {
	s := newTestSession()
	e := s.pool.Spawn(object.KindAsteroid, s.player.Lane)
	e.X = s.player.Lane.Left - 200 // never touches the ship
	e.Y = s.screen.Height + e.Height - 1

	r := s.Tick(0, Intent{})
	if r.Dropped != 1 || r.AsteroidsHit != 0 {
		t.Fatalf("report = %+v, want 1 dropped and no hits", r)
	}
	if s.Lives() != config.InitialLives {
		t.Fatalf("lives = %d, want %d", s.Lives(), config.InitialLives)
	}
}

func TestPlayerMovesBeforeCollision(t *testing.T) {
	s := newTestSession()
	// Star just right of the ship's reach; one step right brings it into contact.
	e := dropOnPlayer(s, object.KindStar)
	e.X = s.player.X + s.player.Width/2 + e.Width/2 + config.PlayerStep/2

	r := s.Tick(0, Intent{Right: true})
	if r.StarsCaught != 1 {
		t.Fatalf("StarsCaught = %d, want 1 after moving into the star", r.StarsCaught)
	}
}

func TestLongSessionInvariants(t *testing.T) {
	s := newTestSession()
	lane := s.Player().Lane
	prevScore := 0
	intents := []Intent{{Left: true}, {}, {Right: true}, {Left: true, Right: true}}

	for tick := 0; tick < 20000 && s.Phase() == PhasePlaying; tick++ {
		intent := intents[(tick/40)%len(intents)]
		r := s.Tick(16*time.Millisecond, intent)
		if r.Spawned {
			entities := s.Entities()
			if len(entities) > 0 {
				last := entities[len(entities)-1]
				if last.X < lane.Left || last.X >= lane.Right {
					t.Fatalf("tick %d: spawn x %v outside lane %+v", tick, last.X, lane)
				}
			}
		}
		if s.Lives() < 0 {
			t.Fatalf("tick %d: lives = %d", tick, s.Lives())
		}
		if s.Score() < prevScore {
			t.Fatalf("tick %d: score decreased %d -> %d", tick, prevScore, s.Score())
		}
		prevScore = s.Score()

		b := s.Player().Bounds()
		if b.Left() < lane.Left || b.Right() > lane.Right {
			t.Fatalf("tick %d: player bounds %+v outside lane", tick, b)
		}
	}

	if s.Phase() != PhaseGameOver {
		t.Fatalf("expected the ramped spawn rate to end the game, score=%d lives=%d", s.Score(), s.Lives())
	}
}

func TestNilRandKeepsDefault(t *testing.T) {
	s := NewSession(WithRand(nil))
	r := s.Tick(200*time.Millisecond, Intent{})
	if !r.Spawned || len(s.Entities()) != 1 {
		t.Fatalf("spawned = %v with %d entities, want one spawn", r.Spawned, len(s.Entities()))
	}
}

func TestFormatScore(t *testing.T) {
	tests := map[int]string{0: "0000", 7: "0007", 21: "0021", 1234: "1234", 98765: "98765"}
	for in, want := range tests {
		if got := FormatScore(in); got != want {
			t.Errorf("FormatScore(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestPhaseString(t *testing.T) {
	if PhasePlaying.String() != "playing" || PhaseGameOver.String() != "game over" {
		t.Fatalf("unexpected phase names %q %q", PhasePlaying, PhaseGameOver)
	}
}
