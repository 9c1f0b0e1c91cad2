package object

import (
	"time"

	"github.com/tomz197/starfall/internal/loop/config"
)

// SpawnInterval returns the target time between spawns after t of play.
// It decays linearly from config.SpawnMaxInterval to config.SpawnMinInterval
// over config.SpawnRampDuration and stays at the minimum afterwards.
func SpawnInterval(t time.Duration) time.Duration {
	if t < 0 {
		t = 0
	}
	if t > config.SpawnRampDuration {
		t = config.SpawnRampDuration
	}
	span := float64(config.SpawnMaxInterval - config.SpawnMinInterval)
	decay := time.Duration(span * float64(t) / float64(config.SpawnRampDuration))
	return config.SpawnMaxInterval - decay
}

// SpawnScheduler decides when a new falling object should appear.
type SpawnScheduler struct {
	sinceStart     time.Duration
	sinceLastSpawn time.Duration
}

// NewSpawnScheduler creates a scheduler at the start of play.
func NewSpawnScheduler() *SpawnScheduler {
	return &SpawnScheduler{}
}

// Update accumulates delta and reports whether an object should spawn this tick.
// The interval is taken from the elapsed time before this tick's delta is
// added. At most one spawn is signalled per tick, however large delta is.
func (s *SpawnScheduler) Update(delta time.Duration) bool {
	interval := SpawnInterval(s.sinceStart)
	s.sinceStart += delta

	s.sinceLastSpawn += delta
	if s.sinceLastSpawn > interval {
		s.sinceLastSpawn = 0
		return true
	}
	return false
}

// Elapsed returns the accumulated play time.
func (s *SpawnScheduler) Elapsed() time.Duration {
	return s.sinceStart
}

// SinceLastSpawn returns the time accumulated since the last spawn.
func (s *SpawnScheduler) SinceLastSpawn() time.Duration {
	return s.sinceLastSpawn
}
