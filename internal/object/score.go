package object

// starsPerBonus is the streak length after which each star is worth one more point.
const starsPerBonus = 3

// ScoreTracker owns score, lives and the star streak.
type ScoreTracker struct {
	score          int
	lives          int
	nextStarPoints int
	streak         int // Consecutive stars caught since the last asteroid hit
}

// NewScoreTracker creates a tracker with the given number of lives.
func NewScoreTracker(lives int) *ScoreTracker {
	if lives < 0 {
		lives = 0
	}
	return &ScoreTracker{
		lives:          lives,
		nextStarPoints: 1,
	}
}

// StarCaught extends the streak and adds the current star value to the score.
// Every third consecutive star raises the value by one before it is added.
func (s *ScoreTracker) StarCaught() {
	s.streak++
	if s.streak%starsPerBonus == 0 {
		s.nextStarPoints++
	}
	s.score += s.nextStarPoints
}

// AsteroidHit costs a life and ends the streak. Lives never drop below zero.
func (s *ScoreTracker) AsteroidHit() {
	if s.lives > 0 {
		s.lives--
	}
	s.streak = 0
	s.nextStarPoints = 1
}

// Score returns the current score.
func (s *ScoreTracker) Score() int { return s.score }

// Lives returns the remaining lives.
func (s *ScoreTracker) Lives() int { return s.lives }

// NextStarPoints returns the value of the most recent (or next) star.
func (s *ScoreTracker) NextStarPoints() int { return s.nextStarPoints }

// Streak returns the number of consecutive stars caught.
func (s *ScoreTracker) Streak() int { return s.streak }
