// Package audio defines the sound cues a front end plays for game events.
// Playback through a sound device lives in the speaker subpackage, so front
// ends without sound do not link the audio driver.
package audio

// Cues reacts to game events with sound.
type Cues interface {
	StarCaught()
	AsteroidHit()
	GameOver()
}

// NopCues plays nothing. Used for SSH sessions, which have no speaker.
type NopCues struct{}

func (NopCues) StarCaught()  {}
func (NopCues) AsteroidHit() {}
func (NopCues) GameOver()    {}
