package speaker

import (
	"testing"
	"time"
)

func TestSequenceLength(t *testing.T) {
	s, err := sequence(gameOverTones)
	if err != nil {
		t.Fatal(err)
	}

	var want int
	for _, tn := range gameOverTones {
		want += sampleRate.N(tn.duration)
	}

	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	if total != want {
		t.Fatalf("streamed %d samples, want %d", total, want)
	}
}

func TestSequenceRejectsBadFrequency(t *testing.T) {
	// Frequencies at or above half the sample rate cannot be synthesized.
	if _, err := sequence([]tone{{float64(sampleRate), time.Millisecond}}); err == nil {
		t.Fatal("expected an error for a tone above the Nyquist frequency")
	}
}
