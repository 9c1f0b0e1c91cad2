package audio

import (
	"go/build"
	"strings"
	"testing"
)

func TestNopCues(t *testing.T) {
	var c Cues = NopCues{}
	c.StarCaught()
	c.AsteroidHit()
	c.GameOver()
}

// The SSH server imports this package through the loop; it must build
// without cgo or a sound driver.
func TestNoSoundDriverImports(t *testing.T) {
	pkg, err := build.ImportDir(".", 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, imp := range pkg.Imports {
		if strings.HasPrefix(imp, "github.com/gopxl/beep") || strings.HasPrefix(imp, "github.com/ebitengine/oto") {
			t.Fatalf("audio imports %s", imp)
		}
	}
}
