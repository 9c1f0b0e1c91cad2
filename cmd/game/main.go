package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/starfall/internal/audio"
	"github.com/tomz197/starfall/internal/audio/speaker"
	"github.com/tomz197/starfall/internal/loop"
	"github.com/tomz197/starfall/internal/object"
)

func main() {
	shipName := flag.String("ship", "blue", "preselected ship: blue, green, red or purple")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	os.Exit(run(*shipName, *mute, os.Stdin, os.Stdout, os.Stderr))
}

// run plays one local game and returns the process exit code. Cleanup is
// deferred so the terminal leaves raw mode even if the loop panics.
func run(shipName string, mute bool, stdin *os.File, stdout, stderr io.Writer) int {
	ship, ok := object.ParseShipColor(shipName)
	if !ok {
		fmt.Fprintf(stderr, "unknown ship %q\n", shipName)
		return 2
	}

	var cues audio.Cues = audio.NopCues{}
	if !mute {
		sc, err := speaker.New()
		if err != nil {
			fmt.Fprintf(stderr, "sound disabled: %v\n", err)
		} else {
			defer sc.Close()
			cues = sc
		}
	}

	fd := int(stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(stderr, "failed to enable raw mode: %v\n", err)
		return 1
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(stdin)
	if err := loop.Run(reader, stdout, loop.Options{Cues: cues, Ship: ship}); err != nil {
		fmt.Fprintf(stderr, "game error: %v\n", err)
		return 1
	}
	return 0
}
