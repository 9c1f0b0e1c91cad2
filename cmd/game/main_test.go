package main

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestRunRejectsUnknownShip(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run("orange", true, os.Stdin, &stdout, &stderr); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	if !strings.Contains(stderr.String(), "unknown ship") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestRunFailsWithoutTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "stdin")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var stdout, stderr bytes.Buffer
	if code := run("blue", true, f, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "raw mode") {
		t.Fatalf("stderr = %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Fatalf("game started without a terminal: %q", stdout.String())
	}
}
