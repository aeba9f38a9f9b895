package main

import (
	"io"
	"os"
	"strings"
	"testing"
)

func TestPrintVersion(t *testing.T) {
	originalStdout := os.Stdout

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w

	oldVersion := version
	oldBuildTime := buildTime
	oldGitCommit := gitCommit
	version = "1.2.3"
	buildTime = "2026-08-01_10:30:00"
	gitCommit = "abc123"

	printVersion()

	w.Close()
	os.Stdout = originalStdout
	version = oldVersion
	buildTime = oldBuildTime
	gitCommit = oldGitCommit

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("Failed to read captured output: %v", err)
	}

	output := string(out)
	for _, want := range []string{"formseal", "1.2.3", "abc123"} {
		if !strings.Contains(output, want) {
			t.Errorf("version output missing %q: %s", want, output)
		}
	}
}
