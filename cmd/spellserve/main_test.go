package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStdinIsPipeOnPipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	if !stdinIsPipe(r) {
		t.Error("pipe read end classified as a terminal")
	}
}

func TestStdinIsPipeOnRedirectedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte("teh cat\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	if !stdinIsPipe(f) {
		t.Error("redirected file classified as a terminal")
	}
}
