package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogFileWriterRotatesAtCap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	w, err := newLogFileWriter(path, 1)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	defer w.Close()

	// Shrink the cap so the second write forces a rotation.
	w.cap = 32

	first := strings.Repeat("a", 30)
	if _, err := w.Write([]byte(first)); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if _, err := w.Write([]byte("bbbb")); err != nil {
		t.Fatalf("second write: %v", err)
	}

	current, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read current log: %v", err)
	}
	if string(current) != "bbbb" {
		t.Fatalf("current log = %q, want only the post-rotation write", current)
	}

	backup, err := os.ReadFile(path + ".old")
	if err != nil {
		t.Fatalf("read rotated backup: %v", err)
	}
	if string(backup) != first {
		t.Fatalf("backup = %q, want the pre-rotation contents", backup)
	}
}

func TestLogFileWriterReopensAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	w, err := newLogFileWriter(path, 1)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := w.Write([]byte("after close")); err != nil {
		t.Fatalf("write after close: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if string(b) != "after close" {
		t.Fatalf("log = %q, want the reopened write", b)
	}
}
