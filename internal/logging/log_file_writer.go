package logging

import (
	"os"
	"sync"
)

const logFileMode = 0o644

// logFileWriter appends to a log file and keeps it under a byte cap.
// When the next write would cross the cap, the current file is rotated
// aside to <path>.old (replacing any earlier backup) and writing
// continues in a fresh file, so the newest entries plus one generation
// of history survive.
type logFileWriter struct {
	mu sync.Mutex

	path    string
	cap     int64
	file    *os.File
	written int64
}

func newLogFileWriter(path string, maxMB int) (*logFileWriter, error) {
	if maxMB <= 0 {
		maxMB = 10
	}
	w := &logFileWriter{path: path, cap: int64(maxMB) << 20}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *logFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		if err := w.open(); err != nil {
			return 0, err
		}
	}
	if w.written+int64(len(p)) > w.cap {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := w.file.Write(p)
	w.written += int64(n)
	return n, err
}

func (w *logFileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

func (w *logFileWriter) open() error {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, logFileMode)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}
	w.file = f
	w.written = info.Size()
	return nil
}

func (w *logFileWriter) rotate() error {
	if w.file != nil {
		_ = w.file.Close()
		w.file = nil
	}
	// Best effort: a failed rename still leaves a fresh truncated file.
	_ = os.Rename(w.path, w.path+".old")
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, logFileMode)
	if err != nil {
		return err
	}
	w.file = f
	w.written = 0
	return nil
}
