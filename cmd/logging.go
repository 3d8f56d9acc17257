package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// LogDestination is where debug logs are written while the TUI owns the terminal
type LogDestination int

const (
	LogToFile LogDestination = iota
	LogToStderr
)

const logBufferSize = 1000

// determineLogDestination picks the log location for an OS. Paths may start
// with ~ for the user's home directory.
func determineLogDestination(goos string) (LogDestination, string) {
	switch goos {
	case "linux":
		return LogToFile, "~/" + cfgFilePath + "debug.log"
	case "darwin":
		return LogToFile, "~/Library/Logs/aidash.log"
	default:
		return LogToStderr, ""
	}
}

func expandHome(path, home string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// setupLogging points the default logger at the destination for goos and
// returns a function that flushes and closes it
func setupLogging(goos string, debug bool) (func() error, error) {
	if debug {
		log.SetLevel(log.DebugLevel)
	}

	dest, path := determineLogDestination(goos)
	if dest == LogToStderr {
		log.SetOutput(os.Stderr)
		return func() error { return nil }, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to find home directory: %w", err)
	}
	path = expandHome(path, home)

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Open log file, truncating if it exists to prevent unbounded growth
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	// Use async writer to prevent log I/O from blocking the UI
	w := newAsyncWriter(f, logBufferSize)
	log.SetOutput(w)

	return func() error {
		w.Close() //nolint:errcheck
		log.SetOutput(os.Stderr)
		return f.Close()
	}, nil
}

// asyncWriter wraps an io.Writer and writes asynchronously via a channel
type asyncWriter struct {
	out    chan []byte
	done   chan struct{}
	closed bool
}

func newAsyncWriter(w io.Writer, bufferSize int) *asyncWriter {
	aw := &asyncWriter{
		out:  make(chan []byte, bufferSize),
		done: make(chan struct{}),
	}

	go func() {
		for msg := range aw.out {
			w.Write(msg) //nolint:errcheck
		}
		close(aw.done)
	}()

	return aw
}

func (aw *asyncWriter) Write(p []byte) (n int, err error) {
	if aw.closed {
		return 0, os.ErrClosed
	}

	// Make a copy since the caller might reuse the buffer
	msg := make([]byte, len(p))
	copy(msg, p)

	// Non-blocking send - if buffer is full, drop the message
	select {
	case aw.out <- msg:
	default:
	}
	return len(p), nil
}

func (aw *asyncWriter) Close() error {
	if !aw.closed {
		aw.closed = true
		close(aw.out)
		<-aw.done // Wait for goroutine to finish
	}
	return nil
}
