// Package ui is the user-facing diagnostics channel. Warnings about
// deprecated or development-only settings are emitted here so they reach the
// operator without leaking into return values or the structured logs.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type UI interface {
	Warn(msg string)
	Warnf(format string, args ...interface{})
}

type writerUI struct {
	mu  sync.Mutex
	out io.Writer
}

// New returns a UI that writes warnings to out, one per line.
func New(out io.Writer) UI {
	return &writerUI{out: out}
}

// Default returns a UI writing to stderr.
func Default() UI {
	return New(os.Stderr)
}

// Discard returns a UI that drops all diagnostics. Useful in tests.
func Discard() UI {
	return New(io.Discard)
}

func (u *writerUI) Warn(msg string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(u.out, "WARNING: %s\n", msg)
}

func (u *writerUI) Warnf(format string, args ...interface{}) {
	u.Warn(fmt.Sprintf(format, args...))
}
