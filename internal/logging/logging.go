// Package logging provides the leveled logger injected into every
// pipeline component. Presentation stays out of the core packages;
// they only see this interface.
package logging

import (
	"io"
	"log"
	"os"
)

// Logger is the minimal leveled logging surface used by the pipeline.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type stdLogger struct {
	out   *log.Logger
	debug bool
}

// New returns a Logger writing to stderr. Debugf output is suppressed
// unless debug is true.
func New(debug bool) Logger {
	return &stdLogger{
		out:   log.New(os.Stderr, "", 0),
		debug: debug,
	}
}

// Discard returns a Logger that drops everything. Used in tests.
func Discard() Logger {
	return &stdLogger{out: log.New(io.Discard, "", 0)}
}

func (l *stdLogger) Debugf(format string, args ...any) {
	if l.debug {
		l.out.Printf("[DEBUG] "+format, args...)
	}
}

func (l *stdLogger) Infof(format string, args ...any) {
	l.out.Printf("[INFO] "+format, args...)
}

func (l *stdLogger) Warnf(format string, args ...any) {
	l.out.Printf("[WARNING] "+format, args...)
}

func (l *stdLogger) Errorf(format string, args ...any) {
	l.out.Printf("[ERROR] "+format, args...)
}
