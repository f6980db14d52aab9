package uci

import (
	"fmt"
	"io"
	"sync"
)

// Logger is the protocol output sink. One lock serializes every line so
// writes from the dispatch loop and the search worker never interleave
// within a line.
type Logger struct {
	mu         sync.Mutex
	out        io.Writer
	debug      bool
	infoFormat string
}

type flusher interface {
	Flush() error
}

func NewLogger(out io.Writer, debug bool) *Logger {
	return &Logger{
		out:        out,
		debug:      debug,
		infoFormat: "info string %s",
	}
}

// SetDebug toggles engine-info output at runtime.
func (l *Logger) SetDebug(v bool) {
	l.mu.Lock()
	l.debug = v
	l.mu.Unlock()
}

func (l *Logger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

// Raw emits a protocol-mandated line verbatim and flushes, so report
// and bestmove lines reach a listening controller promptly.
func (l *Logger) Raw(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, format+"\n", args...)
	if f, ok := l.out.(flusher); ok {
		f.Flush()
	}
}

// Proto emits a required informational line in the configured format.
func (l *Logger) Proto(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, l.infoFormat+"\n", fmt.Sprintf(format, args...))
}

// Info emits only while debug is enabled.
func (l *Logger) Info(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.debug {
		return
	}
	fmt.Fprintf(l.out, "[INFO]: "+format+"\n", args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[WARN]: "+format+"\n", args...)
}

func (l *Logger) Err(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[ERROR]: "+format+"\n", args...)
}
