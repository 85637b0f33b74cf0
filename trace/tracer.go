// Package trace provides diagnostic logging for the condition system: the
// fatal diagnostic an unhandled error() prints before aborting, and
// optional debug tracing of signal/handler/restart/escape activity. It is
// a mutex-guarded io.Writer behind a lazily-initialized global instance,
// emitting tagged fmt.Fprintf lines.
package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Tracer writes condition-system diagnostics to an io.Writer.
type Tracer struct {
	enabled bool
	filters []string
	writer  io.Writer
	mu      sync.Mutex
}

// Global tracer instance.
var globalTracer *Tracer

// Init initializes the global tracer. filters, if non-empty, restrict
// Signal/Handled/Declined tracing to condition kinds whose string form
// glob-matches one of the patterns; the fatal-abort diagnostic is never
// filtered.
func Init(enabled bool, filters []string, writer io.Writer) {
	if writer == nil {
		writer = os.Stderr
	}
	globalTracer = &Tracer{
		enabled: enabled,
		filters: filters,
		writer:  writer,
	}
}

// IsEnabled returns whether tracing is enabled.
func IsEnabled() bool {
	if globalTracer == nil {
		return false
	}
	return globalTracer.enabled
}

func (t *Tracer) matchesFilter(kind string) bool {
	if len(t.filters) == 0 {
		return true
	}
	for _, pattern := range t.filters {
		if matched, _ := filepath.Match(pattern, kind); matched {
			return true
		}
	}
	return false
}

// Signal logs a signal() or error() call, before the handler stack is walked.
func (t *Tracer) Signal(severity string, kind string, condition any) {
	if !t.enabled || !t.matchesFilter(kind) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.writer, "[CONDITION] %s %s: %v\n", severity, kind, condition)
}

// Handled logs that a handler accepted and handled a condition.
func (t *Tracer) Handled(kind string, value any) {
	if !t.enabled || !t.matchesFilter(kind) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.writer, "[CONDITION]   handled %s => %v\n", kind, value)
}

// Declined logs that a handler observed but declined a condition.
func (t *Tracer) Declined(kind string) {
	if !t.enabled || !t.matchesFilter(kind) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.writer, "[CONDITION]   declined %s\n", kind)
}

// RestartInvoked logs an invoke_restart call.
func (t *Tracer) RestartInvoked(name string, args []any) {
	if !t.enabled {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.writer, "[CONDITION]   invoke-restart %s%v\n", name, args)
}

// EscapeInvoked logs an escape-closure call.
func (t *Tracer) EscapeInvoked(bindingID uint64, value any) {
	if !t.enabled {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.writer, "[CONDITION]   escape(%d) => %v\n", bindingID, value)
}

// Abort logs the fatal diagnostic for an unhandled error() — this one
// always fires regardless of Init, since an unhandled error aborts the
// program whether or not tracing was requested.
func Abort(condition any) {
	w := io.Writer(os.Stderr)
	if globalTracer != nil {
		w = globalTracer.writer
	}
	fmt.Fprintf(w, "[CONDITION] unhandled error: %v\n", condition)
}

// Global convenience functions wrapping a lazily-initialized globalTracer.

// Signal logs via the global tracer.
func Signal(severity, kind string, condition any) {
	if globalTracer != nil {
		globalTracer.Signal(severity, kind, condition)
	}
}

// Handled logs via the global tracer.
func Handled(kind string, value any) {
	if globalTracer != nil {
		globalTracer.Handled(kind, value)
	}
}

// Declined logs via the global tracer.
func Declined(kind string) {
	if globalTracer != nil {
		globalTracer.Declined(kind)
	}
}

// RestartInvoked logs via the global tracer.
func RestartInvoked(name string, args []any) {
	if globalTracer != nil {
		globalTracer.RestartInvoked(name, args)
	}
}

// EscapeInvoked logs via the global tracer.
func EscapeInvoked(bindingID uint64, value any) {
	if globalTracer != nil {
		globalTracer.EscapeInvoked(bindingID, value)
	}
}
