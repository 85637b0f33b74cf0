package condition

import (
	"fmt"

	"github.com/erlendhv/conditions/dynctx"
	"github.com/erlendhv/conditions/trace"
)

// AbortFunc runs when an Error condition reaches the end of the handler
// stack unhandled. The default logs a fatal diagnostic and exits the
// process. Tests that want to assert this in-process without ending the
// test binary may replace AbortFunc; TestErrorAbortsProcess in
// signal_test.go instead forks a subprocess to check the real exit-code
// behavior, since that's the only way to observe an actual process exit.
var AbortFunc = func(c Condition) {
	trace.Abort(c)
	abortProcess()
}

// walk searches the handler stack newest-first for the first handler
// whose matcher accepts condition, calling its action with the handler
// stack truncated to everything strictly older than that handler, so a
// handler can never re-enter itself. The first Handled(v) result wins; a
// Declined result continues the walk outward.
func walk(ctx *dynctx.Context, condition Condition) (value any, handled bool) {
	hs := ctx.Handlers()
	for i := len(hs) - 1; i >= 0; i-- {
		h := hs[i]
		if !h.Matcher(condition) {
			continue
		}
		v, ok := ctx.CallHandler(hs, i, condition)
		if ok {
			return v, true
		}
		// Declined: keep walking the same snapshot toward older frames.
	}
	return nil, false
}

// Signal announces condition. If a handler handles it, Signal returns its
// value and true. If no handler matches, or every matching handler
// declines, Signal returns (nil, false) — ignorable, no side effect
// beyond whatever the declining handlers themselves did.
func Signal(c Condition) (any, bool) {
	kind := KindOf(c)
	trace.Signal("signal", formatKind(kind), c)
	v, ok := walk(dynctx.Current(), c)
	if ok {
		trace.Handled(formatKind(kind), v)
	} else {
		trace.Declined(formatKind(kind))
	}
	return v, ok
}

// Error announces condition and requires it be handled. If a handler
// handles it (by returning Handled(v), or by transferring non-locally —
// in which case Error never returns here at all), Error returns that
// value. If the walk exhausts with every handler declining or no handler
// matching, the program aborts via AbortFunc.
func Error(c Condition) any {
	kind := KindOf(c)
	trace.Signal("error", formatKind(kind), c)
	v, ok := walk(dynctx.Current(), c)
	if ok {
		trace.Handled(formatKind(kind), v)
		return v
	}
	trace.Declined(formatKind(kind))
	AbortFunc(c)
	panic(c) // unreachable unless AbortFunc was overridden to return
}

func formatKind(kind any) string {
	if s, ok := kind.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", kind)
}
