// Package dynctx implements the per-goroutine dynamic-extent bookkeeping
// that the condition system is built on: stacks of handler, restart and
// escape frames, scoped so that every push is matched by exactly one pop
// on every exit path (normal return, decline, or non-local transfer).
//
// The package owns no policy about signaling, handling or restarting —
// that lives in package condition. dynctx only knows how to push, pop,
// and walk frames newest-first, and how to locate the Context that
// belongs to the calling goroutine.
package dynctx

import "sync/atomic"

// FrameID uniquely identifies one pushed frame, for the lifetime of the
// process. Pop operations are handed the FrameID they expect to find on
// top of the stack and reject a mismatch, which is what lets misuse be
// detected rather than silently corrupting the stack.
type FrameID uint64

// BindingID names a return point: the with_restart or to_escape call that
// a later invoke_restart/escape-closure call transfers control back to.
// A BindingID is shared by every restart frame pushed by one with_restart
// call, and is unique across the process for as long as a live frame
// might reference it — a monotonic counter suffices.
type BindingID uint64

var (
	frameCounter   uint64
	bindingCounter uint64
)

// nextFrameID returns a fresh, process-wide unique FrameID.
func nextFrameID() FrameID {
	return FrameID(atomic.AddUint64(&frameCounter, 1))
}

// NextBindingID returns a fresh, process-wide unique BindingID.
func NextBindingID() BindingID {
	return BindingID(atomic.AddUint64(&bindingCounter, 1))
}
