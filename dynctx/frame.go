package dynctx

// HandlerFrame is one (matcher, action) pair installed by a single
// handling call. Matcher and Action are opaque to dynctx — it only ever
// invokes Action through Context.CallHandler, which is responsible for
// truncating the handler stack first (see context.go).
type HandlerFrame struct {
	FrameID FrameID
	Matcher func(condition any) bool
	Action  func(condition any) (value any, handled bool)
}

// RestartFrame is one named recovery strategy installed by a single
// with_restart call. Every restart pushed by the same with_restart call
// shares one BindingID — that's the return point invoke_restart transfers
// control to.
type RestartFrame struct {
	FrameID   FrameID
	BindingID BindingID
	Name      string
	Strategy  func(args ...any) any
}

// EscapeFrame is the bookkeeping record for one to_escape call. The frame
// is popped the instant to_escape returns (normally or via transfer), and
// Context.EscapeActive reports false for a binding with no frame on the
// stack, so a stale escape closure can be detected and rejected.
type EscapeFrame struct {
	FrameID   FrameID
	BindingID BindingID
	Active    bool
}
