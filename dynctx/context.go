package dynctx

import "fmt"

// UnbalancedStackError is raised (via panic, since it indicates misuse
// rather than an ordinary recoverable condition) when a pop operation does
// not find the frame it was told to expect on top of its stack. This is
// fatal: it means a push/pop pair was broken, typically by a
// coroutine/goroutine boundary the context was never meant to cross.
type UnbalancedStackError struct {
	Stack    string
	Expected FrameID
	Got      FrameID
}

func (e *UnbalancedStackError) Error() string {
	return fmt.Sprintf("dynctx: unbalanced %s stack: expected to pop frame %d, found %d", e.Stack, e.Expected, e.Got)
}

// Context is the per-goroutine dynamic-extent state: the handler stack,
// the restart stack and the escape stack. All three obey strict LIFO.
// A Context is never shared between goroutines — see gls.go for how one
// is located for the calling goroutine.
type Context struct {
	handlers []HandlerFrame
	restarts []RestartFrame
	escapes  []EscapeFrame
}

// NewContext returns an empty dynamic context, as a freshly-started
// goroutine should see.
func NewContext() *Context {
	return &Context{}
}

// PushHandlers installs one handler frame per (matcher, action) pair,
// textual order preserved (index 0 pushed first, so it ends up below
// later pairs — a lookup still walks newest-first, meaning the last
// listed pair of one handling call is the first one tried, but ties
// within one call are broken by the textual-order rule condition.Handling
// applies before calling PushHandlers). Returns the stack depth to pop
// back down to.
func (c *Context) PushHandlers(matchers []func(any) bool, actions []func(any) (any, bool)) ([]HandlerFrame, int) {
	start := len(c.handlers)
	pushed := make([]HandlerFrame, len(matchers))
	for i := range matchers {
		f := HandlerFrame{FrameID: nextFrameID(), Matcher: matchers[i], Action: actions[i]}
		pushed[i] = f
		c.handlers = append(c.handlers, f)
	}
	return pushed, start
}

// PopHandlers removes exactly the frames PushHandlers just pushed,
// verifying they are still on top.
func (c *Context) PopHandlers(pushed []HandlerFrame, start int) {
	n := len(pushed)
	if len(c.handlers) < start+n {
		panic(&UnbalancedStackError{Stack: "handler", Expected: pushed[0].FrameID})
	}
	top := c.handlers[len(c.handlers)-n:]
	for i, f := range pushed {
		if top[i].FrameID != f.FrameID {
			panic(&UnbalancedStackError{Stack: "handler", Expected: f.FrameID, Got: top[i].FrameID})
		}
	}
	c.handlers = c.handlers[:len(c.handlers)-n]
}

// Handlers returns the live handler stack, oldest first. Callers that
// need to walk newest-first should index from the end; the returned
// slice header is a stable snapshot even though CallHandler temporarily
// reslices c.handlers during one action call (see CallHandler).
func (c *Context) Handlers() []HandlerFrame {
	return c.handlers
}

// CallHandler invokes the action belonging to the handler at index
// (within the slice previously returned by Handlers) with the handler
// stack temporarily truncated to everything strictly older than it, so a
// handler never re-handles its own condition and does not re-enter itself;
// outer handlers remain visible, since "outer" here means older, i.e.
// lower index, as index counts from the bottom of the stack.
func (c *Context) CallHandler(hs []HandlerFrame, index int, condition any) (value any, handled bool) {
	saved := c.handlers
	c.handlers = hs[:index]
	defer func() { c.handlers = saved }()
	return hs[index].Action(condition)
}

// PushRestarts installs one restart frame per (name, strategy) pair,
// sharing the given BindingID (one per with_restart call).
func (c *Context) PushRestarts(bindingID BindingID, names []string, strategies []func(args ...any) any) ([]RestartFrame, int) {
	start := len(c.restarts)
	pushed := make([]RestartFrame, len(names))
	for i := range names {
		f := RestartFrame{FrameID: nextFrameID(), BindingID: bindingID, Name: names[i], Strategy: strategies[i]}
		pushed[i] = f
		c.restarts = append(c.restarts, f)
	}
	return pushed, start
}

// PopRestarts removes exactly the frames PushRestarts just pushed.
func (c *Context) PopRestarts(pushed []RestartFrame, start int) {
	n := len(pushed)
	if len(c.restarts) < start+n {
		panic(&UnbalancedStackError{Stack: "restart", Expected: pushed[0].FrameID})
	}
	top := c.restarts[len(c.restarts)-n:]
	for i, f := range pushed {
		if top[i].FrameID != f.FrameID {
			panic(&UnbalancedStackError{Stack: "restart", Expected: f.FrameID, Got: top[i].FrameID})
		}
	}
	c.restarts = c.restarts[:len(c.restarts)-n]
}

// Restarts returns the live restart stack, oldest first.
func (c *Context) Restarts() []RestartFrame {
	return c.restarts
}

// FindRestart returns the innermost (newest) restart frame with the given
// name, and whether one was found — the traversal both available_restart
// and invoke_restart rely on.
func (c *Context) FindRestart(name string) (RestartFrame, bool) {
	for i := len(c.restarts) - 1; i >= 0; i-- {
		if c.restarts[i].Name == name {
			return c.restarts[i], true
		}
	}
	return RestartFrame{}, false
}

// PushEscape installs a fresh, active escape frame for the given binding.
func (c *Context) PushEscape(bindingID BindingID) EscapeFrame {
	f := EscapeFrame{FrameID: nextFrameID(), BindingID: bindingID, Active: true}
	c.escapes = append(c.escapes, f)
	return f
}

// PopEscape removes the given escape frame, which must still be on top.
func (c *Context) PopEscape(f EscapeFrame) {
	if len(c.escapes) == 0 {
		panic(&UnbalancedStackError{Stack: "escape", Expected: f.FrameID})
	}
	top := c.escapes[len(c.escapes)-1]
	if top.FrameID != f.FrameID {
		panic(&UnbalancedStackError{Stack: "escape", Expected: f.FrameID, Got: top.FrameID})
	}
	c.escapes = c.escapes[:len(c.escapes)-1]
}

// EscapeActive reports whether the escape frame for bindingID is still on
// the stack (and therefore still a legal transfer target). Used to detect
// a call through an expired escape.
func (c *Context) EscapeActive(bindingID BindingID) bool {
	for i := len(c.escapes) - 1; i >= 0; i-- {
		if c.escapes[i].BindingID == bindingID {
			return c.escapes[i].Active
		}
	}
	return false
}

// Depth reports the current size of all three stacks, for balance
// assertions in tests.
func (c *Context) Depth() (handlers, restarts, escapes int) {
	return len(c.handlers), len(c.restarts), len(c.escapes)
}
