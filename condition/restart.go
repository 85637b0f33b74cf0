package condition

import (
	"github.com/erlendhv/conditions/dynctx"
	"github.com/erlendhv/conditions/trace"
)

// WithRestart installs the given (name, strategy) pairs as restarts for
// the dynamic extent of body, sharing one BindingID. If body returns
// normally, its value is WithRestart's value. If an invoke_restart call
// anywhere in body's dynamic extent — including from inside a handler
// running above this frame — selects one of these restarts, the matching
// strategy runs in the context of WithRestart's caller (i.e. after this
// restart group, and everything pushed above it, has been popped) and its
// result becomes WithRestart's value.
func WithRestart(pairs []RestartPair, body func() any) any {
	ctx := dynctx.Current()
	bindingID := dynctx.NextBindingID()

	names := make([]string, len(pairs))
	strategies := make([]func(args ...any) any, len(pairs))
	for i, p := range pairs {
		names[i] = p.Name
		strategies[i] = p.Strategy
	}
	pushed, start := ctx.PushRestarts(bindingID, names, strategies)

	popped := false
	pop := func() {
		if !popped {
			popped = true
			ctx.PopRestarts(pushed, start)
		}
	}

	var result any
	func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			u, ok := catchUnwind(r, transferRestart, bindingID)
			if !ok {
				pop()
				panic(r)
			}
			pop()
			for _, f := range pushed {
				if f.Name == u.name {
					result = f.Strategy(u.args...)
					return
				}
			}
			// invoke_restart only transfers here after matching a frame
			// by (bindingID, name); reaching here means this frame's
			// restarts changed shape mid-flight, which is a library bug.
			panic(&dynctx.UnbalancedStackError{Stack: "restart"})
		}()
		result = body()
		pop()
	}()
	return result
}

// InvokeRestart transfers control to the innermost restart named name,
// running its strategy with args in the context of that restart's
// with_restart call and making that call return the strategy's result.
// When such a restart exists it never returns here. If no restart named
// name is available, it signals NoSuchRestart via Error instead and
// returns whatever value a handler supplies with Handled(v); with no
// handler taking it, the process aborts.
func InvokeRestart(name string, args ...any) any {
	ctx := dynctx.Current()
	f, ok := ctx.FindRestart(name)
	if !ok {
		return Error(NoSuchRestart{Name: name})
	}
	trace.RestartInvoked(name, args)
	panic(unwind{kind: transferRestart, bindingID: f.BindingID, name: name, args: args})
}

// AvailableRestart reports whether a restart named name is currently
// reachable — a read-only query, no transfer.
func AvailableRestart(name string) bool {
	_, ok := dynctx.Current().FindRestart(name)
	return ok
}
