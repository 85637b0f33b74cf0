package condition

import "github.com/erlendhv/conditions/dynctx"

// Handling installs the given (matcher, action) pairs for the dynamic
// extent of body, then runs body. If body returns normally, its value is
// Handling's value. If body triggers a non-local transfer (an inner
// Signal/Error call whose handler invoked a restart or escape), Handling
// pops the frames it pushed and lets the transfer continue outward.
//
// Pairs are pushed so that, within this one call, matching follows
// textual order (pairs[0] tried before pairs[1]) while an outer Handling's
// pairs are only ever tried after every pair of this call has been tried
// and declined. Concretely this means pushing the pairs onto the handler
// stack in reverse: the stack is walked newest-first, so pushing
// pairs[len-1] first and pairs[0] last puts pairs[0] on top, where it's
// found before pairs[1], which is in turn found before anything an outer
// Handling pushed earlier.
func Handling(pairs []HandlerPair, body func() any) any {
	ctx := dynctx.Current()

	n := len(pairs)
	matchers := make([]func(any) bool, n)
	actions := make([]func(any) (any, bool), n)
	for i, p := range pairs {
		reversed := n - 1 - i
		matchers[reversed] = func(c any) bool { return p.Matcher(c) }
		actions[reversed] = func(c any) (any, bool) {
			r := p.Action(c)
			return r.value, r.handled
		}
	}

	pushed, start := ctx.PushHandlers(matchers, actions)

	popped := false
	pop := func() {
		if !popped {
			popped = true
			ctx.PopHandlers(pushed, start)
		}
	}

	var result any
	func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			pop()
			panic(r)
		}()
		result = body()
		pop()
	}()
	return result
}
