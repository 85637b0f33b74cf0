package condition

import (
	"github.com/erlendhv/conditions/dynctx"
	"github.com/erlendhv/conditions/trace"
)

// ToEscape creates a named exit point and runs body with an Escape
// closure that transfers control back to this call, carrying whatever
// value it was given. If body returns normally, ToEscape returns that
// value. If the escape closure is called anywhere in body's dynamic
// extent — including from inside a handler or restart strategy running
// above this frame — ToEscape returns the payload the closure was called
// with instead.
//
// The escape closure may be called at any point during the dynamic
// extent of body, but not after ToEscape has returned: doing so panics
// with EscapeExpired.
func ToEscape(body func(escape Escape) any) any {
	ctx := dynctx.Current()
	bindingID := dynctx.NextBindingID()
	frame := ctx.PushEscape(bindingID)

	escape := func(value any) {
		if !ctx.EscapeActive(bindingID) {
			panic(EscapeExpired{BindingID: uint64(bindingID)})
		}
		trace.EscapeInvoked(uint64(bindingID), value)
		panic(unwind{kind: transferEscape, bindingID: bindingID, value: value})
	}

	popped := false
	pop := func() {
		if !popped {
			popped = true
			ctx.PopEscape(frame)
		}
	}

	var result any
	func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			u, ok := catchUnwind(r, transferEscape, bindingID)
			if !ok {
				pop()
				panic(r)
			}
			pop()
			result = u.value
		}()
		result = body(escape)
		pop()
	}()
	return result
}
