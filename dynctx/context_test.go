package dynctx

import "testing"

func TestPushPopHandlersBalanced(t *testing.T) {
	c := NewContext()
	pushed, start := c.PushHandlers(
		[]func(any) bool{func(any) bool { return true }},
		[]func(any) (any, bool){func(any) (any, bool) { return nil, false }},
	)
	if h, _, _ := c.Depth(); h != 1 {
		t.Fatalf("expected depth 1 after push, got %d", h)
	}
	c.PopHandlers(pushed, start)
	if h, _, _ := c.Depth(); h != 0 {
		t.Fatalf("expected depth 0 after pop, got %d", h)
	}
}

func TestPopHandlersMismatchPanics(t *testing.T) {
	c := NewContext()
	pushed, start := c.PushHandlers(
		[]func(any) bool{func(any) bool { return true }},
		[]func(any) (any, bool){func(any) (any, bool) { return nil, false }},
	)
	// Push something else on top, corrupting the expected top-of-stack.
	c.handlers = append(c.handlers, HandlerFrame{FrameID: nextFrameID()})

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic on unbalanced pop")
		}
	}()
	c.PopHandlers(pushed, start)
}

func TestCallHandlerHidesSelfAndNewerHandlers(t *testing.T) {
	c := NewContext()
	var seenDepthInsideInner int
	innerAction := func(any) (any, bool) {
		seenDepthInsideInner, _, _ = c.Depth()
		return nil, false
	}
	outerAction := func(any) (any, bool) { return nil, false }

	pushedOuter, _ := c.PushHandlers([]func(any) bool{func(any) bool { return true }}, []func(any) (any, bool){outerAction})
	pushedInner, _ := c.PushHandlers([]func(any) bool{func(any) bool { return true }}, []func(any) (any, bool){innerAction})

	hs := c.Handlers()
	c.CallHandler(hs, 1, "condition") // index 1 = the inner handler

	if seenDepthInsideInner != 1 {
		t.Fatalf("inner handler should see only the outer frame (depth 1), saw %d", seenDepthInsideInner)
	}
	if h, _, _ := c.Depth(); h != 2 {
		t.Fatalf("handler stack should be restored to depth 2 after the call, got %d", h)
	}

	c.PopHandlers(pushedInner, 1)
	c.PopHandlers(pushedOuter, 0)
}

func TestRestartShadowingInnermostWins(t *testing.T) {
	c := NewContext()
	outerBinding := NextBindingID()
	innerBinding := NextBindingID()

	pushedOuter, startOuter := c.PushRestarts(outerBinding, []string{"retry"}, []func(args ...any) any{
		func(args ...any) any { return "outer" },
	})
	pushedInner, startInner := c.PushRestarts(innerBinding, []string{"retry"}, []func(args ...any) any{
		func(args ...any) any { return "inner" },
	})

	found, ok := c.FindRestart("retry")
	if !ok {
		t.Fatal("expected to find a restart named retry")
	}
	if found.BindingID != innerBinding {
		t.Fatalf("expected innermost restart to win, got binding %d want %d", found.BindingID, innerBinding)
	}

	c.PopRestarts(pushedInner, startInner)

	found, ok = c.FindRestart("retry")
	if !ok || found.BindingID != outerBinding {
		t.Fatal("expected outer restart to be found after inner popped")
	}
	c.PopRestarts(pushedOuter, startOuter)
}

func TestEscapeActiveLifecycle(t *testing.T) {
	c := NewContext()
	bindingID := NextBindingID()
	f := c.PushEscape(bindingID)
	if !c.EscapeActive(bindingID) {
		t.Fatal("escape should be active right after push")
	}
	c.PopEscape(f)
	if c.EscapeActive(bindingID) {
		t.Fatal("escape should be inactive after pop")
	}
}
