package condition

import "github.com/erlendhv/conditions/dynctx"

// transferKind distinguishes the two non-local transfer shapes the
// library implements: escaping to a to_escape call, or invoking a restart
// bound by a with_restart call.
type transferKind int

const (
	transferEscape transferKind = iota
	transferRestart
)

// unwind is the typed panic payload every non-local transfer carries.
// Every primitive that can sit between a transfer's origin and its target
// (Handling, WithRestart, ToEscape) recovers and pops its own frames;
// WithRestart and ToEscape also check bindingID against their own and
// consume a matching unwind, and anything else is re-panicked — see
// handling.go, restart.go, escape.go.
type unwind struct {
	kind      transferKind
	bindingID dynctx.BindingID
	name      string // restart name, set only for transferRestart
	args      []any  // restart arguments, set only for transferRestart
	value     any     // escape payload, set only for transferEscape
}

// catchUnwind inspects a recovered panic value r and reports whether it
// is one of ours of the given kind targeting bindingID. Non-matching
// unwinds and any other panic value are re-panicked by the caller, which
// still holds r (on a mismatch catchUnwind returns a zero unwind).
func catchUnwind(r any, kind transferKind, bindingID dynctx.BindingID) (u unwind, ok bool) {
	u, ok = r.(unwind)
	if !ok || u.kind != kind || u.bindingID != bindingID {
		return unwind{}, false
	}
	return u, true
}
