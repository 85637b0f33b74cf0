package dynctx

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// registry maps a goroutine id to the Context that goroutine owns. This is
// the Go-native stand-in for thread-local storage: each goroutine gets its
// own Context, lazily created on first use, never inherited from whatever
// goroutine spawned it.
var registry sync.Map // map[uint64]*Context

// Current returns the Context belonging to the calling goroutine,
// creating an empty one the first time a goroutine asks.
func Current() *Context {
	id := goroutineID()
	if v, ok := registry.Load(id); ok {
		return v.(*Context)
	}
	ctx := NewContext()
	actual, _ := registry.LoadOrStore(id, ctx)
	return actual.(*Context)
}

// Forget drops the calling goroutine's Context. A registry entry is not
// removed when its goroutine exits; it stays until that goroutine calls
// Forget. Entries are small and keyed by an id the runtime will not reuse
// while the goroutine that registered it is still alive.
func Forget() {
	registry.Delete(goroutineID())
}

// goroutineID parses the numeric goroutine id out of the header line of
// runtime.Stack's output ("goroutine 123 [running]: ..."). This is the
// well-known, if inelegant, way to obtain a stable per-goroutine key
// without the runtime exposing one directly; it is only ever used here to
// pick a map key; the condition system performs no scheduling of its own.
func goroutineID() uint64 {
	buf := make([]byte, 64)
	for {
		n := runtime.Stack(buf, false)
		if n < len(buf) {
			buf = buf[:n]
			break
		}
		buf = make([]byte, 2*len(buf))
	}

	const prefix = "goroutine "
	buf = bytes.TrimPrefix(buf, []byte(prefix))
	end := bytes.IndexByte(buf, ' ')
	if end < 0 {
		return 0
	}
	id, err := strconv.ParseUint(string(buf[:end]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
