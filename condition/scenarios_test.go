package condition

import "testing"

// TestScenarioReciprocalDecliningHandler: a handler that observes a
// condition, prints something, and then declines still lets the signaling
// primitive run to completion with no handler taking it — and if that
// primitive was Error, the process still aborts.
func TestScenarioReciprocalDecliningHandler(t *testing.T) {
	var log []string
	var aborted bool
	restoreAbort := stubAbort(t, &aborted)
	defer restoreAbort()

	runExpectingAbort(func() {
		Handling([]HandlerPair{{Matcher: KindIs("div-by-zero"), Action: func(Condition) HandlerResult {
			log = append(log, "saw")
			return Declined
		}}}, func() any {
			return Error("div-by-zero")
		})
	})

	if len(log) != 1 || log[0] != "saw" {
		t.Fatalf("expected the declining handler to run once, got %v", log)
	}
	if !aborted {
		t.Fatal("expected the process to abort once every handler declined")
	}
}

// TestScenarioCascadingDeclineThenAbort: two nested Handling calls, both
// declining the same kind, run innermost first, then outermost, and the
// process still aborts once both have declined.
func TestScenarioCascadingDeclineThenAbort(t *testing.T) {
	var log []string
	var aborted bool
	restoreAbort := stubAbort(t, &aborted)
	defer restoreAbort()

	runExpectingAbort(func() {
		Handling([]HandlerPair{{Matcher: KindIs("c"), Action: func(Condition) HandlerResult {
			log = append(log, "outer")
			return Declined
		}}}, func() any {
			return Handling([]HandlerPair{{Matcher: KindIs("c"), Action: func(Condition) HandlerResult {
				log = append(log, "inner")
				return Declined
			}}}, func() any {
				return Error("c")
			})
		})
	})

	if len(log) != 2 || log[0] != "inner" || log[1] != "outer" {
		t.Fatalf("expected cascading decline order [inner outer], got %v", log)
	}
	if !aborted {
		t.Fatal("expected the process to abort once both handlers declined")
	}
}

// TestScenarioEscapeThroughHandlers exercises an escape fired from an
// outer handler, reaching past an inner declining handler and the
// Handling call it belongs to (the three-layer scenario from restart_test
// and escape_test combined: escape, not restart, wins here).
func TestScenarioEscapeThroughHandlers(t *testing.T) {
	var log []string
	result := ToEscape(func(exit Escape) any {
		return Handling([]HandlerPair{{Matcher: KindIs("div-by-zero"), Action: func(Condition) HandlerResult {
			log = append(log, "A")
			exit("Done")
			return Declined
		}}}, func() any {
			return Handling([]HandlerPair{{Matcher: KindIs("div-by-zero"), Action: func(Condition) HandlerResult {
				log = append(log, "B")
				return Declined
			}}}, func() any {
				return Error("div-by-zero")
			})
		})
	})

	if len(log) != 2 || log[0] != "B" || log[1] != "A" {
		t.Fatalf("expected handler order [B A], got %v", log)
	}
	if result != "Done" {
		t.Fatalf("expected the escape payload, got %v", result)
	}
}

// TestScenarioSignalVsErrorOnLineLimit models a line-counting printer: an
// optional LINE_LIMIT notice is signaled past some configured number of
// lines (ignorable, printing continues), but a hard cap is enforced with
// Error (fatal unless a handler intervenes, typically via a restart).
func TestScenarioSignalVsErrorOnLineLimit(t *testing.T) {
	printLines := func(n, softLimit, hardLimit int) (printed int) {
		return WithRestart([]RestartPair{
			{Name: "stop-printing", Strategy: func(args ...any) any { return printed }},
		}, func() any {
			for i := 1; i <= n; i++ {
				if i == hardLimit {
					Error("LINE_LIMIT_EXCEEDED")
				}
				if i == softLimit {
					Signal("LINE_LIMIT_NOTICE")
				}
				printed++
			}
			return printed
		}).(int)
	}

	t.Run("signal past the soft limit is ignorable", func(t *testing.T) {
		got := printLines(5, 3, 100)
		if got != 5 {
			t.Fatalf("expected all 5 lines to print despite the unhandled soft-limit signal, got %d", got)
		}
	})

	t.Run("error at the hard limit is fatal unless handled", func(t *testing.T) {
		result := Handling([]HandlerPair{{Matcher: KindIs("LINE_LIMIT_EXCEEDED"), Action: func(Condition) HandlerResult {
			InvokeRestart("stop-printing")
			return Declined
		}}}, func() any {
			return printLines(5, 100, 3)
		})
		if result != 2 {
			t.Fatalf("expected printing to stop right before the hard limit (2 lines), got %v", result)
		}
	})

	t.Run("error at the hard limit aborts when nothing handles it", func(t *testing.T) {
		var aborted bool
		restoreAbort := stubAbort(t, &aborted)
		defer restoreAbort()
		runExpectingAbort(func() { printLines(5, 100, 3) })
		if !aborted {
			t.Fatal("expected an unhandled hard-limit error to abort")
		}
	})
}

// stubAbort replaces AbortFunc for the duration of the calling test with
// one that records that it ran instead of exiting the process, restoring
// the original AbortFunc when the returned func is called.
func stubAbort(t *testing.T, aborted *bool) (restore func()) {
	t.Helper()
	original := AbortFunc
	AbortFunc = func(c Condition) { *aborted = true }
	return func() { AbortFunc = original }
}

// runExpectingAbort calls fn, recovering the panic Error raises as its
// unreachable fallback once a stubbed AbortFunc returns instead of
// exiting the process.
func runExpectingAbort(fn func()) {
	defer func() { recover() }()
	fn()
}
