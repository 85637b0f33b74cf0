package condition

import (
	"os"
	"os/exec"
	"testing"
)

func TestSignalIsIgnorableWhenNoHandlerMatches(t *testing.T) {
	v, handled := Signal("unmatched-kind")
	if handled {
		t.Fatalf("expected an unhandled signal, got handled=%v value=%v", handled, v)
	}
}

func TestSignalIgnorableEvenWhenEveryHandlerDeclines(t *testing.T) {
	calls := 0
	var handled bool
	Handling([]HandlerPair{{Matcher: KindIs("c"), Action: func(Condition) HandlerResult {
		calls++
		return Declined
	}}}, func() any {
		_, handled = Signal("c")
		return nil
	})
	if calls != 1 {
		t.Fatalf("expected the handler to run once, ran %d times", calls)
	}
	if handled {
		t.Fatal("a decline should leave the signal unhandled")
	}
}

func TestKindIsMatchesByKindedInterfaceOverType(t *testing.T) {
	type divByZero struct{}
	var k Kinded = kindedCondition{kind: "DIV_BY_ZERO"}
	if KindOf(k) != "DIV_BY_ZERO" {
		t.Fatalf("expected ConditionKind() to win over the value itself, got %v", KindOf(k))
	}
	matcher := KindIs("DIV_BY_ZERO")
	if !matcher(kindedCondition{kind: "DIV_BY_ZERO"}) {
		t.Fatal("matcher should accept a condition with a matching kind tag")
	}
	if matcher(divByZero{}) {
		t.Fatal("matcher should not accept an unrelated type")
	}
}

type kindedCondition struct{ kind any }

func (k kindedCondition) ConditionKind() any { return k.kind }

func TestTypeIsMatchesExactGoType(t *testing.T) {
	type fileNotFound struct{ path string }
	matcher := TypeIs[fileNotFound]()
	if !matcher(fileNotFound{path: "/tmp/x"}) {
		t.Fatal("expected TypeIs to match its own type")
	}
	if matcher("not-a-fileNotFound") {
		t.Fatal("expected TypeIs to reject a different type")
	}
}

// TestErrorReturnsHandlerValueWhenHandled checks that Error, unlike
// Signal, still returns normally when some handler actually handles it.
func TestErrorReturnsHandlerValueWhenHandled(t *testing.T) {
	result := Handling([]HandlerPair{{Matcher: KindIs("oops"), Action: func(Condition) HandlerResult {
		return Handled(42)
	}}}, func() any {
		return Error("oops")
	})
	if result != 42 {
		t.Fatalf("expected Error to return the handler's value, got %v", result)
	}
}

// TestErrorAbortsProcess forks a subprocess that signals an Error with no
// handler installed, and checks the process actually terminates non-zero —
// the only way to observe AbortFunc's default real exit-code behavior.
func TestErrorAbortsProcess(t *testing.T) {
	if os.Getenv("CONDITIONS_ABORT_SUBPROCESS") == "1" {
		Error("unhandled-in-subprocess")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestErrorAbortsProcess")
	cmd.Env = append(os.Environ(), "CONDITIONS_ABORT_SUBPROCESS=1")
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected the subprocess to exit non-zero after an unhandled error()")
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected an *exec.ExitError, got %T: %v", err, err)
	}
	if exitErr.ExitCode() == 0 {
		t.Fatalf("expected a non-zero exit code, got %d", exitErr.ExitCode())
	}
}
