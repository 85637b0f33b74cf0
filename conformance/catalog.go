package conformance

import (
	"fmt"

	"github.com/erlendhv/conditions/condition"
)

// ScenarioResult captures everything a fixture's Expectation can be
// checked against: the ordered trace of observable events a scenario
// recorded, its return value, and whether it drove AbortFunc.
type ScenarioResult struct {
	Log     []string
	Value   any
	Aborted bool
}

// Scenario is one catalog entry: a self-contained run of the condition
// system exercising one documented behavior.
type Scenario func() ScenarioResult

// Catalog maps a scenario name (as named in a Fixture's Scenario field)
// to its implementation. Yaml fixtures can describe expected outcomes,
// but the bodies themselves — closures calling signal/error/handling/
// with_restart/invoke_restart/to_escape — have no yaml representation, so
// they live here in Go instead.
var Catalog = map[string]Scenario{
	"reciprocal-declining-handler": reciprocalDecliningHandler,
	"cascading-decline-then-abort": cascadingDeclineThenAbort,
	"escape-through-handlers":      escapeThroughHandlers,
	"restart-return-zero":          restartReturn("zero", nil, 0.0),
	"restart-return-val":           restartReturn("val", []any{123.0}, 123.0),
	"restart-return-retry":         restartReturnRetry,
	"mystery-escape-arithmetic-0":  mysteryEscapeArithmetic(0),
	"mystery-escape-arithmetic-1":  mysteryEscapeArithmetic(1),
	"mystery-escape-arithmetic-2":  mysteryEscapeArithmetic(2),
	"signal-vs-error-line-limit":   signalVsErrorLineLimit,
}

func withStubbedAbort(fn func(log *[]string) any) ScenarioResult {
	var log []string
	var aborted bool
	original := condition.AbortFunc
	condition.AbortFunc = func(c condition.Condition) { aborted = true }
	defer func() { condition.AbortFunc = original }()

	var value any
	func() {
		defer func() { recover() }()
		value = fn(&log)
	}()
	return ScenarioResult{Log: log, Value: value, Aborted: aborted}
}

func reciprocalDecliningHandler() ScenarioResult {
	return withStubbedAbort(func(log *[]string) any {
		return condition.Handling([]condition.HandlerPair{{
			Matcher: condition.KindIs("div-by-zero"),
			Action: func(condition.Condition) condition.HandlerResult {
				*log = append(*log, "saw")
				return condition.Declined
			},
		}}, func() any {
			return condition.Error("div-by-zero")
		})
	})
}

func cascadingDeclineThenAbort() ScenarioResult {
	return withStubbedAbort(func(log *[]string) any {
		return condition.Handling([]condition.HandlerPair{{
			Matcher: condition.KindIs("c"),
			Action: func(condition.Condition) condition.HandlerResult {
				*log = append(*log, "outer")
				return condition.Declined
			},
		}}, func() any {
			return condition.Handling([]condition.HandlerPair{{
				Matcher: condition.KindIs("c"),
				Action: func(condition.Condition) condition.HandlerResult {
					*log = append(*log, "inner")
					return condition.Declined
				},
			}}, func() any {
				return condition.Error("c")
			})
		})
	})
}

func escapeThroughHandlers() ScenarioResult {
	var log []string
	value := condition.ToEscape(func(exit condition.Escape) any {
		return condition.Handling([]condition.HandlerPair{{
			Matcher: condition.KindIs("div-by-zero"),
			Action: func(condition.Condition) condition.HandlerResult {
				log = append(log, "A")
				exit("Done")
				return condition.Declined
			},
		}}, func() any {
			return condition.Handling([]condition.HandlerPair{{
				Matcher: condition.KindIs("div-by-zero"),
				Action: func(condition.Condition) condition.HandlerResult {
					log = append(log, "B")
					return condition.Declined
				},
			}}, func() any {
				return condition.Error("div-by-zero")
			})
		})
	})
	return ScenarioResult{Log: log, Value: value}
}

// reciprocalF is the standard f(v) used by the restart-return scenarios:
// signals div-by-zero through a restart group offering zero/val/retry.
func reciprocalF(v float64) any {
	var f func(v float64) any
	f = func(v float64) any {
		return condition.WithRestart([]condition.RestartPair{
			{Name: "zero", Strategy: func(args ...any) any { return 0.0 }},
			{Name: "val", Strategy: func(args ...any) any { return args[0] }},
			{Name: "retry", Strategy: func(args ...any) any { return f(args[0].(float64)) }},
		}, func() any {
			if v == 0 {
				return condition.Error("div-by-zero")
			}
			return 1 / v
		})
	}
	return f(v)
}

func restartReturn(name string, args []any, want any) Scenario {
	return func() ScenarioResult {
		value := condition.Handling([]condition.HandlerPair{{
			Matcher: condition.KindIs("div-by-zero"),
			Action: func(condition.Condition) condition.HandlerResult {
				condition.InvokeRestart(name, args...)
				return condition.Declined
			},
		}}, func() any { return reciprocalF(0) })
		return ScenarioResult{Value: value, Log: []string{fmt.Sprintf("restart:%s", name)}}
	}
}

func restartReturnRetry() ScenarioResult {
	return restartReturn("retry", []any{10.0}, 0.1)()
}

func mysteryEscapeArithmetic(n int) Scenario {
	return func() ScenarioResult {
		outerResult := condition.ToEscape(func(exitOuter condition.Escape) any {
			innerResult := condition.ToEscape(func(exitInner condition.Escape) any {
				switch n {
				case 0:
					exitInner(1)
					return nil
				case 1:
					exitOuter(1)
					return nil
				default:
					return 1 + 1
				}
			})
			return 1 + innerResult.(int)
		})
		return ScenarioResult{Value: 1 + outerResult.(int)}
	}
}

func signalVsErrorLineLimit() ScenarioResult {
	printLines := func(n, softLimit, hardLimit int) (printed int) {
		return condition.WithRestart([]condition.RestartPair{
			{Name: "stop-printing", Strategy: func(args ...any) any { return printed }},
		}, func() any {
			for i := 1; i <= n; i++ {
				if i == hardLimit {
					condition.Error("LINE_LIMIT_EXCEEDED")
				}
				if i == softLimit {
					condition.Signal("LINE_LIMIT_NOTICE")
				}
				printed++
			}
			return printed
		}).(int)
	}

	result := condition.Handling([]condition.HandlerPair{{
		Matcher: condition.KindIs("LINE_LIMIT_EXCEEDED"),
		Action: func(condition.Condition) condition.HandlerResult {
			condition.InvokeRestart("stop-printing")
			return condition.Declined
		},
	}}, func() any {
		return printLines(5, 100, 3)
	})
	return ScenarioResult{Value: result}
}
