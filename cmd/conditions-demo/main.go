package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/erlendhv/conditions/condition"
	"github.com/erlendhv/conditions/trace"
)

func main() {
	scenario := flag.String("scenario", "", "Run one named scenario (see -list); default runs all in name order, stopping when one aborts the process")
	list := flag.Bool("list", false, "List available scenario names and exit")
	traceEnabled := flag.Bool("trace", false, "Enable condition-system tracing")
	traceFilter := flag.String("trace-filter", "", "Trace filter pattern (glob, comma-separated)")

	flag.Parse()

	if *traceEnabled {
		var filters []string
		if *traceFilter != "" {
			filters = strings.Split(*traceFilter, ",")
			for i := range filters {
				filters[i] = strings.TrimSpace(filters[i])
			}
		}
		trace.Init(true, filters, os.Stderr)
		log.Printf("Tracing enabled (filters: %v)", filters)
	} else {
		trace.Init(false, nil, nil)
	}

	if *list {
		for _, name := range scenarioNames() {
			fmt.Println(name)
		}
		return
	}

	if *scenario != "" {
		runAndReport(*scenario)
		return
	}

	for _, name := range scenarioNames() {
		runAndReport(name)
	}
}

func scenarioNames() []string {
	names := make([]string, 0, len(demoScenarios))
	for name := range demoScenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func runAndReport(name string) {
	run, ok := demoScenarios[name]
	if !ok {
		log.Fatalf("no such scenario: %q (use -list to see available names)", name)
	}
	fmt.Printf("=== %s ===\n", name)
	value := run()
	fmt.Printf("=> %v\n\n", value)
}

// demoScenarios runs the library's documented behaviors end to end,
// printing as it goes — three of the six shapes the condition package's
// own test suite checks mechanically (declining handler, restart return,
// escape through handlers), here narrated for a human reader.
var demoScenarios = map[string]func() any{
	"reciprocal-declining-handler": func() any {
		return condition.Handling([]condition.HandlerPair{{
			Matcher: condition.KindIs("div-by-zero"),
			Action: func(condition.Condition) condition.HandlerResult {
				fmt.Println("handler saw div-by-zero, declining")
				return condition.Declined
			},
		}}, func() any {
			return condition.Error("div-by-zero")
		})
	},
	"restart-return-zero": func() any {
		return condition.Handling([]condition.HandlerPair{{
			Matcher: condition.KindIs("div-by-zero"),
			Action: func(condition.Condition) condition.HandlerResult {
				fmt.Println("handler invoking the 'zero' restart")
				condition.InvokeRestart("zero")
				return condition.Declined
			},
		}}, func() any { return reciprocal(0) })
	},
	"restart-return-val": func() any {
		return condition.Handling([]condition.HandlerPair{{
			Matcher: condition.KindIs("div-by-zero"),
			Action: func(condition.Condition) condition.HandlerResult {
				fmt.Println("handler invoking the 'val' restart with 123")
				condition.InvokeRestart("val", 123.0)
				return condition.Declined
			},
		}}, func() any { return reciprocal(0) })
	},
	"restart-return-retry": func() any {
		return condition.Handling([]condition.HandlerPair{{
			Matcher: condition.KindIs("div-by-zero"),
			Action: func(condition.Condition) condition.HandlerResult {
				fmt.Println("handler invoking the 'retry' restart with 10")
				condition.InvokeRestart("retry", 10.0)
				return condition.Declined
			},
		}}, func() any { return reciprocal(0) })
	},
	"escape-through-handlers": func() any {
		return condition.ToEscape(func(exit condition.Escape) any {
			return condition.Handling([]condition.HandlerPair{{
				Matcher: condition.KindIs("div-by-zero"),
				Action: func(condition.Condition) condition.HandlerResult {
					fmt.Println("outer handler escaping with 'Done'")
					exit("Done")
					return condition.Declined
				},
			}}, func() any {
				return condition.Handling([]condition.HandlerPair{{
					Matcher: condition.KindIs("div-by-zero"),
					Action: func(condition.Condition) condition.HandlerResult {
						fmt.Println("inner handler declining")
						return condition.Declined
					},
				}}, func() any {
					return condition.Error("div-by-zero")
				})
			})
		})
	},
}

// reciprocal is the demo's own f(v): a division guarded by a restart
// group offering zero/val/retry recovery strategies.
func reciprocal(v float64) any {
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
