package conformance

import (
	"fmt"
	"reflect"
)

// RunResult is the outcome of checking one fixture against its scenario.
type RunResult struct {
	Fixture LoadedFixture
	Passed  bool
	Error   error
}

// Run executes the scenario named by fixture.Fixture.Scenario and checks
// its outcome against fixture.Fixture.Expect.
func Run(fixture LoadedFixture) RunResult {
	scenario, ok := Catalog[fixture.Fixture.Scenario]
	if !ok {
		return RunResult{Fixture: fixture, Error: fmt.Errorf("no such scenario: %q", fixture.Fixture.Scenario)}
	}

	got := scenario()
	expect := fixture.Fixture.Expect

	if expect.Log != nil {
		if !reflect.DeepEqual(got.Log, expect.Log) {
			return RunResult{Fixture: fixture, Error: fmt.Errorf("log mismatch: got %v, want %v", got.Log, expect.Log)}
		}
	}

	if expect.Value != nil {
		wantVal := normalizeYAMLValue(expect.Value)
		gotVal := normalizeYAMLValue(got.Value)
		if !reflect.DeepEqual(gotVal, wantVal) {
			return RunResult{Fixture: fixture, Error: fmt.Errorf("value mismatch: got %v (%T), want %v (%T)", gotVal, gotVal, wantVal, wantVal)}
		}
	}

	if got.Aborted != expect.Aborted {
		return RunResult{Fixture: fixture, Error: fmt.Errorf("aborted mismatch: got %v, want %v", got.Aborted, expect.Aborted)}
	}

	return RunResult{Fixture: fixture, Passed: true}
}

// RunAll runs every loaded fixture.
func RunAll(fixtures []LoadedFixture) []RunResult {
	results := make([]RunResult, len(fixtures))
	for i, f := range fixtures {
		results[i] = Run(f)
	}
	return results
}

// normalizeYAMLValue reconciles the numeric types yaml.v3 decodes
// (int, float64) with the numeric types a scenario actually returns
// (int, float64), so 0 and 0.0 compare equal the way the scenario author
// meant them to.
func normalizeYAMLValue(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return v
	}
}
