// Package conformance runs the condition system's canonical scenarios
// against yaml-described expectations, a fixture-driven shape.
package conformance

// Fixture represents one yaml scenario-expectation file.
type Fixture struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Scenario    string      `yaml:"scenario"` // looked up in the catalog
	Expect      Expectation `yaml:"expect"`
}

// Expectation describes the outcome a scenario run must match.
type Expectation struct {
	Log     []string    `yaml:"log,omitempty"`     // exact ordered trace of observable events
	Value   interface{} `yaml:"value,omitempty"`   // exact match against the scenario's return value
	Aborted bool        `yaml:"aborted,omitempty"` // whether the run is expected to reach AbortFunc
}
