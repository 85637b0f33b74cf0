package conformance

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FixtureDir is the path to this package's yaml fixtures, relative to the
// conformance package itself.
const FixtureDir = "fixtures"

// LoadedFixture is a parsed fixture together with the file it came from.
type LoadedFixture struct {
	File    string
	Fixture Fixture
}

// LoadAllFixtures walks FixtureDir and parses every *.yaml file in it.
func LoadAllFixtures() ([]LoadedFixture, error) {
	dir, err := filepath.Abs(FixtureDir)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("conformance: fixture directory not found: %w", err)
	}

	var loaded []LoadedFixture
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		var f Fixture
		if err := yaml.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}

		rel, _ := filepath.Rel(dir, path)
		loaded = append(loaded, LoadedFixture{File: rel, Fixture: f})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loaded, nil
}
