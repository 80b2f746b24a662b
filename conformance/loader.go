package conformance

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FixturesDir holds the YAML scenario files, relative to this package
// (the fixtures live alongside the Go code that runs them, unlike the
// teacher's conformance suite which reaches into a sibling checkout).
const FixturesDir = "testdata"

// LoadedTest pairs a parsed TestCase with the suite and file it came
// from, for grouped subtest reporting.
type LoadedTest struct {
	File  string
	Suite TestSuite
	Test  TestCase
}

// LoadAllTests walks FixturesDir and loads every *.yaml file's cases.
func LoadAllTests() ([]LoadedTest, error) {
	var loaded []LoadedTest

	err := filepath.Walk(FixturesDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}

		tests, err := loadTestFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		relPath, _ := filepath.Rel(FixturesDir, path)
		for _, t := range tests {
			t.File = relPath
			loaded = append(loaded, t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return loaded, nil
}

func loadTestFile(path string) ([]LoadedTest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var suite TestSuite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, err
	}

	tests := make([]LoadedTest, 0, len(suite.Tests))
	for _, tc := range suite.Tests {
		tests = append(tests, LoadedTest{Suite: suite, Test: tc})
	}
	return tests, nil
}
