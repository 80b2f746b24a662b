package conformance

import "testing"

// TestConformance runs every YAML fixture in testdata/ as a grouped
// subtest per file, per case — spec.md §8's scenario list plus the
// universal invariants it calls out.
func TestConformance(t *testing.T) {
	tests, err := LoadAllTests()
	if err != nil {
		t.Fatalf("failed to load fixtures: %v", err)
	}
	if len(tests) == 0 {
		t.Fatal("no conformance fixtures loaded")
	}

	runner := NewRunner()
	results := runner.RunAll(tests)
	stats := ComputeStats(results)

	byFile := make(map[string][]TestResult)
	for _, res := range results {
		byFile[res.Test.File] = append(byFile[res.Test.File], res)
	}

	for file, fileResults := range byFile {
		t.Run(file, func(t *testing.T) {
			for _, res := range fileResults {
				res := res
				t.Run(res.Test.Test.Name, func(t *testing.T) {
					switch {
					case res.Skipped:
						t.Skipf("skipped: %s", res.SkipReason)
					case !res.Passed:
						if res.Error != nil {
							t.Errorf("%v", res.Error)
						} else {
							t.Error("test failed")
						}
					}
				})
			}
		})
	}

	t.Logf("conformance summary: %s", FormatStats(stats))
}

func TestLoadAllTests(t *testing.T) {
	tests, err := LoadAllTests()
	if err != nil {
		t.Fatalf("failed to load fixtures: %v", err)
	}
	if len(tests) == 0 {
		t.Fatal("expected at least one conformance fixture")
	}
	for _, lt := range tests {
		if lt.Test.Name == "" {
			t.Errorf("test in %s has no name", lt.File)
		}
	}
}
