package conformance

// TestSuite is a complete YAML fixture file: a named group of related
// cases, mirroring how spec.md §8's scenarios cluster by language
// feature (closures, recursion, broadcasting, modules, ...).
type TestSuite struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Tests       []TestCase `yaml:"tests"`
}

// TestCase is a single scenario within a suite. Exactly one of Code
// (a bare expression, run through EvalExpression) or Statement (a full
// program, run through EvalSource) should be set.
type TestCase struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Skip        string      `yaml:"skip,omitempty"`
	Code        string      `yaml:"code,omitempty"`
	Statement   string      `yaml:"statement,omitempty"`
	Expect      Expectation `yaml:"expect"`
}

// Expectation describes the one thing a case checks: an exact value,
// an error code name (types.ErrorCode.String(), e.g. "TypeError"), or
// a runtime type name (types.TypeCode.String(), e.g. "tensor").
type Expectation struct {
	Value interface{} `yaml:"value,omitempty"`
	Error string      `yaml:"error,omitempty"`
	Type  string      `yaml:"type,omitempty"`
}

// IsSkipped reports whether the case carries a non-empty skip reason.
func (tc *TestCase) IsSkipped() (bool, string) {
	if tc.Skip == "" {
		return false, ""
	}
	return true, tc.Skip
}
