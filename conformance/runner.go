package conformance

import (
	"fmt"
	"strings"

	"github.com/achronyme/soc/interp"
	"github.com/achronyme/soc/tensor"
	"github.com/achronyme/soc/types"
)

// TestResult is the outcome of running a single LoadedTest.
type TestResult struct {
	Test       LoadedTest
	Passed     bool
	Skipped    bool
	SkipReason string
	Error      error
}

// Runner drives conformance cases against fresh Interpreter instances,
// one per case — spec.md §5's "spawn fresh evaluator instances for
// isolation" applies just as much to the conformance suite as to any
// other host.
type Runner struct{}

func NewRunner() *Runner { return &Runner{} }

// Run executes one test case and checks it against its expectation.
func (r *Runner) Run(test LoadedTest) TestResult {
	if skipped, reason := test.Test.IsSkipped(); skipped {
		return TestResult{Test: test, Skipped: true, SkipReason: reason}
	}

	i := interp.New()

	var val types.Value
	var evalErr *types.EvalError

	switch {
	case test.Test.Statement != "":
		val, evalErr = i.EvalSource(test.Test.Statement)
	case test.Test.Code != "":
		val, evalErr = i.EvalExpression(test.Test.Code)
	default:
		return TestResult{Test: test, Skipped: true, SkipReason: "no code/statement"}
	}

	passed, err := r.checkExpectation(test.Test, val, evalErr)
	return TestResult{Test: test, Passed: passed, Error: err}
}

// RunAll executes every loaded test.
func (r *Runner) RunAll(tests []LoadedTest) []TestResult {
	results := make([]TestResult, len(tests))
	for i, t := range tests {
		results[i] = r.Run(t)
	}
	return results
}

// SummaryStats tallies a batch of results.
type SummaryStats struct {
	Total, Passed, Failed, Skipped int
}

func ComputeStats(results []TestResult) SummaryStats {
	stats := SummaryStats{Total: len(results)}
	for _, res := range results {
		switch {
		case res.Skipped:
			stats.Skipped++
		case res.Passed:
			stats.Passed++
		default:
			stats.Failed++
		}
	}
	return stats
}

func FormatStats(s SummaryStats) string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped (%d total)", s.Passed, s.Failed, s.Skipped, s.Total)
}

func (r *Runner) checkExpectation(test TestCase, val types.Value, evalErr *types.EvalError) (bool, error) {
	expect := test.Expect

	if expect.Error != "" {
		if evalErr == nil {
			return false, fmt.Errorf("expected error %s, got value: %v", expect.Error, val)
		}
		got := evalErr.Code.String()
		if !strings.EqualFold(got, expect.Error) {
			return false, fmt.Errorf("expected error %s, got %s (%s)", expect.Error, got, evalErr.Message)
		}
		return true, nil
	}

	if evalErr != nil {
		return false, fmt.Errorf("unexpected error: %s (%s)", evalErr.Code.String(), evalErr.Message)
	}

	if expect.Value != nil {
		expected, err := convertYAMLValue(expect.Value)
		if err != nil {
			return false, fmt.Errorf("failed to convert expected value: %w", err)
		}
		if val == nil {
			return false, fmt.Errorf("expected %v, got nil", expected)
		}
		if !val.Equal(expected) {
			return false, fmt.Errorf("expected %v, got %v", expected, val)
		}
		return true, nil
	}

	if expect.Type != "" {
		if val == nil {
			return false, fmt.Errorf("expected type %s, got nil", expect.Type)
		}
		if !strings.EqualFold(val.Type().String(), expect.Type) {
			return false, fmt.Errorf("expected type %s, got %s", expect.Type, val.Type().String())
		}
		return true, nil
	}

	return false, fmt.Errorf("no expectation specified")
}

// convertYAMLValue converts a decoded YAML scalar/collection into the
// SOC Value it denotes: ints/floats to Number, numeric (possibly
// nested) lists to a TensorVal of the matching rank (matching
// array-literal promotion, spec.md §4.2), everything else to
// Vector/Record/String/Boolean as shaped.
func convertYAMLValue(v interface{}) (types.Value, error) {
	switch val := v.(type) {
	case int:
		return types.NewNumber(float64(val)), nil
	case int64:
		return types.NewNumber(float64(val)), nil
	case float64:
		return types.NewNumber(val), nil
	case string:
		return types.NewString(val), nil
	case bool:
		return types.NewBoolean(val), nil
	case []interface{}:
		return convertYAMLList(val)
	case map[string]interface{}:
		order := make([]string, 0, len(val))
		pairs := make(map[string]types.Value, len(val))
		for k, elem := range val {
			cv, err := convertYAMLValue(elem)
			if err != nil {
				return nil, err
			}
			order = append(order, k)
			pairs[k] = cv
		}
		return types.NewRecord(order, pairs), nil
	case nil:
		return types.NewUnit(), nil
	default:
		return nil, fmt.Errorf("unsupported fixture value type: %T", v)
	}
}

// convertYAMLList converts every element (recursively, so a nested
// YAML sequence becomes a TensorVal row via this same function) and
// then promotes the result the same way buildArrayValue
// (eval/collections.go) promotes an array literal: all-Number
// elements collapse to one rank-1 TensorVal, all-TensorVal elements of
// equal shape collapse to one higher-rank TensorVal, anything else
// stays a heterogeneous Vector.
func convertYAMLList(val []interface{}) (types.Value, error) {
	elems := make([]types.Value, len(val))
	for i, elem := range val {
		cv, err := convertYAMLValue(elem)
		if err != nil {
			return nil, err
		}
		elems[i] = cv
	}
	return promoteArray(elems), nil
}

// promoteArray mirrors eval/collections.go's buildArrayValue promotion
// rule so conformance fixtures decode to exactly the Value shape the
// evaluator itself would produce for the same literal.
func promoteArray(elems []types.Value) types.Value {
	if len(elems) == 0 {
		return types.NewVector(elems)
	}

	allNumber := true
	for _, el := range elems {
		if _, ok := el.(types.Number); !ok {
			allNumber = false
			break
		}
	}
	if allNumber {
		data := make([]float64, len(elems))
		for i, el := range elems {
			data[i] = el.(types.Number).Val
		}
		return types.NewTensor(tensor.New(data, tensor.Shape{len(elems)}))
	}

	allTensor := true
	var rowShape tensor.Shape
	for i, el := range elems {
		tv, ok := el.(types.TensorVal)
		if !ok {
			allTensor = false
			break
		}
		if i == 0 {
			rowShape = tv.T.Shape()
		} else if !tv.T.Shape().Equal(rowShape) {
			allTensor = false
			break
		}
	}
	if allTensor && rowShape != nil {
		var data []float64
		for _, el := range elems {
			data = append(data, el.(types.TensorVal).T.Data()...)
		}
		shape := append(tensor.Shape{len(elems)}, rowShape...)
		return types.NewTensor(tensor.New(data, shape))
	}

	return types.NewVector(elems)
}
