package eval

import (
	"testing"

	"github.com/achronyme/soc/parser"
	"github.com/achronyme/soc/types"
)

func run(t *testing.T, source string) types.Result {
	t.Helper()
	prog, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	ev := NewEvaluator()
	return ev.EvalProgram(prog, types.NewTaskContext())
}

func mustOk(t *testing.T, res types.Result) types.Value {
	t.Helper()
	if !res.IsNormal() {
		t.Fatalf("expected a normal result, got error %s: %s", res.Err, res.ErrInfo)
	}
	return res.Val
}

func TestScenarioShadowingAndClosure(t *testing.T) {
	val := mustOk(t, run(t, "let x = 10\nlet f = x => x + 1\nf(5)"))
	if !val.Equal(types.NewNumber(6)) {
		t.Fatalf("expected 6, got %v", val)
	}
}

func TestScenarioDirectRecursion(t *testing.T) {
	val := mustOk(t, run(t, "let factorial = n => if(n <= 1, 1, n * factorial(n - 1))\nfactorial(5)"))
	if !val.Equal(types.NewNumber(120)) {
		t.Fatalf("expected 120, got %v", val)
	}
}

func TestScenarioMutualRecursionWithRec(t *testing.T) {
	src := `
let rec isEven = n => if(n == 0, true, isOdd(n - 1))
let rec isOdd  = n => if(n == 0, false, isEven(n - 1))
isEven(10)
`
	val := mustOk(t, run(t, src))
	if !val.Equal(types.NewBoolean(true)) {
		t.Fatalf("expected true, got %v", val)
	}
}

func TestScenarioTailCallDepth(t *testing.T) {
	src := "let loop = (n, acc) => if(n == 0, acc, loop(n - 1, acc + 1))\nloop(100000, 0)"
	val := mustOk(t, run(t, src))
	if !val.Equal(types.NewNumber(100000)) {
		t.Fatalf("expected 100000, got %v", val)
	}
}

func TestScenarioBroadcasting(t *testing.T) {
	val := mustOk(t, run(t, "[[1,2,3],[4,5,6]] + [10,20,30]"))
	want := mustOk(t, run(t, "[[11,22,33],[14,25,36]]"))
	if !val.Equal(want) {
		t.Fatalf("expected %v, got %v", want, val)
	}
}

func TestScenarioModuleAliasAndPreludePrecedence(t *testing.T) {
	avg := mustOk(t, run(t, "import { mean as avg } from \"stats\"\navg([1,2,3,4])"))
	if !avg.Equal(types.NewNumber(2.5)) {
		t.Fatalf("expected 2.5, got %v", avg)
	}

	// An import alias named "sum" must never shadow the prelude's sum.
	shadowed := mustOk(t, run(t, "import { mean as sum } from \"stats\"\nsum([1,2,3,4])"))
	if !shadowed.Equal(types.NewNumber(10)) {
		t.Fatalf("prelude sum should win over the colliding import alias, got %v", shadowed)
	}
}

func TestScenarioPiecewise(t *testing.T) {
	src := `
let sgn = x => piecewise([x < 0, -1], [x > 0, 1], 0)
[sgn(-3), sgn(0), sgn(7)]
`
	val := mustOk(t, run(t, src))
	want := mustOk(t, run(t, "[-1, 0, 1]"))
	if !val.Equal(want) {
		t.Fatalf("expected %v, got %v", want, val)
	}
}

func TestScenarioNetworkPromotion(t *testing.T) {
	val := mustOk(t, run(t, "let g = { edges: [A -> B, B -> C] }\nnodes(g)"))
	vec, ok := val.(types.Vector)
	if !ok || len(vec.Elements) != 3 {
		t.Fatalf("expected a 3-element collection of node ids, got %v", val)
	}
	seen := map[string]bool{}
	for _, v := range vec.Elements {
		s, ok := v.(types.String)
		if !ok {
			t.Fatalf("expected node ids as strings, got %v", v)
		}
		seen[s.Val] = true
	}
	for _, want := range []string{"A", "B", "C"} {
		if !seen[want] {
			t.Fatalf("missing node id %s in %v", want, val)
		}
	}
}

func TestInvariantClosureImmutability(t *testing.T) {
	src := `
let mut x = 1
let f = () => x
x = 2
f()
`
	val := mustOk(t, run(t, src))
	if !val.Equal(types.NewNumber(2)) {
		t.Fatalf("a captured mut cell must observe later assignment, got %v", val)
	}
}

func TestInvariantEdgeIdentifiersNotEvaluated(t *testing.T) {
	src := `
let A = "X"
let e = A -> B
e.from
`
	val := mustOk(t, run(t, src))
	if !val.Equal(types.NewString("A")) {
		t.Fatalf("edge endpoints are bare identifier text, expected \"A\", got %v", val)
	}
}

func TestInvariantNonTailRecursionWithinMinimumDepth(t *testing.T) {
	src := "let sumTo = n => if(n == 0, 0, n + sumTo(n - 1))\nsumTo(150)"
	val := mustOk(t, run(t, src))
	if !val.Equal(types.NewNumber(11325)) {
		t.Fatalf("expected 11325, got %v", val)
	}
}

func TestArithmeticPromotionAndErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr types.ErrorCode
		want    types.Value
	}{
		{name: "real plus complex promotes", source: "1 + 2i", want: types.NewComplex(1, 2)},
		{name: "matrix times matrix is matmul", source: "[[1,2],[3,4]] * [[5,6],[7,8]]", want: mustOk(t, run(t, "[[19,22],[43,50]]"))},
		{name: "incompatible tensor shapes", source: "[1,2,3] + [1,2]", wantErr: types.E_SHAPE},
		{name: "if requires boolean condition", source: "if(1, \"yes\", \"no\")", wantErr: types.E_TYPE},
		{name: "piecewise with no match or default", source: "piecewise([false, 1], [false, 2])", wantErr: types.E_PIECEWISE},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, tt.source)
			if tt.wantErr != types.E_NONE {
				if !res.IsError() || res.Err != tt.wantErr {
					t.Fatalf("expected error %s, got %v (err=%s)", tt.wantErr, res.Val, res.Err)
				}
				return
			}
			val := mustOk(t, res)
			if !val.Equal(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, val)
			}
		})
	}
}

func TestImportOfUnknownModuleOrMemberIsResolutionError(t *testing.T) {
	res := run(t, "import { anything } from \"nosuchmodule\"\n1")
	if !res.IsError() || res.Err != types.E_RESOLUTION {
		t.Fatalf("expected ResolutionError for unknown module, got %v", res)
	}
	res = run(t, "import { notAMember } from \"stats\"\n1")
	if !res.IsError() || res.Err != types.E_RESOLUTION {
		t.Fatalf("expected ResolutionError for unknown member, got %v", res)
	}
}

func TestAssignToImmutableBindingIsImmutabilityError(t *testing.T) {
	res := run(t, "let x = 1\nx = 2")
	if !res.IsError() || res.Err != types.E_IMMUTABLE {
		t.Fatalf("expected ImmutabilityError, got %v", res)
	}
}

func TestAssignToRecordFieldThroughMutableBinding(t *testing.T) {
	src := `
let mut r = { x: 1, y: 2 }
r.x = 9
r.x
`
	val := mustOk(t, run(t, src))
	if !val.Equal(types.NewNumber(9)) {
		t.Fatalf("expected 9, got %v", val)
	}
}

func TestAssignToRecordFieldThroughImmutableBindingIsImmutabilityError(t *testing.T) {
	res := run(t, "let r = { x: 1 }\nr.x = 2")
	if !res.IsError() || res.Err != types.E_IMMUTABLE {
		t.Fatalf("expected ImmutabilityError, got %v", res)
	}
}

func TestAssignToVectorIndexThroughMutableBinding(t *testing.T) {
	src := `
let mut v = ["a", "b", "c"]
v[1] = "z"
v
`
	val := mustOk(t, run(t, src))
	want := mustOk(t, run(t, "[\"a\", \"z\", \"c\"]"))
	if !val.Equal(want) {
		t.Fatalf("expected %v, got %v", want, val)
	}
}

func TestAssignToTensorIndexThroughMutableBinding(t *testing.T) {
	src := `
let mut v = [1, 2, 3]
v[0] = 9
v
`
	val := mustOk(t, run(t, src))
	want := mustOk(t, run(t, "[9, 2, 3]"))
	if !val.Equal(want) {
		t.Fatalf("expected %v, got %v", want, val)
	}
}

func TestAssignToNestedFieldRebuildsWholeChain(t *testing.T) {
	src := `
let mut outer = { inner: { x: 1 } }
outer.inner.x = 42
outer.inner.x
`
	val := mustOk(t, run(t, src))
	if !val.Equal(types.NewNumber(42)) {
		t.Fatalf("expected 42, got %v", val)
	}
}

func TestGraphNeighborsFollowsDirection(t *testing.T) {
	src := `let g = { edges: [A -> B, A -> C, B -> C] }
neighbors(g, "A")`
	val := mustOk(t, run(t, src))
	want := mustOk(t, run(t, "[\"B\", \"C\"]"))
	if !val.Equal(want) {
		t.Fatalf("expected %v, got %v", want, val)
	}
}

func TestOptimizationSimplexMinimizesQuadratic(t *testing.T) {
	src := `import { simplex } from "optimization"
simplex(x => (x[0] - 3) ^ 2, [0])`
	val := mustOk(t, run(t, src))
	rec, ok := val.(types.Record)
	if !ok {
		t.Fatalf("expected a record with x/value fields, got %v", val)
	}
	result, ok := rec.Get("value")
	if !ok {
		t.Fatalf("expected a value field, got %v", rec)
	}
	n, ok := result.(types.Number)
	if !ok || n.Val > 1e-4 {
		t.Fatalf("expected simplex to drive the quadratic near 0, got %v", result)
	}
}
