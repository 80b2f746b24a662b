package parser

import "testing"

func mustParseExpr(t *testing.T, input string) Expr {
	t.Helper()
	p := NewParser(input)
	expr, err := p.parseExpr()
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	return expr
}

func TestParsePrecedenceLadder(t *testing.T) {
	tests := []struct {
		input string
		check func(t *testing.T, e Expr)
	}{
		{"1 + 2 * 3", func(t *testing.T, e Expr) {
			bin, ok := e.(*BinaryExpr)
			if !ok || bin.Op != TOKEN_PLUS {
				t.Fatalf("expected top-level +, got %#v", e)
			}
			if _, ok := bin.Right.(*BinaryExpr); !ok {
				t.Fatalf("expected * nested on the right, got %#v", bin.Right)
			}
		}},
		{"2 ^ 3 ^ 2", func(t *testing.T, e Expr) {
			bin, ok := e.(*BinaryExpr)
			if !ok || bin.Op != TOKEN_CARET {
				t.Fatalf("expected ^, got %#v", e)
			}
			if _, ok := bin.Right.(*BinaryExpr); !ok {
				t.Fatal("^ must be right-associative")
			}
		}},
		{"-2 ^ 2", func(t *testing.T, e Expr) {
			u, ok := e.(*UnaryExpr)
			if !ok || u.Op != TOKEN_MINUS {
				t.Fatalf("expected unary -, got %#v", e)
			}
			if _, ok := u.Operand.(*BinaryExpr); !ok {
				t.Fatal("unary minus must bind looser than ^")
			}
		}},
		{"a || b && c", func(t *testing.T, e Expr) {
			bin, ok := e.(*BinaryExpr)
			if !ok || bin.Op != TOKEN_OR {
				t.Fatalf("expected top-level ||, got %#v", e)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tt.check(t, mustParseExpr(t, tt.input))
		})
	}
}

func TestParsePipe(t *testing.T) {
	e := mustParseExpr(t, "x |> f |> g")
	pipe, ok := e.(*PipeExpr)
	if !ok {
		t.Fatalf("expected PipeExpr, got %#v", e)
	}
	if len(pipe.Stages) != 2 {
		t.Fatalf("expected 2 pipe stages, got %d", len(pipe.Stages))
	}
}

func TestParseEdgeLiteral(t *testing.T) {
	e := mustParseExpr(t, `a -> b: {weight: 5}`)
	edge, ok := e.(*EdgeExpr)
	if !ok {
		t.Fatalf("expected EdgeExpr, got %#v", e)
	}
	if edge.From != "a" || edge.To != "b" || !edge.Directed {
		t.Fatalf("unexpected edge endpoints: %+v", edge)
	}
	if edge.Meta == nil {
		t.Fatal("expected edge metadata")
	}
}

func TestParseUndirectedEdge(t *testing.T) {
	e := mustParseExpr(t, "a -- b")
	edge, ok := e.(*EdgeExpr)
	if !ok || edge.Directed {
		t.Fatalf("expected undirected EdgeExpr, got %#v", e)
	}
}

func TestParseLambdaSingleParam(t *testing.T) {
	e := mustParseExpr(t, "x => x + 1")
	lam, ok := e.(*LambdaExpr)
	if !ok || len(lam.Params) != 1 || lam.Params[0] != "x" {
		t.Fatalf("expected single-param lambda, got %#v", e)
	}
}

func TestParseLambdaMultiParam(t *testing.T) {
	e := mustParseExpr(t, "(x, y) => x + y")
	lam, ok := e.(*LambdaExpr)
	if !ok || len(lam.Params) != 2 {
		t.Fatalf("expected 2-param lambda, got %#v", e)
	}
}

func TestParenExprIsNotMistakenForLambda(t *testing.T) {
	e := mustParseExpr(t, "(1 + 2) * 3")
	bin, ok := e.(*BinaryExpr)
	if !ok || bin.Op != TOKEN_STAR {
		t.Fatalf("expected top-level *, got %#v", e)
	}
	if _, ok := bin.Left.(*ParenExpr); !ok {
		t.Fatalf("expected ParenExpr on the left, got %#v", bin.Left)
	}
}

func TestParseArrayLiteralWithSpread(t *testing.T) {
	e := mustParseExpr(t, "[1, ...xs, 3]")
	arr, ok := e.(*ArrayExpr)
	if !ok || len(arr.Elements) != 3 {
		t.Fatalf("expected 3-element array, got %#v", e)
	}
	if !arr.Elements[1].Spread {
		t.Fatal("expected middle element to be a spread")
	}
}

func TestParseMatrixLiteral(t *testing.T) {
	e := mustParseExpr(t, "[[1, 2], [3, 4]]")
	arr, ok := e.(*ArrayExpr)
	if !ok || len(arr.Elements) != 2 {
		t.Fatalf("expected 2 rows, got %#v", e)
	}
	if _, ok := arr.Elements[0].Value.(*ArrayExpr); !ok {
		t.Fatal("expected nested ArrayExpr rows")
	}
}

func TestParseRecordLiteralWithSpread(t *testing.T) {
	e := mustParseExpr(t, `{a: 1, ...base, b: 2}`)
	rec, ok := e.(*RecordExpr)
	if !ok || len(rec.Fields) != 3 {
		t.Fatalf("expected 3 fields, got %#v", e)
	}
	if !rec.Fields[1].Spread {
		t.Fatal("expected middle field to be a spread")
	}
}

func TestParseIndexMarkersAndRange(t *testing.T) {
	e := mustParseExpr(t, "xs[^]")
	idx, ok := e.(*IndexExpr)
	if !ok {
		t.Fatalf("expected IndexExpr, got %#v", e)
	}
	if _, ok := idx.Index.(*IndexMarkerExpr); !ok {
		t.Fatalf("expected ^ marker, got %#v", idx.Index)
	}

	e = mustParseExpr(t, "xs[1..3]")
	idx, ok = e.(*IndexExpr)
	if !ok {
		t.Fatalf("expected IndexExpr, got %#v", e)
	}
	if _, ok := idx.Index.(*RangeExpr); !ok {
		t.Fatalf("expected range index, got %#v", idx.Index)
	}
}

func TestParseFieldAndCallChain(t *testing.T) {
	e := mustParseExpr(t, "r.method(1, 2).field")
	field, ok := e.(*FieldExpr)
	if !ok || field.Field != "field" {
		t.Fatalf("expected trailing .field, got %#v", e)
	}
	call, ok := field.Target.(*CallExpr)
	if !ok || len(call.Args) != 2 {
		t.Fatalf("expected call with 2 args, got %#v", field.Target)
	}
	if _, ok := call.Callee.(*FieldExpr); !ok {
		t.Fatalf("expected method callee to be a field access, got %#v", call.Callee)
	}
}

func TestParseAssignment(t *testing.T) {
	e := mustParseExpr(t, "x = x + 1")
	assign, ok := e.(*AssignExpr)
	if !ok {
		t.Fatalf("expected AssignExpr, got %#v", e)
	}
	if _, ok := assign.Target.(*IdentifierExpr); !ok {
		t.Fatalf("expected identifier target, got %#v", assign.Target)
	}
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	p := NewParser("1 + 1 = 2")
	if _, err := p.parseExpr(); err == nil {
		t.Fatal("expected a syntax error for an invalid assignment target")
	}
}

func TestParseDoBlockWithReturn(t *testing.T) {
	e := mustParseExpr(t, "do\n  let x = 1\n  return x + 1\nend")
	block, ok := e.(*DoBlock)
	if !ok || len(block.Stmts) != 2 {
		t.Fatalf("expected 2 statements in do block, got %#v", e)
	}
	if _, ok := block.Stmts[1].(*ReturnStmt); !ok {
		t.Fatalf("expected trailing return statement, got %#v", block.Stmts[1])
	}
}

func TestParseImportAndExport(t *testing.T) {
	prog, err := Parse(`import { mean, std as stddev } from "stats"
export { run }`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(prog.Stmts) != 2 {
		t.Fatalf("expected 2 top-level statements, got %d", len(prog.Stmts))
	}
	imp, ok := prog.Stmts[0].(*ImportStmt)
	if !ok || imp.Module != "stats" || len(imp.Items) != 2 || imp.Items[1].Alias != "stddev" {
		t.Fatalf("unexpected import statement: %#v", imp)
	}
	exp, ok := prog.Stmts[1].(*ExportStmt)
	if !ok || len(exp.Names) != 1 || exp.Names[0] != "run" {
		t.Fatalf("unexpected export statement: %#v", exp)
	}
}

func TestParseLetRecMutualGroup(t *testing.T) {
	prog, err := Parse("let rec isEven = n => n\nlet rec isOdd = n => n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, s := range prog.Stmts {
		let, ok := s.(*LetStmt)
		if !ok || !let.Rec {
			t.Fatalf("expected a let-rec statement, got %#v", s)
		}
	}
}

func TestUnparseRoundTrip(t *testing.T) {
	inputs := []string{
		"let x = 1 + 2 * 3",
		"x => x + 1",
		"a -> b",
		"[1, 2, 3]",
	}
	for _, in := range inputs {
		prog, err := Parse(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		out := Unparse(prog)
		reparsed, err := Parse(out)
		if err != nil {
			t.Fatalf("reparse unparsed %q (from %q): %v", out, in, err)
		}
		if len(reparsed.Stmts) != len(prog.Stmts) {
			t.Fatalf("round-trip statement count mismatch for %q: got %q", in, out)
		}
	}
}
