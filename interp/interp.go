// Package interp is SOC's host-facing API (spec.md §6): eval_source,
// eval_expression, reset, and get, each wrapping parser/evaluator
// errors into a single *types.EvalError boundary so an embedding host
// never has to know about parser.SyntaxError vs. types.Result
// internally.
package interp

import (
	"github.com/achronyme/soc/eval"
	"github.com/achronyme/soc/parser"
	"github.com/achronyme/soc/trace"
	"github.com/achronyme/soc/types"
	"github.com/google/uuid"
)

// Interpreter is one isolated SOC evaluation session (spec.md §5
// "spawn fresh evaluator instances for isolation"). ID distinguishes
// sessions in host-side logging and tracing.
type Interpreter struct {
	ID  uuid.UUID
	ev  *eval.Evaluator
	ctx *types.TaskContext
}

// New creates an isolated Interpreter with a fresh top-level scope and
// its own tick/recursion budget.
func New() *Interpreter {
	return &Interpreter{
		ID:  uuid.New(),
		ev:  eval.NewEvaluator(),
		ctx: types.NewTaskContext(),
	}
}

// EnableTrace wires a filtering tracer into the underlying evaluator
// (called by cmd/soc when soc.yaml sets trace).
func (i *Interpreter) EnableTrace(filters []string) {
	i.ev.SetTracer(trace.New(true, filters))
}

// EvalSource parses and evaluates a complete program, accumulating
// bindings into the session's persistent top-level scope (spec.md §6
// eval_source: "parses and evaluates a full program; bindings persist
// across calls within the same session").
func (i *Interpreter) EvalSource(source string) (types.Value, *types.EvalError) {
	prog, err := parser.Parse(source)
	if err != nil {
		return nil, syntaxErrorOf(err)
	}
	i.ctx = types.NewTaskContext()
	res := i.ev.EvalProgram(prog, i.ctx)
	return resultOf(res)
}

// EvalExpression parses and evaluates a single expression against the
// session's current scope; new bindings are not persisted, though an
// assignment to an existing mut binding still takes effect (spec.md §6
// eval_expression: "a single expression, evaluated against the
// current scope without persisting new bindings").
func (i *Interpreter) EvalExpression(source string) (types.Value, *types.EvalError) {
	expr, err := parser.ParseExpression(source)
	if err != nil {
		return nil, syntaxErrorOf(err)
	}
	i.ctx = types.NewTaskContext()
	scratch := i.ev.TopEnv().PushScope()
	res := i.ev.Eval(expr, scratch, i.ctx)
	return resultOf(res)
}

// Reset discards all session bindings and import aliases, keeping the
// prelude and named modules untouched (spec.md §6 reset()).
func (i *Interpreter) Reset() {
	i.ev.Reset()
	i.ctx = types.NewTaskContext()
}

// Get looks up a top-level binding by name for host introspection
// (spec.md §6 get(name)).
func (i *Interpreter) Get(name string) (types.Value, bool) {
	return i.ev.TopEnv().Lookup(name)
}

func resultOf(res types.Result) (types.Value, *types.EvalError) {
	if res.IsError() {
		return nil, types.NewEvalError(res.Err, res.ErrInfo)
	}
	return res.Val, nil
}

func syntaxErrorOf(err error) *types.EvalError {
	if se, ok := err.(*parser.SyntaxError); ok {
		return types.NewSyntaxError(se.Message, types.Span{
			Line: se.Pos.Line, Column: se.Pos.Column, Offset: se.Pos.Offset,
		})
	}
	return types.NewEvalError(types.E_SYNTAX, err.Error())
}
