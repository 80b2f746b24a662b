package eval

import (
	"strings"

	"github.com/achronyme/soc/env"
	"github.com/achronyme/soc/parser"
	"github.com/achronyme/soc/types"
)

// Function is SOC's closure value: a parameter list, a body
// expression, and the lexical Environment captured at creation time.
// It lives in the eval package rather than types because it needs
// parser.Expr (the body) and env.Environment (the capture), and types
// must not import either without creating an import cycle.
type Function struct {
	Params  []string
	Body    parser.Expr
	Closure *env.Environment
	Name    string // display name for String(); the evaluator never sets it, so closures show as lambda@<fingerprint>
}

func NewFunction(params []string, body parser.Expr, closure *env.Environment) *Function {
	return &Function{Params: params, Body: body, Closure: closure}
}

func (f *Function) Type() types.TypeCode { return types.TYPE_FUNCTION }

func (f *Function) String() string {
	name := f.Name
	if name == "" {
		name = "lambda@" + fingerprint(f)
	}
	return "<function " + name + "/" + strings.Join(f.Params, ",") + ">"
}

func (f *Function) Equal(o types.Value) bool {
	other, ok := o.(*Function)
	return ok && f == other
}

func (f *Function) Truthy() bool { return true }
