package parser

import (
	"strconv"
	"strings"
)

// Unparse re-emits a parsed Program as SOC source text. Re-parsing the
// result must produce an AST equal in meaning to the original
// (spec.md §8, "round-trip"); exact whitespace and comments are not
// preserved.
func Unparse(prog *Program) string {
	var b strings.Builder
	for i, stmt := range prog.Stmts {
		if i > 0 {
			b.WriteString("\n")
		}
		unparseStmt(&b, stmt)
	}
	return b.String()
}

func unparseStmt(b *strings.Builder, s Stmt) {
	switch n := s.(type) {
	case *LetStmt:
		b.WriteString("let ")
		if n.Rec {
			b.WriteString("rec ")
		} else if n.Mutable {
			b.WriteString("mut ")
		}
		b.WriteString(n.Name)
		b.WriteString(" = ")
		unparseExpr(b, n.Value)
	case *ImportStmt:
		b.WriteString("import { ")
		for i, item := range n.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(item.Name)
			if item.Alias != "" {
				b.WriteString(" as ")
				b.WriteString(item.Alias)
			}
		}
		b.WriteString(" } from ")
		b.WriteString(quote(n.Module))
	case *ExportStmt:
		b.WriteString("export { ")
		b.WriteString(strings.Join(n.Names, ", "))
		b.WriteString(" }")
	case *ReturnStmt:
		b.WriteString("return ")
		unparseExpr(b, n.Value)
	case *ExprStmt:
		unparseExpr(b, n.Expr)
	}
}

func unparseExpr(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *LiteralExpr:
		b.WriteString(n.Value.String())
	case *ImaginaryExpr:
		b.WriteString(formatFloat(n.Value))
		b.WriteString("i")
	case *IdentifierExpr:
		b.WriteString(n.Name)
	case *SelfExpr:
		b.WriteString("self")
	case *RecExpr:
		b.WriteString("rec")
	case *UnaryExpr:
		b.WriteString(n.Op.symbol())
		unparseExpr(b, n.Operand)
	case *BinaryExpr:
		unparseExpr(b, n.Left)
		b.WriteString(" ")
		b.WriteString(n.Op.symbol())
		b.WriteString(" ")
		unparseExpr(b, n.Right)
	case *PipeExpr:
		unparseExpr(b, n.Init)
		for _, stage := range n.Stages {
			b.WriteString(" |> ")
			unparseExpr(b, stage)
		}
	case *EdgeExpr:
		b.WriteString(n.From)
		if n.Directed {
			b.WriteString(" -> ")
		} else {
			b.WriteString(" -- ")
		}
		b.WriteString(n.To)
		if n.Meta != nil {
			b.WriteString(": ")
			unparseExpr(b, n.Meta)
		}
	case *ArrayExpr:
		b.WriteString("[")
		for i, el := range n.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			if el.Spread {
				b.WriteString("...")
			}
			unparseExpr(b, el.Value)
		}
		b.WriteString("]")
	case *RecordExpr:
		b.WriteString("{")
		for i, f := range n.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			if f.Spread {
				b.WriteString("...")
				unparseExpr(b, f.Value)
				continue
			}
			b.WriteString(f.Key)
			b.WriteString(": ")
			unparseExpr(b, f.Value)
		}
		b.WriteString("}")
	case *LambdaExpr:
		if len(n.Params) == 1 {
			b.WriteString(n.Params[0])
		} else {
			b.WriteString("(")
			b.WriteString(strings.Join(n.Params, ", "))
			b.WriteString(")")
		}
		b.WriteString(" => ")
		unparseExpr(b, n.Body)
	case *DoBlock:
		b.WriteString("do\n")
		for _, stmt := range n.Stmts {
			b.WriteString("  ")
			unparseStmt(b, stmt)
			b.WriteString("\n")
		}
		b.WriteString("end")
	case *IndexMarkerExpr:
		if n.Last {
			b.WriteString("$")
		} else {
			b.WriteString("^")
		}
	case *RangeExpr:
		unparseExpr(b, n.Start)
		b.WriteString("..")
		unparseExpr(b, n.End)
	case *IndexExpr:
		unparseExpr(b, n.Target)
		b.WriteString("[")
		unparseExpr(b, n.Index)
		b.WriteString("]")
	case *FieldExpr:
		unparseExpr(b, n.Target)
		b.WriteString(".")
		b.WriteString(n.Field)
	case *CallExpr:
		unparseExpr(b, n.Callee)
		b.WriteString("(")
		for i, arg := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			unparseExpr(b, arg)
		}
		b.WriteString(")")
	case *AssignExpr:
		unparseExpr(b, n.Target)
		b.WriteString(" = ")
		unparseExpr(b, n.Value)
	case *ParenExpr:
		b.WriteString("(")
		unparseExpr(b, n.Inner)
		b.WriteString(")")
	}
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString("\\\"")
		case '\\':
			b.WriteString("\\\\")
		case '\n':
			b.WriteString("\\n")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (t TokenType) symbol() string {
	switch t {
	case TOKEN_PLUS:
		return "+"
	case TOKEN_MINUS:
		return "-"
	case TOKEN_STAR:
		return "*"
	case TOKEN_SLASH:
		return "/"
	case TOKEN_PERCENT:
		return "%"
	case TOKEN_CARET:
		return "^"
	case TOKEN_EQ:
		return "=="
	case TOKEN_NE:
		return "!="
	case TOKEN_LT:
		return "<"
	case TOKEN_GT:
		return ">"
	case TOKEN_LE:
		return "<="
	case TOKEN_GE:
		return ">="
	case TOKEN_AND:
		return "&&"
	case TOKEN_OR:
		return "||"
	case TOKEN_NOT:
		return "!"
	default:
		return "?"
	}
}
