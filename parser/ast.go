package parser

import "github.com/achronyme/soc/types"

// Node is any AST node; every node can report its source position for
// error messages.
type Node interface {
	Position() Position
}

// Expr is any expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any statement node.
type Stmt interface {
	Node
	stmtNode()
}

type baseNode struct {
	Pos Position
}

func (b baseNode) Position() Position { return b.Pos }

// ---- Expressions ----

// LiteralExpr wraps a scalar value already known at parse time: a
// Number, Boolean, or String.
type LiteralExpr struct {
	baseNode
	Value types.Value
}

func (*LiteralExpr) exprNode() {}

// ImaginaryExpr holds a pure-imaginary numeric literal, e.g. `3i`. It
// may still be combined with a real part via `+` at eval time.
type ImaginaryExpr struct {
	baseNode
	Value float64
}

func (*ImaginaryExpr) exprNode() {}

// IdentifierExpr references a bound name.
type IdentifierExpr struct {
	baseNode
	Name string
}

func (*IdentifierExpr) exprNode() {}

// SelfExpr is the bare `self` keyword, resolved dynamically at the
// call site of a record-method call (spec.md §4.6).
type SelfExpr struct {
	baseNode
}

func (*SelfExpr) exprNode() {}

// RecExpr is the bare `rec` keyword: inside a lambda body it refers to
// the Function value of the innermost enclosing lambda, regardless of
// what name (if any) it was bound to.
type RecExpr struct {
	baseNode
}

func (*RecExpr) exprNode() {}

// UnaryExpr is `-x` or `!x`.
type UnaryExpr struct {
	baseNode
	Op      TokenType
	Operand Expr
}

func (*UnaryExpr) exprNode() {}

// BinaryExpr covers arithmetic, comparison, and logical (&&, ||)
// operators; logical operators short-circuit in the evaluator.
type BinaryExpr struct {
	baseNode
	Op    TokenType
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// PipeExpr is `init |> stage1 |> stage2 ...`; each stage is called
// with the accumulated value as its sole argument, left to right.
type PipeExpr struct {
	baseNode
	Init   Expr
	Stages []Expr
}

func (*PipeExpr) exprNode() {}

// EdgeExpr is `from -> to` or `from -- to`, optionally `: meta`. From
// and To are the bare identifier text, never evaluated as variable
// references (spec.md §4.6).
type EdgeExpr struct {
	baseNode
	From     string
	To       string
	Directed bool
	Meta     Expr // nil if no metadata given
}

func (*EdgeExpr) exprNode() {}

// ArrayElem is one element of an ArrayExpr: either a plain expression
// or a spread (`...expr`).
type ArrayElem struct {
	Value  Expr
	Spread bool
}

// ArrayExpr is a vector or matrix literal: `[e, ...]`. Nested
// ArrayExpr elements produce a matrix.
type ArrayExpr struct {
	baseNode
	Elements []ArrayElem
}

func (*ArrayExpr) exprNode() {}

// RecordField is one field of a RecordExpr: either `key: expr` or a
// spread (`...expr`, Key empty).
type RecordField struct {
	Key    string
	Value  Expr
	Spread bool
}

// RecordExpr is a record literal: `{key: expr, ..., ...spread}`.
type RecordExpr struct {
	baseNode
	Fields []RecordField
}

func (*RecordExpr) exprNode() {}

// LambdaExpr is `p => body` or `(p1, p2) => body`.
type LambdaExpr struct {
	baseNode
	Params []string
	Body   Expr
}

func (*LambdaExpr) exprNode() {}

// DoBlock is `do stmt... end`, evaluating to the value of its last
// statement unless an explicit `return` fires first.
type DoBlock struct {
	baseNode
	Stmts []Stmt
}

func (*DoBlock) exprNode() {}

// IndexMarkerExpr is the `^` (first) or `$` (last) index shorthand.
type IndexMarkerExpr struct {
	baseNode
	Last bool // false = ^ (first), true = $ (last)
}

func (*IndexMarkerExpr) exprNode() {}

// RangeExpr is `start..end` used as an index/slice argument.
type RangeExpr struct {
	baseNode
	Start Expr
	End   Expr
}

func (*RangeExpr) exprNode() {}

// IndexExpr is `target[index]`.
type IndexExpr struct {
	baseNode
	Target Expr
	Index  Expr
}

func (*IndexExpr) exprNode() {}

// FieldExpr is `target.field`.
type FieldExpr struct {
	baseNode
	Target Expr
	Field  string
}

func (*FieldExpr) exprNode() {}

// CallExpr is `callee(args...)`. When Callee is a FieldExpr, the
// evaluator binds `self` to the field's Target for the duration of the
// call (spec.md §4.6).
type CallExpr struct {
	baseNode
	Callee Expr
	Args   []Expr
}

func (*CallExpr) exprNode() {}

// AssignExpr is `target = value`, where target is an identifier
// previously bound with `mut`.
type AssignExpr struct {
	baseNode
	Target Expr
	Value  Expr
}

func (*AssignExpr) exprNode() {}

// ParenExpr preserves an explicit parenthesization for round-trip
// unparsing.
type ParenExpr struct {
	baseNode
	Inner Expr
}

func (*ParenExpr) exprNode() {}

// ---- Statements ----

// LetStmt is `let name = value`, `let mut name = value`, or
// `let rec name = value`.
type LetStmt struct {
	baseNode
	Name    string
	Mutable bool
	Rec     bool
	Value   Expr
}

func (*LetStmt) stmtNode() {}

// ImportItem is one imported name, optionally aliased.
type ImportItem struct {
	Name  string
	Alias string // empty if no `as` clause
}

// ImportStmt is `import { a, b as c } from "module"`.
type ImportStmt struct {
	baseNode
	Items  []ImportItem
	Module string
}

func (*ImportStmt) stmtNode() {}

// ExportStmt is `export { a, b }`.
type ExportStmt struct {
	baseNode
	Names []string
}

func (*ExportStmt) stmtNode() {}

// ReturnStmt is `return expr`, valid only inside a DoBlock.
type ReturnStmt struct {
	baseNode
	Value Expr
}

func (*ReturnStmt) stmtNode() {}

// ExprStmt is a bare expression used as a statement; its value becomes
// the enclosing block's value if it is the last statement.
type ExprStmt struct {
	baseNode
	Expr Expr
}

func (*ExprStmt) stmtNode() {}

// Program is the root node: a sequence of top-level statements.
type Program struct {
	baseNode
	Stmts []Stmt
}

func (*Program) stmtNode() {}
