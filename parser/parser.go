package parser

import (
	"strconv"

	"github.com/achronyme/soc/types"
)

// Parser parses SOC source into an AST, using a two-token lookahead
// (current, peek) over the Lexer.
type Parser struct {
	lexer   *Lexer
	current Token
	peek    Token
}

// NewParser creates a Parser positioned at the first token of input.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.current = p.peek
	p.peek = p.lexer.NextToken()
}

// checkpoint captures enough parser state to backtrack a speculative
// parse (used to disambiguate a parenthesized lambda param list from a
// parenthesized expression).
type checkpoint struct {
	lexer   Lexer
	current Token
	peek    Token
}

func (p *Parser) save() checkpoint {
	return checkpoint{lexer: *p.lexer, current: p.current, peek: p.peek}
}

func (p *Parser) restore(c checkpoint) {
	lexerCopy := c.lexer
	p.lexer = &lexerCopy
	p.current = c.current
	p.peek = c.peek
}

// skipNewlines consumes statement-separator tokens so expression
// parsing can freely continue across line breaks inside brackets.
func (p *Parser) skipNewlines() {
	for p.current.Type == TOKEN_NEWLINE || p.current.Type == TOKEN_SEMICOLON {
		p.nextToken()
	}
}

func (p *Parser) expect(tt TokenType) (Token, error) {
	if p.current.Type != tt {
		return Token{}, newSyntaxError(p.current.Position, "expected %s, got %s %q", tt, p.current.Type, p.current.Value)
	}
	tok := p.current
	p.nextToken()
	return tok, nil
}

// Parse parses a complete program.
func Parse(input string) (*Program, error) {
	p := NewParser(input)
	return p.ParseProgram()
}

// ParseExpression parses a single expression, for the host API's
// eval_expression (spec.md §6): the whole input must be one
// expression, optionally surrounded by blank lines.
func ParseExpression(input string) (Expr, error) {
	p := NewParser(input)
	p.skipNewlines()
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	if p.current.Type != TOKEN_EOF {
		return nil, newSyntaxError(p.current.Position, "unexpected trailing input after expression")
	}
	return expr, nil
}

// ParseProgram parses the top level: a sequence of statements
// separated by newlines or semicolons.
func (p *Parser) ParseProgram() (*Program, error) {
	prog := &Program{baseNode: baseNode{Pos: p.current.Position}}
	p.skipNewlines()
	for p.current.Type != TOKEN_EOF {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, stmt)
		p.skipNewlines()
	}
	return prog, nil
}

// ---- expression grammar (lowest to highest precedence) ----
//
//   expr        -> assign
//   assign      -> pipe ( "=" assign )?
//   pipe        -> logical_or ( "|>" logical_or )*
//   logical_or  -> logical_and ( "||" logical_and )*
//   logical_and -> comparison ( "&&" comparison )*
//   comparison  -> edge ( ("==" | "!=" | "<" | ">" | "<=" | ">=") edge )*
//   edge        -> additive ( ("->" | "--") IDENTIFIER (":" additive)? )?
//   additive    -> multiplicative ( ("+" | "-") multiplicative )*
//   multiplicative -> unary ( ("*" | "/" | "%") unary )*
//   unary       -> ("-" | "!") unary | power
//   power       -> access ( "^" unary )?
//   access      -> primary ( "(" args ")" | "[" index_args "]" | "." IDENTIFIER )*
//   primary     -> literal | record | array | do-block | lambda
//                | "self" | "rec" | IDENTIFIER | "(" expr ")"

func (p *Parser) parseExpr() (Expr, error) {
	return p.parseAssign()
}

func (p *Parser) parseAssign() (Expr, error) {
	left, err := p.parsePipe()
	if err != nil {
		return nil, err
	}
	if p.current.Type == TOKEN_ASSIGN {
		pos := p.current.Position
		switch left.(type) {
		case *IdentifierExpr, *FieldExpr, *IndexExpr:
		default:
			return nil, newSyntaxError(pos, "invalid assignment target")
		}
		p.nextToken()
		value, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		return &AssignExpr{baseNode: baseNode{Pos: pos}, Target: left, Value: value}, nil
	}
	return left, nil
}

func (p *Parser) parsePipe() (Expr, error) {
	left, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TOKEN_PIPE_OP {
		return left, nil
	}
	pos := p.current.Position
	pipe := &PipeExpr{baseNode: baseNode{Pos: pos}, Init: left}
	for p.current.Type == TOKEN_PIPE_OP {
		p.nextToken()
		stage, err := p.parseLogicalOr()
		if err != nil {
			return nil, err
		}
		pipe.Stages = append(pipe.Stages, stage)
	}
	return pipe, nil
}

func (p *Parser) parseLogicalOr() (Expr, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.current.Type == TOKEN_OR {
		op, pos := p.current.Type, p.current.Position
		p.nextToken()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{baseNode: baseNode{Pos: pos}, Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseLogicalAnd() (Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.current.Type == TOKEN_AND {
		op, pos := p.current.Type, p.current.Position
		p.nextToken()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{baseNode: baseNode{Pos: pos}, Op: op, Left: left, Right: right}
	}
	return left, nil
}

func isComparisonOp(t TokenType) bool {
	switch t {
	case TOKEN_EQ, TOKEN_NE, TOKEN_LT, TOKEN_GT, TOKEN_LE, TOKEN_GE:
		return true
	}
	return false
}

func (p *Parser) parseComparison() (Expr, error) {
	left, err := p.parseEdge()
	if err != nil {
		return nil, err
	}
	for isComparisonOp(p.current.Type) {
		op, pos := p.current.Type, p.current.Position
		p.nextToken()
		right, err := p.parseEdge()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{baseNode: baseNode{Pos: pos}, Op: op, Left: left, Right: right}
	}
	return left, nil
}

// parseEdge recognizes `ident -> ident` / `ident -- ident`, optionally
// `: meta`. Endpoints are bare identifier text, never evaluated as
// variable references (spec.md §4.6), so this only fires when the
// left-hand side parsed as a plain identifier.
func (p *Parser) parseEdge() (Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TOKEN_ARROW && p.current.Type != TOKEN_DASHDASH {
		return left, nil
	}
	ident, ok := left.(*IdentifierExpr)
	if !ok {
		return nil, newSyntaxError(p.current.Position, "edge endpoints must be bare identifiers")
	}
	directed := p.current.Type == TOKEN_ARROW
	pos := p.current.Position
	p.nextToken()
	toTok, err := p.expect(TOKEN_IDENTIFIER)
	if err != nil {
		return nil, err
	}
	edge := &EdgeExpr{baseNode: baseNode{Pos: pos}, From: ident.Name, To: toTok.Value, Directed: directed}
	if p.current.Type == TOKEN_COLON {
		p.nextToken()
		meta, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		edge.Meta = meta
	}
	return edge, nil
}

func (p *Parser) parseAdditive() (Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.current.Type == TOKEN_PLUS || p.current.Type == TOKEN_MINUS {
		op, pos := p.current.Type, p.current.Position
		p.nextToken()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{baseNode: baseNode{Pos: pos}, Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.current.Type == TOKEN_STAR || p.current.Type == TOKEN_SLASH || p.current.Type == TOKEN_PERCENT {
		op, pos := p.current.Type, p.current.Position
		p.nextToken()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{baseNode: baseNode{Pos: pos}, Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Expr, error) {
	if p.current.Type == TOKEN_MINUS || p.current.Type == TOKEN_NOT {
		op, pos := p.current.Type, p.current.Position
		p.nextToken()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{baseNode: baseNode{Pos: pos}, Op: op, Operand: operand}, nil
	}
	return p.parsePower()
}

// parsePower is right-associative: 2^3^2 == 2^(3^2).
func (p *Parser) parsePower() (Expr, error) {
	left, err := p.parseAccess()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TOKEN_CARET {
		return left, nil
	}
	pos := p.current.Position
	p.nextToken()
	right, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &BinaryExpr{baseNode: baseNode{Pos: pos}, Op: TOKEN_CARET, Left: left, Right: right}, nil
}

func (p *Parser) parseAccess() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.current.Type {
		case TOKEN_LPAREN:
			pos := p.current.Position
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			expr = &CallExpr{baseNode: baseNode{Pos: pos}, Callee: expr, Args: args}
		case TOKEN_LBRACKET:
			pos := p.current.Position
			p.nextToken()
			index, err := p.parseIndexArg()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TOKEN_RBRACKET); err != nil {
				return nil, err
			}
			expr = &IndexExpr{baseNode: baseNode{Pos: pos}, Target: expr, Index: index}
		case TOKEN_DOT:
			pos := p.current.Position
			p.nextToken()
			name, err := p.expect(TOKEN_IDENTIFIER)
			if err != nil {
				return nil, err
			}
			expr = &FieldExpr{baseNode: baseNode{Pos: pos}, Target: expr, Field: name.Value}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArgList() ([]Expr, error) {
	if _, err := p.expect(TOKEN_LPAREN); err != nil {
		return nil, err
	}
	p.skipNewlines()
	var args []Expr
	for p.current.Type != TOKEN_RPAREN {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.skipNewlines()
		if p.current.Type == TOKEN_COMMA {
			p.nextToken()
			p.skipNewlines()
			continue
		}
		break
	}
	if _, err := p.expect(TOKEN_RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

// parseIndexArg parses `^`, `$`, `a..b`, or a plain expression as the
// contents of `[...]`.
func (p *Parser) parseIndexArg() (Expr, error) {
	if p.current.Type == TOKEN_CARET {
		pos := p.current.Position
		p.nextToken()
		return &IndexMarkerExpr{baseNode: baseNode{Pos: pos}, Last: false}, nil
	}
	if p.current.Type == TOKEN_DOLLAR {
		pos := p.current.Position
		p.nextToken()
		return &IndexMarkerExpr{baseNode: baseNode{Pos: pos}, Last: true}, nil
	}
	start, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.current.Type == TOKEN_RANGE {
		pos := p.current.Position
		p.nextToken()
		end, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &RangeExpr{baseNode: baseNode{Pos: pos}, Start: start, End: end}, nil
	}
	return start, nil
}

func (p *Parser) parsePrimary() (Expr, error) {
	pos := p.current.Position
	switch p.current.Type {
	case TOKEN_NUMBER:
		val, err := strconv.ParseFloat(p.current.Value, 64)
		if err != nil {
			return nil, newSyntaxError(pos, "invalid number literal %q", p.current.Value)
		}
		p.nextToken()
		return &LiteralExpr{baseNode: baseNode{Pos: pos}, Value: types.NewNumber(val)}, nil
	case TOKEN_IMAGINARY:
		val, err := strconv.ParseFloat(p.current.Value, 64)
		if err != nil {
			return nil, newSyntaxError(pos, "invalid imaginary literal %q", p.current.Value)
		}
		p.nextToken()
		return &ImaginaryExpr{baseNode: baseNode{Pos: pos}, Value: val}, nil
	case TOKEN_TRUE:
		p.nextToken()
		return &LiteralExpr{baseNode: baseNode{Pos: pos}, Value: types.NewBoolean(true)}, nil
	case TOKEN_FALSE:
		p.nextToken()
		return &LiteralExpr{baseNode: baseNode{Pos: pos}, Value: types.NewBoolean(false)}, nil
	case TOKEN_STRING:
		val := p.current.Literal
		p.nextToken()
		return &LiteralExpr{baseNode: baseNode{Pos: pos}, Value: types.NewString(val)}, nil
	case TOKEN_SELF:
		p.nextToken()
		return &SelfExpr{baseNode: baseNode{Pos: pos}}, nil
	case TOKEN_REC:
		p.nextToken()
		return &RecExpr{baseNode: baseNode{Pos: pos}}, nil
	case TOKEN_DO:
		return p.parseDoBlock()
	case TOKEN_LBRACE:
		return p.parseRecordExpr()
	case TOKEN_LBRACKET:
		return p.parseArrayExpr()
	case TOKEN_IDENTIFIER:
		if p.peek.Type == TOKEN_FATARROW {
			return p.parseLambdaSingleParam()
		}
		name := p.current.Value
		p.nextToken()
		return &IdentifierExpr{baseNode: baseNode{Pos: pos}, Name: name}, nil
	case TOKEN_LPAREN:
		if lambda, ok, err := p.tryParseParenLambda(); err != nil {
			return nil, err
		} else if ok {
			return lambda, nil
		}
		p.nextToken()
		p.skipNewlines()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.skipNewlines()
		if _, err := p.expect(TOKEN_RPAREN); err != nil {
			return nil, err
		}
		return &ParenExpr{baseNode: baseNode{Pos: pos}, Inner: inner}, nil
	default:
		return nil, newSyntaxError(pos, "unexpected token %s %q", p.current.Type, p.current.Value)
	}
}

func (p *Parser) parseLambdaSingleParam() (Expr, error) {
	pos := p.current.Position
	param := p.current.Value
	p.nextToken() // identifier
	p.nextToken() // =>
	p.skipNewlines()
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &LambdaExpr{baseNode: baseNode{Pos: pos}, Params: []string{param}, Body: body}, nil
}

// tryParseParenLambda speculatively parses `(p1, p2, ...) => body`,
// backtracking to treat the parentheses as a normal grouping if no
// `=>` follows the closing paren.
func (p *Parser) tryParseParenLambda() (Expr, bool, error) {
	cp := p.save()
	pos := p.current.Position
	p.nextToken() // consume '('

	var params []string
	ok := true
	for p.current.Type != TOKEN_RPAREN {
		if p.current.Type != TOKEN_IDENTIFIER {
			ok = false
			break
		}
		params = append(params, p.current.Value)
		p.nextToken()
		if p.current.Type == TOKEN_COMMA {
			p.nextToken()
			continue
		}
		break
	}
	if ok && p.current.Type == TOKEN_RPAREN {
		p.nextToken()
		if p.current.Type == TOKEN_FATARROW {
			p.nextToken()
			p.skipNewlines()
			body, err := p.parseExpr()
			if err != nil {
				p.restore(cp)
				return nil, false, nil
			}
			return &LambdaExpr{baseNode: baseNode{Pos: pos}, Params: params, Body: body}, true, nil
		}
	}
	p.restore(cp)
	return nil, false, nil
}
