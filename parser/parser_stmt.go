package parser

// parseStmt dispatches on the current token to the right statement
// production.
func (p *Parser) parseStmt() (Stmt, error) {
	switch p.current.Type {
	case TOKEN_LET:
		return p.parseLetStmt()
	case TOKEN_IMPORT:
		return p.parseImportStmt()
	case TOKEN_EXPORT:
		return p.parseExportStmt()
	case TOKEN_RETURN:
		return p.parseReturnStmt()
	default:
		pos := p.current.Position
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ExprStmt{baseNode: baseNode{Pos: pos}, Expr: expr}, nil
	}
}

// parseLetStmt parses `let name = value`, `let mut name = value`, and
// `let rec name = value`.
func (p *Parser) parseLetStmt() (Stmt, error) {
	pos := p.current.Position
	p.nextToken() // consume 'let'

	mutable, rec := false, false
	switch p.current.Type {
	case TOKEN_MUT:
		mutable = true
		p.nextToken()
	case TOKEN_REC:
		rec = true
		p.nextToken()
	}

	name, err := p.expect(TOKEN_IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TOKEN_ASSIGN); err != nil {
		return nil, err
	}
	p.skipNewlines()
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &LetStmt{baseNode: baseNode{Pos: pos}, Name: name.Value, Mutable: mutable, Rec: rec, Value: value}, nil
}

// parseImportStmt parses `import { a, b as c } from "module"`.
func (p *Parser) parseImportStmt() (Stmt, error) {
	pos := p.current.Position
	p.nextToken() // consume 'import'
	if _, err := p.expect(TOKEN_LBRACE); err != nil {
		return nil, err
	}
	p.skipNewlines()

	var items []ImportItem
	for p.current.Type != TOKEN_RBRACE {
		name, err := p.expect(TOKEN_IDENTIFIER)
		if err != nil {
			return nil, err
		}
		item := ImportItem{Name: name.Value}
		if p.current.Type == TOKEN_AS {
			p.nextToken()
			alias, err := p.expect(TOKEN_IDENTIFIER)
			if err != nil {
				return nil, err
			}
			item.Alias = alias.Value
		}
		items = append(items, item)
		p.skipNewlines()
		if p.current.Type == TOKEN_COMMA {
			p.nextToken()
			p.skipNewlines()
			continue
		}
		break
	}
	if _, err := p.expect(TOKEN_RBRACE); err != nil {
		return nil, err
	}
	if _, err := p.expect(TOKEN_FROM); err != nil {
		return nil, err
	}
	modTok, err := p.expect(TOKEN_STRING)
	if err != nil {
		return nil, err
	}
	return &ImportStmt{baseNode: baseNode{Pos: pos}, Items: items, Module: modTok.Literal}, nil
}

// parseExportStmt parses `export { a, b }`.
func (p *Parser) parseExportStmt() (Stmt, error) {
	pos := p.current.Position
	p.nextToken() // consume 'export'
	if _, err := p.expect(TOKEN_LBRACE); err != nil {
		return nil, err
	}
	p.skipNewlines()

	var names []string
	for p.current.Type != TOKEN_RBRACE {
		name, err := p.expect(TOKEN_IDENTIFIER)
		if err != nil {
			return nil, err
		}
		names = append(names, name.Value)
		p.skipNewlines()
		if p.current.Type == TOKEN_COMMA {
			p.nextToken()
			p.skipNewlines()
			continue
		}
		break
	}
	if _, err := p.expect(TOKEN_RBRACE); err != nil {
		return nil, err
	}
	return &ExportStmt{baseNode: baseNode{Pos: pos}, Names: names}, nil
}

// parseReturnStmt parses `return expr`. The parser accepts it wherever
// a statement may appear; the evaluator does not reject it outside a
// do-block either, and a top-level return ends the program with its
// value.
func (p *Parser) parseReturnStmt() (Stmt, error) {
	pos := p.current.Position
	p.nextToken()
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ReturnStmt{baseNode: baseNode{Pos: pos}, Value: value}, nil
}

// parseDoBlock parses `do stmt... end`.
func (p *Parser) parseDoBlock() (Expr, error) {
	pos := p.current.Position
	p.nextToken() // consume 'do'
	p.skipNewlines()

	block := &DoBlock{baseNode: baseNode{Pos: pos}}
	for p.current.Type != TOKEN_END {
		if p.current.Type == TOKEN_EOF {
			return nil, newSyntaxError(p.current.Position, "unterminated do block, expected 'end'")
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
		p.skipNewlines()
	}
	p.nextToken() // consume 'end'
	return block, nil
}
