package parser

// parseRecordExpr parses a record literal: `{key: expr, ...,
// ...spread}`. A spread field copies another record's fields in
// place; later keys (including spread-introduced ones) override
// earlier ones while keeping the earlier field's position (spec.md
// §4.2, §4.6).
func (p *Parser) parseRecordExpr() (Expr, error) {
	pos := p.current.Position
	p.nextToken() // consume '{'
	p.skipNewlines()

	rec := &RecordExpr{baseNode: baseNode{Pos: pos}}
	for p.current.Type != TOKEN_RBRACE {
		if p.current.Type == TOKEN_SPREAD {
			p.nextToken()
			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			rec.Fields = append(rec.Fields, RecordField{Value: value, Spread: true})
		} else {
			var key string
			switch p.current.Type {
			case TOKEN_IDENTIFIER:
				key = p.current.Value
				p.nextToken()
			case TOKEN_STRING:
				key = p.current.Literal
				p.nextToken()
			default:
				return nil, newSyntaxError(p.current.Position, "expected record field name, got %s %q", p.current.Type, p.current.Value)
			}
			if _, err := p.expect(TOKEN_COLON); err != nil {
				return nil, err
			}
			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			rec.Fields = append(rec.Fields, RecordField{Key: key, Value: value})
		}
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
	return rec, nil
}
