package parser

import "testing"

func TestLexerOperators(t *testing.T) {
	tests := []struct {
		input string
		want  TokenType
	}{
		{"->", TOKEN_ARROW},
		{"--", TOKEN_DASHDASH},
		{"|>", TOKEN_PIPE_OP},
		{"=>", TOKEN_FATARROW},
		{"...", TOKEN_SPREAD},
		{"..", TOKEN_RANGE},
		{"==", TOKEN_EQ},
		{"!=", TOKEN_NE},
		{"<=", TOKEN_LE},
		{">=", TOKEN_GE},
		{"&&", TOKEN_AND},
		{"||", TOKEN_OR},
	}
	for _, tt := range tests {
		l := NewLexer(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.want {
			t.Errorf("NextToken(%q) = %s, want %s", tt.input, tok.Type, tt.want)
		}
	}
}

func TestLexerNumberAndImaginary(t *testing.T) {
	l := NewLexer("3.14 6.02e23 5i")
	tok := l.NextToken()
	if tok.Type != TOKEN_NUMBER || tok.Value != "3.14" {
		t.Fatalf("got %v", tok)
	}
	tok = l.NextToken()
	if tok.Type != TOKEN_NUMBER || tok.Value != "6.02e23" {
		t.Fatalf("got %v", tok)
	}
	tok = l.NextToken()
	if tok.Type != TOKEN_IMAGINARY || tok.Value != "5" {
		t.Fatalf("got %v", tok)
	}
}

func TestLexerKeywords(t *testing.T) {
	l := NewLexer("let mut rec import export from as do end return self true false")
	want := []TokenType{
		TOKEN_LET, TOKEN_MUT, TOKEN_REC, TOKEN_IMPORT, TOKEN_EXPORT,
		TOKEN_FROM, TOKEN_AS, TOKEN_DO, TOKEN_END, TOKEN_RETURN,
		TOKEN_SELF, TOKEN_TRUE, TOKEN_FALSE,
	}
	for _, w := range want {
		tok := l.NextToken()
		if tok.Type != w {
			t.Fatalf("got %s, want %s", tok.Type, w)
		}
	}
}

func TestLexerStringEscapes(t *testing.T) {
	l := NewLexer(`"line1\nline2\t\"quoted\""`)
	tok := l.NextToken()
	if tok.Type != TOKEN_STRING {
		t.Fatalf("expected STRING, got %s", tok.Type)
	}
	want := "line1\nline2\t\"quoted\""
	if tok.Literal != want {
		t.Fatalf("got %q, want %q", tok.Literal, want)
	}
}

func TestLexerNewlineIsSignificant(t *testing.T) {
	l := NewLexer("let x = 1\nlet y = 2")
	var types []TokenType
	for {
		tok := l.NextToken()
		if tok.Type == TOKEN_EOF {
			break
		}
		types = append(types, tok.Type)
	}
	found := false
	for _, tt := range types {
		if tt == TOKEN_NEWLINE {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a TOKEN_NEWLINE between statements")
	}
}

func TestLexerComment(t *testing.T) {
	l := NewLexer("1 // a trailing comment\n2")
	tok := l.NextToken()
	if tok.Type != TOKEN_NUMBER || tok.Value != "1" {
		t.Fatalf("got %v", tok)
	}
	tok = l.NextToken()
	if tok.Type != TOKEN_NEWLINE {
		t.Fatalf("expected newline after comment, got %s", tok.Type)
	}
	tok = l.NextToken()
	if tok.Type != TOKEN_NUMBER || tok.Value != "2" {
		t.Fatalf("got %v", tok)
	}
}
