package parser

import "fmt"

// SyntaxError reports a parse failure at a specific position. SOC does
// no error recovery (spec.md §4.2): the parser stops at the first
// SyntaxError and returns it to the caller.
type SyntaxError struct {
	Pos     Position
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

func newSyntaxError(pos Position, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}
