// Package parser implements a hand-written recursive-descent statement
// parser plus a Pratt expression parser over the lexer's token stream
// (spec §4.1), producing the flat ast.Statement sequence the compiler
// assembles into a Blueprint tree.
package parser

import "fmt"

// Error is a syntax error with source position (spec §7).
type Error struct {
	Line, Col int
	Msg       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}
