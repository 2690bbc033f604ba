// Package lexer tokenizes the indentation-sensitive template language
// (spec §4.1, §6.3) into a flat token stream with explicit Indent and
// Newline tokens.
package lexer

import "fmt"

// StringId is a stable handle into the Strings intern table.
type StringId int

// Kind enumerates token categories.
type Kind int

const (
	KindEOF Kind = iota
	KindNewline
	KindIndent // carries the raw column count; the parser turns runs of
	// these into synthetic INDENT/DEDENT via an indent-level stack.
	KindIdent
	KindString
	KindNumber
	KindBool
	KindKeyword  // for, in, if, else, let
	KindOperator // see Operator below
	KindComponentRef
	KindSlot
)

// Operator enumerates the lexical operators, mirroring
// anathema-templates/src/token.rs::Operator (see DESIGN.md).
type Operator int

const (
	OpLParen Operator = iota
	OpRParen
	OpLBracket
	OpRBracket
	OpLCurly
	OpRCurly
	OpPlus
	OpMinus
	OpMul
	OpDiv
	OpMod
	OpEqualEqual
	OpNotEqual
	OpLessThan
	OpLessThanOrEqual
	OpGreaterThan
	OpGreaterThanOrEqual
	OpNot
	OpAnd
	OpOr
	OpEither // `??`-equivalent used by Either(a,b): "a ?: b"
	OpDot
	OpComma
	OpColon
	OpAssign
	OpAt   // '@' component reference
	OpDollar
)

var operatorText = map[Operator]string{
	OpLParen: "(", OpRParen: ")", OpLBracket: "[", OpRBracket: "]",
	OpLCurly: "{", OpRCurly: "}", OpPlus: "+", OpMinus: "-", OpMul: "*",
	OpDiv: "/", OpMod: "%", OpEqualEqual: "==", OpNotEqual: "!=",
	OpLessThan: "<", OpLessThanOrEqual: "<=", OpGreaterThan: ">",
	OpGreaterThanOrEqual: ">=", OpNot: "!", OpAnd: "&&", OpOr: "||",
	OpEither: "?:", OpDot: ".", OpComma: ",", OpColon: ":", OpAssign: "=",
	OpAt: "@", OpDollar: "$",
}

func (o Operator) String() string { return operatorText[o] }

// Token is one lexical unit, with its source position for error reporting.
type Token struct {
	Kind     Kind
	Op       Operator
	Str      StringId // valid when Kind is Ident, String, Keyword, ComponentRef, Slot
	Num      float64  // valid when Kind is Number
	Bool     bool     // valid when Kind is Bool
	Indent   int      // valid when Kind is Indent: raw column count
	Line     int
	Col      int
}

func (t Token) String() string {
	switch t.Kind {
	case KindEOF:
		return "<eof>"
	case KindNewline:
		return "<newline>"
	case KindIndent:
		return fmt.Sprintf("<indent %d>", t.Indent)
	case KindOperator:
		return t.Op.String()
	case KindNumber:
		return fmt.Sprintf("%g", t.Num)
	case KindBool:
		return fmt.Sprintf("%t", t.Bool)
	default:
		return fmt.Sprintf("<tok kind=%d str=%d>", t.Kind, t.Str)
	}
}

// Keyword constants recognised by the lexer.
const (
	KwFor   = "for"
	KwIn    = "in"
	KwIf    = "if"
	KwElse  = "else"
	KwLet   = "let"
)

var keywords = map[string]bool{
	KwFor: true, KwIn: true, KwIf: true, KwElse: true, KwLet: true,
}
