package parser

import (
	"github.com/loomtui/loom/internal/ast"
	"github.com/loomtui/loom/internal/lexer"
)

// bindingPower table, grounded on anathema-compiler/src/parsing/pratt.rs:
// an explicit per-operator (bindingPower, nud, led) table rather than
// cascaded precedence functions (see DESIGN.md, SPEC_FULL supplemented
// feature 3). Precedence low -> high: assignment, conditional (||, &&),
// sum (+,-), product (*,/,%), prefix (!,-), call, selection (.), subscript.
const (
	bpNone = iota
	bpConditional
	bpSum
	bpProduct
	bpEquality
	bpUnary
	bpCall
	bpSelect
)

var infixBp = map[lexer.Operator]int{
	lexer.OpOr: bpConditional, lexer.OpAnd: bpConditional,
	lexer.OpPlus: bpSum, lexer.OpMinus: bpSum,
	lexer.OpMul: bpProduct, lexer.OpDiv: bpProduct, lexer.OpMod: bpProduct,
	lexer.OpEqualEqual: bpEquality, lexer.OpNotEqual: bpEquality,
	lexer.OpLessThan: bpEquality, lexer.OpLessThanOrEqual: bpEquality,
	lexer.OpGreaterThan: bpEquality, lexer.OpGreaterThanOrEqual: bpEquality,
	lexer.OpEither: bpConditional,
	lexer.OpLParen:   bpCall,
	lexer.OpDot:      bpSelect,
	lexer.OpLBracket: bpSelect,
}

// exprParser parses expressions from a single line's token slice.
type exprParser struct {
	toks []lexer.Token
	pos  int
	strs *lexer.Strings
}

func newExprParser(toks []lexer.Token, strs *lexer.Strings) *exprParser {
	return &exprParser{toks: toks, strs: strs}
}

func (p *exprParser) done() bool { return p.pos >= len(p.toks) }

func (p *exprParser) peek() (lexer.Token, bool) {
	if p.done() {
		return lexer.Token{}, false
	}
	return p.toks[p.pos], true
}

func (p *exprParser) advance() lexer.Token {
	t := p.toks[p.pos]
	p.pos++
	return t
}

func (p *exprParser) errorf(tok lexer.Token, msg string) error {
	return &Error{Line: tok.Line, Col: tok.Col, Msg: msg}
}

// ParseExpr parses a complete expression, erroring if trailing tokens
// remain unconsumed.
func (p *exprParser) ParseExpr() (ast.Expression, error) {
	e, err := p.expr(bpNone)
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		return nil, p.errorf(tok, "unexpected trailing tokens in expression")
	}
	return e, nil
}

func (p *exprParser) expr(minBp int) (ast.Expression, error) {
	left, err := p.nud()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.peek()
		if !ok || tok.Kind != lexer.KindOperator {
			break
		}
		bp, known := infixBp[tok.Op]
		if !known || bp <= minBp {
			break
		}
		// call/subscript are purely postfix and always bind regardless of
		// minBp's left-associativity rule (spec §4.1: "postfix operators
		// consume a right-hand side only when they are not purely
		// postfix").
		left, err = p.led(left, tok, bp)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *exprParser) nud() (ast.Expression, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, &Error{Msg: "unexpected end of expression"}
	}

	switch tok.Kind {
	case lexer.KindNumber:
		p.advance()
		return ast.ExprPrimitive{Value: tok.Num}, nil
	case lexer.KindBool:
		p.advance()
		return ast.ExprPrimitive{Value: tok.Bool}, nil
	case lexer.KindString:
		p.advance()
		return ast.ExprStr{Value: p.strs.Lookup(tok.Str)}, nil
	case lexer.KindIdent:
		p.advance()
		return ast.ExprIdent{Name: p.strs.Lookup(tok.Str)}, nil
	case lexer.KindOperator:
		switch tok.Op {
		case lexer.OpNot:
			p.advance()
			inner, err := p.expr(bpUnary)
			if err != nil {
				return nil, err
			}
			return ast.ExprNot{Inner: inner}, nil
		case lexer.OpMinus:
			p.advance()
			inner, err := p.expr(bpUnary)
			if err != nil {
				return nil, err
			}
			return ast.ExprNegative{Inner: inner}, nil
		case lexer.OpLParen:
			p.advance()
			inner, err := p.expr(bpNone)
			if err != nil {
				return nil, err
			}
			if err := p.expectOp(lexer.OpRParen); err != nil {
				return nil, err
			}
			return inner, nil
		case lexer.OpLBracket:
			return p.parseList()
		case lexer.OpLCurly:
			return p.parseMap()
		}
	}
	return nil, p.errorf(tok, "unexpected token in expression")
}

func (p *exprParser) led(left ast.Expression, tok lexer.Token, bp int) (ast.Expression, error) {
	switch tok.Op {
	case lexer.OpPlus, lexer.OpMinus, lexer.OpMul, lexer.OpDiv, lexer.OpMod:
		p.advance()
		rhs, err := p.expr(bp)
		if err != nil {
			return nil, err
		}
		return ast.ExprBinOp{Lhs: left, Rhs: rhs, Op: arithOp(tok.Op)}, nil
	case lexer.OpEqualEqual, lexer.OpNotEqual, lexer.OpLessThan,
		lexer.OpLessThanOrEqual, lexer.OpGreaterThan, lexer.OpGreaterThanOrEqual:
		p.advance()
		rhs, err := p.expr(bp)
		if err != nil {
			return nil, err
		}
		return ast.ExprEquality{Lhs: left, Rhs: rhs, Eq: eqOp(tok.Op)}, nil
	case lexer.OpAnd, lexer.OpOr:
		p.advance()
		rhs, err := p.expr(bp)
		if err != nil {
			return nil, err
		}
		logic := ast.LogicAnd
		if tok.Op == lexer.OpOr {
			logic = ast.LogicOr
		}
		return ast.ExprLogical{Lhs: left, Rhs: rhs, Op: logic}, nil
	case lexer.OpEither:
		p.advance()
		rhs, err := p.expr(bp)
		if err != nil {
			return nil, err
		}
		return ast.ExprEither{A: left, B: rhs}, nil
	case lexer.OpDot:
		p.advance()
		nameTok, ok := p.peek()
		if !ok || nameTok.Kind != lexer.KindIdent {
			return nil, p.errorf(tok, "expected identifier after '.'")
		}
		p.advance()
		return ast.ExprIndex{Lhs: left, Rhs: ast.ExprStr{Value: p.strs.Lookup(nameTok.Str)}}, nil
	case lexer.OpLBracket:
		p.advance()
		idx, err := p.expr(bpNone)
		if err != nil {
			return nil, err
		}
		if err := p.expectOp(lexer.OpRBracket); err != nil {
			return nil, err
		}
		return ast.ExprIndex{Lhs: left, Rhs: idx}, nil
	case lexer.OpLParen:
		p.advance()
		fn, ok := left.(ast.ExprIdent)
		if !ok {
			return nil, p.errorf(tok, "call target must be an identifier")
		}
		var args []ast.Expression
		for {
			if next, ok := p.peek(); ok && next.Kind == lexer.KindOperator && next.Op == lexer.OpRParen {
				p.advance()
				break
			}
			arg, err := p.expr(bpNone)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if next, ok := p.peek(); ok && next.Kind == lexer.KindOperator && next.Op == lexer.OpComma {
				p.advance()
				continue
			}
			if err := p.expectOp(lexer.OpRParen); err != nil {
				return nil, err
			}
			break
		}
		return ast.ExprCall{Fun: fn.Name, Args: args}, nil
	}
	return nil, p.errorf(tok, "unsupported infix operator")
}

func (p *exprParser) parseList() (ast.Expression, error) {
	p.advance() // consume '['
	var items []ast.Expression
	for {
		if next, ok := p.peek(); ok && next.Kind == lexer.KindOperator && next.Op == lexer.OpRBracket {
			p.advance()
			break
		}
		item, err := p.expr(bpNone)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if next, ok := p.peek(); ok && next.Kind == lexer.KindOperator && next.Op == lexer.OpComma {
			p.advance()
			continue
		}
		if err := p.expectOp(lexer.OpRBracket); err != nil {
			return nil, err
		}
		break
	}
	return ast.ExprList{Items: items}, nil
}

func (p *exprParser) parseMap() (ast.Expression, error) {
	p.advance() // consume '{'
	entries := make(map[string]ast.Expression)
	for {
		if next, ok := p.peek(); ok && next.Kind == lexer.KindOperator && next.Op == lexer.OpRCurly {
			p.advance()
			break
		}
		keyTok, ok := p.peek()
		if !ok || (keyTok.Kind != lexer.KindIdent && keyTok.Kind != lexer.KindString) {
			return nil, p.errorf(keyTok, "expected map key")
		}
		p.advance()
		key := p.strs.Lookup(keyTok.Str)
		if err := p.expectOp(lexer.OpColon); err != nil {
			return nil, err
		}
		val, err := p.expr(bpNone)
		if err != nil {
			return nil, err
		}
		entries[key] = val
		if next, ok := p.peek(); ok && next.Kind == lexer.KindOperator && next.Op == lexer.OpComma {
			p.advance()
			continue
		}
		if err := p.expectOp(lexer.OpRCurly); err != nil {
			return nil, err
		}
		break
	}
	return ast.ExprMap{Entries: entries}, nil
}

func (p *exprParser) expectOp(op lexer.Operator) error {
	tok, ok := p.peek()
	if !ok || tok.Kind != lexer.KindOperator || tok.Op != op {
		return p.errorf(tok, "expected '"+op.String()+"'")
	}
	p.advance()
	return nil
}

func arithOp(op lexer.Operator) ast.Op {
	switch op {
	case lexer.OpPlus:
		return ast.OpAdd
	case lexer.OpMinus:
		return ast.OpSub
	case lexer.OpMul:
		return ast.OpMul
	case lexer.OpDiv:
		return ast.OpDiv
	default:
		return ast.OpMod
	}
}

func eqOp(op lexer.Operator) ast.Eq {
	switch op {
	case lexer.OpEqualEqual:
		return ast.EqEqual
	case lexer.OpNotEqual:
		return ast.EqNotEqual
	case lexer.OpLessThan:
		return ast.EqLess
	case lexer.OpLessThanOrEqual:
		return ast.EqLessEqual
	case lexer.OpGreaterThan:
		return ast.EqGreater
	default:
		return ast.EqGreaterEqual
	}
}
