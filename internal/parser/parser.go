package parser

import (
	"github.com/loomtui/loom/internal/ast"
	"github.com/loomtui/loom/internal/lexer"
)

// Parse tokenizes nothing itself — it consumes an already-lexed token
// stream and produces the flat ast.Statement sequence described in spec
// §4.1, synthesizing ScopeStart/ScopeEnd from indentation changes (spec
// §4.1 "Scope/indent rule").
func Parse(toks []lexer.Token, strs *lexer.Strings) ([]ast.Statement, error) {
	lines := splitLines(toks)

	var stmts []ast.Statement
	indentStack := []int{0}
	// lastWasConditional tracks whether the immediately preceding sibling
	// statement (at the same indent level) was an if/else, so that an
	// else line at this indent is accepted (spec: "Else branches must
	// immediately follow their if/else-if at the same indent").
	lastWasConditional := map[int]bool{}

	for _, ln := range lines {
		if len(ln.content) == 0 {
			continue
		}
		top := indentStack[len(indentStack)-1]
		switch {
		case ln.indent > top:
			indentStack = append(indentStack, ln.indent)
			stmts = append(stmts, ast.StmtScopeStart{})
		case ln.indent < top:
			for len(indentStack) > 1 && ln.indent < indentStack[len(indentStack)-1] {
				indentStack = indentStack[:len(indentStack)-1]
				stmts = append(stmts, ast.StmtScopeEnd{})
			}
			if indentStack[len(indentStack)-1] != ln.indent {
				return nil, &Error{Line: ln.lineNum, Col: ln.indent + 1, Msg: "inconsistent indentation"}
			}
		}

		level := len(indentStack)
		lineStmts, isElse, err := parseLineContent(ln, strs, lastWasConditional[level])
		if err != nil {
			return nil, err
		}
		if isElse && !lastWasConditional[level] {
			return nil, &Error{Line: ln.lineNum, Msg: "else must immediately follow if/else-if at the same indent"}
		}
		lastWasConditional[level] = isConditionalStmt(lineStmts)
		stmts = append(stmts, lineStmts...)
	}
	for len(indentStack) > 1 {
		indentStack = indentStack[:len(indentStack)-1]
		stmts = append(stmts, ast.StmtScopeEnd{})
	}

	return stmts, nil
}

func isConditionalStmt(stmts []ast.Statement) bool {
	if len(stmts) == 0 {
		return false
	}
	switch stmts[0].(type) {
	case ast.StmtIf, ast.StmtElse:
		return true
	}
	return false
}

func parseLineContent(ln line, strs *lexer.Strings, afterConditional bool) (stmts []ast.Statement, isElse bool, err error) {
	if len(ln.content) == 0 {
		return nil, false, nil
	}
	first := ln.content[0]

	switch first.Kind {
	case lexer.KindKeyword:
		kw := strs.Lookup(first.Str)
		switch kw {
		case lexer.KwFor:
			s, err := parseFor(ln, strs)
			return []ast.Statement{s}, false, err
		case lexer.KwIf:
			s, err := parseIf(ln, strs)
			return []ast.Statement{s}, false, err
		case lexer.KwElse:
			s, err := parseElse(ln, strs)
			return []ast.Statement{s}, true, err
		case lexer.KwLet:
			s, err := parseLet(ln, strs)
			return []ast.Statement{s}, false, err
		}
	case lexer.KindComponentRef:
		return parseComponent(ln, strs)
	case lexer.KindSlot:
		return parseSlot(ln, strs)
	case lexer.KindIdent:
		return parseNode(ln, strs)
	}
	return nil, false, &Error{Line: first.Line, Col: first.Col, Msg: "unexpected token at start of statement"}
}

func parseFor(ln line, strs *lexer.Strings) (ast.Statement, error) {
	// for IDENT in expr
	toks := ln.content[1:]
	if len(toks) < 3 || toks[0].Kind != lexer.KindIdent {
		return nil, &Error{Line: ln.lineNum, Msg: "expected binding identifier after 'for'"}
	}
	binding := strs.Lookup(toks[0].Str)
	inTok := toks[1]
	if inTok.Kind != lexer.KindKeyword || strs.Lookup(inTok.Str) != lexer.KwIn {
		return nil, &Error{Line: inTok.Line, Col: inTok.Col, Msg: "expected 'in' in for statement"}
	}
	data, err := newExprParser(toks[2:], strs).ParseExpr()
	if err != nil {
		return nil, err
	}
	return ast.StmtFor{Binding: binding, Data: data}, nil
}

func parseIf(ln line, strs *lexer.Strings) (ast.Statement, error) {
	cond, err := newExprParser(ln.content[1:], strs).ParseExpr()
	if err != nil {
		return nil, err
	}
	return ast.StmtIf{Cond: cond}, nil
}

func parseElse(ln line, strs *lexer.Strings) (ast.Statement, error) {
	rest := ln.content[1:]
	if len(rest) == 0 {
		return ast.StmtElse{}, nil
	}
	cond, err := newExprParser(rest, strs).ParseExpr()
	if err != nil {
		return nil, err
	}
	return ast.StmtElse{Cond: cond}, nil
}

func parseLet(ln line, strs *lexer.Strings) (ast.Statement, error) {
	toks := ln.content[1:]
	if len(toks) < 3 || toks[0].Kind != lexer.KindIdent {
		return nil, &Error{Line: ln.lineNum, Msg: "expected identifier after 'let'"}
	}
	name := strs.Lookup(toks[0].Str)
	assignTok := toks[1]
	if assignTok.Kind != lexer.KindOperator || assignTok.Op != lexer.OpAssign {
		return nil, &Error{Line: assignTok.Line, Col: assignTok.Col, Msg: "expected '=' in let statement"}
	}
	val, err := newExprParser(toks[2:], strs).ParseExpr()
	if err != nil {
		return nil, err
	}
	return ast.StmtDeclaration{Binding: name, Value: val}, nil
}

func parseSlot(ln line, strs *lexer.Strings) ([]ast.Statement, bool, error) {
	toks := ln.content[1:]
	if len(toks) == 0 || toks[0].Kind != lexer.KindIdent {
		return nil, false, &Error{Line: ln.lineNum, Msg: "expected identifier after '$'"}
	}
	return []ast.Statement{ast.StmtComponentSlot{ID: strs.Lookup(toks[0].Str)}}, false, nil
}

func parseNode(ln line, strs *lexer.Strings) ([]ast.Statement, bool, error) {
	ident := strs.Lookup(ln.content[0].Str)
	stmts := []ast.Statement{ast.StmtNode{Ident: ident}}
	rest := ln.content[1:]

	if len(rest) > 0 && isOp(rest[0], lexer.OpLBracket) {
		attrs, remaining, err := parseAttrList(rest, strs)
		if err != nil {
			return nil, false, err
		}
		for _, a := range attrs {
			stmts = append(stmts, ast.StmtLoadAttribute{Key: a.Key, Value: a.Value})
		}
		rest = remaining
	}

	if len(rest) > 0 {
		val, err := newExprParser(rest, strs).ParseExpr()
		if err != nil {
			return nil, false, err
		}
		stmts = append(stmts, ast.StmtLoadValue{Expr: val})
	}

	return stmts, false, nil
}

func parseComponent(ln line, strs *lexer.Strings) ([]ast.Statement, bool, error) {
	toks := ln.content[1:]
	if len(toks) == 0 || toks[0].Kind != lexer.KindIdent {
		return nil, false, &Error{Line: ln.lineNum, Msg: "expected identifier after '@'"}
	}
	id := strs.Lookup(toks[0].Str)
	rest := toks[1:]
	stmts := []ast.Statement{ast.StmtComponent{ID: id}}

	if len(rest) > 0 && isOp(rest[0], lexer.OpLParen) {
		pairs, remaining, err := parseAssocList(rest, strs)
		if err != nil {
			return nil, false, err
		}
		for _, pr := range pairs {
			stmts = append(stmts, ast.StmtAssociatedFunction{Internal: pr[0], External: pr[1]})
		}
		rest = remaining
	}

	if len(rest) > 0 && isOp(rest[0], lexer.OpLBracket) {
		attrs, remaining, err := parseAttrList(rest, strs)
		if err != nil {
			return nil, false, err
		}
		for _, a := range attrs {
			stmts = append(stmts, ast.StmtLoadAttribute{Key: a.Key, Value: a.Value})
		}
		rest = remaining
	}

	if len(rest) > 0 && isOp(rest[0], lexer.OpLCurly) {
		m, err := newExprParser(rest, strs).parseMap()
		if err != nil {
			return nil, false, err
		}
		mapExpr := m.(ast.ExprMap)
		for k, v := range mapExpr.Entries {
			stmts = append(stmts, ast.StmtLoadAttribute{Key: "state." + k, Value: v})
		}
	}

	return stmts, false, nil
}

func isOp(t lexer.Token, op lexer.Operator) bool {
	return t.Kind == lexer.KindOperator && t.Op == op
}

type attrPair struct {
	Key   string
	Value ast.Expression
}

// parseAttrList parses `[ IDENT : expr, ... ]` returning the attrs and the
// unconsumed tokens after the closing bracket.
func parseAttrList(toks []lexer.Token, strs *lexer.Strings) ([]attrPair, []lexer.Token, error) {
	// toks[0] is '['
	depth := 0
	end := -1
	for i, t := range toks {
		if isOp(t, lexer.OpLBracket) {
			depth++
		}
		if isOp(t, lexer.OpRBracket) {
			depth--
			if depth == 0 {
				end = i
				break
			}
		}
	}
	if end == -1 {
		return nil, nil, &Error{Line: toks[0].Line, Col: toks[0].Col, Msg: "unterminated attribute list"}
	}
	inner := toks[1:end]
	var attrs []attrPair
	i := 0
	for i < len(inner) {
		keyTok := inner[i]
		if keyTok.Kind != lexer.KindIdent {
			return nil, nil, &Error{Line: keyTok.Line, Col: keyTok.Col, Msg: "expected attribute name"}
		}
		i++
		if i >= len(inner) || !isOp(inner[i], lexer.OpColon) {
			return nil, nil, &Error{Line: keyTok.Line, Col: keyTok.Col, Msg: "expected ':' after attribute name"}
		}
		i++
		start := i
		for i < len(inner) && !isOp(inner[i], lexer.OpComma) {
			i++
		}
		val, err := newExprParser(inner[start:i], strs).ParseExpr()
		if err != nil {
			return nil, nil, err
		}
		attrs = append(attrs, attrPair{Key: strs.Lookup(keyTok.Str), Value: val})
		if i < len(inner) && isOp(inner[i], lexer.OpComma) {
			i++
		}
	}
	return attrs, toks[end+1:], nil
}

func parseAssocList(toks []lexer.Token, strs *lexer.Strings) ([][2]string, []lexer.Token, error) {
	depth := 0
	end := -1
	for i, t := range toks {
		if isOp(t, lexer.OpLParen) {
			depth++
		}
		if isOp(t, lexer.OpRParen) {
			depth--
			if depth == 0 {
				end = i
				break
			}
		}
	}
	if end == -1 {
		return nil, nil, &Error{Line: toks[0].Line, Msg: "unterminated associated-function list"}
	}
	inner := toks[1:end]
	var pairs [][2]string
	i := 0
	for i < len(inner) {
		if inner[i].Kind != lexer.KindIdent {
			return nil, nil, &Error{Line: inner[i].Line, Msg: "expected event name"}
		}
		internal := strs.Lookup(inner[i].Str)
		i++
		external := internal
		if i < len(inner) && isOp(inner[i], lexer.OpColon) {
			i++
			if i >= len(inner) || inner[i].Kind != lexer.KindIdent {
				return nil, nil, &Error{Line: inner[i-1].Line, Msg: "expected external event name"}
			}
			external = strs.Lookup(inner[i].Str)
			i++
		}
		pairs = append(pairs, [2]string{internal, external})
		if i < len(inner) && isOp(inner[i], lexer.OpComma) {
			i++
		}
	}
	return pairs, toks[end+1:], nil
}
