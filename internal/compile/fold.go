// Package compile turns the parser's flat ast.Statement stream into an
// immutable ast.Blueprint tree, applying constant folding along the way
// (spec §4.1 "Compile").
package compile

import "github.com/loomtui/loom/internal/ast"

// Globals holds file-scope `let` bindings available for constant folding
// and substitution (spec: "global let bindings are substituted by value").
type Globals map[string]ast.Expression

func (g Globals) fetch(name string) (ast.Expression, bool) {
	e, ok := g[name]
	return e, ok
}

// FoldConst reduces expr as far as possible without runtime state: numeric
// arithmetic on literal operands, literal list/map indexing, and global
// `let` substitution. Unresolved identifiers are preserved unchanged.
// Grounded line-for-line on anathema-templates/src/statements/const_eval.rs
// (see DESIGN.md) — the Rust `ce!` macro recursion becomes the `fold`
// helper below.
func FoldConst(expr ast.Expression, g Globals) ast.Expression {
	fold := func(e ast.Expression) ast.Expression { return FoldConst(e, g) }

	switch e := expr.(type) {
	case ast.ExprPrimitive, ast.ExprStr, ast.ExprEither:
		return e

	case ast.ExprIdent:
		if sub, ok := g.fetch(e.Name); ok {
			return sub
		}
		return e

	case ast.ExprIndex:
		lhs := fold(e.Lhs)
		rhs := fold(e.Rhs)
		if list, ok := lhs.(ast.ExprList); ok {
			if idx, ok := rhs.(ast.ExprPrimitive); ok {
				if i, ok := asInt(idx.Value); ok && i >= 0 && i < len(list.Items) {
					return list.Items[i]
				}
			}
		}
		if m, ok := lhs.(ast.ExprMap); ok {
			if key, ok := rhs.(ast.ExprStr); ok {
				if v, ok := m.Entries[key.Value]; ok {
					return v
				}
			}
		}
		return ast.ExprIndex{Lhs: lhs, Rhs: rhs}

	case ast.ExprNot:
		return ast.ExprNot{Inner: fold(e.Inner)}

	case ast.ExprNegative:
		inner := fold(e.Inner)
		if p, ok := inner.(ast.ExprPrimitive); ok {
			if f, ok := asFloat(p.Value); ok {
				return ast.ExprPrimitive{Value: -f}
			}
		}
		return ast.ExprNegative{Inner: inner}

	case ast.ExprEquality:
		return ast.ExprEquality{Lhs: fold(e.Lhs), Rhs: fold(e.Rhs), Eq: e.Eq}

	case ast.ExprLogical:
		return ast.ExprLogical{Lhs: fold(e.Lhs), Rhs: fold(e.Rhs), Op: e.Op}

	case ast.ExprList:
		items := make([]ast.Expression, len(e.Items))
		for i, it := range e.Items {
			items[i] = fold(it)
		}
		return ast.ExprList{Items: items}

	case ast.ExprTextSegments:
		segs := make([]ast.Expression, len(e.Segments))
		for i, it := range e.Segments {
			segs[i] = fold(it)
		}
		return ast.ExprTextSegments{Segments: segs}

	case ast.ExprMap:
		entries := make(map[string]ast.Expression, len(e.Entries))
		for k, v := range e.Entries {
			entries[k] = fold(v)
		}
		return ast.ExprMap{Entries: entries}

	case ast.ExprBinOp:
		lhs := fold(e.Lhs)
		rhs := fold(e.Rhs)
		lp, lok := lhs.(ast.ExprPrimitive)
		rp, rok := rhs.(ast.ExprPrimitive)
		if lok && rok {
			if li, liok := asInt(lp.Value); liok {
				if ri, riok := asInt(rp.Value); riok {
					return ast.ExprPrimitive{Value: float64(applyIntOp(li, ri, e.Op))}
				}
			}
			if lf, lfok := asFloat(lp.Value); lfok {
				if rf, rfok := asFloat(rp.Value); rfok {
					return ast.ExprPrimitive{Value: applyFloatOp(lf, rf, e.Op)}
				}
			}
		}
		return ast.ExprBinOp{Lhs: lhs, Rhs: rhs, Op: e.Op}

	case ast.ExprCall:
		args := make([]ast.Expression, len(e.Args))
		for i, a := range e.Args {
			args[i] = fold(a)
		}
		return ast.ExprCall{Fun: e.Fun, Args: args}
	}
	return expr
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	case int:
		return n, true
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func applyIntOp(l, r int, op ast.Op) int {
	switch op {
	case ast.OpAdd:
		return l + r
	case ast.OpSub:
		return l - r
	case ast.OpMul:
		return l * r
	case ast.OpDiv:
		if r == 0 {
			return 0
		}
		return l / r
	case ast.OpMod:
		if r == 0 {
			return 0
		}
		return l % r
	}
	return 0
}

func applyFloatOp(l, r float64, op ast.Op) float64 {
	switch op {
	case ast.OpAdd:
		return l + r
	case ast.OpSub:
		return l - r
	case ast.OpMul:
		return l * r
	case ast.OpDiv:
		if r == 0 {
			return 0
		}
		return l / r
	case ast.OpMod:
		if r == 0 {
			return 0
		}
		li, ri := int(l), int(r)
		return float64(li % ri)
	}
	return 0
}
