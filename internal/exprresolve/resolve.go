package exprresolve

import (
	"strings"

	"github.com/loomtui/loom/internal/ast"
	"github.com/loomtui/loom/internal/scope"
	"github.com/loomtui/loom/internal/valuestore"
)

// Resolve evaluates expr against ctx, subscribing ctx.Subscriber to every
// store dependency read along the way (spec §4.3).
func Resolve(ctx *scope.Context, expr ast.Expression) Value {
	switch e := expr.(type) {
	case ast.ExprPrimitive:
		return primitive(e.Value, expr)
	case ast.ExprStr:
		return Value{Kind: KindString, Str: e.Value, Expr: expr}
	case ast.ExprIdent:
		return resolveIdent(ctx, e)
	case ast.ExprIndex:
		return resolveIndex(ctx, e)
	case ast.ExprBinOp:
		return resolveBinOp(ctx, e)
	case ast.ExprEquality:
		return resolveEquality(ctx, e)
	case ast.ExprLogical:
		return resolveLogical(ctx, e)
	case ast.ExprNot:
		b, ok := Resolve(ctx, e.Inner).AsBool()
		if !ok {
			return Null(expr)
		}
		return primitive(!b, expr)
	case ast.ExprNegative:
		f, ok := Resolve(ctx, e.Inner).AsFloat()
		if !ok {
			return Null(expr)
		}
		return primitive(-f, expr)
	case ast.ExprEither:
		a := Resolve(ctx, e.A)
		if !a.IsNull() && a.Kind != KindDeferred {
			return a
		}
		return Resolve(ctx, e.B)
	case ast.ExprList:
		items := make([]Value, len(e.Items))
		for i, it := range e.Items {
			items[i] = Resolve(ctx, it)
		}
		return Value{Kind: KindList, List: items, Expr: expr}
	case ast.ExprMap:
		m := make(map[string]Value, len(e.Entries))
		for k, v := range e.Entries {
			m[k] = Resolve(ctx, v)
		}
		return Value{Kind: KindMap, Map: m, Expr: expr}
	case ast.ExprTextSegments:
		var sb strings.Builder
		for _, seg := range e.Segments {
			sb.WriteString(Resolve(ctx, seg).String())
		}
		return Value{Kind: KindString, Str: sb.String(), Expr: expr}
	case ast.ExprCall:
		// No built-in function surface is specified; a call resolves to
		// null until a concrete component method dispatch is wired in by
		// the runtime (spec is silent on expression-level calls).
		return Null(expr)
	}
	return Deferred(expr)
}

func resolveIdent(ctx *scope.Context, e ast.ExprIdent) Value {
	switch e.Name {
	case "state":
		if id, ok := ctx.Scope.CurrentState(); ok {
			return storeHandle(ctx, valuestore.OwnedKey(id))
		}
		return Null(e)
	case "attributes":
		if id, ok := ctx.Scope.CurrentAttributes(); ok {
			return storeHandle(ctx, valuestore.OwnedKey(id))
		}
		return Null(e)
	}

	if b, ok := ctx.Scope.LookupBinding(e.Name); ok {
		return Resolve(ctx, b.Expr)
	}
	if g, ok := ctx.Globals[e.Name]; ok {
		if expr, ok := g.(ast.Expression); ok {
			return Resolve(ctx, expr)
		}
		return fromAny(g)
	}
	ctx.Store.RegisterFuture(e.Name, ctx.Subscriber)
	return Deferred(e)
}

func storeHandle(ctx *scope.Context, key valuestore.OwnedKey) Value {
	ctx.Store.Subscribe(key, ctx.Subscriber)
	raw, ok := ctx.Store.Value(key)
	if !ok {
		return Value{Kind: KindNull}
	}
	return fromAny(raw)
}

func resolveIndex(ctx *scope.Context, e ast.ExprIndex) Value {
	lhs := Resolve(ctx, e.Lhs)
	switch lhs.Kind {
	case KindMap:
		key, ok := indexKeyString(ctx, e.Rhs)
		if !ok {
			return Deferred(e)
		}
		if v, ok := lhs.Map[key]; ok {
			return v
		}
		ctx.Store.RegisterFuture(key, ctx.Subscriber)
		return Null(e)
	case KindList:
		idx, ok := indexKeyInt(ctx, e.Rhs)
		if !ok || idx < 0 || idx >= len(lhs.List) {
			return Null(e)
		}
		return lhs.List[idx]
	default:
		return Null(e)
	}
}

// indexKeyString resolves the rhs of a `.` or `[...]` index to a map key:
// a literal string, or a resolved Value that stringifies to one.
func indexKeyString(ctx *scope.Context, rhs ast.Expression) (string, bool) {
	if s, ok := rhs.(ast.ExprStr); ok {
		return s.Value, true
	}
	v := Resolve(ctx, rhs)
	if v.Kind == KindString {
		return v.Str, true
	}
	return "", false
}

func indexKeyInt(ctx *scope.Context, rhs ast.Expression) (int, bool) {
	v := Resolve(ctx, rhs)
	f, ok := v.AsFloat()
	if !ok {
		return 0, false
	}
	return int(f), true
}

func resolveBinOp(ctx *scope.Context, e ast.ExprBinOp) Value {
	lf, lok := Resolve(ctx, e.Lhs).AsFloat()
	rf, rok := Resolve(ctx, e.Rhs).AsFloat()
	if !lok || !rok {
		return Null(e)
	}
	switch e.Op {
	case ast.OpAdd:
		return primitive(lf+rf, e)
	case ast.OpSub:
		return primitive(lf-rf, e)
	case ast.OpMul:
		return primitive(lf*rf, e)
	case ast.OpDiv:
		if rf == 0 {
			return Null(e)
		}
		return primitive(lf/rf, e)
	case ast.OpMod:
		if rf == 0 {
			return Null(e)
		}
		return primitive(float64(int(lf)%int(rf)), e)
	}
	return Null(e)
}

func resolveEquality(ctx *scope.Context, e ast.ExprEquality) Value {
	lhs := Resolve(ctx, e.Lhs)
	rhs := Resolve(ctx, e.Rhs)

	if e.Eq == ast.EqEqual || e.Eq == ast.EqNotEqual {
		eq := valuesEqual(lhs, rhs)
		if e.Eq == ast.EqNotEqual {
			eq = !eq
		}
		return primitive(eq, e)
	}

	lf, lok := lhs.AsFloat()
	rf, rok := rhs.AsFloat()
	if !lok || !rok {
		return Null(e)
	}
	var result bool
	switch e.Eq {
	case ast.EqLess:
		result = lf < rf
	case ast.EqLessEqual:
		result = lf <= rf
	case ast.EqGreater:
		result = lf > rf
	case ast.EqGreaterEqual:
		result = lf >= rf
	}
	return primitive(result, e)
}

func valuesEqual(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNull:
		return true
	case KindString:
		return a.Str == b.Str
	case KindPrimitive:
		return a.Primitive == b.Primitive
	}
	return false
}

func resolveLogical(ctx *scope.Context, e ast.ExprLogical) Value {
	lb, lok := Resolve(ctx, e.Lhs).AsBool()
	if !lok {
		return Null(e)
	}
	if e.Op == ast.LogicAnd && !lb {
		return primitive(false, e)
	}
	if e.Op == ast.LogicOr && lb {
		return primitive(true, e)
	}
	rb, rok := Resolve(ctx, e.Rhs).AsBool()
	if !rok {
		return Null(e)
	}
	return primitive(rb, e)
}
