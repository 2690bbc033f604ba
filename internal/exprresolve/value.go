// Package exprresolve evaluates a compiled Expression against a
// scope.Context, producing a Value that subscribes its dependencies as it
// reads them (spec §4.3).
package exprresolve

import (
	"strconv"

	"github.com/loomtui/loom/internal/ast"
)

// Kind is the resolved shape of a Value (spec §4.3: "primitive, string
// slice, list of values, map of values, deferred, or null").
type Kind int

const (
	KindNull Kind = iota
	KindPrimitive
	KindString
	KindList
	KindMap
	KindDeferred
)

// Value is the result of resolving an Expression. Exactly the fields
// matching Kind are meaningful. Expr retains the originating expression so
// the value can be re-resolved after a dependency changes.
type Value struct {
	Kind      Kind
	Primitive any // float64 or bool
	Str       string
	List      []Value
	Map       map[string]Value
	Expr      ast.Expression
}

// Null returns a null Value remembering the expression that produced it.
func Null(expr ast.Expression) Value { return Value{Kind: KindNull, Expr: expr} }

// Deferred returns a value not yet resolvable (a future registration is
// expected to accompany it).
func Deferred(expr ast.Expression) Value { return Value{Kind: KindDeferred, Expr: expr} }

func primitive(v any, expr ast.Expression) Value {
	return Value{Kind: KindPrimitive, Primitive: v, Expr: expr}
}

// AsFloat extracts a numeric primitive.
func (v Value) AsFloat() (float64, bool) {
	if v.Kind != KindPrimitive {
		return 0, false
	}
	switch n := v.Primitive.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// AsBool extracts a boolean primitive.
func (v Value) AsBool() (bool, bool) {
	if v.Kind != KindPrimitive {
		return false, false
	}
	b, ok := v.Primitive.(bool)
	return b, ok
}

// IsNull reports whether v resolved to null (used by Either's branch
// selection, spec §4.3 "Either(a, b): evaluate a; if null, evaluate b").
func (v Value) IsNull() bool { return v.Kind == KindNull }

// String renders v as display text, used for text-segment concatenation.
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindPrimitive:
		switch n := v.Primitive.(type) {
		case float64:
			return strconv.FormatFloat(n, 'g', -1, 64)
		case bool:
			return strconv.FormatBool(n)
		}
	}
	return ""
}

// ToRaw converts a resolved Value back into the plain Go-native shape
// (string/float64/bool/[]any/map[string]any) the value store and fromAny
// expect, so a component's initial state can be written back into the
// store after being resolved once against the embedding scope.
func ToRaw(v Value) any {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindPrimitive:
		return v.Primitive
	case KindList:
		out := make([]any, len(v.List))
		for i, e := range v.List {
			out[i] = ToRaw(e)
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.Map))
		for k, e := range v.Map {
			out[k] = ToRaw(e)
		}
		return out
	}
	return nil
}

// fromAny converts a raw Go value pulled out of the value store (as stored
// by state/attribute maps) into a Value tree.
func fromAny(v any) Value {
	switch x := v.(type) {
	case nil:
		return Value{Kind: KindNull}
	case string:
		return Value{Kind: KindString, Str: x}
	case bool:
		return Value{Kind: KindPrimitive, Primitive: x}
	case float64:
		return Value{Kind: KindPrimitive, Primitive: x}
	case int:
		return Value{Kind: KindPrimitive, Primitive: float64(x)}
	case map[string]any:
		m := make(map[string]Value, len(x))
		for k, vv := range x {
			m[k] = fromAny(vv)
		}
		return Value{Kind: KindMap, Map: m}
	case []any:
		list := make([]Value, len(x))
		for i, vv := range x {
			list[i] = fromAny(vv)
		}
		return Value{Kind: KindList, List: list}
	}
	return Value{Kind: KindNull}
}
