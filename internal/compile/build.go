package compile

import (
	"fmt"
	"strings"

	"github.com/loomtui/loom/internal/ast"
)

// builder walks the flat statement stream and assembles a Blueprint tree,
// consuming ScopeStart/ScopeEnd pairs to recurse into children. Grounded on
// the statement-to-node assembly in anathema-templates/src/statements/mod.rs
// (see DESIGN.md).
type builder struct {
	stmts   []ast.Statement
	pos     int
	globals Globals
}

func (b *builder) done() bool { return b.pos >= len(b.stmts) }

func (b *builder) peek() ast.Statement {
	if b.done() {
		return nil
	}
	return b.stmts[b.pos]
}

// buildBlock consumes statements until a ScopeEnd (which it swallows) or the
// stream is exhausted, returning the Blueprints built along the way.
func (b *builder) buildBlock() ([]ast.Blueprint, error) {
	var out []ast.Blueprint
	for !b.done() {
		if _, ok := b.peek().(ast.StmtScopeEnd); ok {
			b.pos++
			return out, nil
		}
		bp, err := b.buildOne()
		if err != nil {
			return nil, err
		}
		if bp != nil {
			out = append(out, bp)
		}
	}
	return out, nil
}

// buildBranchBody consumes an optional ScopeStart..ScopeEnd pair belonging
// to an if/else/for branch. A branch with no opened scope, or an opened
// scope with nothing inside, both yield a nil/empty body — the for/if/else
// callers treat that as the "empty conditional body" compile error (spec
// §3.2, §7); the node and component callers accept an empty body.
func (b *builder) buildBranchBody() ([]ast.Blueprint, error) {
	if _, ok := b.peek().(ast.StmtScopeStart); !ok {
		return nil, nil
	}
	b.pos++
	return b.buildBlock()
}

func (b *builder) buildOne() (ast.Blueprint, error) {
	switch st := b.stmts[b.pos].(type) {
	case ast.StmtDeclaration:
		b.pos++
		b.globals[st.Binding] = FoldConst(st.Value, b.globals)
		return nil, nil

	case ast.StmtNode:
		b.pos++
		single := ast.Single{Ident: st.Ident}
	nodeAttrs:
		for !b.done() {
			switch a := b.stmts[b.pos].(type) {
			case ast.StmtLoadAttribute:
				single.Attributes = append(single.Attributes, ast.Attribute{
					Key: a.Key, Value: FoldConst(a.Value, b.globals),
				})
				b.pos++
			case ast.StmtLoadValue:
				single.Value = FoldConst(a.Expr, b.globals)
				b.pos++
			default:
				break nodeAttrs
			}
		}
		children, err := b.buildBranchBody()
		if err != nil {
			return nil, err
		}
		single.Children = children
		return single, nil

	case ast.StmtFor:
		b.pos++
		data := FoldConst(st.Data, b.globals)
		body, err := b.buildBranchBody()
		if err != nil {
			return nil, err
		}
		if len(body) == 0 {
			return nil, &Error{Msg: "for loop has an empty body"}
		}
		return ast.For{Binding: st.Binding, Data: data, Body: body}, nil

	case ast.StmtIf:
		return b.buildControlFlow(st.Cond)

	case ast.StmtComponentSlot:
		b.pos++
		return ast.Slot{ID: st.ID}, nil

	case ast.StmtComponent:
		return b.buildComponent(st)

	default:
		return nil, &Error{Msg: fmt.Sprintf("unexpected statement %T outside any node", st)}
	}
}

func (b *builder) buildControlFlow(firstCond ast.Expression) (ast.Blueprint, error) {
	b.pos++ // consume the StmtIf
	body, err := b.buildBranchBody()
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, &Error{Msg: "if branch has an empty body"}
	}
	branches := []ast.IfBranch{{Cond: FoldConst(firstCond, b.globals), Body: body}}

	for !b.done() {
		elseSt, ok := b.peek().(ast.StmtElse)
		if !ok {
			break
		}
		b.pos++
		ebody, err := b.buildBranchBody()
		if err != nil {
			return nil, err
		}
		if len(ebody) == 0 {
			return nil, &Error{Msg: "else branch has an empty body"}
		}
		var cond ast.Expression
		if elseSt.Cond != nil {
			cond = FoldConst(elseSt.Cond, b.globals)
		}
		branches = append(branches, ast.IfBranch{Cond: cond, Body: ebody})
	}
	return ast.ControlFlow{Branches: branches}, nil
}

func (b *builder) buildComponent(st ast.StmtComponent) (ast.Blueprint, error) {
	b.pos++
	comp := ast.Component{
		ID:     st.ID,
		State:  map[string]ast.Expression{},
		Events: map[string]string{},
	}
componentAttrs:
	for !b.done() {
		switch a := b.stmts[b.pos].(type) {
		case ast.StmtLoadAttribute:
			if rest, ok := strings.CutPrefix(a.Key, "state."); ok {
				comp.State[rest] = FoldConst(a.Value, b.globals)
			} else {
				comp.Attributes = append(comp.Attributes, ast.Attribute{
					Key: a.Key, Value: FoldConst(a.Value, b.globals),
				})
			}
			b.pos++
		case ast.StmtAssociatedFunction:
			comp.Events[a.Internal] = a.External
			b.pos++
		default:
			break componentAttrs
		}
	}
	body, err := b.buildBranchBody()
	if err != nil {
		return nil, err
	}
	comp.Body = body
	return comp, nil
}
