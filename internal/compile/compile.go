package compile

import (
	"fmt"

	"github.com/loomtui/loom/internal/ast"
	"github.com/loomtui/loom/internal/lexer"
	"github.com/loomtui/loom/internal/parser"
)

// Error is a compile-time error: empty conditional body, circular component
// dependency, or unknown component reference (spec §3.2, §7).
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

// Result is the output of compiling one template's statement stream.
type Result struct {
	Body    []ast.Blueprint
	Globals Globals
}

// Compile assembles a flat statement stream (as produced by
// internal/parser.Parse) into a Blueprint tree, folding constants and
// collecting file-scope `let` bindings along the way (spec §4.1 "Compile").
// It does not resolve component embeds against a Registry; call
// CheckUnknownComponents and Registry.Validate separately once every
// template in a program has been compiled and registered.
func Compile(stmts []ast.Statement) (Result, error) {
	b := &builder{globals: Globals{}, stmts: stmts}
	body, err := b.buildBlock()
	if err != nil {
		return Result{}, err
	}
	if !b.done() {
		return Result{}, &Error{Msg: fmt.Sprintf("unexpected %T outside any scope", b.stmts[b.pos])}
	}
	return Result{Body: body, Globals: b.globals}, nil
}

// CompileComponentSource lexes, parses, and compiles source as a
// standalone component template — mirroring anathema's ComponentTemplates,
// where each component is registered from its own separate template source
// rather than a nested definition statement in the embedding template (spec
// §4.5 "look up the component by id (from the registry)"). The template's
// top-level `let` bindings become the component's default state (spec §3.2
// Blueprint Component{..., state, ...}); its remaining statements become
// the component's body, with any ComponentSlot left for the embedding
// site's Body to fill.
func CompileComponentSource(id, source string) (ast.ComponentDef, error) {
	strs := lexer.NewStrings()
	toks, err := lexer.New(source, strs).Tokenize()
	if err != nil {
		return ast.ComponentDef{}, fmt.Errorf("compile: component %q: lex: %w", id, err)
	}
	stmts, err := parser.Parse(toks, strs)
	if err != nil {
		return ast.ComponentDef{}, fmt.Errorf("compile: component %q: parse: %w", id, err)
	}
	res, err := Compile(stmts)
	if err != nil {
		return ast.ComponentDef{}, fmt.Errorf("compile: component %q: %w", id, err)
	}
	return ast.ComponentDef{ID: id, Body: res.Body, State: map[string]ast.Expression(res.Globals)}, nil
}
