// Package loom compiles and runs declarative terminal-UI templates: lex
// and parse source text (internal/lexer, internal/parser), fold and
// assemble it into a Blueprint tree (internal/compile), evaluate that tree
// into a live widget arena (internal/widget), and drive it forward one
// tick at a time against a backend.Backend (internal/runtime).
//
// # Quick start
//
//	prog, err := loom.Compile(`
//	vstack
//	  text "hello, terminal"
//	`, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := prog.Run(tui.New(), nil); err != nil {
//	    log.Fatal(err)
//	}
package loom

import (
	"fmt"

	"github.com/loomtui/loom/backend"
	"github.com/loomtui/loom/internal/compile"
	"github.com/loomtui/loom/internal/defaultwidgets"
	"github.com/loomtui/loom/internal/exprresolve"
	"github.com/loomtui/loom/internal/focus"
	"github.com/loomtui/loom/internal/layout"
	"github.com/loomtui/loom/internal/lexer"
	"github.com/loomtui/loom/internal/parser"
	"github.com/loomtui/loom/internal/query"
	"github.com/loomtui/loom/internal/runtime"
	"github.com/loomtui/loom/internal/scope"
	"github.com/loomtui/loom/internal/valuestore"
	"github.com/loomtui/loom/internal/widget"
)

// Program is one compiled template, ready to be wired against a Backend
// and driven forward tick by tick.
type Program struct {
	Store     *valuestore.Store
	Arena     *widget.Arena
	Evaluator *widget.Evaluator
	Pipeline  *layout.Pipeline
	TabIndex  *focus.TabIndex
	Globals   scope.Globals
}

// DefaultWidgets returns a Registry carrying the built-in idents
// (text, vstack/hstack, border/border-thick).
func DefaultWidgets() *layout.Registry {
	reg := layout.NewRegistry()
	defaultwidgets.Register(reg)
	return reg
}

// ComponentSource is one named component template, registered before the
// main document is compiled against it (spec §4.5). Id is the identifier
// used at `@id` embed sites; Template is the component's own template
// source, compiled the same way the main document is (spec §4.1), its
// top-level `let` bindings becoming the component's default state.
type ComponentSource struct {
	ID       string
	Template string
}

// Compile lexes, parses, folds, and evaluates source into a ready
// Program. widgets is the ident-to-layout.Widget registry the template's
// elements resolve against; pass nil to use DefaultWidgets. Equivalent to
// CompileProgram(source, nil, widgets).
func Compile(source string, widgets *layout.Registry) (*Program, error) {
	return CompileProgram(source, nil, widgets)
}

// CompileProgram is Compile plus a set of named component templates,
// registered (and validated for circular embeds / unknown references)
// before the main document's own `@id` embeds are evaluated against them.
func CompileProgram(source string, components []ComponentSource, widgets *layout.Registry) (*Program, error) {
	if widgets == nil {
		widgets = DefaultWidgets()
	}

	registry := compile.NewRegistry()
	for _, c := range components {
		def, err := compile.CompileComponentSource(c.ID, c.Template)
		if err != nil {
			return nil, fmt.Errorf("loom: %w", err)
		}
		if err := registry.Register(def); err != nil {
			return nil, fmt.Errorf("loom: %w", err)
		}
	}
	if err := registry.Validate(); err != nil {
		return nil, fmt.Errorf("loom: %w", err)
	}

	strs := lexer.NewStrings()
	toks, err := lexer.New(source, strs).Tokenize()
	if err != nil {
		return nil, fmt.Errorf("loom: lex: %w", err)
	}
	stmts, err := parser.Parse(toks, strs)
	if err != nil {
		return nil, fmt.Errorf("loom: parse: %w", err)
	}
	result, err := compile.Compile(stmts)
	if err != nil {
		return nil, fmt.Errorf("loom: compile: %w", err)
	}
	if err := compile.CheckUnknownComponents(result.Body, registry); err != nil {
		return nil, fmt.Errorf("loom: %w", err)
	}

	store := valuestore.New()
	arena := widget.New()
	factory := widget.NewFactory()

	globals := resolveGlobals(store, result.Globals)
	ev := widget.NewEvaluator(arena, store, registry, factory, globals)
	ctx := scope.NewContext(store, globals, valuestore.Subscriber("root"))

	ids, err := ev.EvalBody(result.Body, ctx)
	if err != nil {
		return nil, fmt.Errorf("loom: eval: %w", err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("loom: template produced no root widget")
	}
	arena.SetRoot(ids[0])

	return &Program{
		Store:     store,
		Arena:     arena,
		Evaluator: ev,
		Pipeline:  layout.New(arena, widgets),
		TabIndex:  focus.NewTabIndex(focus.Hooks{}),
		Globals:   globals,
	}, nil
}

// resolveGlobals evaluates each file-scope `let` binding — already
// constant-folded by internal/compile — down to its raw Go value, so the
// expression resolver's globals miss-path (spec §4.3 step 3) never has to
// re-fold an ast.Expression at lookup time.
func resolveGlobals(store *valuestore.Store, g compile.Globals) scope.Globals {
	out := make(scope.Globals, len(g))
	ctx := scope.NewContext(store, scope.Globals{}, valuestore.Subscriber("globals"))
	for name, expr := range g {
		out[name] = exprresolve.ToRaw(exprresolve.Resolve(ctx, expr))
	}
	return out
}

// Query returns a Query over the program's current widget tree.
func (p *Program) Query() *query.Query {
	return query.New(p.Arena)
}

// Runtime wires a Runtime over this program against be, sized to be's
// current Size, ready for Tick or Run.
func (p *Program) Runtime(be backend.Backend) *runtime.Runtime {
	size := be.Size()
	return runtime.New(p.Arena, p.Store, p.Evaluator, p.Pipeline, be, p.TabIndex, int(size.Width), int(size.Height))
}

// Run drives the program against be until the application requests a
// clean shutdown (backend.Backend.Finalize/Shutdown bracket the loop).
// onEvent, if non-nil, is consulted after focus/QuitTest on every input
// event; returning true requests a clean shutdown.
func (p *Program) Run(be backend.Backend, onEvent func(backend.Event) bool) error {
	rt := p.Runtime(be)
	rt.OnEvent = onEvent
	return rt.Run()
}
