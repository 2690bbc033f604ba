package compile

import (
	"fmt"
	"sort"

	"github.com/loomtui/loom/internal/ast"
)

// Registry holds compiled component definitions keyed by id, looked up by
// Component.ID at widget-eval time (spec §4.5).
type Registry struct {
	defs map[string]ast.ComponentDef
}

func NewRegistry() *Registry {
	return &Registry{defs: map[string]ast.ComponentDef{}}
}

// Register adds a compiled component definition. Registering the same id
// twice is a compile-time error.
func (r *Registry) Register(def ast.ComponentDef) error {
	if _, exists := r.defs[def.ID]; exists {
		return &Error{Msg: fmt.Sprintf("component %q already registered", def.ID)}
	}
	r.defs[def.ID] = def
	return nil
}

func (r *Registry) Lookup(id string) (ast.ComponentDef, bool) {
	def, ok := r.defs[id]
	return def, ok
}

const (
	colorWhite = iota
	colorGray
	colorBlack
)

// Validate walks every registered component's body looking for a cycle of
// embeds (A embeds B embeds A) and for embeds of components that were never
// registered. Both are compile-time errors (spec §3.2 "circular component
// dependency", §7 "unknown component reference").
func (r *Registry) Validate() error {
	color := make(map[string]int, len(r.defs))

	ids := make([]string, 0, len(r.defs))
	for id := range r.defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var visit func(id string, path []string) error
	visit = func(id string, path []string) error {
		switch color[id] {
		case colorBlack:
			return nil
		case colorGray:
			return &Error{Msg: fmt.Sprintf("circular component dependency: %s -> %s", joinPath(path), id)}
		}
		def, ok := r.defs[id]
		if !ok {
			return &Error{Msg: fmt.Sprintf("unknown component %q", id)}
		}
		color[id] = colorGray
		for _, dep := range embeddedIDs(def.Body) {
			if err := visit(dep, append(path, id)); err != nil {
				return err
			}
		}
		color[id] = colorBlack
		return nil
	}

	for _, id := range ids {
		if err := visit(id, nil); err != nil {
			return err
		}
	}
	return nil
}

func joinPath(path []string) string {
	s := ""
	for i, p := range path {
		if i > 0 {
			s += " -> "
		}
		s += p
	}
	return s
}

// CheckUnknownComponents verifies every Component embed reachable from body
// refers to a registered definition. Call this for a template's top-level
// body once every component it might reference has been registered.
func CheckUnknownComponents(body []ast.Blueprint, reg *Registry) error {
	var err error
	var walk func([]ast.Blueprint)
	walk = func(bps []ast.Blueprint) {
		for _, bp := range bps {
			if err != nil {
				return
			}
			switch n := bp.(type) {
			case ast.Component:
				if _, ok := reg.Lookup(n.ID); !ok {
					err = &Error{Msg: fmt.Sprintf("unknown component %q", n.ID)}
					return
				}
				walk(n.Body)
			case ast.Single:
				walk(n.Children)
			case ast.For:
				walk(n.Body)
			case ast.ControlFlow:
				for _, br := range n.Branches {
					walk(br.Body)
				}
			}
		}
	}
	walk(body)
	return err
}

func embeddedIDs(body []ast.Blueprint) []string {
	var ids []string
	var walk func([]ast.Blueprint)
	walk = func(bps []ast.Blueprint) {
		for _, bp := range bps {
			switch n := bp.(type) {
			case ast.Component:
				ids = append(ids, n.ID)
				walk(n.Body)
			case ast.Single:
				walk(n.Children)
			case ast.For:
				walk(n.Body)
			case ast.ControlFlow:
				for _, br := range n.Branches {
					walk(br.Body)
				}
			}
		}
	}
	walk(body)
	return ids
}
