// Package resolve looks names up across a corpus of parsed WebIDL files.
// The corpus is owned by the caller and only read.
package resolve

import (
	"fmt"

	"github.com/dennwc/webidlstruct/ast"
	"github.com/dennwc/webidlstruct/structure"
)

// Kind selects what a lookup searches for.
type Kind int

const (
	// ParentInterface finds interfaces declaring the name.
	ParentInterface Kind = iota
	// ParentDictionary finds dictionaries declaring the name.
	ParentDictionary
	// ChildInterfaces finds interfaces inheriting from the name.
	ChildInterfaces
	// ChildDictionaries finds dictionaries inheriting from the name.
	ChildDictionaries
	// Mixin finds interface mixins declaring the name.
	Mixin
	// Namespace finds namespaces declaring the name.
	Namespace
)

var kindNames = map[Kind]string{
	ParentInterface:   "parentInterface",
	ParentDictionary:  "parentDictionary",
	ChildInterfaces:   "childInterfaces",
	ChildDictionaries: "childDictionaries",
	Mixin:             "mixin",
	Namespace:         "namespace",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the kind named by s, as printed by Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Match is one definition found by a lookup.
type Match struct {
	File       int // index into the corpus
	Definition ast.Definition
	Identifier ast.Identifier // the definition's own name
}

// Lookup scans the top-level definitions of every file in corpus order.
// Names are compared by text only.
func Lookup(corpus []*ast.File, kind Kind, name string) []Match {
	var out []Match
	for i, file := range corpus {
		if file == nil {
			continue
		}
		for _, def := range file.Definitions {
			if id, ok := matches(def, kind, name); ok {
				out = append(out, Match{File: i, Definition: def, Identifier: id})
			}
		}
	}
	return out
}

// Resolve returns the own names of the definitions Lookup finds.
func Resolve(corpus []*ast.File, kind Kind, name string) []ast.Identifier {
	matches := Lookup(corpus, kind, name)
	if len(matches) == 0 {
		return nil
	}
	out := make([]ast.Identifier, len(matches))
	for i, m := range matches {
		out[i] = m.Identifier
	}
	return out
}

// matches reports whether def is found by a kind lookup of name. A parent
// that names itself as its own parent is never a match.
func matches(def ast.Definition, kind Kind, name string) (ast.Identifier, bool) {
	switch d := def.(type) {
	case *ast.Interface:
		switch kind {
		case ParentInterface:
			return d.Identifier, d.Identifier.Value == name && !inherits(d.Inheritance, name)
		case ChildInterfaces:
			return d.Identifier, inherits(d.Inheritance, name)
		}
	case *ast.Dictionary:
		switch kind {
		case ParentDictionary:
			return d.Identifier, d.Identifier.Value == name && !inherits(d.Inheritance, name)
		case ChildDictionaries:
			return d.Identifier, inherits(d.Inheritance, name)
		}
	case *ast.Mixin:
		return d.Identifier, kind == Mixin && d.Identifier.Value == name
	case *ast.Namespace:
		return d.Identifier, kind == Namespace && d.Identifier.Value == name
	}
	return ast.Identifier{}, false
}

func inherits(parent *ast.Identifier, name string) bool {
	return parent != nil && parent.Value == name
}

// KindForRole returns the lookup that resolves a name tagged with role in
// def: a reference to another definition, or from a declared name to the
// definitions inheriting from it.
func KindForRole(def ast.Definition, role structure.Role) (Kind, bool) {
	switch role {
	case structure.RoleInheritance:
		switch def.(type) {
		case *ast.Interface:
			return ParentInterface, true
		case *ast.Dictionary:
			return ParentDictionary, true
		}
	case structure.RolePartialTarget:
		switch def.(type) {
		case *ast.PartialInterface:
			return ParentInterface, true
		case *ast.PartialDictionary:
			return ParentDictionary, true
		case *ast.PartialMixin:
			return Mixin, true
		case *ast.PartialNamespace:
			return Namespace, true
		}
	case structure.RoleIncludesInterface:
		return ParentInterface, true
	case structure.RoleIncludesMixin:
		return Mixin, true
	case structure.RoleOwnName:
		switch def.(type) {
		case *ast.Interface:
			return ChildInterfaces, true
		case *ast.Dictionary:
			return ChildDictionaries, true
		}
	}
	return 0, false
}

// Reference resolves the name node n of a structural tree against corpus.
// Nodes that are not resolvable names yield nothing.
func Reference(corpus []*ast.File, n *structure.Node) []Match {
	if n == nil || n.Kind != structure.KindName || n.Identifier == nil {
		return nil
	}
	kind, ok := KindForRole(n.Definition, n.Role)
	if !ok {
		return nil
	}
	return Lookup(corpus, kind, n.Identifier.Value)
}
