// Package structure builds the structural tree of a WebIDL file: a tree
// whose leaves tile the source exactly, with syntax errors spliced in as
// error nodes and name tokens tagged with the role they play.
package structure

import (
	"fmt"
	"strings"

	"github.com/dennwc/webidlstruct/ast"
	"github.com/dennwc/webidlstruct/parser"
)

// Kind is the kind of a structural node.
type Kind int

const (
	KindFile       Kind = iota
	KindDefinition      // a top-level definition, extended attributes included
	KindBody            // '{' ... '}' of a definition
	KindMember          // a body member
	KindToken           // a single token, trivia included
	KindName            // a tagged name token; holds one KindToken child
	KindError           // a syntax error span; may be empty
)

var kindNames = [...]string{
	KindFile:       "File",
	KindDefinition: "Definition",
	KindBody:       "Body",
	KindMember:     "Member",
	KindToken:      "Token",
	KindName:       "Name",
	KindError:      "Error",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Role is the part a name token plays in its definition or member.
type Role int

const (
	RoleNone              Role = iota
	RoleOwnName                // the name a definition declares
	RoleInheritance            // the parent after ':'
	RolePartialTarget          // the definition a partial extends
	RoleIncludesInterface      // the left-hand side of 'includes'
	RoleIncludesMixin          // the right-hand side of 'includes'
	RoleMemberName             // the name of an attribute, operation, constant or dictionary member
)

var roleNames = [...]string{
	RoleNone:              "none",
	RoleOwnName:           "ownName",
	RoleInheritance:       "inheritance",
	RolePartialTarget:     "partialTarget",
	RoleIncludesInterface: "includesInterface",
	RoleIncludesMixin:     "includesMixin",
	RoleMemberName:        "memberName",
}

func (r Role) String() string {
	if r >= 0 && int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Node is a structural tree node.
type Node struct {
	Kind  Kind            `json:"kind"`
	Range ast.SourceRange `json:"range"`

	Role       Role            `json:"role,omitempty"`       // KindName
	Identifier *ast.Identifier `json:"identifier,omitempty"` // KindName: the AST name it matched
	Message    string          `json:"message,omitempty"`    // KindError
	Token      *parser.Token   `json:"token,omitempty"`      // KindToken

	// Definition is set on definition and body nodes, and on name nodes
	// tagged with a definition role.
	Definition ast.Definition `json:"-"`
	// Member is an ast.Member or an *ast.DictionaryMember. It is set on
	// member nodes and on member name nodes.
	Member ast.Node `json:"-"`

	Children []*Node `json:"children,omitempty"`
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

func (n *Node) describe() string {
	var sb strings.Builder
	sb.WriteString(n.Kind.String())
	switch n.Kind {
	case KindDefinition:
		if n.Definition != nil {
			fmt.Fprintf(&sb, "(%s)", definitionKind(n.Definition))
		}
	case KindMember:
		if n.Member != nil {
			fmt.Fprintf(&sb, "(%s)", strings.TrimPrefix(fmt.Sprintf("%T", n.Member), "*ast."))
		}
	case KindName:
		fmt.Fprintf(&sb, "(%s)", n.Role)
	case KindError:
		fmt.Fprintf(&sb, "(%q)", n.Message)
	case KindToken:
		fmt.Fprintf(&sb, "(%s)", n.Token.Display())
	}
	fmt.Fprintf(&sb, " [%d,%d)", n.Range.StartOffset, n.Range.EndOffset)
	return sb.String()
}

func definitionKind(def ast.Definition) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", def), "*ast.")
}

// Tree is the structural tree of one file.
type Tree struct {
	Root *Node `json:"root"`
	// Degraded is set when the tree was built without an AST and carries
	// no definitions, bodies, members or names.
	Degraded bool `json:"degraded,omitempty"`
}

// Walk visits the tree depth first in source order. Returning false from fn
// skips the children of n.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if !fn(n, depth) {
			return
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(t.Root, 0)
}

// Leaves returns the childless nodes in source order. Their ranges tile the
// source: token leaves are contiguous and empty leaves have zero width.
func (t *Tree) Leaves() []*Node {
	var out []*Node
	t.Walk(func(n *Node, _ int) bool {
		if n.IsLeaf() {
			out = append(out, n)
		}
		return true
	})
	return out
}

// PathAt returns the nodes containing offset, from the root down to the
// innermost one. Empty nodes never contain an offset.
func (t *Tree) PathAt(offset int) []*Node {
	var path []*Node
	for n := t.Root; n != nil && n.Range.Contains(offset); {
		path = append(path, n)
		var next *Node
		for _, c := range n.Children {
			if c.Range.Contains(offset) {
				next = c
				break
			}
		}
		n = next
	}
	return path
}

// NodeAt returns the innermost node containing offset, or nil if offset is
// outside the source.
func (t *Tree) NodeAt(offset int) *Node {
	path := t.PathAt(offset)
	if len(path) == 0 {
		return nil
	}
	return path[len(path)-1]
}

// Text returns the source text covered by n.
func Text(src string, n *Node) string {
	return src[n.Range.StartOffset:n.Range.EndOffset]
}

// String renders the tree as an indented outline, one node per line.
func (t *Tree) String() string {
	var sb strings.Builder
	t.Walk(func(n *Node, depth int) bool {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(n.describe())
		sb.WriteByte('\n')
		return true
	})
	return sb.String()
}
