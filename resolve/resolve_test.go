package resolve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dennwc/webidlstruct/ast"
	"github.com/dennwc/webidlstruct/idl"
	"github.com/dennwc/webidlstruct/structure"
)

var sources = []string{
	`interface EventTarget {};
interface Node : EventTarget {};
dictionary Init {};
interface mixin Slotted {};`,
	`interface Element : Node {};
interface Text : Node {};
dictionary EventInit : Init {};
Element includes Slotted;
partial interface Node {};
namespace console {};
partial namespace console {};
interface Loop : Loop {};`,
}

func corpus(t *testing.T) ([]*ast.File, []*idl.Result) {
	var files []*ast.File
	var results []*idl.Result
	for _, src := range sources {
		res := idl.Parse(context.Background(), "test.webidl", src)
		require.Empty(t, res.Errors)
		files = append(files, res.File)
		results = append(results, res)
	}
	return files, results
}

func values(ids []ast.Identifier) []string {
	var out []string
	for _, id := range ids {
		out = append(out, id.Value)
	}
	return out
}

func TestResolve(t *testing.T) {
	files, _ := corpus(t)

	tests := []struct {
		kind Kind
		name string
		want []string
	}{
		{ParentInterface, "Node", []string{"Node"}},
		{ParentInterface, "Missing", nil},
		{ParentInterface, "Loop", nil},
		{ChildInterfaces, "Node", []string{"Element", "Text"}},
		{ChildInterfaces, "Text", nil},
		{ParentDictionary, "Init", []string{"Init"}},
		{ChildDictionaries, "Init", []string{"EventInit"}},
		{Mixin, "Slotted", []string{"Slotted"}},
		{Mixin, "Node", nil},
		{Namespace, "console", []string{"console"}},
	}
	for _, test := range tests {
		t.Run(test.kind.String()+"/"+test.name, func(t *testing.T) {
			assert.Equal(t, test.want, values(Resolve(files, test.kind, test.name)))
		})
	}
}

func TestLookupReportsFile(t *testing.T) {
	files, _ := corpus(t)
	matches := Lookup(files, ChildInterfaces, "Node")
	require.Len(t, matches, 2)
	assert.Equal(t, 1, matches[0].File)
	assert.IsType(t, &ast.Interface{}, matches[0].Definition)

	assert.Empty(t, Lookup([]*ast.File{nil}, Mixin, "Slotted"))
}

func TestKindForRole(t *testing.T) {
	tests := []struct {
		def  ast.Definition
		role structure.Role
		want Kind
		ok   bool
	}{
		{&ast.Interface{}, structure.RoleInheritance, ParentInterface, true},
		{&ast.Dictionary{}, structure.RoleInheritance, ParentDictionary, true},
		{&ast.PartialInterface{}, structure.RolePartialTarget, ParentInterface, true},
		{&ast.PartialDictionary{}, structure.RolePartialTarget, ParentDictionary, true},
		{&ast.PartialMixin{}, structure.RolePartialTarget, Mixin, true},
		{&ast.PartialNamespace{}, structure.RolePartialTarget, Namespace, true},
		{&ast.Includes{}, structure.RoleIncludesInterface, ParentInterface, true},
		{&ast.Includes{}, structure.RoleIncludesMixin, Mixin, true},
		{&ast.Interface{}, structure.RoleOwnName, ChildInterfaces, true},
		{&ast.Dictionary{}, structure.RoleOwnName, ChildDictionaries, true},
		{&ast.Enum{}, structure.RoleOwnName, 0, false},
		{&ast.Interface{}, structure.RoleMemberName, 0, false},
	}
	for _, test := range tests {
		kind, ok := KindForRole(test.def, test.role)
		assert.Equal(t, test.ok, ok, "%T %v", test.def, test.role)
		if test.ok {
			assert.Equal(t, test.want, kind, "%T %v", test.def, test.role)
		}
	}
}

func TestReference(t *testing.T) {
	files, results := corpus(t)

	var got []string
	results[1].Tree.Walk(func(n *structure.Node, _ int) bool {
		if n.Kind != structure.KindName {
			return true
		}
		for _, m := range Reference(files, n) {
			got = append(got, n.Role.String()+":"+n.Identifier.Value+"->"+m.Identifier.Value)
		}
		return true
	})
	assert.Equal(t, []string{
		"inheritance:Node->Node",
		"inheritance:Node->Node",
		"inheritance:Init->Init",
		"includesInterface:Element->Element",
		"includesMixin:Slotted->Slotted",
		"partialTarget:Node->Node",
		"partialTarget:console->console",
		"ownName:Loop->Loop",
	}, got)

	assert.Nil(t, Reference(files, nil))
	assert.Nil(t, Reference(files, &structure.Node{Kind: structure.KindToken}))
}

func TestParseKind(t *testing.T) {
	for k := range kindNames {
		got, ok := ParseKind(k.String())
		require.True(t, ok)
		assert.Equal(t, k, got)
	}
	_, ok := ParseKind("nope")
	assert.False(t, ok)
}
