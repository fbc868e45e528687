package astbuild

import (
	"strings"

	"github.com/dennwc/webidlstruct/ast"
	"github.com/dennwc/webidlstruct/parser"
)

// typeWithExtendedAttributes builds the type of n, attaching the extended
// attributes written in front of it. On a nullable type they go to the inner
// type.
func (b *builder) typeWithExtendedAttributes(n *parser.Node) ast.Type {
	attrs := b.extendedAttributes(n.Child(parser.RuleExtendedAttributeList))
	return b.typ(b.must(n.Child(parser.RuleType), "type"), attrs)
}

func (b *builder) typ(n *parser.Node, attrs []*ast.ExtendedAttribute) ast.Type {
	if u := n.Child(parser.RuleUnionType); u != nil {
		return b.nullable(n, b.union(u, attrs))
	}

	single := b.must(n.Child(parser.RuleSingleType), "type")
	if kw := single.Keyword("any"); kw != nil {
		return &ast.PrimitiveType{
			BaseNode: ast.BaseNode{Range: spanOf(kw, kw), ExtendedAttributes: attrs},
			Kind:     ast.Any,
		}
	}
	if p := single.Child(parser.RulePromiseType); p != nil {
		return &ast.PromiseType{
			BaseNode: ast.BaseNode{Range: b.rangeOf(p), ExtendedAttributes: attrs},
			Inner:    b.typ(b.must(p.Child(parser.RuleType), "promise type"), nil),
		}
	}
	return b.distinguishable(b.must(single.Child(parser.RuleDistinguishableType), "type"), attrs)
}

// nullable wraps inner if n ends with '?'. The wrapper covers all of n.
func (b *builder) nullable(n *parser.Node, inner ast.Type) ast.Type {
	if n.Child(parser.RuleNull) == nil {
		return inner
	}
	return &ast.NullableType{
		BaseNode: ast.BaseNode{Range: b.rangeOf(n)},
		Inner:    inner,
	}
}

func (b *builder) distinguishable(n *parser.Node, attrs []*ast.ExtendedAttribute) ast.Type {
	base := ast.BaseNode{Range: b.headRange(n, parser.RuleNull), ExtendedAttributes: attrs}

	var t ast.Type
	switch {
	case n.Child(parser.RulePrimitiveType) != nil:
		t = b.primitive(n.Child(parser.RulePrimitiveType), base.Range, attrs)
	case n.Child(parser.RuleStringType) != nil:
		t = b.primitive(n.Child(parser.RuleStringType), base.Range, attrs)
	case n.Child(parser.RuleBufferRelatedType) != nil:
		t = b.primitive(n.Child(parser.RuleBufferRelatedType), base.Range, attrs)
	case n.Child(parser.RuleRecordType) != nil:
		rec := n.Child(parser.RuleRecordType)
		key := b.must(rec.Child(parser.RuleStringType), "record key type")
		t = &ast.RecordType{
			BaseNode:  base,
			KeyType:   b.primitive(key, b.rangeOf(key), nil),
			ValueType: b.typeWithExtendedAttributes(b.must(rec.Child(parser.RuleTypeWithExtendedAttributes), "record value type")),
		}
	case n.Terminal(parser.TokenIdentifier) != nil:
		t = &ast.IdentifierType{BaseNode: base, Name: b.identifier(n)}
	default:
		t = b.keywordType(n, base)
	}
	return b.nullable(n, t)
}

// keywordType builds the generic wrappers and the keyword-only leaves.
func (b *builder) keywordType(n *parser.Node, base ast.BaseNode) ast.Type {
	kw := b.word(n).Value
	switch kw {
	case "sequence", "async_sequence", "FrozenArray", "ObservableArray":
		inner := b.typeWithExtendedAttributes(b.must(n.Child(parser.RuleTypeWithExtendedAttributes), kw+" type"))
		switch kw {
		case "sequence":
			return &ast.SequenceType{BaseNode: base, Inner: inner}
		case "async_sequence":
			return &ast.AsyncSequenceType{BaseNode: base, Inner: inner}
		case "FrozenArray":
			return &ast.FrozenArrayType{BaseNode: base, Inner: inner}
		default:
			return &ast.ObservableArrayType{BaseNode: base, Inner: inner}
		}
	}
	kind, ok := ast.LookupPrimitive(kw)
	if !ok {
		b.fail("unknown type %q", kw)
	}
	return &ast.PrimitiveType{BaseNode: base, Kind: kind}
}

// primitive builds the leaf type spelled by the words of n.
func (b *builder) primitive(n *parser.Node, rng ast.SourceRange, attrs []*ast.ExtendedAttribute) *ast.PrimitiveType {
	var words []string
	for _, t := range n.Words() {
		words = append(words, t.Text)
	}
	name := strings.Join(words, " ")
	kind, ok := ast.LookupPrimitive(name)
	if !ok {
		b.fail("unknown primitive type %q", name)
	}
	return &ast.PrimitiveType{
		BaseNode: ast.BaseNode{Range: rng, ExtendedAttributes: attrs},
		Kind:     kind,
	}
}

// union flattens nested unions into a single option list. A nested union
// marked nullable stays a single option.
func (b *builder) union(n *parser.Node, attrs []*ast.ExtendedAttribute) *ast.UnionType {
	u := &ast.UnionType{BaseNode: ast.BaseNode{Range: b.headRange(n, parser.RuleNull), ExtendedAttributes: attrs}}

	members := n.ChildrenOf(parser.RuleUnionMemberType)
	for tail := n.Child(parser.RuleUnionMemberTypes); tail != nil; tail = tail.Child(parser.RuleUnionMemberTypes) {
		members = append(members, tail.ChildrenOf(parser.RuleUnionMemberType)...)
	}
	for _, m := range members {
		u.Options = append(u.Options, b.unionMember(m)...)
	}
	if len(u.Options) < 2 {
		b.fail("union needs at least 2 member types, got %d", len(u.Options))
	}
	return u
}

func (b *builder) unionMember(n *parser.Node) []ast.Type {
	if nested := n.Child(parser.RuleUnionType); nested != nil {
		u := b.union(nested, nil)
		if n.Child(parser.RuleNull) != nil {
			return []ast.Type{b.nullable(n, u)}
		}
		return u.Options
	}
	attrs := b.extendedAttributes(n.Child(parser.RuleExtendedAttributeList))
	return []ast.Type{b.distinguishable(b.must(n.Child(parser.RuleDistinguishableType), "union member type"), attrs)}
}
