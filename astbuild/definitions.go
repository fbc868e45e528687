package astbuild

import (
	"github.com/dennwc/webidlstruct/ast"
	"github.com/dennwc/webidlstruct/parser"
)

// definition builds the definition held by one element of the definitions
// chain. The range covers the element's extended attributes and the
// definition itself.
func (b *builder) definition(entry *parser.Node) ast.Definition {
	base := ast.BaseNode{
		Range:              b.headRange(entry, parser.RuleDefinitions),
		ExtendedAttributes: b.extendedAttributes(entry.Child(parser.RuleExtendedAttributeList)),
	}

	def := b.must(entry.Child(parser.RuleDefinition), "definition")
	n := b.production(def)
	switch n.Rule {
	case parser.RuleCallbackOrInterfaceOrMixin:
		return b.callbackOrInterfaceOrMixin(n, base)
	case parser.RuleNamespace:
		return b.namespace(n, base)
	case parser.RulePartial:
		return b.partial(n, base)
	case parser.RuleDictionary:
		return b.dictionary(n, base)
	case parser.RuleEnum:
		return b.enum(n, base)
	case parser.RuleTypedef:
		return &ast.Typedef{
			BaseNode:   base,
			Type:       b.typeWithExtendedAttributes(b.must(n.Child(parser.RuleTypeWithExtendedAttributes), "typedef type")),
			Identifier: b.identifier(n),
		}
	case parser.RuleIncludesStatement:
		names := n.Terminals(parser.TokenIdentifier)
		if len(names) != 2 {
			b.fail("includes statement needs 2 identifiers, got %d", len(names))
		}
		return &ast.Includes{
			BaseNode:      base,
			InterfaceName: identifierOf(names[0]),
			MixinName:     identifierOf(names[1]),
		}
	}
	b.fail("unexpected definition %v", n.Rule)
	return nil
}

func (b *builder) callbackOrInterfaceOrMixin(n *parser.Node, base ast.BaseNode) ast.Definition {
	if rest := n.Child(parser.RuleCallbackRestOrInterface); rest != nil {
		if n.Keyword("callback") == nil {
			b.fail("callback definition without 'callback'")
		}
		if rest.Keyword("interface") != nil {
			return &ast.CallbackInterface{
				BaseNode:   base,
				Identifier: b.identifier(rest),
				Members:    b.members(rest, parser.RuleCallbackInterfaceMembers),
			}
		}
		cb := b.must(rest.Child(parser.RuleCallbackRest), "callback function")
		return &ast.CallbackFunction{
			BaseNode:   base,
			Identifier: b.identifier(cb),
			ReturnType: b.typ(b.must(cb.Child(parser.RuleType), "return type"), nil),
			Arguments:  b.parenArguments(cb),
		}
	}

	if n.Keyword("interface") == nil {
		b.fail("interface definition without 'interface'")
	}
	rest := b.production(b.must(n.Child(parser.RuleInterfaceOrMixin), "interface"))
	switch rest.Rule {
	case parser.RuleMixinRest:
		return &ast.Mixin{
			BaseNode:   base,
			Identifier: b.identifier(rest),
			Members:    b.members(rest, parser.RuleMixinMembers),
		}
	case parser.RuleInterfaceRest:
		return &ast.Interface{
			BaseNode:    base,
			Identifier:  b.identifier(rest),
			Inheritance: b.inheritance(rest),
			Members:     b.members(rest, parser.RuleInterfaceMembers),
		}
	}
	b.fail("unexpected interface form %v", rest.Rule)
	return nil
}

func (b *builder) inheritance(n *parser.Node) *ast.Identifier {
	inh := n.Child(parser.RuleInheritance)
	if inh == nil {
		return nil
	}
	id := b.identifier(inh)
	return &id
}

func (b *builder) namespace(n *parser.Node, base ast.BaseNode) *ast.Namespace {
	return &ast.Namespace{
		BaseNode:   base,
		Identifier: b.identifier(n),
		Members:    b.members(n, parser.RuleNamespaceMembers),
	}
}

func (b *builder) partial(n *parser.Node, base ast.BaseNode) ast.Definition {
	def := b.must(n.Child(parser.RulePartialDefinition), "partial definition")
	rest := b.production(def)
	switch rest.Rule {
	case parser.RulePartialInterfaceOrPartialMixin:
		inner := b.production(rest)
		switch inner.Rule {
		case parser.RuleMixinRest:
			return &ast.PartialMixin{
				BaseNode:   base,
				Identifier: b.identifier(inner),
				Members:    b.members(inner, parser.RuleMixinMembers),
			}
		case parser.RulePartialInterfaceRest:
			return &ast.PartialInterface{
				BaseNode:   base,
				Identifier: b.identifier(inner),
				Members:    b.members(inner, parser.RulePartialInterfaceMembers),
			}
		}
		b.fail("unexpected partial interface form %v", inner.Rule)
	case parser.RulePartialDictionary:
		return &ast.PartialDictionary{
			BaseNode:   base,
			Identifier: b.identifier(rest),
			Members:    b.dictionaryMembers(rest),
		}
	case parser.RuleNamespace:
		ns := b.namespace(rest, base)
		return &ast.PartialNamespace{
			BaseNode:   ns.BaseNode,
			Identifier: ns.Identifier,
			Members:    ns.Members,
		}
	}
	b.fail("unexpected partial definition %v", rest.Rule)
	return nil
}

func (b *builder) dictionary(n *parser.Node, base ast.BaseNode) *ast.Dictionary {
	return &ast.Dictionary{
		BaseNode:    base,
		Identifier:  b.identifier(n),
		Inheritance: b.inheritance(n),
		Members:     b.dictionaryMembers(n),
	}
}

// enum collects the string values of the comma-separated list, unquoted.
// The list is a chain alternating comma and string elements.
func (b *builder) enum(n *parser.Node, base ast.BaseNode) *ast.Enum {
	enum := &ast.Enum{
		BaseNode:   base,
		Identifier: b.identifier(n),
	}
	for cur := n.Child(parser.RuleEnumValueList); cur != nil; {
		for _, t := range cur.Terminals(parser.TokenString) {
			enum.Values = append(enum.Values, unquote(t.Text))
		}
		if next := cur.Child(parser.RuleEnumValueListComma); next != nil {
			cur = next
		} else {
			cur = cur.Child(parser.RuleEnumValueListString)
		}
	}
	return enum
}

// unquote strips the surrounding double quotes of a string literal. WebIDL
// strings have no escape sequences.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
