package astbuild

import (
	"github.com/dennwc/webidlstruct/ast"
	"github.com/dennwc/webidlstruct/parser"
)

// extendedAttributes builds the attributes of an extended attribute list in
// source order. A nil list yields nil.
func (b *builder) extendedAttributes(list *parser.Node) []*ast.ExtendedAttribute {
	if list == nil {
		return nil
	}
	var out []*ast.ExtendedAttribute
	for _, n := range list.ChildrenOf(parser.RuleExtendedAttribute) {
		out = append(out, b.extendedAttribute(n))
	}
	return out
}

func (b *builder) extendedAttribute(n *parser.Node) *ast.ExtendedAttribute {
	shape := b.production(n)
	words := shape.Words()
	if len(words) == 0 {
		b.fail("extended attribute without a name")
	}
	attr := &ast.ExtendedAttribute{
		Name:  identifierOf(words[0]),
		Range: b.rangeOf(n),
	}

	switch shape.Rule {
	case parser.RuleExtendedAttributeNoArgs:
		attr.Kind = ast.NoArgs{}

	case parser.RuleExtendedAttributeArgList:
		attr.Kind = &ast.ArgList{Arguments: b.parenArguments(shape)}

	case parser.RuleExtendedAttributeNamedArgList:
		if len(words) != 2 {
			b.fail("named argument list needs 2 identifiers, got %d", len(words))
		}
		if shape.Terminal(parser.TokenLeftParen) == nil {
			b.fail("named argument list without arguments")
		}
		attr.Kind = &ast.NamedArgList{
			Identifier: identifierOf(words[1]),
			Arguments:  b.parenArguments(shape),
		}

	case parser.RuleExtendedAttributeIdent:
		if len(words) != 2 {
			b.fail("identifier extended attribute needs 2 identifiers, got %d", len(words))
		}
		attr.Kind = &ast.Ident{Value: identifierOf(words[1])}

	case parser.RuleExtendedAttributeString:
		attr.Kind = &ast.StringArg{Value: b.value(shape, parser.TokenString)}

	case parser.RuleExtendedAttributeDecimal:
		attr.Kind = &ast.Decimal{Value: b.value(shape, parser.TokenDecimal)}

	case parser.RuleExtendedAttributeInteger:
		attr.Kind = &ast.Integer{Value: b.value(shape, parser.TokenInteger)}

	case parser.RuleExtendedAttributeWildcard:
		b.value(shape, parser.TokenAsterisk)
		attr.Kind = ast.Wildcard{}

	case parser.RuleExtendedAttributeIdentList:
		list := b.must(shape.Child(parser.RuleIdentifierList), "identifier list")
		var values []ast.Identifier
		b.walkList(list, parser.RuleIdentifiers, func(n *parser.Node) {
			for _, t := range n.Words() {
				values = append(values, identifierOf(t))
			}
		})
		attr.Kind = &ast.IdentList{Values: values}

	case parser.RuleExtendedAttributeIntegerList:
		list := b.must(shape.Child(parser.RuleIntegerList), "integer list")
		var values []string
		b.walkList(list, parser.RuleIntegers, func(n *parser.Node) {
			for _, t := range n.Terminals(parser.TokenInteger) {
				values = append(values, t.Text)
			}
		})
		attr.Kind = &ast.IntegerList{Values: values}

	case parser.RuleExtendedAttributeStringList:
		list := b.must(shape.Child(parser.RuleStringList), "string list")
		var values []string
		b.walkList(list, parser.RuleStrings, func(n *parser.Node) {
			for _, t := range n.Terminals(parser.TokenString) {
				values = append(values, t.Text)
			}
		})
		attr.Kind = &ast.StringList{Values: values}

	default:
		b.fail("unexpected extended attribute %v", shape.Rule)
	}
	return attr
}

// value returns the text of the single value token of a `Name=value` shape.
func (b *builder) value(n *parser.Node, kind parser.TokenKind) string {
	t := n.Terminal(kind)
	if t == nil {
		b.fail("%v has no %v value", n.Rule, kind)
	}
	return t.Text
}

// walkList calls fn for the head of a comma list and each element of its
// tail chain, in order. Empty lists fault.
func (b *builder) walkList(list *parser.Node, tail parser.Rule, fn func(n *parser.Node)) {
	if list.FirstToken() == nil {
		b.fail("empty %v", list.Rule)
	}
	for n := list; n != nil; n = n.Child(tail) {
		fn(n)
	}
}
