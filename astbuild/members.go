package astbuild

import (
	"github.com/dennwc/webidlstruct/ast"
	"github.com/dennwc/webidlstruct/parser"
)

// members builds the body members held by the chainRule chain under parent.
// Each member is isolated: one that faults is replaced by an
// ast.BrokenMember covering its tokens.
func (b *builder) members(parent *parser.Node, chainRule parser.Rule) []ast.Member {
	var out []ast.Member
	for elem := parent.Child(chainRule); elem != nil; elem = elem.Child(chainRule) {
		rng, ok := headRange(elem, chainRule)
		if !ok {
			continue
		}
		base := ast.BaseNode{Range: rng}

		var m ast.Member
		err := isolate(func() {
			base.ExtendedAttributes = b.extendedAttributes(elem.Child(parser.RuleExtendedAttributeList))
			m = b.member(b.memberNode(elem), base)
		})
		if err != nil {
			b.log.Debug().Err(err).Int("line", rng.StartLine).Int("column", rng.StartColumn).
				Msg("member replaced by placeholder")
			m = &ast.BrokenMember{BaseNode: ast.BaseNode{Range: rng}}
		}
		out = append(out, m)
	}
	return out
}

// dictionaryMembers builds the members of a dictionary body. A member that
// faults is left out.
func (b *builder) dictionaryMembers(parent *parser.Node) []*ast.DictionaryMember {
	var out []*ast.DictionaryMember
	for elem := parent.Child(parser.RuleDictionaryMembers); elem != nil; elem = elem.Child(parser.RuleDictionaryMembers) {
		var m *ast.DictionaryMember
		err := isolate(func() {
			m = b.dictionaryMember(elem)
		})
		if err != nil {
			b.log.Debug().Err(err).Msg("dictionary member dropped")
			continue
		}
		out = append(out, m)
	}
	return out
}

func (b *builder) dictionaryMember(elem *parser.Node) *ast.DictionaryMember {
	member := b.must(elem.Child(parser.RuleDictionaryMember), "dictionary member")
	rest := b.must(member.Child(parser.RuleDictionaryMemberRest), "dictionary member")

	m := &ast.DictionaryMember{
		BaseNode: ast.BaseNode{
			Range:              b.headRange(elem, parser.RuleDictionaryMembers),
			ExtendedAttributes: b.extendedAttributes(elem.Child(parser.RuleExtendedAttributeList)),
		},
		Name: b.identifier(rest),
	}
	if rest.Keyword("required") != nil {
		m.Required = true
		m.Type = b.typeWithExtendedAttributes(b.must(rest.Child(parser.RuleTypeWithExtendedAttributes), "member type"))
	} else {
		m.Type = b.typ(b.must(rest.Child(parser.RuleType), "member type"), nil)
		m.DefaultValue = b.defaultValue(rest)
	}
	return m
}

// memberNode returns the member production of a chain element.
func (b *builder) memberNode(elem *parser.Node) *parser.Node {
	for _, c := range elem.Children {
		switch c.Rule {
		case parser.RuleInterfaceMember, parser.RulePartialInterfaceMember,
			parser.RuleCallbackInterfaceMember, parser.RuleMixinMember, parser.RuleNamespaceMember:
			return c
		}
	}
	b.fail("%v has no member", elem.Rule)
	return nil
}

// member builds the member produced by n. base carries the range and
// extended attributes of the enclosing chain element.
func (b *builder) member(n *parser.Node, base ast.BaseNode) ast.Member {
	switch n.Rule {
	case parser.RuleInterfaceMember, parser.RulePartialInterfaceMember, parser.RuleCallbackInterfaceMember:
		return b.member(b.production(n), base)

	case parser.RuleMixinMember, parser.RuleNamespaceMember:
		inner := b.production(n)
		if inner.Rule != parser.RuleAttributeRest {
			return b.member(inner, base)
		}
		attr := b.attribute(inner, base)
		// namespace attributes are always readonly
		if n.Keyword("readonly") != nil || n.Rule == parser.RuleNamespaceMember {
			attr = attr.WithReadonly()
		}
		return attr

	case parser.RuleConstructor:
		if n.Terminal(parser.TokenLeftParen) == nil {
			b.fail("constructor without arguments")
		}
		return &ast.Constructor{BaseNode: base, Arguments: b.parenArguments(n)}

	case parser.RuleConst:
		return b.constant(n, base)

	case parser.RuleOperation:
		if special := n.Child(parser.RuleSpecialOperation); special != nil {
			op := b.operation(b.must(special.Child(parser.RuleRegularOperation), "operation"), base)
			kw := b.word(b.must(special.Child(parser.RuleSpecial), "special keyword"))
			switch kw.Value {
			case "getter":
				return op.WithOperationType(ast.OperationGetter)
			case "setter":
				return op.WithOperationType(ast.OperationSetter)
			case "deleter":
				return op.WithOperationType(ast.OperationDeleter)
			}
			b.fail("unknown special operation %q", kw.Value)
		}
		return b.operation(b.must(n.Child(parser.RuleRegularOperation), "operation"), base)

	case parser.RuleRegularOperation:
		return b.operation(n, base)

	case parser.RuleStringifier:
		return b.stringifier(n, base)

	case parser.RuleStaticMember:
		rest := b.must(n.Child(parser.RuleStaticMemberRest), "static member")
		if attrRest := rest.Child(parser.RuleAttributeRest); attrRest != nil {
			attr := b.attribute(attrRest, base).WithStatic()
			if rest.Keyword("readonly") != nil {
				attr = attr.WithReadonly()
			}
			return attr
		}
		return b.operation(b.must(rest.Child(parser.RuleRegularOperation), "static operation"), base).WithStatic()

	case parser.RuleIterable:
		key, value := b.typeArguments(n)
		return &ast.Iterable{BaseNode: base, KeyType: key, ValueType: value}

	case parser.RuleAsyncIterable:
		key, value := b.typeArguments(n)
		it := &ast.AsyncIterable{BaseNode: base, KeyType: key, ValueType: value}
		if args := n.Child(parser.RuleOptionalArgumentList); args != nil {
			it.Arguments = b.parenArguments(args)
		}
		return it

	case parser.RuleReadOnlyMember:
		rest := b.production(b.must(n.Child(parser.RuleReadOnlyMemberRest), "readonly member"))
		switch rest.Rule {
		case parser.RuleAttributeRest:
			return b.attribute(rest, base).WithReadonly()
		case parser.RuleMaplikeRest:
			return b.maplike(rest, base).WithReadonly()
		case parser.RuleSetlikeRest:
			return b.setlike(rest, base).WithReadonly()
		}
		b.fail("unexpected readonly member %v", rest.Rule)

	case parser.RuleReadWriteAttribute:
		return b.attribute(b.must(n.Child(parser.RuleAttributeRest), "attribute"), base)

	case parser.RuleReadWriteMaplike:
		return b.maplike(b.must(n.Child(parser.RuleMaplikeRest), "maplike"), base)

	case parser.RuleReadWriteSetlike:
		return b.setlike(b.must(n.Child(parser.RuleSetlikeRest), "setlike"), base)

	case parser.RuleInheritAttribute:
		return b.attribute(b.must(n.Child(parser.RuleAttributeRest), "attribute"), base).WithInherit()
	}

	b.fail("unexpected member %v", n.Rule)
	return nil
}

// stringifier builds `stringifier;`, `stringifier attribute ...` and
// `stringifier Type name(...)`. The bare form is an unnamed operation
// returning DOMString.
func (b *builder) stringifier(n *parser.Node, base ast.BaseNode) ast.Member {
	rest := b.must(n.Child(parser.RuleStringifierRest), "stringifier")
	if attrRest := rest.Child(parser.RuleAttributeRest); attrRest != nil {
		attr := b.attribute(attrRest, base).WithStringifier()
		if rest.Keyword("readonly") != nil {
			attr = attr.WithReadonly()
		}
		return attr
	}
	if op := rest.Child(parser.RuleRegularOperation); op != nil {
		return b.operation(op, base).WithOperationType(ast.OperationStringifier)
	}
	if rest.Terminal(parser.TokenSemicolon) == nil {
		b.fail("incomplete stringifier")
	}
	kw := n.Keyword("stringifier")
	if kw == nil {
		b.fail("stringifier without keyword")
	}
	return &ast.Operation{
		BaseNode: base,
		ReturnType: &ast.PrimitiveType{
			BaseNode: ast.BaseNode{Range: spanOf(kw, kw)},
			Kind:     ast.DOMString,
		},
		OperationType: ast.OperationStringifier,
	}
}

func (b *builder) attribute(n *parser.Node, base ast.BaseNode) *ast.Attribute {
	if n.Keyword("attribute") == nil {
		b.fail("attribute without 'attribute'")
	}
	return &ast.Attribute{
		BaseNode: base,
		Type:     b.typeWithExtendedAttributes(b.must(n.Child(parser.RuleTypeWithExtendedAttributes), "attribute type")),
		Name:     b.word(b.must(n.Child(parser.RuleAttributeName), "attribute name")),
	}
}

// operation builds `ReturnType name?(Arguments);`.
func (b *builder) operation(n *parser.Node, base ast.BaseNode) *ast.Operation {
	rest := b.must(n.Child(parser.RuleOperationRest), "operation")
	if rest.Terminal(parser.TokenLeftParen) == nil {
		b.fail("operation without arguments")
	}
	op := &ast.Operation{
		BaseNode:   base,
		ReturnType: b.typ(b.must(n.Child(parser.RuleType), "return type"), nil),
		Arguments:  b.parenArguments(rest),
	}
	if name := rest.Child(parser.RuleOperationName); name != nil {
		id := b.word(name)
		op.Name = &id
	}
	return op
}

func (b *builder) constant(n *parser.Node, base ast.BaseNode) *ast.Constant {
	ct := b.must(n.Child(parser.RuleConstType), "constant type")
	var typ ast.Type
	if prim := ct.Child(parser.RulePrimitiveType); prim != nil {
		typ = b.primitive(prim, b.rangeOf(prim), nil)
	} else {
		id := b.identifier(ct)
		typ = &ast.IdentifierType{BaseNode: ast.BaseNode{Range: id.Range}, Name: id}
	}

	value := b.must(n.Child(parser.RuleConstValue), "constant value")
	text := value.Text()
	if text == "" {
		b.fail("constant without value")
	}
	return &ast.Constant{
		BaseNode: base,
		Name:     b.identifier(n),
		Type:     typ,
		Value:    text,
	}
}

func (b *builder) maplike(n *parser.Node, base ast.BaseNode) *ast.Maplike {
	types := n.ChildrenOf(parser.RuleTypeWithExtendedAttributes)
	if len(types) != 2 {
		b.fail("maplike needs 2 types, got %d", len(types))
	}
	return &ast.Maplike{
		BaseNode:  base,
		KeyType:   b.typeWithExtendedAttributes(types[0]),
		ValueType: b.typeWithExtendedAttributes(types[1]),
	}
}

func (b *builder) setlike(n *parser.Node, base ast.BaseNode) *ast.Setlike {
	return &ast.Setlike{
		BaseNode:    base,
		ElementType: b.typeWithExtendedAttributes(b.must(n.Child(parser.RuleTypeWithExtendedAttributes), "setlike type")),
	}
}

// typeArguments returns the types of `<Value>` or `<Key, Value>`.
func (b *builder) typeArguments(n *parser.Node) (key, value ast.Type) {
	first := b.typeWithExtendedAttributes(b.must(n.Child(parser.RuleTypeWithExtendedAttributes), "type argument"))
	second := n.Child(parser.RuleOptionalType)
	if second == nil {
		return nil, first
	}
	return first, b.typeWithExtendedAttributes(b.must(second.Child(parser.RuleTypeWithExtendedAttributes), "value type"))
}

// parenArguments builds the argument list of '(' ArgumentList? ')' found
// directly under n.
func (b *builder) parenArguments(n *parser.Node) []*ast.Argument {
	var out []*ast.Argument
	list := n.Child(parser.RuleArgumentList)
	if list == nil {
		return nil
	}
	for _, arg := range list.ChildrenOf(parser.RuleArgument) {
		out = append(out, b.argument(arg))
	}
	for tail := list.Child(parser.RuleArguments); tail != nil; tail = tail.Child(parser.RuleArguments) {
		for _, arg := range tail.ChildrenOf(parser.RuleArgument) {
			out = append(out, b.argument(arg))
		}
	}
	return out
}

func (b *builder) argument(n *parser.Node) *ast.Argument {
	rest := b.must(n.Child(parser.RuleArgumentRest), "argument")
	arg := &ast.Argument{
		BaseNode: ast.BaseNode{
			Range:              b.rangeOf(n),
			ExtendedAttributes: b.extendedAttributes(n.Child(parser.RuleExtendedAttributeList)),
		},
		Name: b.word(b.must(rest.Child(parser.RuleArgumentName), "argument name")),
	}
	if rest.Keyword("optional") != nil {
		arg.Optional = true
		arg.Type = b.typeWithExtendedAttributes(b.must(rest.Child(parser.RuleTypeWithExtendedAttributes), "argument type"))
		arg.DefaultValue = b.defaultValue(rest)
		return arg
	}
	arg.Type = b.typ(b.must(rest.Child(parser.RuleType), "argument type"), nil)
	arg.Variadic = rest.Terminal(parser.TokenEllipsis) != nil
	return arg
}

// defaultValue returns the verbatim text after '=' if n has a default.
func (b *builder) defaultValue(n *parser.Node) *string {
	def := n.Child(parser.RuleDefault)
	if def == nil {
		return nil
	}
	text := b.must(def.Child(parser.RuleDefaultValue), "default value").Text()
	if text == "" {
		b.fail("empty default value")
	}
	return &text
}
