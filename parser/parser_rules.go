// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

// Parse parses the given WebIDL source into a concrete syntax tree. Syntax
// errors are reported to listener as they are found and parsing always runs
// to the end of input. The complete token stream, trivia included and EOF
// excluded, is returned alongside the tree.
func Parse(input string, listener ErrorListener) (*Node, []Token) {
	config := parserConfig{
		ignoredTokenTypes: map[TokenKind]struct{}{
			TokenWhitespace:   {},
			TokenLineComment:  {},
			TokenBlockComment: {},
		},
	}

	p := buildParser(lex(input), config, listener)
	root := p.consumeTopLevel()
	return root, p.lex.drain()
}

var definitionKeywords = []string{
	"interface", "partial", "callback", "dictionary", "namespace", "enum", "typedef",
}

// typeKeywords are the keywords that may start a type.
var typeKeywords = []string{
	"any", "boolean", "byte", "bigint", "double", "float", "long", "octet",
	"short", "unsigned", "unrestricted", "object", "symbol", "undefined", "void",
	"sequence", "async_sequence", "record", "Promise", "FrozenArray", "ObservableArray",
	"ByteString", "DOMString", "USVString",
	"ArrayBuffer", "SharedArrayBuffer", "DataView", "Int8Array", "Int16Array",
	"Int32Array", "Uint8Array", "Uint16Array", "Uint32Array", "Uint8ClampedArray",
	"BigInt64Array", "BigUint64Array", "Float16Array", "Float32Array", "Float64Array",
}

var stringTypeKeywords = []string{"ByteString", "DOMString", "USVString"}

var bufferTypeKeywords = []string{
	"ArrayBuffer", "SharedArrayBuffer", "DataView", "Int8Array", "Int16Array",
	"Int32Array", "Uint8Array", "Uint16Array", "Uint32Array", "Uint8ClampedArray",
	"BigInt64Array", "BigUint64Array", "Float16Array", "Float32Array", "Float64Array",
}

// argumentNameKeywords may be used as argument names.
var argumentNameKeywords = []string{
	"async", "attribute", "callback", "const", "constructor", "deleter",
	"dictionary", "enum", "getter", "includes", "inherit", "interface", "iterable",
	"maplike", "mixin", "namespace", "partial", "readonly", "required", "setlike",
	"setter", "static", "stringifier", "typedef", "unrestricted",
}

// closeAll finishes the nodes of a right-recursive chain, innermost first.
func closeAll(finishes []func()) {
	for i := len(finishes) - 1; i >= 0; i-- {
		finishes[i]()
	}
}

// consumeTopLevel attempts to consume the top-level constructs of a WebIDL file.
func (p *sourceParser) consumeTopLevel() *Node {
	root := &Node{Rule: RuleFile}
	p.nodes.push(root)
	defer p.nodes.pop()

	// Start at the first token.
	p.consumeToken()

	var finishes []func()
	for !p.isToken(TokenEOF) {
		finishes = append(finishes, p.node(RuleDefinitions))
		p.tryConsumeExtendedAttributeList()
		if !p.consumeDefinition() {
			p.skipDefinition()
		}
	}
	closeAll(finishes)

	return root
}

func (p *sourceParser) atDefinitionKeyword() bool {
	return p.isKeyword(definitionKeywords...)
}

// skipDefinition skips tokens up to and including the next ';' outside braces,
// or up to the next definition keyword.
func (p *sourceParser) skipDefinition() {
	depth := 0
	p.skipUntil("a definition", func() bool {
		switch p.previousToken.Kind {
		case TokenLeftBrace:
			depth++
		case TokenRightBrace:
			if depth > 0 {
				depth--
			}
		case TokenSemicolon:
			if depth == 0 {
				return true
			}
		}
		return depth == 0 && p.atDefinitionKeyword()
	})
}

// consumeDefinition consumes a single definition, returning false without
// consuming anything if the current token cannot start one.
func (p *sourceParser) consumeDefinition() bool {
	if !p.atDefinitionKeyword() && !p.isToken(TokenIdentifier) {
		return false
	}

	defer p.node(RuleDefinition)()

	switch {
	case p.isKeyword("callback", "interface"):
		p.consumeCallbackOrInterfaceOrMixin()
	case p.isKeyword("partial"):
		p.consumePartial()
	case p.isKeyword("namespace"):
		p.consumeNamespace()
	case p.isKeyword("dictionary"):
		p.consumeDictionary(RuleDictionary)
	case p.isKeyword("enum"):
		p.consumeEnum()
	case p.isKeyword("typedef"):
		p.consumeTypedef()
	default:
		p.consumeIncludesStatement()
	}
	return true
}

// consumeBody consumes '{' members '}' ';'. Members form a right-recursive
// chain of listRule nodes.
func (p *sourceParser) consumeBody(listRule Rule, member func() bool) {
	if _, ok := p.consume(TokenLeftBrace); !ok {
		return
	}
	p.consumeMembers(listRule, member)
	p.consume(TokenRightBrace)
	p.consume(TokenSemicolon)
}

// consumeMembers consumes body members until the closing brace. A member
// that cannot be parsed is skipped into an error node within its chain element.
func (p *sourceParser) consumeMembers(listRule Rule, member func() bool) {
	var finishes []func()
	defer func() { closeAll(finishes) }()

	for !p.isToken(TokenRightBrace, TokenEOF) && !p.atDefinitionKeyword() {
		finishes = append(finishes, p.node(listRule))
		p.tryConsumeExtendedAttributeList()
		if !member() {
			p.skipMember()
		}
	}
}

// skipMember skips tokens up to and including the next ';' outside braces, or
// up to a closing brace or definition keyword.
func (p *sourceParser) skipMember() {
	if p.isToken(TokenRightBrace) || p.atDefinitionKeyword() {
		p.emitError("mismatched input %s expecting a member", p.currentToken.Display())
		return
	}
	depth := 0
	p.skipUntil("a member", func() bool {
		switch p.previousToken.Kind {
		case TokenLeftBrace:
			depth++
		case TokenRightBrace:
			if depth > 0 {
				depth--
			}
		case TokenSemicolon:
			if depth == 0 {
				return true
			}
		}
		return depth == 0 && (p.isToken(TokenRightBrace) || p.atDefinitionKeyword())
	})
}

func (p *sourceParser) consumeCallbackOrInterfaceOrMixin() {
	defer p.node(RuleCallbackOrInterfaceOrMixin)()

	if p.tryConsumeKeyword("callback") {
		p.consumeCallbackRestOrInterface()
		return
	}

	p.consumeKeyword("interface")
	p.consumeInterfaceOrMixin()
}

func (p *sourceParser) consumeCallbackRestOrInterface() {
	defer p.node(RuleCallbackRestOrInterface)()

	if p.tryConsumeKeyword("interface") {
		p.consumeIdentifier()
		p.consumeBody(RuleCallbackInterfaceMembers, p.consumeCallbackInterfaceMember)
		return
	}
	p.consumeCallbackRest()
}

// consumeCallbackRest consumes `Name = ReturnType (Arguments);`.
func (p *sourceParser) consumeCallbackRest() {
	defer p.node(RuleCallbackRest)()

	p.consumeIdentifier()
	p.consume(TokenEquals)
	p.consumeType()
	p.consumeParenArguments()
	p.consume(TokenSemicolon)
}

func (p *sourceParser) consumeInterfaceOrMixin() {
	defer p.node(RuleInterfaceOrMixin)()

	if p.isKeyword("mixin") {
		p.consumeMixinRest()
		return
	}
	p.consumeInterfaceRest()
}

func (p *sourceParser) consumeInterfaceRest() {
	defer p.node(RuleInterfaceRest)()

	p.consumeIdentifier()
	p.tryConsumeInheritance()
	p.consumeBody(RuleInterfaceMembers, p.consumeInterfaceMember)
}

func (p *sourceParser) tryConsumeInheritance() {
	if !p.isToken(TokenColon) {
		return
	}
	defer p.node(RuleInheritance)()
	p.take()
	p.consumeIdentifier()
}

func (p *sourceParser) consumeMixinRest() {
	defer p.node(RuleMixinRest)()

	p.consumeKeyword("mixin")
	p.consumeIdentifier()
	p.consumeBody(RuleMixinMembers, p.consumeMixinMember)
}

func (p *sourceParser) consumePartial() {
	defer p.node(RulePartial)()
	p.take()

	defer p.node(RulePartialDefinition)()
	switch {
	case p.isKeyword("interface"):
		p.take()
		defer p.node(RulePartialInterfaceOrPartialMixin)()
		if p.isKeyword("mixin") {
			p.consumeMixinRest()
		} else {
			p.consumePartialInterfaceRest()
		}
	case p.isKeyword("dictionary"):
		p.consumeDictionary(RulePartialDictionary)
	case p.isKeyword("namespace"):
		p.consumeNamespace()
	default:
		p.emitError("mismatched input %s expecting {'interface', 'dictionary', 'namespace'}", p.currentToken.Display())
	}
}

func (p *sourceParser) consumePartialInterfaceRest() {
	defer p.node(RulePartialInterfaceRest)()

	p.consumeIdentifier()
	p.consumeBody(RulePartialInterfaceMembers, p.consumePartialInterfaceMember)
}

func (p *sourceParser) consumeNamespace() {
	defer p.node(RuleNamespace)()

	p.consumeKeyword("namespace")
	p.consumeIdentifier()
	p.consumeBody(RuleNamespaceMembers, p.consumeNamespaceMember)
}

// consumeDictionary consumes a dictionary or, with RulePartialDictionary, a
// partial dictionary which may not inherit.
func (p *sourceParser) consumeDictionary(rule Rule) {
	defer p.node(rule)()

	p.consumeKeyword("dictionary")
	p.consumeIdentifier()
	if rule == RuleDictionary {
		p.tryConsumeInheritance()
	}
	p.consumeBody(RuleDictionaryMembers, p.consumeDictionaryMember)
}

func (p *sourceParser) consumeEnum() {
	defer p.node(RuleEnum)()

	p.take()
	p.consumeIdentifier()
	if _, ok := p.consume(TokenLeftBrace); !ok {
		return
	}
	p.consumeEnumValueList()
	p.consume(TokenRightBrace)
	p.consume(TokenSemicolon)
}

// consumeEnumValueList consumes the enum values, allowing a trailing comma.
func (p *sourceParser) consumeEnumValueList() {
	defer p.node(RuleEnumValueList)()

	p.consume(TokenString)

	var finishes []func()
	for p.isToken(TokenComma) {
		finishes = append(finishes, p.node(RuleEnumValueListComma))
		p.take()
		if !p.isToken(TokenString) {
			break
		}
		finishes = append(finishes, p.node(RuleEnumValueListString))
		p.take()
	}
	closeAll(finishes)
}

func (p *sourceParser) consumeTypedef() {
	defer p.node(RuleTypedef)()

	p.take()
	p.consumeTypeWithExtendedAttributes()
	p.consumeIdentifier()
	p.consume(TokenSemicolon)
}

// consumeIncludesStatement consumes `Interface includes Mixin;`.
func (p *sourceParser) consumeIncludesStatement() {
	defer p.node(RuleIncludesStatement)()

	p.consumeIdentifier()
	p.consumeKeyword("includes")
	p.consumeIdentifier()
	p.consume(TokenSemicolon)
}

// Members

func (p *sourceParser) canStartType() bool {
	return p.isToken(TokenLeftParen, TokenIdentifier) || p.isKeyword(typeKeywords...)
}

func (p *sourceParser) isAsyncIterable() bool {
	return p.isKeyword("async_iterable") || (p.isKeyword("async") && p.isNextKeyword("iterable"))
}

func (p *sourceParser) canStartPartialInterfaceMember() bool {
	return p.isKeyword("const", "getter", "setter", "deleter", "stringifier", "static",
		"iterable", "readonly", "attribute", "maplike", "setlike", "inherit") ||
		p.isAsyncIterable() || p.canStartType()
}

func (p *sourceParser) consumeInterfaceMember() bool {
	if !p.isKeyword("constructor") && !p.canStartPartialInterfaceMember() {
		return false
	}
	defer p.node(RuleInterfaceMember)()

	if p.isKeyword("constructor") {
		p.consumeConstructor()
		return true
	}
	return p.consumePartialInterfaceMember()
}

func (p *sourceParser) consumePartialInterfaceMember() bool {
	if !p.canStartPartialInterfaceMember() {
		return false
	}
	defer p.node(RulePartialInterfaceMember)()

	switch {
	case p.isKeyword("const"):
		p.consumeConst()
	case p.isKeyword("getter", "setter", "deleter"):
		p.consumeOperation()
	case p.isKeyword("stringifier"):
		p.consumeStringifier()
	case p.isKeyword("static"):
		p.consumeStaticMember()
	case p.isKeyword("iterable"):
		p.consumeIterable()
	case p.isAsyncIterable():
		p.consumeAsyncIterable()
	case p.isKeyword("readonly"):
		p.consumeReadOnlyMember()
	case p.isKeyword("attribute"):
		finish := p.node(RuleReadWriteAttribute)
		p.consumeAttributeRest()
		finish()
	case p.isKeyword("maplike"):
		finish := p.node(RuleReadWriteMaplike)
		p.consumeMaplikeRest()
		finish()
	case p.isKeyword("setlike"):
		finish := p.node(RuleReadWriteSetlike)
		p.consumeSetlikeRest()
		finish()
	case p.isKeyword("inherit"):
		p.consumeInheritAttribute()
	default:
		p.consumeOperation()
	}
	return true
}

func (p *sourceParser) consumeCallbackInterfaceMember() bool {
	if !p.isKeyword("const") && !p.canStartType() {
		return false
	}
	defer p.node(RuleCallbackInterfaceMember)()

	if p.isKeyword("const") {
		p.consumeConst()
	} else {
		p.consumeRegularOperation()
	}
	return true
}

func (p *sourceParser) consumeMixinMember() bool {
	if !p.isKeyword("const", "stringifier", "readonly", "attribute") && !p.canStartType() {
		return false
	}
	defer p.node(RuleMixinMember)()

	switch {
	case p.isKeyword("const"):
		p.consumeConst()
	case p.isKeyword("stringifier"):
		p.consumeStringifier()
	case p.isKeyword("readonly", "attribute"):
		p.tryConsumeKeyword("readonly")
		p.consumeAttributeRest()
	default:
		p.consumeRegularOperation()
	}
	return true
}

func (p *sourceParser) consumeNamespaceMember() bool {
	if !p.isKeyword("const", "readonly", "attribute") && !p.canStartType() {
		return false
	}
	defer p.node(RuleNamespaceMember)()

	switch {
	case p.isKeyword("const"):
		p.consumeConst()
	case p.isKeyword("readonly", "attribute"):
		p.tryConsumeKeyword("readonly")
		p.consumeAttributeRest()
	default:
		p.consumeRegularOperation()
	}
	return true
}

func (p *sourceParser) consumeDictionaryMember() bool {
	if !p.isKeyword("required") && !p.canStartType() {
		return false
	}
	defer p.node(RuleDictionaryMember)()
	defer p.node(RuleDictionaryMemberRest)()

	if p.tryConsumeKeyword("required") {
		p.consumeTypeWithExtendedAttributes()
		p.consumeIdentifier()
		p.consume(TokenSemicolon)
		return true
	}

	p.consumeType()
	p.consumeIdentifier()
	p.tryConsumeDefault()
	p.consume(TokenSemicolon)
	return true
}

// consumeConst consumes `const Type NAME = value;`.
func (p *sourceParser) consumeConst() {
	defer p.node(RuleConst)()

	p.take()

	finish := p.node(RuleConstType)
	switch {
	case p.isToken(TokenIdentifier):
		p.take()
	case p.isPrimitiveTypeStart():
		p.consumePrimitiveType()
	default:
		p.emitError("mismatched input %s expecting a constant type", p.currentToken.Display())
	}
	finish()

	p.consumeIdentifier()
	p.consume(TokenEquals)
	p.consumeConstValue()
	p.consume(TokenSemicolon)
}

func (p *sourceParser) isFloatLiteral() bool {
	return p.isToken(TokenDecimal) || p.isKeyword("-Infinity", "Infinity", "NaN")
}

func (p *sourceParser) isConstValue() bool {
	return p.isKeyword("true", "false") || p.isFloatLiteral() || p.isToken(TokenInteger)
}

func (p *sourceParser) consumeConstValue() {
	defer p.node(RuleConstValue)()

	switch {
	case p.isKeyword("true", "false"):
		finish := p.node(RuleBooleanLiteral)
		p.take()
		finish()
	case p.isFloatLiteral():
		finish := p.node(RuleFloatLiteral)
		p.take()
		finish()
	case p.isToken(TokenInteger):
		p.take()
	default:
		p.emitError("mismatched input %s expecting a constant value", p.currentToken.Display())
	}
}

func (p *sourceParser) tryConsumeDefault() {
	if !p.isToken(TokenEquals) {
		return
	}
	defer p.node(RuleDefault)()
	p.take()

	defer p.node(RuleDefaultValue)()
	switch {
	case p.isConstValue():
		p.consumeConstValue()
	case p.isToken(TokenString):
		p.take()
	case p.isToken(TokenLeftBracket):
		p.take()
		p.consume(TokenRightBracket)
	case p.isToken(TokenLeftBrace):
		p.take()
		p.consume(TokenRightBrace)
	case p.isKeyword("null", "undefined"):
		p.take()
	default:
		p.emitError("mismatched input %s expecting a default value", p.currentToken.Display())
	}
}

func (p *sourceParser) consumeOperation() {
	defer p.node(RuleOperation)()

	if p.isKeyword("getter", "setter", "deleter") {
		defer p.node(RuleSpecialOperation)()
		finish := p.node(RuleSpecial)
		p.take()
		finish()
	}
	p.consumeRegularOperation()
}

// consumeRegularOperation consumes `ReturnType name?(Arguments);`.
func (p *sourceParser) consumeRegularOperation() {
	defer p.node(RuleRegularOperation)()

	p.consumeType()

	defer p.node(RuleOperationRest)()
	if p.isToken(TokenIdentifier) || p.isKeyword("includes") {
		finish := p.node(RuleOperationName)
		p.take()
		finish()
	}
	p.consumeParenArguments()
	p.consume(TokenSemicolon)
}

// consumeParenArguments consumes '(' ArgumentList? ')'.
func (p *sourceParser) consumeParenArguments() {
	if _, ok := p.consume(TokenLeftParen); !ok {
		return
	}
	if !p.isToken(TokenRightParen) {
		p.consumeArgumentList()
	}
	p.consume(TokenRightParen)
}

func (p *sourceParser) consumeArgumentList() {
	defer p.node(RuleArgumentList)()

	p.consumeArgument()

	var finishes []func()
	for p.isToken(TokenComma) {
		finishes = append(finishes, p.node(RuleArguments))
		p.take()
		p.consumeArgument()
	}
	closeAll(finishes)
}

func (p *sourceParser) consumeArgument() {
	defer p.node(RuleArgument)()

	p.tryConsumeExtendedAttributeList()

	defer p.node(RuleArgumentRest)()
	if p.tryConsumeKeyword("optional") {
		p.consumeTypeWithExtendedAttributes()
		p.consumeArgumentName()
		p.tryConsumeDefault()
		return
	}

	p.consumeType()
	p.tryConsume(TokenEllipsis)
	p.consumeArgumentName()
}

func (p *sourceParser) consumeArgumentName() {
	defer p.node(RuleArgumentName)()

	if p.isToken(TokenIdentifier) || p.isKeyword(argumentNameKeywords...) {
		p.take()
		return
	}
	p.emitError("missing argument name at %s", p.currentToken.Display())
}

func (p *sourceParser) consumeConstructor() {
	defer p.node(RuleConstructor)()

	p.take()
	p.consumeParenArguments()
	p.consume(TokenSemicolon)
}

func (p *sourceParser) consumeStringifier() {
	defer p.node(RuleStringifier)()
	p.take()

	defer p.node(RuleStringifierRest)()
	switch {
	case p.isToken(TokenSemicolon):
		p.take()
	case p.isKeyword("readonly", "attribute"):
		p.tryConsumeKeyword("readonly")
		p.consumeAttributeRest()
	default:
		p.consumeRegularOperation()
	}
}

func (p *sourceParser) consumeStaticMember() {
	defer p.node(RuleStaticMember)()
	p.take()

	defer p.node(RuleStaticMemberRest)()
	if p.isKeyword("readonly", "attribute") {
		p.tryConsumeKeyword("readonly")
		p.consumeAttributeRest()
		return
	}
	p.consumeRegularOperation()
}

func (p *sourceParser) consumeIterable() {
	defer p.node(RuleIterable)()

	p.take()
	p.consumeTypeArguments()
	p.consume(TokenSemicolon)
}

// consumeTypeArguments consumes '<' Type (',' Type)? '>' for iterable declarations.
func (p *sourceParser) consumeTypeArguments() {
	p.consume(TokenLeftAngle)
	p.consumeTypeWithExtendedAttributes()
	if p.isToken(TokenComma) {
		finish := p.node(RuleOptionalType)
		p.take()
		p.consumeTypeWithExtendedAttributes()
		finish()
	}
	p.consume(TokenRightAngle)
}

func (p *sourceParser) consumeAsyncIterable() {
	defer p.node(RuleAsyncIterable)()

	if !p.tryConsumeKeyword("async_iterable") {
		p.take()
		p.consumeKeyword("iterable")
	}
	p.consumeTypeArguments()
	if p.isToken(TokenLeftParen) {
		finish := p.node(RuleOptionalArgumentList)
		p.consumeParenArguments()
		finish()
	}
	p.consume(TokenSemicolon)
}

func (p *sourceParser) consumeReadOnlyMember() {
	defer p.node(RuleReadOnlyMember)()
	p.take()

	defer p.node(RuleReadOnlyMemberRest)()
	switch {
	case p.isKeyword("maplike"):
		p.consumeMaplikeRest()
	case p.isKeyword("setlike"):
		p.consumeSetlikeRest()
	default:
		p.consumeAttributeRest()
	}
}

func (p *sourceParser) consumeInheritAttribute() {
	defer p.node(RuleInheritAttribute)()

	p.take()
	p.consumeAttributeRest()
}

// consumeAttributeRest consumes `attribute Type name;`.
func (p *sourceParser) consumeAttributeRest() {
	defer p.node(RuleAttributeRest)()

	p.consumeKeyword("attribute")
	p.consumeTypeWithExtendedAttributes()

	finish := p.node(RuleAttributeName)
	if p.isToken(TokenIdentifier) || p.isKeyword("async", "required") {
		p.take()
	} else {
		p.emitError("missing attribute name at %s", p.currentToken.Display())
	}
	finish()

	p.consume(TokenSemicolon)
}

func (p *sourceParser) consumeMaplikeRest() {
	defer p.node(RuleMaplikeRest)()

	p.take()
	p.consume(TokenLeftAngle)
	p.consumeTypeWithExtendedAttributes()
	p.consume(TokenComma)
	p.consumeTypeWithExtendedAttributes()
	p.consume(TokenRightAngle)
	p.consume(TokenSemicolon)
}

func (p *sourceParser) consumeSetlikeRest() {
	defer p.node(RuleSetlikeRest)()

	p.take()
	p.consume(TokenLeftAngle)
	p.consumeTypeWithExtendedAttributes()
	p.consume(TokenRightAngle)
	p.consume(TokenSemicolon)
}

// Types

func (p *sourceParser) consumeTypeWithExtendedAttributes() {
	defer p.node(RuleTypeWithExtendedAttributes)()

	p.tryConsumeExtendedAttributeList()
	p.consumeType()
}

func (p *sourceParser) consumeType() {
	defer p.node(RuleType)()

	if p.isToken(TokenLeftParen) {
		p.consumeUnionType()
		p.tryConsumeNull()
		return
	}

	defer p.node(RuleSingleType)()
	switch {
	case p.isKeyword("any"):
		p.take()
	case p.isKeyword("Promise"):
		p.consumePromiseType()
	default:
		p.consumeDistinguishableType()
	}
}

func (p *sourceParser) tryConsumeNull() {
	if !p.isToken(TokenQuestionMark) {
		return
	}
	defer p.node(RuleNull)()
	p.take()
}

// consumeUnionType consumes '(' A or B (or C)* ')'.
func (p *sourceParser) consumeUnionType() {
	defer p.node(RuleUnionType)()

	p.take()
	p.consumeUnionMemberType()
	p.consumeKeyword("or")
	p.consumeUnionMemberType()

	var finishes []func()
	for p.isKeyword("or") {
		finishes = append(finishes, p.node(RuleUnionMemberTypes))
		p.take()
		p.consumeUnionMemberType()
	}
	closeAll(finishes)

	p.consume(TokenRightParen)
}

func (p *sourceParser) consumeUnionMemberType() {
	defer p.node(RuleUnionMemberType)()

	if p.isToken(TokenLeftParen) {
		p.consumeUnionType()
		p.tryConsumeNull()
		return
	}
	p.tryConsumeExtendedAttributeList()
	p.consumeDistinguishableType()
}

func (p *sourceParser) isPrimitiveTypeStart() bool {
	return p.isKeyword("unsigned", "short", "long", "unrestricted", "float", "double",
		"boolean", "byte", "octet", "bigint")
}

func (p *sourceParser) consumeDistinguishableType() {
	defer p.node(RuleDistinguishableType)()

	switch {
	case p.isPrimitiveTypeStart():
		p.consumePrimitiveType()
	case p.isKeyword(stringTypeKeywords...):
		finish := p.node(RuleStringType)
		p.take()
		finish()
	case p.isKeyword(bufferTypeKeywords...):
		finish := p.node(RuleBufferRelatedType)
		p.take()
		finish()
	case p.isKeyword("sequence", "async_sequence", "FrozenArray", "ObservableArray"):
		p.take()
		p.consume(TokenLeftAngle)
		p.consumeTypeWithExtendedAttributes()
		p.consume(TokenRightAngle)
	case p.isKeyword("record"):
		p.consumeRecordType()
	case p.isKeyword("object", "symbol", "undefined", "void"), p.isToken(TokenIdentifier):
		p.take()
	default:
		p.emitError("mismatched input %s expecting a type", p.currentToken.Display())
		return
	}
	p.tryConsumeNull()
}

func (p *sourceParser) consumePrimitiveType() {
	defer p.node(RulePrimitiveType)()

	switch {
	case p.isKeyword("unsigned"):
		p.take()
		if !p.isKeyword("short", "long") {
			p.emitError("mismatched input %s expecting {'short', 'long'}", p.currentToken.Display())
			return
		}
		p.consumeIntegerType()
	case p.isKeyword("short", "long"):
		p.consumeIntegerType()
	case p.isKeyword("unrestricted"):
		p.take()
		if !p.isKeyword("float", "double") {
			p.emitError("mismatched input %s expecting {'float', 'double'}", p.currentToken.Display())
			return
		}
		p.take()
	default:
		p.take()
	}
}

func (p *sourceParser) consumeIntegerType() {
	if p.tryConsumeKeyword("short") {
		return
	}
	p.take()
	p.tryConsumeKeyword("long")
}

func (p *sourceParser) consumePromiseType() {
	defer p.node(RulePromiseType)()

	p.take()
	p.consume(TokenLeftAngle)
	p.consumeType()
	p.consume(TokenRightAngle)
}

func (p *sourceParser) consumeRecordType() {
	defer p.node(RuleRecordType)()

	p.take()
	p.consume(TokenLeftAngle)

	finish := p.node(RuleStringType)
	if p.isKeyword(stringTypeKeywords...) {
		p.take()
	} else {
		p.emitError("mismatched input %s expecting a string type", p.currentToken.Display())
	}
	finish()

	p.consume(TokenComma)
	p.consumeTypeWithExtendedAttributes()
	p.consume(TokenRightAngle)
}

// Extended attributes

// tryConsumeExtendedAttributeList consumes '[' attr (',' attr)* ']' if present.
func (p *sourceParser) tryConsumeExtendedAttributeList() bool {
	if !p.isToken(TokenLeftBracket) {
		return false
	}
	defer p.node(RuleExtendedAttributeList)()

	p.take()
	p.consumeExtendedAttribute()
	for p.isToken(TokenComma) {
		p.take()
		p.consumeExtendedAttribute()
	}
	p.consume(TokenRightBracket)
	return true
}

func (p *sourceParser) consumeExtendedAttribute() {
	defer p.node(RuleExtendedAttribute)()

	if !p.isWord() {
		if p.isToken(TokenComma, TokenRightBracket, TokenSemicolon, TokenLeftBrace, TokenRightBrace) {
			p.emitError("missing extended attribute at %s", p.currentToken.Display())
			return
		}
		depth := 0
		p.skipUntil("an extended attribute", func() bool {
			switch p.previousToken.Kind {
			case TokenLeftParen:
				depth++
			case TokenRightParen:
				if depth > 0 {
					depth--
				}
			}
			return p.isToken(TokenSemicolon, TokenLeftBrace, TokenRightBrace) ||
				(depth == 0 && p.isToken(TokenComma, TokenRightBracket))
		})
		return
	}

	lookahead := p.newLookaheadTracker()
	switch next := lookahead.nextToken(); {
	case next.Kind == TokenLeftParen:
		defer p.node(RuleExtendedAttributeArgList)()
		p.take()
		p.consumeParenArguments()

	case next.Kind == TokenEquals:
		value := lookahead.nextToken()
		switch {
		case value.IsWord() && lookahead.nextToken().Kind == TokenLeftParen:
			defer p.node(RuleExtendedAttributeNamedArgList)()
			p.take()
			p.take()
			p.take()
			p.consumeParenArguments()
		case value.Kind == TokenString:
			p.consumeExtendedAttributeValue(RuleExtendedAttributeString)
		case value.Kind == TokenDecimal:
			p.consumeExtendedAttributeValue(RuleExtendedAttributeDecimal)
		case value.Kind == TokenInteger:
			p.consumeExtendedAttributeValue(RuleExtendedAttributeInteger)
		case value.Kind == TokenAsterisk:
			p.consumeExtendedAttributeValue(RuleExtendedAttributeWildcard)
		case value.Kind == TokenLeftParen:
			p.consumeExtendedAttributeValueList(lookahead.nextToken())
		default:
			defer p.node(RuleExtendedAttributeIdent)()
			p.take()
			p.take()
			p.consumeWord()
		}

	default:
		defer p.node(RuleExtendedAttributeNoArgs)()
		p.take()
	}
}

// consumeExtendedAttributeValue consumes `Name = value` with a single-token value.
func (p *sourceParser) consumeExtendedAttributeValue(rule Rule) {
	defer p.node(rule)()
	p.take()
	p.take()
	p.take()
}

// consumeExtendedAttributeValueList consumes `Name = (a, b, ...)`, picking the
// list kind from the first element.
func (p *sourceParser) consumeExtendedAttributeValueList(first Token) {
	rule, listRule, tailRule, item := RuleExtendedAttributeIdentList, RuleIdentifierList, RuleIdentifiers, p.consumeWord
	switch first.Kind {
	case TokenInteger:
		rule, listRule, tailRule = RuleExtendedAttributeIntegerList, RuleIntegerList, RuleIntegers
		item = func() { p.consume(TokenInteger) }
	case TokenString:
		rule, listRule, tailRule = RuleExtendedAttributeStringList, RuleStringList, RuleStrings
		item = func() { p.consume(TokenString) }
	}

	defer p.node(rule)()
	p.take()
	p.take()
	p.take()
	p.consumeList(listRule, tailRule, item)
	p.consume(TokenRightParen)
}

// consumeList consumes item (',' item)* as a right-recursive chain of tailRule nodes.
func (p *sourceParser) consumeList(listRule, tailRule Rule, item func()) {
	defer p.node(listRule)()

	item()

	var finishes []func()
	for p.isToken(TokenComma) {
		finishes = append(finishes, p.node(tailRule))
		p.take()
		item()
	}
	closeAll(finishes)
}

// consumeWord consumes an identifier or keyword.
func (p *sourceParser) consumeWord() {
	if p.isWord() {
		p.take()
		return
	}
	p.emitError("missing Identifier at %s", p.currentToken.Display())
}
