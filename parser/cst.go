package parser

import (
	"strings"
)

// Rule names the grammar production a CST node was built by.
type Rule int

const (
	RuleTerminal Rule = iota // a single token
	RuleError                // tokens skipped during recovery

	RuleFile
	RuleDefinitions
	RuleDefinition
	RuleCallbackOrInterfaceOrMixin
	RuleCallbackRestOrInterface
	RuleCallbackRest
	RuleCallbackInterfaceMembers
	RuleCallbackInterfaceMember
	RuleInterfaceOrMixin
	RuleInterfaceRest
	RuleInheritance
	RuleInterfaceMembers
	RuleInterfaceMember
	RulePartial
	RulePartialDefinition
	RulePartialInterfaceOrPartialMixin
	RulePartialInterfaceRest
	RulePartialInterfaceMembers
	RulePartialInterfaceMember
	RuleMixinRest
	RuleMixinMembers
	RuleMixinMember
	RuleIncludesStatement
	RuleNamespace
	RuleNamespaceMembers
	RuleNamespaceMember
	RuleDictionary
	RulePartialDictionary
	RuleDictionaryMembers
	RuleDictionaryMember
	RuleDictionaryMemberRest
	RuleEnum
	RuleEnumValueList
	RuleEnumValueListComma
	RuleEnumValueListString
	RuleTypedef

	RuleConst
	RuleConstType
	RuleConstValue
	RuleBooleanLiteral
	RuleFloatLiteral
	RuleDefault
	RuleDefaultValue
	RuleOperation
	RuleRegularOperation
	RuleSpecialOperation
	RuleSpecial
	RuleOperationRest
	RuleOperationName
	RuleArgumentList
	RuleArguments
	RuleArgument
	RuleArgumentRest
	RuleArgumentName
	RuleConstructor
	RuleStringifier
	RuleStringifierRest
	RuleStaticMember
	RuleStaticMemberRest
	RuleIterable
	RuleOptionalType
	RuleAsyncIterable
	RuleOptionalArgumentList
	RuleReadOnlyMember
	RuleReadOnlyMemberRest
	RuleReadWriteAttribute
	RuleInheritAttribute
	RuleAttributeRest
	RuleAttributeName
	RuleReadWriteMaplike
	RuleReadWriteSetlike
	RuleMaplikeRest
	RuleSetlikeRest

	RuleType
	RuleTypeWithExtendedAttributes
	RuleSingleType
	RuleUnionType
	RuleUnionMemberType
	RuleUnionMemberTypes
	RuleDistinguishableType
	RulePrimitiveType
	RuleStringType
	RuleBufferRelatedType
	RulePromiseType
	RuleRecordType
	RuleNull

	RuleExtendedAttributeList
	RuleExtendedAttribute
	RuleExtendedAttributeNoArgs
	RuleExtendedAttributeArgList
	RuleExtendedAttributeNamedArgList
	RuleExtendedAttributeIdent
	RuleExtendedAttributeString
	RuleExtendedAttributeDecimal
	RuleExtendedAttributeInteger
	RuleExtendedAttributeIdentList
	RuleExtendedAttributeIntegerList
	RuleExtendedAttributeStringList
	RuleExtendedAttributeWildcard
	RuleIdentifierList
	RuleIdentifiers
	RuleIntegerList
	RuleIntegers
	RuleStringList
	RuleStrings
)

var ruleNames = [...]string{
	RuleTerminal:                       "terminal",
	RuleError:                          "error",
	RuleFile:                           "file",
	RuleDefinitions:                    "definitions",
	RuleDefinition:                     "definition",
	RuleCallbackOrInterfaceOrMixin:     "callbackOrInterfaceOrMixin",
	RuleCallbackRestOrInterface:        "callbackRestOrInterface",
	RuleCallbackRest:                   "callbackRest",
	RuleCallbackInterfaceMembers:       "callbackInterfaceMembers",
	RuleCallbackInterfaceMember:        "callbackInterfaceMember",
	RuleInterfaceOrMixin:               "interfaceOrMixin",
	RuleInterfaceRest:                  "interfaceRest",
	RuleInheritance:                    "inheritance",
	RuleInterfaceMembers:               "interfaceMembers",
	RuleInterfaceMember:                "interfaceMember",
	RulePartial:                        "partial",
	RulePartialDefinition:              "partialDefinition",
	RulePartialInterfaceOrPartialMixin: "partialInterfaceOrPartialMixin",
	RulePartialInterfaceRest:           "partialInterfaceRest",
	RulePartialInterfaceMembers:        "partialInterfaceMembers",
	RulePartialInterfaceMember:         "partialInterfaceMember",
	RuleMixinRest:                      "mixinRest",
	RuleMixinMembers:                   "mixinMembers",
	RuleMixinMember:                    "mixinMember",
	RuleIncludesStatement:              "includesStatement",
	RuleNamespace:                      "namespace",
	RuleNamespaceMembers:               "namespaceMembers",
	RuleNamespaceMember:                "namespaceMember",
	RuleDictionary:                     "dictionary",
	RulePartialDictionary:              "partialDictionary",
	RuleDictionaryMembers:              "dictionaryMembers",
	RuleDictionaryMember:               "dictionaryMember",
	RuleDictionaryMemberRest:           "dictionaryMemberRest",
	RuleEnum:                           "enum",
	RuleEnumValueList:                  "enumValueList",
	RuleEnumValueListComma:             "enumValueListComma",
	RuleEnumValueListString:            "enumValueListString",
	RuleTypedef:                        "typedef",
	RuleConst:                          "const",
	RuleConstType:                      "constType",
	RuleConstValue:                     "constValue",
	RuleBooleanLiteral:                 "booleanLiteral",
	RuleFloatLiteral:                   "floatLiteral",
	RuleDefault:                        "default",
	RuleDefaultValue:                   "defaultValue",
	RuleOperation:                      "operation",
	RuleRegularOperation:               "regularOperation",
	RuleSpecialOperation:               "specialOperation",
	RuleSpecial:                        "special",
	RuleOperationRest:                  "operationRest",
	RuleOperationName:                  "operationName",
	RuleArgumentList:                   "argumentList",
	RuleArguments:                      "arguments",
	RuleArgument:                       "argument",
	RuleArgumentRest:                   "argumentRest",
	RuleArgumentName:                   "argumentName",
	RuleConstructor:                    "constructor",
	RuleStringifier:                    "stringifier",
	RuleStringifierRest:                "stringifierRest",
	RuleStaticMember:                   "staticMember",
	RuleStaticMemberRest:               "staticMemberRest",
	RuleIterable:                       "iterable",
	RuleOptionalType:                   "optionalType",
	RuleAsyncIterable:                  "asyncIterable",
	RuleOptionalArgumentList:           "optionalArgumentList",
	RuleReadOnlyMember:                 "readOnlyMember",
	RuleReadOnlyMemberRest:             "readOnlyMemberRest",
	RuleReadWriteAttribute:             "readWriteAttribute",
	RuleInheritAttribute:               "inheritAttribute",
	RuleAttributeRest:                  "attributeRest",
	RuleAttributeName:                  "attributeName",
	RuleReadWriteMaplike:               "readWriteMaplike",
	RuleReadWriteSetlike:               "readWriteSetlike",
	RuleMaplikeRest:                    "maplikeRest",
	RuleSetlikeRest:                    "setlikeRest",
	RuleType:                           "type",
	RuleTypeWithExtendedAttributes:     "typeWithExtendedAttributes",
	RuleSingleType:                     "singleType",
	RuleUnionType:                      "unionType",
	RuleUnionMemberType:                "unionMemberType",
	RuleUnionMemberTypes:               "unionMemberTypes",
	RuleDistinguishableType:            "distinguishableType",
	RulePrimitiveType:                  "primitiveType",
	RuleStringType:                     "stringType",
	RuleBufferRelatedType:              "bufferRelatedType",
	RulePromiseType:                    "promiseType",
	RuleRecordType:                     "recordType",
	RuleNull:                           "null",
	RuleExtendedAttributeList:          "extendedAttributeList",
	RuleExtendedAttribute:              "extendedAttribute",
	RuleExtendedAttributeNoArgs:        "extendedAttributeNoArgs",
	RuleExtendedAttributeArgList:       "extendedAttributeArgList",
	RuleExtendedAttributeNamedArgList:  "extendedAttributeNamedArgList",
	RuleExtendedAttributeIdent:         "extendedAttributeIdent",
	RuleExtendedAttributeString:        "extendedAttributeString",
	RuleExtendedAttributeDecimal:       "extendedAttributeDecimal",
	RuleExtendedAttributeInteger:       "extendedAttributeInteger",
	RuleExtendedAttributeIdentList:     "extendedAttributeIdentList",
	RuleExtendedAttributeIntegerList:   "extendedAttributeIntegerList",
	RuleExtendedAttributeStringList:    "extendedAttributeStringList",
	RuleExtendedAttributeWildcard:      "extendedAttributeWildcard",
	RuleIdentifierList:                 "identifierList",
	RuleIdentifiers:                    "identifiers",
	RuleIntegerList:                    "integerList",
	RuleIntegers:                       "integers",
	RuleStringList:                     "stringList",
	RuleStrings:                        "strings",
}

func (r Rule) String() string {
	if r >= 0 && int(r) < len(ruleNames) {
		return ruleNames[r]
	}
	return "Rule(?)"
}

// Node is a concrete syntax tree node. Terminals carry a Token and no
// children; every other node carries the Rule that produced it. Trivia tokens
// never appear in the tree.
type Node struct {
	Rule     Rule
	Token    *Token
	Children []*Node
}

// IsTerminal reports whether the node wraps a single token.
func (n *Node) IsTerminal() bool {
	return n.Rule == RuleTerminal
}

// Child returns the first direct child built by rule, or nil.
func (n *Node) Child(rule Rule) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Rule == rule {
			return c
		}
	}
	return nil
}

// ChildrenOf returns every direct child built by rule.
func (n *Node) ChildrenOf(rule Rule) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Rule == rule {
			out = append(out, c)
		}
	}
	return out
}

// Terminal returns the first direct terminal child of the given kind, or nil.
func (n *Node) Terminal(kind TokenKind) *Token {
	for _, t := range n.Terminals(kind) {
		return t
	}
	return nil
}

// Terminals returns the direct terminal children of the given kind.
func (n *Node) Terminals(kind TokenKind) []*Token {
	if n == nil {
		return nil
	}
	var out []*Token
	for _, c := range n.Children {
		if c.IsTerminal() && c.Token.Kind == kind {
			out = append(out, c.Token)
		}
	}
	return out
}

// Keyword returns the direct terminal child holding the given keyword, or nil.
func (n *Node) Keyword(keyword string) *Token {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.IsTerminal() && c.Token.IsKeyword(keyword) {
			return c.Token
		}
	}
	return nil
}

// Words returns the direct identifier or keyword terminals, in order.
func (n *Node) Words() []*Token {
	if n == nil {
		return nil
	}
	var out []*Token
	for _, c := range n.Children {
		if c.IsTerminal() && c.Token.IsWord() {
			out = append(out, c.Token)
		}
	}
	return out
}

// FirstToken returns the first token under the node, or nil if it has none.
func (n *Node) FirstToken() *Token {
	if n == nil {
		return nil
	}
	if n.IsTerminal() {
		return n.Token
	}
	for _, c := range n.Children {
		if t := c.FirstToken(); t != nil {
			return t
		}
	}
	return nil
}

// LastToken returns the last token under the node, or nil if it has none.
func (n *Node) LastToken() *Token {
	if n == nil {
		return nil
	}
	if n.IsTerminal() {
		return n.Token
	}
	for i := len(n.Children) - 1; i >= 0; i-- {
		if t := n.Children[i].LastToken(); t != nil {
			return t
		}
	}
	return nil
}

// Text returns the concatenated text of every token under the node, without trivia.
func (n *Node) Text() string {
	var sb strings.Builder
	n.walkTokens(func(t *Token) { sb.WriteString(t.Text) })
	return sb.String()
}

// HasError reports whether a recovery node appears anywhere under n.
func (n *Node) HasError() bool {
	if n == nil {
		return false
	}
	if n.Rule == RuleError {
		return true
	}
	for _, c := range n.Children {
		if c.HasError() {
			return true
		}
	}
	return false
}

func (n *Node) walkTokens(fn func(*Token)) {
	if n == nil {
		return
	}
	if n.IsTerminal() {
		fn(n.Token)
		return
	}
	for _, c := range n.Children {
		c.walkTokens(fn)
	}
}
