// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parser lexes WebIDL (https://webidl.spec.whatwg.org/) and parses it
// into a concrete syntax tree, recovering from syntax errors as it goes.
package parser

import (
	"fmt"
	"strings"
)

// ErrorListener receives syntax errors as the parser finds them.
type ErrorListener interface {
	SyntaxError(offending Token, line, column int, msg string)
}

// ErrorListenerFunc adapts a function to ErrorListener.
type ErrorListenerFunc func(offending Token, line, column int, msg string)

func (f ErrorListenerFunc) SyntaxError(offending Token, line, column int, msg string) {
	f(offending, line, column, msg)
}

// sourceParser holds the state of the parser.
type sourceParser struct {
	lex           *peekableLexer // a reference to the lexer used for tokenization
	nodes         nodeStack      // the stack of the current nodes
	currentToken  Token          // the current token
	previousToken Token          // the previous token
	listener      ErrorListener  // receives syntax errors
	config        parserConfig   // Configuration for customizing the parser
	recovering    bool           // an error was reported and no token has matched since
}

// parserConfig holds configuration for customizing the parser
type parserConfig struct {
	ignoredTokenTypes map[TokenKind]struct{} // the token types ignored by the parser
}

// buildParser returns a new sourceParser instance.
func buildParser(lexer *lexer, config parserConfig, listener ErrorListener) *sourceParser {
	if listener == nil {
		listener = ErrorListenerFunc(func(Token, int, int, string) {})
	}
	return &sourceParser{
		lex:           peekableLex(lexer),
		currentToken:  Token{Kind: TokenEOF},
		previousToken: Token{Kind: TokenEOF},
		listener:      listener,
		config:        config,
	}
}

// node creates a new node for the given rule, attaches it to the current node
// and pushes it onto the nodes stack. The returned func pops it again.
func (p *sourceParser) node(rule Rule) func() {
	n := &Node{Rule: rule}
	p.nodes.push(n)
	return func() {
		if p.currentNode() != n {
			panic(fmt.Sprintf("unbalanced node stack at token %v", p.currentToken))
		}
		p.nodes.pop()
	}
}

// currentNode returns the node at the top of the stack.
func (p *sourceParser) currentNode() *Node {
	return p.nodes.topValue()
}

// consumeToken advances the lexer forward, skipping ignored tokens, and
// returns the new current token.
func (p *sourceParser) consumeToken() Token {
	for {
		token := p.lex.nextToken()
		if _, ok := p.config.ignoredTokenTypes[token.Kind]; !ok {
			p.previousToken = p.currentToken
			p.currentToken = token
			return p.currentToken
		}
	}
}

// take attaches the current token to the current node as a terminal and advances.
func (p *sourceParser) take() Token {
	token := p.currentToken
	p.currentNode().Children = append(p.currentNode().Children, &Node{Rule: RuleTerminal, Token: &token})
	p.recovering = false
	p.consumeToken()
	return token
}

// isToken returns true if the current token matches one of the types given.
func (p *sourceParser) isToken(types ...TokenKind) bool {
	for _, kind := range types {
		if p.currentToken.Kind == kind {
			return true
		}
	}

	return false
}

// isWord returns true if the current token is an identifier or a keyword.
func (p *sourceParser) isWord() bool {
	return p.currentToken.IsWord()
}

// nextToken returns the next token found, without advancing the parser. Used for
// lookahead.
func (p *sourceParser) nextToken() Token {
	for counter := 1; ; counter++ {
		token := p.lex.peekToken(counter)
		if _, ok := p.config.ignoredTokenTypes[token.Kind]; !ok {
			return token
		}
	}
}

// isNextToken returns true if the *next* token matches one of the types given.
func (p *sourceParser) isNextToken(types ...TokenKind) bool {
	token := p.nextToken()

	for _, kind := range types {
		if token.Kind == kind {
			return true
		}
	}

	return false
}

// isKeyword returns true if the current token is a keyword matching one of those given.
func (p *sourceParser) isKeyword(keywords ...string) bool {
	for _, keyword := range keywords {
		if p.currentToken.IsKeyword(keyword) {
			return true
		}
	}
	return false
}

// isNextKeyword returns true if the next token is a keyword matching that given.
func (p *sourceParser) isNextKeyword(keyword string) bool {
	return p.nextToken().IsKeyword(keyword)
}

// emitError reports a syntax error at the current token. Reports are
// suppressed until a token is matched again after the previous one.
func (p *sourceParser) emitError(format string, args ...interface{}) {
	if p.recovering {
		return
	}
	p.recovering = true
	t := p.currentToken
	p.listener.SyntaxError(t, t.Line, t.Column, fmt.Sprintf(format, args...))
}

// tryConsume performs consumption of the next token if it matches any of the given
// types and returns it.
func (p *sourceParser) tryConsume(types ...TokenKind) (Token, bool) {
	if p.isToken(types...) {
		return p.take(), true
	}
	return Token{}, false
}

// tryConsumeKeyword attempts to consume an expected keyword token.
func (p *sourceParser) tryConsumeKeyword(keyword string) bool {
	if !p.isKeyword(keyword) {
		return false
	}
	p.take()
	return true
}

// consume performs consumption of the next token if it matches any of the given
// types. A single extraneous token in front of the expected one is skipped
// into an error node; otherwise the token is reported missing.
func (p *sourceParser) consume(types ...TokenKind) (Token, bool) {
	if token, ok := p.tryConsume(types...); ok {
		return token, true
	}
	if p.canSkipCurrent() && p.isNextToken(types...) {
		p.skipExtraneous(describeKinds(types))
		return p.take(), true
	}
	p.emitError("missing %s at %s", describeKinds(types), p.currentToken.Display())
	return Token{}, false
}

// consumeKeyword consumes an expected keyword token, recovering the same way as consume.
func (p *sourceParser) consumeKeyword(keyword string) bool {
	if p.tryConsumeKeyword(keyword) {
		return true
	}
	if p.canSkipCurrent() && p.isNextKeyword(keyword) {
		p.skipExtraneous("'" + keyword + "'")
		p.take()
		return true
	}
	p.emitError("missing '%s' at %s", keyword, p.currentToken.Display())
	return false
}

// consumeIdentifier consumes an expected identifier token.
func (p *sourceParser) consumeIdentifier() (Token, bool) {
	return p.consume(TokenIdentifier)
}

// canSkipCurrent reports whether the current token may be dropped as
// extraneous. Braces are never dropped so bodies stay balanced.
func (p *sourceParser) canSkipCurrent() bool {
	return !p.isToken(TokenEOF, TokenLeftBrace, TokenRightBrace)
}

// skipExtraneous wraps the current token into an error node.
func (p *sourceParser) skipExtraneous(expecting string) {
	p.emitError("extraneous input %s expecting %s", p.currentToken.Display(), expecting)
	finish := p.node(RuleError)
	p.currentNode().Children = append(p.currentNode().Children, &Node{Rule: RuleTerminal, Token: p.tokenPtr()})
	p.consumeToken()
	finish()
}

// skipUntil reports the current token as unexpected and moves every token up
// to (not including) one accepted by stop into an error node. At least one
// token is skipped unless the input is exhausted.
func (p *sourceParser) skipUntil(expecting string, stop func() bool) {
	p.emitError("mismatched input %s expecting %s", p.currentToken.Display(), expecting)
	if p.isToken(TokenEOF) {
		return
	}
	finish := p.node(RuleError)
	defer finish()
	for {
		p.currentNode().Children = append(p.currentNode().Children, &Node{Rule: RuleTerminal, Token: p.tokenPtr()})
		p.consumeToken()
		if p.isToken(TokenEOF) || stop() {
			return
		}
	}
}

func (p *sourceParser) tokenPtr() *Token {
	t := p.currentToken
	return &t
}

func describeKinds(types []TokenKind) string {
	if len(types) == 1 {
		return types[0].String()
	}
	names := make([]string, len(types))
	for i, kind := range types {
		names[i] = kind.String()
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// lookaheadTracker holds state when conducting a multi-token lookahead in the parser.
type lookaheadTracker struct {
	parser       *sourceParser // the parent parser
	counter      int           // the number of tokens we have looked-ahead.
	currentToken Token         // the current lookahead token
}

// newLookaheadTracker returns a new lookahead tracker, which helps with multiple lookahead
// in the parser.
func (p *sourceParser) newLookaheadTracker() *lookaheadTracker {
	return &lookaheadTracker{
		parser:       p,
		currentToken: p.currentToken,
	}
}

// nextToken moves the lookahead to the next non-ignored token and returns it.
func (t *lookaheadTracker) nextToken() Token {
	for {
		t.counter++
		token := t.parser.lex.peekToken(t.counter)
		t.currentToken = token

		if _, ok := t.parser.config.ignoredTokenTypes[token.Kind]; !ok {
			return token
		}
	}
}
