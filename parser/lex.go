// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Based on design first introduced in: http://blog.golang.org/two-go-talks-lexical-scanning-in-go-and
// Portions copied and modified from: https://github.com/golang/go/blob/master/src/text/template/parse/lex.go

package parser

import (
	"strings"
	"unicode/utf8"
)

// EOFRUNE is returned by next when the input is exhausted.
const EOFRUNE = -1

// stateFn represents the state of the scanner as a function that returns the next state.
type stateFn func(*lexer) stateFn

// lexer holds the state of the scanner.
type lexer struct {
	input   string  // the string being scanned
	state   stateFn // the next lexing function to enter
	pos     int     // current position in the input
	start   int     // start position of this token
	width   int     // width of last rune read from input
	line    int     // line of the token start, 1-based
	column  int     // column of the token start, 0-based runes
	pending []Token // tokens emitted but not yet handed out
}

// buildlex creates a new scanner for the input string, starting in the given state.
func buildlex(input string, startState stateFn) *lexer {
	return &lexer{
		input: input,
		state: startState,
		line:  1,
	}
}

// nextToken returns the next token from the input. Once the input is exhausted
// every call returns an EOF token positioned at the end of the input.
func (l *lexer) nextToken() Token {
	for len(l.pending) == 0 {
		if l.state == nil {
			return Token{Kind: TokenEOF, Start: len(l.input), End: len(l.input), Line: l.line, Column: l.column}
		}
		l.state = l.state(l)
	}
	t := l.pending[0]
	l.pending = l.pending[1:]
	return t
}

// next returns the next rune in the input.
func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return EOFRUNE
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += w
	return r
}

// peek returns but does not consume the next rune in the input.
func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// peekAt returns the rune n bytes ahead of the current position without consuming anything.
func (l *lexer) peekAt(n int) rune {
	if l.pos+n >= len(l.input) {
		return EOFRUNE
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos+n:])
	return r
}

// backup steps back one rune. Can be called only once per call of next.
func (l *lexer) backup() {
	l.pos -= l.width
}

// accept consumes the next rune if it's from the valid set.
func (l *lexer) accept(valid string) bool {
	if strings.ContainsRune(valid, l.next()) {
		return true
	}
	l.backup()
	return false
}

// acceptRun consumes a run of runes from the valid set.
func (l *lexer) acceptRun(valid string) int {
	n := 0
	for strings.ContainsRune(valid, l.next()) {
		n++
	}
	l.backup()
	return n
}

// acceptString consumes the given string if the input continues with it.
func (l *lexer) acceptString(s string) bool {
	if strings.HasPrefix(l.input[l.pos:], s) {
		l.pos += len(s)
		l.width = 0
		return true
	}
	return false
}

// acceptWhile consumes runes for as long as the predicate holds.
func (l *lexer) acceptWhile(pred func(rune) bool) {
	for {
		r := l.next()
		if r == EOFRUNE {
			return
		}
		if !pred(r) {
			l.backup()
			return
		}
	}
}

// emit queues a token of the given kind spanning start..pos and moves the
// line/column bookkeeping past it.
func (l *lexer) emit(kind TokenKind) {
	text := l.input[l.start:l.pos]
	l.pending = append(l.pending, Token{
		Kind:   kind,
		Text:   text,
		Start:  l.start,
		End:    l.pos,
		Line:   l.line,
		Column: l.column,
	})
	l.line, l.column = advancePosition(l.line, l.column, text)
	l.start = l.pos
}

// emitEOF queues the terminal EOF token and stops the state machine.
func (l *lexer) emitEOF() stateFn {
	l.emit(TokenEOF)
	return nil
}

// advancePosition returns the line and column reached after text, starting at line:column.
func advancePosition(line, column int, text string) (int, int) {
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			return line, column + utf8.RuneCountInString(text)
		}
		line++
		column = 0
		text = text[i+1:]
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

func isNewline(r rune) bool {
	return r == '\r' || r == '\n'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isIdentifierRune reports whether r may continue an identifier.
func isIdentifierRune(r rune) bool {
	return isLetter(r) || isDigit(r) || r == '_' || r == '-'
}
