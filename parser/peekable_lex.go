// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parser

import (
	"container/list"
	"fmt"
)

// peekableLexer wraps a lexer and provides the ability to peek forward without
// losing state. Every token handed out by nextToken is also recorded, so the
// full stream (trivia included) is available once parsing is done.
type peekableLexer struct {
	lex        *lexer     // a reference to the lexer used for tokenization
	readTokens *list.List // tokens already read from the lexer during a lookahead.
	consumed   []Token    // every token returned by nextToken, in order
}

// peekableLex returns a new peekableLexer for the given lexer.
func peekableLex(lex *lexer) *peekableLexer {
	return &peekableLexer{
		lex:        lex,
		readTokens: list.New(),
	}
}

// nextToken returns the next token found in the lexer.
func (l *peekableLexer) nextToken() Token {
	var t Token
	if frontElement := l.readTokens.Front(); frontElement != nil {
		t = l.readTokens.Remove(frontElement).(Token)
	} else {
		t = l.lex.nextToken()
	}
	if t.Kind != TokenEOF {
		l.consumed = append(l.consumed, t)
	}
	return t
}

// peekToken performs lookahead of the given count on the token stream.
func (l *peekableLexer) peekToken(count int) Token {
	if count < 1 {
		panic(fmt.Sprintf("Expected count >= 1, received: %v", count))
	}

	// Ensure that the readTokens has at least the requested number of tokens.
	for l.readTokens.Len() < count {
		l.readTokens.PushBack(l.lex.nextToken())
	}

	element := l.readTokens.Front()
	for i := 1; i < count; i++ {
		element = element.Next()
	}

	return element.Value.(Token)
}

// drain reads the rest of the input and returns the complete token stream.
func (l *peekableLexer) drain() []Token {
	for l.nextToken().Kind != TokenEOF {
	}
	return l.consumed
}
