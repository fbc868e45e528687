// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Portions copied and modified from: https://github.com/golang/go/blob/master/src/text/template/parse/lex_test.go

package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lexerTest struct {
	name   string
	input  string
	tokens []Token
}

func tok(kind TokenKind, text string) Token {
	return Token{Kind: kind, Text: text}
}

var (
	tEOF        = tok(TokenEOF, "")
	tWhitespace = tok(TokenWhitespace, " ")
)

var lexerTests = []lexerTest{
	{"empty", "", []Token{tEOF}},

	{"single whitespace", " ", []Token{tWhitespace, tEOF}},
	{"single tab", "\t", []Token{tok(TokenWhitespace, "\t"), tEOF}},
	{"multiple whitespace", "   ", []Token{tok(TokenWhitespace, "   "), tEOF}},

	{"newline r", "\r", []Token{tok(TokenWhitespace, "\r"), tEOF}},
	{"newline n", "\n", []Token{tok(TokenWhitespace, "\n"), tEOF}},
	{"newline rn", "\r\n", []Token{tok(TokenWhitespace, "\r\n"), tEOF}},

	{"comment", "// a comment", []Token{tok(TokenLineComment, "// a comment"), tEOF}},
	{"comment then newline", "// a\nfoo", []Token{
		tok(TokenLineComment, "// a"), tok(TokenWhitespace, "\n"), tok(TokenIdentifier, "foo"), tEOF,
	}},
	{"multiline comment", "/* a comment */foo", []Token{
		tok(TokenBlockComment, "/* a comment */"), tok(TokenIdentifier, "foo"), tEOF,
	}},
	{"multiline comment 2", "/* a\ncomment */foo", []Token{
		tok(TokenBlockComment, "/* a\ncomment */"), tok(TokenIdentifier, "foo"), tEOF,
	}},
	{"unterminated comment", "/* a", []Token{tok(TokenBlockComment, "/* a"), tEOF}},
	{"lone slash", "/a", []Token{tok(TokenError, "/"), tok(TokenIdentifier, "a"), tEOF}},

	{"left brace", "{", []Token{tok(TokenLeftBrace, "{"), tEOF}},
	{"right brace", "}", []Token{tok(TokenRightBrace, "}"), tEOF}},

	{"left bracket", "[", []Token{tok(TokenLeftBracket, "["), tEOF}},
	{"right bracket", "]", []Token{tok(TokenRightBracket, "]"), tEOF}},

	{"left paren", "(", []Token{tok(TokenLeftParen, "("), tEOF}},
	{"right paren", ")", []Token{tok(TokenRightParen, ")"), tEOF}},

	{"angles", "<>", []Token{tok(TokenLeftAngle, "<"), tok(TokenRightAngle, ">"), tEOF}},
	{"semicolon", ";", []Token{tok(TokenSemicolon, ";"), tEOF}},
	{"comma", ",", []Token{tok(TokenComma, ","), tEOF}},
	{"variadic", "...", []Token{tok(TokenEllipsis, "..."), tEOF}},
	{"wildcard", "*", []Token{tok(TokenAsterisk, "*"), tEOF}},
	{"lone dot", ".", []Token{tok(TokenError, "."), tEOF}},

	{"keyword", "interface", []Token{tok(TokenKeyword, "interface"), tEOF}},
	{"identifier", "interace", []Token{tok(TokenIdentifier, "interace"), tEOF}},
	{"identifier with dash", "foo-bar", []Token{tok(TokenIdentifier, "foo-bar"), tEOF}},
	{"leading underscore", "_interface", []Token{tok(TokenIdentifier, "_interface"), tEOF}},
	{"string", `"val"`, []Token{tok(TokenString, `"val"`), tEOF}},
	{"unterminated string", `"val`, []Token{tok(TokenError, `"`), tok(TokenIdentifier, "val"), tEOF}},

	{"integer", `42`, []Token{tok(TokenInteger, `42`), tEOF}},
	{"negative integer", `-42`, []Token{tok(TokenInteger, `-42`), tEOF}},
	{"hex", `0x1F`, []Token{tok(TokenInteger, `0x1F`), tEOF}},
	{"decimal", `0.0`, []Token{tok(TokenDecimal, `0.0`), tEOF}},
	{"leading dot decimal", `.5`, []Token{tok(TokenDecimal, `.5`), tEOF}},
	{"exponent", `1e10`, []Token{tok(TokenDecimal, `1e10`), tEOF}},
	{"negative infinity", `-Infinity`, []Token{tok(TokenKeyword, `-Infinity`), tEOF}},
	{"lone minus", `- 1`, []Token{tok(TokenError, `-`), tWhitespace, tok(TokenInteger, "1"), tEOF}},
	{"unknown", `@`, []Token{tok(TokenError, `@`), tEOF}},
}

func TestLexer(t *testing.T) {
	for _, test := range lexerTests {
		t.Run(test.name, func(t *testing.T) {
			tokens := collect(&test)
			if !equal(tokens, test.tokens) {
				t.Errorf("%s: got\n\t%+v\nexpected\n\t%+v", test.name, tokens, test.tokens)
			}
		})
	}
}

func TestLexerCoversInput(t *testing.T) {
	input := "[Exposed=Window]\ninterface Föö : Bar {\n  attribute long x; // ü\n  @ ... -Infinity\n};"
	tokens := Lex(input)

	var sb strings.Builder
	offset := 0
	for _, token := range tokens {
		require.Equal(t, offset, token.Start, "gap before %v", token)
		require.Equal(t, token.Start+len(token.Text), token.End)
		sb.WriteString(token.Text)
		offset = token.End
	}
	assert.Equal(t, input, sb.String())
}

func TestLexerPositions(t *testing.T) {
	tokens := Lex("interface Föö {\n  x;\n}")

	byText := map[string]Token{}
	for _, token := range tokens {
		byText[token.Text] = token
	}

	assert.Equal(t, 1, byText["interface"].Line)
	assert.Equal(t, 0, byText["interface"].Column)
	assert.Equal(t, 14, byText["{"].Column, "columns count runes, not bytes")
	assert.Equal(t, 2, byText["x"].Line)
	assert.Equal(t, 2, byText["x"].Column)
	assert.Equal(t, 3, byText["}"].Line)

	line, column := byText["{"].EndPosition()
	assert.Equal(t, 1, line)
	assert.Equal(t, 15, column)
}

// collect gathers the emitted tokens into a slice.
func collect(t *lexerTest) (tokens []Token) {
	l := lex(t.input)
	for {
		token := l.nextToken()
		tokens = append(tokens, token)
		if token.Kind == TokenEOF {
			break
		}
	}
	return
}

// equal checks that the two sets of tokens have the same kinds and text.
func equal(i1, i2 []Token) bool {
	if len(i1) != len(i2) {
		return false
	}
	for k := range i1 {
		if i1[k].Kind != i2[k].Kind {
			return false
		}
		if i1[k].Text != i2[k].Text {
			return false
		}
	}
	return true
}
