package parser

import (
	"fmt"
	"strings"
)

// Token is a lexical token with its byte span and start position.
type Token struct {
	Kind   TokenKind
	Text   string
	Start  int // byte offset of the first byte
	End    int // byte offset one past the last byte
	Line   int // 1-based
	Column int // 0-based, counted in runes
}

// Stop returns the offset of the last byte of the token, End-1.
func (t Token) Stop() int {
	return t.End - 1
}

// EndPosition returns the line and column right after the token.
func (t Token) EndPosition() (line, column int) {
	return advancePosition(t.Line, t.Column, t.Text)
}

// IsTrivia reports whether the token is whitespace or a comment.
func (t Token) IsTrivia() bool {
	switch t.Kind {
	case TokenWhitespace, TokenLineComment, TokenBlockComment:
		return true
	}
	return false
}

// IsKeyword reports whether the token is the given keyword.
func (t Token) IsKeyword(keyword string) bool {
	return t.Kind == TokenKeyword && t.Text == keyword
}

// IsWord reports whether the token is identifier-shaped.
func (t Token) IsWord() bool {
	return t.Kind == TokenIdentifier || t.Kind == TokenKeyword
}

// Display renders the token the way it is quoted in syntax error messages.
func (t Token) Display() string {
	if t.Kind == TokenEOF {
		return "<EOF>"
	}
	text := strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`).Replace(t.Text)
	return "'" + text + "'"
}

func (t Token) String() string {
	return fmt.Sprintf("%v(%q)@%d", t.Kind, t.Text, t.Start)
}

// IsTypeKeyword reports whether the token is a keyword that may start a type.
func (t Token) IsTypeKeyword() bool {
	if t.Kind != TokenKeyword {
		return false
	}
	for _, k := range typeKeywords {
		if t.Text == k {
			return true
		}
	}
	return false
}
