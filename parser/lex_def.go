// Copyright 2015 The Serulian Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Based on design first introduced in: http://blog.golang.org/two-go-talks-lexical-scanning-in-go-and
// Portions copied and modified from: https://github.com/golang/go/blob/master/src/text/template/parse/lex.go

package parser

// lex creates a new scanner for the input string.
func lex(input string) *lexer {
	return buildlex(input, lexSource)
}

// Lex splits input into tokens. Every byte of input belongs to exactly one
// token; the trailing EOF token is not included.
func Lex(input string) []Token {
	l := lex(input)
	var tokens []Token
	for {
		t := l.nextToken()
		if t.Kind == TokenEOF {
			return tokens
		}
		tokens = append(tokens, t)
	}
}

// TokenKind identifies the type of lexer tokens.
type TokenKind int

const (
	TokenError TokenKind = iota // unrecognized character
	TokenEOF
	TokenWhitespace
	TokenLineComment
	TokenBlockComment

	TokenIdentifier // helloworld
	TokenKeyword    // interface
	TokenString     // "hello"
	TokenInteger    // 123, 0x1F, -1
	TokenDecimal    // 0.5, 1e3

	TokenLeftBrace    // {
	TokenRightBrace   // }
	TokenLeftParen    // (
	TokenRightParen   // )
	TokenLeftBracket  // [
	TokenRightBracket // ]
	TokenLeftAngle    // <
	TokenRightAngle   // >

	TokenEquals       // =
	TokenSemicolon    // ;
	TokenComma        // ,
	TokenQuestionMark // ?
	TokenColon        // :
	TokenEllipsis     // ...
	TokenAsterisk     // *
)

var tokenKindNames = [...]string{
	TokenError:        "Error",
	TokenEOF:          "EOF",
	TokenWhitespace:   "Whitespace",
	TokenLineComment:  "LineComment",
	TokenBlockComment: "BlockComment",
	TokenIdentifier:   "Identifier",
	TokenKeyword:      "Keyword",
	TokenString:       "String",
	TokenInteger:      "Integer",
	TokenDecimal:      "Decimal",
	TokenLeftBrace:    "'{'",
	TokenRightBrace:   "'}'",
	TokenLeftParen:    "'('",
	TokenRightParen:   "')'",
	TokenLeftBracket:  "'['",
	TokenRightBracket: "']'",
	TokenLeftAngle:    "'<'",
	TokenRightAngle:   "'>'",
	TokenEquals:       "'='",
	TokenSemicolon:    "';'",
	TokenComma:        "','",
	TokenQuestionMark: "'?'",
	TokenColon:        "':'",
	TokenEllipsis:     "'...'",
	TokenAsterisk:     "'*'",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "TokenKind(?)"
}

// keywords are the reserved words of WebIDL. An identifier-shaped run that
// matches one of them is emitted as TokenKeyword.
var keywords = map[string]bool{
	// argument name keywords
	"async": true, "attribute": true, "callback": true, "const": true,
	"constructor": true, "deleter": true, "dictionary": true, "enum": true,
	"getter": true, "includes": true, "inherit": true, "interface": true,
	"iterable": true, "maplike": true, "mixin": true, "namespace": true,
	"partial": true, "readonly": true, "required": true, "setlike": true,
	"setter": true, "static": true, "stringifier": true, "typedef": true,
	"unrestricted": true,

	"optional": true, "or": true, "any": true, "boolean": true, "byte": true,
	"bigint": true, "double": true, "false": true, "float": true, "long": true,
	"null": true, "object": true, "octet": true, "sequence": true, "short": true,
	"symbol": true, "true": true, "undefined": true, "unsigned": true, "void": true,

	"ArrayBuffer": true, "SharedArrayBuffer": true, "DataView": true,
	"Int8Array": true, "Int16Array": true, "Int32Array": true,
	"Uint8Array": true, "Uint16Array": true, "Uint32Array": true,
	"Uint8ClampedArray": true, "BigInt64Array": true, "BigUint64Array": true,
	"Float16Array": true, "Float32Array": true, "Float64Array": true,

	"ByteString": true, "DOMString": true, "USVString": true,
	"Promise": true, "record": true, "FrozenArray": true, "ObservableArray": true,
	"async_iterable": true, "async_sequence": true,

	"Infinity": true, "-Infinity": true, "NaN": true,
}

// IsKeyword reports whether word is a reserved WebIDL word.
func IsKeyword(word string) bool {
	return keywords[word]
}

// lexSource scans a single token and returns itself until EOFRUNE.
func lexSource(l *lexer) stateFn {
	switch r := l.next(); {
	case r == EOFRUNE:
		return l.emitEOF()

	case r == '{':
		l.emit(TokenLeftBrace)

	case r == '}':
		l.emit(TokenRightBrace)

	case r == '(':
		l.emit(TokenLeftParen)

	case r == ')':
		l.emit(TokenRightParen)

	case r == '[':
		l.emit(TokenLeftBracket)

	case r == ']':
		l.emit(TokenRightBracket)

	case r == '<':
		l.emit(TokenLeftAngle)

	case r == '>':
		l.emit(TokenRightAngle)

	case r == ';':
		l.emit(TokenSemicolon)

	case r == ',':
		l.emit(TokenComma)

	case r == '=':
		l.emit(TokenEquals)

	case r == '?':
		l.emit(TokenQuestionMark)

	case r == ':':
		l.emit(TokenColon)

	case r == '*':
		l.emit(TokenAsterisk)

	case r == '.':
		switch {
		case l.acceptString(".."):
			l.emit(TokenEllipsis)
		case isDigit(l.peek()):
			l.pos = l.start
			return lexNumber
		default:
			l.emit(TokenError)
		}

	case r == '-':
		if l.acceptString("Infinity") && !isIdentifierRune(l.peek()) {
			l.emit(TokenKeyword)
			break
		}
		l.pos = l.start + 1
		if isDigit(l.peek()) || (l.peek() == '.' && isDigit(l.peekAt(1))) {
			l.pos = l.start
			return lexNumber
		}
		l.emit(TokenError)

	case isDigit(r):
		l.backup()
		return lexNumber

	case isSpace(r) || isNewline(r):
		l.acceptWhile(func(r rune) bool { return isSpace(r) || isNewline(r) })
		l.emit(TokenWhitespace)

	case r == '"':
		l.backup()
		return lexStringLiteral

	case isLetter(r) || r == '_':
		l.backup()
		return lexIdentifierOrKeyword

	case r == '/':
		switch l.peek() {
		case '/':
			return lexSinglelineComment
		case '*':
			return lexMultilineComment
		default:
			l.emit(TokenError)
		}

	default:
		l.emit(TokenError)
	}
	return lexSource
}

// lexSinglelineComment scans until newline or EOFRUNE.
func lexSinglelineComment(l *lexer) stateFn {
	l.acceptWhile(func(r rune) bool { return !isNewline(r) })
	l.emit(TokenLineComment)
	return lexSource
}

// lexMultilineComment scans until the closing */ or EOFRUNE.
func lexMultilineComment(l *lexer) stateFn {
	l.next() // *
	for {
		if l.acceptString("*/") {
			break
		}
		if l.next() == EOFRUNE {
			break
		}
	}
	l.emit(TokenBlockComment)
	return lexSource
}

// lexIdentifierOrKeyword scans an identifier and emits it as a keyword when reserved.
func lexIdentifierOrKeyword(l *lexer) stateFn {
	l.accept("_")
	if !isLetter(l.peek()) {
		// a lone underscore
		l.emit(TokenError)
		return lexSource
	}
	l.acceptWhile(isIdentifierRune)

	if keywords[l.input[l.start:l.pos]] {
		l.emit(TokenKeyword)
	} else {
		l.emit(TokenIdentifier)
	}
	return lexSource
}

// lexNumber scans an integer or decimal literal, including an optional leading minus.
func lexNumber(l *lexer) stateFn {
	l.accept("-")
	if l.acceptString("0x") || l.acceptString("0X") {
		l.acceptWhile(isHexDigit)
		l.emit(TokenInteger)
		return lexSource
	}

	kind := TokenInteger
	l.acceptWhile(isDigit)
	if l.peek() == '.' && l.peekAt(1) != '.' {
		l.next()
		l.acceptWhile(isDigit)
		kind = TokenDecimal
	}
	if r := l.peek(); r == 'e' || r == 'E' {
		exp := l.pos
		l.next()
		l.accept("+-")
		if l.acceptRun("0123456789") > 0 {
			kind = TokenDecimal
		} else {
			l.pos = exp
		}
	}
	l.emit(kind)
	return lexSource
}

// lexStringLiteral scans a double-quoted string. WebIDL strings have no
// escapes; an unterminated quote is emitted as an error token on its own.
func lexStringLiteral(l *lexer) stateFn {
	l.accept(`"`)
	for {
		r := l.next()
		if r == '"' {
			l.emit(TokenString)
			return lexSource
		}
		if r == EOFRUNE {
			l.pos = l.start + 1
			l.emit(TokenError)
			return lexSource
		}
	}
}
