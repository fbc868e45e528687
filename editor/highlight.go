package editor

import (
	"fmt"

	"github.com/dennwc/webidlstruct/ast"
	"github.com/dennwc/webidlstruct/parser"
	"github.com/dennwc/webidlstruct/structure"
)

// Category is a highlighting class.
type Category int

const (
	CategoryNone Category = iota
	CategoryKeyword
	CategoryType
	CategoryIdentifier
	CategoryConstant
	CategoryString
	CategoryNumber
	CategoryLineComment
	CategoryBlockComment
	CategoryBraces
	CategoryBrackets
	CategoryParentheses
	CategoryOperator
	CategorySemicolon
	CategoryComma
	CategoryColon
	CategoryBadCharacter
)

var categoryNames = [...]string{
	CategoryNone:         "none",
	CategoryKeyword:      "keyword",
	CategoryType:         "type",
	CategoryIdentifier:   "identifier",
	CategoryConstant:     "constant",
	CategoryString:       "string",
	CategoryNumber:       "number",
	CategoryLineComment:  "lineComment",
	CategoryBlockComment: "blockComment",
	CategoryBraces:       "braces",
	CategoryBrackets:     "brackets",
	CategoryParentheses:  "parentheses",
	CategoryOperator:     "operator",
	CategorySemicolon:    "semicolon",
	CategoryComma:        "comma",
	CategoryColon:        "colon",
	CategoryBadCharacter: "badCharacter",
}

func (c Category) String() string {
	if c >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Highlight is a categorized token range.
type Highlight struct {
	Range    ast.SourceRange `yaml:"range"`
	Category Category        `yaml:"category"`
}

// Highlights returns the highlighted tokens of the tree in source order.
// Whitespace is not highlighted. A keyword used as a declared name is
// highlighted as an identifier.
func Highlights(tree *structure.Tree) []Highlight {
	var out []Highlight
	var walk func(n *structure.Node, named bool)
	walk = func(n *structure.Node, named bool) {
		if n.Kind == structure.KindToken {
			if c := categorize(*n.Token, named); c != CategoryNone {
				out = append(out, Highlight{Range: n.Range, Category: c})
			}
			return
		}
		for _, c := range n.Children {
			walk(c, named || n.Kind == structure.KindName)
		}
	}
	walk(tree.Root, false)
	return out
}

func categorize(t parser.Token, named bool) Category {
	switch t.Kind {
	case parser.TokenIdentifier:
		if isConstantName(t.Text) {
			return CategoryConstant
		}
		return CategoryIdentifier
	case parser.TokenKeyword:
		switch {
		case named:
			return CategoryIdentifier
		case t.IsTypeKeyword():
			return CategoryType
		}
		return CategoryKeyword
	case parser.TokenString:
		return CategoryString
	case parser.TokenInteger, parser.TokenDecimal:
		return CategoryNumber
	case parser.TokenLineComment:
		return CategoryLineComment
	case parser.TokenBlockComment:
		return CategoryBlockComment
	case parser.TokenLeftBrace, parser.TokenRightBrace:
		return CategoryBraces
	case parser.TokenLeftBracket, parser.TokenRightBracket:
		return CategoryBrackets
	case parser.TokenLeftParen, parser.TokenRightParen:
		return CategoryParentheses
	case parser.TokenLeftAngle, parser.TokenRightAngle, parser.TokenQuestionMark,
		parser.TokenEllipsis, parser.TokenEquals, parser.TokenAsterisk:
		return CategoryOperator
	case parser.TokenSemicolon:
		return CategorySemicolon
	case parser.TokenComma:
		return CategoryComma
	case parser.TokenColon:
		return CategoryColon
	case parser.TokenError:
		return CategoryBadCharacter
	}
	return CategoryNone
}

// isConstantName reports whether name is written in upper snake case, like
// CONSTANT or MAX_VALUE_2. Single letters are not constants.
func isConstantName(name string) bool {
	if len(name) < 2 || name[0] < 'A' || name[0] > 'Z' {
		return false
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') && c != '_' {
			return false
		}
	}
	return true
}
