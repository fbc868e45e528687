// Package editor derives editor features from a structural tree: folding
// regions, highlight categories, brace matching and keyword completion.
package editor

import (
	"github.com/dennwc/webidlstruct/ast"
	"github.com/dennwc/webidlstruct/parser"
	"github.com/dennwc/webidlstruct/structure"
)

// FoldPlaceholder is shown in place of a folded body.
const FoldPlaceholder = "{...}"

// Fold is a foldable source region.
type Fold struct {
	Range       ast.SourceRange `yaml:"range"`
	Placeholder string          `yaml:"placeholder"`
}

// Folds returns a region for every definition body wider than "{}".
func Folds(tree *structure.Tree) []Fold {
	var out []Fold
	tree.Walk(func(n *structure.Node, _ int) bool {
		if n.Kind == structure.KindBody && n.Range.Len() > 2 {
			out = append(out, Fold{Range: n.Range, Placeholder: FoldPlaceholder})
		}
		return n.Kind == structure.KindFile || n.Kind == structure.KindDefinition
	})
	return out
}

// MatchBrace returns the range of the bracket paired with the one starting
// at offset. Braces, parentheses and square brackets pair up; angle brackets
// do not.
func MatchBrace(tree *structure.Tree, offset int) (ast.SourceRange, bool) {
	var tokens []*structure.Node
	at := -1
	for _, leaf := range tree.Leaves() {
		if leaf.Kind != structure.KindToken {
			continue
		}
		if _, ok := pairs[leaf.Token.Kind]; ok && leaf.Range.StartOffset == offset {
			at = len(tokens)
		}
		tokens = append(tokens, leaf)
	}
	if at < 0 {
		return ast.SourceRange{}, false
	}

	kind := tokens[at].Token.Kind
	pair := pairs[kind]
	step := 1
	if isClosing(kind) {
		step = -1
	}
	depth := 0
	for i := at; i >= 0 && i < len(tokens); i += step {
		switch tokens[i].Token.Kind {
		case kind:
			depth++
		case pair:
			depth--
			if depth == 0 {
				return tokens[i].Range, true
			}
		}
	}
	return ast.SourceRange{}, false
}

var pairs = map[parser.TokenKind]parser.TokenKind{
	parser.TokenLeftBrace:    parser.TokenRightBrace,
	parser.TokenRightBrace:   parser.TokenLeftBrace,
	parser.TokenLeftParen:    parser.TokenRightParen,
	parser.TokenRightParen:   parser.TokenLeftParen,
	parser.TokenLeftBracket:  parser.TokenRightBracket,
	parser.TokenRightBracket: parser.TokenLeftBracket,
}

func isClosing(k parser.TokenKind) bool {
	return k == parser.TokenRightBrace || k == parser.TokenRightParen || k == parser.TokenRightBracket
}
