package structure

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dennwc/webidlstruct/ast"
	"github.com/dennwc/webidlstruct/parser"
	"github.com/dennwc/webidlstruct/syntaxerr"
)

// builder walks the token stream once, opening and closing nodes around it.
type builder struct {
	log    *zerolog.Logger
	tokens []parser.Token
	pos    int
	errs   []syntaxerr.Error
	errPos int
	stack  []*Node
}

func newBuilder(ctx context.Context, tokens []parser.Token, errs []syntaxerr.Error) *builder {
	if n := len(tokens); n > 0 && tokens[n-1].Kind == parser.TokenEOF {
		tokens = tokens[:n-1]
	}
	b := &builder{
		log:    zerolog.Ctx(ctx),
		tokens: tokens,
		errs:   syntaxerr.Sorted(errs),
	}
	root := &Node{Kind: KindFile}
	b.stack = []*Node{root}
	return b
}

// Build builds the structural tree of a file from its token stream (trivia
// included), its AST and its syntax errors. A nil file yields the fallback
// tree.
func Build(ctx context.Context, tokens []parser.Token, file *ast.File, errs []syntaxerr.Error) *Tree {
	if file == nil {
		return BuildFallback(ctx, tokens, errs)
	}
	b := newBuilder(ctx, tokens, errs)
	for _, def := range file.Definitions {
		b.definition(def)
	}
	return b.finish(false)
}

// BuildFallback builds a flat tree holding only tokens and error nodes.
func BuildFallback(ctx context.Context, tokens []parser.Token, errs []syntaxerr.Error) *Tree {
	return newBuilder(ctx, tokens, errs).finish(true)
}

// finish consumes the remaining tokens at the root, appends the remaining
// errors as empty nodes and closes the root.
func (b *builder) finish(degraded bool) *Tree {
	for !b.eof() {
		b.drainErrors()
		if !b.eof() {
			b.advance()
		}
	}
	for ; b.errPos < len(b.errs); b.errPos++ {
		n := b.open(KindError)
		n.Message = b.errs[b.errPos].Message
		b.close()
	}

	root := b.stack[0]
	end := b.here()
	root.Range = ast.SourceRange{StartLine: 1, EndLine: end.StartLine, EndColumn: end.StartColumn, EndOffset: end.StartOffset}
	return &Tree{Root: root, Degraded: degraded}
}

func (b *builder) eof() bool {
	return b.pos >= len(b.tokens)
}

// offset returns the start of the current token, or the end of input.
func (b *builder) offset() int {
	return b.here().StartOffset
}

// here returns an empty range at the cursor.
func (b *builder) here() ast.SourceRange {
	if !b.eof() {
		t := b.tokens[b.pos]
		return ast.SourceRange{
			StartLine: t.Line, StartColumn: t.Column,
			EndLine: t.Line, EndColumn: t.Column,
			StartOffset: t.Start, EndOffset: t.Start,
		}
	}
	if len(b.tokens) == 0 {
		return ast.SourceRange{StartLine: 1, EndLine: 1}
	}
	last := b.tokens[len(b.tokens)-1]
	line, col := last.EndPosition()
	return ast.SourceRange{
		StartLine: line, StartColumn: col,
		EndLine: line, EndColumn: col,
		StartOffset: last.End, EndOffset: last.End,
	}
}

func (b *builder) top() *Node {
	return b.stack[len(b.stack)-1]
}

// open attaches a new node to the current one and makes it current.
func (b *builder) open(kind Kind) *Node {
	n := &Node{Kind: kind}
	top := b.top()
	top.Children = append(top.Children, n)
	b.stack = append(b.stack, n)
	return n
}

// close closes the current node, spanning its children or, if it has none,
// an empty range at the cursor.
func (b *builder) close() *Node {
	n := b.top()
	b.stack = b.stack[:len(b.stack)-1]
	if len(n.Children) == 0 {
		n.Range = b.here()
		return n
	}
	first, last := n.Children[0].Range, n.Children[len(n.Children)-1].Range
	n.Range = ast.SourceRange{
		StartLine: first.StartLine, StartColumn: first.StartColumn,
		EndLine: last.EndLine, EndColumn: last.EndColumn,
		StartOffset: first.StartOffset, EndOffset: last.EndOffset,
	}
	return n
}

// advance attaches the current token as a leaf and moves past it.
func (b *builder) advance() *parser.Token {
	t := b.tokens[b.pos]
	b.pos++
	line, col := t.EndPosition()
	top := b.top()
	top.Children = append(top.Children, &Node{
		Kind:  KindToken,
		Token: &t,
		Range: ast.SourceRange{
			StartLine: t.Line, StartColumn: t.Column,
			EndLine: line, EndColumn: col,
			StartOffset: t.Start, EndOffset: t.End,
		},
	})
	return &t
}

// drainErrors emits every pending error that starts at or before the cursor.
// An error covers the tokens up to its end, or exactly one token if its span
// is empty or already behind the cursor.
func (b *builder) drainErrors() {
	for b.errPos < len(b.errs) && b.errs[b.errPos].Start <= b.offset() {
		err := b.errs[b.errPos]
		b.errPos++

		n := b.open(KindError)
		n.Message = err.Message
		if err.End > err.Start && b.offset() < err.End {
			for !b.eof() && b.offset() < err.End {
				b.advance()
			}
		} else if !b.eof() {
			b.advance()
		}
		b.close()
	}
}
