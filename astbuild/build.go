// Package astbuild turns the concrete syntax tree produced by package parser
// into the typed AST of package ast.
//
// Faults are contained at the nearest definition or member boundary: a
// definition that cannot be built becomes an ast.BrokenDefinition, a body
// member an ast.BrokenMember, and the rest of the file is built normally.
package astbuild

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/dennwc/webidlstruct/ast"
	"github.com/dennwc/webidlstruct/parser"
)

// fault carries a construction failure up to the nearest isolation boundary.
type fault struct {
	err error
}

type builder struct {
	log *zerolog.Logger
}

// Build builds the AST for a CST root returned by parser.Parse. An error is
// returned only when the tree cannot be used at all: the root is not a file
// node, or a definition fails in a way that leaves no range to attach a
// placeholder to.
func Build(ctx context.Context, root *parser.Node) (file *ast.File, err error) {
	if root == nil || root.Rule != parser.RuleFile {
		return nil, errors.New("building AST: root is not a file node")
	}

	b := &builder{log: zerolog.Ctx(ctx)}

	defer func() {
		if r := recover(); r != nil {
			file, err = nil, errors.Errorf("building AST: %v", r)
		}
	}()

	file = &ast.File{Range: fileRange(root)}
	for entry := root.Child(parser.RuleDefinitions); entry != nil; entry = entry.Child(parser.RuleDefinitions) {
		def, defErr := b.definitionEntry(entry)
		if defErr != nil {
			return nil, errors.Errorf("building AST: %w", defErr)
		}
		file.Definitions = append(file.Definitions, def)
	}

	return file, nil
}

// definitionEntry builds the definition held by one element of the
// definitions chain, substituting a placeholder if it faults.
func (b *builder) definitionEntry(entry *parser.Node) (ast.Definition, error) {
	var def ast.Definition
	err := isolate(func() {
		def = b.definition(entry)
	})
	if err == nil {
		return def, nil
	}

	rng, ok := headRange(entry, parser.RuleDefinitions)
	if !ok {
		return nil, errors.Errorf("definition has no tokens: %w", err)
	}
	b.log.Debug().Err(err).Int("line", rng.StartLine).Int("column", rng.StartColumn).
		Msg("definition replaced by placeholder")

	return &ast.BrokenDefinition{
		BaseNode:   ast.BaseNode{Range: rng},
		Identifier: ast.Identifier{Value: headText(entry, parser.RuleDefinitions), Range: rng},
	}, nil
}

// isolate runs fn and converts a fault, or any other panic, into an error.
func isolate(fn func()) (err error) {
	defer func() {
		r := recover()
		switch v := r.(type) {
		case nil:
		case fault:
			err = v.err
		case error:
			err = errors.Errorf("unexpected failure: %w", v)
		default:
			err = errors.Errorf("unexpected failure: %v", v)
		}
	}()
	fn()
	return nil
}

// fail aborts construction up to the nearest isolation boundary.
func (b *builder) fail(format string, args ...interface{}) {
	panic(fault{errors.Errorf(format, args...)})
}

// must returns n, failing if it is missing.
func (b *builder) must(n *parser.Node, what string) *parser.Node {
	if n == nil {
		b.fail("missing %s", what)
	}
	return n
}

// production returns the first child of n that is neither a token nor a
// recovery node.
func (b *builder) production(n *parser.Node) *parser.Node {
	for _, c := range n.Children {
		if !c.IsTerminal() && c.Rule != parser.RuleError {
			return c
		}
	}
	b.fail("%v has no production", n.Rule)
	return nil
}

// identifier returns the first identifier token under n as an Identifier.
func (b *builder) identifier(n *parser.Node) ast.Identifier {
	t := n.Terminal(parser.TokenIdentifier)
	if t == nil {
		b.fail("%v has no identifier", n.Rule)
	}
	return identifierOf(t)
}

// word returns the first identifier or keyword token under n as an Identifier.
func (b *builder) word(n *parser.Node) ast.Identifier {
	words := n.Words()
	if len(words) == 0 {
		b.fail("%v has no name", n.Rule)
	}
	return identifierOf(words[0])
}

func identifierOf(t *parser.Token) ast.Identifier {
	return ast.Identifier{Value: t.Text, Range: spanOf(t, t)}
}

func (b *builder) rangeOf(n *parser.Node) ast.SourceRange {
	first, last := n.FirstToken(), n.LastToken()
	if first == nil {
		b.fail("%v has no tokens", n.Rule)
	}
	return spanOf(first, last)
}

func spanOf(first, last *parser.Token) ast.SourceRange {
	endLine, endColumn := last.EndPosition()
	return ast.SourceRange{
		StartLine:   first.Line,
		StartColumn: first.Column,
		EndLine:     endLine,
		EndColumn:   endColumn,
		StartOffset: first.Start,
		EndOffset:   last.End,
	}
}

// headRange covers the tokens of n that are not under a child built by tail.
// Elements of right-recursive chains use it to exclude the rest of the chain.
func headRange(n *parser.Node, tail parser.Rule) (ast.SourceRange, bool) {
	var first, last *parser.Token
	for _, c := range n.Children {
		if c.Rule == tail {
			continue
		}
		if t := c.FirstToken(); t != nil && first == nil {
			first = t
		}
		if t := c.LastToken(); t != nil {
			last = t
		}
	}
	if first == nil {
		return ast.SourceRange{}, false
	}
	return spanOf(first, last), true
}

func (b *builder) headRange(n *parser.Node, tail parser.Rule) ast.SourceRange {
	rng, ok := headRange(n, tail)
	if !ok {
		b.fail("%v has no tokens", n.Rule)
	}
	return rng
}

func headText(n *parser.Node, tail parser.Rule) string {
	var text string
	for _, c := range n.Children {
		if c.Rule != tail {
			text += c.Text()
		}
	}
	return text
}

func fileRange(root *parser.Node) ast.SourceRange {
	first, last := root.FirstToken(), root.LastToken()
	if first == nil {
		return ast.SourceRange{StartLine: 1, EndLine: 1}
	}
	rng := spanOf(first, last)
	rng.StartLine, rng.StartColumn, rng.StartOffset = 1, 0, 0
	return rng
}
