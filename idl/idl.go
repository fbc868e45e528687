// Package idl runs the whole pipeline over one WebIDL source: lexing,
// parsing, error collection, AST construction and the structural tree.
package idl

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dennwc/webidlstruct/ast"
	"github.com/dennwc/webidlstruct/astbuild"
	"github.com/dennwc/webidlstruct/parser"
	"github.com/dennwc/webidlstruct/structure"
	"github.com/dennwc/webidlstruct/syntaxerr"
)

// Result holds everything produced for one source.
type Result struct {
	Name   string
	Source string
	// Tokens is the complete token stream, trivia included.
	Tokens []parser.Token
	CST    *parser.Node
	// Errors holds the syntax errors in the order they were reported.
	Errors []syntaxerr.Error
	// File is nil when Degraded is set.
	File *ast.File
	Tree *structure.Tree
	// Degraded is set when the AST could not be built and Tree is the flat
	// fallback tree.
	Degraded bool
}

// Parse runs the pipeline over src. It always returns a result with a tree
// whose leaves tile src; name is only used for logging.
func Parse(ctx context.Context, name, src string) (res *Result) {
	log := zerolog.Ctx(ctx).With().Str("file", name).Logger()
	ctx = log.WithContext(ctx)

	res = &Result{Name: name, Source: src}
	collector := syntaxerr.NewCollector(ctx)

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		log.Warn().Interface("panic", r).Msg("pipeline failed, falling back to a flat tree")
		if res.Tokens == nil {
			res.Tokens = parser.Lex(src)
		}
		res.Errors = collector.Errors()
		res.File, res.Degraded = nil, true
		res.Tree = structure.BuildFallback(ctx, res.Tokens, res.Errors)
	}()

	res.CST, res.Tokens = parser.Parse(src, collector)
	res.Errors = collector.Errors()

	file, err := astbuild.Build(ctx, res.CST)
	if err != nil {
		log.Warn().Err(err).Msg("AST construction failed, falling back to a flat tree")
		res.Degraded = true
		res.Tree = structure.BuildFallback(ctx, res.Tokens, res.Errors)
		return res
	}
	res.File = file
	res.Tree = structure.Build(ctx, res.Tokens, file, res.Errors)
	return res
}
