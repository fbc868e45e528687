package main

import (
	"context"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"

	"github.com/dennwc/webidlstruct/ast"
	"github.com/dennwc/webidlstruct/idl"
)

// corpus is a set of parsed files in load order.
type corpus struct {
	results []*idl.Result
}

func (c *corpus) files() []*ast.File {
	out := make([]*ast.File, len(c.results))
	for i, res := range c.results {
		out[i] = res.File
	}
	return out
}

// loadCorpus parses every file matched by patterns. Patterns without glob
// syntax name a single file. Files that cannot be read are reported in the
// returned error; the others are still loaded.
func loadCorpus(ctx context.Context, fs afero.Fs, patterns []string) (*corpus, error) {
	log := zerolog.Ctx(ctx)

	paths, err := expand(fs, patterns)
	c := &corpus{}
	for _, p := range paths {
		data, rerr := afero.ReadFile(fs, p)
		if rerr != nil {
			err = multierr.Append(err, errors.Errorf("reading %s: %w", p, rerr))
			continue
		}
		res := idl.Parse(ctx, p, string(data))
		log.Debug().Str("file", p).Int("errors", len(res.Errors)).Bool("degraded", res.Degraded).Msg("parsed")
		c.results = append(c.results, res)
	}
	return c, err
}

// expand resolves patterns to a deduplicated list of paths. Matches of one
// glob are sorted; patterns keep their order.
func expand(fs afero.Fs, patterns []string) ([]string, error) {
	var (
		out  []string
		seen = map[string]bool{}
		err  error
	)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	fsys := afero.NewIOFS(fs)
	for _, pattern := range patterns {
		if !hasMeta(pattern) {
			add(pattern)
			continue
		}
		matches, gerr := doublestar.Glob(fsys, path.Clean(pattern), doublestar.WithFilesOnly())
		if gerr != nil {
			err = multierr.Append(err, errors.Errorf("matching %q: %w", pattern, gerr))
			continue
		}
		if len(matches) == 0 {
			err = multierr.Append(err, errors.Errorf("no files match %q", pattern))
			continue
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}
	return out, err
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
