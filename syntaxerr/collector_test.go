package syntaxerr

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dennwc/webidlstruct/parser"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger().WithContext(context.Background())
}

func TestCollectorRanges(t *testing.T) {
	c := NewCollector(testContext(t))
	parser.Parse("interface Foo {\n  attribute long;\n", c)

	errs := c.Errors()
	require.NotEmpty(t, errs)
	for _, e := range errs {
		assert.GreaterOrEqual(t, e.End, e.Start)
		assert.GreaterOrEqual(t, e.Start, 0)
	}
	assert.Equal(t, Error{Message: "missing attribute name at ';'", Start: 32, End: 33, Line: 2, Column: 16}, errs[0])
}

func TestCollectorEOFError(t *testing.T) {
	c := NewCollector(testContext(t))
	parser.Parse("enum E", c)

	errs := c.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "missing '{' at <EOF>", errs[0].Message)
	// EOF has no bytes: the range is empty at the end of input.
	assert.Equal(t, 6, errs[0].Start)
	assert.Equal(t, 6, errs[0].End)
}

func TestCollectorDropsInvalidRanges(t *testing.T) {
	c := NewCollector(testContext(t))
	c.SyntaxError(parser.Token{Kind: parser.TokenIdentifier, Start: 5, End: 3}, 1, 5, "inverted")
	c.SyntaxError(parser.Token{Kind: parser.TokenIdentifier, Start: -1, End: 0}, 1, 0, "negative")
	c.SyntaxError(parser.Token{Kind: parser.TokenIdentifier, Start: 2, End: 4}, 1, 2, "kept")

	errs := c.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "kept", errs[0].Message)
	assert.Equal(t, "1:2: kept", errs[0].Error())
}

func TestErrorsIsACopy(t *testing.T) {
	c := NewCollector(testContext(t))
	c.SyntaxError(parser.Token{Start: 0, End: 1}, 1, 0, "a")

	errs := c.Errors()
	errs[0].Message = "changed"
	assert.Equal(t, "a", c.Errors()[0].Message)
}

func TestSorted(t *testing.T) {
	errs := []Error{
		{Message: "c", Start: 9},
		{Message: "a", Start: 1},
		{Message: "b1", Start: 4},
		{Message: "b2", Start: 4},
	}
	sorted := Sorted(errs)

	var got []string
	for _, e := range sorted {
		got = append(got, e.Message)
	}
	assert.Equal(t, []string{"a", "b1", "b2", "c"}, got)
	assert.Equal(t, "c", errs[0].Message)
}
