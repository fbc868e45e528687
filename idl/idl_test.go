package idl

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dennwc/webidlstruct/ast"
	"github.com/dennwc/webidlstruct/structure"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger().WithContext(context.Background())
}

func leafText(res *Result) string {
	var sb strings.Builder
	for _, leaf := range res.Tree.Leaves() {
		sb.WriteString(structure.Text(res.Source, leaf))
	}
	return sb.String()
}

func TestParseDictionaryExample(t *testing.T) {
	res := Parse(testContext(t), "d.webidl", "dictionary D : Base { required DOMString id; };")
	require.False(t, res.Degraded)
	require.Empty(t, res.Errors)
	require.Len(t, res.File.Definitions, 1)

	dict := res.File.Definitions[0].(*ast.Dictionary)
	assert.Equal(t, "D", dict.Identifier.Value)
	assert.Equal(t, "Base", dict.Inheritance.Value)
	require.Len(t, dict.Members, 1)
	assert.Equal(t, "id", dict.Members[0].Name.Value)
	assert.True(t, dict.Members[0].Required)
	assert.Equal(t, ast.DOMString, dict.Members[0].Type.(*ast.PrimitiveType).Kind)
}

func TestParseMalformedNeverFails(t *testing.T) {
	inputs := []string{
		"interface Foo {",
		"interface",
		"};};};",
		"[",
		"dictionary D { required long; };",
		"interface A { readonly maplike<long>; };",
		strings.Repeat("interface A { attribute long a; };\n", 200),
	}
	for _, src := range inputs {
		res := Parse(testContext(t), "bad.webidl", src)
		require.NotNil(t, res.Tree)
		assert.Equal(t, src, leafText(res))
		assert.Equal(t, len(src), res.Tree.Root.Range.EndOffset)
	}
}

func TestParseIdempotent(t *testing.T) {
	src := `[Exposed=Window] interface A : B { attribute (long or DOMString)? x; };
enum E { "a" };`
	first := Parse(testContext(t), "a.webidl", src)
	second := Parse(testContext(t), "a.webidl", src)
	assert.Empty(t, ast.Diff(first.File, second.File))
	assert.Equal(t, first.Tree.String(), second.Tree.String())
}

func TestParseErrorsSpliced(t *testing.T) {
	res := Parse(testContext(t), "e.webidl", "interface A { attribute long ; };")
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "missing attribute name at ';'", res.Errors[0].Message)

	var messages []string
	res.Tree.Walk(func(n *structure.Node, _ int) bool {
		if n.Kind == structure.KindError {
			messages = append(messages, n.Message)
		}
		return true
	})
	assert.Equal(t, []string{res.Errors[0].Message}, messages)
}

func TestParseConcurrent(t *testing.T) {
	src := "interface A { attribute long a; }; partial interface A {}; A includes M;"
	want := Parse(testContext(t), "c.webidl", src).Tree.String()

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Parse(context.Background(), "c.webidl", src).Tree.String()
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
