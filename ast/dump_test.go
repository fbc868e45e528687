package ast

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestDump(t *testing.T) {
	file := &File{Definitions: []Definition{
		&Interface{Identifier: Identifier{Value: "Foo"}},
	}}

	out := DumpString(file)
	assert.Contains(t, out, "&ast.Interface{")
	assert.Contains(t, out, `Value: "Foo"`)

	err := Dump(failingWriter{}, file)
	require.Error(t, err)
}

func TestDiff(t *testing.T) {
	a := &Interface{Identifier: Identifier{Value: "Foo"}}
	b := &Interface{Identifier: Identifier{Value: "Bar"}}
	assert.Empty(t, Diff(a, a))
	assert.NotEmpty(t, Diff(a, b))
}
