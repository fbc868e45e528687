package ast

import (
	"io"
	"strings"

	"github.com/kr/pretty"
)

// Dump writes a Go-syntax rendering of n to w.
func Dump(w io.Writer, n Node) error {
	_, err := pretty.Fprintf(w, "%# v\n", n)
	return err
}

// DumpString renders n the way Dump does.
func DumpString(n Node) string {
	var sb strings.Builder
	if err := Dump(&sb, n); err != nil {
		panic(err)
	}
	return sb.String()
}

// Diff lists the differences between two trees, one entry per differing
// field path. Equal trees yield nothing.
func Diff(a, b Node) []string {
	return pretty.Diff(a, b)
}
