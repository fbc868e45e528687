// Package lint reports diagnostics on parsed WebIDL files.
package lint

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dennwc/webidlstruct/ast"
	"github.com/dennwc/webidlstruct/idl"
	"github.com/dennwc/webidlstruct/syntaxerr"
)

// Severity of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Fix is a single text replacement.
type Fix struct {
	Title   string          `yaml:"title"`
	Range   ast.SourceRange `yaml:"range"`
	NewText string          `yaml:"newText"`
}

// Apply returns src with the fix applied. A fix whose range does not fit
// src leaves it unchanged.
func (f Fix) Apply(src string) string {
	start, end := f.Range.StartOffset, f.Range.EndOffset
	if start < 0 || end < start || end > len(src) {
		return src
	}
	return src[:start] + f.NewText + src[end:]
}

// Diagnostic is a problem found at a source range.
type Diagnostic struct {
	Message  string          `yaml:"message"`
	Range    ast.SourceRange `yaml:"range"`
	Severity Severity        `yaml:"severity"`
	Fix      *Fix            `yaml:"fix,omitempty"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Range.StartLine, d.Range.StartColumn, d.Severity, d.Message)
}

// Capitalization reports definitions declaring a name that starts with a
// lowercase letter. Partials, includes statements and broken definitions
// declare no name of their own and are not checked.
func Capitalization(file *ast.File) []Diagnostic {
	if file == nil {
		return nil
	}
	var out []Diagnostic
	for _, def := range file.Definitions {
		if _, broken := def.(*ast.BrokenDefinition); broken || ast.IsPartial(def) {
			continue
		}
		named, ok := def.(ast.NamedDefinition)
		if !ok {
			continue
		}
		if d, ok := capitalization(named.Name()); ok {
			out = append(out, d)
		}
	}
	return out
}

func capitalization(id ast.Identifier) (Diagnostic, bool) {
	r, size := utf8.DecodeRuneInString(id.Value)
	if size == 0 || !unicode.IsLower(r) {
		return Diagnostic{}, false
	}
	return Diagnostic{
		Message:  fmt.Sprintf("Identifier '%s' should start with an uppercase letter", id.Value),
		Range:    id.Range,
		Severity: SeverityError,
		Fix: &Fix{
			Title:   "Capitalize identifier",
			Range:   id.Range,
			NewText: string(unicode.ToUpper(r)) + id.Value[size:],
		},
	}, true
}

// Check returns the syntax errors and style diagnostics of a parse result,
// ordered by position.
func Check(res *idl.Result) []Diagnostic {
	var out []Diagnostic
	for _, err := range res.Errors {
		out = append(out, Diagnostic{
			Message:  err.Message,
			Range:    errorRange(res.Source, err),
			Severity: SeverityError,
		})
	}
	out = append(out, Capitalization(res.File)...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Range.StartOffset < out[j].Range.StartOffset
	})
	return out
}

func errorRange(src string, err syntaxerr.Error) ast.SourceRange {
	line, col := err.Line, err.Column
	if err.End <= len(src) && err.Start <= err.End {
		text := src[err.Start:err.End]
		if i := strings.LastIndexByte(text, '\n'); i >= 0 {
			line += strings.Count(text, "\n")
			col = utf8.RuneCountInString(text[i+1:])
		} else {
			col += utf8.RuneCountInString(text)
		}
	}
	return ast.SourceRange{
		StartLine: err.Line, StartColumn: err.Column,
		EndLine: line, EndColumn: col,
		StartOffset: err.Start, EndOffset: err.End,
	}
}
