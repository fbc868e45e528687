// Package syntaxerr collects the syntax errors reported by the parser as
// half-open byte ranges.
package syntaxerr

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/dennwc/webidlstruct/parser"
)

// Error is a syntax error covering the source bytes [Start, End).
type Error struct {
	Message string `json:"message"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

func (e Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Collector records syntax errors in the order they are reported. It
// implements parser.ErrorListener.
type Collector struct {
	log    *zerolog.Logger
	errors []Error
}

var _ parser.ErrorListener = (*Collector)(nil)

// NewCollector returns an empty collector logging through the logger in ctx.
func NewCollector(ctx context.Context) *Collector {
	return &Collector{log: zerolog.Ctx(ctx)}
}

// SyntaxError records an error spanning the offending token. Errors whose
// range is negative or inverted are logged and dropped.
func (c *Collector) SyntaxError(offending parser.Token, line, column int, msg string) {
	start, end := offending.Start, offending.Stop()+1
	if start < 0 || end < 0 || end < start {
		c.log.Warn().Int("start", start).Int("end", end).Str("message", msg).
			Msg("skipping syntax error with invalid offsets")
		return
	}
	c.errors = append(c.errors, Error{
		Message: msg,
		Start:   start,
		End:     end,
		Line:    line,
		Column:  column,
	})
}

// Errors returns a copy of the recorded errors in emission order.
func (c *Collector) Errors() []Error {
	out := make([]Error, len(c.errors))
	copy(out, c.errors)
	return out
}

// Sorted returns a copy of errs ordered by start offset. Errors starting at
// the same offset keep their relative order.
func Sorted(errs []Error) []Error {
	out := make([]Error, len(errs))
	copy(out, errs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}
