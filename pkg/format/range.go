package format

import (
	"fmt"
	"strings"

	"github.com/yaklabco/cssfmt/pkg/config"
	"github.com/yaklabco/cssfmt/pkg/doc"
	"github.com/yaklabco/cssfmt/pkg/parser"
	"github.com/yaklabco/cssfmt/pkg/source"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// RangeResult is the outcome of FormatRange. Code replaces Range in the
// source; Range covers whole statements and may be wider than the request.
type RangeResult struct {
	Code  string
	Range syntax.Span
}

// RangeError reports a range that does not fit in the source.
type RangeError struct {
	Start int
	End   int
	Len   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("range %d..%d is out of bounds for source of length %d", e.Start, e.End, e.Len)
}

// FormatRange formats the statements of source that intersect r. When r
// lies inside the block of a single qualified rule, only the intersecting
// declarations of that rule are formatted.
func FormatRange(src string, r syntax.Span, syn syntax.Syntax, opts config.FormatOptions) (*RangeResult, error) {
	if r.Start < 0 || r.End > len(src) || r.Start > r.End {
		return nil, &RangeError{Start: r.Start, End: r.End, Len: len(src)}
	}
	if r.Len() == 0 {
		return &RangeResult{Range: r}, nil
	}

	sheet, comments, err := parser.Parse(src, syn)
	if err != nil {
		return nil, fmt.Errorf("parsing stylesheet: %w", err)
	}
	c := newCtx(src, syn, comments, opts)

	stmts := sheet.Statements
	first, last, found := intersecting(stmts, r)
	if !found {
		return &RangeResult{Range: syntax.Span{Start: r.Start, End: r.Start}}, nil
	}

	st := state{}.with(stateTopLevel)
	if first == last {
		if rule, ok := stmts[first].(*syntax.QualifiedRule); ok && stmts[first].Span().Contains(r) {
			start, end := c.blockInterior(rule.Block)
			if (syntax.Span{Start: start, End: end}).Contains(r) {
				if innerFirst, innerLast, ok := intersecting(rule.Block.Statements, r); ok {
					stmts, first, last = rule.Block.Statements, innerFirst, innerLast
					st = state{}
				}
			}
		}
	}

	reference := stmts[first].Span()
	if first > 0 {
		reference = stmts[first-1].Span()
	}
	base := source.Indentation(src, reference.Start, c.indentWidth)

	matched := syntax.Span{Start: stmts[first].Span().Start, End: stmts[last].Span().End}
	body := c.formatStatementList(stmts[first:last+1], matched.Start, matched.End, st)

	// The replaced text starts after the existing indentation, so the first
	// line is printed at the base column and the padding is cut off again.
	padding := strings.Repeat(" ", base)
	out, err := doc.Print(doc.Concat(doc.Text(padding), doc.Nest(base, body)), printOptions(syn, opts.Layout))
	if err != nil {
		return nil, fmt.Errorf("printing range: %w", err)
	}
	return &RangeResult{Code: strings.TrimPrefix(out, padding), Range: matched}, nil
}

// intersecting returns the indexes of the first and last statement of
// stmts that intersect r.
func intersecting(stmts []syntax.Statement, r syntax.Span) (int, int, bool) {
	first, last := 0, len(stmts)-1
	for first <= last && !stmts[first].Span().Intersects(r) {
		first++
	}
	for last >= first && !stmts[last].Span().Intersects(r) {
		last--
	}
	return first, last, first <= last
}
