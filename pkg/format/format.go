// Package format turns a parsed stylesheet back into source text laid out
// by the options in config.FormatOptions. Comments are threaded back into
// the output at the positions they held in the source.
package format

import (
	"fmt"
	"math"

	"github.com/yaklabco/cssfmt/pkg/config"
	"github.com/yaklabco/cssfmt/pkg/doc"
	"github.com/yaklabco/cssfmt/pkg/parser"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// FormatText parses source as syn and returns it formatted.
func FormatText(source string, syn syntax.Syntax, opts config.FormatOptions) (string, error) {
	sheet, comments, err := parser.Parse(source, syn)
	if err != nil {
		return "", fmt.Errorf("parsing stylesheet: %w", err)
	}
	return FormatStylesheet(sheet, comments, source, syn, opts)
}

// FormatStylesheet formats an already parsed stylesheet. comments must be
// the comments reported by the parser for the same source, in source order.
func FormatStylesheet(
	sheet *syntax.Stylesheet, comments []syntax.Comment, source string, syn syntax.Syntax, opts config.FormatOptions,
) (string, error) {
	c := newCtx(source, syn, comments, opts)
	if len(comments) > 0 {
		if _, ok := matchDirective(comments[0], opts.Language.IgnoreFileCommentDirective); ok {
			return source, nil
		}
	}

	body := c.formatStatementList(sheet.Statements, 0, len(source), state{}.with(stateTopLevel))
	if body.IsNil() {
		return "", nil
	}

	out, err := doc.Print(doc.Concat(body, doc.HardLine), printOptions(syn, opts.Layout))
	if err != nil {
		return "", fmt.Errorf("printing stylesheet: %w", err)
	}
	return out, nil
}

// printOptions maps layout options to the printer. The indented syntax
// cannot wrap statements freely, so it is printed without a width limit.
func printOptions(syn syntax.Syntax, layout config.LayoutOptions) doc.PrintOptions {
	width := layout.PrintWidth
	if syn == syntax.Sass {
		width = math.MaxInt32
	}
	return doc.PrintOptions{
		Width:       width,
		UseTabs:     layout.UseTabs,
		IndentWidth: layout.IndentWidth,
		LineBreak:   layout.LineBreak.Sequence(),
	}
}
