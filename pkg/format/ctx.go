package format

import (
	"fmt"

	"github.com/yaklabco/cssfmt/pkg/config"
	"github.com/yaklabco/cssfmt/pkg/doc"
	"github.com/yaklabco/cssfmt/pkg/source"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// ctx holds everything the generators read during one format call. It is
// never modified after construction.
type ctx struct {
	source      string
	syntax      syntax.Syntax
	options     config.LanguageOptions
	comments    *commentIndex
	indentWidth int
	lines       source.LineBounds
}

func newCtx(src string, syn syntax.Syntax, comments []syntax.Comment, opts config.FormatOptions) *ctx {
	indent := opts.Layout.IndentWidth
	if indent <= 0 {
		indent = config.DefaultLayoutOptions().IndentWidth
	}
	return &ctx{
		source:      src,
		syntax:      syn,
		options:     opts.Language,
		comments:    newCommentIndex(comments),
		indentWidth: indent,
		lines:       source.New(src),
	}
}

// stateFlags are ambient conditions of the subtree being generated.
type stateFlags uint8

const (
	// stateInUnknownAtRule keeps declaration names of unknown at-rules as
	// written.
	stateInUnknownAtRule stateFlags = 1 << iota
	// stateInLessDetachedRuleset keeps declaration names inside Less
	// detached rulesets as written.
	stateInLessDetachedRuleset
	// stateKeepQuotes emits strings with their source quotes.
	stateKeepQuotes
	// stateTopLevel marks statements directly inside the stylesheet.
	stateTopLevel
)

// selectorOverride replaces the selector line break option for one rule.
type selectorOverride uint8

const (
	overrideNone selectorOverride = iota
	overrideIgnore
	overrideAlways
	overrideConsistent
	overrideWrap
)

// state is passed by value to every generator. Children receive modified
// copies, so a flag never leaks into a sibling subtree.
type state struct {
	flags    stateFlags
	selector selectorOverride
}

func (s state) with(flags stateFlags) state {
	s.flags |= flags
	return s
}

func (s state) without(flags stateFlags) state {
	s.flags &^= flags
	return s
}

func (s state) has(flags stateFlags) bool {
	return s.flags&flags != 0
}

func (s state) withSelector(override selectorOverride) state {
	s.selector = override
	return s
}

// unexpected panics for a node kind a generator does not handle.
func unexpected(where string, node any) doc.Doc {
	panic(fmt.Sprintf("format: unexpected %T in %s", node, where))
}

func (c *ctx) text(span syntax.Span) string {
	return span.Text(c.source)
}

// lineDistance returns the number of line breaks between two offsets.
func (c *ctx) lineDistance(start, end int) int {
	if end < start {
		return 0
	}
	return c.lines.LineDistance(start, end)
}

// onNewLine reports whether end starts on a later source line than start.
func (c *ctx) onNewLine(start, end int) bool {
	return c.lineDistance(start, end) > 0
}

func (c *ctx) indent(d doc.Doc) doc.Doc {
	return doc.Nest(c.indentWidth, d)
}

// smartLineBreak returns a hard line when the first element of a construct
// already started on a new source line and single line layout is not
// preferred, and soft otherwise.
func (c *ctx) smartLineBreak(openEnd, firstStart int, preferSingleLine bool, soft doc.Doc) doc.Doc {
	if !preferSingleLine && c.onNewLine(openEnd, firstStart) {
		return doc.HardLine
	}
	return soft
}
