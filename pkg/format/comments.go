package format

import (
	"iter"
	"strings"

	"github.com/tidwall/btree"

	"github.com/yaklabco/cssfmt/pkg/doc"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// commentIndex answers range queries over the comments of one source text.
// Comments never overlap, so keying them by start offset keeps them in
// source order.
type commentIndex struct {
	tree btree.Map[int, syntax.Comment]
}

func newCommentIndex(comments []syntax.Comment) *commentIndex {
	idx := &commentIndex{}
	for _, comment := range comments {
		idx.tree.Set(comment.Span.Start, comment)
	}
	return idx
}

// between yields the comments lying entirely within [start, end] in source
// order. The sequence can be iterated any number of times.
func (idx *commentIndex) between(start, end int) iter.Seq[syntax.Comment] {
	return func(yield func(syntax.Comment) bool) {
		if start > end {
			return
		}
		idx.tree.Ascend(start, func(_ int, comment syntax.Comment) bool {
			if comment.Span.End > end {
				return false
			}
			return yield(comment)
		})
	}
}

// any reports whether a comment lies within [start, end].
func (idx *commentIndex) any(start, end int) bool {
	for range idx.between(start, end) {
		return true
	}
	return false
}

// formatComment renders one comment. Lines of a multi-line block comment
// are joined by EmptyLine, so continuation lines keep their source
// indentation.
func (c *ctx) formatComment(comment syntax.Comment) doc.Doc {
	content := comment.Content
	if c.options.FormatComments {
		content = padComment(comment)
	}
	if !comment.IsBlock() {
		return doc.Text(strings.TrimRight(content, " \t\r"))
	}

	lines := strings.Split(content, "\n")
	docs := make([]doc.Doc, 0, len(lines))
	for _, line := range lines {
		docs = append(docs, doc.Text(strings.TrimRight(line, " \t\r")))
	}
	return doc.Join(docs, doc.EmptyLine)
}

// padComment inserts a space after the opening and before the closing
// delimiter: `/*x*/` becomes `/* x */` and `//x` becomes `// x`.
func padComment(comment syntax.Comment) string {
	content := comment.Content
	if !comment.IsBlock() {
		body := content[len("//"):]
		if body == "" || startsWithSpace(body) || body[0] == '/' || body[0] == '!' {
			return content
		}
		return "// " + body
	}

	body := content[len("/*") : len(content)-len("*/")]
	if strings.TrimSpace(body) == "" {
		return content
	}
	if !startsWithSpace(body) && body[0] != '*' && body[0] != '!' {
		body = " " + body
	}
	if last := body[len(body)-1]; last != ' ' && last != '\t' && last != '\n' && last != '*' {
		body += " "
	}
	return "/*" + body + "*/"
}

func startsWithSpace(s string) bool {
	return s != "" && (s[0] == ' ' || s[0] == '\t' || s[0] == '\n' || s[0] == '\r')
}

// startSpacedComments lays out comments placed before a node: a block
// comment is followed by a line or space, a line comment by a hard line.
func (c *ctx) startSpacedComments(comments iter.Seq[syntax.Comment]) doc.Doc {
	var parts []doc.Doc
	for comment := range comments {
		parts = append(parts, c.formatComment(comment))
		if comment.IsBlock() {
			parts = append(parts, doc.LineOrSpace)
		} else {
			parts = append(parts, doc.HardLine)
		}
	}
	return doc.List(parts)
}

// startSpacedCommentsWithoutLast is startSpacedComments without the break
// after the last comment. It reports whether the last comment was a line
// comment, in which case the caller must break before what follows.
func (c *ctx) startSpacedCommentsWithoutLast(comments iter.Seq[syntax.Comment]) (doc.Doc, bool) {
	var (
		parts    []doc.Doc
		lastLine bool
	)
	for comment := range comments {
		if len(parts) > 0 {
			if lastLine {
				parts = append(parts, doc.HardLine)
			} else {
				parts = append(parts, doc.LineOrSpace)
			}
		}
		parts = append(parts, c.formatComment(comment))
		lastLine = !comment.IsBlock()
	}
	return doc.List(parts), lastLine
}

// endSpacedComments lays out comments placed after a node on the same
// line. It reports whether the last comment was a line comment, in which
// case the caller must break before what follows.
func (c *ctx) endSpacedComments(comments iter.Seq[syntax.Comment]) (doc.Doc, bool) {
	var (
		parts    []doc.Doc
		lastLine bool
	)
	for comment := range comments {
		if lastLine {
			parts = append(parts, doc.HardLine)
		} else {
			parts = append(parts, doc.Space)
		}
		parts = append(parts, c.formatComment(comment))
		lastLine = !comment.IsBlock()
	}
	return doc.List(parts), lastLine
}

// unspacedComments lays out comments between tightly bound tokens. Only
// block comments are kept; a line comment has no valid position there.
func (c *ctx) unspacedComments(comments iter.Seq[syntax.Comment]) doc.Doc {
	var parts []doc.Doc
	for comment := range comments {
		if comment.IsBlock() {
			parts = append(parts, c.formatComment(comment))
		}
	}
	return doc.List(parts)
}

// gapComments returns the comments between two nodes followed by sep, or
// by a hard line when the last comment was a line comment.
func (c *ctx) gapComments(start, end int, sep doc.Doc) doc.Doc {
	comments, lastLine := c.endSpacedComments(c.comments.between(start, end))
	if lastLine {
		return doc.Concat(comments, doc.HardLine)
	}
	return doc.Concat(comments, sep)
}

// commentBody returns the text of a comment without its delimiters.
func commentBody(comment syntax.Comment) string {
	content := comment.Content
	if comment.IsBlock() {
		content = strings.TrimSuffix(strings.TrimPrefix(content, "/*"), "*/")
	} else {
		content = strings.TrimPrefix(content, "//")
	}
	return strings.TrimSpace(content)
}

// matchDirective reports whether comment holds directive, optionally
// followed by `:` or whitespace and an argument, which is returned.
func matchDirective(comment syntax.Comment, directive string) (string, bool) {
	if directive == "" {
		return "", false
	}
	body := commentBody(comment)
	if !strings.HasPrefix(body, directive) {
		return "", false
	}
	rest := body[len(directive):]
	if rest != "" && rest[0] != ':' && !startsWithSpace(rest) {
		return "", false
	}
	rest = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), ":"))
	return rest, true
}

func parseSelectorOverride(value string) (selectorOverride, bool) {
	switch strings.ToLower(value) {
	case "ignore":
		return overrideIgnore, true
	case "always":
		return overrideAlways, true
	case "consistent":
		return overrideConsistent, true
	case "wrap":
		return overrideWrap, true
	default:
		return overrideNone, false
	}
}
