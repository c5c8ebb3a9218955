// Package syntax defines the stylesheet syntax tree shared by the parser and
// the formatter.
//
// Every node carries a half-open byte span into one source string. Comments
// are not part of the tree; they are kept in a separate slice sorted by
// position.
package syntax

import (
	"fmt"
	"strings"
)

// Syntax is a stylesheet dialect.
type Syntax uint8

const (
	CSS Syntax = iota
	SCSS
	Sass
	Less
)

// String returns the lowercase dialect name.
func (s Syntax) String() string {
	switch s {
	case CSS:
		return "css"
	case SCSS:
		return "scss"
	case Sass:
		return "sass"
	case Less:
		return "less"
	default:
		return fmt.Sprintf("syntax(%d)", uint8(s))
	}
}

// IsSassLike reports whether s is SCSS or the indented Sass syntax.
func (s Syntax) IsSassLike() bool {
	return s == SCSS || s == Sass
}

// AllowsLineComments reports whether `//` starts a comment.
func (s Syntax) AllowsLineComments() bool {
	return s != CSS
}

// ParseSyntax parses a dialect name case-insensitively.
func ParseSyntax(name string) (Syntax, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "css":
		return CSS, nil
	case "scss":
		return SCSS, nil
	case "sass":
		return Sass, nil
	case "less":
		return Less, nil
	default:
		return CSS, fmt.Errorf("unknown syntax %q (valid: css, scss, sass, less)", name)
	}
}

// Span is a half-open byte range [Start, End) into the source text.
type Span struct {
	Start int
	End   int
}

// Len returns the length of the span in bytes.
func (s Span) Len() int { return s.End - s.Start }

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Intersects reports whether s and other share at least one byte, or either
// is empty and touches the other.
func (s Span) Intersects(other Span) bool {
	if s.Len() == 0 || other.Len() == 0 {
		return s.Start <= other.End && other.Start <= s.End
	}
	return s.Start < other.End && other.Start < s.End
}

// Text returns the text of s in source.
func (s Span) Text(source string) string {
	return source[s.Start:s.End]
}

// CommentKind distinguishes block from line comments.
type CommentKind uint8

const (
	// BlockComment is a `/* ... */` comment.
	BlockComment CommentKind = iota
	// LineComment is a `// ...` comment.
	LineComment
)

// Comment is a source comment. Content holds the full text including the
// delimiters.
type Comment struct {
	Kind    CommentKind
	Span    Span
	Content string
}

// IsBlock reports whether c is a block comment.
func (c Comment) IsBlock() bool { return c.Kind == BlockComment }
