// Package doc implements the abstract layout document used by the formatter
// and the width-aware printer that renders it.
//
// A Doc is an immutable tree of text, line breaks, indentation scopes and
// groups. Groups render flat when their content fits the remaining width of
// the current line and broken otherwise.
package doc

import (
	"strconv"
	"strings"
)

// Kind identifies the variant of a Doc.
type Kind uint8

const (
	KindNil Kind = iota
	KindText
	KindConcat
	KindHardLine
	KindSoftLine
	KindLineOrSpace
	KindLineOrNil
	KindEmptyLine
	KindGroup
	KindNest
	KindFlatOrBreak
)

// Doc is a layout document node. The zero value is the empty document.
type Doc struct {
	kind  Kind
	text  string
	width int
	list  []Doc
	child *Doc
	alt   *Doc
	// hard reports whether rendering the doc always produces a line break,
	// which forces every enclosing group to break.
	hard bool
}

// Kind returns the variant of d.
func (d Doc) Kind() Kind { return d.kind }

// IsNil reports whether d renders nothing.
func (d Doc) IsNil() bool { return d.kind == KindNil }

// HasHardBreak reports whether d always renders at least one line break.
func (d Doc) HasHardBreak() bool { return d.hard }

// Nil is the empty document.
var Nil = Doc{}

// Line break documents.
var (
	// HardLine always breaks.
	HardLine = Doc{kind: KindHardLine, hard: true}
	// SoftLine breaks only when the content up to the next break opportunity
	// does not fit on the current line; otherwise it renders as a space.
	SoftLine = Doc{kind: KindSoftLine}
	// LineOrSpace renders as a space when its group is flat.
	LineOrSpace = Doc{kind: KindLineOrSpace}
	// LineOrNil renders as nothing when its group is flat.
	LineOrNil = Doc{kind: KindLineOrNil}
	// EmptyLine breaks without emitting indentation.
	EmptyLine = Doc{kind: KindEmptyLine, hard: true}
)

// Space is a single space.
var Space = Text(" ")

// Text returns a literal text document. Text containing a newline is
// treated as a hard break for group fitting.
func Text(s string) Doc {
	if s == "" {
		return Nil
	}
	return Doc{kind: KindText, text: s, hard: strings.ContainsRune(s, '\n')}
}

// Concat concatenates documents in order. Nested concatenations are
// flattened and empty documents dropped.
func Concat(parts ...Doc) Doc {
	return List(parts)
}

// List is Concat over a slice.
func List(parts []Doc) Doc {
	var (
		flat []Doc
		hard bool
	)
	for _, part := range parts {
		switch part.kind {
		case KindNil:
			continue
		case KindConcat:
			flat = append(flat, part.list...)
		default:
			flat = append(flat, part)
		}
		hard = hard || part.hard
	}

	switch len(flat) {
	case 0:
		return Nil
	case 1:
		return flat[0]
	default:
		return Doc{kind: KindConcat, list: flat, hard: hard}
	}
}

// Group marks d as a unit that renders flat if it fits.
func Group(d Doc) Doc {
	if d.kind == KindNil {
		return d
	}
	return Doc{kind: KindGroup, child: &d, hard: d.hard}
}

// Nest adds width columns of indentation to every line break inside d.
func Nest(width int, d Doc) Doc {
	if d.kind == KindNil || width == 0 {
		return d
	}
	return Doc{kind: KindNest, width: width, child: &d, hard: d.hard}
}

// FlatOrBreak renders flat when the enclosing group is flat and broken
// otherwise.
func FlatOrBreak(flat, broken Doc) Doc {
	return Doc{kind: KindFlatOrBreak, child: &flat, alt: &broken, hard: flat.hard}
}

// Join concatenates docs with sep between each pair.
func Join(docs []Doc, sep Doc) Doc {
	parts := make([]Doc, 0, len(docs)*2)
	for idx, d := range docs {
		if idx > 0 {
			parts = append(parts, sep)
		}
		parts = append(parts, d)
	}
	return List(parts)
}

// String renders d for debugging.
func (d Doc) String() string {
	var sb strings.Builder
	d.debug(&sb)
	return sb.String()
}

func (d Doc) debug(sb *strings.Builder) {
	switch d.kind {
	case KindNil:
		sb.WriteString("nil")
	case KindText:
		sb.WriteString(strconv.Quote(d.text))
	case KindConcat:
		sb.WriteString("[")
		for idx, part := range d.list {
			if idx > 0 {
				sb.WriteString(", ")
			}
			part.debug(sb)
		}
		sb.WriteString("]")
	case KindHardLine:
		sb.WriteString("hardline")
	case KindSoftLine:
		sb.WriteString("softline")
	case KindLineOrSpace:
		sb.WriteString("line")
	case KindLineOrNil:
		sb.WriteString("line_or_nil")
	case KindEmptyLine:
		sb.WriteString("emptyline")
	case KindGroup:
		sb.WriteString("group(")
		d.child.debug(sb)
		sb.WriteString(")")
	case KindNest:
		sb.WriteString("nest(")
		sb.WriteString(strconv.Itoa(d.width))
		sb.WriteString(", ")
		d.child.debug(sb)
		sb.WriteString(")")
	case KindFlatOrBreak:
		sb.WriteString("flat_or_break(")
		d.child.debug(sb)
		sb.WriteString(", ")
		d.alt.debug(sb)
		sb.WriteString(")")
	}
}

