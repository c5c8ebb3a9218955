package doc

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// Line break sequences accepted by PrintOptions.
const (
	LF   = "\n"
	CRLF = "\r\n"
)

// PrintOptions configures rendering.
type PrintOptions struct {
	// Width is the target line width in columns.
	Width int
	// UseTabs indents with tabs, one per IndentWidth columns, padding the
	// remainder with spaces.
	UseTabs bool
	// IndentWidth is the number of columns a tab counts for.
	IndentWidth int
	// LineBreak is LF or CRLF. Empty means LF.
	LineBreak string
}

// RenderError reports a malformed document.
type RenderError struct {
	Message string
}

func (e *RenderError) Error() string {
	return "render: " + e.Message
}

type mode uint8

const (
	modeBreak mode = iota
	modeFlat
)

type frame struct {
	indent int
	mode   mode
	doc    *Doc
}

type printer struct {
	opts   PrintOptions
	out    bytes.Buffer
	column int
}

// Print renders d to text.
func Print(d Doc, opts PrintOptions) (string, error) {
	if opts.LineBreak == "" {
		opts.LineBreak = LF
	}
	if opts.LineBreak != LF && opts.LineBreak != CRLF {
		return "", &RenderError{Message: fmt.Sprintf("invalid line break %q", opts.LineBreak)}
	}
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = 2
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}

	p := printer{opts: opts}
	if err := p.print(d); err != nil {
		return "", err
	}
	p.trimTrailingSpace()
	return p.out.String(), nil
}

func (p *printer) print(root Doc) error {
	stack := []frame{{indent: 0, mode: modeBreak, doc: &root}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cur := top.doc

		switch cur.kind {
		case KindNil:
		case KindText:
			p.writeText(cur.text)
		case KindConcat:
			for idx := len(cur.list) - 1; idx >= 0; idx-- {
				stack = append(stack, frame{indent: top.indent, mode: top.mode, doc: &cur.list[idx]})
			}
		case KindHardLine:
			p.newline(top.indent)
		case KindEmptyLine:
			p.newline(0)
		case KindLineOrSpace:
			if top.mode == modeFlat {
				p.writeText(" ")
			} else {
				p.newline(top.indent)
			}
		case KindLineOrNil:
			if top.mode == modeBreak {
				p.newline(top.indent)
			}
		case KindSoftLine:
			if top.mode == modeFlat || fits(p.opts.Width-p.column-1, stack, nil) {
				p.writeText(" ")
			} else {
				p.newline(top.indent)
			}
		case KindGroup:
			next := modeBreak
			if !cur.hard {
				if top.mode == modeFlat {
					next = modeFlat
				} else {
					candidate := frame{indent: top.indent, mode: modeFlat, doc: cur.child}
					if fits(p.opts.Width-p.column, stack, &candidate) {
						next = modeFlat
					}
				}
			}
			stack = append(stack, frame{indent: top.indent, mode: next, doc: cur.child})
		case KindNest:
			indent := top.indent + cur.width
			if indent < 0 {
				return &RenderError{Message: fmt.Sprintf("negative indentation %d", indent)}
			}
			stack = append(stack, frame{indent: indent, mode: top.mode, doc: cur.child})
		case KindFlatOrBreak:
			branch := cur.alt
			if top.mode == modeFlat {
				branch = cur.child
			}
			stack = append(stack, frame{indent: top.indent, mode: top.mode, doc: branch})
		default:
			return &RenderError{Message: fmt.Sprintf("unknown doc kind %d", cur.kind)}
		}
	}

	return nil
}

func (p *printer) writeText(text string) {
	p.out.WriteString(text)
	if idx := strings.LastIndexByte(text, '\n'); idx >= 0 {
		p.column = uniseg.StringWidth(text[idx+1:])
		return
	}
	p.column += uniseg.StringWidth(text)
}

func (p *printer) newline(indent int) {
	p.trimTrailingSpace()
	p.out.WriteString(p.opts.LineBreak)
	p.writeIndent(indent)
	p.column = indent
}

func (p *printer) writeIndent(indent int) {
	if !p.opts.UseTabs {
		p.out.WriteString(strings.Repeat(" ", indent))
		return
	}
	p.out.WriteString(strings.Repeat("\t", indent/p.opts.IndentWidth))
	p.out.WriteString(strings.Repeat(" ", indent%p.opts.IndentWidth))
}

func (p *printer) trimTrailingSpace() {
	buf := p.out.Bytes()
	end := len(buf)
	for end > 0 && (buf[end-1] == ' ' || buf[end-1] == '\t') {
		end--
	}
	p.out.Truncate(end)
}

// fits reports whether the content from first (if any) followed by the rest
// of the stack fits in width columns before the next line break. The rest is
// consumed in its own mode, so a broken line opportunity ends the
// measurement.
func fits(width int, rest []frame, first *frame) bool {
	if width < 0 {
		return false
	}

	var stack []frame
	restIdx := len(rest)
	if first != nil {
		stack = append(stack, *first)
	}

	for width >= 0 {
		if len(stack) == 0 {
			if restIdx == 0 {
				return true
			}
			restIdx--
			stack = append(stack, rest[restIdx])
		}

		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cur := top.doc

		switch cur.kind {
		case KindNil:
		case KindText:
			if idx := strings.IndexByte(cur.text, '\n'); idx >= 0 {
				return uniseg.StringWidth(cur.text[:idx]) <= width
			}
			width -= uniseg.StringWidth(cur.text)
		case KindConcat:
			for idx := len(cur.list) - 1; idx >= 0; idx-- {
				stack = append(stack, frame{indent: top.indent, mode: top.mode, doc: &cur.list[idx]})
			}
		case KindHardLine, KindEmptyLine:
			return true
		case KindLineOrSpace, KindSoftLine:
			if top.mode == modeBreak {
				return true
			}
			width--
		case KindLineOrNil:
			if top.mode == modeBreak {
				return true
			}
		case KindGroup:
			next := top.mode
			if cur.hard {
				next = modeBreak
			}
			stack = append(stack, frame{indent: top.indent, mode: next, doc: cur.child})
		case KindNest:
			stack = append(stack, frame{indent: top.indent + cur.width, mode: top.mode, doc: cur.child})
		case KindFlatOrBreak:
			branch := cur.alt
			if top.mode == modeFlat {
				branch = cur.child
			}
			stack = append(stack, frame{indent: top.indent, mode: top.mode, doc: branch})
		}
	}

	return false
}
