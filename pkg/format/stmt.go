package format

import (
	"strings"

	"github.com/yaklabco/cssfmt/pkg/doc"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// leadingComment is a comment on its own line before a statement.
type leadingComment struct {
	comment     syntax.Comment
	blankBefore bool
}

// unit is a statement together with the comments that travel with it when
// declarations are reordered.
type unit struct {
	stmt        syntax.Statement
	leading     []leadingComment
	trailing    []syntax.Comment
	blankBefore bool
	ignore      bool
	override    selectorOverride
}

// collectUnits attaches every comment in [start, end] to a statement. A
// comment on the line where the previous statement ends trails it; any
// other comment leads the next statement. Comments after the last
// statement are returned separately.
func (c *ctx) collectUnits(stmts []syntax.Statement, start, end int) ([]unit, []leadingComment) {
	units := make([]unit, 0, len(stmts))
	prevEnd := start
	var pending []leadingComment

	attach := func(until int) {
		for comment := range c.comments.between(prevEnd, until) {
			if len(units) > 0 && len(pending) == 0 && !c.onNewLine(prevEnd, comment.Span.Start) {
				last := &units[len(units)-1]
				last.trailing = append(last.trailing, comment)
			} else {
				pending = append(pending, leadingComment{
					comment:     comment,
					blankBefore: c.lineDistance(prevEnd, comment.Span.Start) > 1,
				})
			}
			prevEnd = comment.Span.End
		}
	}

	for _, stmt := range stmts {
		span := stmt.Span()
		attach(span.Start)

		current := unit{
			stmt:        stmt,
			leading:     pending,
			blankBefore: c.lineDistance(prevEnd, span.Start) > 1,
		}
		for _, lead := range pending {
			if _, ok := matchDirective(lead.comment, c.options.IgnoreCommentDirective); ok {
				current.ignore = true
			}
			if arg, ok := matchDirective(lead.comment, c.options.SelectorOverrideCommentDirective); ok {
				if override, valid := parseSelectorOverride(arg); valid {
					current.override = override
				}
			}
		}
		units = append(units, current)
		pending = nil
		prevEnd = span.End
	}

	attach(end)
	return units, pending
}

// lineSeparator separates two statements, keeping at most one blank line.
func lineSeparator(blank bool) doc.Doc {
	if blank {
		return doc.Concat(doc.EmptyLine, doc.HardLine)
	}
	return doc.HardLine
}

// formatStatementList formats stmts and the comments in [start, end], one
// statement per line.
func (c *ctx) formatStatementList(stmts []syntax.Statement, start, end int, st state) doc.Doc {
	units, tail := c.collectUnits(stmts, start, end)
	units = c.sortDeclarations(units)

	var parts []doc.Doc
	emitLeading := func(comments []leadingComment) {
		for _, lead := range comments {
			if len(parts) > 0 {
				parts = append(parts, lineSeparator(lead.blankBefore))
			}
			parts = append(parts, c.formatComment(lead.comment))
		}
	}

	for _, current := range units {
		emitLeading(current.leading)
		if len(parts) > 0 {
			parts = append(parts, lineSeparator(current.blankBefore))
		}
		parts = append(parts, c.formatUnit(current, st))
		for _, comment := range current.trailing {
			parts = append(parts, doc.Space, c.formatComment(comment))
		}
	}
	emitLeading(tail)

	return doc.List(parts)
}

func (c *ctx) formatUnit(current unit, st state) doc.Doc {
	if current.ignore {
		return c.verbatim(current.stmt.Span())
	}
	d := c.formatStatement(current.stmt, st.withSelector(current.override))
	if c.needsSemicolon(current.stmt) {
		d = doc.Concat(d, doc.Text(";"))
	}
	return d
}

// verbatim echoes the source text of span line by line.
func (c *ctx) verbatim(span syntax.Span) doc.Doc {
	lines := strings.Split(c.text(span), "\n")
	docs := make([]doc.Doc, 0, len(lines))
	for _, line := range lines {
		docs = append(docs, doc.Text(strings.TrimSuffix(line, "\r")))
	}
	return doc.Join(docs, doc.EmptyLine)
}

// needsSemicolon reports whether stmt is terminated by a semicolon rather
// than by a block.
func (c *ctx) needsSemicolon(stmt syntax.Statement) bool {
	if c.syntax == syntax.Sass {
		return false
	}
	switch stmt := stmt.(type) {
	case *syntax.Declaration:
		return stmt.Block == nil
	case *syntax.AtRule:
		return stmt.Block == nil
	case *syntax.LessVariableDecl:
		return stmt.Ruleset == nil
	case *syntax.SassVariableDecl, *syntax.LessDetachedRulesetCall, *syntax.LessMixinCall, *syntax.LessExtendRule:
		return true
	default:
		return false
	}
}

// formatStatement dispatches on the statement kind.
func (c *ctx) formatStatement(stmt syntax.Statement, st state) doc.Doc {
	switch stmt := stmt.(type) {
	case *syntax.QualifiedRule:
		return c.formatQualifiedRule(stmt, st)
	case *syntax.Declaration:
		return c.formatDeclaration(stmt, st)
	case *syntax.AtRule:
		return c.formatAtRule(stmt, st)
	case *syntax.KeyframeBlock:
		return c.formatKeyframeBlock(stmt, st)
	case *syntax.SassVariableDecl:
		return c.formatSassVariableDecl(stmt, st)
	case *syntax.SassIfAtRule:
		return c.formatSassIf(stmt, st)
	case *syntax.LessVariableDecl:
		return c.formatLessVariableDecl(stmt, st)
	case *syntax.LessDetachedRulesetCall:
		return doc.Text("@" + stmt.Name.Name + "()")
	case *syntax.LessMixinDefinition:
		return c.formatLessMixinDefinition(stmt, st)
	case *syntax.LessMixinCall:
		return c.formatLessMixinCall(stmt, st)
	case *syntax.LessExtendRule:
		return doc.Concat(doc.Text("&:extend("), c.formatTokens(stmt.Args.Tokens, doc.Space), doc.Text(")"))
	default:
		return unexpected("statement", stmt)
	}
}

// blockInterior returns the offsets between the braces of block. Blocks of
// the indented syntax have no braces.
func (c *ctx) blockInterior(block *syntax.Block) (int, int) {
	if c.syntax == syntax.Sass {
		return block.Range.Start, block.Range.End
	}
	return block.Range.Start + 1, block.Range.End - 1
}

// formatBlock formats a block with its statements indented one level.
func (c *ctx) formatBlock(block *syntax.Block, st state) doc.Doc {
	st = st.without(stateTopLevel).withSelector(overrideNone)
	start, end := c.blockInterior(block)
	body := c.formatStatementList(block.Statements, start, end, st)

	if c.syntax == syntax.Sass {
		if body.IsNil() {
			return doc.Nil
		}
		return c.indent(doc.Concat(doc.HardLine, body))
	}

	if body.IsNil() {
		return doc.Concat(doc.Text("{"), doc.HardLine, doc.Text("}"))
	}
	if line, ok := c.singleLineBlock(block, st); ok {
		return line
	}
	return doc.Concat(doc.Text("{"), c.indent(doc.Concat(doc.HardLine, body)), doc.HardLine, doc.Text("}"))
}

// singleLineBlock keeps a short block of declarations on one line when
// singleLineBlockThreshold allows it and the source block was on one line.
func (c *ctx) singleLineBlock(block *syntax.Block, st state) (doc.Doc, bool) {
	threshold := c.options.SingleLineBlockThreshold
	count := len(block.Statements)
	if threshold <= 0 || count == 0 || count > threshold || c.onNewLine(block.Range.Start, block.Range.End) {
		return doc.Nil, false
	}
	if c.comments.any(block.Range.Start, block.Range.End) {
		return doc.Nil, false
	}

	decls := make([]doc.Doc, 0, count)
	for _, stmt := range block.Statements {
		decl, ok := stmt.(*syntax.Declaration)
		if !ok || decl.Block != nil {
			return doc.Nil, false
		}
		decls = append(decls, doc.Concat(c.formatDeclaration(decl, st), doc.Text(";")))
	}

	return doc.Group(doc.Concat(
		doc.Text("{"),
		c.indent(doc.Concat(doc.LineOrSpace, doc.Join(decls, doc.LineOrSpace))),
		doc.LineOrSpace,
		doc.Text("}"),
	)), true
}

// spaceBeforeBlock separates a block from its header and carries the
// comments between them.
func (c *ctx) spaceBeforeBlock(headerEnd int, block *syntax.Block) doc.Doc {
	comments, lastLine := c.endSpacedComments(c.comments.between(headerEnd, block.Range.Start))
	switch {
	case c.syntax == syntax.Sass:
		return comments
	case lastLine:
		return doc.Concat(comments, doc.HardLine)
	default:
		return doc.Concat(comments, doc.Space)
	}
}

func (c *ctx) formatQualifiedRule(rule *syntax.QualifiedRule, st state) doc.Doc {
	parts := []doc.Doc{c.formatRuleSelector(rule.Selector, st)}
	headerEnd := rule.Selector.Range.End
	if rule.Guard != nil {
		parts = append(parts,
			c.gapComments(headerEnd, rule.Guard.Range.Start, doc.Space),
			c.formatLessGuard(rule.Guard, st))
		headerEnd = rule.Guard.Range.End
	}
	parts = append(parts, c.spaceBeforeBlock(headerEnd, rule.Block), c.formatBlock(rule.Block, st))
	return doc.List(parts)
}
