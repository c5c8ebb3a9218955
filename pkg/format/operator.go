package format

import (
	"github.com/yaklabco/cssfmt/pkg/config"
	"github.com/yaklabco/cssfmt/pkg/doc"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// Binding strength of binary operators; higher binds tighter.
const (
	precOr = iota + 1
	precAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
)

func precedence(kind syntax.OperatorKind) int {
	switch kind {
	case syntax.OperatorOr:
		return precOr
	case syntax.OperatorAnd:
		return precAnd
	case syntax.OperatorEq, syntax.OperatorStrictEq, syntax.OperatorNotEq:
		return precEquality
	case syntax.OperatorLess, syntax.OperatorLessEq, syntax.OperatorGreater, syntax.OperatorGreaterEq:
		return precRelational
	case syntax.OperatorAdd, syntax.OperatorSub:
		return precAdditive
	default:
		return precMultiplicative
	}
}

// regroupable reports whether `a parent (b child c)` equals
// `a parent b child c`.
func regroupable(parent, child syntax.OperatorKind) bool {
	switch parent {
	case syntax.OperatorAdd:
		return child == syntax.OperatorAdd || child == syntax.OperatorSub
	case syntax.OperatorMul:
		return child == syntax.OperatorMul || child == syntax.OperatorDiv
	case syntax.OperatorAnd, syntax.OperatorOr:
		return child == parent
	default:
		return false
	}
}

// needsParens reports whether child must be parenthesized as an operand of
// parent to keep the expression tree.
func needsParens(parent, child syntax.OperatorKind, right bool) bool {
	parentPrec, childPrec := precedence(parent), precedence(child)
	if childPrec != parentPrec {
		return childPrec < parentPrec
	}
	return right && !regroupable(parent, child)
}

// operatorText returns the printed form of an operator. Comparison
// operators keep their dialect spelling.
func (c *ctx) operatorText(op *syntax.Operator) string {
	switch op.Kind {
	case syntax.OperatorAdd:
		return "+"
	case syntax.OperatorSub:
		return "-"
	case syntax.OperatorMul:
		return "*"
	case syntax.OperatorDiv:
		return "/"
	case syntax.OperatorMod:
		return "%"
	case syntax.OperatorAnd:
		return "and"
	case syntax.OperatorOr:
		return "or"
	case syntax.OperatorNot:
		return "not"
	default:
		return c.text(op.Range)
	}
}

// formatBinaryChain formats a binary operation without grouping it, so
// that a whole chain of operators breaks together.
func (c *ctx) formatBinaryChain(op *syntax.BinaryOperation, st state) doc.Doc {
	left := c.formatOperand(op.Left, op.Op.Kind, false, st)
	right := c.formatOperand(op.Right, op.Op.Kind, true, st)
	before := c.gapComments(op.Left.Span().End, op.Op.Range.Start, doc.Nil)
	after := c.gapComments(op.Op.Range.End, op.Right.Span().Start, doc.Nil)
	return c.operatorBreak(doc.Concat(left, before), c.operatorText(op.Op), doc.Concat(after, right))
}

// operatorBreak joins left and right with op, placing the line break
// before or after the operator as configured.
func (c *ctx) operatorBreak(left doc.Doc, op string, right doc.Doc) doc.Doc {
	if c.options.OperatorLineBreak == config.OperatorLineBreakBefore {
		return doc.Concat(left, doc.LineOrSpace, doc.Text(op), doc.Space, right)
	}
	return doc.Concat(left, doc.Space, doc.Text(op), doc.LineOrSpace, right)
}

func (c *ctx) formatOperand(operand syntax.ComponentValue, parent syntax.OperatorKind, right bool, st state) doc.Doc {
	child, ok := operand.(*syntax.BinaryOperation)
	if !ok {
		return c.formatValue(operand, st)
	}
	inner := c.formatBinaryChain(child, st)
	if needsParens(parent, child.Op.Kind, right) {
		return doc.Concat(doc.Text("("), inner, doc.Text(")"))
	}
	return inner
}
