package format_test

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cssfmt/pkg/config"
	"github.com/yaklabco/cssfmt/pkg/format"
	"github.com/yaklabco/cssfmt/pkg/parser"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

type expr struct {
	op          byte
	value       float64
	left, right *expr
}

func randomExpr(rng *rand.Rand, depth int) *expr {
	if depth == 0 || rng.IntN(3) == 0 {
		return &expr{value: float64(rng.IntN(9) + 1)}
	}
	ops := []byte{'+', '-', '*', '/'}
	return &expr{
		op:    ops[rng.IntN(len(ops))],
		left:  randomExpr(rng, depth-1),
		right: randomExpr(rng, depth-1),
	}
}

// String writes the expression with every operation parenthesized.
func (e *expr) String() string {
	if e.left == nil {
		return strconv.FormatFloat(e.value, 'f', -1, 64)
	}
	return "(" + e.left.String() + " " + string(e.op) + " " + e.right.String() + ")"
}

func (e *expr) eval() float64 {
	if e.left == nil {
		return e.value
	}
	return apply(e.op, e.left.eval(), e.right.eval())
}

func apply(op byte, left, right float64) float64 {
	switch op {
	case '+':
		return left + right
	case '-':
		return left - right
	case '*':
		return left * right
	default:
		return left / right
	}
}

func evalValue(t *testing.T, value syntax.ComponentValue) float64 {
	t.Helper()

	switch value := value.(type) {
	case *syntax.Number:
		n, err := strconv.ParseFloat(value.Raw, 64)
		require.NoError(t, err)
		return n
	case *syntax.Parenthesized:
		return evalValue(t, value.Value)
	case *syntax.BinaryOperation:
		ops := map[syntax.OperatorKind]byte{
			syntax.OperatorAdd: '+', syntax.OperatorSub: '-', syntax.OperatorMul: '*', syntax.OperatorDiv: '/',
		}
		op, ok := ops[value.Op.Kind]
		require.True(t, ok, "operator %v", value.Op.Kind)
		return apply(op, evalValue(t, value.Left), evalValue(t, value.Right))
	default:
		t.Fatalf("unexpected value %T", value)
		return 0
	}
}

// TestFormatCalcPreservesValue formats random calc expressions and checks
// that the printed expression still evaluates to the same number.
func TestFormatCalcPreservesValue(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 11))
	for range 200 {
		tree := randomExpr(rng, 4)
		if tree.left == nil {
			continue
		}

		src := "a{width:calc" + tree.String() + "}"
		out, err := format.FormatText(src, syntax.CSS, config.DefaultFormatOptions())
		require.NoError(t, err, "formatting %s", src)

		sheet, _, err := parser.Parse(out, syntax.CSS)
		require.NoError(t, err, "reparsing %s", out)

		rule, ok := sheet.Statements[0].(*syntax.QualifiedRule)
		require.True(t, ok)
		decl, ok := rule.Block.Statements[0].(*syntax.Declaration)
		require.True(t, ok)
		function, ok := decl.Value[0].(*syntax.Function)
		require.True(t, ok)
		require.Len(t, function.Args, 1)

		assert.InDelta(t, tree.eval(), evalValue(t, function.Args[0]), 1e-9, "%s formatted as %s", src, out)
	}
}
