package symexp_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symexp/symexp"
)

func TestVarConstructors(t *testing.T) {
	named := symexp.S("theta")
	assert.Equal(t, "theta", named.String())
	assert.False(t, named.HasValue())

	lit := symexp.N(2.5)
	require.True(t, lit.HasValue())
	assert.Equal(t, 2.5, lit.Value())
}

func TestAnon_UniqueNames(t *testing.T) {
	a, b := symexp.Anon(), symexp.Anon()
	assert.True(t, strings.HasPrefix(a.String(), "$"))
	assert.True(t, strings.HasPrefix(b.String(), "$"))
	assert.NotEqual(t, a.String(), b.String())
}

func TestAnon_DerivesAgainstItself(t *testing.T) {
	a := symexp.Anon()
	d := a.Derive(a).Simplify()
	require.True(t, d.HasValue())
	assert.Equal(t, 1.0, d.Value())
}

func TestEvaluate_RoundTrip(t *testing.T) {
	cases := []struct {
		name string
		expr symexp.Expr
		at   float64
		want float64
	}{
		{"square", symexp.S("x").Mul(symexp.S("x")), 3, 9},
		{"affine", symexp.N(2).Mul(symexp.S("x")).Add(symexp.N(1)), 4, 9},
		{"reciprocal", symexp.N(1).Div(symexp.S("x")), 4, 0.25},
		{"power", symexp.S("x").Pow(symexp.N(4)), 2, 16},
		{"negation", symexp.S("x").Neg(), 7, -7},
	}
	x := symexp.S("x")
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.expr.Evaluate(x, c.at).Simplify()
			require.True(t, got.HasValue(), "expected a literal, got %s", got)
			assert.Equal(t, c.want, got.Value())
		})
	}
}

func TestEvaluateAll(t *testing.T) {
	x, y := symexp.S("x"), symexp.S("y")
	expr := x.Mul(y).Add(x)

	got, err := expr.EvaluateAll([]symexp.Var{x, y}, []float64{3, 4})
	require.NoError(t, err)
	s := got.Simplify()
	require.True(t, s.HasValue())
	assert.Equal(t, 15.0, s.Value())
}

func TestEvaluateAll_ArityMismatch(t *testing.T) {
	x, y := symexp.S("x"), symexp.S("y")
	expr := x.Add(y)

	_, err := expr.EvaluateAll([]symexp.Var{x, y}, []float64{1, 2, 3})
	require.Error(t, err)

	var arity *symexp.ArityMismatchError
	require.True(t, errors.As(err, &arity))
	assert.Equal(t, 2, arity.Vars)
	assert.Equal(t, 3, arity.Values)
}

func TestEvaluateAll_Empty(t *testing.T) {
	x := symexp.S("x")
	got, err := x.EvaluateAll(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "x", got.String())
}

func TestDerive_SquareAtFive(t *testing.T) {
	x := symexp.S("x")
	f := x.Mul(x)
	got := f.Derive(x).Evaluate(x, 5).Simplify()
	require.True(t, got.HasValue())
	assert.Equal(t, 10.0, got.Value())
}

func TestDerive_QuotientConstantResult(t *testing.T) {
	// d/dx(x/y) at y=2 is 0.5 regardless of x.
	x, y := symexp.S("x"), symexp.S("y")
	f := x.Div(y)
	got := f.Derive(x).Evaluate(y, 2).Simplify()
	require.True(t, got.HasValue())
	assert.Equal(t, 0.5, got.Value())
	assert.Equal(t, "0.500000", got.String())
}

func TestDeriveAll(t *testing.T) {
	x, y := symexp.S("x"), symexp.S("y")
	f := x.Mul(y)

	grads := f.DeriveAll([]symexp.Var{x, y})
	require.Len(t, grads, 2)

	dx := grads[0].Evaluate(y, 3).Simplify()
	require.True(t, dx.HasValue())
	assert.Equal(t, 3.0, dx.Value())

	dy := grads[1].Evaluate(x, 4).Simplify()
	require.True(t, dy.HasValue())
	assert.Equal(t, 4.0, dy.Value())
}

func TestDerive_ByLiteralVarIsZero(t *testing.T) {
	f := symexp.S("x").Mul(symexp.S("x"))
	d := f.Derive(symexp.N(3))
	require.True(t, d.HasValue())
	assert.Equal(t, 0.0, d.Value())
}

func TestEvaluate_ByLiteralVarIsNoop(t *testing.T) {
	f := symexp.S("x").Add(symexp.N(1))
	got := f.Evaluate(symexp.N(3), 9)
	assert.Equal(t, f.String(), got.String())
}

func TestOperators_DoNotMutateOperands(t *testing.T) {
	x := symexp.S("x")
	h := x.Add(symexp.N(1))
	before := h.String()

	first := h.Mul(symexp.S("y"))
	second := h.Pow(symexp.N(2))
	_ = first.Derive(x).Simplify()

	assert.Equal(t, before, h.String())
	assert.Equal(t, "pow((x + 1.000000), 2.000000)", second.String())
}

func TestCloneIndependence(t *testing.T) {
	// Composing the same handle into two expressions and then
	// differentiating one must not change the other's rendering.
	x := symexp.S("x")
	h := x.Mul(x)
	a := h.Add(symexp.N(1))
	b := h.Sub(symexp.N(1))
	want := b.String()

	_ = a.Derive(x)
	_ = a.Simplify()

	assert.Equal(t, want, b.String())
}

func TestValue_PanicsOnNonLiteral(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r, "Value on a symbol must panic")
		err, ok := r.(*symexp.InvalidValueAccessError)
		require.True(t, ok, "panic value should be *InvalidValueAccessError, got %T", r)
		assert.Contains(t, err.Error(), "non-literal")
	}()
	symexp.S("x").Value()
}

func TestSimplify_FixedPointByReinvocation(t *testing.T) {
	x := symexp.S("x")
	e := x.Mul(x).Div(x.Mul(x)).Derive(x)
	prev := e.String()
	for i := 0; i < 10; i++ {
		e = e.Simplify()
		s := e.String()
		if s == prev {
			break
		}
		prev = s
	}
	assert.Equal(t, prev, e.Simplify().String())
}
