package symexp

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// EvalContext numerically evaluates expression trees to arbitrary
// precision. Symbol bindings live in the context, so one context can
// evaluate many expressions over the same assignment. An EvalContext
// is not safe for concurrent use.
type EvalContext struct {
	prec uint
	vars map[string]*big.Float
}

// NewEvalContext creates an evaluation context computing to prec bits
// of precision. If prec is 0, the default is 64.
func NewEvalContext(prec uint) *EvalContext {
	if prec == 0 {
		prec = 64
	}
	return &EvalContext{prec: prec, vars: make(map[string]*big.Float)}
}

// Set binds a value to a symbol name. Returns ctx for chaining.
func (ctx *EvalContext) Set(name string, value *big.Float) *EvalContext {
	ctx.vars[name] = new(big.Float).SetPrec(ctx.prec).Set(value)
	return ctx
}

// SetFloat64 binds a float64 value to a symbol name. Returns ctx for
// chaining.
func (ctx *EvalContext) SetFloat64(name string, value float64) *EvalContext {
	ctx.vars[name] = new(big.Float).SetPrec(ctx.prec).SetFloat64(value)
	return ctx
}

// Lookup returns a copy of the value bound to a symbol name, or nil if
// the name is unbound.
func (ctx *EvalContext) Lookup(name string) *big.Float {
	v := ctx.vars[name]
	if v == nil {
		return nil
	}
	return new(big.Float).Copy(v)
}

// Prec returns the precision to which values are computed.
func (ctx *EvalContext) Prec() uint {
	return ctx.prec
}

// Eval evaluates an expression against the context's bindings. It
// returns a *NameError if the tree contains a symbol with no binding,
// and a *DomainError for 0/0, exponentiation of a negative base, or
// log of a non-positive argument.
func (ctx *EvalContext) Eval(e Expr) (*big.Float, error) {
	return ctx.eval(e.root)
}

func (ctx *EvalContext) eval(n node) (*big.Float, error) {
	switch n := n.(type) {
	case *literal:
		return new(big.Float).SetPrec(ctx.prec).SetFloat64(n.val), nil
	case *symbol:
		v := ctx.vars[n.name]
		if v == nil {
			return nil, &NameError{Name: n.name}
		}
		return new(big.Float).Copy(v), nil
	case *negate:
		x, err := ctx.eval(n.x)
		if err != nil {
			return nil, err
		}
		return x.Neg(x), nil
	case *add:
		l, r, err := ctx.eval2(n.l, n.r)
		if err != nil {
			return nil, err
		}
		return l.Add(l, r), nil
	case *sub:
		l, r, err := ctx.eval2(n.l, n.r)
		if err != nil {
			return nil, err
		}
		return l.Sub(l, r), nil
	case *mul:
		l, r, err := ctx.eval2(n.l, n.r)
		if err != nil {
			return nil, err
		}
		return l.Mul(l, r), nil
	case *div:
		l, r, err := ctx.eval2(n.l, n.r)
		if err != nil {
			return nil, err
		}
		// Guard invalid divisions, 0/0 and inf/inf.
		if l.Sign() == 0 && r.Sign() == 0 || l.IsInf() && r.IsInf() {
			return nil, &DomainError{Func: "/"}
		}
		return l.Quo(l, r), nil
	case *pow:
		l, r, err := ctx.eval2(n.l, n.r)
		if err != nil {
			return nil, err
		}
		if l.Signbit() {
			return nil, &DomainError{Func: "pow"}
		}
		return bigfloat.Pow(l, l, r), nil
	case *exp:
		x, err := ctx.eval(n.x)
		if err != nil {
			return nil, err
		}
		return bigfloat.Exp(x, x), nil
	case *log:
		x, err := ctx.eval(n.x)
		if err != nil {
			return nil, err
		}
		if x.Sign() <= 0 {
			return nil, &DomainError{Func: "log"}
		}
		return bigfloat.Log(x, x), nil
	}
	panic("symexp: unknown node variant")
}

func (ctx *EvalContext) eval2(l, r node) (*big.Float, *big.Float, error) {
	lv, err := ctx.eval(l)
	if err != nil {
		return nil, nil, err
	}
	rv, err := ctx.eval(r)
	if err != nil {
		return nil, nil, err
	}
	return lv, rv, nil
}
