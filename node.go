package symexp

import (
	"fmt"
	"math"
)

// ============================================================
// Node interface
// ============================================================

// node is one variant of the closed expression-tree alphabet. Every
// operation returns a brand-new tree; a node owns its children
// exclusively and never aliases a subtree of another tree, so clone is
// mandatory wherever a rewrite needs the same subexpression twice.
type node interface {
	// clone returns a deep, fully independent copy of the subtree.
	clone() node
	// substitute replaces every symbol named name with a literal value.
	substitute(name string, value float64) node
	// derive returns the partial derivative with respect to name.
	// The result is not simplified.
	derive(name string) node
	// simplify runs one bottom-up rewrite pass: children first, then
	// the local rules for this variant against the simplified children.
	simplify() node
	// String renders the subtree; binary operators are always fully
	// parenthesized.
	String() string

	hasValue() bool
	value() float64
}

// isZero and isOne test the simplification identities against an
// already simplified child.
func isZero(n node) bool { return n.hasValue() && n.value() == 0 }
func isOne(n node) bool  { return n.hasValue() && n.value() == 1 }

// ============================================================
// literal
// ============================================================

type literal struct {
	val float64
}

func (l *literal) clone() node                     { return &literal{l.val} }
func (l *literal) substitute(string, float64) node { return l.clone() }
func (l *literal) derive(string) node              { return &literal{0} }
func (l *literal) simplify() node                  { return l.clone() }
func (l *literal) hasValue() bool                  { return true }
func (l *literal) value() float64                  { return l.val }

// String renders with six decimal digits, matching C-family
// to_string output; this is the de facto literal format.
func (l *literal) String() string { return fmt.Sprintf("%f", l.val) }

// ============================================================
// symbol
// ============================================================

type symbol struct {
	name string
}

func (s *symbol) clone() node { return &symbol{s.name} }

// Symbol identity is by name, never by object identity.
func (s *symbol) substitute(name string, value float64) node {
	if s.name == name {
		return &literal{value}
	}
	return s.clone()
}

func (s *symbol) derive(name string) node {
	if s.name == name {
		return &literal{1}
	}
	return &literal{0}
}

func (s *symbol) simplify() node { return s.clone() }
func (s *symbol) String() string { return s.name }
func (s *symbol) hasValue() bool { return false }
func (s *symbol) value() float64 { panic(&InvalidValueAccessError{Expr: s.String()}) }

// ============================================================
// negate
// ============================================================

type negate struct {
	x node
}

func (n *negate) clone() node { return &negate{n.x.clone()} }

func (n *negate) substitute(name string, value float64) node {
	return &negate{n.x.substitute(name, value)}
}

func (n *negate) derive(name string) node {
	return &negate{n.x.derive(name)}
}

func (n *negate) simplify() node {
	x := n.x.simplify()
	switch {
	case isZero(x):
		// -(0) stays 0, never -0.
		return &literal{0}
	case x.hasValue():
		return &literal{-x.value()}
	}
	if inner, ok := x.(*negate); ok {
		return inner.x.clone()
	}
	return &negate{x}
}

func (n *negate) String() string { return "-(" + n.x.String() + ")" }
func (n *negate) hasValue() bool { return false }
func (n *negate) value() float64 { panic(&InvalidValueAccessError{Expr: n.String()}) }

// ============================================================
// add
// ============================================================

type add struct {
	l, r node
}

func (a *add) clone() node { return &add{a.l.clone(), a.r.clone()} }

func (a *add) substitute(name string, value float64) node {
	return &add{a.l.substitute(name, value), a.r.substitute(name, value)}
}

// Linearity: (f + g)' = f' + g'.
func (a *add) derive(name string) node {
	return &add{a.l.derive(name), a.r.derive(name)}
}

func (a *add) simplify() node {
	l, r := a.l.simplify(), a.r.simplify()
	switch {
	case l.hasValue() && r.hasValue():
		return &literal{l.value() + r.value()}
	case isZero(r):
		return l
	case isZero(l):
		return r
	}
	return &add{l, r}
}

func (a *add) String() string { return "(" + a.l.String() + " + " + a.r.String() + ")" }
func (a *add) hasValue() bool { return false }
func (a *add) value() float64 { panic(&InvalidValueAccessError{Expr: a.String()}) }

// ============================================================
// sub
// ============================================================

type sub struct {
	l, r node
}

func (s *sub) clone() node { return &sub{s.l.clone(), s.r.clone()} }

func (s *sub) substitute(name string, value float64) node {
	return &sub{s.l.substitute(name, value), s.r.substitute(name, value)}
}

func (s *sub) derive(name string) node {
	return &sub{s.l.derive(name), s.r.derive(name)}
}

func (s *sub) simplify() node {
	l, r := s.l.simplify(), s.r.simplify()
	switch {
	case l.hasValue() && r.hasValue():
		return &literal{l.value() - r.value()}
	case isZero(r):
		return l
	case isZero(l):
		return &negate{r}
	}
	return &sub{l, r}
}

func (s *sub) String() string { return "(" + s.l.String() + " - " + s.r.String() + ")" }
func (s *sub) hasValue() bool { return false }
func (s *sub) value() float64 { panic(&InvalidValueAccessError{Expr: s.String()}) }

// ============================================================
// mul
// ============================================================

type mul struct {
	l, r node
}

func (m *mul) clone() node { return &mul{m.l.clone(), m.r.clone()} }

func (m *mul) substitute(name string, value float64) node {
	return &mul{m.l.substitute(name, value), m.r.substitute(name, value)}
}

// Product rule: (fg)' = f'g + fg'.
func (m *mul) derive(name string) node {
	return &add{
		&mul{m.l.derive(name), m.r.clone()},
		&mul{m.l.clone(), m.r.derive(name)},
	}
}

func (m *mul) simplify() node {
	l, r := m.l.simplify(), m.r.simplify()
	switch {
	case l.hasValue() && r.hasValue():
		return &literal{l.value() * r.value()}
	case isZero(l), isZero(r):
		return &literal{0}
	case isOne(r):
		return l
	case isOne(l):
		return r
	}
	return &mul{l, r}
}

func (m *mul) String() string { return "(" + m.l.String() + " * " + m.r.String() + ")" }
func (m *mul) hasValue() bool { return false }
func (m *mul) value() float64 { panic(&InvalidValueAccessError{Expr: m.String()}) }

// ============================================================
// div
// ============================================================

type div struct {
	l, r node
}

func (d *div) clone() node { return &div{d.l.clone(), d.r.clone()} }

func (d *div) substitute(name string, value float64) node {
	return &div{d.l.substitute(name, value), d.r.substitute(name, value)}
}

// Quotient rule: (f/g)' = (f'g - fg') / g².
func (d *div) derive(name string) node {
	return &div{
		&sub{
			&mul{d.l.derive(name), d.r.clone()},
			&mul{d.l.clone(), d.r.derive(name)},
		},
		&mul{d.r.clone(), d.r.clone()},
	}
}

func (d *div) simplify() node {
	l, r := d.l.simplify(), d.r.simplify()
	switch {
	case l.hasValue() && r.hasValue():
		// Division by a zero literal folds to Inf/NaN; the error is
		// deferred to numeric evaluation, never detected symbolically.
		return &literal{l.value() / r.value()}
	case isOne(r):
		return l
	case isZero(l):
		return &literal{0}
	}
	return &div{l, r}
}

func (d *div) String() string { return "(" + d.l.String() + " / " + d.r.String() + ")" }
func (d *div) hasValue() bool { return false }
func (d *div) value() float64 { panic(&InvalidValueAccessError{Expr: d.String()}) }

// ============================================================
// pow
// ============================================================

type pow struct {
	l, r node
}

func (p *pow) clone() node { return &pow{p.l.clone(), p.r.clone()} }

func (p *pow) substitute(name string, value float64) node {
	return &pow{p.l.substitute(name, value), p.r.substitute(name, value)}
}

// derive splits on the exponent. A literal exponent takes the power
// rule b·a^(b-1)·a'; anything else takes full logarithmic
// differentiation a^b·(b'·log a + b·a'/a), which reduces to the power
// rule whenever b' simplifies to zero.
func (p *pow) derive(name string) node {
	if p.r.hasValue() {
		return &mul{
			&mul{
				p.r.clone(),
				&pow{p.l.clone(), &literal{p.r.value() - 1}},
			},
			p.l.derive(name),
		}
	}
	return &mul{
		&pow{p.l.clone(), p.r.clone()},
		&add{
			&mul{p.r.derive(name), &log{p.l.clone()}},
			&div{
				&mul{p.r.clone(), p.l.derive(name)},
				p.l.clone(),
			},
		},
	}
}

func (p *pow) simplify() node {
	l, r := p.l.simplify(), p.r.simplify()
	switch {
	case l.hasValue() && r.hasValue():
		return &literal{math.Pow(l.value(), r.value())}
	case isOne(r):
		return l
	case isZero(r):
		return &literal{1}
	case isOne(l):
		return &literal{1}
	}
	return &pow{l, r}
}

func (p *pow) String() string { return "pow(" + p.l.String() + ", " + p.r.String() + ")" }
func (p *pow) hasValue() bool { return false }
func (p *pow) value() float64 { panic(&InvalidValueAccessError{Expr: p.String()}) }

// ============================================================
// exp / log
// ============================================================

// exp and log are mutually aware: each simplify inspects the other's
// shape to cancel the inverse pair.

type exp struct {
	x node
}

func (e *exp) clone() node { return &exp{e.x.clone()} }

func (e *exp) substitute(name string, value float64) node {
	return &exp{e.x.substitute(name, value)}
}

// Chain rule; exp is its own derivative.
func (e *exp) derive(name string) node {
	return &mul{&exp{e.x.clone()}, e.x.derive(name)}
}

func (e *exp) simplify() node {
	x := e.x.simplify()
	if x.hasValue() {
		return &literal{math.Exp(x.value())}
	}
	if inner, ok := x.(*log); ok {
		return inner.x.clone()
	}
	return &exp{x}
}

func (e *exp) String() string { return "exp(" + e.x.String() + ")" }
func (e *exp) hasValue() bool { return false }
func (e *exp) value() float64 { panic(&InvalidValueAccessError{Expr: e.String()}) }

type log struct {
	x node
}

func (l *log) clone() node { return &log{l.x.clone()} }

func (l *log) substitute(name string, value float64) node {
	return &log{l.x.substitute(name, value)}
}

// Chain rule: (log f)' = f'/f.
func (l *log) derive(name string) node {
	return &div{l.x.derive(name), l.x.clone()}
}

func (l *log) simplify() node {
	x := l.x.simplify()
	if x.hasValue() {
		// log of a non-positive literal folds to NaN/-Inf; domain
		// errors are deferred, same as division.
		return &literal{math.Log(x.value())}
	}
	if inner, ok := x.(*exp); ok {
		return inner.x.clone()
	}
	return &log{x}
}

func (l *log) String() string { return "log(" + l.x.String() + ")" }
func (l *log) hasValue() bool { return false }
func (l *log) value() float64 { panic(&InvalidValueAccessError{Expr: l.String()}) }
