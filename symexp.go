// Package symexp represents scalar mathematical expressions as
// immutable trees and provides numeric substitution, symbolic
// differentiation, and rule-based simplification over them.
//
// Design goals:
//   - Closed ten-variant node alphabet, one implementation per variant
//   - Value semantics: every operation returns a freshly built tree,
//     operands are deep-cloned, nothing is ever mutated in place
//   - Differentiation and simplification are separate, deliberately
//     decoupled passes
//   - Deterministic, fully parenthesized string rendering
//
// Expressions are built purely by code-level composition; there is no
// parser. All traversals are depth-first recursion with stack usage
// linear in tree depth, so the practical nesting limit is the
// goroutine stack limit — far beyond anything composed by hand.
package symexp

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// Expr is a handle to one owned expression tree. The zero value is not
// usable; construct expressions with S, N, Anon, or the arithmetic
// methods. An Expr is an immutable value: every method builds a new
// tree, so a handle may be reused in any number of larger expressions.
type Expr struct {
	root node
}

// A Var is an Expr used to identify which variable an operation
// targets. It is constructed in one of three forms: a named symbol, a
// fresh anonymous symbol, or a fixed literal value. A literal-rooted
// Var names no symbol, so substituting or deriving by it matches
// nothing.
type Var = Expr

// symCounter names anonymous symbols. Process-wide, starts at 0,
// never reused; the atomic is the only shared mutable state in the
// package.
var symCounter atomic.Int64

// S returns a variable backed by a named free symbol.
func S(name string) Var {
	return Expr{root: &symbol{name}}
}

// Anon returns a variable backed by a fresh anonymous symbol with a
// unique auto-generated name ($0, $1, ...).
func Anon() Var {
	n := symCounter.Add(1) - 1
	return Expr{root: &symbol{"$" + strconv.FormatInt(n, 10)}}
}

// N returns a variable fixed to a literal value.
func N(value float64) Var {
	return Expr{root: &literal{value}}
}

// ============================================================
// Arithmetic composition
// ============================================================

// The operator methods clone both operand trees into the new
// composite, so neither operand handle is affected by the result.

// Neg returns -e.
func (e Expr) Neg() Expr { return Expr{root: &negate{e.root.clone()}} }

// Add returns e + o.
func (e Expr) Add(o Expr) Expr { return Expr{root: &add{e.root.clone(), o.root.clone()}} }

// Sub returns e - o.
func (e Expr) Sub(o Expr) Expr { return Expr{root: &sub{e.root.clone(), o.root.clone()}} }

// Mul returns e * o.
func (e Expr) Mul(o Expr) Expr { return Expr{root: &mul{e.root.clone(), o.root.clone()}} }

// Div returns e / o.
func (e Expr) Div(o Expr) Expr { return Expr{root: &div{e.root.clone(), o.root.clone()}} }

// Pow returns e raised to o.
func (e Expr) Pow(o Expr) Expr { return Expr{root: &pow{e.root.clone(), o.root.clone()}} }

// Exp returns the natural exponential of e.
func (e Expr) Exp() Expr { return Expr{root: &exp{e.root.clone()}} }

// Log returns the natural logarithm of e.
func (e Expr) Log() Expr { return Expr{root: &log{e.root.clone()}} }

// ============================================================
// Structural operations
// ============================================================

// Evaluate substitutes value for every occurrence of v's symbol and
// returns the new expression. The result need not be fully numeric:
// other symbols are left free, and if v does not appear the result is
// an unchanged copy.
func (e Expr) Evaluate(v Var, value float64) Expr {
	name, ok := v.symbolName()
	if !ok {
		return Expr{root: e.root.clone()}
	}
	return Expr{root: e.root.substitute(name, value)}
}

// EvaluateAll substitutes values for variables pairwise, in list
// order, one substitution feeding the next. It returns an
// ArityMismatchError if the lists differ in length.
func (e Expr) EvaluateAll(vars []Var, values []float64) (Expr, error) {
	if len(vars) != len(values) {
		return Expr{}, &ArityMismatchError{Vars: len(vars), Values: len(values)}
	}
	out := Expr{root: e.root.clone()}
	for i, v := range vars {
		out = out.Evaluate(v, values[i])
	}
	return out, nil
}

// Derive returns the partial derivative of e with respect to v. The
// result is not simplified; derivatives grow quickly (the quotient
// rule roughly triples node count), so callers wanting a compact tree
// follow up with Simplify.
func (e Expr) Derive(v Var) Expr {
	name, ok := v.symbolName()
	if !ok {
		return Expr{root: &literal{0}}
	}
	return Expr{root: e.root.derive(name)}
}

// DeriveAll returns one independent partial derivative of e per
// variable, in input order.
func (e Expr) DeriveAll(vars []Var) []Expr {
	out := make([]Expr, len(vars))
	for i, v := range vars {
		out[i] = e.Derive(v)
	}
	return out
}

// Simplify runs one bottom-up rewrite pass and returns the reduced
// expression. A single pass is idempotent on its own output but is not
// guaranteed to reach a minimal form for deeply redundant input;
// callers needing a fixed point re-invoke Simplify until the rendering
// stops changing.
func (e Expr) Simplify() Expr {
	return Expr{root: e.root.simplify()}
}

// String renders the expression: fully parenthesized infix for the
// binary operators, "-(x)" for negation, and function-call notation
// for pow, exp and log. Literals render with six decimal digits.
func (e Expr) String() string {
	return e.root.String()
}

// HasValue reports whether the expression is a single literal.
func (e Expr) HasValue() bool {
	return e.root.hasValue()
}

// Value returns the numeric value of a literal expression. It panics
// with an *InvalidValueAccessError if the expression is not a literal;
// check HasValue first.
func (e Expr) Value() float64 {
	return e.root.value()
}

// symbolName reports the symbol a Var targets, if any.
func (e Expr) symbolName() (string, bool) {
	if s, ok := e.root.(*symbol); ok {
		return s.name, true
	}
	return "", false
}

var _ fmt.Stringer = Expr{}
