package symexp

import "strconv"

// ArityMismatchError is the error returned when a multi-variable
// operation is given variable and value lists of different lengths.
type ArityMismatchError struct {
	// Vars is the number of variables supplied.
	Vars int
	// Values is the number of values supplied.
	Values int
}

func (err *ArityMismatchError) Error() string {
	return "symexp: arity mismatch: " + strconv.Itoa(err.Vars) + " variables, " +
		strconv.Itoa(err.Values) + " values"
}

// InvalidValueAccessError is the panic value raised by Value when the
// expression is not a single literal. Calling Value without checking
// HasValue is a contract violation, not a recoverable condition.
type InvalidValueAccessError struct {
	// Expr is the rendering of the offending expression.
	Expr string
}

func (err *InvalidValueAccessError) Error() string {
	return "symexp: Value on non-literal expression " + strconv.Quote(err.Expr)
}

// NameError is an error from numerically evaluating an expression that
// still contains a free symbol with no binding in the context.
type NameError struct {
	// Name is the symbol that was unbound.
	Name string
}

func (err *NameError) Error() string {
	return "symexp: unbound symbol: " + strconv.Quote(err.Name)
}

// DomainError is an error from applying an operation to an argument
// outside its domain during numeric evaluation.
type DomainError struct {
	// Func is the operation, e.g. "/", "pow", "log".
	Func string
}

func (err *DomainError) Error() string {
	return "symexp: argument outside domain of " + err.Func
}
