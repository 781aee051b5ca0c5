// Package automation implements per-sample scalar automation expressions:
// a small prefix-notation language evaluated once per rendered sample.
package automation

import (
	"fmt"
	"math"
)

// Var is an opaque reference to a positional input value, written as $k in
// source notation.
type Var int

// BuiltIn names a value supplied by the render context rather than by the
// caller's env slice.
type BuiltIn int

const (
	GlobalTimeSeconds BuiltIn = iota
	NoteTimeSeconds
)

// BinOp is a binary arithmetic operator.
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Rem
	Pow
)

// UnOp is a unary function.
type UnOp int

const (
	Sin UnOp = iota
	Cos
)

// Expr is an automation expression AST node.
type Expr interface {
	eval(b BuiltInValues, env []float64) (float64, error)
}

// Const is a literal number.
type Const float64

func (c Const) eval(BuiltInValues, []float64) (float64, error) { return float64(c), nil }

// VarExpr references a positional input.
type VarExpr struct{ Var Var }

func (v VarExpr) eval(_ BuiltInValues, env []float64) (float64, error) {
	if int(v.Var) < 0 || int(v.Var) >= len(env) {
		return 0, &EvalError{Var: v.Var}
	}
	return env[v.Var], nil
}

// BuiltInExpr references a render-supplied value such as elapsed time.
type BuiltInExpr struct{ BuiltIn BuiltIn }

func (b BuiltInExpr) eval(builtins BuiltInValues, _ []float64) (float64, error) {
	return builtins.Get(b.BuiltIn), nil
}

// BinExpr applies a binary operator to two subexpressions.
type BinExpr struct {
	Op          BinOp
	Left, Right Expr
}

func (e BinExpr) eval(builtins BuiltInValues, env []float64) (float64, error) {
	x, err := e.Left.eval(builtins, env)
	if err != nil {
		return 0, err
	}
	y, err := e.Right.eval(builtins, env)
	if err != nil {
		return 0, err
	}
	switch e.Op {
	case Add:
		return x + y, nil
	case Sub:
		return x - y, nil
	case Mul:
		return x * y, nil
	case Div:
		return x / y, nil
	case Rem:
		return math.Mod(x, y), nil
	case Pow:
		return math.Pow(x, y), nil
	default:
		return 0, fmt.Errorf("automation: unknown binary operator %d", e.Op)
	}
}

// UnExpr applies a unary function to a subexpression.
type UnExpr struct {
	Op UnOp
	X  Expr
}

func (e UnExpr) eval(builtins BuiltInValues, env []float64) (float64, error) {
	x, err := e.X.eval(builtins, env)
	if err != nil {
		return 0, err
	}
	switch e.Op {
	case Sin:
		return math.Sin(x), nil
	case Cos:
		return math.Cos(x), nil
	default:
		return 0, fmt.Errorf("automation: unknown unary operator %d", e.Op)
	}
}

// EvalError is returned when an expression references an input that the
// caller's env slice doesn't have.
type EvalError struct {
	Var Var
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("automation: referenced variable $%d does not exist", e.Var)
}

// BuiltInValues supplies the render-context values an expression may read.
type BuiltInValues struct {
	GlobalTimeSeconds float64
	NoteTimeSeconds   float64
}

// Get resolves a BuiltIn against these values.
func (b BuiltInValues) Get(v BuiltIn) float64 {
	switch v {
	case GlobalTimeSeconds:
		return b.GlobalTimeSeconds
	case NoteTimeSeconds:
		return b.NoteTimeSeconds
	default:
		return 0
	}
}

// Eval evaluates the expression against a render context and positional
// inputs.
func Eval(e Expr, builtins BuiltInValues, env []float64) (float64, error) {
	return e.eval(builtins, env)
}
