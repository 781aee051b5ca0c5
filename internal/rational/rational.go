// Package rational implements exact arithmetic for musical time.
//
// Durations and positions in a score are fractions of a whole note (1/4,
// 3/8, and so on). Using floating point for these would accumulate drift
// over a long song; Rational keeps every value as a normalized, reduced
// fraction instead.
package rational

import (
	"fmt"
	"strconv"
	"strings"
)

// Rational is a normalized fraction: denom is always positive, and the sign
// of the value lives entirely in num. The zero value is not a valid
// Rational; use Zero or New.
type Rational struct {
	num   int64
	denom int64
}

// Zero is the additive identity.
var Zero = Rational{num: 0, denom: 1}

// One is the multiplicative identity.
var One = Rational{num: 1, denom: 1}

// New builds a normalized Rational from a possibly-unreduced fraction.
// It panics if denom is zero.
func New(num, denom int64) Rational {
	if denom == 0 {
		panic("rational: denominator must not be zero")
	}
	sign := int64(1)
	if (num < 0) != (denom < 0) {
		sign = -1
	}
	div := gcd(num, denom)
	if div == 0 {
		div = 1
	}
	return Rational{
		num:   sign * abs(num) / div,
		denom: abs(denom) / div,
	}
}

// Int returns the rational representing the given whole number.
func Int(n int64) Rational {
	return Rational{num: n, denom: 1}
}

// Nth returns 1/n.
func Nth(n int64) Rational {
	return New(1, n)
}

// Numerator returns the normalized numerator.
func (r Rational) Numerator() int64 { return r.num }

// Denominator returns the normalized (always positive) denominator.
func (r Rational) Denominator() int64 { return r.denom }

// Recip returns the reciprocal of r. It panics if r is zero.
func (r Rational) Recip() Rational {
	if r.num == 0 {
		panic("rational: reciprocal of zero")
	}
	return New(r.denom, r.num)
}

// IsZero reports whether r is exactly zero.
func (r Rational) IsZero() bool { return r.num == 0 }

// Add returns r + other.
func (r Rational) Add(other Rational) Rational {
	return New(r.num*other.denom+r.denom*other.num, r.denom*other.denom)
}

// Sub returns r - other.
func (r Rational) Sub(other Rational) Rational {
	return r.Add(other.Neg())
}

// Mul returns r * other.
func (r Rational) Mul(other Rational) Rational {
	return New(r.num*other.num, r.denom*other.denom)
}

// Div returns r / other. It panics if other is zero.
func (r Rational) Div(other Rational) Rational {
	return r.Mul(other.Recip())
}

// Mod returns the remainder of r / other, matching the sign of r.
func (r Rational) Mod(other Rational) Rational {
	commonDenom := r.denom * other.denom
	selfNum := r.num * other.denom
	otherNum := other.num * r.denom
	return New(selfNum%otherNum, commonDenom)
}

// MulInt returns r * n.
func (r Rational) MulInt(n int64) Rational {
	return New(r.num*n, r.denom)
}

// DivInt returns r / n.
func (r Rational) DivInt(n int64) Rational {
	return New(r.num, r.denom*n)
}

// Neg returns -r.
func (r Rational) Neg() Rational {
	return Rational{num: -r.num, denom: r.denom}
}

// Powi raises r to an integer power, including negative powers, using
// exponentiation by squaring.
func (r Rational) Powi(power int64) Rational {
	if power == 0 {
		return One
	}
	accum := r
	if power < 0 {
		accum = r.Recip()
	}
	correction := One
	remaining := power
	if remaining < 0 {
		remaining = -remaining
	}
	for remaining > 1 {
		if remaining%2 == 1 {
			correction = correction.Mul(accum)
			remaining--
		}
		accum = accum.Mul(accum)
		remaining /= 2
	}
	return accum.Mul(correction)
}

// Truncate rounds towards zero.
func (r Rational) Truncate() int64 {
	return r.num / r.denom
}

// Round rounds to the nearest integer, ties away from zero.
func (r Rational) Round() int64 {
	sign := int64(1)
	if r.num < 0 {
		sign = -1
	}
	return (r.num + sign*r.denom/2) / r.denom
}

// Cmp compares r and other, returning -1, 0, or 1.
func (r Rational) Cmp(other Rational) int {
	l := r.num * other.denom
	right := other.num * r.denom
	switch {
	case l < right:
		return -1
	case l > right:
		return 1
	default:
		return 0
	}
}

// Less reports whether r < other.
func (r Rational) Less(other Rational) bool { return r.Cmp(other) < 0 }

// LessEq reports whether r <= other.
func (r Rational) LessEq(other Rational) bool { return r.Cmp(other) <= 0 }

// Greater reports whether r > other.
func (r Rational) Greater(other Rational) bool { return r.Cmp(other) > 0 }

// Equal reports whether r == other. Both sides are assumed normalized.
func (r Rational) Equal(other Rational) bool {
	return r.num == other.num && r.denom == other.denom
}

// Float64 converts to a float64, for use at DSP boundaries where exactness
// no longer matters (e.g. converting a duration to seconds for playback).
func (r Rational) Float64() float64 {
	return float64(r.num) / float64(r.denom)
}

// String renders r as "num" when the denominator is 1, else "num/denom".
func (r Rational) String() string {
	if r.denom == 1 {
		return strconv.FormatInt(r.num, 10)
	}
	return fmt.Sprintf("%d/%d", r.num, r.denom)
}

// MarshalYAML renders r using its String form, since its fields are
// unexported and would otherwise marshal as an empty mapping.
func (r Rational) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

// ParseErrorKind classifies why Parse failed.
type ParseErrorKind int

const (
	// ErrInvalidInt means the numerator or denominator was not an integer.
	ErrInvalidInt ParseErrorKind = iota
	// ErrZeroDenominator means the denominator parsed to zero.
	ErrZeroDenominator
	// ErrMalformed means the string had more than one '/'.
	ErrMalformed
)

// ParseError is returned by Parse.
type ParseError struct {
	Kind ParseErrorKind
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrInvalidInt:
		return "invalid integer literal"
	case ErrZeroDenominator:
		return "denominator is zero"
	case ErrMalformed:
		return "malformed fraction"
	default:
		return "invalid rational"
	}
}

// Parse reads a Rational from "<int>" or "<int>/<int>".
func Parse(s string) (Rational, error) {
	parts := strings.Split(s, "/")
	num, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Rational{}, &ParseError{Kind: ErrInvalidInt}
	}
	if len(parts) == 1 {
		return New(num, 1), nil
	}
	if len(parts) > 2 {
		return Rational{}, &ParseError{Kind: ErrMalformed}
	}
	denom, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Rational{}, &ParseError{Kind: ErrInvalidInt}
	}
	if denom == 0 {
		return Rational{}, &ParseError{Kind: ErrZeroDenominator}
	}
	return New(num, denom), nil
}

// gcd computes the greatest common divisor of a and b using Euclid's
// algorithm. gcd(0, 0) is 0.
func gcd(a, b int64) int64 {
	a, b = abs(a), abs(b)
	if a < b {
		a, b = b, a
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
