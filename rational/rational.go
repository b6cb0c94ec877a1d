/*
Package rational provides exact rational numbers built on
arbitrary-precision integers, kept canonical except where NewRaw is used.
*/
package rational

import (
	"fmt"
	"math/big"
)

// Rational is an exact fraction. New and the arithmetic methods keep it
// in canonical form: denominator strictly positive, numerator and
// denominator coprime, and num == 0 implies denom == 1. NewRaw only
// makes the denominator positive; IsCanonical reports whether a value
// is canonical.
type Rational struct {
	num   *big.Int
	denom *big.Int
}

// Error is returned when a rational cannot be constructed or fails
// validation.
type Error struct {
	message string
}

func (e *Error) Error() string {
	return e.message
}

// New builds a canonical Rational from a numerator and denominator. It
// returns an error if denom is zero.
func New(num, denom *big.Int) (*Rational, error) {
	if denom.Sign() == 0 {
		return nil, &Error{"rational: zero denominator"}
	}
	n := new(big.Int).Set(num)
	d := new(big.Int).Set(denom)
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	if n.Sign() == 0 {
		return &Rational{big.NewInt(0), big.NewInt(1)}, nil
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(n), d)
	if g.Cmp(big.NewInt(1)) != 0 {
		n.Quo(n, g)
		d.Quo(d, g)
	}
	return &Rational{n, d}, nil
}

// NewRaw builds a Rational from exactly the numerator and denominator
// given, normalizing only the sign (so the denominator is positive) and
// rejecting a zero denominator. Unlike New, it does not divide out any
// common factor — this is the constructor the JSON envelope boundary
// uses, so that a non-canonical input (e.g. 2/4) is preserved long
// enough for IsCanonical to reject it, rather than silently reduced
// into validity.
func NewRaw(num, denom *big.Int) (*Rational, error) {
	if denom.Sign() == 0 {
		return nil, &Error{"rational: zero denominator"}
	}
	n := new(big.Int).Set(num)
	d := new(big.Int).Set(denom)
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	return &Rational{n, d}, nil
}

// FromInt64 builds a canonical Rational from int64 numerator/denominator.
func FromInt64(num, denom int64) (*Rational, error) {
	return New(big.NewInt(num), big.NewInt(denom))
}

// MustFromInt64 is FromInt64 but panics on error; used for internal
// constants known to be valid at compile time.
func MustFromInt64(num, denom int64) *Rational {
	r, err := FromInt64(num, denom)
	if err != nil {
		panic(err)
	}
	return r
}

// Num returns a copy of the canonical numerator.
func (r *Rational) Num() *big.Int { return new(big.Int).Set(r.num) }

// Denom returns a copy of the canonical (positive) denominator.
func (r *Rational) Denom() *big.Int { return new(big.Int).Set(r.denom) }

// Sign returns -1, 0, or +1 according to the sign of r.
func (r *Rational) Sign() int { return r.num.Sign() }

// IsCanonical reports whether r satisfies the canonical-form invariant:
// denom > 0 and gcd(|num|, denom) == 1.
func (r *Rational) IsCanonical() bool {
	if r.denom.Sign() <= 0 {
		return false
	}
	if r.num.Sign() == 0 {
		return r.denom.Cmp(big.NewInt(1)) == 0
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(r.num), r.denom)
	return g.Cmp(big.NewInt(1)) == 0
}

// Add returns r + other.
func (r *Rational) Add(other *Rational) *Rational {
	num := new(big.Int).Add(new(big.Int).Mul(r.num, other.denom), new(big.Int).Mul(other.num, r.denom))
	denom := new(big.Int).Mul(r.denom, other.denom)
	res, _ := New(num, denom)
	return res
}

// Sub returns r - other.
func (r *Rational) Sub(other *Rational) *Rational {
	return r.Add(other.Neg())
}

// Mul returns r * other.
func (r *Rational) Mul(other *Rational) *Rational {
	num := new(big.Int).Mul(r.num, other.num)
	denom := new(big.Int).Mul(r.denom, other.denom)
	res, _ := New(num, denom)
	return res
}

// Quo returns r / other. Panics if other is zero; callers in this codebase
// never divide by a rational that can be zero (division is always by a
// positive model parameter).
func (r *Rational) Quo(other *Rational) *Rational {
	if other.Sign() == 0 {
		panic(&Error{"rational: division by zero"})
	}
	num := new(big.Int).Mul(r.num, other.denom)
	denom := new(big.Int).Mul(r.denom, other.num)
	res, _ := New(num, denom)
	return res
}

// Neg returns -r.
func (r *Rational) Neg() *Rational {
	return &Rational{new(big.Int).Neg(r.num), new(big.Int).Set(r.denom)}
}

// Inv returns 1/r. Panics if r is zero.
func (r *Rational) Inv() *Rational {
	if r.Sign() == 0 {
		panic(&Error{"rational: inverse of zero"})
	}
	res, _ := New(r.denom, r.num)
	return res
}

// Cmp compares r and other, returning -1, 0, +1.
func (r *Rational) Cmp(other *Rational) int {
	lhs := new(big.Int).Mul(r.num, other.denom)
	rhs := new(big.Int).Mul(other.num, r.denom)
	return lhs.Cmp(rhs)
}

// Equal reports whether r and other denote the same value.
func (r *Rational) Equal(other *Rational) bool {
	return r.Cmp(other) == 0
}

// One minus r, i.e. the "complement" 1-x used throughout the TKF91
// expression schema.
func (r *Rational) Complement() *Rational {
	return One().Sub(r)
}

// Zero returns the rational 0/1.
func Zero() *Rational { return &Rational{big.NewInt(0), big.NewInt(1)} }

// One returns the rational 1/1.
func One() *Rational { return &Rational{big.NewInt(1), big.NewInt(1)} }

// Float returns a big.Float approximation of r at the given bit precision.
func (r *Rational) Float(prec uint) *big.Float {
	num := new(big.Float).SetPrec(prec).SetInt(r.num)
	denom := new(big.Float).SetPrec(prec).SetInt(r.denom)
	return new(big.Float).SetPrec(prec).Quo(num, denom)
}

func (r *Rational) String() string {
	if r.denom.Cmp(big.NewInt(1)) == 0 {
		return r.num.String()
	}
	return fmt.Sprintf("%s/%s", r.num.String(), r.denom.String())
}
