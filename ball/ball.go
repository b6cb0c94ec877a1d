/*
Package ball implements the real-ball (midpoint + non-negative radius)
arithmetic façade that the TKF91 certifying engine treats as an external
collaborator: the core only ever calls this fixed interface, never reaches
into big.Float internals directly.

A Ball encloses an exact real value: there exists x in [Mid-Rad, Mid+Rad]
equal to the value the ball represents. Precision is selected by an integer
level in [0,30); working precision in bits is 1<<level. Level 8 is the
canonical "256-bit" precision named by the arb256 operation mode.
*/
package ball

import (
	"math/big"
)

// MaxLevel is the exclusive upper bound on precision levels. Level 29 is
// the last one the certifying driver and tenacious comparisons are
// allowed to try before giving up.
const MaxLevel = 30

// Bits returns the working precision, in bits, for a given level.
func Bits(level int) uint {
	if level < 0 || level >= MaxLevel {
		panic("ball: level out of range")
	}
	return uint(1) << uint(level)
}

// Ball is a real-number enclosure: the represented value lies within
// [Mid-Rad, Mid+Rad]. Rad is always >= 0.
type Ball struct {
	Mid *big.Float
	Rad *big.Float
}

// Exact returns a zero-radius ball enclosing exactly v at the given level.
func Exact(v *big.Float, level int) Ball {
	prec := Bits(level)
	return Ball{
		Mid: new(big.Float).SetPrec(prec).Set(v),
		Rad: new(big.Float).SetPrec(prec),
	}
}

// FromInt returns an exact ball enclosing the integer n.
func FromInt(n int64, level int) Ball {
	return Exact(new(big.Float).SetInt64(n), level)
}

// roundUp rounds v up (away from zero) so that widening by rounding
// error never shrinks the enclosure.
func roundUp(prec uint, v *big.Float) *big.Float {
	r := new(big.Float).SetPrec(prec)
	r.SetMode(big.AwayFromZero)
	r.Set(v)
	return r
}

// Add returns a ball enclosing a+b.
func Add(a, b Ball, level int) Ball {
	prec := Bits(level)
	mid := new(big.Float).SetPrec(prec).Add(a.Mid, b.Mid)
	rad := new(big.Float).SetPrec(prec)
	rad.Add(a.Rad, b.Rad)
	rad = roundUp(prec, rad)
	return Ball{Mid: mid, Rad: rad}
}

// Neg returns a ball enclosing -a.
func Neg(a Ball, level int) Ball {
	prec := Bits(level)
	return Ball{
		Mid: new(big.Float).SetPrec(prec).Neg(a.Mid),
		Rad: new(big.Float).SetPrec(prec).Set(a.Rad),
	}
}

// Sub returns a ball enclosing a-b.
func Sub(a, b Ball, level int) Ball {
	return Add(a, Neg(b, level), level)
}

// Mul returns a ball enclosing a*b using the standard interval-product
// bound |a|*radB + |b|*radA + radA*radB.
func Mul(a, b Ball, level int) Ball {
	prec := Bits(level)
	mid := new(big.Float).SetPrec(prec).Mul(a.Mid, b.Mid)

	absA := new(big.Float).SetPrec(prec).Abs(a.Mid)
	absB := new(big.Float).SetPrec(prec).Abs(b.Mid)

	t1 := new(big.Float).SetPrec(prec).Mul(absA, b.Rad)
	t2 := new(big.Float).SetPrec(prec).Mul(absB, a.Rad)
	t3 := new(big.Float).SetPrec(prec).Mul(a.Rad, b.Rad)

	rad := new(big.Float).SetPrec(prec).Add(t1, t2)
	rad.Add(rad, t3)
	rad = roundUp(prec, rad)
	return Ball{Mid: mid, Rad: rad}
}

// ContainsZero reports whether 0 lies within the ball's enclosure.
func (b Ball) ContainsZero() bool {
	lo := new(big.Float).Sub(b.Mid, b.Rad)
	hi := new(big.Float).Add(b.Mid, b.Rad)
	return lo.Sign() <= 0 && hi.Sign() >= 0
}

// Pow raises a ball to a non-negative or negative integer power via
// repeated squaring; a negative exponent requires a ball that cannot
// contain zero.
func Pow(a Ball, exp int, level int) Ball {
	if exp < 0 {
		if a.ContainsZero() {
			panic("ball: cannot invert a ball containing zero")
		}
		inv := Inv(a, level)
		return Pow(inv, -exp, level)
	}
	result := Exact(big.NewFloat(1), level)
	base := a
	n := exp
	for n > 0 {
		if n&1 == 1 {
			result = Mul(result, base, level)
		}
		base = Mul(base, base, level)
		n >>= 1
	}
	return result
}

// Inv returns a ball enclosing 1/a. Panics if a may contain zero.
func Inv(a Ball, level int) Ball {
	prec := Bits(level)
	if a.ContainsZero() {
		panic("ball: division by a ball containing zero")
	}
	lo := new(big.Float).SetPrec(prec).Sub(a.Mid, a.Rad)
	hi := new(big.Float).SetPrec(prec).Add(a.Mid, a.Rad)
	invLo := new(big.Float).SetPrec(prec).Quo(big.NewFloat(1), lo)
	invHi := new(big.Float).SetPrec(prec).Quo(big.NewFloat(1), hi)
	if invLo.Cmp(invHi) > 0 {
		invLo, invHi = invHi, invLo
	}
	mid := new(big.Float).SetPrec(prec).Add(invLo, invHi)
	mid.Quo(mid, big.NewFloat(2))
	rad := new(big.Float).SetPrec(prec).Sub(invHi, invLo)
	rad.Quo(rad, big.NewFloat(2))
	rad = roundUp(prec, rad)
	return Ball{Mid: mid, Rad: rad}
}

// Quo returns a ball enclosing a/b.
func Quo(a, b Ball, level int) Ball {
	return Mul(a, Inv(b, level), level)
}

// Disjoint reports whether two balls provably enclose different values,
// i.e. their intervals do not overlap.
func Disjoint(a, b Ball) bool {
	aLo := new(big.Float).Sub(a.Mid, a.Rad)
	aHi := new(big.Float).Add(a.Mid, a.Rad)
	bLo := new(big.Float).Sub(b.Mid, b.Rad)
	bHi := new(big.Float).Add(b.Mid, b.Rad)
	return aHi.Cmp(bLo) < 0 || bHi.Cmp(aLo) < 0
}

// MidLess reports whether a's midpoint is strictly less than b's, used
// only once two balls are already known to be Disjoint.
func MidLess(a, b Ball) bool {
	return a.Mid.Cmp(b.Mid) < 0
}

// Lo and Hi give the bare endpoints of the enclosure. The magnitude-bounds
// strategy (dp.CompareMagnitude) compares these endpoints at the ball's
// full working precision; no reduction to 30-bit magnitudes is made.
func (b Ball) Lo() *big.Float { return new(big.Float).Sub(b.Mid, b.Rad) }
func (b Ball) Hi() *big.Float { return new(big.Float).Add(b.Mid, b.Rad) }
