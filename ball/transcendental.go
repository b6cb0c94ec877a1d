package ball

import "math/big"

// termCap bounds the number of Taylor-series terms summed for exp/log
// scalar evaluation. Convergence for the argument ranges used here (after
// range reduction) is factorial/geometric, so this cap is never the
// binding constraint in practice; it only guards against a pathological
// argument degenerating the reduction loop.
const termCap = 4096

// expScalar evaluates exp(t) for a single big.Float scalar, returning a
// ball (mid, conservative truncation-error radius) at working precision
// prec. Range reduction halves the argument until it is small, evaluates
// the Taylor series there, then undoes the reduction via repeated
// squaring using the package's own interval Mul so the compounding
// rounding error stays rigorously tracked.
func expScalar(t *big.Float, level int) Ball {
	prec := Bits(level)
	scaled := new(big.Float).SetPrec(prec).Set(t)
	half := big.NewFloat(0.5)
	k := 0
	for new(big.Float).Abs(scaled).Cmp(half) > 0 && k < 4096 {
		scaled.Quo(scaled, big.NewFloat(2))
		k++
	}

	sum := new(big.Float).SetPrec(prec).SetInt64(1)
	term := new(big.Float).SetPrec(prec).SetInt64(1)
	thresholdExp := -int(prec) - 8
	n := 1
	for n <= termCap {
		term.Mul(term, scaled)
		term.Quo(term, new(big.Float).SetPrec(prec).SetInt64(int64(n)))
		sum.Add(sum, term)
		if term.Sign() == 0 {
			break
		}
		exp := term.MantExp(nil)
		if exp < thresholdExp {
			break
		}
		n++
	}
	tail := new(big.Float).SetPrec(prec).Abs(term)
	tail = roundUp(prec, tail)
	base := Ball{Mid: sum, Rad: tail}
	return Pow(base, 1<<uint(k), level)
}

// Exp returns a ball enclosing exp(x). Because exp is monotonic
// increasing, the tight enclosure of the image of x's interval is
// [exp(lo), exp(hi)]; this is computed directly rather than by
// propagating x's radius through expScalar, then widened further by each
// endpoint's own truncation-error radius.
func Exp(x Ball, level int) Ball {
	prec := Bits(level)
	lo := expScalar(x.Lo(), level)
	hi := expScalar(x.Hi(), level)
	mid := new(big.Float).SetPrec(prec).Add(lo.Mid, hi.Mid)
	mid.Quo(mid, big.NewFloat(2))
	rad := new(big.Float).SetPrec(prec).Sub(hi.Mid, lo.Mid)
	rad.Quo(rad, big.NewFloat(2))
	rad.Abs(rad)
	rad.Add(rad, lo.Rad)
	rad.Add(rad, hi.Rad)
	rad = roundUp(prec, rad)
	return Ball{Mid: mid, Rad: rad}
}

// logScalar evaluates log(x) for a positive big.Float scalar via
// repeated square-root reduction toward 1, then the alternating Taylor
// series for log(1+y), returning (value, truncation-error bound).
func logScalar(x *big.Float, level int) (*big.Float, *big.Float) {
	prec := Bits(level)
	m := new(big.Float).SetPrec(prec).Set(x)
	j := 0
	for (m.Cmp(big.NewFloat(1.5)) > 0 || m.Cmp(big.NewFloat(0.75)) < 0) && j < 4096 {
		m.Sqrt(m)
		j++
	}
	y := new(big.Float).SetPrec(prec).Sub(m, big.NewFloat(1))

	sum := new(big.Float).SetPrec(prec)
	term := new(big.Float).SetPrec(prec).Set(y)
	thresholdExp := -int(prec) - 8
	n := 1
	for n <= termCap {
		signedTerm := new(big.Float).SetPrec(prec).Quo(term, new(big.Float).SetPrec(prec).SetInt64(int64(n)))
		if n%2 == 0 {
			sum.Sub(sum, signedTerm)
		} else {
			sum.Add(sum, signedTerm)
		}
		if term.Sign() == 0 {
			break
		}
		exp := term.MantExp(nil)
		if exp < thresholdExp {
			break
		}
		term.Mul(term, y)
		n++
	}
	scale := new(big.Float).SetPrec(prec).SetInt64(1 << uint(j))
	result := new(big.Float).SetPrec(prec).Mul(sum, scale)

	tail := new(big.Float).SetPrec(prec).Abs(term)
	tail.Mul(tail, scale)
	tail = roundUp(prec, tail)
	return result, tail
}

// Log returns a ball enclosing log(x). Requires x's enclosure to be
// strictly positive (ContainsZero false and Lo() > 0); callers only ever
// invoke this on expressions known positive by construction (probability
// parameters, their complements, and exp() outputs).
func Log(x Ball, level int) Ball {
	prec := Bits(level)
	lo := x.Lo()
	if lo.Sign() <= 0 {
		panic("ball: log of a non-positive enclosure")
	}
	loVal, loTail := logScalar(lo, level)
	hiVal, hiTail := logScalar(x.Hi(), level)
	mid := new(big.Float).SetPrec(prec).Add(loVal, hiVal)
	mid.Quo(mid, big.NewFloat(2))
	rad := new(big.Float).SetPrec(prec).Sub(hiVal, loVal)
	rad.Quo(rad, big.NewFloat(2))
	rad.Abs(rad)
	rad.Add(rad, loTail)
	rad.Add(rad, hiTail)
	rad = roundUp(prec, rad)
	return Ball{Mid: mid, Rad: rad}
}

// Log1p returns a ball enclosing log(1+x), computed as Log of x added to
// an exact 1; there is no separate method for small x.
func Log1p(x Ball, level int) Ball {
	one := Exact(big.NewFloat(1), level)
	return Log(Add(one, x, level), level)
}

// Log1m returns a ball enclosing log(1-x), i.e. Log1p(-x).
func Log1m(x Ball, level int) Ball {
	return Log1p(Neg(x, level), level)
}

// Complement returns a ball enclosing 1-x.
func Complement(x Ball, level int) Ball {
	one := Exact(big.NewFloat(1), level)
	return Sub(one, x, level)
}
