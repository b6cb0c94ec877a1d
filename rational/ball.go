package rational

import (
	"math/big"

	"github.com/openalign/tkf91cert/ball"
)

// Ball returns a real-ball enclosure of r at the given precision level.
// The division num/denom is evaluated at that precision, then widened by
// one unit in the last place so the result is a rigorous enclosure rather
// than a best-effort rounding.
func (r *Rational) Ball(level int) ball.Ball {
	prec := ball.Bits(level)
	num := new(big.Float).SetPrec(prec).SetInt(r.num)
	denom := new(big.Float).SetPrec(prec).SetInt(r.denom)
	mid := new(big.Float).SetPrec(prec).Quo(num, denom)

	ulp := new(big.Float).SetPrec(prec)
	if mid.Sign() == 0 {
		ulp.SetInt64(0)
	} else {
		exp := mid.MantExp(nil)
		ulp.SetMantExp(big.NewFloat(1), exp-int(prec))
		ulp.Abs(ulp)
	}
	return ball.Ball{Mid: mid, Rad: ulp}
}
