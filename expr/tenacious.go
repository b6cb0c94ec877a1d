package expr

import (
	"fmt"

	"github.com/openalign/tkf91cert/ball"
)

// Tgt is the tenacious strict greater-than comparison (§4.1): it evaluates
// both expressions at levels 0,1,2,... and, as soon as the two
// enclosures are disjoint, returns whether a's midpoint exceeds b's. A
// level at which either evaluation panics (e.g. a division by a ball
// still containing zero) counts as not yet separated.
// Identical pointers short-circuit to false without evaluating (a value
// is never strictly greater than itself). Used only at algebraic
// tie-decision points during generator construction, never inside the DP
// inner loop.
func Tgt(a, b *Expr) (bool, error) {
	if a == b {
		return false, nil
	}
	evalBoth := func(level int) (ba, bb ball.Ball, ok bool) {
		defer func() {
			if recover() != nil {
				ok = false
			}
		}()
		return a.Eval(level), b.Eval(level), true
	}
	for level := 0; level < ball.MaxLevel; level++ {
		ba, bb, ok := evalBoth(level)
		if ok && ball.Disjoint(ba, bb) {
			return ball.MidLess(bb, ba), nil
		}
	}
	return false, fmt.Errorf("expr: tenacious strict comparison failed to separate balls by level %d", ball.MaxLevel-1)
}
