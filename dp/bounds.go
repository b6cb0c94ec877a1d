package dp

import (
	"fmt"
	"math/big"

	"github.com/openalign/tkf91cert/ball"
	"github.com/openalign/tkf91cert/tableau"
	"github.com/openalign/tkf91cert/tkf91"
)

// Compare is the three-way (plus "can't yet tell") result of comparing
// two candidate scores under a strategy's own precision model.
type Compare int

const (
	Less Compare = iota
	Equal
	Greater
	Unresolved
)

// CompareFunc tells a candidate a's score from b's under one strategy's
// notion of "definitely bigger". CompareMagnitude compares the ball
// endpoints and CompareBall uses ball.Disjoint; both accept a winner only
// when the two enclosures are strictly separated, so they resolve the
// same pairs.
type CompareFunc func(a, b ball.Ball) Compare

// CompareMagnitude is Strategy A's comparator (§4.5): a beats b once
// a's lower bound clears b's upper bound, full stop.
func CompareMagnitude(a, b ball.Ball) Compare {
	if a.Lo().Cmp(b.Hi()) > 0 {
		return Greater
	}
	if a.Hi().Cmp(b.Lo()) < 0 {
		return Less
	}
	return Unresolved
}

// CompareBall is Strategy B's comparator: two balls must be provably
// Disjoint before either is accepted as bigger.
func CompareBall(a, b ball.Ball) Compare {
	if !ball.Disjoint(a, b) {
		return Unresolved
	}
	if ball.MidLess(a, b) {
		return Less
	}
	return Greater
}

// CompareRelative returns a comparator backing the uncertified
// float/double fast paths (§6): it accepts plain ball Disjoint-ness
// like Strategy B, but additionally resolves a non-disjoint pair once
// their midpoints differ by more than rtol in relative terms. This is
// what lets float/double terminate after a single pass instead of
// escalating toward ever-tighter separation the way mag/arb256/high
// do — a real floating-point aligner has no escalation knob to turn,
// so a near-tie has to resolve one way or the other immediately.
func CompareRelative(rtol float64) CompareFunc {
	tol := big.NewFloat(rtol)
	return func(a, b ball.Ball) Compare {
		if ball.Disjoint(a, b) {
			if ball.MidLess(a, b) {
				return Less
			}
			return Greater
		}
		denom := new(big.Float).Abs(b.Mid)
		if denom.Sign() == 0 {
			denom = big.NewFloat(1)
		}
		rel := new(big.Float).Quo(new(big.Float).Abs(new(big.Float).Sub(a.Mid, b.Mid)), denom)
		if rel.Cmp(tol) <= 0 {
			return Unresolved
		}
		if a.Mid.Cmp(b.Mid) < 0 {
			return Less
		}
		return Greater
	}
}

type cellBounds struct {
	M0, M1, M2          ball.Ball
	hasM0, hasM1, hasM2 bool
	Max3                ball.Ball
	Max2                ball.Ball
}

// negInf returns a ball enclosing log(0) = -infinity, used as the Max2
// value of boundary-column cells (j==0): §4.6's body rule feeds the M2
// candidate from the *left neighbor's Max2* (not Max3), and boundary
// column cells never have a valid M1/M2 to contribute to a two-way max
// (boundary column cells define M0 only; M1 and M2 are undefined). Without this
// sentinel, a cell at column 1 would silently inherit the boundary
// column's M0-only Max3 value instead, which would let a deletion run
// feed directly into an insertion — the exact consecutive birth/death
// transition the TKF91 model forbids.
func negInf(level int) ball.Ball {
	mid := new(big.Float).SetPrec(ball.Bits(level))
	mid.SetInf(true)
	return ball.Ball{Mid: mid, Rad: new(big.Float).SetPrec(ball.Bits(level))}
}

// unionBall returns a ball that soundly encloses every live candidate,
// since the strategy may not yet know which one is the true max.
func unionBall(vals []ball.Ball, live []bool) ball.Ball {
	var lo, hi *big.Float
	for i, v := range vals {
		if !live[i] {
			continue
		}
		vLo, vHi := v.Lo(), v.Hi()
		if lo == nil || vLo.Cmp(lo) < 0 {
			lo = vLo
		}
		if hi == nil || vHi.Cmp(hi) > 0 {
			hi = vHi
		}
	}
	mid := new(big.Float).Add(lo, hi)
	mid.Quo(mid, big.NewFloat(2))
	rad := new(big.Float).Sub(hi, lo)
	rad.Quo(rad, big.NewFloat(2))
	return ball.Ball{Mid: mid, Rad: rad}
}

// resolveLive marks as dead every candidate provably dominated by some
// other live candidate, returning which indices survive.
func resolveLive(vals []ball.Ball, present []bool, cmp CompareFunc) []bool {
	live := make([]bool, len(vals))
	copy(live, present)
	for i := range vals {
		if !present[i] {
			continue
		}
		for j := range vals {
			if i == j || !present[j] {
				continue
			}
			if cmp(vals[j], vals[i]) == Greater {
				live[i] = false
			}
		}
	}
	return live
}

var max3Bits = [3]tableau.Flag{tableau.MAX3_M0, tableau.MAX3_M1, tableau.MAX3_M2}
var max2Bits = [3]tableau.Flag{0, tableau.MAX2_M1, tableau.MAX2_M2}

// RunBounds runs one forward pass of the shared three-candidate
// recurrence (§4.6) over tb, writing MAX3_M*/MAX2_M* flags per cell and
// returning the bottom-right cell's enclosing score. cmp selects
// Strategy A (magnitude) or Strategy B (ball) behavior; the recurrence
// shape is otherwise identical between the two.
func RunBounds(tb *tableau.Tableau, asm *tkf91.Assembly, seqA, seqB []int, level int, cmp CompareFunc) (ball.Ball, error) {
	cols := tb.Cols
	colLogs := NewColumnLogs(asm.Reg)
	scores, err := colLogs.AllScores(asm, level)
	if err != nil {
		return ball.Ball{}, err
	}

	ring := tableau.NewRing[cellBounds](cols)

	visitErr := tb.Forward(func(i, j int, curr, top, diag, left *tableau.Cell) error {
		if j == 0 && i > 0 {
			ring.Advance()
		}
		row := ring.Curr()
		prev := ring.Prev()

		var cb cellBounds
		switch {
		case i == 0 && j == 0:
			// M1 only: M0, M2 undefined (spec.md §3).
			cb.M1 = scores[tkf91.RowM1_00]
			cb.hasM1 = true
			cb.Max3 = cb.M1
			cb.Max2 = cb.M1
			curr.Flags |= tableau.MAX3_M1 | tableau.MAX2_M1
			curr.Flags &^= tableau.MAX3_M0 | tableau.MAX3_M2 | tableau.MAX2_M2
		case j == 0 && i == 1:
			// m0_10 is the first deletion-column cell's absolute
			// value, not an increment from (0,0) (spec.md §3).
			cb.M0 = scores[tkf91.RowM0_10]
			cb.hasM0 = true
			cb.Max3 = cb.M0
			cb.Max2 = negInf(level)
			curr.Flags |= tableau.MAX3_M0
			curr.Flags &^= tableau.MAX3_M1 | tableau.MAX3_M2 | tableau.MAX2_M1 | tableau.MAX2_M2
		case j == 0: // i > 1: boundary column, deletions only
			genRow := tkf91.RowM0I0Incr + seqA[i-1]
			cb.M0 = ball.Add(prev[j].Max3, scores[genRow], level)
			cb.hasM0 = true
			cb.Max3 = cb.M0
			cb.Max2 = negInf(level) // M1, M2 undefined here (spec.md §3)
			curr.Flags |= tableau.MAX3_M0
			curr.Flags &^= tableau.MAX3_M1 | tableau.MAX3_M2 | tableau.MAX2_M1 | tableau.MAX2_M2
		case i == 0 && j == 1:
			// m2_01 is the first insertion-column cell's absolute
			// value, not an increment from (0,0) (spec.md §3).
			cb.M2 = scores[tkf91.RowM2_01]
			cb.hasM2 = true
			cb.Max3 = cb.M2
			cb.Max2 = cb.M2
			curr.Flags |= tableau.MAX3_M2 | tableau.MAX2_M2
			curr.Flags &^= tableau.MAX3_M0 | tableau.MAX3_M1 | tableau.MAX2_M1
		case i == 0: // j > 1: boundary row, insertions only
			genRow := tkf91.RowM20jIncr + seqB[j-1]
			cb.M2 = ball.Add(row[j-1].Max2, scores[genRow], level)
			cb.hasM2 = true
			cb.Max3 = cb.M2
			cb.Max2 = cb.M2
			curr.Flags |= tableau.MAX3_M2 | tableau.MAX2_M2
			curr.Flags &^= tableau.MAX3_M0 | tableau.MAX3_M1 | tableau.MAX2_M1
		default: // interior: all three candidates
			delRow := tkf91.RowC0Incr + seqA[i-1]
			substRow := tkf91.RowC1(seqA[i-1], seqB[j-1])
			insRow := tkf91.RowC2Incr + seqB[j-1]

			cb.M0 = ball.Add(prev[j].Max3, scores[delRow], level)
			cb.M1 = ball.Add(prev[j-1].Max3, scores[substRow], level)
			// M2 extends the left neighbor's *two-way* max (M1 or M2
			// only), never its three-way max: the TKF91 grammar
			// forbids a deletion (M0) immediately followed by an
			// insertion (§4.6's "left.max2" body rule).
			cb.M2 = ball.Add(row[j-1].Max2, scores[insRow], level)
			cb.hasM0, cb.hasM1, cb.hasM2 = true, true, true

			vals3 := []ball.Ball{cb.M0, cb.M1, cb.M2}
			present3 := []bool{true, true, true}
			live3 := resolveLive(vals3, present3, cmp)
			cb.Max3 = unionBall(vals3, live3)
			curr.Flags &^= tableau.MAX3_M0 | tableau.MAX3_M1 | tableau.MAX3_M2
			for k, l := range live3 {
				if l {
					curr.Flags |= max3Bits[k]
				}
			}

			vals2 := []ball.Ball{{}, cb.M1, cb.M2}
			present2 := []bool{false, true, true}
			live2 := resolveLive(vals2, present2, cmp)
			cb.Max2 = unionBall(vals2, live2)
			curr.Flags &^= tableau.MAX2_M1 | tableau.MAX2_M2
			for k, l := range live2 {
				if l && max2Bits[k] != 0 {
					curr.Flags |= max2Bits[k]
				}
			}
		}
		row[j] = cb
		return nil
	})
	if visitErr != nil {
		return ball.Ball{}, visitErr
	}

	last := ring.Curr()[cols-1]
	if last.Max3.Mid == nil {
		return ball.Ball{}, fmt.Errorf("dp: final cell score never computed")
	}
	return last.Max3, nil
}
