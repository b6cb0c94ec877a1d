package dp

import (
	"fmt"
	"math/big"

	"github.com/openalign/tkf91cert/hermite"
	"github.com/openalign/tkf91cert/tableau"
	"github.com/openalign/tkf91cert/tkf91"
)

// GeneratorVectors reduces asm's generator matrix to Hermite Normal
// Form and returns, for each generator, its canonical integer
// coefficient vector over the reduced log-basis (hermite.Result's
// TruncatedV rows). Two generators with identical vectors have
// identical log-scores as exact values, not merely as overlapping
// ball enclosures — this is what lets the symbolic strategy confirm a
// tie that no amount of extra ball precision can separate, because
// there is nothing to separate: the values are equal.
func GeneratorVectors(asm *tkf91.Assembly) [][]*big.Int {
	res := hermite.Compute(asm.G)
	return res.TruncatedV()
}

func vecAdd(a, b []*big.Int) []*big.Int {
	out := make([]*big.Int, len(a))
	for i := range a {
		out[i] = new(big.Int).Add(a[i], b[i])
	}
	return out
}

func vecEqual(a, b []*big.Int) bool {
	for i := range a {
		if a[i].Cmp(b[i]) != 0 {
			return false
		}
	}
	return true
}

// RunSymbolic re-walks tb's already-flagged cells (MAX3_M*/MAX2_M* set
// by a prior RunBounds pass at the ceiling precision level) and proves,
// for every cell where more than one direction is still marked live,
// that the tied directions carry exactly equal log-scores. It reports
// an error the first time two directions the ball strategy left
// Unresolved turn out to have genuinely different symbolic vectors:
// that means escalation exhausted precision without actually reaching
// a tie, which §7 treats as a certification failure rather than a
// silent wrong answer.
func RunSymbolic(tb *tableau.Tableau, seqA, seqB []int, genVecs [][]*big.Int) error {
	cols := tb.Cols
	// Two vectors per cell, matching §4.8's "max2_vec, max3_vec": M2's
	// candidate reads the left neighbor's max2_vec, never its max3_vec
	// (the same M0-then-M2 grammar restriction dp.RunBounds enforces),
	// so the two must be tracked separately rather than collapsed into
	// one "canonical" vector.
	ring3 := tableau.NewRing[[]*big.Int](cols)
	ring2 := tableau.NewRing[[]*big.Int](cols)

	return tb.Forward(func(i, j int, curr, top, diag, left *tableau.Cell) error {
		if j == 0 && i > 0 {
			ring3.Advance()
			ring2.Advance()
		}
		row3, prev3 := ring3.Curr(), ring3.Prev()
		row2 := ring2.Curr()

		switch {
		case i == 0 && j == 0:
			v := genVecs[tkf91.RowM1_00]
			row3[j], row2[j] = v, v
			return nil
		case j == 0 && i == 1:
			v := genVecs[tkf91.RowM0_10]
			row3[j], row2[j] = v, nil
			return nil
		case j == 0:
			v := vecAdd(prev3[j], genVecs[tkf91.RowM0I0Incr+seqA[i-1]])
			row3[j], row2[j] = v, nil
			return nil
		case i == 0 && j == 1:
			v := genVecs[tkf91.RowM2_01]
			row3[j], row2[j] = v, v
			return nil
		case i == 0:
			v := vecAdd(row2[j-1], genVecs[tkf91.RowM20jIncr+seqB[j-1]])
			row3[j], row2[j] = v, v
			return nil
		}

		var m0Vec, m1Vec, m2Vec []*big.Int
		needM0 := curr.Flags&tableau.MAX3_M0 != 0
		needM1 := curr.Flags&(tableau.MAX3_M1|tableau.MAX2_M1) != 0
		needM2 := curr.Flags&(tableau.MAX3_M2|tableau.MAX2_M2) != 0
		if needM0 {
			m0Vec = vecAdd(prev3[j], genVecs[tkf91.RowC0Incr+seqA[i-1]])
		}
		if needM1 {
			m1Vec = vecAdd(prev3[j-1], genVecs[tkf91.RowC1(seqA[i-1], seqB[j-1])])
		}
		if needM2 {
			m2Vec = vecAdd(row2[j-1], genVecs[tkf91.RowC2Incr+seqB[j-1]])
		}

		type cand struct {
			flag tableau.Flag
			vec  []*big.Int
		}
		check := func(cands []cand) ([]*big.Int, error) {
			var canon []*big.Int
			var canonFlag tableau.Flag
			for _, c := range cands {
				if canon == nil {
					canon, canonFlag = c.vec, c.flag
					continue
				}
				if !vecEqual(c.vec, canon) {
					return nil, fmt.Errorf("dp: cell (%d,%d) directions %v and %v remain unresolved at full precision and are not symbolically equal", i, j, canonFlag, c.flag)
				}
			}
			return canon, nil
		}

		var cands3 []cand
		if curr.Flags&tableau.MAX3_M0 != 0 {
			cands3 = append(cands3, cand{tableau.MAX3_M0, m0Vec})
		}
		if curr.Flags&tableau.MAX3_M1 != 0 {
			cands3 = append(cands3, cand{tableau.MAX3_M1, m1Vec})
		}
		if curr.Flags&tableau.MAX3_M2 != 0 {
			cands3 = append(cands3, cand{tableau.MAX3_M2, m2Vec})
		}
		canon3, err := check(cands3)
		if err != nil {
			return err
		}
		row3[j] = canon3

		var cands2 []cand
		if curr.Flags&tableau.MAX2_M1 != 0 {
			cands2 = append(cands2, cand{tableau.MAX2_M1, m1Vec})
		}
		if curr.Flags&tableau.MAX2_M2 != 0 {
			cands2 = append(cands2, cand{tableau.MAX2_M2, m2Vec})
		}
		canon2, err := check(cands2)
		if err != nil {
			return err
		}
		row2[j] = canon2
		return nil
	})
}
