package certify

import (
	"fmt"

	"github.com/openalign/tkf91cert/alphabet"
	"github.com/openalign/tkf91cert/tableau"
)

// Traceback walks tb's resolved flags from the bottom-right cell back
// to the origin, preferring a deletion (MAX3_M0) over a
// substitution/match (MAX3_M1) over an insertion (MAX3_M2) whenever
// more than one direction is still live at a cell — the canonical tie
// order (§4.9) — and returns the resulting alignment as two
// equal-length index slices padded with alphabet.Gap.
func Traceback(tb *tableau.Tableau, seqA, seqB []int) (alignedA, alignedB []int, err error) {
	i, j := tb.Rows-1, tb.Cols-1
	var revA, revB []int

	for i > 0 || j > 0 {
		switch canonicalBit(tb.At(i, j).Flags, i, j) {
		case tableau.MAX3_M0:
			revA = append(revA, seqA[i-1])
			revB = append(revB, alphabet.Gap)
			i--
		case tableau.MAX3_M1:
			revA = append(revA, seqA[i-1])
			revB = append(revB, seqB[j-1])
			i--
			j--
		case tableau.MAX3_M2:
			revA = append(revA, alphabet.Gap)
			revB = append(revB, seqB[j-1])
			j--
		default:
			return nil, nil, fmt.Errorf("certify: cell (%d,%d) has no live traceback direction", i, j)
		}
	}

	n := len(revA)
	alignedA = make([]int, n)
	alignedB = make([]int, n)
	for k := 0; k < n; k++ {
		alignedA[k] = revA[n-1-k]
		alignedB[k] = revB[n-1-k]
	}
	return alignedA, alignedB, nil
}

// canonicalBit returns whichever of MAX3_M0/M1/M2 the canonical
// M0 > M1 > M2 tie order (§4.9's "counter-clockwise" preference)
// picks at cell (i,j), or 0 if none of them is both live and
// geometrically possible there (i==0 rules out M0/M1, j==0 rules out
// M1/M2).
func canonicalBit(flags tableau.Flag, i, j int) tableau.Flag {
	switch {
	case i > 0 && flags&tableau.MAX3_M0 != 0:
		return tableau.MAX3_M0
	case i > 0 && j > 0 && flags&tableau.MAX3_M1 != 0:
		return tableau.MAX3_M1
	case j > 0 && flags&tableau.MAX3_M2 != 0:
		return tableau.MAX3_M2
	default:
		return 0
	}
}
