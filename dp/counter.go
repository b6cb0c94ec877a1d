package dp

import (
	"math/big"

	"github.com/openalign/tkf91cert/tableau"
)

// RunCounter walks tb's already-resolved flags (every MAX3_M*/MAX2_M*
// ambiguity settled by the bound and, where needed, symbolic passes)
// and counts the number of distinct optimal alignments reaching the
// bottom-right cell (§4.10): each cell's count is the sum of its live
// predecessors' counts, since every live direction out of a cell is an
// equally optimal continuation of the alignment built so far.
func RunCounter(tb *tableau.Tableau, seqA, seqB []int) (*big.Int, error) {
	cols := tb.Cols
	ring := tableau.NewRing[*big.Int](cols)

	err := tb.Forward(func(i, j int, curr, top, diag, left *tableau.Cell) error {
		if j == 0 && i > 0 {
			ring.Advance()
		}
		row := ring.Curr()
		prev := ring.Prev()

		if i == 0 && j == 0 {
			row[j] = big.NewInt(1)
			return nil
		}

		// A predecessor's count only feeds this cell's sum if the
		// predecessor itself is on the canonical trace DAG (§4.10:
		// "only cells with TRACE contribute") — a cell can carry a
		// live MAX3_M* bit purely because the bound strategy hadn't
		// yet pruned it, without that direction surviving the
		// backward relevance pass.
		count := new(big.Int)
		if curr.Flags&tableau.MAX3_M0 != 0 && top != nil && top.Flags&tableau.TRACE != 0 {
			count.Add(count, prev[j])
		}
		if curr.Flags&tableau.MAX3_M1 != 0 && diag != nil && diag.Flags&tableau.TRACE != 0 {
			count.Add(count, prev[j-1])
		}
		if curr.Flags&tableau.MAX3_M2 != 0 && left != nil && left.Flags&tableau.TRACE != 0 {
			count.Add(count, row[j-1])
		}
		row[j] = count
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ring.Curr()[cols-1], nil
}
