/*
Package dp implements the tableau's four certifying strategies (§4.5,
§4.8, §4.10): magnitude bounds, ball bounds, the symbolic integer-vector
verifier, and the path counter. All four share the same boundary/body
recurrence shape over the 35-generator schema tkf91.Assemble produces;
they differ only in what kind of value they carry at each cell and how
two candidates are compared.

Grounded on original_source/tkf91_dp_bound.h, tkf91_dp_d.c (magnitude
strategy), tkf91_dp_r.c/.h (ball strategy), tkf91_dp.h/forward.h (shared
driver contract), and wavefront_hermite.c for the symbolic verifier's
cell-vector bookkeeping. The per-strategy struct-of-function-pointers
dispatch in the C sources is replaced by one function per strategy
built over tableau.Ring (RunBounds, RunSymbolic, RunCounter); RunBounds
serves both bounds strategies, selected by its CompareFunc argument.
*/
package dp

import (
	"fmt"
	"math/big"

	"github.com/openalign/tkf91cert/ball"
	"github.com/openalign/tkf91cert/expr"
	"github.com/openalign/tkf91cert/tkf91"
)

// ColumnLogs wraps every column of a generator matrix's expression
// registry with a log node. §4.5: "the per-generator log-score is the
// row of G times the vector of log-expressions evaluated at level ℓ".
// The log nodes are registered once and reuse expr's own per-node
// cache, rather than keeping a second cache keyed by level.
type ColumnLogs struct {
	logs []*expr.Expr
}

// NewColumnLogs registers a log(column) node for every column currently
// in reg. Call this once per Assembly, after tkf91.Assemble has
// finished appending its refinement-basis columns.
func NewColumnLogs(reg *expr.Registry) *ColumnLogs {
	n := reg.Len()
	logs := make([]*expr.Expr, n)
	for i := 0; i < n; i++ {
		logs[i] = reg.Log(reg.At(i))
	}
	return &ColumnLogs{logs: logs}
}

// Score evaluates one generator row's log-score as a ball at the given
// precision level. A column whose value is not yet provably positive
// at this level makes ball.Log panic inside expr.Eval; Score recovers
// that into an ordinary error rather than crashing the process.
// certify.Certify returns such an error as a failure of the pass; it
// does not escalate past it.
func (c *ColumnLogs) Score(row []*big.Int, level int) (result ball.Ball, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dp: generator score unresolved at level %d: %v", level, r)
		}
	}()
	sum := ball.Exact(big.NewFloat(0), level)
	one := big.NewInt(1)
	for col, coeff := range row {
		if coeff.Sign() == 0 {
			continue
		}
		term := c.logs[col].Eval(level)
		if coeff.Cmp(one) != 0 {
			term = ball.Mul(term, ball.FromInt(coeff.Int64(), level), level)
		}
		sum = ball.Add(sum, term, level)
	}
	result = sum
	return
}

// AllScores evaluates every generator row in asm at level, in row
// order, returning an error naming the first generator that failed to
// resolve.
func (c *ColumnLogs) AllScores(asm *tkf91.Assembly, level int) ([]ball.Ball, error) {
	scores := make([]ball.Ball, len(asm.G))
	for i, row := range asm.G {
		s, err := c.Score(row, level)
		if err != nil {
			return nil, fmt.Errorf("generator %s: %w", asm.Names[i], err)
		}
		scores[i] = s
	}
	return scores, nil
}
