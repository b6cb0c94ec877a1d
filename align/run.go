package align

import (
	"fmt"
	"math/big"

	"github.com/openalign/tkf91cert/ball"
	"github.com/openalign/tkf91cert/certify"
	"github.com/openalign/tkf91cert/checks"
	"github.com/openalign/tkf91cert/dp"
	"github.com/openalign/tkf91cert/tableau"
	"github.com/openalign/tkf91cert/tkf91"
)

// Precision selects one of §6's four DP strategies. The two uncertified
// fast paths run a single forward pass and never escalate; mag and
// arb256 run a single certified pass at a fixed level; high runs the
// full certify.Certify escalation loop.
type Precision string

// The five precision strings the align and bench operations accept
// (§6); "high" is bench's alias for the escalation driver.
const (
	PrecisionFloat  Precision = "float"
	PrecisionDouble Precision = "double"
	PrecisionMag    Precision = "mag"
	PrecisionArb256 Precision = "arb256"
	PrecisionHigh   Precision = "high"
)

// Ball levels backing the two uncertified fast paths: level 5 is 32
// working bits, level 6 is 64 — roughly float32/float64, the
// precisions the names suggest even though this engine never actually
// drops to IEEE hardware floats. arbLevel is the canonical "256-bit"
// level §1 designates arb256's fixed precision and mag's single pass.
const (
	floatLevel  = 5
	doubleLevel = 6
	arbLevel    = 8
)

// Run produces an alignment of seqA against seqB under params, using
// whichever of §6's four strategies precision selects. verified
// reports whether that strategy proved optimality: always false for
// float/double, true for high, and true for mag/arb256 only if their
// single pass happened to leave no live tie anywhere in the tableau.
func Run(params *tkf91.Params, seqA, seqB string, precision Precision, rtol float64) (*Result, bool, error) {
	a, err := checks.Decode(seqA, false)
	if err != nil {
		return nil, false, fmt.Errorf("align: sequence A: %w", err)
	}
	b, err := checks.Decode(seqB, false)
	if err != nil {
		return nil, false, fmt.Errorf("align: sequence B: %w", err)
	}
	asm, err := assemble(params, firstCode(a), firstCode(b))
	if err != nil {
		return nil, false, err
	}

	switch precision {
	case PrecisionFloat:
		return runFast(asm, a, b, floatLevel, rtol)
	case PrecisionDouble:
		return runFast(asm, a, b, doubleLevel, rtol)
	case PrecisionMag:
		return runSinglePass(asm, a, b, arbLevel, dp.CompareMagnitude)
	case PrecisionArb256:
		return runSinglePass(asm, a, b, arbLevel, dp.CompareBall)
	case PrecisionHigh:
		res, err := certify.Certify(asm, a, b)
		if err != nil {
			return nil, false, err
		}
		result, _, err := resultFromIndices(res.AlignedA, res.AlignedB, res.Score, res.Count)
		if err != nil {
			return nil, false, err
		}
		return result, true, nil
	default:
		return nil, false, fmt.Errorf("align: unknown precision %q", precision)
	}
}

func resultFromIndices(alignedA, alignedB []int, score ball.Ball, count *big.Int) (*Result, bool, error) {
	strA, err := decodeAligned(alignedA)
	if err != nil {
		return nil, false, err
	}
	strB, err := decodeAligned(alignedB)
	if err != nil {
		return nil, false, err
	}
	return &Result{AlignedA: strA, AlignedB: strB, Score: score, Count: count}, true, nil
}

// runSinglePass runs exactly one forward pass at level under cmp (mag
// or arb256) with no backward relevance pass and no escalation, then
// reports the tableau's own unresolved-tie count as verified: a single
// pass either settled every cell or it didn't, and these two
// strategies never get a second chance to try harder.
func runSinglePass(asm *tkf91.Assembly, a, b []int, level int, cmp dp.CompareFunc) (*Result, bool, error) {
	tb := tableau.New(len(a)+1, len(b)+1)
	score, err := dp.RunBounds(tb, asm, a, b, level, cmp)
	if err != nil {
		return nil, false, err
	}
	alignedA, alignedB, err := certify.Traceback(tb, a, b)
	if err != nil {
		return nil, false, err
	}
	res, _, err := resultFromIndices(alignedA, alignedB, score, nil)
	if err != nil {
		return nil, false, err
	}
	return res, tb.AmbiguousCount() == 0, nil
}

// runFast runs the uncertified float/double strategy (§6): a single
// ball-bounds pass using dp.CompareRelative(rtol) so a near-tie still
// resolves to a definite traceback direction instead of sitting
// Unresolved forever with no escalation to fall back on. It never
// reports verified — these two strategies carry no certificate by
// construction, regardless of how the pass happened to resolve.
func runFast(asm *tkf91.Assembly, a, b []int, level int, rtol float64) (*Result, bool, error) {
	tb := tableau.New(len(a)+1, len(b)+1)
	score, err := dp.RunBounds(tb, asm, a, b, level, dp.CompareRelative(rtol))
	if err != nil {
		return nil, false, err
	}
	alignedA, alignedB, err := certify.Traceback(tb, a, b)
	if err != nil {
		return nil, false, err
	}
	res, _, err := resultFromIndices(alignedA, alignedB, score, nil)
	if err != nil {
		return nil, false, err
	}
	return res, false, nil
}
