/*
Package certify implements the escalation state machine (§4.9): cheap
magnitude bounds first, then ball bounds at increasing precision, then
symbolic verification as the last resort for a tie no amount of extra
precision can break, followed by canonical traceback (§4.9) and the
alignment checker (§4.11).

Grounded on original_source/arbtkf91-align.c and iface.c/tkf91_dp.h for
the escalation order and traceback preference; the original's single
long C function driving all four DP passes back to back is split here
into Certify (the state machine) plus dp's four standalone strategies,
matching the "Visitor driver" redesign note.
*/
package certify

import (
	"fmt"
	"math/big"

	"github.com/openalign/tkf91cert/ball"
	"github.com/openalign/tkf91cert/dp"
	"github.com/openalign/tkf91cert/tableau"
	"github.com/openalign/tkf91cert/tkf91"
)

// Result is a fully certified alignment: a ball enclosing the certified
// optimal log-score, the winning tableau with
// resolved MAX3_M*/MAX2_M* flags, the canonical alignment, and the
// number of distinct optimal alignments tied with it.
type Result struct {
	Tableau            *tableau.Tableau
	Score              ball.Ball
	Level              int
	Symbolic           bool
	AlignedA, AlignedB []int
	Count              *big.Int
}

// ErrUndetermined marks the §7 kind-5/6 outcome: escalation exhausted
// every ball precision level and the symbolic verifier then found a
// genuine inequality between two candidates the bound strategies had
// left tied, rather than confirming they were algebraically equal.
// align/count/bench treat this the same as any other error (process
// abort); check is the one operation §7 allows to report it as a
// reportable non-crash "undetermined" outcome instead.
type ErrUndetermined struct {
	reason string
}

func (e *ErrUndetermined) Error() string { return e.reason }

func ambiguousCells(tb *tableau.Tableau) int {
	return tb.AmbiguousCount()
}

// Certify runs the escalation loop to a confirmed optimal alignment of
// seqA against seqB under asm's TKF91 parameters.
func Certify(asm *tkf91.Assembly, seqA, seqB []int) (*Result, error) {
	tb := tableau.New(len(seqA)+1, len(seqB)+1)

	// S0: cheap magnitude-bounds pass at the canonical 256-bit level,
	// to prune most of the tableau before the more expensive ball
	// strategy ever runs.
	if _, err := dp.RunBounds(tb, asm, seqA, seqB, 8, dp.CompareMagnitude); err != nil {
		return nil, fmt.Errorf("certify: magnitude pass: %w", err)
	}
	tb.Backward()

	// S1 and onward: ball bounds, escalating precision until every
	// cell resolves or the ball representation runs out of levels.
	level := 8
	score, err := dp.RunBounds(tb, asm, seqA, seqB, level, dp.CompareBall)
	if err != nil {
		return nil, fmt.Errorf("certify: ball pass at level %d: %w", level, err)
	}
	tb.Backward()

	symbolicUsed := false
	for ambiguousCells(tb) > 0 && level < ball.MaxLevel-1 {
		level++
		score, err = dp.RunBounds(tb, asm, seqA, seqB, level, dp.CompareBall)
		if err != nil {
			return nil, fmt.Errorf("certify: ball pass at level %d: %w", level, err)
		}
		tb.Backward()
	}

	if ambiguousCells(tb) > 0 {
		vecs := dp.GeneratorVectors(asm)
		if err := dp.RunSymbolic(tb, seqA, seqB, vecs); err != nil {
			return nil, &ErrUndetermined{fmt.Sprintf("certify: symbolic verification: %s", err)}
		}
		symbolicUsed = true
	}

	if err := tb.CheckInvariants(); err != nil {
		return nil, fmt.Errorf("certify: %w", err)
	}

	alignedA, alignedB, err := Traceback(tb, seqA, seqB)
	if err != nil {
		return nil, err
	}

	count, err := dp.RunCounter(tb, seqA, seqB)
	if err != nil {
		return nil, fmt.Errorf("certify: counting optimal alignments: %w", err)
	}

	return &Result{
		Tableau:  tb,
		Score:    score,
		Level:    level,
		Symbolic: symbolicUsed,
		AlignedA: alignedA,
		AlignedB: alignedB,
		Count:    count,
	}, nil
}
