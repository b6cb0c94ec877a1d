/*
Package align is the public surface of the certifying engine: plain
functions over two strings that return the optimal alignment, matching
the "function over two strings" shape of a classic DP aligner, but
composed from tkf91 -> certify instead of hand-rolled Needleman-Wunsch.
*/
package align

import (
	"fmt"
	"math/big"

	"github.com/openalign/tkf91cert/alphabet"
	"github.com/openalign/tkf91cert/ball"
	"github.com/openalign/tkf91cert/certify"
	"github.com/openalign/tkf91cert/checks"
	"github.com/openalign/tkf91cert/tkf91"
)

// Result is a certified global alignment of two sequences under a
// TKF91 parameter set.
type Result struct {
	AlignedA, AlignedB string
	Score              ball.Ball
	Count              *big.Int
}

func decodeAligned(codes []int) (string, error) {
	out := make([]byte, len(codes))
	for i, c := range codes {
		if c == alphabet.Gap {
			out[i] = '-'
			continue
		}
		s, err := alphabet.DNA.Decode(c)
		if err != nil {
			return "", err
		}
		out[i] = s[0]
	}
	return string(out), nil
}

func assemble(params *tkf91.Params, firstA, firstB int) (*tkf91.Assembly, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	bundle := tkf91.Build(params)
	return tkf91.Assemble(bundle, firstA, firstB)
}

// firstCode returns seq's leading nucleotide code, or 0 (A) when seq is
// empty: the boundary generator that 0 would feed (m0_10 or m2_01) is
// only ever read at a cell that requires the corresponding sequence to
// be nonempty, so an empty sequence never actually looks it up.
func firstCode(seq []int) int {
	if len(seq) == 0 {
		return 0
	}
	return seq[0]
}

// Align returns the certified optimal global alignment of seqA against
// seqB under params.
func Align(params *tkf91.Params, seqA, seqB string) (*Result, error) {
	a, err := checks.Decode(seqA, false)
	if err != nil {
		return nil, fmt.Errorf("align: sequence A: %w", err)
	}
	b, err := checks.Decode(seqB, false)
	if err != nil {
		return nil, fmt.Errorf("align: sequence B: %w", err)
	}
	asm, err := assemble(params, firstCode(a), firstCode(b))
	if err != nil {
		return nil, err
	}

	res, err := certify.Certify(asm, a, b)
	if err != nil {
		return nil, err
	}
	alignedA, err := decodeAligned(res.AlignedA)
	if err != nil {
		return nil, err
	}
	alignedB, err := decodeAligned(res.AlignedB)
	if err != nil {
		return nil, err
	}
	return &Result{AlignedA: alignedA, AlignedB: alignedB, Score: res.Score, Count: res.Count}, nil
}

// Count returns the number of distinct optimal alignments of seqA
// against seqB under params.
func Count(params *tkf91.Params, seqA, seqB string) (*big.Int, error) {
	res, err := Align(params, seqA, seqB)
	if err != nil {
		return nil, err
	}
	return res.Count, nil
}

// Check reports whether the caller-supplied candidate alignment (two
// equal-length rows, gaps as '-') achieves the certified optimum for
// seqA against seqB under params.
func Check(params *tkf91.Params, seqA, seqB, candidateAlignedA, candidateAlignedB string) (bool, error) {
	a, err := checks.Decode(seqA, false)
	if err != nil {
		return false, fmt.Errorf("align: sequence A: %w", err)
	}
	b, err := checks.Decode(seqB, false)
	if err != nil {
		return false, fmt.Errorf("align: sequence B: %w", err)
	}
	asm, err := assemble(params, firstCode(a), firstCode(b))
	if err != nil {
		return false, err
	}
	certified, err := certify.Certify(asm, a, b)
	if err != nil {
		return false, err
	}

	candA, err := checks.Decode(candidateAlignedA, true)
	if err != nil {
		return false, fmt.Errorf("align: candidate row A: %w", err)
	}
	candB, err := checks.Decode(candidateAlignedB, true)
	if err != nil {
		return false, fmt.Errorf("align: candidate row B: %w", err)
	}

	return certify.Check(asm, candA, candB, certified.AlignedA, certified.AlignedB)
}
