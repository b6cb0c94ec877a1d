package dp_test

import (
	"testing"

	"github.com/openalign/tkf91cert/dp"
	"github.com/openalign/tkf91cert/rational"
	"github.com/openalign/tkf91cert/tableau"
	"github.com/openalign/tkf91cert/tkf91"
)

func uniformParams(t *testing.T) *tkf91.Params {
	t.Helper()
	quarter := rational.MustFromInt64(1, 4)
	return &tkf91.Params{
		Pa: quarter, Pc: quarter, Pg: quarter, Pt: quarter,
		Lambda: rational.MustFromInt64(1, 1),
		Mu:     rational.MustFromInt64(2, 1),
		Tau:    rational.MustFromInt64(1, 10),
	}
}

func buildAssembly(t *testing.T, firstA, firstB int) *tkf91.Assembly {
	t.Helper()
	p := uniformParams(t)
	b := tkf91.Build(p)
	asm, err := tkf91.Assemble(b, firstA, firstB)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	return asm
}

func TestRunBoundsMagnitudeProducesLiveFlags(t *testing.T) {
	seqA := []int{0, 1} // A, C
	seqB := []int{0, 2} // A, G
	asm := buildAssembly(t, seqA[0], seqB[0])

	tb := tableau.New(len(seqA)+1, len(seqB)+1)
	final, err := dp.RunBounds(tb, asm, seqA, seqB, 8, dp.CompareMagnitude)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if final.Mid == nil {
		t.Fatalf("expected a final score ball")
	}

	last := tb.At(len(seqA), len(seqB))
	if last.Flags&(tableau.MAX3_M0|tableau.MAX3_M1|tableau.MAX3_M2) == 0 {
		t.Errorf("expected at least one MAX3_M* bit set at the final cell")
	}
}

func TestRunBoundsBallStrategyAgreesOnShape(t *testing.T) {
	seqA := []int{3}
	seqB := []int{3, 1}
	asm := buildAssembly(t, seqA[0], seqB[0])

	tb := tableau.New(len(seqA)+1, len(seqB)+1)
	final, err := dp.RunBounds(tb, asm, seqA, seqB, 8, dp.CompareBall)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if final.Mid == nil {
		t.Fatalf("expected a final score ball")
	}
}

func TestRunCounterAfterBackward(t *testing.T) {
	seqA := []int{0}
	seqB := []int{0}
	asm := buildAssembly(t, seqA[0], seqB[0])

	tb := tableau.New(len(seqA)+1, len(seqB)+1)
	if _, err := dp.RunBounds(tb, asm, seqA, seqB, 8, dp.CompareBall); err != nil {
		t.Fatalf("bounds pass: %v", err)
	}
	tb.Backward()

	count, err := dp.RunCounter(tb, seqA, seqB)
	if err != nil {
		t.Fatalf("unexpected counter error: %v", err)
	}
	if count.Sign() <= 0 {
		t.Errorf("expected at least one optimal alignment, got count %s", count.String())
	}
}

func TestGeneratorVectorsMatchRowCount(t *testing.T) {
	asm := buildAssembly(t, 0, 0)
	vecs := dp.GeneratorVectors(asm)
	if len(vecs) != tkf91.GeneratorCount {
		t.Fatalf("expected %d vectors, got %d", tkf91.GeneratorCount, len(vecs))
	}
	rank := len(vecs[0])
	for i, v := range vecs {
		if len(v) != rank {
			t.Errorf("generator %d: vector length %d, want %d", i, len(v), rank)
		}
	}
}
