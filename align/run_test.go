package align_test

import (
	"testing"

	"github.com/openalign/tkf91cert/align"
	"github.com/openalign/tkf91cert/rational"
	"github.com/openalign/tkf91cert/tkf91"
)

func s1Params(t *testing.T) *tkf91.Params {
	t.Helper()
	quarter := rational.MustFromInt64(1, 4)
	return &tkf91.Params{
		Pa: quarter, Pc: quarter, Pg: quarter, Pt: quarter,
		Lambda: rational.MustFromInt64(1, 1),
		Mu:     rational.MustFromInt64(2, 1),
		Tau:    rational.MustFromInt64(1, 10),
	}
}

func TestRunHighCertifiesTrivialEqualSingletons(t *testing.T) {
	params := s1Params(t)
	res, verified, err := align.Run(params, "A", "A", align.PrecisionHigh, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !verified {
		t.Errorf("expected the high strategy to always report verified")
	}
	if res.AlignedA != "A" || res.AlignedB != "A" {
		t.Errorf("got rows %q/%q, want A/A", res.AlignedA, res.AlignedB)
	}
	if res.Count == nil || res.Count.String() != "1" {
		t.Errorf("got count %v, want 1", res.Count)
	}
}

func TestRunMagCertifiesTrivialEqualSingletons(t *testing.T) {
	params := s1Params(t)
	res, verified, err := align.Run(params, "A", "A", align.PrecisionMag, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !verified {
		t.Errorf("expected the single-cell trivial case to resolve in one magnitude-bounds pass")
	}
	if res.AlignedA != "A" || res.AlignedB != "A" {
		t.Errorf("got rows %q/%q, want A/A", res.AlignedA, res.AlignedB)
	}
}

func TestRunFastPathsNeverReportVerified(t *testing.T) {
	params := s1Params(t)
	for _, p := range []align.Precision{align.PrecisionFloat, align.PrecisionDouble} {
		res, verified, err := align.Run(params, "A", "A", p, 1e-6)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", p, err)
		}
		if verified {
			t.Errorf("%s: expected verified=false for an uncertified fast path", p)
		}
		if res.AlignedA != "A" || res.AlignedB != "A" {
			t.Errorf("%s: got rows %q/%q, want A/A", p, res.AlignedA, res.AlignedB)
		}
	}
}

func TestRunSingleIndel(t *testing.T) {
	params := s1Params(t)
	res, _, err := align.Run(params, "A", "", align.PrecisionHigh, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AlignedA != "A" || res.AlignedB != "-" {
		t.Errorf("got rows %q/%q, want A/-", res.AlignedA, res.AlignedB)
	}
}

func TestRunUnknownPrecisionErrors(t *testing.T) {
	params := s1Params(t)
	if _, _, err := align.Run(params, "A", "A", align.Precision("bogus"), 0); err == nil {
		t.Fatal("expected an error for an unrecognized precision string")
	}
}

func skewedParams(t *testing.T) *tkf91.Params {
	t.Helper()
	return &tkf91.Params{
		Pa: rational.MustFromInt64(27, 100), Pc: rational.MustFromInt64(24, 100),
		Pg: rational.MustFromInt64(26, 100), Pt: rational.MustFromInt64(23, 100),
		Lambda: rational.MustFromInt64(1, 1),
		Mu:     rational.MustFromInt64(2, 1),
		Tau:    rational.MustFromInt64(1, 10),
	}
}

// A leading deletion's score must depend on which base was deleted
// whenever pi is non-uniform (m0_10 carries a pi_{A_1} factor): a bug
// that dropped that factor would score "delete A" and "delete T"
// identically even though pi_A != pi_T.
func TestRunLeadingDeletionScoreDependsOnFirstBasePi(t *testing.T) {
	params := skewedParams(t)
	resA, _, err := align.Run(params, "A", "", align.PrecisionHigh, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resT, _, err := align.Run(params, "T", "", align.PrecisionHigh, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resA.Score.Mid.Cmp(resT.Score.Mid) == 0 {
		t.Errorf("expected a leading deletion of A to score differently than a leading deletion of T under skewed pi, got equal scores %v", resA.Score.Mid)
	}
}

// Same as above for a leading insertion (m2_01 carries a pi_{B_1} factor).
func TestRunLeadingInsertionScoreDependsOnFirstBasePi(t *testing.T) {
	params := skewedParams(t)
	resA, _, err := align.Run(params, "", "A", align.PrecisionHigh, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resT, _, err := align.Run(params, "", "T", align.PrecisionHigh, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resA.Score.Mid.Cmp(resT.Score.Mid) == 0 {
		t.Errorf("expected a leading insertion of A to score differently than a leading insertion of T under skewed pi, got equal scores %v", resA.Score.Mid)
	}
}
