package tkf91_test

import (
	"testing"

	"github.com/openalign/tkf91cert/rational"
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

func TestValidateAccepts(t *testing.T) {
	p := uniformParams(t)
	if err := p.Validate(); err != nil {
		t.Fatalf("expected valid params, got %v", err)
	}
}

func TestValidateRejectsLambdaGEMu(t *testing.T) {
	p := uniformParams(t)
	p.Lambda = rational.MustFromInt64(3, 1)
	if err := p.Validate(); err == nil {
		t.Fatalf("expected error for lambda >= mu")
	}
}

func TestValidateRejectsBadFrequencySum(t *testing.T) {
	p := uniformParams(t)
	p.Pa = rational.MustFromInt64(1, 2)
	if err := p.Validate(); err == nil {
		t.Fatalf("expected error for frequencies not summing to 1")
	}
}

func TestValidateRejectsNonPositive(t *testing.T) {
	p := uniformParams(t)
	p.Tau = rational.MustFromInt64(0, 1)
	if err := p.Validate(); err == nil {
		t.Fatalf("expected error for non-positive tau")
	}
}
