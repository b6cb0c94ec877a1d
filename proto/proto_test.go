package proto_test

import (
	"testing"

	"github.com/openalign/tkf91cert/proto"
)

func quarterJSON() proto.RationalJSON { return proto.RationalJSON{Num: 1, Denom: 4} }

func s1Params() proto.ParamsJSON {
	return proto.ParamsJSON{
		Pa: quarterJSON(), Pc: quarterJSON(), Pg: quarterJSON(), Pt: quarterJSON(),
		Lambda: proto.RationalJSON{Num: 1, Denom: 1},
		Mu:     proto.RationalJSON{Num: 2, Denom: 1},
		Tau:    proto.RationalJSON{Num: 1, Denom: 10},
	}
}

func TestParamsJSONDecodeValid(t *testing.T) {
	if _, err := s1Params().Decode(); err != nil {
		t.Fatalf("unexpected error decoding a valid parameter set: %v", err)
	}
}

func TestParamsJSONDecodeRejectsNonCanonicalFrequency(t *testing.T) {
	p := s1Params()
	p.Pa = proto.RationalJSON{Num: 2, Denom: 8} // reduces to 1/4 but isn't written canonically
	if _, err := p.Decode(); err == nil {
		t.Fatal("expected a non-canonical rational field to be rejected")
	}
}

func TestParamsJSONDecodeRejectsLambdaGreaterThanMu(t *testing.T) {
	p := s1Params()
	p.Lambda = proto.RationalJSON{Num: 3, Denom: 1}
	p.Mu = proto.RationalJSON{Num: 2, Denom: 1}
	if _, err := p.Decode(); err == nil {
		t.Fatal("expected lambda >= mu to be rejected")
	}
}

func TestParamsJSONDecodeRejectsFrequenciesNotSummingToOne(t *testing.T) {
	p := s1Params()
	p.Pt = proto.RationalJSON{Num: 1, Denom: 2}
	if _, err := p.Decode(); err == nil {
		t.Fatal("expected frequencies not summing to 1 to be rejected")
	}
}

func TestParamsJSONDecodeRejectsZeroDenominator(t *testing.T) {
	p := s1Params()
	p.Tau = proto.RationalJSON{Num: 1, Denom: 0}
	if _, err := p.Decode(); err == nil {
		t.Fatal("expected a zero denominator to be rejected")
	}
}

func TestRunAlignTrivialEqualSingletons(t *testing.T) {
	req := proto.AlignRequest{
		Parameters: s1Params(),
		SequenceA:  "A",
		SequenceB:  "A",
		Precision:  "high",
	}
	resp, err := proto.RunAlign(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.SequenceA != "A" || resp.SequenceB != "A" {
		t.Errorf("got rows %q/%q, want A/A", resp.SequenceA, resp.SequenceB)
	}
	if !resp.Verified {
		t.Errorf("expected precision \"high\" to always report verified=true")
	}
}

func TestRunAlignRejectsInvalidParameters(t *testing.T) {
	p := s1Params()
	p.Lambda = proto.RationalJSON{Num: 5, Denom: 1}
	req := proto.AlignRequest{Parameters: p, SequenceA: "A", SequenceB: "A", Precision: "high"}
	if _, err := proto.RunAlign(req); err == nil {
		t.Fatal("expected invalid parameters to surface as an error")
	}
}

func TestRunCountTrivialEqualSingletons(t *testing.T) {
	req := proto.CountRequest{Parameters: s1Params(), SequenceA: "A", SequenceB: "A"}
	resp, err := proto.RunCount(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.NumberOfOptimalAlignments != "1" {
		t.Errorf("got %s, want 1", resp.NumberOfOptimalAlignments)
	}
}

func TestRunBenchRunsRequestedSamples(t *testing.T) {
	req := proto.BenchRequest{
		Parameters: s1Params(),
		SequenceA:  "A",
		SequenceB:  "A",
		Precision:  "high",
		Samples:    3,
	}
	resp, err := proto.RunBench(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.ElapsedTicks) != 3 {
		t.Errorf("got %d elapsed tick samples, want 3", len(resp.ElapsedTicks))
	}
	if resp.TicksPerSecond <= 0 {
		t.Errorf("expected a positive ticks_per_second, got %d", resp.TicksPerSecond)
	}
	if resp.SequenceA != "A" || resp.SequenceB != "A" {
		t.Errorf("got rows %q/%q, want A/A", resp.SequenceA, resp.SequenceB)
	}
}

func TestRunBenchRejectsZeroSamples(t *testing.T) {
	req := proto.BenchRequest{Parameters: s1Params(), SequenceA: "A", SequenceB: "A", Precision: "high", Samples: 0}
	if _, err := proto.RunBench(req); err == nil {
		t.Fatal("expected samples < 1 to be rejected")
	}
}

func TestRunCheckAcceptsOptimalCandidate(t *testing.T) {
	req := proto.CheckRequest{Parameters: s1Params(), SequenceA: "A", SequenceB: "A"}
	resp, err := proto.RunCheck(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AlignmentIsOptimal != "yes" {
		t.Errorf("got alignment_is_optimal=%s, want yes", resp.AlignmentIsOptimal)
	}
	if resp.AlignmentIsCanonical != "yes" {
		t.Errorf("got alignment_is_canonical=%s, want yes", resp.AlignmentIsCanonical)
	}
	if resp.NumberOfOptimalAlignments != "1" {
		t.Errorf("got number_of_optimal_alignments=%s, want 1", resp.NumberOfOptimalAlignments)
	}
}

func TestRunCheckRejectsSuboptimalCandidate(t *testing.T) {
	req := proto.CheckRequest{Parameters: s1Params(), SequenceA: "AC-", SequenceB: "--C"}
	resp, err := proto.RunCheck(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AlignmentIsOptimal != "no" {
		t.Errorf("got alignment_is_optimal=%s, want no for a strictly worse candidate", resp.AlignmentIsOptimal)
	}
}

func TestRunCheckRejectsMismatchedLengths(t *testing.T) {
	req := proto.CheckRequest{Parameters: s1Params(), SequenceA: "AC", SequenceB: "A"}
	if _, err := proto.RunCheck(req); err == nil {
		t.Fatal("expected unequal-length aligned rows to be rejected")
	}
}
