/*
Package proto implements the JSON request/response envelope for the
four operations of §6: one request object in, one response object (or
the literal null) out. It is deliberately thin — spec.md §1 frames the
line-oriented JSON carrier as an external collaborator to the core —
but lives in this module because the cmd/* executables have to speak
it, matching how _examples/bebop-poly/io/polyjson sits next to the
domain types it serializes rather than inside them.

Grounded on original_source/json_model_params.c and jsonutil.c for the
field names and validation order (decode -> validate parameters ->
validate/decode sequences -> construct the tkf91 bundle), and
_examples/bebop-poly/cmd/poly/commands_test.go for the pipe-testable
Reader/Writer shape the cmd/* packages build on top of this one.
*/
package proto

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/openalign/tkf91cert/align"
	"github.com/openalign/tkf91cert/alphabet"
	"github.com/openalign/tkf91cert/certify"
	"github.com/openalign/tkf91cert/checks"
	"github.com/openalign/tkf91cert/rational"
	"github.com/openalign/tkf91cert/tkf91"
)

// RationalJSON is the wire shape of one exact-rational field (§6): a
// numerator and denominator, not yet reduced or sign-normalized.
type RationalJSON struct {
	Num   int64 `json:"num"`
	Denom int64 `json:"denom"`
}

func (r RationalJSON) decode(field string) (*rational.Rational, error) {
	raw, err := rational.NewRaw(big.NewInt(r.Num), big.NewInt(r.Denom))
	if err != nil {
		return nil, fmt.Errorf("proto: parameter %q: %w", field, err)
	}
	if !raw.IsCanonical() {
		return nil, fmt.Errorf("proto: parameter %q (%d/%d) is not a canonical rational", field, r.Num, r.Denom)
	}
	return raw, nil
}

// ParamsJSON is the wire shape of the shared model-parameter object
// (§6): four stationary frequencies, the TKF91 birth/death rates, and
// the divergence time, each an exact rational.
type ParamsJSON struct {
	Pa     RationalJSON `json:"pa"`
	Pc     RationalJSON `json:"pc"`
	Pg     RationalJSON `json:"pg"`
	Pt     RationalJSON `json:"pt"`
	Lambda RationalJSON `json:"lambda"`
	Mu     RationalJSON `json:"mu"`
	Tau    RationalJSON `json:"tau"`
}

// Decode validates and converts a ParamsJSON into the domain-level
// tkf91.Params (§6's validation rules: canonical, positive, λ < μ,
// frequencies summing to exactly 1). Field-level rejection of a zero
// denominator or a non-canonical rational happens here at the JSON
// boundary (§7 kind 1 shape errors folded into kind 2 here since the two
// are adjacent in this schema); positivity and the cross-field rules
// (λ < μ, Σπ = 1) are tkf91.Params.Validate's
// job, invoked last so both layers run in the same order the original
// json_model_params.c pre-flight pass does.
func (p ParamsJSON) Decode() (*tkf91.Params, error) {
	pa, err := p.Pa.decode("pa")
	if err != nil {
		return nil, err
	}
	pc, err := p.Pc.decode("pc")
	if err != nil {
		return nil, err
	}
	pg, err := p.Pg.decode("pg")
	if err != nil {
		return nil, err
	}
	pt, err := p.Pt.decode("pt")
	if err != nil {
		return nil, err
	}
	lambda, err := p.Lambda.decode("lambda")
	if err != nil {
		return nil, err
	}
	mu, err := p.Mu.decode("mu")
	if err != nil {
		return nil, err
	}
	tau, err := p.Tau.decode("tau")
	if err != nil {
		return nil, err
	}
	params := &tkf91.Params{Pa: pa, Pc: pc, Pg: pg, Pt: pt, Lambda: lambda, Mu: mu, Tau: tau}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

func stripGaps(codes []int) []int {
	out := make([]int, 0, len(codes))
	for _, c := range codes {
		if c != alphabet.Gap {
			out = append(out, c)
		}
	}
	return out
}

// firstCodeOrZero returns seq's leading nucleotide code, or 0 (A) when
// seq is empty — the boundary generator that 0 would feed is only ever
// looked up at a cell that requires the corresponding sequence to be
// nonempty.
func firstCodeOrZero(seq []int) int {
	if len(seq) == 0 {
		return 0
	}
	return seq[0]
}

// AlignRequest is the align operation's input (§6).
type AlignRequest struct {
	Parameters ParamsJSON `json:"parameters"`
	SequenceA  string     `json:"sequence_a"`
	SequenceB  string     `json:"sequence_b"`
	Precision  string     `json:"precision"`
	Rtol       float64    `json:"rtol"`
}

// AlignResponse is the align operation's output (§6): the parameters
// echoed back, the two aligned rows, and whether a certified strategy
// proved optimality.
type AlignResponse struct {
	Parameters ParamsJSON `json:"parameters"`
	SequenceA  string     `json:"sequence_a"`
	SequenceB  string     `json:"sequence_b"`
	Verified   bool       `json:"verified"`
}

// RunAlign executes the align operation end to end.
func RunAlign(req AlignRequest) (*AlignResponse, error) {
	params, err := req.Parameters.Decode()
	if err != nil {
		return nil, err
	}
	res, verified, err := align.Run(params, req.SequenceA, req.SequenceB, align.Precision(req.Precision), req.Rtol)
	if err != nil {
		return nil, err
	}
	return &AlignResponse{
		Parameters: req.Parameters,
		SequenceA:  res.AlignedA,
		SequenceB:  res.AlignedB,
		Verified:   verified,
	}, nil
}

// BenchRequest is the bench operation's input (§6): an align request
// plus a sample count; precision may also be "high" (align.PrecisionHigh).
type BenchRequest struct {
	Parameters ParamsJSON `json:"parameters"`
	SequenceA  string     `json:"sequence_a"`
	SequenceB  string     `json:"sequence_b"`
	Precision  string     `json:"precision"`
	Rtol       float64    `json:"rtol"`
	Samples    int        `json:"samples"`
}

// BenchResponse is the bench operation's output (§6): the clock rate
// those ticks are measured in, one elapsed-tick count per sample, and
// the aligned rows of the *last* sample — original_source/
// arbtkf91-bench.c keeps only the last sample's solution record
// alive across the loop and reports its strings; this repo reaches
// the same outcome by simply not holding on to any earlier sample's
// *align.Result.
type BenchResponse struct {
	TicksPerSecond int64   `json:"ticks_per_second"`
	ElapsedTicks   []int64 `json:"elapsed_ticks"`
	SequenceA      string  `json:"sequence_a"`
	SequenceB      string  `json:"sequence_b"`
}

// RunBench executes samples back-to-back alignments and times each one.
// A tick is one nanosecond, so ticks_per_second is always 1e9 — the Go
// runtime's time.Now() resolution, the closest analogue available to
// the original's clock()/CLOCKS_PER_SEC pair without a third-party
// timing library (no pack repo carries one; see DESIGN.md).
func RunBench(req BenchRequest) (*BenchResponse, error) {
	if req.Samples < 1 {
		return nil, fmt.Errorf("proto: bench requires samples >= 1, got %d", req.Samples)
	}
	params, err := req.Parameters.Decode()
	if err != nil {
		return nil, err
	}

	ticks := make([]int64, req.Samples)
	var last *align.Result
	for i := 0; i < req.Samples; i++ {
		start := time.Now()
		res, _, err := align.Run(params, req.SequenceA, req.SequenceB, align.Precision(req.Precision), req.Rtol)
		if err != nil {
			return nil, err
		}
		ticks[i] = time.Since(start).Nanoseconds()
		last = res
	}

	return &BenchResponse{
		TicksPerSecond: int64(time.Second),
		ElapsedTicks:   ticks,
		SequenceA:      last.AlignedA,
		SequenceB:      last.AlignedB,
	}, nil
}

// CheckRequest is the check operation's input (§6): two already-
// aligned rows of equal length, gaps included.
type CheckRequest struct {
	Parameters ParamsJSON `json:"parameters"`
	SequenceA  string     `json:"sequence_a"`
	SequenceB  string     `json:"sequence_b"`
}

// CheckResponse is the check operation's output (§6). All three fields
// are "undetermined" together (§7 kind 6) when certifying the
// candidate's own sequences exhausts the escalation driver without a
// resolution.
type CheckResponse struct {
	AlignmentIsOptimal        string `json:"alignment_is_optimal"`
	AlignmentIsCanonical      string `json:"alignment_is_canonical"`
	NumberOfOptimalAlignments string `json:"number_of_optimal_alignments"`
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

var undeterminedResponse = &CheckResponse{
	AlignmentIsOptimal:        "undetermined",
	AlignmentIsCanonical:      "undetermined",
	NumberOfOptimalAlignments: "undetermined",
}

// RunCheck executes the check operation: recover the raw sequences by
// stripping the candidate alignment's gaps, certify a fresh alignment
// of those raw sequences to get a resolved tableau, then read the
// candidate's optimality and canonicity straight off that tableau's
// flags (certify.CheckCandidate, §4.11) — the later, complete revision
// of this executable (spec.md §9's open question), not the early one
// that skips straight to scoring.
func RunCheck(req CheckRequest) (*CheckResponse, error) {
	params, err := req.Parameters.Decode()
	if err != nil {
		return nil, err
	}

	candA, err := checks.Decode(req.SequenceA, true)
	if err != nil {
		return nil, fmt.Errorf("proto: sequence A: %w", err)
	}
	candB, err := checks.Decode(req.SequenceB, true)
	if err != nil {
		return nil, fmt.Errorf("proto: sequence B: %w", err)
	}
	if len(candA) != len(candB) {
		return nil, fmt.Errorf("proto: check requires equal-length aligned rows, got %d and %d", len(candA), len(candB))
	}

	rawA, rawB := stripGaps(candA), stripGaps(candB)

	bundle := tkf91.Build(params)
	asm, err := tkf91.Assemble(bundle, firstCodeOrZero(rawA), firstCodeOrZero(rawB))
	if err != nil {
		return nil, err
	}

	res, err := certify.Certify(asm, rawA, rawB)
	var undetermined *certify.ErrUndetermined
	if errors.As(err, &undetermined) {
		return undeterminedResponse, nil
	}
	if err != nil {
		return nil, err
	}

	optimal, canonical, err := certify.CheckCandidate(res.Tableau, candA, candB)
	if err != nil {
		return nil, err
	}

	return &CheckResponse{
		AlignmentIsOptimal:        yesNo(optimal),
		AlignmentIsCanonical:      yesNo(canonical),
		NumberOfOptimalAlignments: res.Count.String(),
	}, nil
}

// CountRequest is the count operation's input (§6): two raw, unaligned
// sequences.
type CountRequest struct {
	Parameters ParamsJSON `json:"parameters"`
	SequenceA  string     `json:"sequence_a"`
	SequenceB  string     `json:"sequence_b"`
}

// CountResponse is the count operation's output (§6): the exact
// number of co-optimal alignments as a decimal string, since it can
// overflow a JSON number.
type CountResponse struct {
	NumberOfOptimalAlignments string `json:"number_of_optimal_alignments"`
}

// RunCount executes the count operation.
func RunCount(req CountRequest) (*CountResponse, error) {
	params, err := req.Parameters.Decode()
	if err != nil {
		return nil, err
	}
	count, err := align.Count(params, req.SequenceA, req.SequenceB)
	if err != nil {
		return nil, err
	}
	return &CountResponse{NumberOfOptimalAlignments: count.String()}, nil
}
