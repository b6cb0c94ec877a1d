/*
Package tkf91 builds the named rational/expression bundle and the
generator schema for the TKF91 evolutionary model (§3, §4.3): the
point-substitution, point-deletion, point-insertion process with birth
rate λ, death rate μ, and divergence time τ, over a stationary
nucleotide distribution π.

Grounded on original_source/tkf91_generators.c/.h and
tkf91_rgenerators.c/.h for the named-expression schema and the
generator layout; rgenerators.c/.h for the shared algebraic
quantities (β, dt, the match/mismatch forms).
*/
package tkf91

import (
	"fmt"

	"github.com/openalign/tkf91cert/rational"
)

// Params is the seven-rational input to one certifying alignment
// request: the four stationary nucleotide frequencies, the TKF91
// birth/death rates, and the divergence time.
type Params struct {
	Pa, Pc, Pg, Pt  *rational.Rational
	Lambda, Mu, Tau *rational.Rational
}

// Error reports a parameter-validity failure (§7 error kind 2).
type Error struct {
	message string
}

func (e *Error) Error() string { return e.message }

// Validate checks every invariant required of an accepted parameter
// object (§8 property 1): every field canonical and positive, λ < μ
// strictly, and the four frequencies summing to exactly 1.
func (p *Params) Validate() error {
	fields := map[string]*rational.Rational{
		"pa": p.Pa, "pc": p.Pc, "pg": p.Pg, "pt": p.Pt,
		"lambda": p.Lambda, "mu": p.Mu, "tau": p.Tau,
	}
	for name, r := range fields {
		if r == nil {
			return &Error{fmt.Sprintf("tkf91: missing parameter %q", name)}
		}
		if !r.IsCanonical() {
			return &Error{fmt.Sprintf("tkf91: parameter %q is not in canonical form", name)}
		}
		if r.Sign() <= 0 {
			return &Error{fmt.Sprintf("tkf91: parameter %q must be strictly positive", name)}
		}
	}
	if p.Lambda.Cmp(p.Mu) >= 0 {
		return &Error{"tkf91: require lambda < mu"}
	}
	sum := p.Pa.Add(p.Pc).Add(p.Pg).Add(p.Pt)
	if !sum.Equal(rational.One()) {
		return &Error{fmt.Sprintf("tkf91: stationary frequencies must sum to 1, got %s", sum)}
	}
	return nil
}

// Pi returns the four stationary frequencies indexed by nucleotide
// index (§3's A,C,G,T = 0,1,2,3).
func (p *Params) Pi() [4]*rational.Rational {
	return [4]*rational.Rational{p.Pa, p.Pc, p.Pg, p.Pt}
}
