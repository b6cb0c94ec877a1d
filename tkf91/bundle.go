package tkf91

import (
	"github.com/openalign/tkf91cert/expr"
	"github.com/openalign/tkf91cert/rational"
)

// Bundle holds the derived rationals and named expressions built from
// one validated Params (§3's "derived rationals bundle" and "TKF91
// named expressions"). Quantities that are themselves plain rationals
// (no exp/log involved: λ/μ, 1−λ/μ, π_i) are kept as *rational.Rational
// so generator assembly can feed them through factor refinement rather
// than giving each one its own throwaway expression-registry column;
// quantities built from exp/log of a rational, or sums of such, are
// registered as expression nodes since they cannot be decomposed back
// into a product of rationals.
type Bundle struct {
	Params *Params
	Reg    *expr.Registry

	// Derived rationals.
	Q                [4]*rational.Rational // q_i = 1 - pi_i
	Dt               *rational.Rational    // tau / (1 - sum(pi_i^2))
	LambdaOverMu     *rational.Rational
	OneMinusLOverMu  *rational.Rational
	LambdaMinusMuTau *rational.Rational // (lambda-mu)*tau
	NegMuTau         *rational.Rational // -mu*tau
	NegDt            *rational.Rational // -dt

	// Named expressions.
	PiExpr             [4]*expr.Expr // π_i registered for use inside match_i/mismatch_i and c1_incr's tenacious comparison
	ExpNegMuTau        *expr.Expr
	Beta               *expr.Expr
	LambdaBeta         *expr.Expr
	OneMinusLambdaBeta *expr.Expr
	MuBeta             *expr.Expr
	ExpNegDt           *expr.Expr
	OneMinusExpNegDt   *expr.Expr
	Match              [4]*expr.Expr
	Mismatch           [4]*expr.Expr
	LongBeta           *expr.Expr // 1 - exp(-mu*tau) - mu*beta
}

// Build constructs the derived rationals and named expressions for p,
// registering every expression node in a fresh registry. p must already
// have passed Validate.
func Build(p *Params) *Bundle {
	reg := expr.NewRegistry()
	b := &Bundle{Params: p, Reg: reg}

	pi := p.Pi()
	sumSquares := rational.Zero()
	for i, pv := range pi {
		b.Q[i] = pv.Complement()
		sumSquares = sumSquares.Add(pv.Mul(pv))
	}
	b.Dt = p.Tau.Quo(sumSquares.Complement())
	b.NegDt = b.Dt.Neg()

	b.LambdaOverMu = p.Lambda.Quo(p.Mu)
	b.OneMinusLOverMu = b.LambdaOverMu.Complement()
	b.LambdaMinusMuTau = p.Lambda.Sub(p.Mu).Mul(p.Tau)
	b.NegMuTau = p.Mu.Neg().Mul(p.Tau)

	for i, pv := range pi {
		b.PiExpr[i] = registerConstant(reg, pv)
	}
	b.ExpNegMuTau = reg.ExpQ(b.NegMuTau)

	// beta = (1 - exp((lambda-mu)tau)) / (mu - lambda*exp((lambda-mu)tau))
	expLMTau := reg.ExpQ(b.LambdaMinusMuTau)
	betaNum := reg.Complement(expLMTau)
	muExpr := reg.Constant(p.Mu)
	lambdaExpr := reg.Constant(p.Lambda)
	betaDenom := reg.Sub(muExpr, reg.Mul(lambdaExpr, expLMTau))
	b.Beta = reg.Div(betaNum, betaDenom)

	b.LambdaBeta = reg.Mul(lambdaExpr, b.Beta)
	b.OneMinusLambdaBeta = reg.Complement(b.LambdaBeta)
	b.MuBeta = reg.Mul(muExpr, b.Beta)

	b.ExpNegDt = reg.ExpQ(b.NegDt)
	b.OneMinusExpNegDt = reg.Complement(b.ExpNegDt)

	for i, piExpr := range b.PiExpr {
		b.Match[i] = reg.Add(b.ExpNegDt, reg.Mul(piExpr, b.OneMinusExpNegDt))
		b.Mismatch[i] = reg.Mul(piExpr, b.OneMinusExpNegDt)
	}

	b.LongBeta = reg.Sub(reg.Complement(b.ExpNegMuTau), b.MuBeta)

	return b
}

// registerConstant registers q as a constant expression, aliasing
// across calls when q has already been registered with the same
// rational value — §3's "π_i (with aliasing when π values repeat)".
func registerConstant(reg *expr.Registry, q *rational.Rational) *expr.Expr {
	for i := 0; i < reg.Len(); i++ {
		e := reg.At(i)
		if existing, ok := e.ConstantValue(); ok && existing.Equal(q) {
			return e
		}
	}
	return reg.Constant(q)
}
