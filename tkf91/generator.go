package tkf91

import (
	"fmt"
	"math/big"

	"github.com/openalign/tkf91cert/expr"
	"github.com/openalign/tkf91cert/rational"
	"github.com/openalign/tkf91cert/refine"
)

// GeneratorCount is the size of the fixed generator schema (§3): 1 +
// 1 + 1 + 4 + 4 + 4 + 16 + 4.
const GeneratorCount = 1 + 1 + 1 + 4 + 4 + 4 + 16 + 4

// Row offsets into Assembly.G, fixed by the order buildGenerators
// appends them in. dp's strategies index generators by name through
// these rather than walking Assembly.Names at recurrence time.
const (
	RowM1_00     = 0
	RowM0_10     = 1
	RowM2_01     = 2
	RowM0I0Incr  = 3  // +[0,4): m0_i0_incr[a]
	RowM20jIncr  = 7  // +[0,4): m2_0j_incr[a]
	RowC0Incr    = 11 // +[0,4): c0_incr[a]
	RowC1Incr    = 15 // +a*4+b, a,b in [0,4): c1_incr[a,b]
	RowC2Incr    = 31 // +[0,4): c2_incr[b]
)

// RowC1 returns the generator row for c1_incr[a,b].
func RowC1(a, b int) int { return RowC1Incr + a*4 + b }

type factorKind int

const (
	factorRational factorKind = iota
	factorExpr
)

type factor struct {
	kind factorKind
	rat  *rational.Rational
	e    *expr.Expr
	exp  int64
}

// Generator is a labeled product of integer powers of rationals and
// expressions (§3's "Generator").
type Generator struct {
	Name    string
	Factors []factor
}

func gen(name string) *Generator { return &Generator{Name: name} }

// R appends a rational factor with the given integer exponent.
func (g *Generator) R(r *rational.Rational, exponent int64) *Generator {
	g.Factors = append(g.Factors, factor{kind: factorRational, rat: r, exp: exponent})
	return g
}

// E appends an expression factor with the given integer exponent.
func (g *Generator) E(e *expr.Expr, exponent int64) *Generator {
	g.Factors = append(g.Factors, factor{kind: factorExpr, e: e, exp: exponent})
	return g
}

// Assembly is the output of generator construction: the fixed-order
// generator list and the matrix G (§3's "Generator matrix G") over the
// bundle's expression registry extended with the factor-refinement
// basis constants.
type Assembly struct {
	Names []string
	Reg   *expr.Registry
	G     [][]*big.Int
}

// Assemble builds the 35-generator schema for b and runs factor
// refinement over every plain-rational factor encountered, per §4.3.
// firstA and firstB are the leading nucleotide codes of the two
// sequences this assembly will align — the boundary generators
// m0_10/m2_01 depend on them directly (a leading deletion emits
// seqA's first character, a leading insertion emits seqB's), so a
// fresh Assembly is required per sequence pair, not shared across them.
func Assemble(b *Bundle, firstA, firstB int) (*Assembly, error) {
	gens, err := buildGenerators(b, firstA, firstB)
	if err != nil {
		return nil, err
	}

	type owner struct {
		genIdx int
		sign   int64
		exp    int64
	}
	var rawInts []*big.Int
	var owners []owner

	for gi, gr := range gens {
		for _, f := range gr.Factors {
			if f.kind != factorRational {
				continue
			}
			rawInts = append(rawInts, f.rat.Num())
			owners = append(owners, owner{gi, 1, f.exp})
			rawInts = append(rawInts, f.rat.Denom())
			owners = append(owners, owner{gi, -1, f.exp})
		}
	}

	n := len(gens)
	matrix := make([][]*big.Int, n)
	regLenBeforeBasis := b.Reg.Len()

	var basis *refine.Basis
	if len(rawInts) > 0 {
		basis = refine.Refine(rawInts)
	}

	finalCols := regLenBeforeBasis
	if basis != nil {
		finalCols += len(basis.Factors)
	}
	for i := range matrix {
		matrix[i] = make([]*big.Int, finalCols)
		for j := range matrix[i] {
			matrix[i][j] = big.NewInt(0)
		}
	}

	for gi, gr := range gens {
		for _, f := range gr.Factors {
			if f.kind != factorExpr {
				continue
			}
			col := f.e.Index()
			matrix[gi][col].Add(matrix[gi][col], big.NewInt(f.exp))
		}
	}

	if basis != nil {
		for k := range basis.Factors {
			q, err := rational.New(basis.Factors[k], big.NewInt(1))
			if err != nil {
				return nil, err
			}
			b.Reg.Constant(q)
		}
		for inputIdx, exps := range basis.Exponents {
			ow := owners[inputIdx]
			for basisCol, e := range exps {
				col := regLenBeforeBasis + basisCol
				contribution := ow.sign * ow.exp * e
				matrix[ow.genIdx][col].Add(matrix[ow.genIdx][col], big.NewInt(contribution))
			}
		}
	}

	names := make([]string, n)
	for i, gr := range gens {
		names[i] = gr.Name
	}

	return &Assembly{Names: names, Reg: b.Reg, G: matrix}, nil
}

// buildGenerators constructs the fixed 35-entry generator schema.
// firstA/firstB are the first nucleotide codes of the two sequences
// being aligned, per original_source/tkf91_generators.c's m0_10/m2_01
// construction ("depends on the first character of the first/second
// sequence").
func buildGenerators(b *Bundle, firstA, firstB int) ([]*Generator, error) {
	gens := make([]*Generator, 0, GeneratorCount)

	// m1_00 = gamma_0 * zeta_1; m0_10 = gamma_1 * zeta_1 * pi_{A_1} *
	// pbar0; m2_01 = gamma_0 * zeta_2 * pi_{B_1}.
	gens = append(gens, gen("m1_00").R(b.OneMinusLOverMu, 1).E(b.OneMinusLambdaBeta, 1))
	gens = append(gens, gen("m0_10").
		R(b.OneMinusLOverMu, 1).R(b.LambdaOverMu, 1).R(b.Params.Pi()[firstA], 1).
		E(b.OneMinusLambdaBeta, 1).E(b.MuBeta, 1))
	gens = append(gens, gen("m2_01").
		R(b.OneMinusLOverMu, 1).R(b.Params.Pi()[firstB], 1).
		E(b.OneMinusLambdaBeta, 1).E(b.LambdaBeta, 1))

	for a := 0; a < 4; a++ {
		gens = append(gens, gen(fmt.Sprintf("m0_i0_incr[%d]", a)).
			R(b.LambdaOverMu, 1).E(b.LambdaBeta, 1).R(b.Params.Pi()[a], 1).E(b.MuBeta, 1))
	}
	for a := 0; a < 4; a++ {
		gens = append(gens, gen(fmt.Sprintf("m2_0j_incr[%d]", a)).
			E(b.LambdaBeta, 1).R(b.Params.Pi()[a], 1))
	}
	for a := 0; a < 4; a++ {
		gens = append(gens, gen(fmt.Sprintf("c0_incr[%d]", a)).
			R(b.LambdaOverMu, 1).R(b.Params.Pi()[a], 1).E(b.MuBeta, 1))
	}

	// p1 = exp(-mu*tau)*(1-lambda*beta); pbar1 = longbeta*(1-lambda*beta)
	p1 := b.Reg.Mul(b.ExpNegMuTau, b.OneMinusLambdaBeta)
	pbar1 := b.Reg.Mul(b.LongBeta, b.OneMinusLambdaBeta)

	// a indexes the row (top-neighbor) character, bb the column
	// (emitted) character: match_bb/mismatch_bb and pi_bb are both
	// keyed on the emitted character, never on a.
	for a := 0; a < 4; a++ {
		for bb := 0; bb < 4; bb++ {
			name := fmt.Sprintf("c1_incr[%d,%d]", a, bb)
			g := gen(name).R(b.LambdaOverMu, 1).R(b.Params.Pi()[a], 1)

			var subst *expr.Expr
			if a == bb {
				subst = b.Match[bb]
			} else {
				subst = b.Mismatch[bb]
			}
			form1 := b.Reg.Mul(subst, p1)
			form2Piece := b.Reg.Mul(b.PiExpr[bb], pbar1)

			greater, err := expr.Tgt(form1, form2Piece)
			if err != nil {
				return nil, fmt.Errorf("tkf91: c1_incr[%d,%d]: %w", a, bb, err)
			}
			if greater {
				g.E(subst, 1).E(b.ExpNegMuTau, 1).E(b.OneMinusLambdaBeta, 1)
			} else {
				g.R(b.Params.Pi()[bb], 1).E(b.LongBeta, 1).E(b.OneMinusLambdaBeta, 1)
			}
			gens = append(gens, g)
		}
	}

	for bb := 0; bb < 4; bb++ {
		gens = append(gens, gen(fmt.Sprintf("c2_incr[%d]", bb)).
			E(b.LambdaBeta, 1).R(b.Params.Pi()[bb], 1))
	}

	return gens, nil
}
