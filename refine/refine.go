/*
Package refine implements factor refinement (§4.2): reducing a list of
positive integers to a pairwise-coprime integer basis, together with each
input's integer-exponent representation over that basis.

This is reimplemented from original_source/factor_refinement.c's
linked-list-of-(base,exponent)-pairs algorithm, generalized to track, per
basis node, which original input slots contributed to it (a node born from
a gcd split can carry contributions from more than one input once two
inputs are found to share a factor), and to requeue a freshly split piece
against the *entire* current basis rather than only the remaining tail of
a single pass — required once an input's factor appears with multiplicity
greater than one (e.g. refining {12, 18} shares the prime 2 at power 2 in
12 and power 1 in 18; a single advancing pass leaves 2 and 6 both in the
basis, which are not coprime). Per spec.md §9's "Registries as arenas"
note, the linked list becomes a slice of dense nodes rather than a
pointer-chased list.
*/
package refine

import "math/big"

type node struct {
	base *big.Int
	// owners maps an input slot index to the exponent that this node's
	// base contributes to that input's factorization.
	owners map[int]int64
}

// Basis is the result of refining a list of positive integers: a
// pairwise-coprime list of integers >= 2, plus each input's exponent
// vector over that basis (sparse: only nonzero entries are present).
type Basis struct {
	Factors []*big.Int
	// Exponents[i] gives input i's sparse exponent map: basis index -> exponent.
	Exponents []map[int]int64
}

var one = big.NewInt(1)

// Refine reduces inputs (each a positive integer) to a pairwise coprime
// basis. It panics if any input is not strictly positive; callers in this
// codebase only ever pass rational numerators/denominators, which are
// always positive by construction once sign has been factored out.
func Refine(inputs []*big.Int) *Basis {
	var basis []node

	for i, raw := range inputs {
		if raw.Sign() <= 0 {
			panic("refine: non-positive input")
		}
		if raw.Cmp(one) == 0 {
			continue
		}
		basis = insert(basis, node{base: new(big.Int).Set(raw), owners: map[int]int64{i: 1}})
	}

	out := &Basis{Exponents: make([]map[int]int64, len(inputs))}
	for i := range inputs {
		out.Exponents[i] = map[int]int64{}
	}
	for _, n := range basis {
		k := len(out.Factors)
		out.Factors = append(out.Factors, n.base)
		for input, e := range n.owners {
			out.Exponents[input][k] = e
		}
	}
	return out
}

// insert merges m into basis, splitting m and any basis element it shares
// a common factor with until every pairwise gcd in the result is 1.
func insert(basis []node, m node) []node {
	pending := []node{m}
	for len(pending) > 0 {
		cur := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		split := false
		for i, b := range basis {
			g := new(big.Int).GCD(nil, nil, cur.base, b.base)
			if g.Cmp(one) == 0 {
				continue
			}
			basis = append(basis[:i:i], basis[i+1:]...)
			gOwners := mergeOwners(cur.owners, b.owners)
			curRemainder := new(big.Int).Quo(cur.base, g)
			bRemainder := new(big.Int).Quo(b.base, g)
			pending = append(pending, node{base: g, owners: gOwners})
			if curRemainder.Cmp(one) != 0 {
				pending = append(pending, node{base: curRemainder, owners: cur.owners})
			}
			if bRemainder.Cmp(one) != 0 {
				pending = append(pending, node{base: bRemainder, owners: b.owners})
			}
			split = true
			break
		}
		if !split && cur.base.Cmp(one) != 0 {
			basis = append(basis, cur)
		}
	}
	return basis
}

func mergeOwners(a, b map[int]int64) map[int]int64 {
	out := make(map[int]int64, len(a)+len(b))
	for k, v := range a {
		out[k] += v
	}
	for k, v := range b {
		out[k] += v
	}
	return out
}
