/*
Package hermite computes integer Hermite Normal Form (§4.4): given an
integer matrix G, find a unimodular U with U·G = H in row-echelon form
(nonzero rows first, strictly increasing pivot columns), plus U's exact
inverse V.

Grounded on original_source/wavefront_hermite.c and lattice-basis.c's
row-reduction-by-elementary-operations approach: rather than compute V
by adjugate/cofactor (which only determines it up to the sign
ambiguity the original C code corrects for by negating on
det(U) == -1), V is built incrementally as the literal inverse of each
elementary row operation applied to U, in the same order. That makes
V the exact inverse by construction regardless of the sign of
det(U), so there is nothing to correct after the fact; det(U) is
still tracked and checked against {+1, -1} as the required
unimodularity invariant (a committee of degree-2 row combinations
built from extended gcd always has determinant 1, so only swaps and
sign flips can move it off +1).
*/
package hermite

import "math/big"

// Result holds the Hermite Normal Form of an integer matrix together
// with the unimodular transform and its inverse.
type Result struct {
	H    [][]*big.Int // rank nonzero rows (by increasing pivot column), then zero rows
	U    [][]*big.Int // unimodular: U·G = H
	V    [][]*big.Int // exact inverse of U: V·U = I
	Rank int
}

var one = big.NewInt(1)
var zero = big.NewInt(0)

// Compute reduces G (rows x cols, rectangular, entries may be any
// sign) to Hermite Normal Form. It panics if G has no rows.
func Compute(g [][]*big.Int) *Result {
	if len(g) == 0 {
		panic("hermite: empty matrix")
	}
	rows := len(g)
	cols := len(g[0])

	h := cloneMatrix(g)
	u := identity(rows)
	v := identity(rows)

	// det tracks det(U) incrementally rather than recomputing it from
	// scratch at the end: U starts as the identity (det 1), and every
	// elementary operation below has a determinant known by
	// construction (row-combine 1, swap -1, negate -1), so the running
	// product is exact without ever touching a cofactor expansion,
	// which is combinatorially infeasible at the row count this runs
	// at (one row per registered generator).
	det := 1

	pivot := 0
	for col := 0; col < cols && pivot < rows; col++ {
		for {
			r1, r2, ok := twoNonzero(h, pivot, col)
			if !ok {
				break
			}
			a, b := h[r1][col], h[r2][col]
			x, y := new(big.Int), new(big.Int)
			gcd := new(big.Int).GCD(x, y, a, b)
			ag := new(big.Int).Quo(a, gcd)
			bg := new(big.Int).Quo(b, gcd)

			// newRow(r1) = x*row(r1) + y*row(r2)  (has value gcd at col)
			// newRow(r2) = -bg*row(r1) + ag*row(r2) (has value 0 at col)
			combineRows(h, r1, r2, x, y, new(big.Int).Neg(bg), ag)
			combineRows(u, r1, r2, x, y, new(big.Int).Neg(bg), ag)

			// inverse of [[x,y],[-bg,ag]] (det 1) is [[ag,-y],[bg,x]];
			// applied to V as a right-multiply, which acts on V's
			// columns r1,r2 rather than rows.
			combineCols(v, r1, r2, ag, new(big.Int).Neg(y), bg, x)
		}

		found := -1
		for r := pivot; r < rows; r++ {
			if h[r][col].Sign() != 0 {
				found = r
				break
			}
		}
		if found == -1 {
			continue
		}
		if found != pivot {
			swapRows(h, pivot, found)
			swapRows(u, pivot, found)
			swapCols(v, pivot, found)
			det = -det
		}
		if h[pivot][col].Sign() < 0 {
			negateRow(h, pivot)
			negateRow(u, pivot)
			negateCol(v, pivot)
			det = -det
		}
		pivot++
	}

	if det != 1 && det != -1 {
		panic("hermite: constructed transform is not unimodular")
	}
	if !matEqual(matMul(u, g), h) {
		panic("hermite: U*G != H")
	}
	if !matEqual(matMul(v, u), identity(rows)) {
		panic("hermite: V*U != I")
	}

	return &Result{H: h, U: u, V: v, Rank: pivot}
}

func matEqual(a, b [][]*big.Int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j].Cmp(b[i][j]) != 0 {
				return false
			}
		}
	}
	return true
}

// TruncatedV returns the first r columns of every row of V, i.e. the
// basis coefficient vectors described in §4.4: row i decomposes
// generator i's exponent vector over the rank-many independent rows
// of H.
func (res *Result) TruncatedV() [][]*big.Int {
	out := make([][]*big.Int, len(res.V))
	for i, row := range res.V {
		out[i] = append([]*big.Int(nil), row[:res.Rank]...)
	}
	return out
}

func cloneMatrix(m [][]*big.Int) [][]*big.Int {
	out := make([][]*big.Int, len(m))
	for i, row := range m {
		out[i] = make([]*big.Int, len(row))
		for j, v := range row {
			out[i][j] = new(big.Int).Set(v)
		}
	}
	return out
}

func identity(n int) [][]*big.Int {
	out := make([][]*big.Int, n)
	for i := range out {
		out[i] = make([]*big.Int, n)
		for j := range out[i] {
			if i == j {
				out[i][j] = new(big.Int).Set(one)
			} else {
				out[i][j] = new(big.Int).Set(zero)
			}
		}
	}
	return out
}

func twoNonzero(m [][]*big.Int, from, col int) (int, int, bool) {
	first := -1
	for r := from; r < len(m); r++ {
		if m[r][col].Sign() != 0 {
			if first == -1 {
				first = r
				continue
			}
			return first, r, true
		}
	}
	return 0, 0, false
}

func combineRows(m [][]*big.Int, i, j int, a, b, c, d *big.Int) {
	rowI, rowJ := m[i], m[j]
	newI := make([]*big.Int, len(rowI))
	newJ := make([]*big.Int, len(rowJ))
	for k := range rowI {
		ti := new(big.Int).Mul(a, rowI[k])
		ti.Add(ti, new(big.Int).Mul(b, rowJ[k]))
		tj := new(big.Int).Mul(c, rowI[k])
		tj.Add(tj, new(big.Int).Mul(d, rowJ[k]))
		newI[k] = ti
		newJ[k] = tj
	}
	m[i], m[j] = newI, newJ
}

// combineCols applies newCol(i) = p*col(i) + s*col(j), newCol(j) =
// q*col(i) + t*col(j) to every row of m — the column-space analogue of
// combineRows, used when right-multiplying V by an elementary
// transform's inverse.
func combineCols(m [][]*big.Int, i, j int, p, q, s, t *big.Int) {
	for _, row := range m {
		ci, cj := row[i], row[j]
		ni := new(big.Int).Mul(p, ci)
		ni.Add(ni, new(big.Int).Mul(s, cj))
		nj := new(big.Int).Mul(q, ci)
		nj.Add(nj, new(big.Int).Mul(t, cj))
		row[i], row[j] = ni, nj
	}
}

func swapRows(m [][]*big.Int, i, j int) { m[i], m[j] = m[j], m[i] }

func swapCols(m [][]*big.Int, i, j int) {
	for _, row := range m {
		row[i], row[j] = row[j], row[i]
	}
}

func negateRow(m [][]*big.Int, i int) {
	for k, v := range m[i] {
		m[i][k] = new(big.Int).Neg(v)
	}
}

func negateCol(m [][]*big.Int, i int) {
	for _, row := range m {
		row[i] = new(big.Int).Neg(row[i])
	}
}

func matMul(a, b [][]*big.Int) [][]*big.Int {
	rows, inner := len(a), len(b)
	if inner == 0 {
		return nil
	}
	cols := len(b[0])
	out := make([][]*big.Int, rows)
	for i := range out {
		out[i] = make([]*big.Int, cols)
		for j := range out[i] {
			sum := new(big.Int)
			for k := 0; k < inner; k++ {
				sum.Add(sum, new(big.Int).Mul(a[i][k], b[k][j]))
			}
			out[i][j] = sum
		}
	}
	return out
}
