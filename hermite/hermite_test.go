package hermite_test

import (
	"math/big"
	"testing"

	"github.com/openalign/tkf91cert/hermite"
)

func ints(rows ...[]int64) [][]*big.Int {
	out := make([][]*big.Int, len(rows))
	for i, row := range rows {
		out[i] = make([]*big.Int, len(row))
		for j, v := range row {
			out[i][j] = big.NewInt(v)
		}
	}
	return out
}

func matMul(a, b [][]*big.Int) [][]*big.Int {
	out := make([][]*big.Int, len(a))
	for i := range a {
		out[i] = make([]*big.Int, len(b[0]))
		for j := range out[i] {
			sum := new(big.Int)
			for k := range b {
				sum.Add(sum, new(big.Int).Mul(a[i][k], b[k][j]))
			}
			out[i][j] = sum
		}
	}
	return out
}

func isIdentity(m [][]*big.Int) bool {
	for i, row := range m {
		for j, v := range row {
			want := int64(0)
			if i == j {
				want = 1
			}
			if v.Cmp(big.NewInt(want)) != 0 {
				return false
			}
		}
	}
	return true
}

func hasZeroRowsAfterRank(h [][]*big.Int, rank int) bool {
	for r := rank; r < len(h); r++ {
		for _, v := range h[r] {
			if v.Sign() != 0 {
				return false
			}
		}
	}
	return true
}

func TestHermiteInvariants(t *testing.T) {
	g := ints(
		[]int64{2, 4, 4},
		[]int64{-6, 6, 12},
		[]int64{10, -4, -16},
	)
	res := hermite.Compute(g)

	got := matMul(res.U, g)
	for i, row := range got {
		for j, v := range row {
			if v.Cmp(res.H[i][j]) != 0 {
				t.Fatalf("U*G != H at (%d,%d): got %s want %s", i, j, v, res.H[i][j])
			}
		}
	}

	if !isIdentity(matMul(res.V, res.U)) {
		t.Errorf("V*U != I")
	}

	if !hasZeroRowsAfterRank(res.H, res.Rank) {
		t.Errorf("H does not have zero rows after rank %d", res.Rank)
	}
}

func TestHermiteIdentityInput(t *testing.T) {
	g := ints(
		[]int64{1, 0},
		[]int64{0, 1},
	)
	res := hermite.Compute(g)
	if res.Rank != 2 {
		t.Fatalf("expected rank 2, got %d", res.Rank)
	}
	if !isIdentity(matMul(res.V, res.U)) {
		t.Errorf("V*U != I")
	}
}

func TestHermiteRankDeficient(t *testing.T) {
	g := ints(
		[]int64{1, 2},
		[]int64{2, 4},
	)
	res := hermite.Compute(g)
	if res.Rank != 1 {
		t.Fatalf("expected rank 1 for dependent rows, got %d", res.Rank)
	}
}

func TestTruncatedVColumns(t *testing.T) {
	g := ints(
		[]int64{3, 0},
		[]int64{0, 5},
	)
	res := hermite.Compute(g)
	trunc := res.TruncatedV()
	for _, row := range trunc {
		if len(row) != res.Rank {
			t.Fatalf("truncated row has %d columns, want %d", len(row), res.Rank)
		}
	}
}
