package tkf91_test

import (
	"testing"

	"github.com/openalign/tkf91cert/tkf91"
)

func TestAssembleProducesFixedSchema(t *testing.T) {
	p := uniformParams(t)
	b := tkf91.Build(p)
	asm, err := tkf91.Assemble(b, 0, 0)
	if err != nil {
		t.Fatalf("unexpected assembly error: %v", err)
	}
	if len(asm.Names) != tkf91.GeneratorCount {
		t.Fatalf("expected %d generators, got %d", tkf91.GeneratorCount, len(asm.Names))
	}
	if len(asm.G) != tkf91.GeneratorCount {
		t.Fatalf("expected G to have %d rows, got %d", tkf91.GeneratorCount, len(asm.G))
	}
	cols := asm.Reg.Len()
	for i, row := range asm.G {
		if len(row) != cols {
			t.Fatalf("generator %d (%s): row has %d columns, want %d", i, asm.Names[i], len(row), cols)
		}
	}
}

func TestAssembleRowsAreNonzero(t *testing.T) {
	p := uniformParams(t)
	b := tkf91.Build(p)
	asm, err := tkf91.Assemble(b, 0, 0)
	if err != nil {
		t.Fatalf("unexpected assembly error: %v", err)
	}
	for i, row := range asm.G {
		nonzero := false
		for _, v := range row {
			if v.Sign() != 0 {
				nonzero = true
				break
			}
		}
		if !nonzero {
			t.Errorf("generator %d (%s) has an all-zero exponent row", i, asm.Names[i])
		}
	}
}
