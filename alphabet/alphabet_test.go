package alphabet_test

import (
	"reflect"
	"testing"

	"github.com/openalign/tkf91cert/alphabet"
)

func TestDNAEncode(t *testing.T) {
	symbols := []string{"A", "C", "G", "T"}
	for i, symbol := range symbols {
		code, err := alphabet.DNA.Encode(symbol)
		if err != nil {
			t.Errorf("unexpected error encoding symbol %s: %v", symbol, err)
		}
		if int(code) != i {
			t.Errorf("incorrect encoding of symbol %s: expected %d, got %d", symbol, i, code)
		}
	}
	if _, err := alphabet.DNA.Encode("X"); err == nil {
		t.Error("expected error encoding symbol not in alphabet, got nil")
	}
}

func TestDNADecode(t *testing.T) {
	symbols := []string{"A", "C", "G", "T"}
	for i, symbol := range symbols {
		decoded, err := alphabet.DNA.Decode(i)
		if err != nil {
			t.Errorf("unexpected error decoding code %d: %v", i, err)
		}
		if decoded != symbol {
			t.Errorf("incorrect decoding of code %d: expected %s, got %s", i, symbol, decoded)
		}
	}
	if _, err := alphabet.DNA.Decode(len(symbols)); err == nil {
		t.Error("expected error decoding code not in alphabet, got nil")
	}
}

func TestDNASymbols(t *testing.T) {
	want := []string{"A", "C", "G", "T"}
	if !reflect.DeepEqual(alphabet.DNA.Symbols(), want) {
		t.Errorf("Symbols() = %v, want %v", alphabet.DNA.Symbols(), want)
	}
}
