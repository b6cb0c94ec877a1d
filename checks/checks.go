/*
Package checks implements the §6 sequence-decoding contract: turning a
raw input string into the nucleotide indices dp and tkf91 operate over.
*/
package checks

import (
	"fmt"
	"strings"

	"github.com/openalign/tkf91cert/alphabet"
)

// GcContent checks the GcContent of a given sequence.
func GcContent(sequence string) float64 {
	sequence = strings.ToUpper(sequence)
	guanineCount := strings.Count(sequence, "G")
	cytosineCount := strings.Count(sequence, "C")
	return float64(guanineCount+cytosineCount) / float64(len(sequence))
}

// Decode turns a raw sequence string into nucleotide indices (§6):
// matching is case-insensitive, any letter outside ACGT is coerced to
// A (treated as the fully ambiguous base), a gap byte is only legal
// when allowGaps is set (alignment rows, never input sequences), and
// any other byte is fatal.
func Decode(seq string, allowGaps bool) ([]int, error) {
	out := make([]int, 0, len(seq))
	for i := 0; i < len(seq); i++ {
		c := seq[i]
		if c == '-' {
			if !allowGaps {
				return nil, fmt.Errorf("checks: gap at position %d not allowed in an input sequence", i)
			}
			out = append(out, alphabet.Gap)
			continue
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 'A' || c > 'Z' {
			return nil, fmt.Errorf("checks: byte %q at position %d is not a letter or gap", seq[i], i)
		}
		code, err := alphabet.DNA.Encode(string(c))
		if err != nil {
			code = 0 // ambiguous letter coerced to A
		}
		out = append(out, int(code))
	}
	return out, nil
}

// IsDNA reports whether seq consists only of unambiguous DNA letters.
func IsDNA(seq string) bool {
	for _, base := range seq {
		switch base {
		case 'A', 'C', 'T', 'G':
			continue
		default:
			return false
		}
	}
	return true
}
