/*
Package alphabet provides structs for defining biological sequence
alphabets, narrowed here to the fixed four-letter nucleotide alphabet
the certifying engine operates over (§3): A, C, G, T map to 0..3, and a
gap is a distinguished code outside the symbol list rather than a fifth
symbol, since a gap is legal only in an alignment row, never in an
input sequence.
*/
package alphabet

import "fmt"

// Alphabet is a struct that holds a list of symbols and a map of symbols to their index in the list.
type Alphabet struct {
	symbols  []string
	encoding map[interface{}]uint8
}

// Error is the error type Decode returns for a code outside the alphabet.
type Error struct {
	message string
}

// Error returns the error message for Error.
func (e *Error) Error() string {
	return e.message
}

// NewAlphabet creates a new alphabet from a list of symbols.
func NewAlphabet(symbols []string) *Alphabet {
	encoding := make(map[interface{}]uint8)
	for index, symbol := range symbols {
		encoding[symbol] = uint8(index)
		encoding[index] = uint8(index)
	}
	return &Alphabet{symbols, encoding}
}

// Encode returns the index of a symbol in the alphabet.
func (alphabet *Alphabet) Encode(symbol interface{}) (uint8, error) {
	c, ok := alphabet.encoding[symbol]
	if !ok {
		return 0, fmt.Errorf("symbol %v not in alphabet", symbol)
	}
	return c, nil
}

func (alphabet *Alphabet) Check(seq string) int {
	for i, r := range seq {
		_, err := alphabet.Encode(string(r))
		if err != nil {
			return i
		}
	}
	return -1
}

// Decode returns the symbol at a given index in the alphabet.
func (alphabet *Alphabet) Decode(code interface{}) (string, error) {
	c, ok := code.(int)
	if !ok || c < 0 || c >= len(alphabet.symbols) {
		return "", &Error{fmt.Sprintf("code %v not in alphabet", code)}
	}
	return alphabet.symbols[c], nil
}

// Symbols returns the list of symbols in the alphabet.
func (alphabet *Alphabet) Symbols() []string {
	return alphabet.symbols
}

// Gap is the index checks.Decode assigns to a gap byte. It is not one
// of DNA's four symbols, so it can never be produced by DNA.Encode.
const Gap = -1

// DNA is the fixed nucleotide alphabet the engine runs over.
var DNA = NewAlphabet([]string{"A", "C", "G", "T"})
