// Package ac defines the interfaces the arithmetic coding algorithm requires.
// See its subpackages for particular finite precision realizations of the algorithm.
package ac

import (
	"fmt"
)

// ErrDecodeInsufficientBits is returned when there are insufficient bits sent to Decode to reconstruct the original data.
var ErrDecodeInsufficientBits = fmt.Errorf("insufficient bits sent to decoder")

// ErrFrequencyOverflow is returned when the total frequency of a Model exceeds what a coder's precision can represent.
var ErrFrequencyOverflow = fmt.Errorf("total frequency exceeds coder precision")

// A Model is a static probabilistic model over a finite alphabet of integer symbols,
// expressed as integer frequencies as expected by finite precision arithmetic coders.
//
// Each symbol with a nonzero frequency owns the half-open range [low, high) of cumulative frequencies,
// and the ranges of all symbols partition [0, Total()).
type Model interface {
	// Total returns the sum of the frequencies of all symbols.
	Total() uint64

	// Range returns the cumulative frequency range of symbol.
	Range(symbol int) (low, high uint64, err error)

	// Find returns the symbol whose cumulative frequency range contains target.
	Find(target uint64) (symbol int, low, high uint64, err error)
}
