package arith

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Codeword is a real number in [0, 1) that identifies a whole symbol sequence under a Model.
type Codeword float64

// String returns the codeword in fixed notation with the fewest digits that parse back to the identical value.
func (c Codeword) String() string {
	return strconv.FormatFloat(float64(c), 'f', -1, 64)
}

// ParseCodeword parses the text produced by Codeword.String.
func ParseCodeword(s string) (Codeword, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "eEpPxX_") {
		return 0, errors.Wrapf(ErrMalformedCodeword, "%q", s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedCodeword, "%q: %v", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Wrapf(ErrMalformedCodeword, "%q", s)
	}
	return Codeword(f), nil
}

// Encode narrows the unit interval by the interval of each symbol of sequence in turn,
// and returns the midpoint of the final interval.
//
// The final interval is as wide as the probability of sequence under model, so a float64 codeword
// can only distinguish sequences whose probability stays well above the float64 resolution.
// Longer sequences should be coded with Pack.
func Encode(sequence []int, model *Model) (Codeword, error) {
	low, high := 0.0, 1.0
	for i, s := range sequence {
		j := model.lookup(s)
		if j < 0 {
			return 0, errors.Wrapf(ErrUnknownSymbol, "symbol %d at position %d", s, i)
		}
		sym := model.intervals[j]

		arange := high - low
		high = low + arange*sym.High
		low = low + arange*sym.Low
	}
	return Codeword((low + high) / 2), nil
}

// Decode reverses Encode, producing exactly count symbols.
// model must be the exact Model used in Encode.
func Decode(code Codeword, count int, model *Model) ([]int, error) {
	if count < 0 {
		return nil, errors.Errorf("negative count %d", count)
	}
	c := float64(code)
	sequence := make([]int, 0, count)
	for i := 0; i < count; i++ {
		j := model.search(c)
		if j < 0 {
			return nil, errors.Wrapf(ErrNoMatchingSymbol, "code %v at position %d", strconv.FormatFloat(c, 'g', -1, 64), i)
		}
		sym := model.intervals[j]
		sequence = append(sequence, model.symbols[j])

		c = (c - sym.Low) / (sym.High - sym.Low)
	}
	return sequence, nil
}

// DecodeString parses a codeword and decodes count symbols from it.
func DecodeString(s string, count int, model *Model) ([]int, error) {
	code, err := ParseCodeword(s)
	if err != nil {
		return nil, err
	}
	return Decode(code, count, model)
}
