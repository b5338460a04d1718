package arith

import (
	"github.com/pkg/errors"
)

var (
	// ErrEmptyInput is returned when a model is requested for a sequence without symbols.
	ErrEmptyInput = errors.New("empty input")

	// ErrSymbolRange is returned when a symbol lies outside [0, maxValue].
	ErrSymbolRange = errors.New("symbol out of range")

	// ErrUnknownSymbol is returned when Encode meets a symbol that has no interval in the model.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrNoMatchingSymbol is returned when Decode's code falls outside every interval of the model.
	// It means the codeword is corrupted, lost precision, or was produced with a different model.
	ErrNoMatchingSymbol = errors.New("no matching symbol")

	// ErrMalformedCodeword is returned when codeword text does not parse as a fixed notation real number.
	ErrMalformedCodeword = errors.New("malformed codeword")

	// ErrMalformedCodestream is returned by ReadCodestream on structural errors.
	ErrMalformedCodestream = errors.New("malformed codestream")

	// ErrPrecisionLost is returned by Compress when a verified float codeword does not decode back to its input.
	ErrPrecisionLost = errors.New("codeword precision exhausted, use the range method")
)
