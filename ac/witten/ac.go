// Package witten implements the arithmetic coding algorithm described in
// Witten, Ian H.; Neal, Radford M.; Cleary, John G. (June 1987). "Arithmetic Coding for Data Compression". Communications of the ACM 30 (6): 520–540.
//
// Unlike a coder that carries one real number across the whole message, the interval here is kept in
// fixed width integers and renormalized after every symbol, so messages of any length can be coded.
package witten

import (
	"github.com/fumin/arith/ac"
	"github.com/pkg/errors"
)

const (
	codeValueBits = 32
	topValue      = (uint64(1) << codeValueBits) - 1
	firstQtr      = topValue/4 + 1
	half          = 2 * firstQtr
	thirdQtr      = 3 * firstQtr

	// MaxFrequency is the largest Model total that the coder can represent without the interval collapsing.
	MaxFrequency = firstQtr - 1
)

// An arithmeticEncoder carries the state required by an encoder.
type arithmeticEncoder struct {
	low   uint64
	high  uint64
	fbits uint64
}

func newAE() *arithmeticEncoder {
	ae := &arithmeticEncoder{}
	ae.high = topValue
	return ae
}

func bitPlusFollow(dst chan<- int, ae *arithmeticEncoder, bit int) {
	negbit := 0
	if bit == 0 {
		negbit = 1
	}

	dst <- bit
	for ae.fbits > 0 {
		dst <- negbit
		ae.fbits -= 1
	}
}

func checkTotal(model ac.Model) (uint64, error) {
	total := model.Total()
	if total == 0 {
		return 0, errors.New("model has no symbols")
	}
	if total > MaxFrequency {
		return 0, errors.Wrapf(ac.ErrFrequencyOverflow, "total %d > %d", total, MaxFrequency)
	}
	return total, nil
}

// Encode performs arithmetic coding on a stream of symbols given a static frequency model.
// The input symbols should be sent through src, which Encode consumes until it is closed.
// The output bits can be received from dst. Encode will block when dst if full and is not read from.
// Encode closes dst when the encoding is complete and there are no more bits to be sent to it.
//
// Encode returns early, without draining src, if the model cannot be used or a symbol has no range in it.
func Encode(dst chan<- int, src <-chan int, model ac.Model) error {
	defer close(dst)
	total, err := checkTotal(model)
	if err != nil {
		return err
	}

	ae := newAE()
	for symbol := range src {
		low, high, err := model.Range(symbol)
		if err != nil {
			return errors.Wrap(err, "")
		}

		// narrow range
		arange := (ae.high - ae.low) + 1
		ae.high = ae.low + arange*high/total - 1
		ae.low = ae.low + arange*low/total

		for {
			if ae.high < half {
				bitPlusFollow(dst, ae, 0)
			} else if ae.low >= half {
				bitPlusFollow(dst, ae, 1)
				ae.low -= half
				ae.high -= half
			} else if ae.low >= firstQtr && ae.high < thirdQtr {
				ae.fbits += 1
				ae.low -= firstQtr
				ae.high -= firstQtr
			} else {
				break
			}

			ae.low = 2 * ae.low
			ae.high = 2*ae.high + 1
		}
	}

	ae.fbits += 1
	if ae.low < firstQtr {
		bitPlusFollow(dst, ae, 0)
	} else {
		bitPlusFollow(dst, ae, 1)
	}
	return nil
}

type arithmeticDecoder struct {
	low   uint64
	high  uint64
	value uint64
}

func newAD() *arithmeticDecoder {
	ad := &arithmeticDecoder{}
	ad.high = topValue
	return ad
}

// Decode decodes a stream of bits encoded by Encode.
//
// Completion of the decoding is determined by originalSize, which is the number of symbols of the original data.
// Bits missing at the end of src are treated as padding, up to the number the encoder's termination leaves implicit;
// beyond that ac.ErrDecodeInsufficientBits is returned.
// Decode closes dst when the decoding is complete.
// Decode expects that model is the exact same model used in Encode.
func Decode(dst chan<- int, src <-chan int, model ac.Model, originalSize int64) error {
	defer close(dst)
	total, err := checkTotal(model)
	if err != nil {
		return err
	}

	garbageBits := 0
	readDecBit := func(src <-chan int) (uint64, error) {
		b, ok := <-src
		if ok {
			return uint64(b), nil
		}
		garbageBits++
		if garbageBits > codeValueBits-2 {
			return 0, ac.ErrDecodeInsufficientBits
		}
		return 1, nil // the returned bit can actually be random
	}

	ad := newAD()
	for i := 1; i <= codeValueBits; i++ {
		inb, err := readDecBit(src)
		if err != nil {
			return err
		}
		ad.value = 2*ad.value + inb
	}

	for i := int64(0); i < originalSize; i++ {
		arange := (ad.high - ad.low) + 1
		target := ((ad.value-ad.low+1)*total - 1) / arange
		symbol, low, high, err := model.Find(target)
		if err != nil {
			return errors.Wrapf(err, "symbol %d", i)
		}
		dst <- symbol

		// narrow range
		ad.high = ad.low + arange*high/total - 1
		ad.low = ad.low + arange*low/total

		// rescale interval
		for {
			if ad.high < half {
				// do nothing
			} else if ad.low >= half {
				ad.value -= half
				ad.low -= half
				ad.high -= half
			} else if ad.low >= firstQtr && ad.high < thirdQtr {
				ad.value -= firstQtr
				ad.low -= firstQtr
				ad.high -= firstQtr
			} else {
				break
			}

			ad.low = 2 * ad.low
			ad.high = 2*ad.high + 1
			inb, err := readDecBit(src)
			if err != nil {
				return err
			}
			ad.value = 2*ad.value + inb
		}
	}
	return nil
}
