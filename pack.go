package arith

import (
	"github.com/fumin/arith/ac/witten"
	"github.com/pkg/errors"
)

const chanBuffer = 1024

// Pack codes sequence with the renormalizing coder of package witten,
// and returns the output bits packed most significant bit first, the last byte padded with zeros.
// Unlike Encode, Pack handles sequences of any length.
func Pack(sequence []int, model *Model) ([]byte, error) {
	done := make(chan struct{})
	defer close(done)

	src := make(chan int, chanBuffer)
	go func() {
		defer close(src)
		for _, s := range sequence {
			select {
			case src <- s:
			case <-done:
				return
			}
		}
	}()

	dst := make(chan int, chanBuffer)
	var payload []byte
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		payload = packBits(dst)
	}()

	err := witten.Encode(dst, src, model)
	<-collected
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return payload, nil
}

// Unpack decodes count symbols from a payload produced by Pack.
// model must be the exact Model used in Pack.
func Unpack(payload []byte, count int, model *Model) ([]int, error) {
	if count < 0 {
		return nil, errors.Errorf("negative count %d", count)
	}
	done := make(chan struct{})
	defer close(done)

	src := make(chan int, chanBuffer)
	go func() {
		defer close(src)
		for _, b := range payload {
			for i := 7; i >= 0; i-- {
				select {
				case src <- int(b>>uint(i)) & 1:
				case <-done:
					return
				}
			}
		}
	}()

	dst := make(chan int, chanBuffer)
	sequence := make([]int, 0, count)
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for s := range dst {
			sequence = append(sequence, s)
		}
	}()

	err := witten.Decode(dst, src, model, int64(count))
	<-collected
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return sequence, nil
}

func packBits(bits <-chan int) []byte {
	var out []byte
	var cur byte
	var n uint
	for b := range bits {
		cur = cur<<1 | byte(b)
		n++
		if n == 8 {
			out = append(out, cur)
			cur, n = 0, 0
		}
	}
	if n > 0 {
		out = append(out, cur<<(8-n))
	}
	return out
}
