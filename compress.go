package arith

import (
	"io"

	"github.com/fumin/arith/internal/xlog"
	"github.com/fumin/arith/pgm"
	"github.com/pkg/errors"
)

// Config controls Compress and Decompress.
type Config struct {
	// Method is the coder used by Compress. The zero value selects Range.
	// Float runs out of float64 precision after a few dozen symbols of a typical image,
	// so it should be combined with Verify unless the input is known to be tiny.
	Method Method

	// Verify makes Compress decode a Float codeword once more and fail with ErrPrecisionLost
	// if it does not reproduce the image.
	Verify bool

	// Logger receives progress messages. Nothing is logged when it is nil.
	Logger xlog.Logger `json:"-"`
}

func (cfg Config) method() (Method, error) {
	switch cfg.Method {
	case "":
		return Range, nil
	case Float, Range:
		return cfg.Method, nil
	}
	return "", errors.Errorf("unknown method %q", cfg.Method)
}

// CompressImage codes img into a Codestream.
func CompressImage(img *pgm.Image, cfg Config) (*Codestream, error) {
	method, err := cfg.method()
	if err != nil {
		return nil, err
	}
	sequence := img.Symbols()
	model, err := NewModel(sequence, img.MaxValue)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	xlog.Printf(cfg.Logger, "%dx%d image, %d of %d symbols used", img.Width, img.Height, model.Len(), img.MaxValue+1)

	cs := &Codestream{
		Method:   method,
		Width:    img.Width,
		Height:   img.Height,
		MaxValue: img.MaxValue,
		Counts:   model.Counts(),
	}
	switch method {
	case Float:
		if cs.Codeword, err = Encode(sequence, model); err != nil {
			return nil, errors.Wrap(err, "")
		}
		xlog.Printf(cfg.Logger, "codeword %s", cs.Codeword)
		if cfg.Verify {
			if err := verify(cs.Codeword, sequence, model); err != nil {
				return nil, err
			}
		}
	case Range:
		if cs.Payload, err = Pack(sequence, model); err != nil {
			return nil, errors.Wrap(err, "")
		}
		xlog.Printf(cfg.Logger, "payload %d bytes", len(cs.Payload))
	}
	return cs, nil
}

func verify(code Codeword, sequence []int, model *Model) error {
	decoded, err := Decode(code, len(sequence), model)
	if err != nil {
		return errors.Wrapf(ErrPrecisionLost, "%v", err)
	}
	for i, s := range sequence {
		if decoded[i] != s {
			return errors.Wrapf(ErrPrecisionLost, "symbol %d decoded as %d, want %d", i, decoded[i], s)
		}
	}
	return nil
}

// DecompressImage decodes the image in cs.
func DecompressImage(cs *Codestream, cfg Config) (*pgm.Image, error) {
	model, err := cs.Model()
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	xlog.Println(cfg.Logger, "decoding", cs.Method, cs.Width, "x", cs.Height, "image,", model.Len(), "symbols used")
	var sequence []int
	switch cs.Method {
	case Float:
		sequence, err = Decode(cs.Codeword, cs.Len(), model)
	case Range:
		sequence, err = Unpack(cs.Payload, cs.Len(), model)
	default:
		err = errors.Wrapf(ErrMalformedCodestream, "method %q", cs.Method)
	}
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	xlog.Printf(cfg.Logger, "decoded %d symbols", len(sequence))
	return pgm.FromSymbols(cs.Width, cs.Height, cs.MaxValue, sequence)
}

// Compress compresses the plain grey map in file name, and writes the codestream to w.
func Compress(w io.Writer, name string, cfg Config) error {
	img, err := pgm.Load(name)
	if err != nil {
		return errors.Wrap(err, "")
	}
	cs, err := CompressImage(img, cfg)
	if err != nil {
		return errors.Wrap(err, name)
	}
	if err := WriteCodestream(w, cs); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

// Decompress reads a codestream from r, and writes the decoded plain grey map to w.
func Decompress(w io.Writer, r io.Reader, cfg Config) error {
	cs, err := ReadCodestream(r)
	if err != nil {
		return errors.Wrap(err, "")
	}
	img, err := DecompressImage(cs, cfg)
	if err != nil {
		return errors.Wrap(err, "")
	}
	if err := pgm.Write(w, img); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}
