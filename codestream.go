package arith

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fumin/arith/ac/witten"
	"github.com/fumin/arith/pgm"
	"github.com/pkg/errors"
)

// A Method selects the coder a Codestream payload was produced with.
type Method string

const (
	// Float codes the whole image into a single float64 Codeword, see Encode.
	Float Method = "float"

	// Range codes the image with the renormalizing coder, see Pack.
	Range Method = "range"
)

const codestreamMagic = "arith"

// MaxSymbols is the largest number of symbols a codestream may hold, the largest model total the range coder accepts.
const MaxSymbols = witten.MaxFrequency

// A Codestream is the persisted form of a compressed image:
// its shape, the symbol counts that rebuild the Model, and the coded payload.
type Codestream struct {
	Method   Method
	Width    int
	Height   int
	MaxValue int

	// Counts holds the occurrences of each symbol, indexed by symbol.
	Counts []uint64

	// Codeword is the payload of the Float method.
	Codeword Codeword

	// Payload is the payload of the Range method.
	Payload []byte
}

// Model rebuilds the Model the codestream was coded with.
func (cs *Codestream) Model() (*Model, error) {
	return NewModelFromCounts(cs.Counts, cs.MaxValue)
}

// Len returns the number of symbols coded in the codestream.
func (cs *Codestream) Len() int {
	return cs.Width * cs.Height
}

// WriteCodestream writes cs in its text form:
//
//	arith <method> <width> <height> <max value>
//	<number of symbols k>
//	<symbol> <count>    (k lines, ascending symbol, nonzero counts only)
//	<payload>           (codeword decimal, or base64 of the range coded bits)
func WriteCodestream(w io.Writer, cs *Codestream) error {
	var payload string
	switch cs.Method {
	case Float:
		payload = cs.Codeword.String()
	case Range:
		payload = base64.StdEncoding.EncodeToString(cs.Payload)
	default:
		return errors.Wrapf(ErrMalformedCodestream, "method %q", cs.Method)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s %s %d %d %d\n", codestreamMagic, cs.Method, cs.Width, cs.Height, cs.MaxValue)
	k := 0
	for _, c := range cs.Counts {
		if c > 0 {
			k++
		}
	}
	fmt.Fprintf(bw, "%d\n", k)
	for s, c := range cs.Counts {
		if c > 0 {
			fmt.Fprintf(bw, "%d %d\n", s, c)
		}
	}
	fmt.Fprintf(bw, "%s\n", payload)
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

// ReadCodestream parses the text form written by WriteCodestream.
func ReadCodestream(r io.Reader) (*Codestream, error) {
	br := bufio.NewReader(r)
	line, err := readLine(br)
	if err != nil {
		return nil, err
	}
	header := strings.Fields(line)
	if len(header) != 5 || header[0] != codestreamMagic {
		return nil, errors.Wrapf(ErrMalformedCodestream, "header %q", line)
	}
	cs := &Codestream{Method: Method(header[1])}
	if cs.Method != Float && cs.Method != Range {
		return nil, errors.Wrapf(ErrMalformedCodestream, "method %q", cs.Method)
	}
	dims, err := atois(header[2:])
	if err != nil {
		return nil, err
	}
	cs.Width, cs.Height, cs.MaxValue = dims[0], dims[1], dims[2]
	if err := pgm.CheckSize(cs.Width, cs.Height); err != nil || uint64(cs.Len()) > MaxSymbols {
		return nil, errors.Wrapf(ErrMalformedCodestream, "size %dx%d", cs.Width, cs.Height)
	}
	if cs.MaxValue < 0 || cs.MaxValue > pgm.MaxValueLimit {
		return nil, errors.Wrapf(ErrMalformedCodestream, "max value %d", cs.MaxValue)
	}

	line, err = readLine(br)
	if err != nil {
		return nil, err
	}
	k, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || k <= 0 || k > cs.MaxValue+1 {
		return nil, errors.Wrapf(ErrMalformedCodestream, "symbol count %q", line)
	}
	cs.Counts = make([]uint64, cs.MaxValue+1)
	var total uint64
	prev := -1
	for i := 0; i < k; i++ {
		line, err = readLine(br)
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, errors.Wrapf(ErrMalformedCodestream, "count line %q", line)
		}
		s, err := strconv.Atoi(fields[0])
		if err != nil || s <= prev || s > cs.MaxValue {
			return nil, errors.Wrapf(ErrMalformedCodestream, "count line %q", line)
		}
		c, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil || c == 0 || c > uint64(cs.Len()) {
			return nil, errors.Wrapf(ErrMalformedCodestream, "count line %q", line)
		}
		cs.Counts[s] = c
		total += c
		prev = s
	}
	if total != uint64(cs.Len()) {
		return nil, errors.Wrapf(ErrMalformedCodestream, "counts sum to %d, want %d", total, cs.Len())
	}

	line, err = readLine(br)
	if err != nil {
		return nil, err
	}
	switch cs.Method {
	case Float:
		if cs.Codeword, err = ParseCodeword(line); err != nil {
			return nil, err
		}
	case Range:
		if cs.Payload, err = base64.StdEncoding.DecodeString(strings.TrimSpace(line)); err != nil {
			return nil, errors.Wrapf(ErrMalformedCodestream, "payload: %v", err)
		}
	}
	return cs, nil
}

func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err == io.EOF && line != "" {
		return strings.TrimRight(line, "\r"), nil
	}
	if err == io.EOF {
		return "", errors.Wrap(ErrMalformedCodestream, "unexpected end of file")
	}
	if err != nil {
		return "", errors.Wrap(err, "")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func atois(fields []string) ([]int, error) {
	vs := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedCodestream, "%q is not an integer", f)
		}
		vs[i] = v
	}
	return vs, nil
}
