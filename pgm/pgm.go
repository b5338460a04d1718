// Package pgm reads and writes plain (ASCII, magic number P2) grey maps,
// and converts them to and from flat symbol sequences.
package pgm

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// MaxValueLimit is the largest maximum grey value a plain grey map may declare.
const MaxValueLimit = 65535

// ErrFormat is returned when the input is not a valid plain grey map.
var ErrFormat = errors.New("invalid plain PGM")

// An Image is a grey map whose pixels are stored row by row.
type Image struct {
	Width    int
	Height   int
	MaxValue int
	Pix      []int
}

// FromSymbols builds an Image from a row-major sequence of grey values.
func FromSymbols(width, height, maxValue int, sequence []int) (*Image, error) {
	img := &Image{Width: width, Height: height, MaxValue: maxValue, Pix: sequence}
	if err := img.validate(); err != nil {
		return nil, err
	}
	return img, nil
}

// Symbols returns the grey values row by row. The slice is shared with the Image.
func (img *Image) Symbols() []int {
	return img.Pix
}

// CheckSize reports whether a width by height grey map has pixels and a pixel count that fits an int.
func CheckSize(width, height int) error {
	if width <= 0 || height <= 0 || width > math.MaxInt/height {
		return errors.Wrapf(ErrFormat, "size %dx%d", width, height)
	}
	return nil
}

func (img *Image) validate() error {
	if err := CheckSize(img.Width, img.Height); err != nil {
		return err
	}
	if img.MaxValue <= 0 || img.MaxValue > MaxValueLimit {
		return errors.Wrapf(ErrFormat, "max value %d", img.MaxValue)
	}
	if len(img.Pix) != img.Width*img.Height {
		return errors.Wrapf(ErrFormat, "%d pixels for size %dx%d", len(img.Pix), img.Width, img.Height)
	}
	for i, v := range img.Pix {
		if v < 0 || v > img.MaxValue {
			return errors.Wrapf(ErrFormat, "pixel %d value %d, max value %d", i, v, img.MaxValue)
		}
	}
	return nil
}

// Load reads the grey map in file name.
func Load(name string) (*Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	defer f.Close()
	img, err := Read(f)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return img, nil
}

// Read parses a plain grey map. Comments, introduced by '#', may appear between any two tokens.
func Read(r io.Reader) (*Image, error) {
	s := &scanner{r: bufio.NewReader(r)}
	magic, err := s.token()
	if err != nil {
		return nil, err
	}
	if magic != "P2" {
		return nil, errors.Wrapf(ErrFormat, "magic %q", magic)
	}

	var header [3]int
	for i := range header {
		if header[i], err = s.int(); err != nil {
			return nil, err
		}
	}
	img := &Image{Width: header[0], Height: header[1], MaxValue: header[2]}
	if err := CheckSize(img.Width, img.Height); err != nil {
		return nil, err
	}
	if img.MaxValue <= 0 || img.MaxValue > MaxValueLimit {
		return nil, errors.Wrapf(ErrFormat, "max value %d", img.MaxValue)
	}

	// The header is not trusted with the allocation, a short file ends the loop first.
	n := img.Width * img.Height
	img.Pix = make([]int, 0, minInt(n, 1<<20))
	for i := 0; i < n; i++ {
		v, err := s.int()
		if err != nil {
			return nil, errors.Wrapf(err, "pixel %d", i)
		}
		img.Pix = append(img.Pix, v)
	}
	if err := img.validate(); err != nil {
		return nil, err
	}
	return img, nil
}

// Write writes img as a plain grey map, one row per line.
func Write(w io.Writer, img *Image) error {
	if err := img.validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	bw.WriteString("P2\n")
	bw.WriteString(strconv.Itoa(img.Width) + " " + strconv.Itoa(img.Height) + "\n")
	bw.WriteString(strconv.Itoa(img.MaxValue) + "\n")
	buf := make([]byte, 0, 8)
	for y := 0; y < img.Height; y++ {
		row := img.Pix[y*img.Width : (y+1)*img.Width]
		for x, v := range row {
			if x > 0 {
				bw.WriteByte(' ')
			}
			buf = strconv.AppendInt(buf[:0], int64(v), 10)
			bw.Write(buf)
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

type scanner struct {
	r *bufio.Reader
}

// token returns the next whitespace separated token, skipping comments.
func (s *scanner) token() (string, error) {
	var tok []byte
	for {
		c, err := s.r.ReadByte()
		if err == io.EOF {
			if len(tok) > 0 {
				return string(tok), nil
			}
			return "", errors.Wrap(ErrFormat, "unexpected end of file")
		}
		if err != nil {
			return "", errors.Wrap(err, "")
		}

		switch {
		case c == '#':
			if _, err := s.r.ReadString('\n'); err != nil && err != io.EOF {
				return "", errors.Wrap(err, "")
			}
			if len(tok) > 0 {
				return string(tok), nil
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, c)
		}
	}
}

func (s *scanner) int() (int, error) {
	tok, err := s.token()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errors.Wrapf(ErrFormat, "%q is not an integer", tok)
	}
	return v, nil
}
