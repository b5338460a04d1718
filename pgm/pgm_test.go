package pgm

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestRead(t *testing.T) {
	const input = `P2
# feep.pgm
4 2 # width height
15
0  3 3 3
# a comment between rows
15 0 7 11
`
	img, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	want := &Image{Width: 4, Height: 2, MaxValue: 15, Pix: []int{0, 3, 3, 3, 15, 0, 7, 11}}
	if !reflect.DeepEqual(img, want) {
		t.Errorf("%+v != %+v", img, want)
	}
}

func TestWrite(t *testing.T) {
	img, err := FromSymbols(3, 2, 255, []int{0, 128, 255, 1, 2, 3})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, img); err != nil {
		t.Fatalf("%+v", err)
	}
	want := "P2\n3 2\n255\n0 128 255\n1 2 3\n"
	if buf.String() != want {
		t.Errorf("%q != %q", buf.String(), want)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if !reflect.DeepEqual(got.Symbols(), img.Symbols()) {
		t.Errorf("%v != %v", got.Symbols(), img.Symbols())
	}
}

func TestLoad(t *testing.T) {
	name := filepath.Join(t.TempDir(), "image.pgm")
	if err := os.WriteFile(name, []byte("P2 1 1 1 1"), 0644); err != nil {
		t.Fatalf("%v", err)
	}
	img, err := Load(name)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if img.Width != 1 || img.Height != 1 || img.Pix[0] != 1 {
		t.Errorf("%+v", img)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.pgm")); err == nil {
		t.Errorf("missing file loaded")
	}
}

func TestReadMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"magic", "P5\n1 1\n255\n0\n"},
		{"size", "P2\n0 1\n255\n"},
		{"size overflow", "P2\n4611686018427387905 4\n2\n0 0 1 2\n"},
		{"huge size", "P2\n1048576 1048576\n255\n0 0\n"},
		{"max value", "P2\n1 1\n0\n0\n"},
		{"max value limit", "P2\n1 1\n65536\n0\n"},
		{"pixel range", "P2\n2 1\n15\n3 16\n"},
		{"negative pixel", "P2\n2 1\n15\n3 -1\n"},
		{"short", "P2\n2 2\n15\n1 2 3\n"},
		{"integer", "P2\n2 1\n15\n1 x\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(test.input)); errors.Cause(err) != ErrFormat {
				t.Errorf("%+v", err)
			}
		})
	}
}

func TestFromSymbolsSizeOverflow(t *testing.T) {
	// 2^62+1 by 4 wraps to 4 pixels in int arithmetic.
	img := &Image{Width: 1<<62 + 1, Height: 4, MaxValue: 2, Pix: []int{0, 0, 1, 2}}
	if err := Write(&bytes.Buffer{}, img); errors.Cause(err) != ErrFormat {
		t.Errorf("%+v", err)
	}
	if _, err := FromSymbols(1<<62+1, 4, 2, []int{0, 0, 1, 2}); errors.Cause(err) != ErrFormat {
		t.Errorf("%+v", err)
	}
}

func TestFromSymbolsMismatch(t *testing.T) {
	if _, err := FromSymbols(2, 2, 3, []int{0, 1, 2}); errors.Cause(err) != ErrFormat {
		t.Errorf("%+v", err)
	}
}
