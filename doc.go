// Package arith provides static arithmetic coding of grey-level images.
//
// A Model partitions the unit interval among the symbols of an image by their empirical frequencies.
// Encode narrows the unit interval symbol by symbol and returns one real number, the Codeword, that identifies the whole image;
// Decode reverses the narrowing given the symbol count and the same Model.
// As a float64 carries a limited number of digits, this only works for short sequences.
// Pack and Unpack code the same Model with the renormalizing integer coder of package ac/witten, which handles images of any size.
//
// Below is an example of compressing a plain grey map and getting it back:
//    go run compress/main.go -c '{"Method": "range"}' lena.pgm > lena.arith
//    cat lena.arith | go run decompress/main.go > lena-rec.pgm
//    diff lena.pgm lena-rec.pgm
//
// Reference:
// Witten, Ian H.; Neal, Radford M.; Cleary, John G. (June 1987). "Arithmetic Coding for Data Compression". Communications of the ACM 30 (6): 520–540.
package arith
