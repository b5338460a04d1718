package arith

import (
	"sort"

	"github.com/pkg/errors"
)

// An Interval is the half-open range [Low, High) of the unit interval assigned to a symbol.
type Interval struct {
	Low  float64
	High float64
}

// A Model is a static probability model over the symbol alphabet [0, MaxValue].
// Each symbol observed at least once owns an Interval whose width is its empirical frequency,
// and the intervals, in ascending symbol order, partition [0, 1).
//
// A Model is immutable once built, and may be shared by any number of concurrent encoders and decoders.
// Model also implements ac.Model through its integer frequencies.
type Model struct {
	maxValue int

	// index maps a symbol value to its position in symbols, or -1.
	index []int

	symbols   []int
	counts    []uint64
	cum       []uint64 // cum[i] is the total count of symbols[:i]
	intervals []Interval
}

// NewModel counts the symbols of sequence and builds their Model.
func NewModel(sequence []int, maxValue int) (*Model, error) {
	if len(sequence) == 0 {
		return nil, errors.WithStack(ErrEmptyInput)
	}
	if maxValue < 0 {
		return nil, errors.Wrapf(ErrSymbolRange, "max value %d", maxValue)
	}
	counts := make([]uint64, maxValue+1)
	for i, s := range sequence {
		if s < 0 || s > maxValue {
			return nil, errors.Wrapf(ErrSymbolRange, "symbol %d at position %d, max value %d", s, i, maxValue)
		}
		counts[s]++
	}
	return NewModelFromCounts(counts, maxValue)
}

// NewModelFromCounts builds a Model from the number of occurrences of each symbol, counts[s] being that of symbol s.
// The intervals are accumulated exactly as in NewModel, so a decoder holding only the counts
// rebuilds the encoder's model bit for bit.
func NewModelFromCounts(counts []uint64, maxValue int) (*Model, error) {
	if maxValue < 0 {
		return nil, errors.Wrapf(ErrSymbolRange, "max value %d", maxValue)
	}
	var total uint64
	for s, c := range counts {
		if c > 0 && s > maxValue {
			return nil, errors.Wrapf(ErrSymbolRange, "symbol %d, max value %d", s, maxValue)
		}
		total += c
	}
	if total == 0 {
		return nil, errors.WithStack(ErrEmptyInput)
	}

	m := &Model{maxValue: maxValue}
	m.index = make([]int, maxValue+1)
	m.cum = []uint64{0}
	n := float64(total)
	cumulative := 0.0
	for s := 0; s <= maxValue; s++ {
		m.index[s] = -1
		if s >= len(counts) || counts[s] == 0 {
			continue
		}
		c := counts[s]
		probability := float64(c) / n

		m.index[s] = len(m.symbols)
		m.symbols = append(m.symbols, s)
		m.counts = append(m.counts, c)
		m.cum = append(m.cum, m.cum[len(m.cum)-1]+c)
		m.intervals = append(m.intervals, Interval{Low: cumulative, High: cumulative + probability})
		cumulative += probability
	}
	return m, nil
}

// MaxValue returns the largest symbol of the alphabet.
func (m *Model) MaxValue() int {
	return m.maxValue
}

// Len returns the number of symbols that have an interval.
func (m *Model) Len() int {
	return len(m.symbols)
}

// Symbols returns the symbols that have an interval, in ascending order.
func (m *Model) Symbols() []int {
	return append([]int(nil), m.symbols...)
}

// Interval returns the interval of symbol, and false if symbol never occurred.
func (m *Model) Interval(symbol int) (Interval, bool) {
	i := m.lookup(symbol)
	if i < 0 {
		return Interval{}, false
	}
	return m.intervals[i], true
}

// Count returns the number of occurrences of symbol.
func (m *Model) Count(symbol int) uint64 {
	i := m.lookup(symbol)
	if i < 0 {
		return 0
	}
	return m.counts[i]
}

// Counts returns the occurrences of every symbol of the alphabet, indexed by symbol.
func (m *Model) Counts() []uint64 {
	counts := make([]uint64, m.maxValue+1)
	for i, s := range m.symbols {
		counts[s] = m.counts[i]
	}
	return counts
}

// Total returns the length of the sequence the model was built from.
func (m *Model) Total() uint64 {
	return m.cum[len(m.cum)-1]
}

// Range returns the cumulative count range [low, high) of symbol.
func (m *Model) Range(symbol int) (low, high uint64, err error) {
	i := m.lookup(symbol)
	if i < 0 {
		return 0, 0, errors.Wrapf(ErrUnknownSymbol, "symbol %d", symbol)
	}
	return m.cum[i], m.cum[i+1], nil
}

// Find returns the symbol whose cumulative count range contains target.
func (m *Model) Find(target uint64) (symbol int, low, high uint64, err error) {
	i := sort.Search(len(m.symbols), func(i int) bool { return target < m.cum[i+1] })
	if i == len(m.symbols) {
		return 0, 0, 0, errors.Wrapf(ErrNoMatchingSymbol, "target %d, total %d", target, m.Total())
	}
	return m.symbols[i], m.cum[i], m.cum[i+1], nil
}

func (m *Model) lookup(symbol int) int {
	if symbol < 0 || symbol >= len(m.index) {
		return -1
	}
	return m.index[symbol]
}

// search returns the position of the first interval, in ascending symbol order, that contains code, or -1.
// Intervals are contiguous and ordered, so the first one whose High exceeds code is the only candidate.
func (m *Model) search(code float64) int {
	i := sort.Search(len(m.intervals), func(i int) bool { return code < m.intervals[i].High })
	if i == len(m.intervals) || code < m.intervals[i].Low {
		return -1
	}
	return i
}
