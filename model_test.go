package arith

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/fumin/arith/ac"
	"github.com/pkg/errors"
)

var _ ac.Model = (*Model)(nil)

func TestModelScenario(t *testing.T) {
	model, err := NewModel([]int{0, 0, 1, 2}, 2)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	want := map[int]Interval{
		0: {Low: 0, High: 0.5},
		1: {Low: 0.5, High: 0.75},
		2: {Low: 0.75, High: 1},
	}
	if model.Len() != len(want) {
		t.Fatalf("%d != %d", model.Len(), len(want))
	}
	for s, w := range want {
		iv, ok := model.Interval(s)
		if !ok || iv != w {
			t.Errorf("%d: %+v %v != %+v", s, iv, ok, w)
		}
	}
	if got := model.Counts(); !reflect.DeepEqual(got, []uint64{2, 1, 1}) {
		t.Errorf("%v", got)
	}
}

func TestModelSingleSymbol(t *testing.T) {
	model, err := NewModel([]int{3}, 9)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if iv, ok := model.Interval(3); !ok || iv != (Interval{Low: 0, High: 1}) {
		t.Errorf("%+v %v", iv, ok)
	}
	if model.Len() != 1 || model.MaxValue() != 9 {
		t.Errorf("%d %d", model.Len(), model.MaxValue())
	}
}

func TestModelPartition(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 200; trial++ {
		maxValue := 1 + rng.Intn(300)
		x := randomSequence(rng, 1+rng.Intn(2000), maxValue)
		model, err := NewModel(x, maxValue)
		if err != nil {
			t.Fatalf("%+v", err)
		}

		seen := make(map[int]bool)
		for _, s := range x {
			seen[s] = true
		}
		if model.Len() != len(seen) {
			t.Fatalf("%d != %d", model.Len(), len(seen))
		}

		var sum float64
		prev := -1
		var prevHigh float64
		for s := 0; s <= maxValue; s++ {
			iv, ok := model.Interval(s)
			if ok != seen[s] {
				t.Fatalf("symbol %d: %v != %v", s, ok, seen[s])
			}
			if !ok {
				continue
			}
			if prev < 0 && iv.Low != 0 {
				t.Errorf("first low %v", iv.Low)
			}
			if prev >= 0 && iv.Low != prevHigh {
				t.Errorf("symbol %d low %v != previous high %v", s, iv.Low, prevHigh)
			}
			if iv.High <= iv.Low {
				t.Errorf("symbol %d empty interval %+v", s, iv)
			}
			width := float64(model.Count(s)) / float64(len(x))
			if math.Abs((iv.High-iv.Low)-width) > 1e-12 {
				t.Errorf("symbol %d width %v != %v", s, iv.High-iv.Low, width)
			}
			sum += iv.High - iv.Low
			prev, prevHigh = s, iv.High
		}
		if math.Abs(prevHigh-1) > 1e-9 {
			t.Errorf("last high %v", prevHigh)
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("sum %v", sum)
		}
	}
}

func TestModelDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	x := randomSequence(rng, 5000, 255)
	m1, err := NewModel(x, 255)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	m2, err := NewModel(x, 255)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if !reflect.DeepEqual(m1, m2) {
		t.Errorf("models differ")
	}

	// A decoder holding only the counts rebuilds the identical model.
	m3, err := NewModelFromCounts(m1.Counts(), m1.MaxValue())
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if !reflect.DeepEqual(m1, m3) {
		t.Errorf("models differ")
	}
}

func TestModelEmptyInput(t *testing.T) {
	if _, err := NewModel(nil, 255); errors.Cause(err) != ErrEmptyInput {
		t.Errorf("%+v", err)
	}
	if _, err := NewModelFromCounts(make([]uint64, 4), 3); errors.Cause(err) != ErrEmptyInput {
		t.Errorf("%+v", err)
	}
}

func TestModelSymbolRange(t *testing.T) {
	if _, err := NewModel([]int{0, 3}, 2); errors.Cause(err) != ErrSymbolRange {
		t.Errorf("%+v", err)
	}
	if _, err := NewModel([]int{-1}, 2); errors.Cause(err) != ErrSymbolRange {
		t.Errorf("%+v", err)
	}
	if _, err := NewModelFromCounts([]uint64{1, 0, 0, 1}, 2); errors.Cause(err) != ErrSymbolRange {
		t.Errorf("%+v", err)
	}
}

func TestModelFrequencies(t *testing.T) {
	x := []int{4, 0, 0, 7, 4, 4, 0, 9, 4}
	model, err := NewModel(x, 9)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if model.Total() != uint64(len(x)) {
		t.Fatalf("%d", model.Total())
	}
	for target := uint64(0); target < model.Total(); target++ {
		s, low, high, err := model.Find(target)
		if err != nil {
			t.Fatalf("%+v", err)
		}
		if target < low || target >= high {
			t.Errorf("target %d not in [%d, %d)", target, low, high)
		}
		rlow, rhigh, err := model.Range(s)
		if err != nil {
			t.Fatalf("%+v", err)
		}
		if rlow != low || rhigh != high || high-low != model.Count(s) {
			t.Errorf("symbol %d: [%d, %d) != [%d, %d)", s, rlow, rhigh, low, high)
		}
	}
	if _, _, _, err := model.Find(model.Total()); errors.Cause(err) != ErrNoMatchingSymbol {
		t.Errorf("%+v", err)
	}
	if _, _, err := model.Range(5); errors.Cause(err) != ErrUnknownSymbol {
		t.Errorf("%+v", err)
	}
	if got := model.Symbols(); !reflect.DeepEqual(got, []int{0, 4, 7, 9}) {
		t.Errorf("%v", got)
	}
}

func randomSequence(rng *rand.Rand, n, maxValue int) []int {
	x := make([]int, n)
	for i := range x {
		x[i] = rng.Intn(maxValue + 1)
	}
	return x
}
