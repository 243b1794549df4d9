package includes

import (
	"math"
	"math/rand" //nolint:gosec // reproducible data, not security
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		n    int
		from int
		want int
	}{
		{name: "zero", n: 3, from: 0, want: 0},
		{name: "inside", n: 3, from: 2, want: 2},
		{name: "at end", n: 3, from: 3, want: 3},
		{name: "past end", n: 3, from: 5, want: 3},
		{name: "negative", n: 3, from: -1, want: 2},
		{name: "negative whole length", n: 3, from: -3, want: 0},
		{name: "negative past start", n: 3, from: -5, want: 0},
		{name: "empty", n: 0, from: 0, want: 0},
		{name: "empty negative", n: 0, from: -1, want: 0},
		{name: "empty positive", n: 0, from: 5, want: 0},
		{name: "min int", n: 3, from: math.MinInt, want: 0},
		{name: "max int", n: 3, from: math.MaxInt, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Start(tt.n, tt.from))
		})
	}
}

func TestContains(t *testing.T) {
	t.Parallel()

	nan := math.NaN()
	negZero := math.Copysign(0, -1)

	assert.True(t, Contains([]int{1, 2, 3}, 2))
	assert.False(t, Contains([]int{1, 2, 3}, 4))
	assert.False(t, Contains([]int{}, 0))
	assert.False(t, Contains([]int(nil), 0))
	assert.True(t, Contains([]string{"a", "b"}, "b"))

	assert.True(t, Contains([]float64{1, nan}, nan), "NaN is found")
	assert.False(t, Contains([]float64{1, 2}, nan))
	assert.True(t, Contains([]float64{0}, negZero), "-0 matches +0")
	assert.True(t, Contains([]float64{negZero}, 0), "+0 matches -0")
	assert.True(t, Contains([]float32{float32(nan)}, float32(nan)))

	assert.True(t, Contains([]any{1, "a", nan}, any(nan)))
	assert.False(t, Contains([]any{1, "a"}, any(1.0)), "typed interface comparison")
	assert.False(t, Contains([]any{float32(nan)}, any(nan)), "NaN widths differ")
}

func TestContains_CompositeNaN(t *testing.T) {
	t.Parallel()

	type point struct{ X, Y float64 }
	nan := math.NaN()

	assert.False(t, Contains([]point{{nan, 1}}, point{nan, 2}))
	assert.False(t, Contains([]point{{nan, 1}}, point{nan, 1}), "struct fields compare with ==")
	assert.True(t, Contains([]point{{1, 2}}, point{1, 2}))
	assert.False(t, Contains([][2]float64{{nan, 1}}, [2]float64{nan, 99}))
	assert.False(t, Contains([]any{point{nan, 1}}, any(point{nan, 2})))
}

func TestContainsFrom(t *testing.T) {
	t.Parallel()

	s := []int{1, 2, 3}

	tests := []struct {
		name string
		v    int
		from int
		want bool
	}{
		{name: "from zero", v: 1, from: 0, want: true},
		{name: "skipped", v: 1, from: 1, want: false},
		{name: "at start", v: 2, from: 1, want: true},
		{name: "at length", v: 3, from: 3, want: false},
		{name: "past length", v: 3, from: 100, want: false},
		{name: "negative finds tail", v: 3, from: -1, want: true},
		{name: "negative skips head", v: 1, from: -1, want: false},
		{name: "negative clamped", v: 1, from: -100, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ContainsFrom(s, tt.v, tt.from))
		})
	}
}

func TestIndexFrom(t *testing.T) {
	t.Parallel()

	s := []string{"a", "b", "a", "c"}
	assert.Equal(t, 0, Index(s, "a"))
	assert.Equal(t, 2, IndexFrom(s, "a", 1))
	assert.Equal(t, 2, IndexFrom(s, "a", -2))
	assert.Equal(t, -1, IndexFrom(s, "a", 3))
	assert.Equal(t, -1, Index(s, "z"))
	assert.Equal(t, 1, Index([]float64{1, math.NaN(), math.NaN()}, math.NaN()))
}

// TestContainsFromMatchesScan checks ContainsFrom against a direct scan of
// s[Start(len(s), from):] for random inputs.
func TestContainsFromMatchesScan(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7)) //nolint:gosec // reproducible data
	for range 500 {
		n := rng.Intn(12)
		s := make([]int, n)
		for i := range s {
			s[i] = rng.Intn(5)
		}
		v := rng.Intn(6)
		from := rng.Intn(30) - 15

		want := false
		for _, e := range s[Start(n, from):] {
			if e == v {
				want = true
				break
			}
		}
		assert.Equal(t, want, ContainsFrom(s, v, from), "s=%v v=%d from=%d", s, v, from)

		// A later start never finds more.
		if !ContainsFrom(s, v, 0) {
			assert.False(t, ContainsFrom(s, v, from), "s=%v v=%d from=%d", s, v, from)
		}
	}
}

func TestSameValueZero(t *testing.T) {
	t.Parallel()

	nan := math.NaN()
	assert.True(t, SameValueZero(nan, nan))
	assert.True(t, SameValueZero(0.0, math.Copysign(0, -1)))
	assert.True(t, SameValueZero(1, 1))
	assert.False(t, SameValueZero(1.0, nan))
	assert.True(t, SameValueZero[any](nan, nan))
	assert.False(t, SameValueZero[any](1, 1.0), "different dynamic types")
	assert.False(t, SameValueZero[any](nan, float32(nan)), "different dynamic types")
	assert.True(t, SameValueZero(float32(nan), float32(nan)))
	assert.True(t, SameValueZero("x", "x"))

	type celsius float64
	assert.True(t, SameValueZero(celsius(nan), celsius(nan)), "named float type")
	assert.False(t, SameValueZero[any](celsius(nan), nan))
	assert.False(t, SameValueZero([1]float64{nan}, [1]float64{nan}), "array holding NaN")
}
