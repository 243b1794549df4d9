package arraylike

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/includes/internal/coerce"
)

type pair struct{}

func (pair) Len() int { return 2 }

func (pair) At(i int) any { return i * 10 }

type emptySeq struct{}

func (emptySeq) Len() int { return -5 }

func (emptySeq) At(int) any { panic("At called on empty sequence") }

func TestAbsent(t *testing.T) {
	t.Parallel()

	var nilSlice *[]any
	var nilMap map[string]any

	assert.True(t, Absent(nil))
	assert.True(t, Absent(coerce.Undefined))
	assert.True(t, Absent(nilSlice))
	assert.False(t, Absent([]any(nil)))
	assert.False(t, Absent(nilMap))
	assert.False(t, Absent(0))
	assert.False(t, Absent(""))
}

func TestOf(t *testing.T) {
	t.Parallel()

	arr := [2]string{"x", "y"}

	tests := []struct {
		name       string
		in         any
		wantLength any
		wantAt     []any
	}{
		{name: "any slice", in: []any{1, "a"}, wantLength: 2, wantAt: []any{1, "a"}},
		{name: "typed slice", in: []int{4, 5}, wantLength: 2, wantAt: []any{4, 5}},
		{name: "array", in: arr, wantLength: 2, wantAt: []any{"x", "y"}},
		{name: "pointer to array", in: &arr, wantLength: 2, wantAt: []any{"x", "y"}},
		{name: "string", in: "añb", wantLength: 3, wantAt: []any{"a", "ñ", "b"}},
		{name: "sequence", in: pair{}, wantLength: 2, wantAt: []any{0, 10}},
		{name: "negative sequence length", in: emptySeq{}, wantLength: 0, wantAt: []any{}},
		{
			name:       "map with holes",
			in:         map[string]any{"length": 3, "0": "a", "2": nil},
			wantLength: 3,
			wantAt:     []any{"a", coerce.Undefined, nil},
		},
		{
			name:       "map without length",
			in:         map[string]any{"0": "a"},
			wantLength: coerce.Undefined,
			wantAt:     []any{"a"},
		},
		{
			name:       "typed map",
			in:         map[string]float64{"length": 1, "0": 2.5},
			wantLength: 1.0,
			wantAt:     []any{2.5},
		},
		{name: "number", in: 7, wantLength: coerce.Undefined, wantAt: []any{coerce.Undefined}},
		{name: "int keyed map", in: map[int]any{0: "a"}, wantLength: coerce.Undefined, wantAt: []any{coerce.Undefined}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			view, ok := Of(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.wantLength, view.Length)
			for i, want := range tt.wantAt {
				assert.Equal(t, want, view.At(int64(i)), "At(%d)", i)
			}
		})
	}
}

func TestView_OutOfRange(t *testing.T) {
	t.Parallel()

	for _, in := range []any{[]any{1}, []int{1}, "a", pair{}} {
		view, ok := Of(in)
		require.True(t, ok)
		assert.Equal(t, coerce.Undefined, view.At(-1), "%T", in)
		assert.Equal(t, coerce.Undefined, view.At(100), "%T", in)
	}

	assert.Equal(t, coerce.Undefined, View{}.At(0))
}

func TestOf_Absent(t *testing.T) {
	t.Parallel()

	_, ok := Of(nil)
	assert.False(t, ok)

	_, ok = Of(coerce.Undefined)
	assert.False(t, ok)
}
