package duration

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LowestTerms(t *testing.T) {
	tests := []struct {
		num, den         uint32
		wantNum, wantDen uint32
	}{
		{1, 4, 1, 4},
		{2, 8, 1, 4},
		{6, 8, 3, 4},
		{0, 7, 0, 1},
		{4, 4, 1, 1},
		{12, 16, 3, 4},
	}
	for _, tt := range tests {
		n, d := New(tt.num, tt.den).Ratio()
		assert.Equal(t, tt.wantNum, n, "num of %d/%d", tt.num, tt.den)
		assert.Equal(t, tt.wantDen, d, "den of %d/%d", tt.num, tt.den)
	}
}

func TestNew_ZeroDenominatorPanics(t *testing.T) {
	assert.Panics(t, func() { New(1, 0) })
}

func TestAddSub(t *testing.T) {
	a := New(1, 6)
	b := New(1, 8)

	sum := a.Add(b)
	n, d := sum.Ratio()
	assert.Equal(t, uint32(7), n)
	assert.Equal(t, uint32(24), d)

	diff := a.Sub(b)
	n, d = diff.Ratio()
	assert.Equal(t, uint32(1), n)
	assert.Equal(t, uint32(24), d)
}

func TestAddSub_RoundTrip(t *testing.T) {
	pairs := [][4]uint32{
		{1, 4, 1, 8},
		{3, 8, 1, 6},
		{2, 3, 1, 12},
		{1, 1, 1, 2},
	}
	for _, p := range pairs {
		a := New(p[0], p[1])
		b := New(p[2], p[3])
		assert.True(t, a.Add(b).Sub(b).Equal(a), "(%v + %v) - %v", a, b, b)
	}
}

func TestSub_UnderflowPanics(t *testing.T) {
	assert.Panics(t, func() { New(1, 8).Sub(New(1, 4)) })
}

func TestCmp_Exact(t *testing.T) {
	assert.Equal(t, 0, New(1, 3).Cmp(New(2, 6)))
	assert.Equal(t, -1, New(1, 8).Cmp(New(1, 6)))
	assert.Equal(t, +1, New(1, 6).Cmp(New(1, 8)))
	assert.True(t, New(1, 8).Less(New(1, 4)))
	assert.False(t, New(1, 4).Less(New(1, 4)))
}

func TestFloat(t *testing.T) {
	assert.Equal(t, 0.25, New(1, 4).Float())
	assert.Equal(t, 0.75, New(3, 4).Float())
}

func TestNotation(t *testing.T) {
	tests := []struct {
		num, den uint32
		want     string
	}{
		{1, 1, "1"},
		{1, 2, "2"},
		{1, 4, "4"},
		{1, 16, "16"},
		{3, 4, "4."},
		{3, 8, "8."},
		{2, 8, "4"},
		{2, 1, "1*2"},
	}
	for _, tt := range tests {
		got, err := New(tt.num, tt.den).Notation()
		require.NoError(t, err, "%d/%d", tt.num, tt.den)
		assert.Equal(t, tt.want, got, "%d/%d", tt.num, tt.den)
	}
}

func TestNotation_Unsupported(t *testing.T) {
	for _, d := range []Duration{New(5, 7), New(1, 6), New(7, 8), New(0, 1)} {
		_, err := d.Notation()
		assert.True(t, errors.Is(err, ErrUnsupportedNotation), "%v", d)
	}
}

func TestParse(t *testing.T) {
	d, err := Parse("3/8")
	require.NoError(t, err)
	assert.True(t, d.Equal(New(3, 8)))

	d, err = Parse("2")
	require.NoError(t, err)
	assert.True(t, d.Equal(New(2, 1)))

	_, err = Parse("1/0")
	assert.Error(t, err)

	_, err = Parse("quarter")
	assert.Error(t, err)
}

func TestZeroValue(t *testing.T) {
	var d Duration
	assert.True(t, d.IsZero())
	n, den := d.Ratio()
	assert.Equal(t, uint32(0), n)
	assert.Equal(t, uint32(1), den)
	assert.True(t, d.Add(New(1, 4)).Equal(New(1, 4)))
}
