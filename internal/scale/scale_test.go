package scale

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfarres/go-feb-stats/internal/model"
)

func TestNew_UnknownKind(t *testing.T) {
	_, err := New("robust")
	require.ErrorIs(t, err, ErrUnknownScaler)

	s, err := New(KindStandard)
	require.NoError(t, err)
	assert.Equal(t, KindStandard, s.Kind())
}

func TestClean(t *testing.T) {
	f := model.Frame{
		Columns: []string{"a", "b"},
		Rows: [][]float64{
			{math.Inf(1), 1},
			{math.Inf(-1), 2},
			{math.NaN(), 3},
		},
	}
	out := Clean(f, true, 0)
	for i, row := range out.Rows {
		assert.Equal(t, 0.0, row[0], "row %d", i)
	}
	// Input untouched.
	assert.True(t, math.IsInf(f.Rows[0][0], 1))

	// With handleInf off, Inf survives; NaN is still filled.
	out = Clean(f, false, 5)
	assert.True(t, math.IsInf(out.Rows[0][0], 1))
	assert.Equal(t, 5.0, out.Rows[2][0])
}

func TestStandardScaler(t *testing.T) {
	s, err := New(KindStandard)
	require.NoError(t, err)

	f := model.Frame{
		Columns: []string{"x"},
		Rows:    [][]float64{{1}, {2}, {3}},
	}
	scaled, clean, err := s.FitTransform(f, true, 0)
	require.NoError(t, err)
	require.Len(t, scaled.Rows, 3)

	// mean 2, population stddev sqrt(2/3).
	sd := math.Sqrt(2.0 / 3.0)
	assert.InDelta(t, (1-2)/sd, scaled.Rows[0][0], 1e-9)
	assert.InDelta(t, 0, scaled.Rows[1][0], 1e-9)
	assert.InDelta(t, (3-2)/sd, scaled.Rows[2][0], 1e-9)

	assert.Equal(t, []string{"x"}, clean.Columns)
}

func TestStandardScaler_ZeroVarianceColumn(t *testing.T) {
	s, err := New(KindStandard)
	require.NoError(t, err)

	f := model.Frame{
		Columns: []string{"const"},
		Rows:    [][]float64{{5}, {5}, {5}},
	}
	scaled, _, err := s.FitTransform(f, true, 0)
	require.NoError(t, err)

	// Degenerate column maps to 0, never NaN.
	for _, row := range scaled.Rows {
		assert.Equal(t, 0.0, row[0])
	}
}

func TestMinMaxScaler(t *testing.T) {
	s, err := New(KindMinMax)
	require.NoError(t, err)

	f := model.Frame{
		Columns: []string{"x"},
		Rows:    [][]float64{{1}, {2}, {3}},
	}
	scaled, _, err := s.FitTransform(f, true, 0)
	require.NoError(t, err)

	assert.InDelta(t, 0, scaled.Rows[0][0], 1e-9)
	assert.InDelta(t, 0.5, scaled.Rows[1][0], 1e-9)
	assert.InDelta(t, 1, scaled.Rows[2][0], 1e-9)
}

func TestFitTransform_CleansInfinities(t *testing.T) {
	s, err := New(KindStandard)
	require.NoError(t, err)

	f := model.Frame{
		Columns: []string{"x"},
		Rows:    [][]float64{{math.Inf(1)}, {2}, {4}},
	}
	scaled, clean, err := s.FitTransform(f, true, 0)
	require.NoError(t, err)

	// Inf becomes the fill value 0 before fitting.
	assert.Equal(t, 0.0, clean.Rows[0][0])
	for _, row := range scaled.Rows {
		assert.False(t, math.IsNaN(row[0]))
		assert.False(t, math.IsInf(row[0], 0))
	}
}

func TestInverseTransform_RoundTrip(t *testing.T) {
	s, err := New(KindStandard)
	require.NoError(t, err)

	f := model.Frame{
		Columns: []string{"x", "y"},
		Rows: [][]float64{
			{1, 10},
			{2, 20},
			{5, 15},
		},
	}
	scaled, clean, err := s.FitTransform(f, true, 0)
	require.NoError(t, err)

	back, err := s.InverseTransform(scaled)
	require.NoError(t, err)
	for i := range clean.Rows {
		for j := range clean.Columns {
			assert.InDelta(t, clean.Rows[i][j], back.Rows[i][j], 1e-9, "row %d col %d", i, j)
		}
	}
}

func TestTransform_RequiresFit(t *testing.T) {
	s, err := New(KindStandard)
	require.NoError(t, err)

	f := model.Frame{Columns: []string{"x"}, Rows: [][]float64{{1}}}
	_, err = s.Transform(f, true, 0)
	assert.ErrorIs(t, err, ErrNotFitted)
	_, err = s.InverseTransform(f)
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestTransform_ColumnMismatch(t *testing.T) {
	s, err := New(KindStandard)
	require.NoError(t, err)

	f := model.Frame{Columns: []string{"x"}, Rows: [][]float64{{1}, {2}}}
	_, _, err = s.FitTransform(f, true, 0)
	require.NoError(t, err)

	other := model.Frame{Columns: []string{"y"}, Rows: [][]float64{{1}}}
	_, err = s.Transform(other, true, 0)
	assert.Error(t, err)
}
