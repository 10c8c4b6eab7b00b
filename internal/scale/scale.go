// Package scale standardizes the clustering feature matrix. It first
// cleans the frame (±Inf to NaN, NaN to the fill value), then fits a
// per-column statistic and applies it. The fitted statistic is retained so
// the transform can be reapplied or inverted.
package scale

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/mfarres/go-feb-stats/internal/model"
)

// ErrUnknownScaler reports an unsupported scaler-type string. It fails the
// run before any fitting occurs.
var ErrUnknownScaler = errors.New("unknown scaler type")

// ErrNotFitted reports Transform/InverseTransform before FitTransform.
var ErrNotFitted = errors.New("scaler not fitted")

// Scaler kinds.
const (
	KindStandard = "standard"
	KindMinMax   = "minmax"
)

// Scaler holds one fitted per-column statistic. offset/scale are the
// column mean/stddev for the standard kind and min/range for minmax;
// zero scales are replaced by 1 so degenerate columns map to 0 and the
// inverse transform stays exact.
type Scaler struct {
	kind    string
	columns []string
	offset  []float64
	scale   []float64
	fitted  bool
}

// New constructs a scaler of the given kind, failing fast on unknown kinds.
func New(kind string) (*Scaler, error) {
	switch kind {
	case KindStandard, KindMinMax:
		return &Scaler{kind: kind}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScaler, kind)
	}
}

// Kind returns the scaler kind string.
func (s *Scaler) Kind() string { return s.kind }

// Clean replaces ±Inf with NaN (when handleInf is set) and fills every NaN
// with fillNA, returning a new frame.
func Clean(f model.Frame, handleInf bool, fillNA float64) model.Frame {
	out := f.Clone()
	for _, row := range out.Rows {
		for i, v := range row {
			if handleInf && math.IsInf(v, 0) {
				v = math.NaN()
			}
			if math.IsNaN(v) {
				v = fillNA
			}
			row[i] = v
		}
	}
	return out
}

// FitTransform cleans the frame, fits the per-column statistic on the
// clean values, and returns (scaled, clean). Column names and order are
// preserved verbatim in both outputs.
func (s *Scaler) FitTransform(f model.Frame, handleInf bool, fillNA float64) (scaled, clean model.Frame, err error) {
	clean = Clean(f, handleInf, fillNA)

	n := len(clean.Columns)
	s.columns = append([]string(nil), clean.Columns...)
	s.offset = make([]float64, n)
	s.scale = make([]float64, n)

	col := make([]float64, len(clean.Rows))
	for j := 0; j < n; j++ {
		for i, row := range clean.Rows {
			col[i] = row[j]
		}
		switch s.kind {
		case KindStandard:
			// Population variance, matching the fit the clustering
			// notebooks were built against.
			s.offset[j] = stat.Mean(col, nil)
			s.scale[j] = stat.PopStdDev(col, nil)
		case KindMinMax:
			if len(col) == 0 {
				break
			}
			min, max := floats.Min(col), floats.Max(col)
			s.offset[j] = min
			s.scale[j] = max - min
		}
		if s.scale[j] == 0 || math.IsNaN(s.scale[j]) {
			s.scale[j] = 1
		}
	}
	s.fitted = true

	scaled, err = s.apply(clean)
	return scaled, clean, err
}

// Transform reapplies the previously fitted statistic to new data without
// refitting. The frame must carry the same columns in the same order.
func (s *Scaler) Transform(f model.Frame, handleInf bool, fillNA float64) (model.Frame, error) {
	if !s.fitted {
		return model.Frame{}, ErrNotFitted
	}
	if err := s.checkColumns(f); err != nil {
		return model.Frame{}, err
	}
	return s.apply(Clean(f, handleInf, fillNA))
}

// InverseTransform reconstructs the clean-table values from a scaled
// frame, subject to floating-point rounding.
func (s *Scaler) InverseTransform(f model.Frame) (model.Frame, error) {
	if !s.fitted {
		return model.Frame{}, ErrNotFitted
	}
	if err := s.checkColumns(f); err != nil {
		return model.Frame{}, err
	}
	out := f.Clone()
	for _, row := range out.Rows {
		for j, v := range row {
			row[j] = v*s.scale[j] + s.offset[j]
		}
	}
	return out, nil
}

func (s *Scaler) apply(clean model.Frame) (model.Frame, error) {
	out := clean.Clone()
	for _, row := range out.Rows {
		for j, v := range row {
			row[j] = (v - s.offset[j]) / s.scale[j]
		}
	}
	return out, nil
}

func (s *Scaler) checkColumns(f model.Frame) error {
	if len(f.Columns) != len(s.columns) {
		return fmt.Errorf("column count mismatch: fitted %d, got %d", len(s.columns), len(f.Columns))
	}
	for i, c := range f.Columns {
		if c != s.columns[i] {
			return fmt.Errorf("column %d mismatch: fitted %q, got %q", i, s.columns[i], c)
		}
	}
	return nil
}
