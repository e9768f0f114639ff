package ml

import (
	"errors"
	"math"
	"sort"
)

// ---------- Numeric transformers ----------

// MedianImputer replaces NaN entries with the per-column median seen at fit
// time.
type MedianImputer struct {
	Medians []float64
}

func (m *MedianImputer) Fit(X [][]float64) error {
	if len(X) == 0 {
		return errors.New("imputer: empty X")
	}
	p := len(X[0])
	m.Medians = make([]float64, p)
	col := make([]float64, 0, len(X))
	for j := 0; j < p; j++ {
		col = col[:0]
		for i := range X {
			col = append(col, X[i][j])
		}
		m.Medians[j] = medianIgnoreNaN(col)
	}
	return nil
}

func (m *MedianImputer) Transform(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i := range X {
		row := make([]float64, len(X[i]))
		for j, v := range X[i] {
			if math.IsNaN(v) {
				v = m.Medians[j]
			}
			row[j] = v
		}
		out[i] = row
	}
	return out
}

// StandardScaler standardizes each column to zero mean and unit variance.
// Constant columns scale to zero instead of dividing by zero.
type StandardScaler struct {
	Mean []float64
	Std  []float64
}

func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return errors.New("scaler: empty X")
	}
	r, c := len(X), len(X[0])
	s.Mean = make([]float64, c)
	s.Std = make([]float64, c)
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			s.Mean[j] += X[i][j]
		}
		s.Mean[j] /= float64(r)
		v := 0.0
		for i := 0; i < r; i++ {
			d := X[i][j] - s.Mean[j]
			v += d * d
		}
		v /= float64(r)
		s.Std[j] = math.Sqrt(v)
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}
	return nil
}

func (s *StandardScaler) Transform(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i := range X {
		row := make([]float64, len(X[i]))
		for j, v := range X[i] {
			row[j] = (v - s.Mean[j]) / s.Std[j]
		}
		out[i] = row
	}
	return out
}

// ---------- Categorical transformers ----------

// MostFrequentImputer replaces empty strings with the most frequent value
// observed per column at fit time. Frequency ties break on first-seen order
// so fitting is deterministic.
type MostFrequentImputer struct {
	Values []string
}

func (m *MostFrequentImputer) Fit(cols [][]string) error {
	if len(cols) == 0 {
		return errors.New("imputer: no columns")
	}
	m.Values = make([]string, len(cols))
	for j, col := range cols {
		counts := map[string]int{}
		var order []string
		for _, v := range col {
			if v == "" {
				continue
			}
			if _, ok := counts[v]; !ok {
				order = append(order, v)
			}
			counts[v]++
		}
		best, bestCount := "", -1
		for _, v := range order {
			if counts[v] > bestCount {
				best, bestCount = v, counts[v]
			}
		}
		m.Values[j] = best
	}
	return nil
}

func (m *MostFrequentImputer) Transform(cols [][]string) [][]string {
	out := make([][]string, len(cols))
	for j, col := range cols {
		vals := make([]string, len(col))
		for i, v := range col {
			if v == "" {
				v = m.Values[j]
			}
			vals[i] = v
		}
		out[j] = vals
	}
	return out
}

// OneHotEncoder maps each categorical column to one indicator position per
// category seen at fit time, first-seen order. A value unseen at fit time
// encodes as all zeros instead of erroring.
type OneHotEncoder struct {
	Categories [][]string

	index []map[string]int // built by Fit, restored by Rehydrate after decode
}

func (e *OneHotEncoder) Fit(cols [][]string) error {
	if len(cols) == 0 {
		return errors.New("onehot: no columns")
	}
	e.Categories = make([][]string, len(cols))
	for j, col := range cols {
		seen := map[string]struct{}{}
		var cats []string
		for _, v := range col {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				cats = append(cats, v)
			}
		}
		e.Categories[j] = cats
	}
	e.buildIndex()
	return nil
}

// Width is the total number of indicator positions across all columns.
func (e *OneHotEncoder) Width() int {
	w := 0
	for _, cats := range e.Categories {
		w += len(cats)
	}
	return w
}

// Encode appends the indicator vector for the given values to dst. The
// encoder must be fitted or rehydrated first; Encode itself never writes to
// the encoder, so a fitted encoder is safe for concurrent use.
func (e *OneHotEncoder) Encode(dst []float64, values []string) []float64 {
	for j, v := range values {
		vec := make([]float64, len(e.Categories[j]))
		if pos, ok := e.index[j][v]; ok {
			vec[pos] = 1
		}
		dst = append(dst, vec...)
	}
	return dst
}

// Rehydrate rebuilds the lookup index from the category lists. Gob persists
// only the exported fields, so this must run once after decoding, before the
// encoder is shared across goroutines.
func (e *OneHotEncoder) Rehydrate() {
	e.buildIndex()
}

func (e *OneHotEncoder) buildIndex() {
	e.index = make([]map[string]int, len(e.Categories))
	for j, cats := range e.Categories {
		m := make(map[string]int, len(cats))
		for pos, c := range cats {
			m[c] = pos
		}
		e.index[j] = m
	}
}

// ---------- shared helpers ----------

// medianIgnoreNaN returns the median of the non-NaN values, or 0 if none.
func medianIgnoreNaN(vals []float64) float64 {
	clean := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return 0
	}
	sort.Float64s(clean)
	n := len(clean)
	if n%2 == 1 {
		return clean[n/2]
	}
	return (clean[n/2-1] + clean[n/2]) / 2
}
