package ml

import (
	"fmt"
	"math"
)

// Row is a single observation keyed by feature column name. Numeric values
// use math.NaN() as the missing marker, categorical values use "".
type Row struct {
	Numeric     map[string]float64
	Categorical map[string]string
}

// Frame is a small column-oriented dataset: the numeric and categorical
// columns the model trains on. Column name slices fix the layout of the
// encoded feature vectors.
type Frame struct {
	NumericColumns     []string
	CategoricalColumns []string
	Numeric            map[string][]float64
	Categorical        map[string][]string
	N                  int
}

// NewFrame allocates an empty frame with the given column layout.
func NewFrame(numeric, categorical []string, n int) *Frame {
	f := &Frame{
		NumericColumns:     append([]string(nil), numeric...),
		CategoricalColumns: append([]string(nil), categorical...),
		Numeric:            make(map[string][]float64, len(numeric)),
		Categorical:        make(map[string][]string, len(categorical)),
		N:                  n,
	}
	for _, c := range numeric {
		f.Numeric[c] = make([]float64, n)
	}
	for _, c := range categorical {
		f.Categorical[c] = make([]string, n)
	}
	return f
}

// Row materializes observation i as a Row.
func (f *Frame) Row(i int) Row {
	r := Row{
		Numeric:     make(map[string]float64, len(f.NumericColumns)),
		Categorical: make(map[string]string, len(f.CategoricalColumns)),
	}
	for _, c := range f.NumericColumns {
		r.Numeric[c] = f.Numeric[c][i]
	}
	for _, c := range f.CategoricalColumns {
		r.Categorical[c] = f.Categorical[c][i]
	}
	return r
}

// Subset returns a new frame holding only the observations at idx.
func (f *Frame) Subset(idx []int) *Frame {
	out := NewFrame(f.NumericColumns, f.CategoricalColumns, len(idx))
	for _, c := range f.NumericColumns {
		src, dst := f.Numeric[c], out.Numeric[c]
		for i, ii := range idx {
			dst[i] = src[ii]
		}
	}
	for _, c := range f.CategoricalColumns {
		src, dst := f.Categorical[c], out.Categorical[c]
		for i, ii := range idx {
			dst[i] = src[ii]
		}
	}
	return out
}

// FillMedian replaces missing values in a numeric column with the column
// median computed over the present values.
func (f *Frame) FillMedian(col string) error {
	vals, ok := f.Numeric[col]
	if !ok {
		return fmt.Errorf("frame: unknown numeric column %q", col)
	}
	med := medianIgnoreNaN(vals)
	for i, v := range vals {
		if math.IsNaN(v) {
			vals[i] = med
		}
	}
	return nil
}

// FillConstant replaces missing values in a numeric column with a constant.
func (f *Frame) FillConstant(col string, value float64) error {
	vals, ok := f.Numeric[col]
	if !ok {
		return fmt.Errorf("frame: unknown numeric column %q", col)
	}
	for i, v := range vals {
		if math.IsNaN(v) {
			vals[i] = value
		}
	}
	return nil
}

// Distinct returns the distinct non-missing values of a categorical column
// in first-seen order.
func (f *Frame) Distinct(col string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, v := range f.Categorical[col] {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
