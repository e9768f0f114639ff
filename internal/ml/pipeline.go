package ml

import (
	"errors"
	"fmt"
	"math"
)

// FeatureEncoder turns named rows into dense feature vectors. Numeric
// columns run through median imputation and standardization, categorical
// columns through most-frequent imputation and one-hot encoding. Everything
// is fitted once on training data and reused unchanged for every inference.
type FeatureEncoder struct {
	NumericColumns     []string
	CategoricalColumns []string

	Imputer    MedianImputer
	Scaler     StandardScaler
	CatImputer MostFrequentImputer
	OneHot     OneHotEncoder
}

// NewFeatureEncoder fixes the column layout of the encoder.
func NewFeatureEncoder(numeric, categorical []string) *FeatureEncoder {
	return &FeatureEncoder{
		NumericColumns:     append([]string(nil), numeric...),
		CategoricalColumns: append([]string(nil), categorical...),
	}
}

// Fit learns imputation statistics, scaling parameters and category sets
// from the training frame.
func (e *FeatureEncoder) Fit(f *Frame) error {
	if f.N == 0 {
		return errors.New("encoder: empty frame")
	}

	num := make([][]float64, f.N)
	for i := 0; i < f.N; i++ {
		row := make([]float64, len(e.NumericColumns))
		for j, c := range e.NumericColumns {
			vals, ok := f.Numeric[c]
			if !ok {
				return fmt.Errorf("encoder: frame is missing numeric column %q", c)
			}
			row[j] = vals[i]
		}
		num[i] = row
	}
	if err := e.Imputer.Fit(num); err != nil {
		return err
	}
	if err := e.Scaler.Fit(e.Imputer.Transform(num)); err != nil {
		return err
	}

	cats := make([][]string, len(e.CategoricalColumns))
	for j, c := range e.CategoricalColumns {
		vals, ok := f.Categorical[c]
		if !ok {
			return fmt.Errorf("encoder: frame is missing categorical column %q", c)
		}
		cats[j] = vals
	}
	if err := e.CatImputer.Fit(cats); err != nil {
		return err
	}
	return e.OneHot.Fit(e.CatImputer.Transform(cats))
}

// Width is the length of the encoded feature vector.
func (e *FeatureEncoder) Width() int {
	return len(e.NumericColumns) + e.OneHot.Width()
}

// Transform encodes a single row. Missing numerics fall back to the fitted
// median. An absent categorical value ("") is not a fitted category and
// encodes as all zeros, exactly like a category never seen at fit time.
func (e *FeatureEncoder) Transform(r Row) []float64 {
	out := make([]float64, 0, e.Width())
	for j, c := range e.NumericColumns {
		v, ok := r.Numeric[c]
		if !ok || math.IsNaN(v) {
			v = e.Imputer.Medians[j]
		}
		out = append(out, (v-e.Scaler.Mean[j])/e.Scaler.Std[j])
	}
	values := make([]string, len(e.CategoricalColumns))
	for j, c := range e.CategoricalColumns {
		values[j] = r.Categorical[c]
	}
	return e.OneHot.Encode(out, values)
}

// TransformFrame encodes every observation of a training frame. Here "" marks
// a missing cell of the source data and takes the fitted most-frequent value
// before encoding, unlike the single-row path where "" means the caller sent
// no value at all.
func (e *FeatureEncoder) TransformFrame(f *Frame) [][]float64 {
	out := make([][]float64, f.N)
	for i := 0; i < f.N; i++ {
		row := f.Row(i)
		for j, c := range e.CategoricalColumns {
			if row.Categorical[c] == "" {
				row.Categorical[c] = e.CatImputer.Values[j]
			}
		}
		out[i] = e.Transform(row)
	}
	return out
}

// Pipeline composes the fitted feature encoder with the fitted regression
// forest. It is the unit that gets persisted as the model artifact and the
// only object the prediction service ever touches.
type Pipeline struct {
	Encoder *FeatureEncoder
	Forest  *RandomForestRegressor
}

// NewPipeline wires an unfitted encoder and forest together.
func NewPipeline(encoder *FeatureEncoder, forest *RandomForestRegressor) *Pipeline {
	return &Pipeline{Encoder: encoder, Forest: forest}
}

// Fit fits the encoder on the frame, encodes it and fits the forest against
// the target values.
func (p *Pipeline) Fit(f *Frame, y []float64) error {
	if f.N != len(y) {
		return errors.New("pipeline: frame and target length mismatch")
	}
	if err := p.Encoder.Fit(f); err != nil {
		return err
	}
	return p.Forest.Fit(p.Encoder.TransformFrame(f), y)
}

// Rehydrate restores the unexported encoder state that gob does not carry.
// It must run after decoding, before the pipeline serves concurrent
// predictions.
func (p *Pipeline) Rehydrate() {
	if p.Encoder != nil {
		p.Encoder.OneHot.Rehydrate()
	}
}

// Predict maps one named row to a price.
func (p *Pipeline) Predict(r Row) (float64, error) {
	if p.Encoder == nil || p.Forest == nil {
		return 0, errors.New("pipeline: not fitted")
	}
	return p.Forest.PredictRow(p.Encoder.Transform(r))
}

// PredictFrame maps every observation of a frame to a price.
func (p *Pipeline) PredictFrame(f *Frame) ([]float64, error) {
	if p.Encoder == nil || p.Forest == nil {
		return nil, errors.New("pipeline: not fitted")
	}
	return p.Forest.Predict(p.Encoder.TransformFrame(f))
}
