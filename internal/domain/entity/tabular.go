package entity

import "fmt"

// LabelEncoder maps a categorical value to the index it had when the encoder was fitted.
type LabelEncoder struct {
	field   string
	classes []string
	index   map[string]int
}

// NewLabelEncoder builds an encoder for field over the fitted classes, in fitted order.
func NewLabelEncoder(field string, classes []string) *LabelEncoder {
	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	return &LabelEncoder{field: field, classes: classes, index: index}
}

func (e *LabelEncoder) Field() string { return e.field }

func (e *LabelEncoder) Classes() []string { return e.classes }

func (e *LabelEncoder) Len() int { return len(e.classes) }

// Contains reports whether value belongs to the fitted label set.
func (e *LabelEncoder) Contains(value string) bool {
	_, ok := e.index[value]
	return ok
}

// Encode returns the class index of value.
func (e *LabelEncoder) Encode(value string) (int, error) {
	i, ok := e.index[value]
	if !ok {
		return 0, &UnknownCategoryError{Field: e.field, Value: value}
	}
	return i, nil
}

// Decode returns the class for index i.
func (e *LabelEncoder) Decode(i int) (string, error) {
	if i < 0 || i >= len(e.classes) {
		return "", fmt.Errorf("%s: class index %d out of range [0,%d)", e.field, i, len(e.classes))
	}
	return e.classes[i], nil
}

// Scaler is a fitted standard scaler.
type Scaler struct {
	Mean  []float64
	Scale []float64
}

// Transform standardizes x feature-wise. A zero scale leaves the centered value as is.
func (s *Scaler) Transform(x []float64) ([]float32, error) {
	if len(x) != len(s.Mean) || len(x) != len(s.Scale) {
		return nil, fmt.Errorf("scaler fitted on %d features, got %d", len(s.Mean), len(x))
	}
	out := make([]float32, len(x))
	for i, v := range x {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = float32((v - s.Mean[i]) / scale)
	}
	return out, nil
}
