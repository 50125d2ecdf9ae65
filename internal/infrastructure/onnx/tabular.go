package onnx

import (
	"context"
	"fmt"

	"agriassure/internal/domain/port"
)

// Regressor runs an ONNX regression model with a single output value.
type Regressor struct {
	session *session
}

func NewRegressor(rt *Runtime, m *Manifest) (*Regressor, error) {
	s, err := newSession(rt, m)
	if err != nil {
		return nil, err
	}
	return &Regressor{session: s}, nil
}

func (r *Regressor) Predict(ctx context.Context, features []float32) (float64, error) {
	out, err := r.session.run(features)
	if err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, fmt.Errorf("empty model output")
	}
	return float64(out[0]), nil
}

func (r *Regressor) Close() {
	r.session.Close()
}

// ProbaClassifier runs an ONNX classifier exported with a dense probability output.
type ProbaClassifier struct {
	session    *session
	activation Activation
}

func NewProbaClassifier(rt *Runtime, m *Manifest) (*ProbaClassifier, error) {
	s, err := newSession(rt, m)
	if err != nil {
		return nil, err
	}
	return &ProbaClassifier{session: s, activation: m.Activation}, nil
}

func (c *ProbaClassifier) PredictProba(ctx context.Context, features []float32) ([]float64, error) {
	out, err := c.session.run(features)
	if err != nil {
		return nil, err
	}
	return probabilities(out, c.activation), nil
}

func (c *ProbaClassifier) Close() {
	c.session.Close()
}

var (
	_ port.Regressor               = (*Regressor)(nil)
	_ port.ProbabilisticClassifier = (*ProbaClassifier)(nil)
)
