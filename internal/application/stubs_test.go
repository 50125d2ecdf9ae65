package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync/atomic"

	"agriassure/internal/domain/entity"
)

type stubDecoder struct{}

func (stubDecoder) Decode(data []byte) (image.Image, error) {
	if string(data) == "not an image" {
		return nil, fmt.Errorf("%w: unknown format", entity.ErrDecode)
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

type stubClassifier struct {
	label string
	err   error
	calls atomic.Int32
}

func returning(label string) *stubClassifier { return &stubClassifier{label: label} }

func failing(err error) *stubClassifier { return &stubClassifier{err: err} }

func (c *stubClassifier) Classify(ctx context.Context, img image.Image) (entity.Prediction, error) {
	c.calls.Add(1)
	if c.err != nil {
		return entity.Prediction{}, c.err
	}
	return entity.Prediction{Label: c.label, Confidence: 0.51}, nil
}

var errMustNotRun = errors.New("classifier must not be invoked")

type stubRegressor struct {
	y     float64
	calls int
	got   []float32
}

func (r *stubRegressor) Predict(ctx context.Context, features []float32) (float64, error) {
	r.calls++
	r.got = features
	return r.y, nil
}

type stubProba struct {
	proba []float64
	err   error
	calls int
}

func (p *stubProba) PredictProba(ctx context.Context, features []float32) ([]float64, error) {
	p.calls++
	return p.proba, p.err
}

type stubWeather struct {
	w   *entity.CurrentWeather
	err error
}

func (s *stubWeather) Current(ctx context.Context, lat, lon float64) (*entity.CurrentWeather, error) {
	return s.w, s.err
}
