package onnx

import (
	"context"
	"fmt"
	"image"

	"agriassure/internal/domain/entity"
	"agriassure/internal/domain/port"
	"agriassure/internal/infrastructure/vision"
)

// ImageClassifier runs an ONNX image model with its own input preparation.
type ImageClassifier struct {
	session    *session
	labels     []string
	activation Activation
	transform  vision.Transform
}

// NewImageClassifier loads the model named by the manifest.
func NewImageClassifier(rt *Runtime, m *Manifest) (*ImageClassifier, error) {
	if len(m.Labels) == 0 {
		return nil, fmt.Errorf("manifest %s: image classifier needs labels", m.Path())
	}
	t := m.Transform()
	if t.Len() != m.Input.Size() {
		return nil, fmt.Errorf("manifest %s: input shape %v does not match %dx%d image", m.Path(), m.Input.Shape, t.Size, t.Size)
	}

	s, err := newSession(rt, m)
	if err != nil {
		return nil, err
	}
	return &ImageClassifier{
		session:    s,
		labels:     m.Labels,
		activation: m.Activation,
		transform:  t,
	}, nil
}

func (c *ImageClassifier) Classify(ctx context.Context, img image.Image) (entity.Prediction, error) {
	input, err := c.transform.Tensor(img)
	if err != nil {
		return entity.Prediction{}, err
	}
	out, err := c.session.run(input)
	if err != nil {
		return entity.Prediction{}, err
	}
	idx, conf, err := topClass(out, c.activation)
	if err != nil {
		return entity.Prediction{}, err
	}
	if idx >= len(c.labels) {
		return entity.Prediction{}, fmt.Errorf("class index %d has no label (%d labels)", idx, len(c.labels))
	}
	return entity.Prediction{Index: idx, Label: c.labels[idx], Confidence: conf}, nil
}

func (c *ImageClassifier) Close() {
	c.session.Close()
}

var _ port.ImageClassifier = (*ImageClassifier)(nil)
