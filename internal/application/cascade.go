package app

import (
	"context"
	"errors"
	"fmt"
	"image"

	"agriassure/internal/domain/entity"
	"agriassure/internal/domain/port"
)

const (
	DefaultNonPlantLabel = "NONPLANT"
	DefaultHealthyLabel  = "HEALTHY"
)

// Outcome is what a stage decided: stop with Result, or hand the image to the next stage.
type Outcome struct {
	Result   entity.PredictionResult
	Terminal bool
}

// Continue hands the image to the next stage.
func Continue() Outcome { return Outcome{} }

// Stop ends the cascade with r.
func Stop(r entity.PredictionResult) Outcome { return Outcome{Result: r, Terminal: true} }

// Stage is one step of the triage cascade.
type Stage interface {
	Name() string
	Run(ctx context.Context, img image.Image) (Outcome, error)
}

// PlantGate stops the cascade when the image does not show a plant.
type PlantGate struct {
	Classifier    port.ImageClassifier
	NonPlantLabel string
}

func (g *PlantGate) Name() string { return "plant-gate" }

func (g *PlantGate) Run(ctx context.Context, img image.Image) (Outcome, error) {
	p, err := g.Classifier.Classify(ctx, img)
	if err != nil {
		return Outcome{}, err
	}
	// argmax only: a narrow "plant" verdict passes the gate like a confident one
	if p.Is(g.NonPlantLabel) {
		return Stop(entity.NonPlant()), nil
	}
	return Continue(), nil
}

// HealthGate stops the cascade when the plant is healthy.
type HealthGate struct {
	Classifier   port.ImageClassifier
	HealthyLabel string
}

func (g *HealthGate) Name() string { return "health-gate" }

func (g *HealthGate) Run(ctx context.Context, img image.Image) (Outcome, error) {
	p, err := g.Classifier.Classify(ctx, img)
	if err != nil {
		return Outcome{}, err
	}
	if p.Is(g.HealthyLabel) {
		return Stop(entity.Healthy()), nil
	}
	return Continue(), nil
}

// DiseaseStage always terminates with the best-scoring disease class.
type DiseaseStage struct {
	Classifier port.ImageClassifier
}

func (s *DiseaseStage) Name() string { return "disease" }

func (s *DiseaseStage) Run(ctx context.Context, img image.Image) (Outcome, error) {
	p, err := s.Classifier.Classify(ctx, img)
	if err != nil {
		return Outcome{}, err
	}
	return Stop(entity.Disease(p.Label)), nil
}

// CascadeService runs the triage stages in order on one decoded image.
type CascadeService struct {
	decoder port.ImageDecoder
	stages  []Stage
}

// NewCascadeService builds a cascade from explicit stages.
func NewCascadeService(decoder port.ImageDecoder, stages ...Stage) *CascadeService {
	return &CascadeService{
		decoder: decoder,
		stages:  stages,
	}
}

// NewPlantTriage wires the plant-detector, health and disease classifiers in that order.
func NewPlantTriage(decoder port.ImageDecoder, plant, health, disease port.ImageClassifier) *CascadeService {
	return NewCascadeService(decoder,
		&PlantGate{Classifier: plant, NonPlantLabel: DefaultNonPlantLabel},
		&HealthGate{Classifier: health, HealthyLabel: DefaultHealthyLabel},
		&DiseaseStage{Classifier: disease},
	)
}

// Classify decodes the upload and runs the stages until one of them terminates.
func (s *CascadeService) Classify(ctx context.Context, data []byte) (entity.PredictionResult, error) {
	img, err := s.decoder.Decode(data)
	if err != nil {
		if !errors.Is(err, entity.ErrDecode) {
			err = fmt.Errorf("%w: %w", entity.ErrDecode, err)
		}
		return entity.Failed(err), err
	}

	for _, stage := range s.stages {
		out, err := stage.Run(ctx, img)
		if err != nil {
			err = fmt.Errorf("%w: %s: %w", entity.ErrInference, stage.Name(), err)
			return entity.Failed(err), err
		}
		if out.Terminal {
			return out.Result, nil
		}
	}

	err = fmt.Errorf("%w: no stage produced a result", entity.ErrInference)
	return entity.Failed(err), err
}
