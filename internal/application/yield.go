package app

import (
	"context"
	"fmt"

	"agriassure/internal/domain/entity"
	"agriassure/internal/domain/port"
)

// YieldEncoders are the label encoders fitted on the categorical yield columns.
type YieldEncoders struct {
	Crop   *entity.LabelEncoder
	Season *entity.LabelEncoder
	State  *entity.LabelEncoder
}

// YieldService predicts crop yield (kg/hectare) with a scaler + regressor pair.
type YieldService struct {
	encoders YieldEncoders
	scaler   *entity.Scaler
	model    port.Regressor
}

func NewYieldService(encoders YieldEncoders, scaler *entity.Scaler, model port.Regressor) *YieldService {
	return &YieldService{
		encoders: encoders,
		scaler:   scaler,
		model:    model,
	}
}

// Encoders exposes the fitted label sets, e.g. for form option lists.
func (s *YieldService) Encoders() YieldEncoders {
	return s.encoders
}

// Predict checks every category before the model is touched.
func (s *YieldService) Predict(ctx context.Context, in entity.YieldInput) (float64, error) {
	crop, err := s.encoders.Crop.Encode(in.Crop)
	if err != nil {
		return 0, err
	}
	season, err := s.encoders.Season.Encode(in.Season)
	if err != nil {
		return 0, err
	}
	state, err := s.encoders.State.Encode(in.State)
	if err != nil {
		return 0, err
	}

	features, err := s.scaler.Transform([]float64{
		float64(crop), float64(season), float64(state),
		float64(in.Area), float64(in.Production),
		in.AnnualRainfall, in.Fertilizer, in.Pesticide,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", entity.ErrInference, err)
	}

	y, err := s.model.Predict(ctx, features)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", entity.ErrInference, err)
	}
	return y, nil
}
