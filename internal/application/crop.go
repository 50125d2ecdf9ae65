package app

import (
	"context"
	"fmt"
	"math"
	"sort"

	"agriassure/internal/domain/entity"
	"agriassure/internal/domain/port"
)

// CropService recommends crops from soil and weather readings.
type CropService struct {
	labels *entity.LabelEncoder
	scaler *entity.Scaler
	model  port.ProbabilisticClassifier
}

func NewCropService(labels *entity.LabelEncoder, scaler *entity.Scaler, model port.ProbabilisticClassifier) *CropService {
	return &CropService{
		labels: labels,
		scaler: scaler,
		model:  model,
	}
}

// Recommend returns the single most probable crop.
func (s *CropService) Recommend(ctx context.Context, sample entity.SoilSample) (string, error) {
	ranked, err := s.TopK(ctx, sample, 1)
	if err != nil {
		return "", err
	}
	return ranked[0].Crop, nil
}

// TopK returns the k most probable crops, best first. Equal probabilities keep class order.
func (s *CropService) TopK(ctx context.Context, sample entity.SoilSample, k int) ([]entity.CropRanking, error) {
	if err := sample.Validate(); err != nil {
		return nil, err
	}
	features, err := s.scaler.Transform(sample.Features())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrInference, err)
	}
	proba, err := s.model.PredictProba(ctx, features)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrInference, err)
	}
	if len(proba) == 0 {
		return nil, fmt.Errorf("%w: empty probability vector", entity.ErrInference)
	}

	idx := make([]int, len(proba))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return proba[idx[a]] > proba[idx[b]] })

	if k <= 0 || k > len(idx) {
		k = len(idx)
	}
	out := make([]entity.CropRanking, 0, k)
	for rank, i := range idx[:k] {
		crop, err := s.labels.Decode(i)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", entity.ErrInference, err)
		}
		out = append(out, entity.CropRanking{
			Rank:        rank + 1,
			Crop:        crop,
			Probability: math.Round(proba[i]*1e4) / 1e4,
		})
	}
	return out, nil
}
