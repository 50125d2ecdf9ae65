package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"agriassure/internal/domain/entity"
)

func newYieldService(model *stubRegressor) *YieldService {
	return NewYieldService(YieldEncoders{
		Crop:   entity.NewLabelEncoder("crop", []string{"Maize", "Rice", "Wheat"}),
		Season: entity.NewLabelEncoder("season", []string{"Kharif", "Rabi"}),
		State:  entity.NewLabelEncoder("state", []string{"Assam", "Punjab"}),
	}, &entity.Scaler{
		Mean:  []float64{0, 0, 0, 0, 0, 0, 0, 0},
		Scale: []float64{1, 1, 1, 1, 1, 1, 1, 1},
	}, model)
}

func TestYieldService_Predict(t *testing.T) {
	model := &stubRegressor{y: 2.345}
	svc := newYieldService(model)

	y, err := svc.Predict(context.Background(), entity.YieldInput{
		Crop: "Wheat", Season: "Rabi", State: "Punjab",
		Area: 100, Production: 250, AnnualRainfall: 650.5, Fertilizer: 10, Pesticide: 1.5,
	})
	require.NoError(t, err)
	require.Equal(t, 2.345, y)
	require.Equal(t, 1, model.calls)
	require.Equal(t, []float32{2, 1, 1, 100, 250, 650.5, 10, 1.5}, model.got)
}

func TestYieldService_UnknownCategorySkipsModel(t *testing.T) {
	cases := []struct {
		name  string
		in    entity.YieldInput
		field string
	}{
		{"crop", entity.YieldInput{Crop: "Quinoa", Season: "Rabi", State: "Punjab"}, "crop"},
		{"season", entity.YieldInput{Crop: "Rice", Season: "Monsoon", State: "Punjab"}, "season"},
		{"state", entity.YieldInput{Crop: "Rice", Season: "Rabi", State: "Atlantis"}, "state"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			model := &stubRegressor{}
			svc := newYieldService(model)

			_, err := svc.Predict(context.Background(), tc.in)
			var unknown *entity.UnknownCategoryError
			require.ErrorAs(t, err, &unknown)
			require.Equal(t, tc.field, unknown.Field)
			require.Equal(t, 0, model.calls)
		})
	}
}

func newCropService(model *stubProba) *CropService {
	return NewCropService(
		entity.NewLabelEncoder("crop", []string{"apple", "banana", "coffee", "maize", "rice", "mango"}),
		&entity.Scaler{Mean: make([]float64, 7), Scale: []float64{1, 1, 1, 1, 1, 1, 1}},
		model,
	)
}

var sample = entity.SoilSample{N: 90, P: 42, K: 43, Temperature: 20.88, Humidity: 82, PH: 6.5, Rainfall: 202.94}

func TestCropService_Recommend(t *testing.T) {
	svc := newCropService(&stubProba{proba: []float64{0.1, 0.05, 0.05, 0.1, 0.6, 0.1}})

	crop, err := svc.Recommend(context.Background(), sample)
	require.NoError(t, err)
	require.Equal(t, "rice", crop)
}

func TestCropService_TopK(t *testing.T) {
	svc := newCropService(&stubProba{proba: []float64{0.12346, 0.0, 0.2, 0.12346, 0.5, 0.05656}})

	ranked, err := svc.TopK(context.Background(), sample, 5)
	require.NoError(t, err)
	require.Len(t, ranked, 5)
	require.Equal(t, []entity.CropRanking{
		{Rank: 1, Crop: "rice", Probability: 0.5},
		{Rank: 2, Crop: "coffee", Probability: 0.2},
		{Rank: 3, Crop: "apple", Probability: 0.1235},
		{Rank: 4, Crop: "maize", Probability: 0.1235},
		{Rank: 5, Crop: "mango", Probability: 0.0566},
	}, ranked)
}

func TestCropService_InvalidSampleSkipsModel(t *testing.T) {
	model := &stubProba{proba: []float64{1}}
	svc := newCropService(model)

	bad := sample
	bad.Rainfall = -1
	_, err := svc.TopK(context.Background(), bad, 5)
	var verr *entity.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, 0, model.calls)
}

func TestCropService_ModelFailure(t *testing.T) {
	svc := newCropService(&stubProba{err: errors.New("boom")})

	_, err := svc.Recommend(context.Background(), sample)
	require.ErrorIs(t, err, entity.ErrInference)
}
