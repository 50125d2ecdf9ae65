package port

import "context"

// Regressor predicts a single value from a scaled feature vector.
type Regressor interface {
	Predict(ctx context.Context, features []float32) (float64, error)
}

// ProbabilisticClassifier returns per-class probabilities for a scaled feature vector.
type ProbabilisticClassifier interface {
	PredictProba(ctx context.Context, features []float32) ([]float64, error)
}
