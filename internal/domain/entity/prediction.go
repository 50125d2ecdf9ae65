package entity

import "strings"

// Prediction is the top-scoring class of a single classifier call.
type Prediction struct {
	Index      int
	Label      string
	Confidence float32
}

// Is reports whether the predicted label matches label, ignoring case.
func (p Prediction) Is(label string) bool {
	return strings.EqualFold(p.Label, label)
}

// ResultKind is the terminal outcome of the triage cascade.
type ResultKind string

const (
	ResultNonPlant ResultKind = "non_plant"
	ResultHealthy  ResultKind = "healthy"
	ResultDisease  ResultKind = "disease"
	ResultError    ResultKind = "error"
)

// PredictionResult is what the cascade answers for one image.
type PredictionResult struct {
	Kind    ResultKind
	Disease string // set only for ResultDisease
	Reason  string // set only for ResultError
}

// NonPlant is the result for an image that shows no plant.
func NonPlant() PredictionResult { return PredictionResult{Kind: ResultNonPlant} }

// Healthy is the result for a plant without visible disease.
func Healthy() PredictionResult { return PredictionResult{Kind: ResultHealthy} }

// Disease builds a disease result, turning a class label like "Tomato___Late_blight"
// into its display form.
func Disease(label string) PredictionResult {
	return PredictionResult{Kind: ResultDisease, Disease: DisplayLabel(label)}
}

// Failed carries the error message of a failed classification.
func Failed(err error) PredictionResult {
	return PredictionResult{Kind: ResultError, Reason: err.Error()}
}

// DisplayLabel replaces underscores with spaces.
func DisplayLabel(label string) string {
	return strings.ReplaceAll(label, "_", " ")
}

// Text is the user-facing message for the result.
func (r PredictionResult) Text() string {
	switch r.Kind {
	case ResultNonPlant:
		return "CHECK IMAGE: Use Another Image"
	case ResultHealthy:
		return "HEALTHY"
	case ResultDisease:
		return r.Disease
	default:
		return r.Reason
	}
}
