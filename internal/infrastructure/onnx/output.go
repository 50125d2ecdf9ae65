package onnx

import (
	"fmt"
	"math"
)

// topClass picks the best class of a classifier output.
// A single sigmoid logit is a binary decision: class 1 only above 0.5.
func topClass(out []float32, act Activation) (int, float32, error) {
	if len(out) == 0 {
		return 0, 0, fmt.Errorf("empty model output")
	}

	if act == ActivationSigmoid && len(out) == 1 {
		p := sigmoid(out[0])
		if p > 0.5 {
			return 1, p, nil
		}
		return 0, 1 - p, nil
	}

	scores := out
	switch act {
	case ActivationSoftmax:
		scores = softmax(out)
	case ActivationSigmoid:
		scores = make([]float32, len(out))
		for i, v := range out {
			scores[i] = sigmoid(v)
		}
	}

	best := 0
	for i, v := range scores {
		if v > scores[best] {
			best = i
		}
	}
	return best, scores[best], nil
}

// probabilities turns a raw output vector into class probabilities.
// A single sigmoid logit becomes the pair [1-p, p].
func probabilities(out []float32, act Activation) []float64 {
	switch {
	case len(out) == 0:
		return nil
	case act == ActivationSigmoid && len(out) == 1:
		p := float64(sigmoid(out[0]))
		return []float64{1 - p, p}
	case act == ActivationSoftmax:
		out = softmax(out)
	case act == ActivationSigmoid:
		scores := make([]float32, len(out))
		for i, v := range out {
			scores[i] = sigmoid(v)
		}
		out = scores
	}
	proba := make([]float64, len(out))
	for i, v := range out {
		proba[i] = float64(v)
	}
	return proba
}

func sigmoid(x float32) float32 {
	return float32(1 / (1 + math.Exp(-float64(x))))
}

func softmax(x []float32) []float32 {
	maxVal := x[0]
	for _, v := range x {
		if v > maxVal {
			maxVal = v
		}
	}
	out := make([]float32, len(x))
	var sum float64
	for i, v := range x {
		e := math.Exp(float64(v - maxVal))
		out[i] = float32(e)
		sum += e
	}
	for i := range out {
		out[i] = float32(float64(out[i]) / sum)
	}
	return out
}
