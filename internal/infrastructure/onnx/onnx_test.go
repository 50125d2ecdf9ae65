package onnx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const healthManifest = `
model: mobilenet_health.onnx
input:
  name: input
  shape: [1, 3, 224, 224]
output:
  name: output
  shape: [1, 1]
labels: [HEALTHY, UNHEALTHY]
activation: sigmoid
image:
  size: 224
  mean: [0.5, 0.5, 0.5]
  std: [0.5, 0.5, 0.5]
`

const yieldManifest = `
model: histgradboosting.onnx
input: {name: X, shape: [1, 3]}
output: {name: variable, shape: [1, 1]}
features: [crop, Area, Production]
scaler:
  mean: [10, 100, 1000]
  scale: [2, 10, 100]
categories:
  crop: [Maize, Rice]
`

func writeArtifact(t *testing.T, manifest, model string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o644))
	if model != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, model), []byte("onnx"), 0o644))
	}
	return path
}

func TestLoadManifest_Image(t *testing.T) {
	path := writeArtifact(t, healthManifest, "mobilenet_health.onnx")

	m, err := LoadManifest(path)
	require.NoError(t, err)
	require.Equal(t, ActivationSigmoid, m.Activation)
	require.Equal(t, filepath.Join(filepath.Dir(path), "mobilenet_health.onnx"), m.ModelPath())
	require.Equal(t, []string{path, m.ModelPath()}, m.Files())

	tr := m.Transform()
	require.Equal(t, 224, tr.Size)
	require.Equal(t, [3]float32{0.5, 0.5, 0.5}, tr.Std)
	require.Equal(t, m.Input.Size(), tr.Len())
}

func TestLoadManifest_Tabular(t *testing.T) {
	path := writeArtifact(t, yieldManifest, "histgradboosting.onnx")

	m, err := LoadManifest(path)
	require.NoError(t, err)
	require.Equal(t, ActivationNone, m.Activation)

	enc, err := m.Encoder("crop")
	require.NoError(t, err)
	require.Equal(t, []string{"Maize", "Rice"}, enc.Classes())

	_, err = m.Encoder("season")
	require.Error(t, err)

	scaled, err := m.ScalerEntity().Transform([]float64{12, 110, 1200})
	require.NoError(t, err)
	require.Equal(t, []float32{1, 1, 2}, scaled)
}

func TestLoadManifest_MissingModelFile(t *testing.T) {
	path := writeArtifact(t, healthManifest, "")

	_, err := LoadManifest(path)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadManifest_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
	}{
		{"no model", "input: {name: x, shape: [1]}\noutput: {name: y, shape: [1]}\n"},
		{"no input", "model: m.onnx\noutput: {name: y, shape: [1]}\n"},
		{"bad activation", "model: m.onnx\ninput: {name: x, shape: [1]}\noutput: {name: y, shape: [1]}\nactivation: relu\n"},
		{"image mismatch", "model: m.onnx\ninput: {name: x, shape: [1, 3, 8, 8]}\noutput: {name: y, shape: [1]}\nimage: {size: 4, mean: [0,0,0], std: [1,1,1]}\n"},
		{"scaler mismatch", "model: m.onnx\ninput: {name: x, shape: [1, 2]}\noutput: {name: y, shape: [1]}\nscaler: {mean: [0], scale: [1]}\n"},
		{"not yaml", "model: [unterminated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeArtifact(t, tt.manifest, "m.onnx")
			_, err := LoadManifest(path)
			require.Error(t, err)
		})
	}
}

func TestTopClass(t *testing.T) {
	idx, conf, err := topClass([]float32{0.1, 0.7, 0.2}, ActivationNone)
	require.NoError(t, err)
	require.Equal(t, 1, idx)
	require.InDelta(t, 0.7, conf, 1e-6)

	idx, conf, err = topClass([]float32{0, 0, 1000}, ActivationSoftmax)
	require.NoError(t, err)
	require.Equal(t, 2, idx)
	require.InDelta(t, 1.0, conf, 1e-6)

	_, _, err = topClass(nil, ActivationNone)
	require.Error(t, err)
}

func TestTopClass_SigmoidLogit(t *testing.T) {
	idx, conf, err := topClass([]float32{3}, ActivationSigmoid)
	require.NoError(t, err)
	require.Equal(t, 1, idx)
	require.Greater(t, conf, float32(0.9))

	idx, conf, err = topClass([]float32{-3}, ActivationSigmoid)
	require.NoError(t, err)
	require.Equal(t, 0, idx)
	require.Greater(t, conf, float32(0.9))

	// exactly 0.5 rounds to class 0
	idx, _, err = topClass([]float32{0}, ActivationSigmoid)
	require.NoError(t, err)
	require.Equal(t, 0, idx)
}

func TestSoftmax_SumsToOne(t *testing.T) {
	var sum float32
	for _, v := range softmax([]float32{1, 2, 3, 4}) {
		sum += v
	}
	require.InDelta(t, 1.0, sum, 1e-5)
}

func TestProbabilities(t *testing.T) {
	raw := probabilities([]float32{0.2, 0.8}, ActivationNone)
	require.InDeltaSlice(t, []float64{0.2, 0.8}, raw, 1e-6)

	soft := probabilities([]float32{0, 0, 1000}, ActivationSoftmax)
	require.InDeltaSlice(t, []float64{0, 0, 1}, soft, 1e-6)

	logits := probabilities([]float32{-4, 0, 4}, ActivationSigmoid)
	require.Len(t, logits, 3)
	require.InDelta(t, 0.5, logits[1], 1e-6)
	for _, p := range logits {
		require.GreaterOrEqual(t, p, 0.0)
		require.LessOrEqual(t, p, 1.0)
	}
	require.Greater(t, logits[2], logits[1])
	require.Less(t, logits[0], logits[1])

	binary := probabilities([]float32{0}, ActivationSigmoid)
	require.InDeltaSlice(t, []float64{0.5, 0.5}, binary, 1e-6)

	require.Nil(t, probabilities(nil, ActivationSoftmax))
}
