package onnx

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"agriassure/internal/domain/entity"
	"agriassure/internal/infrastructure/vision"
)

// Activation tells how to read a classifier output vector.
type Activation string

const (
	ActivationNone    Activation = "none"
	ActivationSoftmax Activation = "softmax"
	ActivationSigmoid Activation = "sigmoid"
)

type TensorSpec struct {
	Name  string  `yaml:"name"`
	Shape []int64 `yaml:"shape"`
}

// Size is the number of elements of the tensor.
func (t TensorSpec) Size() int {
	n := 1
	for _, d := range t.Shape {
		n *= int(d)
	}
	return n
}

type ImageSpec struct {
	Size int       `yaml:"size"`
	Mean []float32 `yaml:"mean"`
	Std  []float32 `yaml:"std"`
}

type ScalerSpec struct {
	Mean  []float64 `yaml:"mean"`
	Scale []float64 `yaml:"scale"`
}

// Manifest describes one model artifact and the preprocessing fitted with it.
type Manifest struct {
	Model      string              `yaml:"model"`
	Input      TensorSpec          `yaml:"input"`
	Output     TensorSpec          `yaml:"output"`
	Labels     []string            `yaml:"labels"`
	Activation Activation          `yaml:"activation"`
	Image      *ImageSpec          `yaml:"image"`
	Features   []string            `yaml:"features"`
	Scaler     *ScalerSpec         `yaml:"scaler"`
	Categories map[string][]string `yaml:"categories"`

	path string
}

// LoadManifest reads a manifest and checks that the model file it names exists.
// The model path is resolved against the manifest directory.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	m.path = path
	if m.Activation == "" {
		m.Activation = ActivationNone
	}

	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	if _, err := os.Stat(m.ModelPath()); err != nil {
		return nil, fmt.Errorf("model file for %s: %w", path, err)
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if m.Model == "" {
		return fmt.Errorf("model is required")
	}
	if m.Input.Name == "" || len(m.Input.Shape) == 0 {
		return fmt.Errorf("input name and shape are required")
	}
	if m.Output.Name == "" || len(m.Output.Shape) == 0 {
		return fmt.Errorf("output name and shape are required")
	}
	switch m.Activation {
	case ActivationNone, ActivationSoftmax, ActivationSigmoid:
	default:
		return fmt.Errorf("unknown activation %q", m.Activation)
	}
	if m.Image != nil {
		if len(m.Image.Mean) != 3 || len(m.Image.Std) != 3 {
			return fmt.Errorf("image mean and std need 3 channels")
		}
		if want := 3 * m.Image.Size * m.Image.Size; want != m.Input.Size() {
			return fmt.Errorf("image size %d does not fit input shape %v", m.Image.Size, m.Input.Shape)
		}
	}
	if m.Scaler != nil {
		if len(m.Scaler.Mean) != len(m.Scaler.Scale) {
			return fmt.Errorf("scaler mean and scale differ in length")
		}
		if len(m.Scaler.Mean) != m.Input.Size() {
			return fmt.Errorf("scaler has %d features, input takes %d", len(m.Scaler.Mean), m.Input.Size())
		}
	}
	return nil
}

// Path is the manifest file itself.
func (m *Manifest) Path() string { return m.path }

func (m *Manifest) ModelPath() string {
	if filepath.IsAbs(m.Model) {
		return m.Model
	}
	return filepath.Join(filepath.Dir(m.path), m.Model)
}

// Files lists the files a process depends on for this artifact.
func (m *Manifest) Files() []string {
	return []string{m.path, m.ModelPath()}
}

// Transform is the image preparation for this model, or the default one.
func (m *Manifest) Transform() vision.Transform {
	if m.Image == nil {
		return vision.DefaultTransform()
	}
	t := vision.Transform{Size: m.Image.Size}
	copy(t.Mean[:], m.Image.Mean)
	copy(t.Std[:], m.Image.Std)
	return t
}

// ScalerEntity returns the fitted scaler, or an identity scaler over the input width.
func (m *Manifest) ScalerEntity() *entity.Scaler {
	if m.Scaler != nil {
		return &entity.Scaler{Mean: m.Scaler.Mean, Scale: m.Scaler.Scale}
	}
	n := m.Input.Size()
	s := &entity.Scaler{Mean: make([]float64, n), Scale: make([]float64, n)}
	for i := range s.Scale {
		s.Scale[i] = 1
	}
	return s
}

// Encoder returns the label encoder fitted for a categorical field.
func (m *Manifest) Encoder(field string) (*entity.LabelEncoder, error) {
	classes, ok := m.Categories[field]
	if !ok || len(classes) == 0 {
		return nil, fmt.Errorf("manifest %s has no categories for %q", m.path, field)
	}
	return entity.NewLabelEncoder(field, classes), nil
}

// LabelEncoder returns the encoder over the output labels.
func (m *Manifest) LabelEncoder(field string) (*entity.LabelEncoder, error) {
	if len(m.Labels) == 0 {
		return nil, fmt.Errorf("manifest %s has no labels", m.path)
	}
	return entity.NewLabelEncoder(field, m.Labels), nil
}
