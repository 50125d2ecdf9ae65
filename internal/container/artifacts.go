package container

import (
	"context"
	"fmt"

	"agriassure/config"
	app "agriassure/internal/application"
	"agriassure/internal/infrastructure/artifactwatch"
	"agriassure/internal/infrastructure/onnx"
	"agriassure/internal/infrastructure/openmeteo"
	"agriassure/internal/infrastructure/storage"
	"agriassure/internal/infrastructure/vision"
)

// Manifest file names looked up in the models directory.
const (
	PlantGateManifest  = "plant_gate.yaml"
	HealthGateManifest = "health_gate.yaml"
	DiseaseManifest    = "disease.yaml"
	YieldManifest      = "yield.yaml"
	CropManifest       = "crop.yaml"
)

// Loader builds Deps from model artifacts on disk and remembers what to close
// and which files the process depends on.
type Loader struct {
	cfg     *config.Config
	rt      *onnx.Runtime
	deps    Deps
	files   []string
	closers []func()
}

func NewLoader(cfg *config.Config, rt *onnx.Runtime) *Loader {
	return &Loader{cfg: cfg, rt: rt}
}

func (l *Loader) manifest(name string) (*onnx.Manifest, error) {
	m, err := onnx.LoadManifest(l.cfg.Manifest(name))
	if err != nil {
		return nil, err
	}
	l.files = append(l.files, m.Files()...)
	return m, nil
}

func (l *Loader) imageClassifier(name string) (*onnx.ImageClassifier, error) {
	m, err := l.manifest(name)
	if err != nil {
		return nil, err
	}
	c, err := onnx.NewImageClassifier(l.rt, m)
	if err != nil {
		return nil, err
	}
	l.closers = append(l.closers, c.Close)
	return c, nil
}

// PlantTriage loads the plant-detector, health and disease classifiers.
func (l *Loader) PlantTriage() error {
	plant, err := l.imageClassifier(PlantGateManifest)
	if err != nil {
		return fmt.Errorf("plant gate: %w", err)
	}
	health, err := l.imageClassifier(HealthGateManifest)
	if err != nil {
		return fmt.Errorf("health gate: %w", err)
	}
	disease, err := l.imageClassifier(DiseaseManifest)
	if err != nil {
		return fmt.Errorf("disease classifier: %w", err)
	}

	l.deps.Decoder = vision.NewDecoder()
	l.deps.PlantGate = plant
	l.deps.HealthGate = health
	l.deps.DiseaseModel = disease
	return nil
}

// Yield loads the yield regressor with its scaler and crop/season/state encoders.
func (l *Loader) Yield() error {
	m, err := l.manifest(YieldManifest)
	if err != nil {
		return fmt.Errorf("yield model: %w", err)
	}
	var enc app.YieldEncoders
	if enc.Crop, err = m.Encoder("crop"); err != nil {
		return err
	}
	if enc.Season, err = m.Encoder("season"); err != nil {
		return err
	}
	if enc.State, err = m.Encoder("state"); err != nil {
		return err
	}

	model, err := onnx.NewRegressor(l.rt, m)
	if err != nil {
		return fmt.Errorf("yield model: %w", err)
	}
	l.closers = append(l.closers, model.Close)

	l.deps.YieldEncoders = enc
	l.deps.YieldScaler = m.ScalerEntity()
	l.deps.YieldModel = model
	return nil
}

// Crops loads the crop recommendation classifier with its scaler and label decoder.
func (l *Loader) Crops() error {
	m, err := l.manifest(CropManifest)
	if err != nil {
		return fmt.Errorf("crop model: %w", err)
	}
	labels, err := m.LabelEncoder("crop")
	if err != nil {
		return err
	}
	if labels.Len() != m.Output.Size() {
		return fmt.Errorf("crop model: %d labels for %d outputs", labels.Len(), m.Output.Size())
	}

	model, err := onnx.NewProbaClassifier(l.rt, m)
	if err != nil {
		return fmt.Errorf("crop model: %w", err)
	}
	l.closers = append(l.closers, model.Close)

	l.deps.CropLabels = labels
	l.deps.CropScaler = m.ScalerEntity()
	l.deps.CropModel = model
	return nil
}

// Weather sets up the Open-Meteo client.
func (l *Loader) Weather() {
	l.deps.Weather = openmeteo.NewClient(l.cfg.WeatherBaseURL, l.cfg.WeatherTimeout)
}

// Sessions sets up in-memory chat sessions for the bot.
func (l *Loader) Sessions() {
	l.deps.SessionRepo = storage.NewMemorySessionRepository()
}

// Build assembles the container from everything loaded so far.
func (l *Loader) Build() *Container {
	return New(l.deps)
}

// Files lists every manifest and model file loaded.
func (l *Loader) Files() []string {
	return l.files
}

// StopContext derives the context a service runs under. With WATCH_MODELS set it is
// also canceled when a loaded artifact changes on disk.
func (l *Loader) StopContext(ctx context.Context) (context.Context, func(), error) {
	if !l.cfg.WatchModels || len(l.files) == 0 {
		cctx, cancel := context.WithCancel(ctx)
		return cctx, cancel, nil
	}
	return artifactwatch.UntilModified(ctx, l.files...)
}

// Close releases the model sessions in reverse load order.
func (l *Loader) Close() {
	for i := len(l.closers) - 1; i >= 0; i-- {
		l.closers[i]()
	}
	l.closers = nil
}
