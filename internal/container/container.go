package container

import (
	app "agriassure/internal/application"
	"agriassure/internal/domain/entity"
	"agriassure/internal/domain/port"
)

// Deps are the model handles and adapters a process was started with.
// Services whose dependencies are missing stay nil.
type Deps struct {
	Decoder       port.ImageDecoder
	PlantGate     port.ImageClassifier
	HealthGate    port.ImageClassifier
	DiseaseModel  port.ImageClassifier
	NonPlantLabel string
	HealthyLabel  string
	YieldEncoders app.YieldEncoders
	YieldScaler   *entity.Scaler
	YieldModel    port.Regressor
	CropLabels    *entity.LabelEncoder
	CropScaler    *entity.Scaler
	CropModel     port.ProbabilisticClassifier
	Weather       port.WeatherProvider
	SessionRepo   port.SessionRepository
}

type Container struct {
	Cascade  *app.CascadeService
	Sessions *app.SessionService
	Yield    *app.YieldService
	Crops    *app.CropService
	Weather  *app.WeatherService
}

func New(d Deps) *Container {
	c := &Container{}

	if d.Decoder != nil && d.PlantGate != nil && d.HealthGate != nil && d.DiseaseModel != nil {
		nonPlant, healthy := d.NonPlantLabel, d.HealthyLabel
		if nonPlant == "" {
			nonPlant = app.DefaultNonPlantLabel
		}
		if healthy == "" {
			healthy = app.DefaultHealthyLabel
		}
		c.Cascade = app.NewCascadeService(d.Decoder,
			&app.PlantGate{Classifier: d.PlantGate, NonPlantLabel: nonPlant},
			&app.HealthGate{Classifier: d.HealthGate, HealthyLabel: healthy},
			&app.DiseaseStage{Classifier: d.DiseaseModel},
		)
	}
	if d.SessionRepo != nil {
		c.Sessions = app.NewSessionService(d.SessionRepo, c.Cascade)
	}
	if d.YieldModel != nil && d.YieldScaler != nil {
		c.Yield = app.NewYieldService(d.YieldEncoders, d.YieldScaler, d.YieldModel)
	}
	if d.CropModel != nil && d.CropLabels != nil && d.CropScaler != nil {
		c.Crops = app.NewCropService(d.CropLabels, d.CropScaler, d.CropModel)
	}
	if d.Weather != nil {
		c.Weather = app.NewWeatherService(d.Weather)
	}

	return c
}
