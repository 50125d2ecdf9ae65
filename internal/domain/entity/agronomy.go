package entity

// YieldInput holds the fields the yield regressor was trained on.
type YieldInput struct {
	Crop           string  `json:"crop"`
	Season         string  `json:"season"`
	State          string  `json:"state"`
	Area           int     `json:"Area"`
	Production     int     `json:"Production"`
	AnnualRainfall float64 `json:"Annual_Rainfall"`
	Fertilizer     float64 `json:"Fertilizer"`
	Pesticide      float64 `json:"Pesticide"`
}

// SoilSample holds soil nutrients and weather used for crop recommendation.
type SoilSample struct {
	N           int     `json:"n"`
	P           int     `json:"p"`
	K           int     `json:"k"`
	Temperature float64 `json:"temp"`
	Humidity    float64 `json:"humidity"`
	PH          float64 `json:"ph"`
	Rainfall    float64 `json:"rainfall"`
}

// Validate checks the physical bounds of the sample.
func (s SoilSample) Validate() error {
	switch {
	case s.N < 0:
		return &ValidationError{Field: "n", Reason: "must be >= 0"}
	case s.P < 0:
		return &ValidationError{Field: "p", Reason: "must be >= 0"}
	case s.K < 0:
		return &ValidationError{Field: "k", Reason: "must be >= 0"}
	case s.PH < 0 || s.PH > 14:
		return &ValidationError{Field: "ph", Reason: "must be within [0, 14]"}
	case s.Rainfall < 0:
		return &ValidationError{Field: "rainfall", Reason: "must be >= 0"}
	}
	return nil
}

// Features returns the sample in training column order.
func (s SoilSample) Features() []float64 {
	return []float64{float64(s.N), float64(s.P), float64(s.K), s.Temperature, s.Humidity, s.PH, s.Rainfall}
}

// CropRanking is one entry of a ranked recommendation.
type CropRanking struct {
	Rank        int     `json:"rank"`
	Crop        string  `json:"crop"`
	Probability float64 `json:"probability"`
}
