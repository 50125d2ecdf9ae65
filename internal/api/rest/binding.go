package rest

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"agriassure/internal/domain/entity"
)

// Every model input is required. Form bodies go through echo's value binder,
// JSON bodies bind into pointer fields so that an absent field stays nil.

func isForm(c echo.Context) bool {
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	return strings.HasPrefix(ctype, echo.MIMEApplicationForm) || strings.HasPrefix(ctype, echo.MIMEMultipartForm)
}

type presence struct {
	field string
	ok    bool
}

func firstMissing(fields ...presence) error {
	for _, f := range fields {
		if !f.ok {
			return &entity.ValidationError{Field: f.field, Reason: "field required"}
		}
	}
	return nil
}

// formError turns a value binder failure into a ValidationError on the field.
func formError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	var be *echo.BindingError
	if !errors.As(err, &be) {
		return err
	}
	if c.FormValue(be.Field) == "" {
		return &entity.ValidationError{Field: be.Field, Reason: "field required"}
	}
	return &entity.ValidationError{Field: be.Field, Reason: "must be a number"}
}

type soilBody struct {
	N           *int     `json:"n"`
	P           *int     `json:"p"`
	K           *int     `json:"k"`
	Temperature *float64 `json:"temp"`
	Humidity    *float64 `json:"humidity"`
	PH          *float64 `json:"ph"`
	Rainfall    *float64 `json:"rainfall"`
}

func bindSoilSample(c echo.Context) (entity.SoilSample, error) {
	var s entity.SoilSample
	if isForm(c) {
		err := echo.FormFieldBinder(c).
			MustInt("n", &s.N).
			MustInt("p", &s.P).
			MustInt("k", &s.K).
			MustFloat64("temp", &s.Temperature).
			MustFloat64("humidity", &s.Humidity).
			MustFloat64("ph", &s.PH).
			MustFloat64("rainfall", &s.Rainfall).
			BindError()
		return s, formError(c, err)
	}

	var body soilBody
	if err := c.Bind(&body); err != nil {
		return s, err
	}
	if err := firstMissing(
		presence{"n", body.N != nil},
		presence{"p", body.P != nil},
		presence{"k", body.K != nil},
		presence{"temp", body.Temperature != nil},
		presence{"humidity", body.Humidity != nil},
		presence{"ph", body.PH != nil},
		presence{"rainfall", body.Rainfall != nil},
	); err != nil {
		return s, err
	}
	return entity.SoilSample{
		N:           *body.N,
		P:           *body.P,
		K:           *body.K,
		Temperature: *body.Temperature,
		Humidity:    *body.Humidity,
		PH:          *body.PH,
		Rainfall:    *body.Rainfall,
	}, nil
}

type yieldBody struct {
	Crop           *string  `json:"crop"`
	Season         *string  `json:"season"`
	State          *string  `json:"state"`
	Area           *int     `json:"Area"`
	Production     *int     `json:"Production"`
	AnnualRainfall *float64 `json:"Annual_Rainfall"`
	Fertilizer     *float64 `json:"Fertilizer"`
	Pesticide      *float64 `json:"Pesticide"`
}

func nonEmpty(s *string) bool { return s != nil && *s != "" }

func bindYieldInput(c echo.Context) (entity.YieldInput, error) {
	var in entity.YieldInput
	if isForm(c) {
		err := echo.FormFieldBinder(c).
			MustString("crop_input", &in.Crop).
			MustString("season_input", &in.Season).
			MustString("state_input", &in.State).
			MustInt("Area", &in.Area).
			MustInt("Production", &in.Production).
			MustFloat64("Annual_Rainfall", &in.AnnualRainfall).
			MustFloat64("Fertilizer", &in.Fertilizer).
			MustFloat64("Pesticide", &in.Pesticide).
			BindError()
		return in, formError(c, err)
	}

	var body yieldBody
	if err := c.Bind(&body); err != nil {
		return in, err
	}
	if err := firstMissing(
		presence{"crop", nonEmpty(body.Crop)},
		presence{"season", nonEmpty(body.Season)},
		presence{"state", nonEmpty(body.State)},
		presence{"Area", body.Area != nil},
		presence{"Production", body.Production != nil},
		presence{"Annual_Rainfall", body.AnnualRainfall != nil},
		presence{"Fertilizer", body.Fertilizer != nil},
		presence{"Pesticide", body.Pesticide != nil},
	); err != nil {
		return in, err
	}
	return entity.YieldInput{
		Crop:           *body.Crop,
		Season:         *body.Season,
		State:          *body.State,
		Area:           *body.Area,
		Production:     *body.Production,
		AnnualRainfall: *body.AnnualRainfall,
		Fertilizer:     *body.Fertilizer,
		Pesticide:      *body.Pesticide,
	}, nil
}
