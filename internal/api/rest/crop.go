package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	app "agriassure/internal/application"
	"agriassure/internal/domain/entity"
)

const topCrops = 5

// CropHandler serves the crop recommendation and farm planner APIs.
type CropHandler struct {
	crops *app.CropService
}

func NewCropHandler(crops *app.CropService) *CropHandler {
	return &CropHandler{crops: crops}
}

// Root answers the service banner.
func (h *CropHandler) Root(c echo.Context) error {
	return c.String(http.StatusOK, "CROP RECOMMENDATION SYSTEM API")
}

// RegisterCropRecommendation serves the form-based, plain text API.
func (h *CropHandler) RegisterCropRecommendation(e *echo.Echo) {
	e.GET("/", h.Root)
	e.POST("/recommend", h.RecommendText)
}

// RegisterFarmPlanner serves the JSON API with the ranked recommendation.
func (h *CropHandler) RegisterFarmPlanner(e *echo.Echo) {
	e.GET("/", h.Root)
	e.POST("/recommend", h.TopCrops)
	e.POST("/recommend-json", h.RecommendJSON)
}

// RecommendText answers "recommended crop:<crop>" as plain text.
func (h *CropHandler) RecommendText(c echo.Context) error {
	s, err := bindSoilSample(c)
	if err != nil {
		var verr *entity.ValidationError
		if errors.As(err, &verr) {
			return c.String(http.StatusUnprocessableEntity, "ERROR: "+verr.Error())
		}
		return err
	}
	crop, err := h.crops.Recommend(c.Request().Context(), s)
	if err != nil {
		return c.String(cropErrorStatus(c, err), "ERROR: "+err.Error())
	}
	return c.String(http.StatusOK, "recommended crop:"+crop)
}

// RecommendJSON answers the best crop as a one-element JSON list.
func (h *CropHandler) RecommendJSON(c echo.Context) error {
	s, err := bindSoilSample(c)
	if err != nil {
		return soilBindError(err)
	}
	crop, err := h.crops.Recommend(c.Request().Context(), s)
	if err != nil {
		return echo.NewHTTPError(cropErrorStatus(c, err), err.Error())
	}
	return c.JSON(http.StatusOK, []string{crop})
}

// TopCropsResponse is the body of the farm planner ranking.
type TopCropsResponse struct {
	TopCrops []entity.CropRanking `json:"top_5_crops"`
}

// TopCrops answers the five most probable crops.
func (h *CropHandler) TopCrops(c echo.Context) error {
	s, err := bindSoilSample(c)
	if err != nil {
		return soilBindError(err)
	}
	ranked, err := h.crops.TopK(c.Request().Context(), s, topCrops)
	if err != nil {
		return echo.NewHTTPError(cropErrorStatus(c, err), err.Error())
	}
	return c.JSON(http.StatusOK, TopCropsResponse{TopCrops: ranked})
}

// soilBindError answers 422 for missing or malformed fields and passes
// other binding failures to the error handler.
func soilBindError(err error) error {
	var verr *entity.ValidationError
	if errors.As(err, &verr) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, verr.Error())
	}
	return err
}

func cropErrorStatus(c echo.Context, err error) int {
	var verr *entity.ValidationError
	if errors.As(err, &verr) {
		return http.StatusUnprocessableEntity
	}
	c.Logger().Error(err)
	return http.StatusInternalServerError
}
