package rest

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	app "agriassure/internal/application"
	"agriassure/internal/domain/entity"
)

// PlantUploadField is the multipart field carrying the plant photo.
const PlantUploadField = "Plant"

// PlantCureHandler serves plant disease detection over HTTP.
type PlantCureHandler struct {
	cascade *app.CascadeService
}

func NewPlantCureHandler(cascade *app.CascadeService) *PlantCureHandler {
	return &PlantCureHandler{cascade: cascade}
}

// Register adds the plantcure routes to e.
func (h *PlantCureHandler) Register(e *echo.Echo) {
	e.GET("/", h.Root)
	e.POST("/predict", h.Predict)
}

// Root reports that the pipeline is up.
func (h *PlantCureHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "plant disease detection pipeline is running"})
}

// Predict answers a JSON string: the disease name, "HEALTHY", or a request for another image.
func (h *PlantCureHandler) Predict(c echo.Context) error {
	header, err := c.FormFile(PlantUploadField)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no image provided; use 'Plant' as the form field name")
	}
	file, err := header.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	c.Logger().Debugf("received %s (%d bytes)", header.Filename, len(data))

	result, err := h.cascade.Classify(c.Request().Context(), data)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, entity.ErrDecode) {
			code = http.StatusBadRequest
		}
		return echo.NewHTTPError(code, result.Reason).SetInternal(err)
	}
	return c.JSON(http.StatusOK, result.Text())
}
