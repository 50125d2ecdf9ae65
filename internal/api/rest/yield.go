package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	app "agriassure/internal/application"
	"agriassure/internal/domain/entity"
)

// YieldHandler serves yield prediction.
type YieldHandler struct {
	yield *app.YieldService
}

func NewYieldHandler(yield *app.YieldService) *YieldHandler {
	return &YieldHandler{yield: yield}
}

// Register adds the JSON and form prediction routes to e.
func (h *YieldHandler) Register(e *echo.Echo) {
	e.GET("/", h.Root)
	e.POST("/predict", h.Predict)
	e.POST("/predict_form", h.Predict)
}

// Root answers the service banner.
func (h *YieldHandler) Root(c echo.Context) error {
	return c.String(http.StatusOK, "YIELD PREDICTION SYSTEM")
}

// Predict takes either a JSON body or form fields, depending on the content type.
// Every field is required; a missing one answers 422 before the model runs.
func (h *YieldHandler) Predict(c echo.Context) error {
	in, err := bindYieldInput(c)
	if err != nil {
		var verr *entity.ValidationError
		if errors.As(err, &verr) {
			return c.String(http.StatusUnprocessableEntity, "ERROR: "+verr.Error())
		}
		return err
	}

	y, err := h.yield.Predict(c.Request().Context(), in)
	if err != nil {
		var unknown *entity.UnknownCategoryError
		if errors.As(err, &unknown) {
			return c.String(http.StatusBadRequest, "ERROR: "+unknown.Error())
		}
		c.Logger().Error(err)
		return c.String(http.StatusInternalServerError, "ERROR: prediction failed")
	}
	return c.String(http.StatusOK, fmt.Sprintf("PREDICTED YIELD (kg/hec ) %.2f", y))
}
