package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body of every failed JSON endpoint.
type ErrorResponse struct {
	Error any `json:"error"`
}

func statusOf(err error) int {
	var be *echo.BindingError
	if errors.As(err, &be) {
		return be.Code
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

// errorHandler renders errors as {"error": ...}; 5xx are logged with their cause.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := statusOf(err)
	var msg any = http.StatusText(code)
	var be *echo.BindingError
	var he *echo.HTTPError
	switch {
	case errors.As(err, &be):
		msg = be.Message
	case errors.As(err, &he):
		msg = he.Message
	}

	if code >= http.StatusInternalServerError {
		c.Logger().Error(err)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(code)
	} else {
		werr = c.JSON(code, ErrorResponse{Error: msg})
	}
	if werr != nil {
		c.Logger().Error(werr)
	}
}
