package rest

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// LogHandlerFunc logs every request and its outcome through the echo logger.
func LogHandlerFunc(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		meth := c.Request().Method
		path := c.Request().URL
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		begin := time.Now()
		c.Logger().Debugf("< request [%s] %s %s", rid, meth, path)

		err := next(c)

		status := c.Response().Status
		if err != nil {
			status = statusOf(err)
		}
		c.Logger().Infof(
			"> response [%s] %s %s status = %d in %v / error = %v",
			rid, meth, path, status, time.Since(begin), err,
		)
		return err
	}
}

// SetLevel maps debug|info|warn|error|off to the echo logger level.
func SetLevel(e *echo.Echo, loglevel string) {
	switch strings.ToLower(loglevel) {
	case "debug":
		e.Logger.SetLevel(log.DEBUG)
	case "info":
		e.Logger.SetLevel(log.INFO)
	case "warn", "":
		e.Logger.SetLevel(log.WARN)
	case "error":
		e.Logger.SetLevel(log.ERROR)
	case "off":
		e.Logger.SetLevel(log.OFF)
	default:
		e.Logger.SetLevel(log.WARN)
		e.Logger.Warnf("unknown loglevel: %s . fall-backed to warn", loglevel)
	}
}
