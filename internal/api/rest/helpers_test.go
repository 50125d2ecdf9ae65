package rest

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"agriassure/internal/domain/entity"
)

type countingClassifier struct {
	label string
	err   error
	calls atomic.Int32
}

func (c *countingClassifier) Classify(ctx context.Context, img image.Image) (entity.Prediction, error) {
	c.calls.Add(1)
	if c.err != nil {
		return entity.Prediction{}, c.err
	}
	return entity.Prediction{Label: c.label, Confidence: 0.99}, nil
}

type fixedRegressor struct {
	y     float64
	calls int
}

func (r *fixedRegressor) Predict(ctx context.Context, features []float32) (float64, error) {
	r.calls++
	return r.y, nil
}

type fixedProba []float64

func (p fixedProba) PredictProba(ctx context.Context, features []float32) ([]float64, error) {
	return p, nil
}

type countingProba struct {
	proba fixedProba
	calls int
}

func (p *countingProba) PredictProba(ctx context.Context, features []float32) ([]float64, error) {
	p.calls++
	return p.proba, nil
}

func newTestServer(service string) *echo.Echo {
	e, _ := NewServer(Options{Service: service, LogLevel: "off"})
	return e
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{G: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartRequest(t *testing.T, target, field string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, "leaf.png")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
