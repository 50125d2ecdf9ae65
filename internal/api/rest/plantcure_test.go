package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	app "agriassure/internal/application"
	"agriassure/internal/infrastructure/vision"
)

type triage struct {
	plant, health, disease *countingClassifier
}

func newPlantCure(t *testing.T, tr triage) *PlantCureHandler {
	t.Helper()
	return NewPlantCureHandler(app.NewPlantTriage(vision.NewDecoder(), tr.plant, tr.health, tr.disease))
}

func decodeString(t *testing.T, body []byte) string {
	t.Helper()
	var s string
	require.NoError(t, json.Unmarshal(body, &s))
	return s
}

func TestPlantCure_Predict(t *testing.T) {
	mustNot := errors.New("must not be called")

	tests := []struct {
		name        string
		tr          triage
		want        string
		wantDisease int32
	}{
		{
			name: "non plant",
			tr:   triage{&countingClassifier{label: "NONPLANT"}, &countingClassifier{err: mustNot}, &countingClassifier{err: mustNot}},
			want: "CHECK IMAGE: Use Another Image",
		},
		{
			name: "healthy",
			tr:   triage{&countingClassifier{label: "PLANT"}, &countingClassifier{label: "HEALTHY"}, &countingClassifier{err: mustNot}},
			want: "HEALTHY",
		},
		{
			name:        "diseased",
			tr:          triage{&countingClassifier{label: "PLANT"}, &countingClassifier{label: "UNHEALTHY"}, &countingClassifier{label: "Grape_Black_rot"}},
			want:        "Grape Black rot",
			wantDisease: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestServer("plantcure")
			newPlantCure(t, tt.tr).Register(e)

			rec := serve(e, multipartRequest(t, "/predict", PlantUploadField, pngBytes(t)))
			require.Equal(t, http.StatusOK, rec.Code)
			require.Equal(t, tt.want, decodeString(t, rec.Body.Bytes()))
			require.Equal(t, tt.wantDisease, tt.tr.disease.calls.Load())
		})
	}
}

func TestPlantCure_TrailingSlash(t *testing.T) {
	e := newTestServer("plantcure")
	newPlantCure(t, triage{
		&countingClassifier{label: "NONPLANT"}, &countingClassifier{}, &countingClassifier{},
	}).Register(e)

	rec := serve(e, multipartRequest(t, "/predict/", PlantUploadField, pngBytes(t)))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPlantCure_MalformedImage(t *testing.T) {
	tr := triage{&countingClassifier{}, &countingClassifier{}, &countingClassifier{}}
	e := newTestServer("plantcure")
	newPlantCure(t, tr).Register(e)

	rec := serve(e, multipartRequest(t, "/predict", PlantUploadField, []byte("not an image")))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body.Error, "cannot decode image")
	require.EqualValues(t, 0, tr.plant.calls.Load())
}

func TestPlantCure_MissingUpload(t *testing.T) {
	e := newTestServer("plantcure")
	newPlantCure(t, triage{&countingClassifier{}, &countingClassifier{}, &countingClassifier{}}).Register(e)

	rec := serve(e, multipartRequest(t, "/predict", "image", pngBytes(t)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlantCure_InferenceFailure(t *testing.T) {
	e := newTestServer("plantcure")
	newPlantCure(t, triage{
		&countingClassifier{err: errors.New("onnx run failed")}, &countingClassifier{}, &countingClassifier{},
	}).Register(e)

	rec := serve(e, multipartRequest(t, "/predict", PlantUploadField, pngBytes(t)))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body.Error, "onnx run failed")
}
