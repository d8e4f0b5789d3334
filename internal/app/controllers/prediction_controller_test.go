package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduinsight/eduinsight/internal/app/models/dto"
	"github.com/eduinsight/eduinsight/internal/pkg/apperrors"
	"github.com/eduinsight/eduinsight/internal/pkg/mlmodel"
)

type stubPredictionService struct {
	resp *dto.PredictionResponse
	err  error
}

func (s *stubPredictionService) PredictForStudent(_ context.Context, _ int64) (*dto.PredictionResponse, error) {
	return s.resp, s.err
}

func predictRouter(svc *stubPredictionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewPredictionController(svc)
	router.GET("/api/students/:id/predict", controller.PredictStudent)
	return router
}

func doPredict(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPredictStudentSuccess(t *testing.T) {
	router := predictRouter(&stubPredictionService{
		resp: &dto.PredictionResponse{
			Student:       "Ada Garcia",
			Prediction:    mlmodel.LabelNotPassed,
			Probabilities: []float64{0.7, 0.3},
			TopFeatures: []mlmodel.FeatureWeight{
				{Name: "attendance_rate", Weight: 0.5},
				{Name: "midterm_score", Weight: 0.3},
				{Name: "lms_hours", Weight: 0.2},
			},
			Recommendations: []string{
				"Attendance is low. Watch recorded lectures + arrange weekly catch-up with tutor.",
			},
		},
	})

	w := doPredict(t, router, "/api/students/1/predict")
	require.Equal(t, http.StatusOK, w.Code)

	// The endpoint answers with a flat body, no envelope.
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotContains(t, body, "data")
	assert.Contains(t, body, "student")
	assert.Contains(t, body, "top_features")

	assert.JSONEq(t,
		`[["attendance_rate", 0.5], ["midterm_score", 0.3], ["lms_hours", 0.2]]`,
		string(body["top_features"]))
}

func TestPredictStudentNullProbabilities(t *testing.T) {
	router := predictRouter(&stubPredictionService{
		resp: &dto.PredictionResponse{
			Student:         "Ada Garcia",
			Prediction:      mlmodel.LabelPassed,
			Recommendations: []string{"Keep up the good work. Maintain current study habits and continue practice."},
		},
	})

	w := doPredict(t, router, "/api/students/1/predict")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "null", string(body["probabilities"]))
}

func TestPredictStudentErrorBodies(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "student not found",
			err:        apperrors.ErrStudentNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error": "Student not found"}`,
		},
		{
			name:       "no performance records",
			err:        apperrors.ErrNoPerformanceRecords,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error": "No performance records for student"}`,
		},
		{
			name:       "model not trained",
			err:        apperrors.ErrModelNotFound,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error": "Model not found. Train model first."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := predictRouter(&stubPredictionService{err: tt.err})
			w := doPredict(t, router, "/api/students/1/predict")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestPredictStudentInvalidID(t *testing.T) {
	router := predictRouter(&stubPredictionService{})
	w := doPredict(t, router, "/api/students/abc/predict")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "Invalid student ID"}`, w.Body.String())
}
