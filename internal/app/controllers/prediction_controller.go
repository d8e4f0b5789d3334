package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eduinsight/eduinsight/internal/app/models/dto"
	"github.com/eduinsight/eduinsight/internal/app/services"
	"github.com/eduinsight/eduinsight/internal/pkg/apperrors"
	"github.com/eduinsight/eduinsight/internal/pkg/logger"
)

// PredictionController serves the at-risk prediction endpoint. Unlike the
// rest of the API it answers with flat bodies: the prediction payload on
// success and {"error": ...} on failure. Clients of this endpoint depend on
// that exact shape.
type PredictionController struct {
	predictionService services.PredictionService
}

// NewPredictionController creates a new PredictionController
func NewPredictionController(predictionService services.PredictionService) *PredictionController {
	return &PredictionController{
		predictionService: predictionService,
	}
}

// PredictStudent scores a student's latest record with the trained model
// @Summary Predict whether a student is at risk
// @Description Classifies the student's latest performance record with the trained model and returns the label, class probabilities, top contributing features and rule-based recommendations
// @Tags predictions
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.PredictionResponse "Prediction computed successfully"
// @Failure 400 {object} dto.PredictionError "Invalid student ID"
// @Failure 404 {object} dto.PredictionError "Student not found or has no performance records"
// @Failure 500 {object} dto.PredictionError "Model not trained yet or scoring failed"
// @Router /students/{id}/predict [get]
func (c *PredictionController) PredictStudent(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.PredictionError{Error: "Invalid student ID"})
		return
	}

	prediction, err := c.predictionService.PredictForStudent(ctx, id)
	if err != nil {
		c.handlePredictionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, prediction)
}

func (c *PredictionController) handlePredictionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrStudentNotFound):
		ctx.JSON(http.StatusNotFound, dto.PredictionError{Error: "Student not found"})
	case errors.Is(err, apperrors.ErrNoPerformanceRecords):
		ctx.JSON(http.StatusNotFound, dto.PredictionError{Error: "No performance records for student"})
	case errors.Is(err, apperrors.ErrModelNotFound):
		ctx.JSON(http.StatusInternalServerError, dto.PredictionError{Error: "Model not found. Train model first."})
	default:
		logger.Error().Err(err).Msg("Prediction failed")
		ctx.JSON(http.StatusInternalServerError, dto.PredictionError{Error: "Prediction failed"})
	}
}
