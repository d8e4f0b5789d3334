package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eduinsight/eduinsight/internal/app/models"
	"github.com/eduinsight/eduinsight/internal/app/models/dto"
	"github.com/eduinsight/eduinsight/internal/app/services"
	"github.com/eduinsight/eduinsight/internal/middleware"
)

// RecordController handles performance record operations
type RecordController struct {
	recordService *services.RecordService
}

// NewRecordController creates a new RecordController
func NewRecordController(recordService *services.RecordService) *RecordController {
	return &RecordController{
		recordService: recordService,
	}
}

func recordFromRequest(req *dto.CreateRecordRequest, studentID int64) *models.PerformanceRecord {
	return &models.PerformanceRecord{
		StudentID:          studentID,
		Term:               req.Term,
		AttendanceRate:     req.AttendanceRate,
		AvgAssignmentScore: req.AvgAssignmentScore,
		MidtermScore:       req.MidtermScore,
		MissingAssignments: req.MissingAssignments,
		Participation:      req.Participation,
		LMSHours:           req.LMSHours,
		FinalGrade:         req.FinalGrade,
		Passed:             req.Passed,
	}
}

// CreateRecord adds a performance record for a student
// @Summary Create a performance record
// @Description Adds a new performance record for an existing student
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.CreateRecordRequest true "Record information"
// @Success 201 {object} dto.APIResponse{data=models.PerformanceRecord} "Record created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/records [post]
func (c *RecordController) CreateRecord(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid record data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	record := recordFromRequest(&req, studentID)
	if err := c.recordService.CreateRecord(ctx, record); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      record,
		Timestamp: time.Now(),
	})
}

// ListStudentRecords lists a student's performance records
// @Summary List a student's records
// @Description Retrieves all performance records for a student, newest first
// @Tags records
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.PerformanceRecord} "Records retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/records [get]
func (c *RecordController) ListStudentRecords(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	records, err := c.recordService.GetRecordsByStudent(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      records,
		Timestamp: time.Now(),
	})
}

// GetRecordByID retrieves a single performance record
// @Summary Get record by ID
// @Description Retrieves a specific performance record by its ID
// @Tags records
// @Accept json
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} dto.APIResponse{data=models.PerformanceRecord} "Record retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid record ID"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /records/{id} [get]
func (c *RecordController) GetRecordByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	record, err := c.recordService.GetRecordByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      record,
		Timestamp: time.Now(),
	})
}

// UpdateRecord updates an existing performance record
// @Summary Update record
// @Description Updates an existing performance record
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Param request body dto.UpdateRecordRequest true "Updated record information"
// @Success 200 {object} dto.APIResponse{data=models.PerformanceRecord} "Record updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /records/{id} [put]
func (c *RecordController) UpdateRecord(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid record data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	record := &models.PerformanceRecord{
		ID:                 id,
		Term:               req.Term,
		AttendanceRate:     req.AttendanceRate,
		AvgAssignmentScore: req.AvgAssignmentScore,
		MidtermScore:       req.MidtermScore,
		MissingAssignments: req.MissingAssignments,
		Participation:      req.Participation,
		LMSHours:           req.LMSHours,
		FinalGrade:         req.FinalGrade,
		Passed:             req.Passed,
	}

	if err := c.recordService.UpdateRecord(ctx, record); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      record,
		Timestamp: time.Now(),
	})
}

// DeleteRecord deletes a performance record
// @Summary Delete record
// @Description Deletes a performance record
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 200 {object} dto.APIResponse "Record deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid record ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /records/{id} [delete]
func (c *RecordController) DeleteRecord(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.recordService.DeleteRecord(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"message": "Record deleted successfully"},
		Timestamp: time.Now(),
	})
}
