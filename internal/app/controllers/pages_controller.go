package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduinsight/eduinsight/internal/app/services"
	"github.com/eduinsight/eduinsight/internal/pkg/apperrors"
	"github.com/eduinsight/eduinsight/internal/pkg/helpers"
	"github.com/eduinsight/eduinsight/internal/pkg/logger"
)

// PagesController renders the server-side HTML views. The pages read the
// same services as the JSON API so the numbers always agree.
type PagesController struct {
	dashboardService services.DashboardService
	studentService   *services.StudentService
}

// NewPagesController creates a new PagesController
func NewPagesController(dashboardService services.DashboardService, studentService *services.StudentService) *PagesController {
	return &PagesController{
		dashboardService: dashboardService,
		studentService:   studentService,
	}
}

// Dashboard renders the landing page with dataset-wide statistics.
func (c *PagesController) Dashboard(ctx *gin.Context) {
	stats, err := c.dashboardService.GetStats(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to compute dashboard statistics")
		ctx.HTML(http.StatusInternalServerError, "dashboard.html", gin.H{
			"Title": "Dashboard",
			"Error": "Could not load dashboard statistics",
		})
		return
	}

	ctx.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Title": "Dashboard",
		"Stats": stats,
	})
}

// StudentList renders the searchable, filterable student list.
func (c *PagesController) StudentList(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	search := ctx.Query("search")
	status := ctx.Query("status")

	list, err := c.studentService.ListStudents(ctx, search, status, page, size)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidationFailed) {
			// An unknown status filter falls back to the unfiltered list.
			list, err = c.studentService.ListStudents(ctx, search, "", page, size)
		}
		if err != nil {
			logger.Error().Err(err).Msg("Failed to list students")
			ctx.HTML(http.StatusInternalServerError, "student_list.html", gin.H{
				"Title": "Students",
				"Error": "Could not load students",
			})
			return
		}
	}

	ctx.HTML(http.StatusOK, "student_list.html", gin.H{
		"Title":      "Students",
		"Students":   list.Students,
		"Pagination": list.PaginationInfo,
		"Search":     search,
		"Status":     status,
	})
}

// StudentDetail renders a student's profile with their record history.
func (c *PagesController) StudentDetail(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			ctx.HTML(http.StatusNotFound, "student_detail.html", gin.H{
				"Title": "Student not found",
				"Error": "Student not found",
			})
			return
		}
		logger.Error().Err(err).Int64("studentId", id).Msg("Failed to load student")
		ctx.HTML(http.StatusInternalServerError, "student_detail.html", gin.H{
			"Title": "Student",
			"Error": "Could not load student",
		})
		return
	}

	var status string
	if latest := student.LatestRecord(); latest != nil {
		status = services.StatusFor(latest)
	}

	ctx.HTML(http.StatusOK, "student_detail.html", gin.H{
		"Title":   student.FullName,
		"Student": student,
		"Status":  status,
	})
}
