package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eduinsight/eduinsight/internal/app/models"
	"github.com/eduinsight/eduinsight/internal/app/models/dto"
)

func healthyRecord() *models.PerformanceRecord {
	return &models.PerformanceRecord{
		Term:               "2025-Fall",
		AttendanceRate:     90,
		AvgAssignmentScore: 80,
		MidtermScore:       70,
		MissingAssignments: 0,
		Participation:      8,
		LMSHours:           5,
	}
}

func TestIsAtRisk(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.PerformanceRecord)
		want   bool
	}{
		{"all metrics healthy", func(r *models.PerformanceRecord) {}, false},
		{"low attendance", func(r *models.PerformanceRecord) { r.AttendanceRate = 74.9 }, true},
		{"attendance exactly at threshold", func(r *models.PerformanceRecord) { r.AttendanceRate = 75 }, false},
		{"low assignment average", func(r *models.PerformanceRecord) { r.AvgAssignmentScore = 59.9 }, true},
		{"assignment exactly at threshold", func(r *models.PerformanceRecord) { r.AvgAssignmentScore = 60 }, false},
		{"low midterm", func(r *models.PerformanceRecord) { r.MidtermScore = 49.9 }, true},
		{"midterm exactly at threshold", func(r *models.PerformanceRecord) { r.MidtermScore = 50 }, false},
		{"all three failing", func(r *models.PerformanceRecord) {
			r.AttendanceRate = 10
			r.AvgAssignmentScore = 10
			r.MidtermScore = 10
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := healthyRecord()
			tt.mutate(record)
			assert.Equal(t, tt.want, IsAtRisk(record))
		})
	}
}

// Low LMS hours trigger an advisory but do not make a student at risk. The
// dashboard counts and the recommendation set intentionally disagree here.
func TestIsAtRiskIgnoresLMSHours(t *testing.T) {
	record := healthyRecord()
	record.LMSHours = 0

	assert.False(t, IsAtRisk(record))

	recs := GenerateRecommendations(record)
	assert.Equal(t, []string{
		"Increase LMS engagement: spend at least 4 hours/week on course materials.",
	}, recs)
}

func TestGenerateRecommendationsSingleTrigger(t *testing.T) {
	record := healthyRecord()
	record.AttendanceRate = 60

	assert.Equal(t, []string{
		"Attendance is low. Watch recorded lectures + arrange weekly catch-up with tutor.",
	}, GenerateRecommendations(record))
}

func TestGenerateRecommendationsOrderAndAccumulation(t *testing.T) {
	record := &models.PerformanceRecord{
		AttendanceRate:     50,
		AvgAssignmentScore: 40,
		MidtermScore:       30,
		LMSHours:           1,
	}

	assert.Equal(t, []string{
		"Attendance is low. Watch recorded lectures + arrange weekly catch-up with tutor.",
		"Focus on assignment practice: try 3 weekly practice problems and seek feedback.",
		"Midterm performance low: revise core concepts and schedule 2 tutoring sessions.",
		"Increase LMS engagement: spend at least 4 hours/week on course materials.",
	}, GenerateRecommendations(record))
}

func TestGenerateRecommendationsNeverEmpty(t *testing.T) {
	recs := GenerateRecommendations(healthyRecord())

	assert.Equal(t, []string{
		"Keep up the good work. Maintain current study habits and continue practice.",
	}, recs)
}

func TestGenerateRecommendationsBoundaryValues(t *testing.T) {
	// Threshold values themselves do not trigger advisories.
	record := &models.PerformanceRecord{
		AttendanceRate:     75,
		AvgAssignmentScore: 60,
		MidtermScore:       50,
		LMSHours:           2,
	}

	assert.Equal(t, []string{
		"Keep up the good work. Maintain current study habits and continue practice.",
	}, GenerateRecommendations(record))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, dto.StatusPerformingWell, StatusFor(healthyRecord()))

	atRisk := healthyRecord()
	atRisk.MidtermScore = 20
	assert.Equal(t, dto.StatusAtRisk, StatusFor(atRisk))
}
