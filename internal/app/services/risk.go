package services

import (
	"github.com/eduinsight/eduinsight/internal/app/models"
	"github.com/eduinsight/eduinsight/internal/app/models/dto"
)

// Risk thresholds applied to a student's latest performance record.
const (
	attendanceThreshold = 75
	assignmentThreshold = 60
	midtermThreshold    = 50
	lmsHoursThreshold   = 2
)

// IsAtRisk reports whether a record fails any of the three core thresholds:
// attendance, assignment average or midterm. LMS hours and participation are
// deliberately not part of this predicate even though the recommendation
// rules consider LMS hours; the dashboard tally and list-page filter depend
// on exactly these three conditions. Keep this separate from
// GenerateRecommendations.
func IsAtRisk(record *models.PerformanceRecord) bool {
	return record.AttendanceRate < attendanceThreshold ||
		record.AvgAssignmentScore < assignmentThreshold ||
		record.MidtermScore < midtermThreshold
}

// GenerateRecommendations maps a record's raw metrics to advisory text.
// Conditions are evaluated in a fixed order and every triggered condition
// contributes its advisory; the result is never empty.
func GenerateRecommendations(record *models.PerformanceRecord) []string {
	var recs []string

	if record.AttendanceRate < attendanceThreshold {
		recs = append(recs, "Attendance is low. Watch recorded lectures + arrange weekly catch-up with tutor.")
	}
	if record.AvgAssignmentScore < assignmentThreshold {
		recs = append(recs, "Focus on assignment practice: try 3 weekly practice problems and seek feedback.")
	}
	if record.MidtermScore < midtermThreshold {
		recs = append(recs, "Midterm performance low: revise core concepts and schedule 2 tutoring sessions.")
	}
	if record.LMSHours < lmsHoursThreshold {
		recs = append(recs, "Increase LMS engagement: spend at least 4 hours/week on course materials.")
	}

	if len(recs) == 0 {
		recs = append(recs, "Keep up the good work. Maintain current study habits and continue practice.")
	}

	return recs
}

// StatusFor returns the list-page status string for a record.
func StatusFor(record *models.PerformanceRecord) string {
	if IsAtRisk(record) {
		return dto.StatusAtRisk
	}
	return dto.StatusPerformingWell
}
