package models

import "time"

// FeatureOrder is the fixed feature order the classifier artifact was trained
// with. Every consumer of the artifact must supply features in exactly this
// order; the artifact has no schema self-description.
var FeatureOrder = []string{
	"attendance_rate",
	"avg_assignment_score",
	"midterm_score",
	"missing_assignments",
	"participation",
	"lms_hours",
}

// PerformanceRecord represents one term's performance metrics for a student,
// based on the 'performance_records' table
type PerformanceRecord struct {
	ID                 int64     `json:"id" db:"id" example:"1"`
	StudentID          int64     `json:"studentId" db:"student_id" example:"1"`                         // Owning student row ID
	Term               string    `json:"term" db:"term" example:"2025-FALL"`                            // Academic period label
	AttendanceRate     float64   `json:"attendanceRate" db:"attendance_rate" example:"82.5"`            // Percent, 0-100
	AvgAssignmentScore float64   `json:"avgAssignmentScore" db:"avg_assignment_score" example:"71.0"`
	MidtermScore       float64   `json:"midtermScore" db:"midterm_score" example:"64.0"`
	MissingAssignments int       `json:"missingAssignments" db:"missing_assignments" example:"2"`
	Participation      float64   `json:"participation" db:"participation" example:"55.0"`
	LMSHours           float64   `json:"lmsHours" db:"lms_hours" example:"4.5"` // Weekly hours on the learning platform
	FinalGrade         *float64  `json:"finalGrade,omitempty" db:"final_grade" example:"68.0"`
	Passed             *bool     `json:"passed,omitempty" db:"passed" example:"true"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
}

// FeatureVector extracts the record's numeric features in FeatureOrder.
func (r *PerformanceRecord) FeatureVector() []float64 {
	return []float64{
		r.AttendanceRate,
		r.AvgAssignmentScore,
		r.MidtermScore,
		float64(r.MissingAssignments),
		r.Participation,
		r.LMSHours,
	}
}
