package dto

// CreateRecordRequest represents performance record creation data. Attendance
// is a percentage; the remaining metrics are unbounded scores.
type CreateRecordRequest struct {
	Term               string   `json:"term" binding:"required,max=50"`
	AttendanceRate     float64  `json:"attendanceRate" binding:"min=0,max=100"`
	AvgAssignmentScore float64  `json:"avgAssignmentScore" binding:"min=0"`
	MidtermScore       float64  `json:"midtermScore" binding:"min=0"`
	MissingAssignments int      `json:"missingAssignments" binding:"min=0"`
	Participation      float64  `json:"participation" binding:"min=0"`
	LMSHours           float64  `json:"lmsHours" binding:"min=0"`
	FinalGrade         *float64 `json:"finalGrade,omitempty"`
	Passed             *bool    `json:"passed,omitempty"`
}

// UpdateRecordRequest represents performance record update data
type UpdateRecordRequest struct {
	Term               string   `json:"term" binding:"required,max=50"`
	AttendanceRate     float64  `json:"attendanceRate" binding:"min=0,max=100"`
	AvgAssignmentScore float64  `json:"avgAssignmentScore" binding:"min=0"`
	MidtermScore       float64  `json:"midtermScore" binding:"min=0"`
	MissingAssignments int      `json:"missingAssignments" binding:"min=0"`
	Participation      float64  `json:"participation" binding:"min=0"`
	LMSHours           float64  `json:"lmsHours" binding:"min=0"`
	FinalGrade         *float64 `json:"finalGrade,omitempty"`
	Passed             *bool    `json:"passed,omitempty"`
}
