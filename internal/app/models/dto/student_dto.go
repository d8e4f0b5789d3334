package dto

import "github.com/eduinsight/eduinsight/internal/app/models"

// Prediction status values used on the list page and as a filter parameter.
const (
	StatusAtRisk         = "at_risk"
	StatusPerformingWell = "performing_well"
)

// CreateStudentRequest represents student creation data
type CreateStudentRequest struct {
	StudentID string  `json:"studentId" binding:"required,max=50"`
	FullName  string  `json:"fullName" binding:"required,max=200"`
	Age       *int    `json:"age,omitempty" binding:"omitempty,gt=0"`
	Gender    *string `json:"gender,omitempty" binding:"omitempty,max=20"`
}

// UpdateStudentRequest represents student update data
type UpdateStudentRequest struct {
	StudentID string  `json:"studentId" binding:"required,max=50"`
	FullName  string  `json:"fullName" binding:"required,max=200"`
	Age       *int    `json:"age,omitempty" binding:"omitempty,gt=0"`
	Gender    *string `json:"gender,omitempty" binding:"omitempty,max=20"`
}

// StudentStatus pairs a student with their latest record and threshold-based
// prediction status.
type StudentStatus struct {
	Student      *models.Student           `json:"student"`
	LatestRecord *models.PerformanceRecord `json:"latestRecord,omitempty"`
	Status       string                    `json:"status,omitempty" enums:"at_risk,performing_well"`
}

// StudentListResponse represents a filtered, paginated student list
type StudentListResponse struct {
	Students []StudentStatus `json:"students"`
	PaginationInfo
}
