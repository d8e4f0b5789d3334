package dto

import "github.com/eduinsight/eduinsight/internal/app/models"

// DashboardStats aggregates the dataset-wide numbers shown on the dashboard.
type DashboardStats struct {
	TotalStudents  int  `json:"totalStudents" example:"42"`
	AtRiskStudents int  `json:"atRiskStudents" example:"7"`
	PerformingWell int  `json:"performingWell" example:"30"`
	ModelExists    bool `json:"modelExists" example:"true"`

	// AvgPerformance is the mean of the attendance, assignment and midterm
	// averages, rounded to the nearest integer; 0 when no records exist.
	AvgPerformance int `json:"avgPerformance" example:"68"`

	// Per-metric averages over all records, rounded to one decimal. Each
	// defaults to 0 independently when the store is empty.
	AvgAttendance    float64 `json:"avgAttendance" example:"81.4"`
	AvgAssignment    float64 `json:"avgAssignment" example:"66.2"`
	AvgMidterm       float64 `json:"avgMidterm" example:"58.9"`
	AvgParticipation float64 `json:"avgParticipation" example:"61.3"`
	AvgLMSHours      float64 `json:"avgLmsHours" example:"3.7"`

	// AtRiskList is the at-risk shortlist: at most five students in data
	// store order.
	AtRiskList []StudentStatus `json:"atRiskList"`

	// RecentRecords holds the five most recently created records.
	RecentRecords []*models.RecordWithStudent `json:"recentRecords"`
}
