package models

// RecordWithStudent is a performance record joined with its student's
// identity, used for the dashboard's recent-records panel.
type RecordWithStudent struct {
	PerformanceRecord
	StudentFullName   string `json:"studentFullName" db:"full_name"`
	StudentIdentifier string `json:"studentIdentifier" db:"student_identifier"`
}

// MetricAverages holds dataset-wide arithmetic means over all performance
// records. Every field is 0 when no records exist.
type MetricAverages struct {
	Attendance    float64
	Assignment    float64
	Midterm       float64
	Participation float64
	LMSHours      float64
}
