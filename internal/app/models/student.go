package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID        int64   `json:"id" db:"id" example:"1"`                        // Unique identifier for the student row
	UserID    *int64  `json:"userId,omitempty" db:"user_id" example:"5"`     // Optional link to a staff account
	StudentID string  `json:"studentId" db:"student_id" example:"S1"`        // Externally assigned unique student identifier
	FullName  string  `json:"fullName" db:"full_name" example:"Jane Doe"`    // Display name
	Age       *int    `json:"age,omitempty" db:"age" example:"21"`           // Optional age
	Gender    *string `json:"gender,omitempty" db:"gender" example:"female"` // Optional gender

	// Relations (populated when needed)
	Records []*PerformanceRecord `json:"records,omitempty"` // Performance records, newest first
}

// LatestRecord returns the most recently created performance record for the
// student, or nil when none exist. Records are kept newest first.
func (s *Student) LatestRecord() *PerformanceRecord {
	if len(s.Records) == 0 {
		return nil
	}
	return s.Records[0]
}
