package services

import (
	"context"

	"github.com/eduinsight/eduinsight/internal/app/models"
	"github.com/eduinsight/eduinsight/internal/pkg/apperrors"
)

// recordStore is the data access surface the record service needs.
type recordStore interface {
	Create(ctx context.Context, record *models.PerformanceRecord) error
	GetByID(ctx context.Context, id int64) (*models.PerformanceRecord, error)
	GetByStudent(ctx context.Context, studentID int64) ([]*models.PerformanceRecord, error)
	Update(ctx context.Context, record *models.PerformanceRecord) error
	Delete(ctx context.Context, id int64) error
}

// recordStudentSource verifies a student exists before touching records.
type recordStudentSource interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
}

// RecordService handles performance record operations
type RecordService struct {
	records  recordStore
	students recordStudentSource
}

// NewRecordService creates a new record service instance
func NewRecordService(records recordStore, students recordStudentSource) *RecordService {
	return &RecordService{
		records:  records,
		students: students,
	}
}

func validateRecord(record *models.PerformanceRecord) error {
	if record == nil {
		return apperrors.NewValidationError("record is nil")
	}
	if record.Term == "" {
		return apperrors.NewValidationError("term cannot be empty")
	}
	if record.AttendanceRate < 0 || record.AttendanceRate > 100 {
		return apperrors.NewValidationError("attendance rate must be between 0 and 100")
	}
	if record.AvgAssignmentScore < 0 || record.MidtermScore < 0 ||
		record.Participation < 0 || record.LMSHours < 0 {
		return apperrors.NewValidationError("scores cannot be negative")
	}
	if record.MissingAssignments < 0 {
		return apperrors.NewValidationError("missing assignments cannot be negative")
	}
	return nil
}

// CreateRecord adds a performance record for an existing student.
func (s *RecordService) CreateRecord(ctx context.Context, record *models.PerformanceRecord) error {
	if err := validateRecord(record); err != nil {
		return err
	}

	// Surface a student not found error instead of a foreign key violation.
	if _, err := s.students.GetByID(ctx, record.StudentID); err != nil {
		return err
	}

	return s.records.Create(ctx, record)
}

// GetRecordByID retrieves a single performance record
func (s *RecordService) GetRecordByID(ctx context.Context, id int64) (*models.PerformanceRecord, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid record ID")
	}
	return s.records.GetByID(ctx, id)
}

// GetRecordsByStudent lists a student's records, newest first.
func (s *RecordService) GetRecordsByStudent(ctx context.Context, studentID int64) ([]*models.PerformanceRecord, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.records.GetByStudent(ctx, studentID)
}

// UpdateRecord updates an existing performance record
func (s *RecordService) UpdateRecord(ctx context.Context, record *models.PerformanceRecord) error {
	if err := validateRecord(record); err != nil {
		return err
	}
	if record.ID <= 0 {
		return apperrors.NewValidationError("invalid record ID")
	}
	return s.records.Update(ctx, record)
}

// DeleteRecord deletes a performance record
func (s *RecordService) DeleteRecord(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid record ID")
	}
	return s.records.Delete(ctx, id)
}
