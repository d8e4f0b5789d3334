package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/eduinsight/eduinsight/internal/app/models"
	"github.com/eduinsight/eduinsight/internal/app/models/dto"
	"github.com/eduinsight/eduinsight/internal/pkg/apperrors"
	"github.com/eduinsight/eduinsight/internal/pkg/helpers"
)

// studentStore is the data access surface the student service needs.
type studentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetAll(ctx context.Context, search string) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// studentRecordStore yields the record history for a student.
type studentRecordStore interface {
	GetByStudent(ctx context.Context, studentID int64) ([]*models.PerformanceRecord, error)
}

// StudentService handles student-related operations
type StudentService struct {
	students studentStore
	records  studentRecordStore
}

// NewStudentService creates a new student service instance
func NewStudentService(students studentStore, records studentRecordStore) *StudentService {
	return &StudentService{
		students: students,
		records:  records,
	}
}

// validateStudent validates student data before database operations
func validateStudent(student *models.Student) error {
	if student == nil {
		return apperrors.NewValidationError("student is nil")
	}
	if strings.TrimSpace(student.StudentID) == "" {
		return apperrors.NewValidationError("student identifier cannot be empty")
	}
	if strings.TrimSpace(student.FullName) == "" {
		return apperrors.NewValidationError("full name cannot be empty")
	}
	if student.Age != nil && *student.Age <= 0 {
		return apperrors.NewValidationError("age must be positive")
	}
	return nil
}

// CreateStudent creates a new student
func (s *StudentService) CreateStudent(ctx context.Context, student *models.Student) error {
	if err := validateStudent(student); err != nil {
		return err
	}

	if err := s.students.Create(ctx, student); err != nil {
		return err
	}
	return nil
}

// GetStudentByID retrieves a student with their full record history, newest
// record first.
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid student ID")
	}

	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	records, err := s.records.GetByStudent(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student records: %w", err)
	}
	student.Records = records

	return student, nil
}

// ListStudents returns students with their threshold-based status, filtered
// by an optional case-insensitive search on name or identifier and an
// optional status, paginated. Status filtering happens after the search
// because status is derived from the latest record, not stored.
func (s *StudentService) ListStudents(ctx context.Context, search, status string, page, size int) (*dto.StudentListResponse, error) {
	if status != "" && status != dto.StatusAtRisk && status != dto.StatusPerformingWell {
		return nil, apperrors.NewValidationError("status must be at_risk or performing_well")
	}

	students, err := s.students.GetAll(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}

	filtered := make([]dto.StudentStatus, 0, len(students))
	for _, student := range students {
		entry := dto.StudentStatus{Student: student}
		if latest := student.LatestRecord(); latest != nil {
			entry.LatestRecord = latest
			entry.Status = StatusFor(latest)
		}
		if status != "" && entry.Status != status {
			continue
		}
		filtered = append(filtered, entry)
	}

	start, end := helpers.CalculateSliceIndices(page, size, len(filtered))

	return &dto.StudentListResponse{
		Students:       filtered[start:end],
		PaginationInfo: helpers.NewPaginationInfo(len(filtered), page, size),
	}, nil
}

// UpdateStudent updates an existing student
func (s *StudentService) UpdateStudent(ctx context.Context, student *models.Student) error {
	if err := validateStudent(student); err != nil {
		return err
	}
	if student.ID <= 0 {
		return apperrors.NewValidationError("invalid student ID")
	}

	return s.students.Update(ctx, student)
}

// DeleteStudent deletes a student; their records cascade away with them.
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid student ID")
	}

	return s.students.Delete(ctx, id)
}
