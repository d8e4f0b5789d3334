package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduinsight/eduinsight/internal/app/models"
	"github.com/eduinsight/eduinsight/internal/pkg/apperrors"
	"github.com/eduinsight/eduinsight/internal/pkg/dberrors"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// Create creates a new student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (user_id, student_id, full_name, age, gender)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		student.UserID, student.StudentID, student.FullName, student.Age, student.Gender,
	).Scan(&student.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrStudentIDAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT id, user_id, student_id, full_name, age, gender
		FROM students
		WHERE id = $1
	`

	var student models.Student
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.UserID,
		&student.StudentID,
		&student.FullName,
		&student.Age,
		&student.Gender,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// GetAll retrieves all students, optionally filtered by a case-insensitive
// substring match on name or student identifier. Each student carries their
// latest performance record (when one exists) so callers can derive status
// without a per-student query.
func (r *StudentRepository) GetAll(ctx context.Context, search string) ([]*models.Student, error) {
	query := `
		SELECT s.id, s.user_id, s.student_id, s.full_name, s.age, s.gender,
		       pr.id, pr.term, pr.attendance_rate, pr.avg_assignment_score,
		       pr.midterm_score, pr.missing_assignments, pr.participation,
		       pr.lms_hours, pr.final_grade, pr.passed, pr.created_at
		FROM students s
		LEFT JOIN LATERAL (
			SELECT *
			FROM performance_records
			WHERE student_id = s.id
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		) pr ON true
		WHERE $1 = '' OR s.full_name ILIKE '%' || $1 || '%' OR s.student_id ILIKE '%' || $1 || '%'
		ORDER BY s.id
	`

	rows, err := r.db.Query(ctx, query, search)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		var record models.PerformanceRecord
		var recordID *int64
		var term *string
		var attendance, assignment, midterm, participation, lmsHours *float64
		var missing *int
		var createdAt *time.Time

		err := rows.Scan(
			&student.ID,
			&student.UserID,
			&student.StudentID,
			&student.FullName,
			&student.Age,
			&student.Gender,
			&recordID,
			&term,
			&attendance,
			&assignment,
			&midterm,
			&missing,
			&participation,
			&lmsHours,
			&record.FinalGrade,
			&record.Passed,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		if recordID != nil {
			record.ID = *recordID
			record.StudentID = student.ID
			record.Term = *term
			record.AttendanceRate = *attendance
			record.AvgAssignmentScore = *assignment
			record.MidtermScore = *midterm
			record.MissingAssignments = *missing
			record.Participation = *participation
			record.LMSHours = *lmsHours
			record.CreatedAt = *createdAt
			student.Records = []*models.PerformanceRecord{&record}
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Update updates an existing student
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET student_id = $1, full_name = $2, age = $3, gender = $4
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.StudentID, student.FullName, student.Age, student.Gender, student.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrStudentIDAlreadyExists
		}
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete deletes a student by ID. Performance records cascade at the schema
// level.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
