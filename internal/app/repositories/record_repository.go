package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduinsight/eduinsight/internal/app/models"
	"github.com/eduinsight/eduinsight/internal/pkg/apperrors"
)

// RecordRepository handles database operations for performance records
type RecordRepository struct {
	db *pgxpool.Pool
}

// NewRecordRepository creates a new performance record repository
func NewRecordRepository(db *pgxpool.Pool) *RecordRepository {
	return &RecordRepository{
		db: db,
	}
}

const recordColumns = `id, student_id, term, attendance_rate, avg_assignment_score,
	midterm_score, missing_assignments, participation, lms_hours, final_grade, passed, created_at`

func scanRecord(row pgx.Row, record *models.PerformanceRecord) error {
	return row.Scan(
		&record.ID,
		&record.StudentID,
		&record.Term,
		&record.AttendanceRate,
		&record.AvgAssignmentScore,
		&record.MidtermScore,
		&record.MissingAssignments,
		&record.Participation,
		&record.LMSHours,
		&record.FinalGrade,
		&record.Passed,
		&record.CreatedAt,
	)
}

// Create creates a new performance record
func (r *RecordRepository) Create(ctx context.Context, record *models.PerformanceRecord) error {
	query := `
		INSERT INTO performance_records
			(student_id, term, attendance_rate, avg_assignment_score, midterm_score,
			 missing_assignments, participation, lms_hours, final_grade, passed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		record.StudentID, record.Term, record.AttendanceRate, record.AvgAssignmentScore,
		record.MidtermScore, record.MissingAssignments, record.Participation,
		record.LMSHours, record.FinalGrade, record.Passed,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating performance record: %w", err)
	}

	return nil
}

// GetByID retrieves a performance record by ID
func (r *RecordRepository) GetByID(ctx context.Context, id int64) (*models.PerformanceRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM performance_records WHERE id = $1`

	var record models.PerformanceRecord
	if err := scanRecord(r.db.QueryRow(ctx, query, id), &record); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, fmt.Errorf("error retrieving performance record: %w", err)
	}

	return &record, nil
}

// GetByStudent retrieves all records for a student, newest first
func (r *RecordRepository) GetByStudent(ctx context.Context, studentID int64) ([]*models.PerformanceRecord, error) {
	query := `SELECT ` + recordColumns + `
		FROM performance_records
		WHERE student_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving performance records: %w", err)
	}
	defer rows.Close()

	var records []*models.PerformanceRecord
	for rows.Next() {
		var record models.PerformanceRecord
		if err := scanRecord(rows, &record); err != nil {
			return nil, err
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// GetLatestByStudent returns the most recently created record for a student.
// Returns apperrors.ErrNoPerformanceRecords when the student has none.
func (r *RecordRepository) GetLatestByStudent(ctx context.Context, studentID int64) (*models.PerformanceRecord, error) {
	query := `SELECT ` + recordColumns + `
		FROM performance_records
		WHERE student_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	var record models.PerformanceRecord
	if err := scanRecord(r.db.QueryRow(ctx, query, studentID), &record); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoPerformanceRecords
		}
		return nil, fmt.Errorf("error retrieving latest performance record: %w", err)
	}

	return &record, nil
}

// GetRecent returns the most recently created records across all students,
// joined with the owning student's identity.
func (r *RecordRepository) GetRecent(ctx context.Context, limit int) ([]*models.RecordWithStudent, error) {
	query := `
		SELECT pr.id, pr.student_id, pr.term, pr.attendance_rate, pr.avg_assignment_score,
		       pr.midterm_score, pr.missing_assignments, pr.participation, pr.lms_hours,
		       pr.final_grade, pr.passed, pr.created_at,
		       s.full_name, s.student_id
		FROM performance_records pr
		JOIN students s ON s.id = pr.student_id
		ORDER BY pr.created_at DESC, pr.id DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving recent records: %w", err)
	}
	defer rows.Close()

	var records []*models.RecordWithStudent
	for rows.Next() {
		var record models.RecordWithStudent
		err := rows.Scan(
			&record.ID,
			&record.StudentID,
			&record.Term,
			&record.AttendanceRate,
			&record.AvgAssignmentScore,
			&record.MidtermScore,
			&record.MissingAssignments,
			&record.Participation,
			&record.LMSHours,
			&record.FinalGrade,
			&record.Passed,
			&record.CreatedAt,
			&record.StudentFullName,
			&record.StudentIdentifier,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Averages computes dataset-wide arithmetic means over all records. Each
// metric independently falls back to 0 when no records exist, so an empty
// store never faults.
func (r *RecordRepository) Averages(ctx context.Context) (*models.MetricAverages, error) {
	query := `
		SELECT COALESCE(AVG(attendance_rate), 0),
		       COALESCE(AVG(avg_assignment_score), 0),
		       COALESCE(AVG(midterm_score), 0),
		       COALESCE(AVG(participation), 0),
		       COALESCE(AVG(lms_hours), 0)
		FROM performance_records
	`

	var averages models.MetricAverages
	err := r.db.QueryRow(ctx, query).Scan(
		&averages.Attendance,
		&averages.Assignment,
		&averages.Midterm,
		&averages.Participation,
		&averages.LMSHours,
	)
	if err != nil {
		return nil, fmt.Errorf("error computing record averages: %w", err)
	}

	return &averages, nil
}

// Update updates an existing performance record
func (r *RecordRepository) Update(ctx context.Context, record *models.PerformanceRecord) error {
	query := `
		UPDATE performance_records
		SET term = $1, attendance_rate = $2, avg_assignment_score = $3, midterm_score = $4,
		    missing_assignments = $5, participation = $6, lms_hours = $7, final_grade = $8, passed = $9
		WHERE id = $10
	`

	cmdTag, err := r.db.Exec(ctx, query,
		record.Term, record.AttendanceRate, record.AvgAssignmentScore, record.MidtermScore,
		record.MissingAssignments, record.Participation, record.LMSHours,
		record.FinalGrade, record.Passed, record.ID)
	if err != nil {
		return fmt.Errorf("error updating performance record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRecordNotFound
	}

	return nil
}

// Delete deletes a performance record by ID
func (r *RecordRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM performance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting performance record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrRecordNotFound
	}

	return nil
}
