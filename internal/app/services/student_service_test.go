package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduinsight/eduinsight/internal/app/models"
	"github.com/eduinsight/eduinsight/internal/app/models/dto"
	"github.com/eduinsight/eduinsight/internal/pkg/apperrors"
)

type fakeStudentStore struct {
	students []*models.Student
	created  []*models.Student
}

func (f *fakeStudentStore) Create(_ context.Context, student *models.Student) error {
	f.created = append(f.created, student)
	return nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	for _, s := range f.students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentStore) GetAll(_ context.Context, _ string) ([]*models.Student, error) {
	return f.students, nil
}

func (f *fakeStudentStore) Update(_ context.Context, _ *models.Student) error { return nil }
func (f *fakeStudentStore) Delete(_ context.Context, _ int64) error           { return nil }

type fakeRecordHistory struct {
	records map[int64][]*models.PerformanceRecord
}

func (f *fakeRecordHistory) GetByStudent(_ context.Context, studentID int64) ([]*models.PerformanceRecord, error) {
	return f.records[studentID], nil
}

func TestCreateStudentValidation(t *testing.T) {
	store := &fakeStudentStore{}
	svc := NewStudentService(store, &fakeRecordHistory{})

	err := svc.CreateStudent(context.Background(), &models.Student{StudentID: " ", FullName: "Ada"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	err = svc.CreateStudent(context.Background(), &models.Student{StudentID: "S-001", FullName: ""})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	err = svc.CreateStudent(context.Background(), &models.Student{StudentID: "S-001", FullName: "Ada Garcia"})
	require.NoError(t, err)
	assert.Len(t, store.created, 1)
}

func TestGetStudentByIDAttachesRecords(t *testing.T) {
	records := []*models.PerformanceRecord{
		{ID: 2, Term: "2025-Fall"},
		{ID: 1, Term: "2025-Spring"},
	}
	svc := NewStudentService(
		&fakeStudentStore{students: []*models.Student{{ID: 1, StudentID: "S-001", FullName: "Ada"}}},
		&fakeRecordHistory{records: map[int64][]*models.PerformanceRecord{1: records}},
	)

	student, err := svc.GetStudentByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, records, student.Records)

	_, err = svc.GetStudentByID(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func listFixture() []*models.Student {
	healthy := func() *models.PerformanceRecord {
		return &models.PerformanceRecord{AttendanceRate: 90, AvgAssignmentScore: 80, MidtermScore: 70, LMSHours: 5}
	}
	failing := func() *models.PerformanceRecord {
		return &models.PerformanceRecord{AttendanceRate: 40, AvgAssignmentScore: 80, MidtermScore: 70, LMSHours: 5}
	}
	return []*models.Student{
		studentWithRecord(1, "S-001", healthy()),
		studentWithRecord(2, "S-002", failing()),
		studentWithRecord(3, "S-003", healthy()),
		{ID: 4, StudentID: "S-004", FullName: "S-004"},
	}
}

func TestListStudentsStatusFilter(t *testing.T) {
	svc := NewStudentService(&fakeStudentStore{students: listFixture()}, &fakeRecordHistory{})

	resp, err := svc.ListStudents(context.Background(), "", dto.StatusAtRisk, 1, 12)
	require.NoError(t, err)
	require.Len(t, resp.Students, 1)
	assert.Equal(t, int64(2), resp.Students[0].Student.ID)
	assert.Equal(t, dto.StatusAtRisk, resp.Students[0].Status)

	// Students without records carry an empty status and match no filter.
	resp, err = svc.ListStudents(context.Background(), "", dto.StatusPerformingWell, 1, 12)
	require.NoError(t, err)
	assert.Len(t, resp.Students, 2)

	resp, err = svc.ListStudents(context.Background(), "", "", 1, 12)
	require.NoError(t, err)
	assert.Len(t, resp.Students, 4)
	assert.Equal(t, 4, resp.PaginationInfo.TotalItems)

	_, err = svc.ListStudents(context.Background(), "", "bogus", 1, 12)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestListStudentsPagination(t *testing.T) {
	svc := NewStudentService(&fakeStudentStore{students: listFixture()}, &fakeRecordHistory{})

	resp, err := svc.ListStudents(context.Background(), "", "", 2, 3)
	require.NoError(t, err)
	require.Len(t, resp.Students, 1)
	assert.Equal(t, int64(4), resp.Students[0].Student.ID)
	assert.Equal(t, 2, resp.PaginationInfo.CurrentPage)
	assert.Equal(t, 2, resp.PaginationInfo.TotalPages)

	// A page past the end is empty, not an error.
	resp, err = svc.ListStudents(context.Background(), "", "", 9, 3)
	require.NoError(t, err)
	assert.Empty(t, resp.Students)
}
