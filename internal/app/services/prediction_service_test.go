package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduinsight/eduinsight/internal/app/models"
	"github.com/eduinsight/eduinsight/internal/pkg/apperrors"
	"github.com/eduinsight/eduinsight/internal/pkg/mlmodel"
)

type fakeStudentSource struct {
	students map[int64]*models.Student
}

func (f *fakeStudentSource) GetByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

type fakeLatestRecordSource struct {
	records map[int64]*models.PerformanceRecord
}

func (f *fakeLatestRecordSource) GetLatestByStudent(_ context.Context, studentID int64) (*models.PerformanceRecord, error) {
	record, ok := f.records[studentID]
	if !ok {
		return nil, apperrors.ErrNoPerformanceRecords
	}
	return record, nil
}

// passFailArtifact splits on attendance at 75: below goes to a mostly
// not-passed leaf, at or above to a mostly passed leaf.
func passFailArtifact() *mlmodel.Artifact {
	return &mlmodel.Artifact{
		Version:      "test",
		TrainedAt:    time.Now().UTC(),
		FeatureNames: models.FeatureOrder,
		Classes:      []int{0, 1},
		NumTrees:     1,
		Importances: map[string]float64{
			"attendance_rate":      0.5,
			"avg_assignment_score": 0.3,
			"midterm_score":        0.2,
			"missing_assignments":  0,
			"participation":        0,
			"lms_hours":            0,
		},
		Trees: []mlmodel.Tree{
			{Nodes: []mlmodel.TreeNode{
				{Feature: 0, Threshold: 75, Left: 1, Right: 2},
				{Feature: -1, Value: []float64{9, 1}},
				{Feature: -1, Value: []float64{1, 9}},
			}},
		},
	}
}

func newTestStore(t *testing.T) *mlmodel.Store {
	t.Helper()
	return mlmodel.NewStore(filepath.Join(t.TempDir(), "model.json"))
}

func TestPredictForStudent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(passFailArtifact()))

	students := &fakeStudentSource{students: map[int64]*models.Student{
		1: {ID: 1, StudentID: "S-001", FullName: "Ada Garcia"},
	}}
	records := &fakeLatestRecordSource{records: map[int64]*models.PerformanceRecord{
		1: {
			StudentID:          1,
			Term:               "2025-Fall",
			AttendanceRate:     92,
			AvgAssignmentScore: 85,
			MidtermScore:       78,
			Participation:      8,
			LMSHours:           6,
		},
	}}

	svc := NewPredictionService(students, records, store)
	resp, err := svc.PredictForStudent(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Ada Garcia", resp.Student)
	assert.Equal(t, mlmodel.LabelPassed, resp.Prediction)
	require.Len(t, resp.Probabilities, 2)
	assert.InDelta(t, 1.0, resp.Probabilities[0]+resp.Probabilities[1], 1e-9)

	require.Len(t, resp.TopFeatures, 3)
	assert.Equal(t, "attendance_rate", resp.TopFeatures[0].Name)
	assert.Equal(t, "avg_assignment_score", resp.TopFeatures[1].Name)
	assert.Equal(t, "midterm_score", resp.TopFeatures[2].Name)

	assert.Equal(t, []string{
		"Keep up the good work. Maintain current study habits and continue practice.",
	}, resp.Recommendations)
}

func TestPredictForStudentAtRisk(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(passFailArtifact()))

	students := &fakeStudentSource{students: map[int64]*models.Student{
		2: {ID: 2, StudentID: "S-002", FullName: "Omar Chen"},
	}}
	records := &fakeLatestRecordSource{records: map[int64]*models.PerformanceRecord{
		2: {
			StudentID:          2,
			Term:               "2025-Fall",
			AttendanceRate:     60,
			AvgAssignmentScore: 85,
			MidtermScore:       78,
			LMSHours:           6,
		},
	}}

	svc := NewPredictionService(students, records, store)
	resp, err := svc.PredictForStudent(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, mlmodel.LabelNotPassed, resp.Prediction)
	assert.Equal(t, []string{
		"Attendance is low. Watch recorded lectures + arrange weekly catch-up with tutor.",
	}, resp.Recommendations)
}

func TestPredictForStudentUnknownStudent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(passFailArtifact()))

	svc := NewPredictionService(
		&fakeStudentSource{students: map[int64]*models.Student{}},
		&fakeLatestRecordSource{},
		store,
	)

	_, err := svc.PredictForStudent(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestPredictForStudentNoRecords(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(passFailArtifact()))

	svc := NewPredictionService(
		&fakeStudentSource{students: map[int64]*models.Student{
			1: {ID: 1, StudentID: "S-001", FullName: "Ada Garcia"},
		}},
		&fakeLatestRecordSource{records: map[int64]*models.PerformanceRecord{}},
		store,
	)

	_, err := svc.PredictForStudent(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrNoPerformanceRecords)
}

func TestPredictForStudentModelMissing(t *testing.T) {
	// No artifact saved: the student and record exist but scoring cannot run.
	store := newTestStore(t)

	svc := NewPredictionService(
		&fakeStudentSource{students: map[int64]*models.Student{
			1: {ID: 1, StudentID: "S-001", FullName: "Ada Garcia"},
		}},
		&fakeLatestRecordSource{records: map[int64]*models.PerformanceRecord{
			1: {StudentID: 1, Term: "2025-Fall", AttendanceRate: 92, AvgAssignmentScore: 85, MidtermScore: 78},
		}},
		store,
	)

	_, err := svc.PredictForStudent(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrModelNotFound)
}
