package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduinsight/eduinsight/internal/app/models"
)

type fakeStudentList struct {
	students []*models.Student
}

func (f *fakeStudentList) GetAll(_ context.Context, _ string) ([]*models.Student, error) {
	return f.students, nil
}

type fakeRecordStats struct {
	averages *models.MetricAverages
	recent   []*models.RecordWithStudent
}

func (f *fakeRecordStats) Averages(_ context.Context) (*models.MetricAverages, error) {
	return f.averages, nil
}

func (f *fakeRecordStats) GetRecent(_ context.Context, limit int) ([]*models.RecordWithStudent, error) {
	if limit < len(f.recent) {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func studentWithRecord(id int64, name string, record *models.PerformanceRecord) *models.Student {
	return &models.Student{
		ID:        id,
		StudentID: name,
		FullName:  name,
		Records:   []*models.PerformanceRecord{record},
	}
}

func TestGetStats(t *testing.T) {
	atRiskRecord := func() *models.PerformanceRecord {
		return &models.PerformanceRecord{AttendanceRate: 50, AvgAssignmentScore: 80, MidtermScore: 70}
	}
	students := []*models.Student{
		studentWithRecord(1, "S-001", healthyRecord()),
		studentWithRecord(2, "S-002", atRiskRecord()),
		studentWithRecord(3, "S-003", atRiskRecord()),
		{ID: 4, StudentID: "S-004", FullName: "S-004"}, // no records yet
	}

	recent := []*models.RecordWithStudent{
		{StudentFullName: "S-001"},
		{StudentFullName: "S-002"},
	}

	svc := NewDashboardService(
		&fakeStudentList{students: students},
		&fakeRecordStats{
			averages: &models.MetricAverages{
				Attendance:    80.25,
				Assignment:    70.04,
				Midterm:       65.55,
				Participation: 6.66,
				LMSHours:      3.14,
			},
			recent: recent,
		},
		newTestStore(t),
	)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalStudents)
	assert.Equal(t, 2, stats.AtRiskStudents)
	assert.Equal(t, 1, stats.PerformingWell)
	assert.False(t, stats.ModelExists)

	assert.Equal(t, 80.3, stats.AvgAttendance)
	assert.Equal(t, 70.0, stats.AvgAssignment)
	assert.Equal(t, 65.6, stats.AvgMidterm)
	assert.Equal(t, 6.7, stats.AvgParticipation)
	assert.Equal(t, 3.1, stats.AvgLMSHours)
	// round((80.25 + 70.04 + 65.55) / 3) = round(71.946...) = 72
	assert.Equal(t, 72, stats.AvgPerformance)

	require.Len(t, stats.AtRiskList, 2)
	assert.Equal(t, "S-002", stats.AtRiskList[0].Student.StudentID)
	assert.Equal(t, "S-003", stats.AtRiskList[1].Student.StudentID)

	assert.Equal(t, recent, stats.RecentRecords)
}

func TestGetStatsEmptyDataset(t *testing.T) {
	svc := NewDashboardService(
		&fakeStudentList{},
		&fakeRecordStats{averages: &models.MetricAverages{}},
		newTestStore(t),
	)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalStudents)
	assert.Equal(t, 0, stats.AtRiskStudents)
	assert.Equal(t, 0, stats.PerformingWell)
	assert.Equal(t, 0, stats.AvgPerformance)
	assert.Zero(t, stats.AvgAttendance)
	assert.Empty(t, stats.AtRiskList)
	assert.False(t, stats.ModelExists)
}

func TestGetStatsShortlistCapped(t *testing.T) {
	var students []*models.Student
	for i := int64(1); i <= 8; i++ {
		students = append(students, studentWithRecord(i, "S", &models.PerformanceRecord{
			AttendanceRate: 10, AvgAssignmentScore: 10, MidtermScore: 10,
		}))
	}

	svc := NewDashboardService(
		&fakeStudentList{students: students},
		&fakeRecordStats{averages: &models.MetricAverages{}},
		newTestStore(t),
	)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, stats.AtRiskStudents)
	assert.Len(t, stats.AtRiskList, 5)
}

func TestGetStatsModelExists(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(passFailArtifact()))

	svc := NewDashboardService(
		&fakeStudentList{},
		&fakeRecordStats{averages: &models.MetricAverages{}},
		store,
	)

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.True(t, stats.ModelExists)
}
