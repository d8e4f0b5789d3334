package services

import (
	"context"
	"fmt"
	"math"

	"github.com/eduinsight/eduinsight/internal/app/models"
	"github.com/eduinsight/eduinsight/internal/app/models/dto"
	"github.com/eduinsight/eduinsight/internal/pkg/mlmodel"
)

const (
	atRiskShortlistSize = 5
	recentRecordCount   = 5
)

// DashboardService computes the dataset-wide statistics for the dashboard.
type DashboardService interface {
	GetStats(ctx context.Context) (*dto.DashboardStats, error)
}

// studentListSource yields students with their latest record attached.
type studentListSource interface {
	GetAll(ctx context.Context, search string) ([]*models.Student, error)
}

// recordStatsSource yields dataset-wide record aggregates.
type recordStatsSource interface {
	Averages(ctx context.Context) (*models.MetricAverages, error)
	GetRecent(ctx context.Context, limit int) ([]*models.RecordWithStudent, error)
}

type dashboardService struct {
	students studentListSource
	records  recordStatsSource
	store    *mlmodel.Store
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(students studentListSource, records recordStatsSource, store *mlmodel.Store) DashboardService {
	return &dashboardService{
		students: students,
		records:  records,
		store:    store,
	}
}

// GetStats tallies at-risk students from their latest records, aggregates the
// per-metric averages and collects the recent-record panel. An empty data
// store produces all-zero statistics, never an error.
func (s *dashboardService) GetStats(ctx context.Context) (*dto.DashboardStats, error) {
	students, err := s.students.GetAll(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}

	stats := &dto.DashboardStats{
		TotalStudents: len(students),
		ModelExists:   s.store.Exists(),
		AtRiskList:    []dto.StudentStatus{},
	}

	for _, student := range students {
		latest := student.LatestRecord()
		if latest == nil {
			continue
		}
		if IsAtRisk(latest) {
			stats.AtRiskStudents++
			if len(stats.AtRiskList) < atRiskShortlistSize {
				stats.AtRiskList = append(stats.AtRiskList, dto.StudentStatus{
					Student:      student,
					LatestRecord: latest,
					Status:       dto.StatusAtRisk,
				})
			}
		} else {
			stats.PerformingWell++
		}
	}

	averages, err := s.records.Averages(ctx)
	if err != nil {
		return nil, fmt.Errorf("error computing averages: %w", err)
	}

	stats.AvgAttendance = roundTo1(averages.Attendance)
	stats.AvgAssignment = roundTo1(averages.Assignment)
	stats.AvgMidterm = roundTo1(averages.Midterm)
	stats.AvgParticipation = roundTo1(averages.Participation)
	stats.AvgLMSHours = roundTo1(averages.LMSHours)

	// The overall number only means something when all three contributing
	// averages exist; an empty store reports 0 rather than an error.
	if averages.Attendance != 0 && averages.Assignment != 0 && averages.Midterm != 0 {
		stats.AvgPerformance = int(math.Round(
			(averages.Attendance + averages.Assignment + averages.Midterm) / 3))
	}

	recent, err := s.records.GetRecent(ctx, recentRecordCount)
	if err != nil {
		return nil, fmt.Errorf("error retrieving recent records: %w", err)
	}
	stats.RecentRecords = recent

	return stats, nil
}

// roundTo1 rounds to one decimal place for display.
func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
