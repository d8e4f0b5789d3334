package services

import (
	"context"
	"fmt"

	"github.com/eduinsight/eduinsight/internal/app/models"
	"github.com/eduinsight/eduinsight/internal/app/models/dto"
	"github.com/eduinsight/eduinsight/internal/pkg/mlmodel"
)

// topFeatureCount caps the number of features reported per prediction.
const topFeatureCount = 3

// PredictionService scores a student's latest record with the trained
// classifier artifact and derives advisory text.
type PredictionService interface {
	PredictForStudent(ctx context.Context, studentID int64) (*dto.PredictionResponse, error)
}

// predictionDataSource is the slice of the data layer prediction needs.
type predictionDataSource interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
}

// latestRecordSource yields the most recent record for a student.
type latestRecordSource interface {
	GetLatestByStudent(ctx context.Context, studentID int64) (*models.PerformanceRecord, error)
}

type predictionService struct {
	students predictionDataSource
	records  latestRecordSource
	store    *mlmodel.Store
}

// NewPredictionService creates a new prediction service.
func NewPredictionService(students predictionDataSource, records latestRecordSource, store *mlmodel.Store) PredictionService {
	return &predictionService{
		students: students,
		records:  records,
		store:    store,
	}
}

// PredictForStudent retrieves the student's latest record, classifies its
// feature vector and attaches rule-based recommendations. It fails with
// apperrors.ErrNoPerformanceRecords before touching the classifier when the
// student has no records, and with apperrors.ErrModelNotFound when no
// artifact has been trained yet. There is no partial result: the call either
// fully succeeds or returns one of those errors.
func (s *predictionService) PredictForStudent(ctx context.Context, studentID int64) (*dto.PredictionResponse, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	latest, err := s.records.GetLatestByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	forest, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	prediction, err := forest.Classify(latest.FeatureVector())
	if err != nil {
		return nil, fmt.Errorf("error classifying record: %w", err)
	}

	return &dto.PredictionResponse{
		Student:         student.FullName,
		Prediction:      prediction.Label,
		Probabilities:   prediction.Probabilities,
		TopFeatures:     mlmodel.TopFeatures(forest, forest.FeatureNames(), topFeatureCount),
		Recommendations: GenerateRecommendations(latest),
	}, nil
}
