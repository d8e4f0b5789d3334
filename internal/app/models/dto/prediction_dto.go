package dto

import "github.com/eduinsight/eduinsight/internal/pkg/mlmodel"

// PredictionResponse is the payload of the prediction endpoint. The field
// names and shapes are part of the public contract: probabilities is null
// when the artifact has no probabilistic output, and top_features holds at
// most three [name, weight] pairs in descending weight order.
type PredictionResponse struct {
	Student         string                  `json:"student" example:"Jane Doe"`
	Prediction      string                  `json:"prediction" example:"passed" enums:"passed,not_passed"`
	Probabilities   []float64               `json:"probabilities"`
	TopFeatures     []mlmodel.FeatureWeight `json:"top_features"`
	Recommendations []string                `json:"recommendations"`
}

// PredictionError is the flat error body the prediction endpoint returns for
// its two named failure states.
type PredictionError struct {
	Error string `json:"error" example:"No performance records for student"`
}
