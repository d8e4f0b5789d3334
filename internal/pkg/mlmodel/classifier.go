package mlmodel

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// Predicted labels for the binary pass/fail outcome.
const (
	LabelPassed    = "passed"
	LabelNotPassed = "not_passed"
)

// ErrFeatureLengthMismatch is returned when a feature vector does not match
// the artifact's trained feature count.
var ErrFeatureLengthMismatch = errors.New("feature vector length does not match trained features")

// Prediction is the outcome of classifying one feature vector.
type Prediction struct {
	// Label is the predicted class label.
	Label string `json:"label"`
	// Probabilities holds per-class probabilities ordered by ascending
	// class id. Nil when the artifact has no probabilistic output.
	Probabilities []float64 `json:"probabilities"`
}

// Classifier is the bridge to an externally trained classifier artifact.
// The artifact is opaque to callers beyond these two operations, so any
// trained model honoring the fixed feature input contract can substitute.
type Classifier interface {
	// Classify scores a feature vector supplied in the trained order.
	Classify(features []float64) (*Prediction, error)
	// FeatureImportances maps each trained feature name to a non-negative
	// weight; weights sum to 1 across all features.
	FeatureImportances() map[string]float64
}

// FeatureWeight pairs a feature name with its importance weight. It
// serializes as a two-element [name, weight] array.
type FeatureWeight struct {
	Name   string
	Weight float64
}

// MarshalJSON implements json.Marshaler.
func (f FeatureWeight) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{f.Name, f.Weight})
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FeatureWeight) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("feature weight must be a [name, weight] pair, got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &f.Name); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &f.Weight)
}

// TopFeatures returns the n most important features of a classifier,
// descending by weight. Ties keep the original feature order (stable sort),
// so results are deterministic across calls.
func TopFeatures(c Classifier, featureNames []string, n int) []FeatureWeight {
	importances := c.FeatureImportances()

	ranked := make([]FeatureWeight, 0, len(featureNames))
	for _, name := range featureNames {
		ranked = append(ranked, FeatureWeight{Name: name, Weight: importances[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Weight > ranked[j].Weight
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
