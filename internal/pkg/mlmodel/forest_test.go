package mlmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoLeafArtifact builds a minimal artifact with a single tree splitting on
// the first feature at 50: below goes to a failing leaf, above to a passing
// leaf.
func twoLeafArtifact() *Artifact {
	return &Artifact{
		Version:      "test",
		FeatureNames: []string{"attendance_rate", "avg_assignment_score"},
		Classes:      []int{0, 1},
		NumTrees:     1,
		Importances:  map[string]float64{"attendance_rate": 0.75, "avg_assignment_score": 0.25},
		Trees: []Tree{
			{Nodes: []TreeNode{
				{Feature: 0, Threshold: 50, Left: 1, Right: 2},
				{Feature: leafFeature, Value: []float64{8, 2}},
				{Feature: leafFeature, Value: []float64{1, 9}},
			}},
		},
	}
}

func TestForestClassify(t *testing.T) {
	forest, err := NewForest(twoLeafArtifact())
	require.NoError(t, err)

	tests := []struct {
		name      string
		features  []float64
		wantLabel string
		wantProba []float64
	}{
		{name: "low attendance leaf", features: []float64{30, 80}, wantLabel: LabelNotPassed, wantProba: []float64{0.8, 0.2}},
		{name: "high attendance leaf", features: []float64{90, 80}, wantLabel: LabelPassed, wantProba: []float64{0.1, 0.9}},
		{name: "threshold goes left", features: []float64{50, 80}, wantLabel: LabelNotPassed, wantProba: []float64{0.8, 0.2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := forest.Classify(tt.features)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLabel, pred.Label)
			assert.InDeltaSlice(t, tt.wantProba, pred.Probabilities, 1e-9)
		})
	}
}

func TestForestClassifyProbabilitiesSumToOne(t *testing.T) {
	forest, err := NewForest(twoLeafArtifact())
	require.NoError(t, err)

	pred, err := forest.Classify([]float64{62, 40})
	require.NoError(t, err)

	var sum float64
	for _, p := range pred.Probabilities {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestForestClassifyLengthMismatch(t *testing.T) {
	forest, err := NewForest(twoLeafArtifact())
	require.NoError(t, err)

	_, err = forest.Classify([]float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrFeatureLengthMismatch)
}

func TestNewForestRejectsEmptyArtifacts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Artifact)
	}{
		{name: "no features", mutate: func(a *Artifact) { a.FeatureNames = nil }},
		{name: "no classes", mutate: func(a *Artifact) { a.Classes = nil }},
		{name: "no trees", mutate: func(a *Artifact) { a.Trees = nil }},
		{name: "empty tree", mutate: func(a *Artifact) { a.Trees = []Tree{{}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artifact := twoLeafArtifact()
			tt.mutate(artifact)
			_, err := NewForest(artifact)
			assert.Error(t, err)
		})
	}
}
