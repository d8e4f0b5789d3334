package mlmodel

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticDataset builds a linearly separable dataset: samples with a first
// feature above 50 pass, the rest fail. The second feature is noise.
func syntheticDataset(n int, seed int64) *Dataset {
	rng := rand.New(rand.NewSource(seed))
	ds := &Dataset{FeatureNames: []string{"signal", "noise"}}
	for i := 0; i < n; i++ {
		signal := rng.Float64() * 100
		noise := rng.Float64() * 100
		label := 0
		if signal > 50 {
			label = 1
		}
		ds.Features = append(ds.Features, []float64{signal, noise})
		ds.Labels = append(ds.Labels, label)
	}
	return ds
}

func smallConfig() TrainConfig {
	cfg := DefaultTrainConfig()
	cfg.NumTrees = 20
	return cfg
}

func TestTrainSeparableData(t *testing.T) {
	ds := syntheticDataset(200, 7)

	artifact, report, err := Train(ds, smallConfig())
	require.NoError(t, err)

	assert.Equal(t, 20, artifact.NumTrees)
	assert.Len(t, artifact.Trees, 20)
	assert.Equal(t, []int{0, 1}, artifact.Classes)
	assert.NotEmpty(t, artifact.Version)

	// A clean separation should classify the held-out split near perfectly.
	assert.Greater(t, report.Accuracy, 0.9)

	forest, err := NewForest(artifact)
	require.NoError(t, err)

	pred, err := forest.Classify([]float64{95, 10})
	require.NoError(t, err)
	assert.Equal(t, LabelPassed, pred.Label)

	pred, err = forest.Classify([]float64{5, 90})
	require.NoError(t, err)
	assert.Equal(t, LabelNotPassed, pred.Label)
}

func TestTrainImportancesSumToOne(t *testing.T) {
	ds := syntheticDataset(150, 3)

	artifact, _, err := Train(ds, smallConfig())
	require.NoError(t, err)

	var sum float64
	for _, name := range ds.FeatureNames {
		weight, ok := artifact.Importances[name]
		require.True(t, ok, "importance missing for %s", name)
		assert.GreaterOrEqual(t, weight, 0.0)
		sum += weight
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	// The separating feature should dominate.
	assert.Greater(t, artifact.Importances["signal"], artifact.Importances["noise"])
}

func TestTrainDeterministicForSeed(t *testing.T) {
	first, _, err := Train(syntheticDataset(120, 5), smallConfig())
	require.NoError(t, err)
	second, _, err := Train(syntheticDataset(120, 5), smallConfig())
	require.NoError(t, err)

	assert.Equal(t, first.Trees, second.Trees)
	assert.Equal(t, first.Importances, second.Importances)
}

func TestStratifiedSplitPreservesClassBalance(t *testing.T) {
	labels := make([]int, 0, 100)
	for i := 0; i < 80; i++ {
		labels = append(labels, 1)
	}
	for i := 0; i < 20; i++ {
		labels = append(labels, 0)
	}

	rng := rand.New(rand.NewSource(42))
	train, test := stratifiedSplit(labels, 0.2, rng)

	assert.Len(t, train, 80)
	assert.Len(t, test, 20)

	testOnes := 0
	for _, i := range test {
		if labels[i] == 1 {
			testOnes++
		}
	}
	// 20% of each class lands in the test split.
	assert.Equal(t, 16, testOnes)
	assert.Equal(t, 4, len(test)-testOnes)
}

func TestTrainRejectsBadInput(t *testing.T) {
	_, _, err := Train(&Dataset{FeatureNames: []string{"a"}}, DefaultTrainConfig())
	assert.Error(t, err)

	ds := syntheticDataset(50, 1)
	cfg := DefaultTrainConfig()
	cfg.NumTrees = 0
	_, _, err = Train(ds, cfg)
	assert.Error(t, err)
}

func TestReadCSVDropsIncompleteRows(t *testing.T) {
	input := strings.Join([]string{
		"attendance_rate,avg_assignment_score,passed,extra",
		"80,70,1,x",
		"60,,0,x",
		"55,40,not-a-number,x",
		"90,85,1.0,x",
	}, "\n")

	ds, err := ReadCSV(strings.NewReader(input), []string{"attendance_rate", "avg_assignment_score"}, "passed")
	require.NoError(t, err)

	assert.Len(t, ds.Features, 2)
	assert.Equal(t, 2, ds.Dropped)
	assert.Equal(t, []int{1, 1}, ds.Labels)
	assert.Equal(t, []float64{80, 70}, ds.Features[0])
}

func TestReadCSVMissingColumn(t *testing.T) {
	input := "attendance_rate,passed\n80,1\n"

	_, err := ReadCSV(strings.NewReader(input), []string{"attendance_rate", "lms_hours"}, "passed")
	assert.ErrorContains(t, err, "lms_hours")
}
