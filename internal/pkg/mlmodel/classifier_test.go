package mlmodel

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClassifier struct {
	importances map[string]float64
}

func (s *stubClassifier) Classify([]float64) (*Prediction, error) { return nil, nil }

func (s *stubClassifier) FeatureImportances() map[string]float64 { return s.importances }

func TestTopFeatures(t *testing.T) {
	names := []string{"a", "b", "c", "d"}
	c := &stubClassifier{importances: map[string]float64{
		"a": 0.1, "b": 0.4, "c": 0.3, "d": 0.2,
	}}

	top := TopFeatures(c, names, 3)

	require.Len(t, top, 3)
	assert.Equal(t, "b", top[0].Name)
	assert.Equal(t, "c", top[1].Name)
	assert.Equal(t, "d", top[2].Name)
}

func TestTopFeaturesTieKeepsOriginalOrder(t *testing.T) {
	names := []string{"a", "b", "c"}
	c := &stubClassifier{importances: map[string]float64{
		"a": 0.25, "b": 0.5, "c": 0.25,
	}}

	top := TopFeatures(c, names, 3)

	require.Len(t, top, 3)
	assert.Equal(t, "b", top[0].Name)
	// a and c tie; a precedes c in the original feature order.
	assert.Equal(t, "a", top[1].Name)
	assert.Equal(t, "c", top[2].Name)
}

func TestTopFeaturesCapsAtAvailableFeatures(t *testing.T) {
	names := []string{"a", "b"}
	c := &stubClassifier{importances: map[string]float64{"a": 0.6, "b": 0.4}}

	top := TopFeatures(c, names, 3)

	assert.Len(t, top, 2)
}

func TestFeatureWeightJSONRoundTrip(t *testing.T) {
	fw := FeatureWeight{Name: "attendance_rate", Weight: 0.42}

	data, err := json.Marshal(fw)
	require.NoError(t, err)
	assert.JSONEq(t, `["attendance_rate", 0.42]`, string(data))

	var decoded FeatureWeight
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, fw, decoded)
}
