package mlmodel

import (
	"fmt"
	"time"
)

// Artifact is the serialized form of a trained random-forest classifier.
// Trees are stored as flattened node arrays so the JSON stays compact and
// traversal needs no pointer fixup after decoding.
type Artifact struct {
	Version      string             `json:"version"`
	TrainedAt    time.Time          `json:"trainedAt"`
	FeatureNames []string           `json:"featureNames"`
	Classes      []int              `json:"classes"`
	NumTrees     int                `json:"numTrees"`
	Importances  map[string]float64 `json:"importances"`
	Trees        []Tree             `json:"trees"`
}

// Tree is one decision tree of the forest.
type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

// TreeNode is a single split or leaf. Feature is -1 for leaves; Value holds
// the training-sample class counts that reached the leaf.
type TreeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value,omitempty"`
}

const leafFeature = -1

// classDistribution walks the tree for one sample and returns the normalized
// class distribution of the reached leaf.
func (t *Tree) classDistribution(features []float64, numClasses int) []float64 {
	idx := 0
	for {
		node := &t.Nodes[idx]
		if node.Feature == leafFeature {
			dist := make([]float64, numClasses)
			var total float64
			for _, c := range node.Value {
				total += c
			}
			if total > 0 {
				for i := 0; i < numClasses && i < len(node.Value); i++ {
					dist[i] = node.Value[i] / total
				}
			}
			return dist
		}
		if features[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}

// Forest wraps a decoded artifact and implements Classifier.
type Forest struct {
	artifact *Artifact
}

// NewForest validates an artifact and wraps it for inference.
func NewForest(artifact *Artifact) (*Forest, error) {
	if artifact == nil {
		return nil, fmt.Errorf("artifact is nil")
	}
	if len(artifact.FeatureNames) == 0 {
		return nil, fmt.Errorf("artifact has no feature names")
	}
	if len(artifact.Classes) == 0 {
		return nil, fmt.Errorf("artifact has no classes")
	}
	if len(artifact.Trees) == 0 {
		return nil, fmt.Errorf("artifact has no trees")
	}
	for i, tree := range artifact.Trees {
		if len(tree.Nodes) == 0 {
			return nil, fmt.Errorf("tree %d has no nodes", i)
		}
	}
	return &Forest{artifact: artifact}, nil
}

// Artifact returns the underlying artifact.
func (f *Forest) Artifact() *Artifact {
	return f.artifact
}

// FeatureNames returns the trained feature order.
func (f *Forest) FeatureNames() []string {
	return f.artifact.FeatureNames
}

// Classify scores one feature vector. Probabilities are the mean of the
// per-tree leaf class distributions; the label is the argmax class. Lower
// class ids win ties, matching the trainer's class ordering.
func (f *Forest) Classify(features []float64) (*Prediction, error) {
	if len(features) != len(f.artifact.FeatureNames) {
		return nil, fmt.Errorf("%w: got %d, want %d",
			ErrFeatureLengthMismatch, len(features), len(f.artifact.FeatureNames))
	}

	numClasses := len(f.artifact.Classes)
	proba := make([]float64, numClasses)
	for i := range f.artifact.Trees {
		dist := f.artifact.Trees[i].classDistribution(features, numClasses)
		for c := range proba {
			proba[c] += dist[c]
		}
	}
	for c := range proba {
		proba[c] /= float64(len(f.artifact.Trees))
	}

	best := 0
	for c := 1; c < numClasses; c++ {
		if proba[c] > proba[best] {
			best = c
		}
	}

	return &Prediction{
		Label:         classLabel(f.artifact.Classes[best]),
		Probabilities: proba,
	}, nil
}

// FeatureImportances implements Classifier.
func (f *Forest) FeatureImportances() map[string]float64 {
	return f.artifact.Importances
}

// classLabel maps the binary class id to its label.
func classLabel(class int) string {
	if class == 1 {
		return LabelPassed
	}
	return LabelNotPassed
}
