package mlmodel

import (
	"fmt"
	"strings"
)

// Report summarizes classifier performance on a held-out split.
type Report struct {
	Classes   []ClassMetrics
	Accuracy  float64
	TestCount int
}

// ClassMetrics holds per-class evaluation metrics.
type ClassMetrics struct {
	Class     int
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// evaluate scores the held-out indices and builds the report from the
// resulting confusion counts.
func evaluate(forest *Forest, ds *Dataset, testIdx []int, numClasses int) (*Report, error) {
	truePos := make([]int, numClasses)
	falsePos := make([]int, numClasses)
	falseNeg := make([]int, numClasses)
	support := make([]int, numClasses)
	correct := 0

	for _, i := range testIdx {
		pred, err := forest.Classify(ds.Features[i])
		if err != nil {
			return nil, err
		}
		predicted := 0
		for c := 1; c < len(pred.Probabilities); c++ {
			if pred.Probabilities[c] > pred.Probabilities[predicted] {
				predicted = c
			}
		}
		actual := ds.Labels[i]
		support[actual]++
		if predicted == actual {
			truePos[actual]++
			correct++
		} else {
			falsePos[predicted]++
			falseNeg[actual]++
		}
	}

	report := &Report{TestCount: len(testIdx)}
	if len(testIdx) > 0 {
		report.Accuracy = float64(correct) / float64(len(testIdx))
	}

	for c := 0; c < numClasses; c++ {
		m := ClassMetrics{Class: c, Support: support[c]}
		if truePos[c]+falsePos[c] > 0 {
			m.Precision = float64(truePos[c]) / float64(truePos[c]+falsePos[c])
		}
		if truePos[c]+falseNeg[c] > 0 {
			m.Recall = float64(truePos[c]) / float64(truePos[c]+falseNeg[c])
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		report.Classes = append(report.Classes, m)
	}

	return report, nil
}

// String renders the report as a plain-text classification table.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%12s %10s %10s %10s %10s\n", "", "precision", "recall", "f1-score", "support")
	for _, m := range r.Classes {
		fmt.Fprintf(&b, "%12s %10.2f %10.2f %10.2f %10d\n",
			classLabel(m.Class), m.Precision, m.Recall, m.F1, m.Support)
	}
	fmt.Fprintf(&b, "\n%12s %32.2f %10d\n", "accuracy", r.Accuracy, r.TestCount)
	return b.String()
}
