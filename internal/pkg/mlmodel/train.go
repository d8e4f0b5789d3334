package mlmodel

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
)

// TrainConfig controls forest training. The defaults reproduce the reference
// training setup: 200 trees, a fixed 80/20 stratified split and seed 42.
type TrainConfig struct {
	NumTrees       int
	Seed           int64
	TestFraction   float64
	MinSamplesLeaf int
}

// DefaultTrainConfig returns the standard training configuration.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		NumTrees:       200,
		Seed:           42,
		TestFraction:   0.2,
		MinSamplesLeaf: 1,
	}
}

// Train fits a random-forest classifier on the dataset and evaluates it on a
// stratified held-out split. Training is deterministic for a given seed.
func Train(ds *Dataset, cfg TrainConfig) (*Artifact, *Report, error) {
	if err := validateDataset(ds); err != nil {
		return nil, nil, err
	}
	if cfg.NumTrees <= 0 {
		return nil, nil, fmt.Errorf("number of trees must be positive, got %d", cfg.NumTrees)
	}
	if cfg.TestFraction < 0 || cfg.TestFraction >= 1 {
		return nil, nil, fmt.Errorf("test fraction must be in [0, 1), got %g", cfg.TestFraction)
	}
	if cfg.MinSamplesLeaf < 1 {
		cfg.MinSamplesLeaf = 1
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	trainIdx, testIdx := stratifiedSplit(ds.Labels, cfg.TestFraction, rng)
	if len(trainIdx) == 0 {
		return nil, nil, fmt.Errorf("training split is empty")
	}

	numFeatures := len(ds.FeatureNames)
	numClasses := maxLabel(ds.Labels) + 1

	trees := make([]Tree, cfg.NumTrees)
	importanceSum := make([]float64, numFeatures)
	for i := 0; i < cfg.NumTrees; i++ {
		sample := bootstrapSample(trainIdx, rng)
		builder := &treeBuilder{
			ds:             ds,
			numClasses:     numClasses,
			maxFeatures:    int(math.Sqrt(float64(numFeatures))),
			minSamplesLeaf: cfg.MinSamplesLeaf,
			rng:            rng,
			importances:    make([]float64, numFeatures),
			totalSamples:   len(sample),
		}
		trees[i] = Tree{Nodes: builder.build(sample)}

		treeTotal := 0.0
		for _, imp := range builder.importances {
			treeTotal += imp
		}
		if treeTotal > 0 {
			for f := range importanceSum {
				importanceSum[f] += builder.importances[f] / treeTotal
			}
		}
	}

	importances := make(map[string]float64, numFeatures)
	var total float64
	for _, imp := range importanceSum {
		total += imp
	}
	for f, name := range ds.FeatureNames {
		if total > 0 {
			importances[name] = importanceSum[f] / total
		} else {
			importances[name] = 0
		}
	}

	classes := make([]int, numClasses)
	for c := range classes {
		classes[c] = c
	}

	artifact := &Artifact{
		Version:      uuid.New().String(),
		TrainedAt:    time.Now().UTC(),
		FeatureNames: ds.FeatureNames,
		Classes:      classes,
		NumTrees:     cfg.NumTrees,
		Importances:  importances,
		Trees:        trees,
	}

	forest, err := NewForest(artifact)
	if err != nil {
		return nil, nil, err
	}

	report, err := evaluate(forest, ds, testIdx, numClasses)
	if err != nil {
		return nil, nil, err
	}

	return artifact, report, nil
}

func validateDataset(ds *Dataset) error {
	if ds == nil || len(ds.Features) == 0 {
		return fmt.Errorf("dataset is empty")
	}
	if len(ds.Features) != len(ds.Labels) {
		return fmt.Errorf("feature rows (%d) and labels (%d) differ", len(ds.Features), len(ds.Labels))
	}
	if len(ds.FeatureNames) == 0 {
		return fmt.Errorf("dataset has no feature names")
	}
	for i, row := range ds.Features {
		if len(row) != len(ds.FeatureNames) {
			return fmt.Errorf("row %d has %d features, want %d", i, len(row), len(ds.FeatureNames))
		}
	}
	for i, label := range ds.Labels {
		if label < 0 {
			return fmt.Errorf("row %d has negative label %d", i, label)
		}
	}
	return nil
}

func maxLabel(labels []int) int {
	max := 0
	for _, l := range labels {
		if l > max {
			max = l
		}
	}
	return max
}

// stratifiedSplit shuffles indices within each class and reserves
// testFraction of every class for evaluation, so class balance is preserved
// on both sides of the split.
func stratifiedSplit(labels []int, testFraction float64, rng *rand.Rand) (train, test []int) {
	byClass := make(map[int][]int)
	classOrder := make([]int, 0)
	for i, label := range labels {
		if _, seen := byClass[label]; !seen {
			classOrder = append(classOrder, label)
		}
		byClass[label] = append(byClass[label], i)
	}

	for _, class := range classOrder {
		idx := byClass[class]
		rng.Shuffle(len(idx), func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })

		numTest := int(math.Round(float64(len(idx)) * testFraction))
		if numTest >= len(idx) {
			numTest = len(idx) - 1
		}
		test = append(test, idx[:numTest]...)
		train = append(train, idx[numTest:]...)
	}
	return train, test
}

// bootstrapSample draws len(idx) indices with replacement.
func bootstrapSample(idx []int, rng *rand.Rand) []int {
	sample := make([]int, len(idx))
	for i := range sample {
		sample[i] = idx[rng.Intn(len(idx))]
	}
	return sample
}

// treeBuilder grows one CART tree on a bootstrap sample, splitting on Gini
// impurity over a random sqrt(p) feature subset at each node.
type treeBuilder struct {
	ds             *Dataset
	numClasses     int
	maxFeatures    int
	minSamplesLeaf int
	rng            *rand.Rand
	importances    []float64
	totalSamples   int

	nodes []TreeNode
}

func (b *treeBuilder) build(sample []int) []TreeNode {
	b.nodes = b.nodes[:0]
	b.grow(sample)
	return b.nodes
}

// grow appends the subtree for the sample and returns its root node index.
func (b *treeBuilder) grow(sample []int) int {
	counts := b.classCounts(sample)
	nodeIdx := len(b.nodes)

	feature, threshold, gain, left, right := b.bestSplit(sample, counts)
	if feature == leafFeature {
		b.nodes = append(b.nodes, TreeNode{Feature: leafFeature, Value: counts})
		return nodeIdx
	}

	// Weighted impurity decrease, accumulated per feature across the tree.
	b.importances[feature] += float64(len(sample)) / float64(b.totalSamples) * gain

	b.nodes = append(b.nodes, TreeNode{Feature: feature, Threshold: threshold})
	leftIdx := b.grow(left)
	rightIdx := b.grow(right)
	b.nodes[nodeIdx].Left = leftIdx
	b.nodes[nodeIdx].Right = rightIdx
	return nodeIdx
}

func (b *treeBuilder) classCounts(sample []int) []float64 {
	counts := make([]float64, b.numClasses)
	for _, i := range sample {
		counts[b.ds.Labels[i]]++
	}
	return counts
}

func gini(counts []float64, total float64) float64 {
	if total == 0 {
		return 0
	}
	impurity := 1.0
	for _, c := range counts {
		p := c / total
		impurity -= p * p
	}
	return impurity
}

func isPure(counts []float64) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

// bestSplit searches a random feature subset for the split with the largest
// Gini gain. It returns feature == leafFeature when no split improves on the
// node or the node cannot be split further.
func (b *treeBuilder) bestSplit(sample []int, counts []float64) (feature int, threshold, gain float64, left, right []int) {
	feature = leafFeature
	total := float64(len(sample))
	if len(sample) < 2*b.minSamplesLeaf || isPure(counts) {
		return
	}

	parentImpurity := gini(counts, total)
	if parentImpurity == 0 {
		return
	}

	features := b.rng.Perm(len(b.ds.FeatureNames))
	if b.maxFeatures > 0 && b.maxFeatures < len(features) {
		features = features[:b.maxFeatures]
	}

	for _, f := range features {
		ordered := make([]int, len(sample))
		copy(ordered, sample)
		sortByFeature(ordered, b.ds.Features, f)

		leftCounts := make([]float64, b.numClasses)
		rightCounts := make([]float64, b.numClasses)
		copy(rightCounts, counts)

		for split := 1; split < len(ordered); split++ {
			label := b.ds.Labels[ordered[split-1]]
			leftCounts[label]++
			rightCounts[label]--

			prev := b.ds.Features[ordered[split-1]][f]
			next := b.ds.Features[ordered[split]][f]
			if prev == next {
				continue
			}
			if split < b.minSamplesLeaf || len(ordered)-split < b.minSamplesLeaf {
				continue
			}

			leftTotal := float64(split)
			rightTotal := total - leftTotal
			weighted := leftTotal/total*gini(leftCounts, leftTotal) +
				rightTotal/total*gini(rightCounts, rightTotal)
			candidateGain := parentImpurity - weighted

			if candidateGain > gain {
				gain = candidateGain
				feature = f
				threshold = (prev + next) / 2
			}
		}
	}

	if feature == leafFeature {
		return
	}

	for _, i := range sample {
		if b.ds.Features[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	// Degenerate splits can only happen with NaN-free inputs if the
	// threshold landed on a feature plateau; treat the node as a leaf.
	if len(left) == 0 || len(right) == 0 {
		feature = leafFeature
		left, right = nil, nil
	}
	return
}

func sortByFeature(idx []int, features [][]float64, f int) {
	sort.Slice(idx, func(a, b int) bool {
		return features[idx[a]][f] < features[idx[b]][f]
	})
}
