package mlmodel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Dataset is the tabular training input: one feature row per sample plus a
// binary label column.
type Dataset struct {
	FeatureNames []string
	Features     [][]float64
	Labels       []int
	// Dropped counts the rows discarded for missing or non-numeric values.
	Dropped int
}

// LoadCSV reads a training dataset from a CSV file. The header must contain
// every feature column plus the label column; any row with a missing or
// unparsable value in those columns is dropped, matching the reference
// trainer's dropna behavior.
func LoadCSV(path string, featureNames []string, labelColumn string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open training data: %w", err)
	}
	defer f.Close()

	return ReadCSV(f, featureNames, labelColumn)
}

// ReadCSV parses CSV training data from a reader.
func ReadCSV(r io.Reader, featureNames []string, labelColumn string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	featureCols := make([]int, len(featureNames))
	for i, name := range featureNames {
		col, ok := columns[name]
		if !ok {
			return nil, fmt.Errorf("missing feature column %q", name)
		}
		featureCols[i] = col
	}
	labelCol, ok := columns[labelColumn]
	if !ok {
		return nil, fmt.Errorf("missing label column %q", labelColumn)
	}

	ds := &Dataset{FeatureNames: featureNames}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row: %w", err)
		}

		features, ok := parseFeatures(row, featureCols)
		if !ok {
			ds.Dropped++
			continue
		}
		label, ok := parseLabel(row, labelCol)
		if !ok {
			ds.Dropped++
			continue
		}

		ds.Features = append(ds.Features, features)
		ds.Labels = append(ds.Labels, label)
	}

	if len(ds.Features) == 0 {
		return nil, fmt.Errorf("no usable rows in training data (%d dropped)", ds.Dropped)
	}
	return ds, nil
}

func parseFeatures(row []string, cols []int) ([]float64, bool) {
	features := make([]float64, len(cols))
	for i, col := range cols {
		if col >= len(row) {
			return nil, false
		}
		value := strings.TrimSpace(row[col])
		if value == "" {
			return nil, false
		}
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, false
		}
		features[i] = parsed
	}
	return features, true
}

func parseLabel(row []string, col int) (int, bool) {
	if col >= len(row) {
		return 0, false
	}
	value := strings.TrimSpace(row[col])
	if value == "" {
		return 0, false
	}
	// Labels may arrive as "1"/"0" or as floats like "1.0".
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	label := int(parsed)
	if float64(label) != parsed || label < 0 {
		return 0, false
	}
	return label, true
}
