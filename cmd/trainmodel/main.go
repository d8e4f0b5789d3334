package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/eduinsight/eduinsight/internal/app/models"
	"github.com/eduinsight/eduinsight/internal/pkg/logger"
	"github.com/eduinsight/eduinsight/internal/pkg/mlmodel"
)

func main() {
	var (
		csvPath = flag.String("csv", "data/student_performance.csv", "Path to the training CSV file")
		outPath = flag.String("out", "models/at_risk_model.json", "Path to write the trained model artifact")
		trees   = flag.Int("trees", 0, "Number of trees (0 uses the default)")
		seed    = flag.Int64("seed", 0, "Random seed (0 uses the default)")
	)
	flag.Parse()

	cfg := mlmodel.DefaultTrainConfig()
	if *trees > 0 {
		cfg.NumTrees = *trees
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	dataset, err := mlmodel.LoadCSV(*csvPath, models.FeatureOrder, "passed")
	if err != nil {
		logger.Error().Err(err).Str("csv", *csvPath).Msg("Failed to load training data")
		os.Exit(1)
	}
	logger.Info().
		Int("samples", len(dataset.Labels)).
		Int("dropped", dataset.Dropped).
		Str("csv", *csvPath).
		Msg("Training data loaded")

	artifact, report, err := mlmodel.Train(dataset, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Training failed")
		os.Exit(1)
	}

	fmt.Println(report.String())

	store := mlmodel.NewStore(*outPath)
	if err := store.Save(artifact); err != nil {
		logger.Error().Err(err).Str("out", *outPath).Msg("Failed to save model artifact")
		os.Exit(1)
	}

	logger.Info().
		Str("out", *outPath).
		Int("trees", artifact.NumTrees).
		Float64("accuracy", report.Accuracy).
		Msg("Model trained and saved")
}
