package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/kjstillabower/environment-data-generator/internal/config"
	"github.com/kjstillabower/environment-data-generator/internal/observability"
	"github.com/kjstillabower/environment-data-generator/internal/service"
)

func main() {
	logger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	logger, _ = observability.WithRunID(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}
	logger.Debug("config loaded",
		zap.Strings("locations", cfg.Locations),
		zap.Int("day_count", cfg.DayCount),
		zap.String("output_path", cfg.OutputPath),
		zap.Bool("seeded", cfg.Seeded),
	)

	ctx := context.Background()
	res, err := service.NewDatasetService(cfg, logger, nil).Run(ctx)
	if err != nil {
		logger.Fatal("generate dataset", zap.Error(err))
	}

	fmt.Printf("Synthetic dataset saved to %s\n", res.Path)

	if err := observability.FlushTelemetry(ctx, logger, cfg.MetricsTextfile); err != nil {
		logger.Warn("telemetry flush", zap.Error(err))
	}
}
