package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/environment-data-generator/internal/config"
	"github.com/kjstillabower/environment-data-generator/internal/generator"
	"github.com/kjstillabower/environment-data-generator/internal/models"
	"github.com/kjstillabower/environment-data-generator/internal/observability"
	"github.com/kjstillabower/environment-data-generator/internal/output"
)

// Result describes one completed run.
type Result struct {
	Path     string
	Records  int
	Bytes    int64
	Dates    []time.Time
	Duration time.Duration
}

// DatasetService generates a synthetic dataset and writes it to the configured path.
type DatasetService struct {
	cfg    *config.Config
	logger *zap.Logger
	now    func() time.Time
	source generator.Source
}

// NewDatasetService creates a DatasetService. A seeded source is used when cfg.Seeded is set;
// otherwise every service gets fresh randomness. now supplies "today"; nil means time.Now.
func NewDatasetService(cfg *config.Config, logger *zap.Logger, now func() time.Time) *DatasetService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	var src generator.Source
	if cfg.Seeded {
		src = generator.NewSource(cfg.Seed)
	} else {
		src = generator.NewRandomSource()
	}
	return &DatasetService{cfg: cfg, logger: logger, now: now, source: src}
}

// Run generates the dataset and writes it. The file is either fully written or an error is returned;
// a failed write may leave a partial file behind.
func (s *DatasetService) Run(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	today := s.now()
	start := time.Now()
	ds, err := generator.Generate(s.cfg.Locations, s.cfg.DayCount, today, s.source)
	if err != nil {
		return Result{}, err
	}
	elapsed := time.Since(start)
	observability.RecordGeneration(ds, elapsed)

	dates := generator.DateRange(today, s.cfg.DayCount)
	s.logger.Info("dataset generated",
		zap.Int("records", len(ds)),
		zap.Strings("locations", ds.Locations()),
		zap.String("from", dates[0].Format(models.DateLayout)),
		zap.String("to", dates[len(dates)-1].Format(models.DateLayout)),
		zap.Bool("seeded", s.cfg.Seeded),
		zap.Duration("duration", elapsed),
	)

	n, err := output.WriteFile(s.cfg.OutputPath, ds)
	if err != nil {
		return Result{}, fmt.Errorf("save dataset: %w", err)
	}
	observability.RecordOutput(n, time.Now())
	s.logger.Info("dataset written", zap.String("path", s.cfg.OutputPath), zap.Int64("bytes", n))

	return Result{
		Path:     s.cfg.OutputPath,
		Records:  len(ds),
		Bytes:    n,
		Dates:    dates,
		Duration: elapsed,
	}, nil
}
