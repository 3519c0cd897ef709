package observability

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// FlushTelemetry exports metrics to metricsPath (skipped when empty) and flushes logs.
// Call once before process exit. Both steps run; their errors are joined.
func FlushTelemetry(ctx context.Context, logger *zap.Logger, metricsPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var errs []error
	if metricsPath != "" {
		if err := WriteMetricsTextfile(metricsPath); err != nil {
			errs = append(errs, err)
		} else if logger != nil {
			logger.Debug("metrics exported", zap.String("path", metricsPath))
		}
	}
	if logger != nil {
		if err := logger.Sync(); err != nil {
			errs = append(errs, fmt.Errorf("flush logs: %w", err))
		}
	}
	return errors.Join(errs...)
}
