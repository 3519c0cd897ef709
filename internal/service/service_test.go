package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kjstillabower/environment-data-generator/internal/config"
	"github.com/kjstillabower/environment-data-generator/internal/output"
	"github.com/kjstillabower/environment-data-generator/internal/validation"
)

func fixedNow() time.Time {
	return time.Date(2024, time.March, 8, 10, 0, 0, 0, time.UTC)
}

func testConfig(t *testing.T, seeded bool) *config.Config {
	t.Helper()
	return &config.Config{
		Locations:  []string{"Cheras", "Setapak", "Bangsar", "Kepong", "KLCC"},
		DayCount:   7,
		Seed:       2024,
		Seeded:     seeded,
		OutputPath: filepath.Join(t.TempDir(), "data", "raw", "environment_kl.csv"),
	}
}

func TestDatasetService_Run(t *testing.T) {
	cfg := testConfig(t, true)
	core, logs := observer.New(zap.InfoLevel)
	svc := NewDatasetService(cfg, zap.New(core), fixedNow)

	res, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Records != 35 {
		t.Errorf("Records = %d, want 35", res.Records)
	}
	if res.Path != cfg.OutputPath {
		t.Errorf("Path = %q, want %q", res.Path, cfg.OutputPath)
	}
	if len(res.Dates) != 7 || res.Dates[6].Format("2006-01-02") != "2024-03-07" {
		t.Errorf("Dates = %v, want 7 dates ending 2024-03-07", res.Dates)
	}

	ds, err := output.ReadFile(cfg.OutputPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(ds) != 35 {
		t.Errorf("file rows = %d, want 35", len(ds))
	}
	info, err := os.Stat(cfg.OutputPath)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if info.Size() != res.Bytes {
		t.Errorf("Bytes = %d, file size = %d", res.Bytes, info.Size())
	}

	if n := logs.FilterMessage("dataset written").Len(); n != 1 {
		t.Errorf("dataset written logs = %d, want 1", n)
	}
}

func TestDatasetService_SeededRunsByteIdentical(t *testing.T) {
	cfgA := testConfig(t, true)
	cfgB := testConfig(t, true)
	if _, err := NewDatasetService(cfgA, nil, fixedNow).Run(context.Background()); err != nil {
		t.Fatalf("Run() A error = %v", err)
	}
	if _, err := NewDatasetService(cfgB, nil, fixedNow).Run(context.Background()); err != nil {
		t.Fatalf("Run() B error = %v", err)
	}
	a, err := os.ReadFile(cfgA.OutputPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	b, err := os.ReadFile(cfgB.OutputPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("seeded runs produced different files")
	}
}

func TestDatasetService_UnseededRunsDiffer(t *testing.T) {
	cfgA := testConfig(t, false)
	cfgB := testConfig(t, false)
	resA, err := NewDatasetService(cfgA, nil, fixedNow).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() A error = %v", err)
	}
	resB, err := NewDatasetService(cfgB, nil, fixedNow).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() B error = %v", err)
	}
	if resA.Records != resB.Records {
		t.Errorf("row counts differ: %d vs %d", resA.Records, resB.Records)
	}
	a, _ := os.ReadFile(cfgA.OutputPath)
	b, _ := os.ReadFile(cfgB.OutputPath)
	if bytes.Equal(a, b) {
		t.Error("unseeded runs produced identical files")
	}
}

func TestDatasetService_InvalidDayCount(t *testing.T) {
	cfg := testConfig(t, true)
	cfg.DayCount = 0
	_, err := NewDatasetService(cfg, nil, fixedNow).Run(context.Background())
	if !errors.Is(err, validation.ErrDayCountNotPositive) {
		t.Errorf("Run() error = %v, want ErrDayCountNotPositive", err)
	}
	if _, statErr := os.Stat(cfg.OutputPath); !os.IsNotExist(statErr) {
		t.Errorf("output file should not exist after rejected run, stat err = %v", statErr)
	}
}

func TestDatasetService_WriteError(t *testing.T) {
	cfg := testConfig(t, true)
	blocker := filepath.Join(t.TempDir(), "data")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg.OutputPath = filepath.Join(blocker, "raw", "out.csv")
	if _, err := NewDatasetService(cfg, nil, fixedNow).Run(context.Background()); err == nil {
		t.Fatal("Run() expected error when output directory cannot be created, got nil")
	}
}

func TestDatasetService_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := testConfig(t, true)
	if _, err := NewDatasetService(cfg, nil, fixedNow).Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
