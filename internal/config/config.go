package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kjstillabower/environment-data-generator/internal/validation"
)

const (
	defaultDayCount    = 7
	defaultOutputPath  = "data/raw/environment_kl.csv"
	defaultLocationMin = 1
	defaultLocationMax = 100
	defaultEnvName     = "dev"
)

// DefaultLocations are the Kuala Lumpur districts sampled when no config file lists any.
var DefaultLocations = []string{"Cheras", "Setapak", "Bangsar", "Kepong", "KLCC"}

// Config holds generator configuration loaded from built-in defaults, YAML and env.
type Config struct {
	Locations []string
	DayCount  int

	// Seed is used only when Seeded is true; otherwise each run draws fresh randomness.
	Seed   uint64
	Seeded bool

	OutputPath      string
	MetricsTextfile string

	LocationMinLength int
	LocationMaxLength int
}

type fileConfig struct {
	Generator struct {
		Locations []string `yaml:"locations"`
		DayCount  int      `yaml:"day_count"`
		Seed      *uint64  `yaml:"seed"`
	} `yaml:"generator"`

	Output struct {
		Path string `yaml:"path"`
	} `yaml:"output"`

	Metrics struct {
		Textfile string `yaml:"textfile"`
	} `yaml:"metrics"`

	Validation struct {
		LocationMinLength int `yaml:"location_min_length"`
		LocationMaxLength int `yaml:"location_max_length"`
	} `yaml:"validation"`
}

// Load reads configuration from config/{ENV_NAME}.yaml relative to the working directory.
// With ENV_NAME unset, a missing config/dev.yaml is not an error and built-in defaults apply.
// OUTPUT_PATH, GENERATOR_SEED and METRICS_TEXTFILE override file values.
func Load() (*Config, error) {
	envName, explicit := os.LookupEnv("ENV_NAME")
	envName = strings.TrimSpace(envName)
	if envName == "" {
		envName = defaultEnvName
		explicit = false
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("config: get working directory: %w", err)
	}
	configPath := filepath.Join(cwd, "config", envName+".yaml")

	var fc fileConfig
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	case os.IsNotExist(err):
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	cfg.Locations = fc.Generator.Locations
	if len(cfg.Locations) == 0 {
		cfg.Locations = append([]string(nil), DefaultLocations...)
	}
	cfg.DayCount = fc.Generator.DayCount
	if cfg.DayCount == 0 {
		cfg.DayCount = defaultDayCount
	}
	if fc.Generator.Seed != nil {
		cfg.Seed = *fc.Generator.Seed
		cfg.Seeded = true
	}
	if s := strings.TrimSpace(os.Getenv("GENERATOR_SEED")); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("GENERATOR_SEED must be an unsigned integer, got %q", s)
		}
		cfg.Seed = seed
		cfg.Seeded = true
	}

	cfg.OutputPath = strings.TrimSpace(os.Getenv("OUTPUT_PATH"))
	if cfg.OutputPath == "" {
		cfg.OutputPath = strings.TrimSpace(fc.Output.Path)
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = defaultOutputPath
	}

	cfg.MetricsTextfile = strings.TrimSpace(os.Getenv("METRICS_TEXTFILE"))
	if cfg.MetricsTextfile == "" {
		cfg.MetricsTextfile = strings.TrimSpace(fc.Metrics.Textfile)
	}

	cfg.LocationMinLength = fc.Validation.LocationMinLength
	if cfg.LocationMinLength <= 0 {
		cfg.LocationMinLength = defaultLocationMin
	}
	cfg.LocationMaxLength = fc.Validation.LocationMaxLength
	if cfg.LocationMaxLength <= 0 {
		cfg.LocationMaxLength = defaultLocationMax
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks loaded values and trims location labels in place.
func validate(cfg *Config) error {
	if cfg.LocationMinLength > cfg.LocationMaxLength {
		return fmt.Errorf("validation.location_min_length (%d) exceeds location_max_length (%d)", cfg.LocationMinLength, cfg.LocationMaxLength)
	}
	locations, err := validation.ValidateLocations(cfg.Locations, cfg.LocationMinLength, cfg.LocationMaxLength)
	if err != nil {
		return fmt.Errorf("generator.locations: %w", err)
	}
	cfg.Locations = locations
	if err := validation.ValidateDayCount(cfg.DayCount); err != nil {
		return fmt.Errorf("generator.day_count: %w", err)
	}
	return nil
}
