// Package config provides configuration loading for busheadway studies.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"busheadway/logging"
	"busheadway/model"
	"gopkg.in/yaml.v3"
)

// StudyConfig contains every setting of a headway study.
type StudyConfig struct {
	// Horizon is the simulated period during which buses leave A.
	Horizon time.Duration `yaml:"horizon"`

	// Seed makes runs reproducible. Nil seeds from the clock.
	Seed *int64 `yaml:"seed,omitempty"`

	// NoPassing forbids buses from overtaking between A and B in replication runs.
	NoPassing bool `yaml:"no_passing"`

	// Replications is the number of independent runs per study.
	Replications int `yaml:"replications"`

	// Checkpoints are the prefix lengths reported as mean/stddev pairs.
	Checkpoints []int `yaml:"checkpoints"`

	// Workers > 0 runs replications concurrently, each on its own stream
	// derived from Seed. Zero shares one stream sequentially.
	Workers int `yaml:"workers"`

	// MaxTrips caps the buses recorded per replication (0 = no cap).
	MaxTrips int `yaml:"max_trips"`

	Line    LineConfig    `yaml:"line"`
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
}

// LineConfig holds the distribution parameters of the corridor, in minutes.
type LineConfig struct {
	Name         string  `yaml:"name"`
	TravelMean   float64 `yaml:"travel_mean"`
	TravelStdDev float64 `yaml:"travel_stddev"`
	DwellMin     float64 `yaml:"dwell_min"`
	DwellMax     float64 `yaml:"dwell_max"`
	MeanHeadway  float64 `yaml:"mean_headway"`
}

// LoggingConfig configures operational logging.
type LoggingConfig struct {
	// Level is "info" (default), "debug" or "trace".
	Level string `yaml:"level"`
}

// OutputConfig selects how results are reported.
type OutputConfig struct {
	// Format is "text" (default) or "json".
	Format string `yaml:"format"`

	// CSVPath, when set, receives a per-replication CSV report.
	CSVPath string `yaml:"csv_path,omitempty"`
}

// Default returns a StudyConfig matching the reference study:
// 5 hours, 20 replications, checkpoints 5/10/15/20.
func Default() *StudyConfig {
	l := model.DefaultLine()
	return &StudyConfig{
		Horizon:      5 * time.Hour,
		Replications: 20,
		Checkpoints:  []int{5, 10, 15, 20},
		Line: LineConfig{
			Name:         l.Name,
			TravelMean:   l.TravelMean,
			TravelStdDev: l.TravelStdDev,
			DwellMin:     l.DwellMin,
			DwellMax:     l.DwellMax,
			MeanHeadway:  l.MeanHeadway,
		},
		Logging: LoggingConfig{Level: "info"},
		Output:  OutputConfig{Format: "text"},
	}
}

// Load builds the configuration.
// Order: defaults -> YAML file (when path is non-empty) -> environment variables.
func Load(path string) (*StudyConfig, error) {
	config := Default()
	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		config = fileConfig
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("environment override: %w", err)
	}

	return config, nil
}

// LoadFromFile loads configuration from a YAML file. Keys absent from the
// file keep their defaults.
func LoadFromFile(path string) (*StudyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := validateDocument(data); err != nil {
		return nil, err
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return config, nil
}

// Validate checks that the configuration is usable.
func (c *StudyConfig) Validate() error {
	if c.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %v", c.Horizon)
	}
	if c.Replications < 1 {
		return fmt.Errorf("replications must be >= 1, got %d", c.Replications)
	}
	for _, n := range c.Checkpoints {
		if n < 0 || n > c.Replications {
			return fmt.Errorf("checkpoint %d out of range (replications: %d)", n, c.Replications)
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.MaxTrips < 0 {
		return fmt.Errorf("max_trips must be >= 0, got %d", c.MaxTrips)
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}
	switch c.Output.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid output format: %s (valid: text, json)", c.Output.Format)
	}
	if err := c.ModelLine().Validate(); err != nil {
		return fmt.Errorf("line: %w", err)
	}
	return nil
}

// ModelLine converts the line section into a model.Line.
func (c *StudyConfig) ModelLine() model.Line {
	return model.Line{
		Name:         c.Line.Name,
		TravelMean:   c.Line.TravelMean,
		TravelStdDev: c.Line.TravelStdDev,
		DwellMin:     c.Line.DwellMin,
		DwellMax:     c.Line.DwellMax,
		MeanHeadway:  c.Line.MeanHeadway,
	}
}

// HorizonMinutes returns the horizon in simulated minutes.
func (c *StudyConfig) HorizonMinutes() float64 { return c.Horizon.Minutes() }

// Hours returns the number of hour buckets covering the horizon.
func (c *StudyConfig) Hours() int { return int(math.Ceil(c.Horizon.Hours())) }

// applyEnvOverrides applies environment variable overrides to the config.
// A variable that is set but cannot be parsed is an error.
func applyEnvOverrides(config *StudyConfig) error {
	if v := os.Getenv("BUSHEADWAY_HORIZON"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("BUSHEADWAY_HORIZON: %w", err)
		}
		config.Horizon = d
	}

	if v := os.Getenv("BUSHEADWAY_SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("BUSHEADWAY_SEED: %w", err)
		}
		config.Seed = &n
	}

	if v := os.Getenv("BUSHEADWAY_NO_PASSING"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("BUSHEADWAY_NO_PASSING: %w", err)
		}
		config.NoPassing = b
	}

	if v := os.Getenv("BUSHEADWAY_REPLICATIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BUSHEADWAY_REPLICATIONS: %w", err)
		}
		config.Replications = n
	}

	if v := os.Getenv("BUSHEADWAY_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BUSHEADWAY_WORKERS: %w", err)
		}
		config.Workers = n
	}

	if v := os.Getenv("BUSHEADWAY_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	return nil
}
