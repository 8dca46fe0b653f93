package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Analysis AnalysisConfig `envconfig:"ANALYSIS"`
	Server   ServerConfig   `envconfig:"SERVER"`
	Logging  LoggingConfig  `envconfig:"LOGGING"`
	Paths    PathsConfig    `envconfig:"PATHS"`
}

// AnalysisConfig contains the statistical parameters of the pipeline.
type AnalysisConfig struct {
	// ConfidenceLevel for interval estimates, exclusive of 0 and 1.
	ConfidenceLevel float64 `envconfig:"CONFIDENCE_LEVEL" default:"0.95" validate:"gt=0,lt=1"`
}

// ServerConfig contains report server configuration.
type ServerConfig struct {
	Port            int             `envconfig:"PORT" default:"8080" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration   `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration   `envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration   `envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration   `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimit       RateLimitConfig `envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `envconfig:"ENABLED" default:"true"`
	RPS     float64 `envconfig:"RPS" default:"100"`
	Burst   int     `envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
}

// PathsConfig contains file system paths.
type PathsConfig struct {
	// InputFile is the cleaned QLFS dataset, .xlsx or .csv.
	InputFile  string `envconfig:"INPUT_FILE" default:"data/qlfs_clean.xlsx" validate:"required"`
	ReportsDir string `envconfig:"REPORTS_DIR" default:"reports" validate:"required"`
}

// fileConfig is the YAML schema of the config file. Every field is a pointer
// so an absent key is distinguishable from a zero value (a file may set
// rate_limit.enabled to false).
type fileConfig struct {
	Analysis struct {
		ConfidenceLevel *float64 `yaml:"confidence_level"`
	} `yaml:"analysis"`
	Server struct {
		Port            *int      `yaml:"port"`
		ReadTimeout     *duration `yaml:"read_timeout"`
		WriteTimeout    *duration `yaml:"write_timeout"`
		IdleTimeout     *duration `yaml:"idle_timeout"`
		ShutdownTimeout *duration `yaml:"shutdown_timeout"`
		RateLimit       struct {
			Enabled *bool    `yaml:"enabled"`
			RPS     *float64 `yaml:"rps"`
			Burst   *int     `yaml:"burst"`
		} `yaml:"rate_limit"`
	} `yaml:"server"`
	Logging struct {
		Level  *string `yaml:"level"`
		Format *string `yaml:"format"`
	} `yaml:"logging"`
	Paths struct {
		InputFile  *string `yaml:"input_file"`
		ReportsDir *string `yaml:"reports_dir"`
	} `yaml:"paths"`
}

// duration decodes Go duration strings ("15s", "1m30s") from YAML.
type duration time.Duration

func (d *duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = duration(parsed)
	return nil
}

// Load loads configuration from an optional YAML file and QLFS_-prefixed
// environment variables; the environment takes precedence.
func Load() (*Config, error) {
	return LoadFromFile(configFilePath())
}

// LoadFromFile is Load with an explicit config file location.
func LoadFromFile(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("QLFS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fileCfg, err := loadYAML(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
			cfg = merge(fileCfg, cfg)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the structural constraints on the configuration.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func configFilePath() string {
	if path := os.Getenv("QLFS_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

func loadYAML(filePath string) (*fileConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// merge overlays env config on file config. envconfig fills defaults for
// unset variables, so "env wins" is decided by whether the variable was
// actually set, not by comparing against zero values; file keys are present
// exactly when their pointer is non-nil.
func merge(fileCfg *fileConfig, envCfg Config) Config {
	overlay(&envCfg.Analysis.ConfidenceLevel, fileCfg.Analysis.ConfidenceLevel, "QLFS_ANALYSIS_CONFIDENCE_LEVEL")

	overlay(&envCfg.Server.Port, fileCfg.Server.Port, "QLFS_SERVER_PORT")
	overlayDuration(&envCfg.Server.ReadTimeout, fileCfg.Server.ReadTimeout, "QLFS_SERVER_READ_TIMEOUT")
	overlayDuration(&envCfg.Server.WriteTimeout, fileCfg.Server.WriteTimeout, "QLFS_SERVER_WRITE_TIMEOUT")
	overlayDuration(&envCfg.Server.IdleTimeout, fileCfg.Server.IdleTimeout, "QLFS_SERVER_IDLE_TIMEOUT")
	overlayDuration(&envCfg.Server.ShutdownTimeout, fileCfg.Server.ShutdownTimeout, "QLFS_SERVER_SHUTDOWN_TIMEOUT")
	overlay(&envCfg.Server.RateLimit.Enabled, fileCfg.Server.RateLimit.Enabled, "QLFS_SERVER_RATE_LIMIT_ENABLED")
	overlay(&envCfg.Server.RateLimit.RPS, fileCfg.Server.RateLimit.RPS, "QLFS_SERVER_RATE_LIMIT_RPS")
	overlay(&envCfg.Server.RateLimit.Burst, fileCfg.Server.RateLimit.Burst, "QLFS_SERVER_RATE_LIMIT_BURST")

	overlay(&envCfg.Logging.Level, fileCfg.Logging.Level, "QLFS_LOGGING_LEVEL")
	overlay(&envCfg.Logging.Format, fileCfg.Logging.Format, "QLFS_LOGGING_FORMAT")

	overlay(&envCfg.Paths.InputFile, fileCfg.Paths.InputFile, "QLFS_PATHS_INPUT_FILE")
	overlay(&envCfg.Paths.ReportsDir, fileCfg.Paths.ReportsDir, "QLFS_PATHS_REPORTS_DIR")

	return envCfg
}

func overlay[T any](dst *T, src *T, envVar string) {
	if src != nil && !envSet(envVar) {
		*dst = *src
	}
}

func overlayDuration(dst *time.Duration, src *duration, envVar string) {
	if src != nil && !envSet(envVar) {
		*dst = time.Duration(*src)
	}
}

func envSet(name string) bool {
	_, ok := os.LookupEnv(name)
	return ok
}
