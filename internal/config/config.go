// Package config loads sitecast configuration from file and environment.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Paths      PathsConfig      `yaml:"paths" mapstructure:"paths"`
	EVM        EVMConfig        `yaml:"evm" mapstructure:"evm"`
	MonteCarlo MonteCarloConfig `yaml:"monte_carlo" mapstructure:"monte_carlo"`
	Alerts     AlertsConfig     `yaml:"alerts" mapstructure:"alerts"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// PathsConfig locates the sample inputs and the processed table directory.
type PathsConfig struct {
	Samples   string `yaml:"samples" mapstructure:"samples"`
	Processed string `yaml:"processed" mapstructure:"processed"`
}

// EVMConfig configures the timeseries build.
type EVMConfig struct {
	// EACMethod selects the EAC convention: "cpi" or "transparent".
	EACMethod string `yaml:"eac_method" mapstructure:"eac_method"`
}

// MonteCarloConfig configures the forecasting engine.
type MonteCarloConfig struct {
	Iterations   int     `yaml:"iterations" mapstructure:"iterations"`
	Seed         uint64  `yaml:"seed" mapstructure:"seed"`
	DayToDollars float64 `yaml:"day_to_dollars" mapstructure:"day_to_dollars"`
	CurvePoints  int     `yaml:"curve_points" mapstructure:"curve_points"`
}

// AlertsConfig configures threshold alerting.
type AlertsConfig struct {
	ThresholdsFile string  `yaml:"thresholds_file" mapstructure:"thresholds_file"`
	CPIRed         float64 `yaml:"cpi_red" mapstructure:"cpi_red"`
	SPIRed         float64 `yaml:"spi_red" mapstructure:"spi_red"`
}

// AnthropicConfig holds Anthropic API settings for narrative generation.
type AnthropicConfig struct {
	Key       string  `yaml:"key" mapstructure:"key"`
	Model     string  `yaml:"model" mapstructure:"model"`
	MaxTokens int64   `yaml:"max_tokens" mapstructure:"max_tokens"`
	RPS       float64 `yaml:"rps" mapstructure:"rps"`
}

// ServerConfig configures the dashboard API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SITECAST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("paths.samples", "data/samples")
	v.SetDefault("paths.processed", "data/processed")
	v.SetDefault("evm.eac_method", "cpi")
	v.SetDefault("monte_carlo.iterations", 5000)
	v.SetDefault("monte_carlo.seed", 42)
	v.SetDefault("monte_carlo.day_to_dollars", 15000.0)
	v.SetDefault("monte_carlo.curve_points", 100)
	v.SetDefault("alerts.cpi_red", 0.90)
	v.SetDefault("alerts.spi_red", 0.85)
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("anthropic.rps", 1.0)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
