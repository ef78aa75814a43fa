package config

import (
	"fmt"

	"github.com/cwbudde/wavescope/dsp/window"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Paths    PathsConfig    `yaml:"paths"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Logging  LoggingConfig  `yaml:"logging"`
	Sentry   SentryConfig   `yaml:"sentry"`
}

type ServerConfig struct {
	BindAddress        string          `yaml:"bindAddress"`
	Port               int             `yaml:"port"`
	MetricsBindAddress string          `yaml:"metricsBindAddress"`
	MetricsPort        int             `yaml:"metricsPort"`
	MaxUploadBytes     int64           `yaml:"maxUploadBytes"`
	RateLimit          RateLimitConfig `yaml:"rateLimit"`
}

type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	BurstCount        int     `yaml:"burst"`
}

type PathsConfig struct {
	DataDir    string `yaml:"dataDir"`
	FiguresDir string `yaml:"figuresDir"`
}

// AnalysisConfig sets the defaults for analysis runs started from the
// dashboard and the interactive menu. The window name is resolved with
// window.ParseType.
type AnalysisConfig struct {
	FFTSize       int    `yaml:"fftSize"`
	Window        string `yaml:"window"`
	HarmonicPeaks int    `yaml:"harmonicPeaks"`
}

type LoggingConfig struct {
	Directory string `yaml:"directory"`
	Level     string `yaml:"level"`
	JsonLogs  bool   `yaml:"jsonLogs"`
	Colors    bool   `yaml:"colors"`
}

type SentryConfig struct {
	Dsn         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
	Debug       bool   `yaml:"debug"`
}

// Enabled reports whether error reporting is configured. An empty dsn
// turns sentry off.
func (c SentryConfig) Enabled() bool {
	return c.Dsn != ""
}

// WindowType resolves the configured window name.
func (c AnalysisConfig) WindowType() (window.Type, error) {
	return window.ParseType(c.Window)
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.MetricsPort < 1 || c.Server.MetricsPort > 65535 {
		return fmt.Errorf("server.metricsPort out of range: %d", c.Server.MetricsPort)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.maxUploadBytes must be > 0: %d", c.Server.MaxUploadBytes)
	}

	switch c.Analysis.FFTSize {
	case 256, 512, 1024, 2048, 4096, 8192:
	default:
		return fmt.Errorf("analysis.fftSize must be a power of two between 256 and 8192: %d", c.Analysis.FFTSize)
	}

	if _, err := c.Analysis.WindowType(); err != nil {
		return fmt.Errorf("analysis.window: %w", err)
	}
	if c.Analysis.HarmonicPeaks <= 0 {
		return fmt.Errorf("analysis.harmonicPeaks must be > 0: %d", c.Analysis.HarmonicPeaks)
	}

	return nil
}
