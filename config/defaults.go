package config

func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			BindAddress:        "127.0.0.1",
			Port:               8080,
			MetricsBindAddress: "127.0.0.1",
			MetricsPort:        9090,
			MaxUploadBytes:     52428800, // 50mb
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerSecond: 5,
				BurstCount:        10,
			},
		},
		Paths: PathsConfig{
			DataDir:    "data",
			FiguresDir: "figures",
		},
		Analysis: AnalysisConfig{
			FFTSize:       1024,
			Window:        "rectangular",
			HarmonicPeaks: 10,
		},
		Logging: LoggingConfig{
			Directory: "",
			Level:     "info",
			JsonLogs:  false,
			Colors:    false,
		},
		Sentry: SentryConfig{
			Dsn:         "",
			Environment: "",
			Debug:       false,
		},
	}
}

// defaultConfigYAML is written verbatim when no config file exists. It
// must parse back into NewDefaultConfig exactly.
const defaultConfigYAML = `# wavescope configuration. The serve command picks up edits to this
# file live, other commands read it once at startup.

# Web dashboard and JSON API listener.
server:
  bindAddress: "127.0.0.1"
  port: 8080

  # Prometheus metrics get their own listener so the dashboard port
  # carries application traffic only.
  metricsBindAddress: "127.0.0.1"
  metricsPort: 9090

  # Uploads past this size are rejected before decoding. 50mb.
  maxUploadBytes: 52428800

  rateLimit:
    enabled: true
    requestsPerSecond: 5
    burst: 10

# Where uploaded audio and rendered figures land. Relative paths are
# resolved against the working directory.
paths:
  dataDir: "data"
  figuresDir: "figures"

# Defaults for analysis runs. CLI flags override these per run.
analysis:
  # One of 256, 512, 1024, 2048, 4096, 8192.
  fftSize: 1024
  # rectangular, hann, hamming, blackman or flattop.
  window: "rectangular"
  harmonicPeaks: 10

logging:
  # Empty logs to stdout only. Set a directory for rotating log files.
  directory: ""
  level: "info"
  jsonLogs: false
  colors: false

# Error reporting. Off while the dsn is empty.
sentry:
  dsn: ""
  environment: ""
  debug: false
`
