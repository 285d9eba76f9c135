package config

import "time"

// Default configuration values.
const (
	defaultServiceName     = "lead-scorer"
	defaultServiceVersion  = "1.0.0"
	defaultServicePort     = 8080
	defaultConcurrency     = 10
	defaultBatchLimit      = 100
	defaultCSVRowLimit     = 5000
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultChatModel       = "claude-sonnet-4-0"
	defaultChatMaxTokens   = 1024
	defaultChatPerMinute   = 20
	defaultChatTimeoutSec  = 30
	defaultShutdownTimeout = 10 * time.Second
)

// Config holds all configuration for the lead scoring service.
type Config struct {
	Service ServiceConfig `yaml:"service"`
	Scoring ScoringConfig `yaml:"scoring"`
	Chat    ChatConfig    `yaml:"chat"`
	Logging LoggingConfig `yaml:"logging"`
	Auth    AuthConfig    `yaml:"auth"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name            string        `yaml:"name"`
	Version         string        `yaml:"version"`
	Port            int           `env:"SCORER_PORT"        yaml:"port"`
	Debug           bool          `env:"APP_DEBUG"          yaml:"debug"`
	Concurrency     int           `env:"SCORER_CONCURRENCY" yaml:"concurrency"`
	BatchLimit      int           `yaml:"batch_limit"`
	CSVRowLimit     int           `yaml:"csv_row_limit"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// ScoringConfig holds signal catalog settings.
type ScoringConfig struct {
	// CatalogPath points to a YAML signal catalog. Empty means the built-in
	// catalog is used.
	CatalogPath string `env:"SCORER_CATALOG_PATH" yaml:"catalog_path"`
}

// ChatConfig holds lead advisor chat settings.
type ChatConfig struct {
	APIKey            string        `env:"ANTHROPIC_API_KEY" yaml:"api_key"`
	Model             string        `yaml:"model"`
	MaxTokens         int           `yaml:"max_tokens"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
	Timeout           time.Duration `yaml:"timeout"`
}

// Enabled reports whether the chat advisor can be used.
func (c *ChatConfig) Enabled() bool {
	return c.APIKey != ""
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	JWTSecret string `env:"AUTH_JWT_SECRET" yaml:"jwt_secret"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return loadWithDefaults[Config](path, SetDefaults)
}

// SetDefaults applies default values to the config.
func SetDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setChatDefaults(&cfg.Chat)
	setLoggingDefaults(&cfg.Logging)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.Concurrency == 0 {
		s.Concurrency = defaultConcurrency
	}
	if s.BatchLimit == 0 {
		s.BatchLimit = defaultBatchLimit
	}
	if s.CSVRowLimit == 0 {
		s.CSVRowLimit = defaultCSVRowLimit
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = defaultShutdownTimeout
	}
}

func setChatDefaults(c *ChatConfig) {
	if c.Model == "" {
		c.Model = defaultChatModel
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = defaultChatMaxTokens
	}
	if c.RequestsPerMinute == 0 {
		c.RequestsPerMinute = defaultChatPerMinute
	}
	if c.Timeout == 0 {
		c.Timeout = defaultChatTimeoutSec * time.Second
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}
