// File: internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. CRYPTOGRAMS_DATABASE_DRIVER.
const EnvPrefix = "CRYPTOGRAMS"

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverNone     = "none"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Database() DatabaseConfig
	Corpus() CorpusConfig
	Solver() SolverConfig
	Server() ServerConfig

	// Solver Setters
	SetSolverMaxBatches(int)
	SetSolverTimeout(time.Duration)

	// Server Setters
	SetServerListen(string)
}

// Config holds the entire application configuration.
type Config struct {
	LoggerCfg   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	DatabaseCfg DatabaseConfig `mapstructure:"database" yaml:"database"`
	CorpusCfg   CorpusConfig   `mapstructure:"corpus" yaml:"corpus"`
	SolverCfg   SolverConfig   `mapstructure:"solver" yaml:"solver"`
	ServerCfg   ServerConfig   `mapstructure:"server" yaml:"server"`
}

// --- Interface Method Implementations (Getters) ---

func (c *Config) Logger() LoggerConfig     { return c.LoggerCfg }
func (c *Config) Database() DatabaseConfig { return c.DatabaseCfg }
func (c *Config) Corpus() CorpusConfig     { return c.CorpusCfg }
func (c *Config) Solver() SolverConfig     { return c.SolverCfg }
func (c *Config) Server() ServerConfig     { return c.ServerCfg }

// --- Interface Method Implementations (Setters) ---

func (c *Config) SetSolverMaxBatches(n int)        { c.SolverCfg.MaxBatches = n }
func (c *Config) SetSolverTimeout(d time.Duration) { c.SolverCfg.Timeout = d }
func (c *Config) SetServerListen(addr string)      { c.ServerCfg.Listen = addr }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// DatabaseConfig selects where puzzle answers are kept. Driver is one of sqlite, postgres or
// none. URL is used by postgres and Path by sqlite.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver"`
	URL    string `mapstructure:"url" yaml:"url"`
	Path   string `mapstructure:"path" yaml:"path"`
}

// CorpusConfig points at the word list and quotes file. Empty paths use the built-in data.
type CorpusConfig struct {
	WordsFile     string `mapstructure:"words_file" yaml:"words_file"`
	QuotesFile    string `mapstructure:"quotes_file" yaml:"quotes_file"`
	MinWordLength int    `mapstructure:"min_word_length" yaml:"min_word_length"`
	MaxWordLength int    `mapstructure:"max_word_length" yaml:"max_word_length"`
}

// SolverConfig tunes the cryptarithm search. MaxBatches of 0 searches until a puzzle is found
// or the timeout, if any, expires.
type SolverConfig struct {
	BatchSize  int           `mapstructure:"batch_size" yaml:"batch_size"`
	MaxBatches int           `mapstructure:"max_batches" yaml:"max_batches"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Workers    int           `mapstructure:"workers" yaml:"workers"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Listen         string        `mapstructure:"listen" yaml:"listen"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	RateLimit      float64       `mapstructure:"rate_limit" yaml:"rate_limit"`
	RateBurst      int           `mapstructure:"rate_burst" yaml:"rate_burst"`
	// MaxConnections caps concurrently open connections. Zero means no cap.
	MaxConnections int `mapstructure:"max_connections" yaml:"max_connections"`
	// CompressionLevel enables gzip and brotli responses for levels 1 to 9. Zero disables it.
	CompressionLevel int `mapstructure:"compression_level" yaml:"compression_level"`
}

func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "cryptograms")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.url", "")
	v.SetDefault("database.path", "cryptograms.db")

	v.SetDefault("corpus.words_file", "")
	v.SetDefault("corpus.quotes_file", "")
	v.SetDefault("corpus.min_word_length", 4)
	v.SetDefault("corpus.max_word_length", 7)

	v.SetDefault("solver.batch_size", 10)
	v.SetDefault("solver.max_batches", 0)
	v.SetDefault("solver.timeout", "0s")
	v.SetDefault("solver.workers", 4)

	v.SetDefault("server.listen", "127.0.0.1:8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "2m")
	v.SetDefault("server.request_timeout", "90s")
	v.SetDefault("server.rate_limit", 5.0)
	v.SetDefault("server.rate_burst", 10)
	v.SetDefault("server.max_connections", 256)
	v.SetDefault("server.compression_level", 5)
}

// BindEnv wires CRYPTOGRAMS_* environment overrides into v.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// NewConfigFromViper binds environment overrides, unmarshals and validates.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	BindEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.DatabaseCfg.Driver = strings.ToLower(strings.TrimSpace(cfg.DatabaseCfg.Driver))
	if err := cfg.ExpandPaths(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// ExpandPaths resolves a leading ~ in every file path setting.
func (c *Config) ExpandPaths() error {
	for _, p := range []*string{
		&c.LoggerCfg.LogFile,
		&c.DatabaseCfg.Path,
		&c.CorpusCfg.WordsFile,
		&c.CorpusCfg.QuotesFile,
	} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("could not resolve path '%s': %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if err := c.DatabaseCfg.Validate(); err != nil {
		return fmt.Errorf("database configuration invalid: %w", err)
	}
	if err := c.CorpusCfg.Validate(); err != nil {
		return fmt.Errorf("corpus configuration invalid: %w", err)
	}
	if err := c.SolverCfg.Validate(); err != nil {
		return fmt.Errorf("solver configuration invalid: %w", err)
	}
	if c.ServerCfg.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative")
	}
	if c.ServerCfg.RateLimit > 0 && c.ServerCfg.RateBurst <= 0 {
		return fmt.Errorf("server.rate_burst must be a positive integer when rate limiting is enabled")
	}
	if c.ServerCfg.MaxConnections < 0 {
		return fmt.Errorf("server.max_connections must not be negative")
	}
	if c.ServerCfg.CompressionLevel < 0 || c.ServerCfg.CompressionLevel > 9 {
		return fmt.Errorf("server.compression_level must be between 0 and 9")
	}
	return nil
}

// Validate checks the database settings against the selected driver.
func (d *DatabaseConfig) Validate() error {
	switch d.Driver {
	case DriverSQLite:
		if d.Path == "" {
			return fmt.Errorf("path is required for the sqlite driver")
		}
	case DriverPostgres:
		if d.URL == "" {
			return fmt.Errorf("url is required for the postgres driver")
		}
	case DriverNone:
	default:
		return fmt.Errorf("unknown driver %q (expected sqlite, postgres or none)", d.Driver)
	}
	return nil
}

// Validate checks the word length window.
func (c *CorpusConfig) Validate() error {
	if c.MinWordLength <= 0 {
		return fmt.Errorf("min_word_length must be a positive integer")
	}
	if c.MaxWordLength < c.MinWordLength {
		return fmt.Errorf("max_word_length must not be less than min_word_length")
	}
	return nil
}

// Validate checks the solver settings.
func (s *SolverConfig) Validate() error {
	if s.BatchSize < 2 {
		return fmt.Errorf("batch_size must be at least 2")
	}
	if s.MaxBatches < 0 {
		return fmt.Errorf("max_batches must not be negative")
	}
	if s.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if s.Workers <= 0 {
		return fmt.Errorf("workers must be a positive integer")
	}
	return nil
}
