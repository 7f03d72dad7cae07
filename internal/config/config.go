// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file and env.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// DefaultCount is the number of recommendations returned when the
	// request does not specify one.
	DefaultCount int `koanf:"default_count"`

	// MaxCount caps the per-request recommendation count.
	MaxCount int `koanf:"max_count"`

	// OfflineFetchLimit is how many offline candidates the engine fetches
	// for merging, independent of the requested count.
	OfflineFetchLimit int `koanf:"offline_fetch_limit"`

	// DataSource selects where datasets load from: local or s3.
	DataSource string `koanf:"data_source"`

	// DataDir is the dataset directory for the local source.
	DataDir string `koanf:"data_dir"`

	// S3 settings for the s3 source.
	S3Endpoint  string `koanf:"s3_endpoint"`
	S3Bucket    string `koanf:"s3_bucket"`
	S3Prefix    string `koanf:"s3_prefix"`
	S3AccessKey string `koanf:"s3_access_key"`
	S3SecretKey string `koanf:"s3_secret_key"`
	S3UseSSL    bool   `koanf:"s3_use_ssl"`

	// HistoryBackend selects the session history cache: memory or redis.
	HistoryBackend string `koanf:"history_backend"`

	// Redis settings for the redis history backend.
	RedisAddr      string `koanf:"redis_addr"`
	RedisDB        int    `koanf:"redis_db"`
	RedisKeyPrefix string `koanf:"redis_key_prefix"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":8000",
		DefaultCount:      50,
		MaxCount:          100,
		OfflineFetchLimit: 100,
		DataSource:        "local",
		DataDir:           "data",
		HistoryBackend:    "memory",
		RedisAddr:         "localhost:6379",
		RedisKeyPrefix:    "trackmix:history:",
	}
}
