package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Ingest   IngestConfig   `yaml:"ingest"`
	SRS      SRSConfig      `yaml:"srs"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`

	// RateLimitPerMinute caps API requests per client IP. Zero disables
	// the limiter.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" env:"SERVER_RATE_LIMIT_PER_MINUTE" env-default:"240"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`

	// MigrateOnStart applies pending goose migrations during startup.
	// Defaults to true, seeded in Load rather than via env-default.
	MigrateOnStart bool `yaml:"migrate_on_start" env:"DATABASE_MIGRATE_ON_START"`
}

// IngestConfig holds source-ingestion settings.
type IngestConfig struct {
	FetchDefinitions  bool          `yaml:"fetch_definitions"   env:"INGEST_FETCH_DEFINITIONS"`
	DictionaryBaseURL string        `yaml:"dictionary_base_url" env:"INGEST_DICTIONARY_BASE_URL" env-default:"https://api.dictionaryapi.dev/api/v2"`
	DictionaryTimeout time.Duration `yaml:"dictionary_timeout"  env:"INGEST_DICTIONARY_TIMEOUT"  env-default:"5s"`
	MaxContentBytes   int           `yaml:"max_content_bytes"   env:"INGEST_MAX_CONTENT_BYTES"   env-default:"1048576"`
	MinContentChars   int           `yaml:"min_content_chars"   env:"INGEST_MIN_CONTENT_CHARS"   env-default:"10"`
}

// SRSConfig holds spaced-repetition scheduling parameters.
type SRSConfig struct {
	MaxIntervalDays     int           `yaml:"max_interval_days"     env:"SRS_MAX_INTERVAL_DAYS"     env-default:"365"`
	KnownStability      float64       `yaml:"known_stability"       env:"SRS_KNOWN_STABILITY"       env-default:"7.0"`
	FailureRetryDelay   time.Duration `yaml:"failure_retry_delay"   env:"SRS_FAILURE_RETRY_DELAY"   env-default:"2h24m"`
	KnownReviewInterval time.Duration `yaml:"known_review_interval" env:"SRS_KNOWN_REVIEW_INTERVAL" env-default:"8760h"`
	MarkKnownDueDays    int           `yaml:"mark_known_due_days"   env:"SRS_MARK_KNOWN_DUE_DAYS"   env-default:"9999"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-User-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
