// Configuration structure definitions
//
// Defines all configuration options as structured Go types
// with validation tags and defaults
//
// Main sections:
// - ServerConfig: HTTP server settings
// - OriginConfig: Origin server connection settings
// - JWTConfig: JWT validation parameters
// - CacheConfig: Caching behavior settings
// - RedisConfig: Optional Redis connection
// - LogConfig: Logging parameters
// - MetricsConfig: Telemetry settings

package config

import "time"

// Config is the root configuration for the playlist-proxy service.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Origin  OriginConfig  `yaml:"origin"`
	JWT     JWTConfig     `yaml:"jwt"`
	Cache   CacheConfig   `yaml:"cache"`
	Redis   RedisConfig   `yaml:"redis"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr" default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"15s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
}

// OriginConfig controls the HTTP client used to fetch origin playlists
// and segments.
type OriginConfig struct {
	BaseURL               string        `yaml:"base_url"`
	Timeout               time.Duration `yaml:"timeout" default:"10s"`
	MaxIdleConns          int           `yaml:"max_idle_conns" default:"100"`
	MaxIdleConnsPerHost   int           `yaml:"max_idle_conns_per_host" default:"10"`
	MaxConnsPerHost       int           `yaml:"max_conns_per_host" default:"20"`
	IdleConnTimeout       time.Duration `yaml:"idle_conn_timeout" default:"90s"`
	TLSHandshakeTimeout   time.Duration `yaml:"tls_handshake_timeout" default:"5s"`
	ExpectContinueTimeout time.Duration `yaml:"expect_continue_timeout" default:"1s"`
	MaxRetries            int           `yaml:"max_retries" default:"2"`
}

// JWTConfig controls token extraction and validation for proxied requests.
type JWTConfig struct {
	Secret         string        `yaml:"secret"`
	HeaderName     string        `yaml:"header_name" default:"Authorization"`
	ParamName      string        `yaml:"param_name" default:"token"`
	Namespace      string        `yaml:"namespace"`
	Issuer         string        `yaml:"issuer"`
	Audience       string        `yaml:"audience"`
	RequiredClaims []string      `yaml:"required_claims"`
	AllowedAlgs    []string      `yaml:"allowed_algs" default:"[\"HS256\"]"`
	CacheTTL       time.Duration `yaml:"cache_ttl" default:"5m"`
}

// CacheConfig controls the playlist/segment cache layer.
type CacheConfig struct {
	Enabled        bool          `yaml:"enabled" default:"true"`
	Type           string        `yaml:"type" default:"memory"`
	MaxSize        int           `yaml:"max_size" default:"10000"`
	ShardSize      int           `yaml:"shard_size" default:"16"`
	TTLMaster      time.Duration `yaml:"ttl_master" default:"5s"`
	TTLMedia       time.Duration `yaml:"ttl_media" default:"2s"`
	JitterFraction float64       `yaml:"jitter_fraction" default:"0.1"`
}

// RedisConfig controls the optional Redis backend used for caching and
// player-session tracking.
type RedisConfig struct {
	Enabled        bool          `yaml:"enabled" default:"false"`
	Addr           string        `yaml:"addr" default:"localhost:6379"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db" default:"0"`
	DialTimeout    time.Duration `yaml:"dial_timeout" default:"5s"`
	TrackingExpiry time.Duration `yaml:"tracking_expiry" default:"5m"`
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level  string `yaml:"level" default:"info"`
	Format string `yaml:"format" default:"json"`
	Output string `yaml:"output" default:"stdout"`
}

// MetricsConfig controls Prometheus metrics exposure.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" default:"true"`
	Namespace string `yaml:"namespace" default:"hlsplaylist"`
}
