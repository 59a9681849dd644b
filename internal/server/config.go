package server

import (
	"fmt"
	"time"

	"github.com/benjaminneilan16/NeilanX/pkg/notify"
)

// Config represents the server configuration
type Config struct {
	// Server settings
	Host string `yaml:"host" env:"SERVER_HOST" default:"0.0.0.0"`
	Port int    `yaml:"port" env:"SERVER_PORT" default:"8080"`

	// TLS settings
	TLSEnabled  bool   `yaml:"tls_enabled" env:"TLS_ENABLED" default:"false"`
	TLSCertFile string `yaml:"tls_cert_file" env:"TLS_CERT_FILE"`
	TLSKeyFile  string `yaml:"tls_key_file" env:"TLS_KEY_FILE"`

	// Timeouts
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"IDLE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" default:"30s"`

	// CORS settings
	CORSEnabled        bool     `yaml:"cors_enabled" env:"CORS_ENABLED" default:"true"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" default:"*"`
	CORSAllowedMethods []string `yaml:"cors_allowed_methods" env:"CORS_ALLOWED_METHODS" default:"GET,POST,OPTIONS"`
	CORSAllowedHeaders []string `yaml:"cors_allowed_headers" env:"CORS_ALLOWED_HEADERS" default:"*"`

	// Rate limiting
	RateLimitEnabled bool `yaml:"rate_limit_enabled" env:"RATE_LIMIT_ENABLED" default:"true"`
	RateLimitRPS     int  `yaml:"rate_limit_rps" env:"RATE_LIMIT_RPS" default:"50"`
	RateLimitBurst   int  `yaml:"rate_limit_burst" env:"RATE_LIMIT_BURST" default:"100"`

	// Request logging
	LogRequests bool   `yaml:"log_requests" env:"LOG_REQUESTS" default:"true"`
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL" default:"info"`
	LogFormat   string `yaml:"log_format" env:"LOG_FORMAT" default:"json"`

	// Health check
	HealthCheckPath string `yaml:"health_check_path" env:"HEALTH_CHECK_PATH" default:"/health"`

	// API settings
	APIPrefix       string `yaml:"api_prefix" env:"API_PREFIX" default:"/api/v1"`
	MaxRequestSize  int64  `yaml:"max_request_size" env:"MAX_REQUEST_SIZE" default:"10485760"` // 10MB
	RequestIDHeader string `yaml:"request_id_header" env:"REQUEST_ID_HEADER" default:"X-Request-ID"`

	// Analysis settings
	LexiconPath string `yaml:"lexicon_path" env:"LEXICON_PATH"`
	MaxKeywords int    `yaml:"max_keywords" env:"MAX_KEYWORDS" default:"10"`

	// Report settings
	ReportsDir      string `yaml:"reports_dir" env:"REPORTS_DIR" default:"reports"`
	RetentionDays   int    `yaml:"retention_days" env:"RETENTION_DAYS" default:"7"`
	CleanupSchedule string `yaml:"cleanup_schedule" env:"CLEANUP_SCHEDULE" default:"0 3 * * *"`

	// Notification settings
	SMTP notify.SMTPConfig `yaml:"smtp" env:"SMTP"`
}

// GetDefaultConfig returns a default server configuration
func GetDefaultConfig() *Config {
	return &Config{
		Host:               "0.0.0.0",
		Port:               8080,
		ReadTimeout:        30 * time.Second,
		WriteTimeout:       60 * time.Second,
		IdleTimeout:        120 * time.Second,
		ShutdownTimeout:    30 * time.Second,
		CORSEnabled:        true,
		CORSAllowedOrigins: []string{"*"},
		CORSAllowedMethods: []string{"GET", "POST", "OPTIONS"},
		CORSAllowedHeaders: []string{"*"},
		RateLimitEnabled:   true,
		RateLimitRPS:       50,
		RateLimitBurst:     100,
		LogRequests:        true,
		LogLevel:           "info",
		LogFormat:          "json",
		HealthCheckPath:    "/health",
		APIPrefix:          "/api/v1",
		MaxRequestSize:     10 * 1024 * 1024, // 10MB
		RequestIDHeader:    "X-Request-ID",
		MaxKeywords:        10,
		ReportsDir:         "reports",
		RetentionDays:      7,
		CleanupSchedule:    "0 3 * * *",
	}
}

// GetAddress returns the server address
func (c *Config) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	if c.TLSEnabled {
		if c.TLSCertFile == "" {
			return fmt.Errorf("TLS cert file is required when TLS is enabled")
		}
		if c.TLSKeyFile == "" {
			return fmt.Errorf("TLS key file is required when TLS is enabled")
		}
	}

	if c.RateLimitEnabled {
		if c.RateLimitRPS <= 0 {
			return fmt.Errorf("rate limit RPS must be positive")
		}
		if c.RateLimitBurst <= 0 {
			return fmt.Errorf("rate limit burst must be positive")
		}
	}

	if c.MaxRequestSize <= 0 {
		return fmt.Errorf("max request size must be positive")
	}

	if c.RetentionDays <= 0 {
		return fmt.Errorf("retention days must be positive")
	}

	if c.ReportsDir == "" {
		return fmt.Errorf("reports directory is required")
	}

	return nil
}
