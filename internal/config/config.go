package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// DevSecretPlaceholder is substituted for a missing JWT secret outside
// production so local setups work without extra configuration. Production
// startup fails instead of falling back to it.
const DevSecretPlaceholder = "dev-only-insecure-secret"

type Config struct {
	Server        ServerConfig        `envconfig:"SERVER"`
	Mongo         MongoConfig         `envconfig:"MONGO"`
	JWT           JWTConfig           `envconfig:"JWT"`
	RateLimit     RateLimitConfig     `envconfig:"RATE_LIMIT"`
	Redis         RedisConfig         `envconfig:"REDIS"`
	Observability ObservabilityConfig `envconfig:"OBSERVABILITY"`
	CORS          CORSConfig          `envconfig:"CORS"`
	Log           LogConfig           `envconfig:"LOG"`
}

type ServerConfig struct {
	Port         string        `envconfig:"PORT" default:"5000"`
	Environment  string        `envconfig:"ENVIRONMENT" default:"development"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout  time.Duration `envconfig:"IDLE_TIMEOUT" default:"120s"`
}

// IsProduction reports whether the server runs in production mode.
// Diagnostic stack traces in error responses are suppressed when true.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

type MongoConfig struct {
	URI              string        `envconfig:"URI" default:"mongodb://localhost:27017"`
	Database         string        `envconfig:"DATABASE" default:"managemate"`
	ConnectTimeout   time.Duration `envconfig:"CONNECT_TIMEOUT" default:"10s"`
	OperationTimeout time.Duration `envconfig:"OPERATION_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret string        `envconfig:"SECRET" default:""`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
	Issuer string        `envconfig:"ISSUER" default:"managemate-api"`
}

// TierConfig holds the window and ceiling for one rate-limit tier.
type TierConfig struct {
	Window  time.Duration `envconfig:"WINDOW"`
	Max     int           `envconfig:"MAX"`
	Message string        `envconfig:"MESSAGE"`
}

type RateLimitConfig struct {
	Enabled bool   `envconfig:"ENABLED" default:"true"`
	Store   string `envconfig:"STORE" default:"memory"` // memory or redis

	Global TierConfig `envconfig:"GLOBAL"`
	Auth   TierConfig `envconfig:"AUTH"`
	API    TierConfig `envconfig:"API"`
}

type RedisConfig struct {
	Address     string        `envconfig:"ADDRESS" default:"localhost:6379"`
	Password    string        `envconfig:"PASSWORD" default:""`
	Database    int           `envconfig:"DATABASE" default:"0"`
	MaxRetries  int           `envconfig:"MAX_RETRIES" default:"3"`
	PoolSize    int           `envconfig:"POOL_SIZE" default:"100"`
	PoolTimeout time.Duration `envconfig:"POOL_TIMEOUT" default:"4s"`
}

type ObservabilityConfig struct {
	MetricsPath    string  `envconfig:"METRICS_PATH" default:"/metrics"`
	OTLPEndpoint   string  `envconfig:"OTLP_ENDPOINT" default:"http://localhost:4318"`
	TracingEnabled bool    `envconfig:"TRACING_ENABLED" default:"false"`
	SampleRate     float64 `envconfig:"SAMPLE_RATE" default:"0.1"`
}

type CORSConfig struct {
	AllowOrigins string `envconfig:"ALLOW_ORIGINS" default:"*"`
}

type LogConfig struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	Format string `envconfig:"FORMAT" default:"json"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	applyTierDefaults(&cfg.RateLimit)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// applyTierDefaults fills the per-tier windows and ceilings that envconfig
// cannot default through the nested prefix.
func applyTierDefaults(rl *RateLimitConfig) {
	if rl.Global.Window == 0 {
		rl.Global.Window = 15 * time.Minute
	}
	if rl.Global.Max == 0 {
		rl.Global.Max = 100
	}
	if rl.Global.Message == "" {
		rl.Global.Message = "Too many requests from this IP, please try again after 15 minutes"
	}

	if rl.Auth.Window == 0 {
		rl.Auth.Window = time.Hour
	}
	if rl.Auth.Max == 0 {
		rl.Auth.Max = 5
	}
	if rl.Auth.Message == "" {
		rl.Auth.Message = "Too many login attempts from this IP, please try again after an hour"
	}

	if rl.API.Window == 0 {
		rl.API.Window = 15 * time.Minute
	}
	if rl.API.Max == 0 {
		rl.API.Max = 50
	}
	if rl.API.Message == "" {
		rl.API.Message = "Too many API requests from this IP, please try again after 15 minutes"
	}
}

func validateConfig(cfg *Config) error {
	if port, err := strconv.Atoi(cfg.Server.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid server port: %s", cfg.Server.Port)
	}

	// A missing signing secret is fatal in production. Outside production a
	// placeholder keeps local development friction-free.
	if cfg.JWT.Secret == "" {
		if cfg.Server.IsProduction() {
			return fmt.Errorf("JWT_SECRET must be set when ENVIRONMENT is production")
		}
		cfg.JWT.Secret = DevSecretPlaceholder
	}

	if cfg.JWT.Expiry <= 0 {
		return fmt.Errorf("invalid JWT expiry: %s", cfg.JWT.Expiry)
	}

	if cfg.RateLimit.Store != "memory" && cfg.RateLimit.Store != "redis" {
		return fmt.Errorf("invalid rate limit store: %s (want memory or redis)", cfg.RateLimit.Store)
	}

	if cfg.Observability.SampleRate < 0 || cfg.Observability.SampleRate > 1 {
		return fmt.Errorf("invalid tracing sample rate: %f", cfg.Observability.SampleRate)
	}

	return nil
}
