package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth" validate:"required"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Seed      SeedConfig      `mapstructure:"seed"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// DatabaseConfig selects the persistence backend for users and tasks.
// URL is ignored by the memory driver.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=memory sqlite postgres"`
	URL    string `mapstructure:"url" validate:"required_unless=Driver memory"`
}

// AuthConfig contains all authentication and session settings.
type AuthConfig struct {
	SessionSecret          string `mapstructure:"session_secret" validate:"required,min=32"`
	SessionLifetimeMinutes int    `mapstructure:"session_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost             int    `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
	SecureCookies          bool   `mapstructure:"secure_cookies"`
}

// TelemetryConfig configures the error/telemetry sink. An empty DSN keeps
// telemetry local (structured logs only).
type TelemetryConfig struct {
	SentryDSN        string  `mapstructure:"sentry_dsn" validate:"omitempty,url"`
	Environment      string  `mapstructure:"environment"`
	TracesSampleRate float64 `mapstructure:"traces_sample_rate" validate:"gte=0,lte=1"`
}

// DashboardConfig controls the simulated slow path of the dashboard page.
type DashboardConfig struct {
	SlowProbability float64 `mapstructure:"slow_probability" validate:"gte=0,lte=1"`
	SlowDelayMillis int     `mapstructure:"slow_delay_millis" validate:"gte=0"`
}

// SeedConfig controls startup seeding of demo users and tasks.
type SeedConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
