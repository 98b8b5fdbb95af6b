// Package config loads the railmap configuration.
//
// Values are layered, later layers winning:
//
//  1. built-in defaults
//  2. an optional YAML or TOML file (railmap.yaml, railmap.toml, or the path in RAILMAP_CONFIG)
//  3. RAILMAP_* environment variables, e.g. RAILMAP_SERVER_PORT=9090 or
//     RAILMAP_DATA_TRANSACTIONS=/data/railway.csv
//
// Config is immutable after Load and safe for concurrent reads.
package config

import (
	"fmt"
	"time"

	"github.com/jusunglee/railmap-go/internal/validation"
)

// Config is the full application configuration
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Data    DataConfig    `koanf:"data"`
	Cache   CacheConfig   `koanf:"cache"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout       time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout      time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout       time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"min=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DataConfig locates the input files. Paths may also be http(s) URLs.
type DataConfig struct {
	Transactions    string        `koanf:"transactions" validate:"required"`
	Coordinates     string        `koanf:"coordinates" validate:"required"`
	Labels          string        `koanf:"labels"`
	DepartureColumn string        `koanf:"departure_column" validate:"required"`
	ArrivalColumn   string        `koanf:"arrival_column" validate:"required"`
	IDColumn        string        `koanf:"id_column" validate:"required"`
	FetchTimeout    time.Duration `koanf:"fetch_timeout" validate:"gt=0"`
}

// CacheConfig sizes the per-filter element cache
type CacheConfig struct {
	Size int `koanf:"size" validate:"min=1"`
}

// LoggingConfig configures zerolog
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
			ShutdownTimeout:   30 * time.Second,
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
		},
		Data: DataConfig{
			Transactions:    "data/railway.csv",
			Coordinates:     "data/station_coords.json",
			Labels:          "data/station_labels.json",
			DepartureColumn: "Departure Station",
			ArrivalColumn:   "Arrival Destination",
			IDColumn:        "Transaction ID",
			FetchTimeout:    30 * time.Second,
		},
		Cache: CacheConfig{
			Size: 16,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks every field rule
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	if !c.Server.RateLimitDisabled && c.Server.RateLimitRequests > 0 && c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("server.rate_limit_window must be positive when rate limiting is enabled")
	}
	return nil
}
