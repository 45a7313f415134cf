package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-marketplace/internal/domain"
)

// StoreDriver selects the persistence backend
type StoreDriver string

const (
	StoreDriverPostgres StoreDriver = "postgres"
	StoreDriverMemory   StoreDriver = "memory"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// NATSConfig holds NATS JetStream configuration.
// An empty URL disables event publishing.
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	ReadTimeout    int      `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout   int      `mapstructure:"write_timeout"` // in seconds
	IdleTimeout    int      `mapstructure:"idle_timeout"`  // in seconds
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// Per-caller limit on state-changing routes; 0 disables it
	RateLimitRPS   float64  `mapstructure:"rate_limit_rps"`
	RateLimitBurst int      `mapstructure:"rate_limit_burst"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string `mapstructure:"jwt_public_key"`
	Issuer       string `mapstructure:"issuer"`
}

// WorkerConfig holds the event dispatch worker configuration
type WorkerConfig struct {
	WorkerPoolSize  int           `mapstructure:"pool_size"`
	WorkerQueueSize int           `mapstructure:"queue_size"`
	MaxElapsedTime  time.Duration `mapstructure:"max_elapsed_time"`
}

// MarketplaceConfig holds the escrow parameters.
// Amounts are decimal strings in the smallest settlement unit.
type MarketplaceConfig struct {
	CustodyAddress  string `mapstructure:"custody_address"`
	OperatorAddress string `mapstructure:"operator_address"`
	ListingFee      string `mapstructure:"listing_fee"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig  `mapstructure:",squash"`
	StoreDriver StoreDriver       `mapstructure:"store_driver"`
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	NATS        NATSConfig        `mapstructure:"nats"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Worker      WorkerConfig      `mapstructure:"worker"`
	Marketplace MarketplaceConfig `mapstructure:"marketplace"`
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("store_driver", string(StoreDriverPostgres))
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("server.rate_limit_rps", 5)
	v.SetDefault("server.rate_limit_burst", 10)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "MARKETPLACE_EVENTS")
	v.SetDefault("nats.connection_name", "ff-marketplace-api")
	v.SetDefault("worker.pool_size", 4)
	v.SetDefault("worker.queue_size", 1000)
	v.SetDefault("worker.max_elapsed_time", "1m")
	v.SetDefault("marketplace.listing_fee", domain.DEFAULT_LISTING_FEE_WEI)

	if err := v.ReadInConfig(); err != nil {
		var error viper.ConfigFileNotFoundError
		if errors.As(err, &error) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the fields the API cannot start without
func (c *APIConfig) Validate() error {
	switch c.StoreDriver {
	case StoreDriverMemory:
	case StoreDriverPostgres:
		if c.Database.Host == "" {
			return errors.New("database.host is required")
		}
		if c.Database.DBName == "" {
			return errors.New("database.dbname is required")
		}
	default:
		return fmt.Errorf("unsupported store_driver %q", c.StoreDriver)
	}

	if _, err := domain.ParseAddress(c.Marketplace.CustodyAddress); err != nil {
		return fmt.Errorf("marketplace.custody_address: %w", err)
	}
	if _, err := domain.ParseAddress(c.Marketplace.OperatorAddress); err != nil {
		return fmt.Errorf("marketplace.operator_address: %w", err)
	}
	if _, err := domain.ParseAmount(c.Marketplace.ListingFee); err != nil {
		return fmt.Errorf("marketplace.listing_fee: %w", err)
	}

	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("FF_MARKETPLACE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"store_driver",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		"database.auto_migrate",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.allowed_origins",
		"server.rate_limit_rps",
		"server.rate_limit_burst",
		// Auth
		"auth.jwt_public_key",
		"auth.issuer",
		// Event dispatch worker
		"worker.pool_size",
		"worker.queue_size",
		"worker.max_elapsed_time",
		// Marketplace
		"marketplace.custody_address",
		"marketplace.operator_address",
		"marketplace.listing_fee",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
