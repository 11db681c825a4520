package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Logger LoggerConfig
	Orders OrdersConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string
	Port int
}

// StoreConfig holds DynamoDB configuration. Endpoint is normally empty; it
// overrides the SDK endpoint when pointing at dynamodb-local.
type StoreConfig struct {
	Region        string
	Endpoint      string
	ProductsTable string
	OrdersTable   string
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// OrdersConfig holds order-domain configuration. All orders are priced in a
// single configured currency.
type OrdersConfig struct {
	Currency string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Store: StoreConfig{
			Region:        getEnv("AWS_REGION", "eu-west-1"),
			Endpoint:      getEnv("AWS_ENDPOINT_URL", ""),
			ProductsTable: getEnv("PRODUCTS_TABLE", "protein_products"),
			OrdersTable:   getEnv("ORDERS_TABLE", "protein_orders"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Orders: OrdersConfig{
			Currency: getEnv("ORDER_CURRENCY", "EUR"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Store.Region == "" {
		return fmt.Errorf("AWS region is required")
	}

	if c.Store.ProductsTable == "" {
		return fmt.Errorf("products table name is required")
	}

	if c.Store.OrdersTable == "" {
		return fmt.Errorf("orders table name is required")
	}

	if len(c.Orders.Currency) != 3 {
		return fmt.Errorf("invalid order currency: %q (must be a 3-letter ISO code)", c.Orders.Currency)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
