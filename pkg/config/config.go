// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
)

// Config represents the application configuration
type Config struct {
	// Database connection
	Postgres *PostgresConfig

	// Source files
	ProductsPath  string
	EmployeesPath string
	SalesPath     string

	// Output artifacts
	ParquetDir string
	ReportPath string

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ProductsPath:  getEnv("PRODUCTS_PATH", "data/produtos.csv"),
		EmployeesPath: getEnv("EMPLOYEES_PATH", "data/empregados.csv"),
		SalesPath:     getEnv("SALES_PATH", "data/vendas.csv"),
		ParquetDir:    getEnv("PARQUET_DIR", "output"),
		ReportPath:    getEnv("REPORT_PATH", "output/repair-report.xlsx"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
	}

	pgConfig, err := LoadPostgresConfig()
	if err != nil {
		return nil, errors.New("failed to load PostgreSQL configuration: " + err.Error())
	}
	cfg.Postgres = pgConfig

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.Postgres == nil {
		return errors.New("postgreSQL configuration is required")
	}

	if c.ProductsPath == "" || c.EmployeesPath == "" || c.SalesPath == "" {
		return errors.New("all three source file paths are required")
	}

	if c.ParquetDir == "" {
		return errors.New("parquet output directory is required")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
