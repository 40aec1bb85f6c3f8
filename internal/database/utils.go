package database

import (
	"fmt"
	"os"
	"time"

	"github.com/Leadpulse/leadpulse/config"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// GetConnectionPoolSettings returns connection pool settings based on environment
func GetConnectionPoolSettings() (maxOpen, maxIdle int, maxLifetime time.Duration) {
	environment := os.Getenv("ENVIRONMENT")

	// Smaller pools for tests to conserve connections
	if environment == "test" {
		return 10, 5, 2 * time.Minute
	}

	return 25, 25, 20 * time.Minute
}

// GetDSN returns the DSN for the engine database
func GetDSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.SSLMode,
	)
}
