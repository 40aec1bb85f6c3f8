package database

import (
	"database/sql"
	"fmt"

	"github.com/Leadpulse/leadpulse/internal/database/schema"
)

// InitializeDatabase creates all engine tables and indexes if they don't exist
func InitializeDatabase(db *sql.DB) error {
	for _, query := range schema.TableDefinitions {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	for _, query := range schema.IndexDefinitions {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
