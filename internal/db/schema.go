package db

import (
	"database/sql"
	"fmt"
)

// sqliteSchema uses AUTOINCREMENT so ids of deleted rows are never handed out again.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS items (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    name       TEXT NOT NULL,
    quantity   INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 1),
    category   TEXT NOT NULL DEFAULT 'Other',
    completed  BOOLEAN NOT NULL DEFAULT FALSE,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
	`CREATE INDEX IF NOT EXISTS idx_items_created_at ON items(created_at)`,
}

// mysqlSchema is executed statement by statement since the driver rejects
// multi-statement queries by default.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS items (
    id         BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
    name       VARCHAR(255) NOT NULL,
    quantity   INT NOT NULL DEFAULT 1,
    category   VARCHAR(100) NOT NULL DEFAULT 'Other',
    completed  BOOLEAN NOT NULL DEFAULT FALSE,
    created_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
    CONSTRAINT chk_items_quantity CHECK (quantity >= 1),
    INDEX idx_items_created_at (created_at)
)`,
}

// EnsureSchema creates the items table and its indexes if they don't already exist.
func EnsureSchema(db *sql.DB, driver string) error {
	stmts := sqliteSchema
	if driver == DriverMySQL {
		stmts = mysqlSchema
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}
