package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 1

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial snapshot schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS snapshots (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					pulled_at DATETIME NOT NULL,
					range_start DATETIME NOT NULL,
					range_end DATETIME NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS accounts (
					snapshot_id INTEGER NOT NULL,
					account_id INTEGER NOT NULL,
					code TEXT NOT NULL,
					name TEXT NOT NULL,
					type TEXT NOT NULL,
					is_active INTEGER NOT NULL DEFAULT 1,
					PRIMARY KEY (snapshot_id, account_id),
					FOREIGN KEY (snapshot_id) REFERENCES snapshots(id)
				)`,

				`CREATE TABLE IF NOT EXISTS entries (
					snapshot_id INTEGER NOT NULL,
					entry_id INTEGER NOT NULL,
					entry_no INTEGER NOT NULL DEFAULT 0,
					entry_date DATETIME NOT NULL,
					memo TEXT,
					reference_no TEXT,
					source_module TEXT,
					currency_code TEXT,
					is_locked INTEGER NOT NULL DEFAULT 0,
					posted_at DATETIME,
					locked_at DATETIME,
					PRIMARY KEY (snapshot_id, entry_id),
					FOREIGN KEY (snapshot_id) REFERENCES snapshots(id)
				)`,
				`CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(snapshot_id, entry_date)`,

				`CREATE TABLE IF NOT EXISTS entry_lines (
					snapshot_id INTEGER NOT NULL,
					entry_id INTEGER NOT NULL,
					line_no INTEGER NOT NULL,
					line_id INTEGER NOT NULL DEFAULT 0,
					account_id INTEGER NOT NULL,
					account_code TEXT,
					account_name TEXT,
					debit REAL NOT NULL DEFAULT 0,
					credit REAL NOT NULL DEFAULT 0,
					description TEXT,
					PRIMARY KEY (snapshot_id, entry_id, line_no),
					FOREIGN KEY (snapshot_id) REFERENCES snapshots(id)
				)`,
				`CREATE INDEX IF NOT EXISTS idx_entry_lines_account ON entry_lines(snapshot_id, account_id)`,

				`CREATE TABLE IF NOT EXISTS period_locks (
					snapshot_id INTEGER NOT NULL,
					seq INTEGER NOT NULL,
					period_month DATETIME NOT NULL,
					is_locked INTEGER NOT NULL,
					reopened INTEGER NOT NULL DEFAULT 0,
					note TEXT,
					PRIMARY KEY (snapshot_id, seq),
					FOREIGN KEY (snapshot_id) REFERENCES snapshots(id)
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate applies any pending schema migrations.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
