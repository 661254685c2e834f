package postgres

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"insurance-service/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connect opens and pings the service database.
func Connect(cfg config.PostgresConfig) (*sqlx.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.DBname)

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Connected to PostgreSQL", "host", cfg.Host, "port", cfg.Port, "dbname", cfg.DBname)
	return db, nil
}

// ApplySchema executes schema.sql statement by statement. Statements that
// fail (e.g. already-existing tables without IF NOT EXISTS) are logged and
// skipped so a partially provisioned database still boots.
func ApplySchema(db *sqlx.DB, schemaPath string) error {
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema file %s: %w", schemaPath, err)
	}

	statements := strings.Split(string(content), ";")
	applied := 0
	for _, statement := range statements {
		statement = strings.TrimSpace(statement)
		if statement == "" || strings.HasPrefix(statement, "--") {
			continue
		}
		if _, err := db.Exec(statement); err != nil {
			slog.Warn("schema statement failed", "error", err)
			continue
		}
		applied++
	}

	slog.Info("schema applied", "statements", applied)
	return nil
}
