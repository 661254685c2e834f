package utils

import (
	"database/sql"
	"fmt"
)

type ExecType int

const (
	ExecInsert ExecType = iota
	ExecUpdate
	ExecDelete
)

// Execer is satisfied by both *sqlx.DB and *sqlx.Tx.
type Execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// ExecWithCheck executes a write statement and, for updates and deletes,
// fails when no rows were touched.
func ExecWithCheck(db Execer, query string, execType ExecType, args ...any) error {
	result, err := db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	// Insert operations don't need a rows-affected check
	if execType == ExecInsert {
		return nil
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
