package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

const pgUniqueViolation = "23505"

// withTx runs fn inside a transaction. The transaction is rolled back when fn
// returns an error and committed otherwise.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a unique constraint violation.
// An empty constraint matches any unique constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgUniqueViolation && (constraint == "" || pgErr.ConstraintName == constraint)
}

// assignment is one column = value pair of an UPDATE statement.
type assignment struct {
	column string
	value  interface{}
}

// buildUpdate renders a parameterized tenant-scoped UPDATE. Column names come
// from the adapters' fixed column sets, never from request data.
func buildUpdate(table string, set []assignment, id, tenantID interface{}) (string, []interface{}) {
	clauses := make([]string, 0, len(set))
	args := make([]interface{}, 0, len(set)+2)
	for i, a := range set {
		clauses = append(clauses, fmt.Sprintf("%s = $%d", a.column, i+1))
		args = append(args, a.value)
	}
	args = append(args, id, tenantID)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d AND tenant_id = $%d",
		table, strings.Join(clauses, ", "), len(set)+1, len(set)+2)
	return query, args
}
