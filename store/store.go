// Package store holds the storage entities and the SQL that reads and writes
// them. Every function takes an explicit Querier, so the caller decides
// whether it runs on the pool or inside a transaction.
package store

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/mbolis/quick-feedback/database"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrDuplicate = errors.New("store: duplicate key")
)

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// wrap annotates err with code, translating the driver errors callers
// need to tell apart.
func wrap(err error, code string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return errors.Wrap(ErrNotFound, code)
	case database.IsUniqueViolation(err):
		return errors.Wrap(ErrDuplicate, code)
	}
	return errors.Wrap(err, code)
}

func expectRow(res sql.Result, code string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return wrap(err, code+".verify")
	}
	if n < 1 {
		return errors.Wrap(ErrNotFound, code)
	}
	return nil
}
