package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/frontdesk/internal/db"
)

// FailingDBTX passes everything through to the wrapped connection except the
// FailOn-th ExecContext (counting from 1), which returns Err. Reads are not
// counted. Wrap a *sql.DB to fail one of a repo's independent writes, or a
// transaction (see FailOnNthExecUoW) to fail inside a unit of work.
type FailingDBTX struct {
	db.DBTX
	FailOn int32
	Err    error

	execs atomic.Int32
}

func NewFailingDBTX(conn db.DBTX, failOn int32, err error) *FailingDBTX {
	return &FailingDBTX{DBTX: conn, FailOn: failOn, Err: err}
}

func (f *FailingDBTX) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.execs.Add(1) == f.FailOn {
		return nil, f.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// Execs reports how many writes were attempted, the failed one included.
func (f *FailingDBTX) Execs() int {
	return int(f.execs.Load())
}

// FailOnNthExecUoW runs fn in a real transaction wrapped in a FailingDBTX and
// rolls back when fn fails. Content imports use it to prove atomicity.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(ctx, NewFailingDBTX(tx, u.FailOn, u.Err)); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
