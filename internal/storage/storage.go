package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/electrabase/pkg/types"
)

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// QueryInterceptor wraps a querier and logs every statement at debug level
type QueryInterceptor struct {
	q   querier
	log *zap.SugaredLogger
}

func newQueryInterceptor(q querier) *QueryInterceptor {
	return &QueryInterceptor{q: q, log: zap.S().Named("storage")}
}

func (i *QueryInterceptor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := i.q.ExecContext(ctx, query, args...)
	i.log.Debugw("exec", "query", compactQuery(query), "args", args, "duration", time.Since(start), "error", err)
	return res, err
}

func (i *QueryInterceptor) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := i.q.QueryContext(ctx, query, args...)
	i.log.Debugw("query", "query", compactQuery(query), "args", args, "duration", time.Since(start), "error", err)
	return rows, err
}

func (i *QueryInterceptor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	i.log.Debugw("query row", "query", compactQuery(query), "args", args)
	return i.q.QueryRowContext(ctx, query, args...)
}

// compactQuery folds whitespace so multi-line statements log on one line
func compactQuery(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

// database is the connection shared by the category and component stores
type database struct {
	db *sql.DB
}

// querier returns the logged DB querier
func (d *database) querier() querier {
	return newQueryInterceptor(d.db)
}

// withTx runs fn inside a transaction. fn must only use the querier it is
// given: the pool holds a single connection.
func (d *database) withTx(ctx context.Context, fn func(q querier) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", classifyError(err))
	}

	if err := fn(newQueryInterceptor(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			zap.S().Named("storage").Errorw("failed to rollback transaction", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", classifyError(err))
	}
	return nil
}

// classifyError maps driver errors onto the shared error taxonomy
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, types.ErrConnection) || errors.Is(err, types.ErrConstraint) {
		return err
	}
	if errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %v", types.ErrConnection, err)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "database is closed"):
		return fmt.Errorf("%w: %v", types.ErrConnection, err)
	case strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "NOT NULL constraint failed"):
		return fmt.Errorf("%w: %v", types.ErrConstraint, err)
	}
	return err
}
