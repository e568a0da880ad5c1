package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/jmoiron/sqlx"
)

// slowQuery is where a completed statement is logged at warn instead of debug
const slowQuery = 250 * time.Millisecond

// TracedQuerier logs every statement run by the repositories with its
// duration and the transaction it ran in
type TracedQuerier struct {
	q      Querier
	logger *logger.Logger
	txID   string
}

var _ Querier = (*TracedQuerier)(nil)

func NewTracedQuerier(q Querier, logger *logger.Logger, txID string) *TracedQuerier {
	return &TracedQuerier{q: q, logger: logger, txID: txID}
}

func (t *TracedQuerier) observe(ctx context.Context, query string, params any, run func() error) error {
	start := time.Now()
	err := run()
	elapsed := time.Since(start)

	fields := []interface{}{
		"duration_ms", elapsed.Milliseconds(),
		"query", query,
		"params", fmt.Sprintf("%+v", params),
	}
	if t.txID != "" {
		fields = append(fields, "tx_id", t.txID)
	}

	log := t.logger.WithContext(ctx)
	switch {
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		log.Errorw("database query failed", append(fields, "error", err.Error())...)
	case elapsed > slowQuery:
		log.Warnw("slow database query", fields...)
	default:
		log.Debugw("database query completed", fields...)
	}
	return err
}

func (t *TracedQuerier) ExecContext(ctx context.Context, query string, args ...interface{}) (res sql.Result, err error) {
	err = t.observe(ctx, query, args, func() error {
		res, err = t.q.ExecContext(ctx, query, args...)
		return err
	})
	return res, err
}

func (t *TracedQuerier) NamedExecContext(ctx context.Context, query string, arg interface{}) (res sql.Result, err error) {
	err = t.observe(ctx, query, arg, func() error {
		res, err = t.q.NamedExecContext(ctx, query, arg)
		return err
	})
	return res, err
}

func (t *TracedQuerier) QueryContext(ctx context.Context, query string, args ...interface{}) (rows *sql.Rows, err error) {
	err = t.observe(ctx, query, args, func() error {
		rows, err = t.q.QueryContext(ctx, query, args...)
		return err
	})
	return rows, err
}

// QueryRowxContext is passed through; its error only shows up on Scan
func (t *TracedQuerier) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	return t.q.QueryRowxContext(ctx, query, args...)
}

func (t *TracedQuerier) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return t.observe(ctx, query, args, func() error {
		return t.q.GetContext(ctx, dest, query, args...)
	})
}

func (t *TracedQuerier) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return t.observe(ctx, query, args, func() error {
		return t.q.SelectContext(ctx, dest, query, args...)
	})
}
