// Package executor runs compiled queries against Postgres. It performs
// no query construction of its own: SQL text and parameters arrive
// fully formed from the compiler.
package executor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kiyer/argoquery/internal/core/model"
	"github.com/kiyer/argoquery/internal/core/observability"
)

type Executor struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func New(log *slog.Logger, pool *pgxpool.Pool) *Executor {
	if log == nil {
		log = slog.Default()
	}
	return &Executor{log: log, pool: pool}
}

// Run executes q and returns the rows keyed by result column name,
// preserving result order.
func (e *Executor) Run(ctx context.Context, q model.CompiledQuery) ([]model.Row, error) {
	start := time.Now()
	rows, err := e.pool.Query(ctx, q.SQL, q.Args...)
	observability.ObserveUpstreamLatency("postgres_query", time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.QueryType, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}

	var out []model.Row
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rec := make(model.Row, len(names))
		for i, name := range names {
			rec[name] = vals[i]
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	e.log.DebugContext(ctx, "query executed",
		slog.String("query_type", string(q.QueryType)),
		slog.Int("rows", len(out)),
		slog.Duration("elapsed", time.Since(start)))
	return out, nil
}
