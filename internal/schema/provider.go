package schema

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kiyer/argoquery/internal/core/model"
	"github.com/kiyer/argoquery/internal/core/observability"
)

const columnsQuery = `SELECT column_name FROM information_schema.columns WHERE table_name = $1 ORDER BY ordinal_position;`

// state is swapped atomically so concurrent readers always observe one
// coherent snapshot + temporal pair.
type state struct {
	snap     Snapshot
	temporal model.Temporal
}

// Provider introspects the live measurement table and serves immutable
// snapshots to the rest of the system. Refresh runs on an interval and
// on demand (the invalidation consumer calls it after ingest events).
type Provider struct {
	log      *slog.Logger
	pool     *pgxpool.Pool
	table    string
	interval time.Duration

	cur    atomic.Value // state
	cancel context.CancelFunc
	wg     sync.WaitGroup
	now    func() time.Time // for tests
}

func NewProvider(log *slog.Logger, pool *pgxpool.Pool, table string, interval time.Duration) *Provider {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	p := &Provider{log: log, pool: pool, table: table, interval: interval, now: time.Now}
	p.cur.Store(state{})
	return p
}

// Refresh loads the column set and dataset time range. The previous
// snapshot stays in place if either query fails.
func (p *Provider) Refresh(ctx context.Context) error {
	start := time.Now()

	rows, err := p.pool.Query(ctx, columnsQuery, p.table)
	if err != nil {
		observability.ObserveUpstreamLatency("postgres_schema", time.Since(start).Seconds())
		return fmt.Errorf("schema columns: %w", err)
	}
	var cols []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			rows.Close()
			return fmt.Errorf("scan column name: %w", err)
		}
		cols = append(cols, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("schema columns rows: %w", err)
	}

	var minTS, maxTS *time.Time
	rangeSQL := fmt.Sprintf(`SELECT MIN("timestamp"), MAX("timestamp") FROM %s;`, p.table)
	if err := p.pool.QueryRow(ctx, rangeSQL).Scan(&minTS, &maxTS); err != nil {
		return fmt.Errorf("dataset time range: %w", err)
	}
	observability.ObserveUpstreamLatency("postgres_schema", time.Since(start).Seconds())

	t := model.Temporal{CurrentYear: p.now().Year()}
	if minTS != nil {
		t.DataMin = *minTS
	}
	if maxTS != nil {
		t.DataMax = *maxTS
	}

	p.cur.Store(state{snap: NewSnapshot(cols), temporal: t})
	p.log.Info("schema snapshot refreshed",
		"table", p.table, "columns", len(cols),
		"data_min", t.DataMin.Format(time.RFC3339),
		"data_max", t.DataMax.Format(time.RFC3339))
	return nil
}

// Start launches the periodic refresh loop.
func (p *Provider) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		tick := time.NewTicker(p.interval)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
				if err := p.Refresh(ctx); err != nil {
					p.log.Warn("schema refresh failed, keeping previous snapshot", "err", err)
				}
			}
		}
	}()
}

func (p *Provider) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

// Snapshot returns the current immutable column set.
func (p *Provider) Snapshot() Snapshot {
	return p.cur.Load().(state).snap
}

// Temporal returns the dataset time range observed at the last refresh.
func (p *Provider) Temporal() model.Temporal {
	return p.cur.Load().(state).temporal
}
