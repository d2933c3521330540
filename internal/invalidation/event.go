// Package invalidation defines the ingest event the pipeline publishes
// when new measurements land in the database. Consumers flush cached
// responses and refresh the schema snapshot.
package invalidation

import (
	"fmt"
	"strings"
	"time"
)

type Event struct {
	Version  int       `json:"version"`
	Op       string    `json:"op"`
	Table    string    `json:"table"`
	TS       time.Time `json:"ts"`
	FloatIDs []int64   `json:"float_ids,omitempty"`
	Rows     int       `json:"rows,omitempty"`
	Source   string    `json:"source,omitempty"`
}

// Key identifies an event for replay dedupe. Two deliveries of the
// same published event share a key; distinct events never do.
func (e Event) Key() string {
	return fmt.Sprintf("%s|%s|%s|%d|%d", e.Source, e.Op, e.Table, e.TS.UnixNano(), e.Rows)
}

func (e Event) Validate() error {
	if e.Version != 1 {
		return fmt.Errorf("version must be 1")
	}
	switch e.Op {
	case "ingest", "backfill", "delete", "schema_change":
	default:
		return fmt.Errorf("op must be ingest|backfill|delete|schema_change")
	}
	if strings.TrimSpace(e.Table) == "" {
		return fmt.Errorf("table is required")
	}
	if e.TS.IsZero() {
		return fmt.Errorf("ts is required")
	}
	if e.Rows < 0 {
		return fmt.Errorf("rows must be >= 0")
	}
	return nil
}
