package invalidation

import (
	"testing"
	"time"
)

func validEvent() Event {
	return Event{
		Version: 1,
		Op:      "ingest",
		Table:   "argo_data",
		TS:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Rows:    1200,
	}
}

func TestValidateAccepts(t *testing.T) {
	for _, op := range []string{"ingest", "backfill", "delete", "schema_change"} {
		ev := validEvent()
		ev.Op = op
		if err := ev.Validate(); err != nil {
			t.Fatalf("op %q: %v", op, err)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Event){
		"bad version":   func(e *Event) { e.Version = 2 },
		"bad op":        func(e *Event) { e.Op = "truncate" },
		"empty table":   func(e *Event) { e.Table = "  " },
		"zero ts":       func(e *Event) { e.TS = time.Time{} },
		"negative rows": func(e *Event) { e.Rows = -1 },
	}
	for name, mutate := range cases {
		ev := validEvent()
		mutate(&ev)
		if err := ev.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
