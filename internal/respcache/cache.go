// Package respcache caches complete query responses keyed by
// normalized question. Drivers are selected by config; "none" disables
// caching entirely.
package respcache

import (
	"context"
	"time"

	"github.com/kiyer/argoquery/internal/core/model"
)

type Interface interface {
	// Get returns the cached response and whether it was present.
	Get(ctx context.Context, key string) (*model.Response, bool, error)
	Set(ctx context.Context, key string, resp *model.Response, ttl time.Duration) error
	// Flush drops every response entry (ingest invalidation).
	Flush(ctx context.Context) error
}

// Noop is the disabled driver.
type Noop struct{}

func (Noop) Get(context.Context, string) (*model.Response, bool, error) { return nil, false, nil }
func (Noop) Set(context.Context, string, *model.Response, time.Duration) error {
	return nil
}
func (Noop) Flush(context.Context) error { return nil }

var _ Interface = Noop{}
