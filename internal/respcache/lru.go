package respcache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kiyer/argoquery/internal/core/model"
)

type lruEntry struct {
	resp     *model.Response
	deadline time.Time
}

// LRU is the in-process driver. Expiry is per entry so hot questions
// can carry a stretched TTL.
type LRU struct {
	c   *lru.Cache[string, lruEntry]
	now func() time.Time
}

var _ Interface = (*LRU)(nil)

func NewLRU(size int) (*LRU, error) {
	if size <= 0 {
		size = 1024
	}
	c, err := lru.New[string, lruEntry](size)
	if err != nil {
		return nil, err
	}
	return &LRU{c: c, now: time.Now}, nil
}

func (l *LRU) Get(_ context.Context, key string) (*model.Response, bool, error) {
	e, ok := l.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	if l.now().After(e.deadline) {
		l.c.Remove(key)
		return nil, false, nil
	}
	return e.resp, true, nil
}

func (l *LRU) Set(_ context.Context, key string, resp *model.Response, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	l.c.Add(key, lruEntry{resp: resp, deadline: l.now().Add(ttl)})
	return nil
}

func (l *LRU) Flush(context.Context) error {
	l.c.Purge()
	return nil
}
