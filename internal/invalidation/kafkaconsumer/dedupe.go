package kafkaconsumer

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// eventDedupe remembers recently applied event keys. ProcessOne runs
// concurrently (one goroutine per claimed partition), so access is
// mutex-guarded.
type eventDedupe struct {
	mu  sync.Mutex
	lru *lru.Cache[string, struct{}]
}

func newEventDedupe(size int) *eventDedupe {
	if size <= 0 {
		size = 4096
	}
	c, _ := lru.New[string, struct{}](size)
	return &eventDedupe{lru: c}
}

// seen reports whether key was applied before, recording it if not.
func (d *eventDedupe) seen(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.lru.Get(key); ok {
		return true
	}
	d.lru.Add(key, struct{}{})
	return false
}
