// Package kafkaconsumer consumes ingest events and invalidates derived
// state: cached responses are flushed and the schema snapshot refreshed
// so new columns become visible without a restart.
package kafkaconsumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"

	"github.com/kiyer/argoquery/internal/core/observability"
	"github.com/kiyer/argoquery/internal/invalidation"
	"github.com/kiyer/argoquery/internal/respcache"
)

// SchemaRefresher re-reads the column set and temporal bounds.
type SchemaRefresher interface {
	Refresh(ctx context.Context) error
}

type Consumer struct {
	cfg    Config
	logger *slog.Logger
	cache  respcache.Interface
	schema SchemaRefresher
	dedupe *eventDedupe
}

func New(cfg Config, logger *slog.Logger, cache respcache.Interface, schema SchemaRefresher) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{cfg: cfg, logger: logger, cache: cache, schema: schema, dedupe: newEventDedupe(0)}
}

// Start runs the consumer group loop until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	if c.cache == nil {
		return errors.New("kafkaconsumer: missing cache dependency")
	}

	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_1_0_0
	cfg.Consumer.Group.Session.Timeout = c.cfg.SessionTimeout
	cfg.Consumer.Group.Heartbeat.Interval = c.cfg.Heartbeat
	cfg.Consumer.Group.Rebalance.Timeout = c.cfg.RebalanceTimeout
	if c.cfg.InitialOffsetOldest {
		cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		cfg.Consumer.Offsets.Initial = sarama.OffsetNewest
	}
	cfg.Consumer.Offsets.AutoCommit.Enable = true

	group, err := sarama.NewConsumerGroup(c.cfg.Brokers, c.cfg.GroupID, cfg)
	if err != nil {
		return fmt.Errorf("create consumer group: %w", err)
	}
	defer func() { _ = group.Close() }()

	handler := &groupHandler{process: c.ProcessOne}

	c.logger.Info("ingest invalidation consumer starting",
		"brokers", c.cfg.Brokers, "topic", c.cfg.Topic, "group", c.cfg.GroupID)

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("ingest invalidation consumer shutting down")
			return nil
		default:
			if err := group.Consume(ctx, []string{c.cfg.Topic}, handler); err != nil {
				c.logger.Error("consumer error", "err", err)
				time.Sleep(2 * time.Second)
			}
		}
	}
}

// ProcessOne handles a single ingest event message.
func (c *Consumer) ProcessOne(ctx context.Context, msg *sarama.ConsumerMessage) error {
	start := time.Now()

	var ev invalidation.Event
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		observability.ObserveUpstreamLatency("kafka_decode", time.Since(start).Seconds())
		return fmt.Errorf("json decode: %w", err)
	}
	if err := ev.Validate(); err != nil {
		c.logger.Warn("dropping invalid ingest event",
			"err", err, "topic", msg.Topic, "offset", msg.Offset)
		return nil
	}

	// replays of already-applied events are harmless but noisy
	if c.dedupe.seen(ev.Key()) {
		c.logger.Debug("skipping replayed ingest event", "ts", ev.TS, "op", ev.Op)
		return nil
	}

	if err := c.cache.Flush(ctx); err != nil {
		return fmt.Errorf("flush response cache: %w", err)
	}
	if c.schema != nil {
		if err := c.schema.Refresh(ctx); err != nil {
			// stale snapshot still works; log and continue
			c.logger.Error("schema refresh after ingest failed", "err", err)
		}
	}

	observability.ObserveUpstreamLatency("ingest_invalidation", time.Since(start).Seconds())
	c.logger.Info("applied ingest invalidation",
		"op", ev.Op, "table", ev.Table, "rows", ev.Rows, "floats", len(ev.FloatIDs))
	return nil
}
