// Package service orchestrates the question-answering pipeline: draft
// intent, sanitize, compile, execute, summarize, cache.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kiyer/argoquery/internal/compiler"
	"github.com/kiyer/argoquery/internal/core/model"
	"github.com/kiyer/argoquery/internal/core/observability"
	"github.com/kiyer/argoquery/internal/gazetteer"
	"github.com/kiyer/argoquery/internal/hotness"
	"github.com/kiyer/argoquery/internal/intent"
	"github.com/kiyer/argoquery/internal/respcache"
	"github.com/kiyer/argoquery/internal/respcache/keys"
	"github.com/kiyer/argoquery/internal/schema"
	"github.com/kiyer/argoquery/internal/summarizer"
)

// Runner executes a compiled query against the measurement table.
type Runner interface {
	Run(ctx context.Context, q model.CompiledQuery) ([]model.Row, error)
}

// SchemaSource supplies the current column snapshot and temporal bounds.
type SchemaSource interface {
	Snapshot() schema.Snapshot
	Temporal() model.Temporal
}

type Config struct {
	Table        string
	TTL          time.Duration
	HotTTL       time.Duration
	HotThreshold float64
	H3Res        int
}

type Service struct {
	log      *slog.Logger
	gaz      *gazetteer.Gazetteer
	comp     *compiler.Compiler
	exec     Runner
	schema   SchemaSource
	llm      intent.Producer // nil when no API key is configured
	fallback intent.Producer
	narrator intent.Narrator // nil disables LLM summaries
	cache    respcache.Interface
	hot      hotness.Interface
	cfg      Config
}

func New(log *slog.Logger, gaz *gazetteer.Gazetteer, comp *compiler.Compiler, exec Runner,
	schemaSrc SchemaSource, llm intent.Producer, fallback intent.Producer, narrator intent.Narrator,
	cache respcache.Interface, hot hotness.Interface, cfg Config) *Service {
	if log == nil {
		log = slog.Default()
	}
	if cache == nil {
		cache = respcache.Noop{}
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 300 * time.Second
	}
	if cfg.HotTTL <= 0 {
		cfg.HotTTL = 2 * cfg.TTL
	}
	if cfg.HotThreshold <= 0 {
		cfg.HotThreshold = 10
	}
	if cfg.Table == "" {
		cfg.Table = "argo_data"
	}
	return &Service{
		log: log, gaz: gaz, comp: comp, exec: exec, schema: schemaSrc,
		llm: llm, fallback: fallback, narrator: narrator,
		cache: cache, hot: hot, cfg: cfg,
	}
}

// Answer runs the full pipeline for a natural-language question. A
// compile failure yields an Error-shaped response, not a Go error;
// only infrastructure failures (database down) surface as errors.
func (s *Service) Answer(ctx context.Context, question string) (*model.Response, error) {
	snap := s.schema.Snapshot()
	temporal := s.schema.Temporal()

	// verbatim repeats are answerable before drafting an intent
	preKey := keys.QuestionKey(question)
	if cached, ok, err := s.cache.Get(ctx, preKey); err == nil && ok {
		observability.IncCacheHit()
		return cached, nil
	} else if err != nil {
		s.log.Warn("response cache get failed", "err", err)
	}

	raw := s.draft(ctx, question)
	in := intent.Sanitize(raw, question, snap, s.gaz)

	key := keys.Key(question, in, s.cfg.H3Res)
	if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		observability.IncCacheHit()
		if err := s.cache.Set(ctx, preKey, cached, s.cfg.TTL); err != nil {
			s.log.Warn("response cache set failed", "err", err)
		}
		return cached, nil
	} else if err != nil {
		s.log.Warn("response cache get failed", "err", err)
	}
	observability.IncCacheMiss()

	q, err := s.comp.Compile(in, snap, temporal)
	if err != nil {
		ce, ok := model.AsCompileError(err)
		if !ok {
			return nil, fmt.Errorf("compile: %w", err)
		}
		observability.ObserveCompile(string(in.QueryType), string(ce.Kind))
		if ce.Recoverable() {
			return s.suggestFloats(ctx, in, snap, temporal, ce)
		}
		return &model.Response{QueryType: "Error", Summary: ce.Message, Data: []model.Row{}}, nil
	}
	observability.ObserveCompile(string(in.QueryType), "ok")

	rows, err := s.exec.Run(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("execute: %w", err)
	}

	dataRange := describeRange(temporal)
	digest := summarizer.Digest(in, rows, dataRange)
	summary := digest
	if s.narrator != nil {
		if text, err := s.narrator.Narrate(ctx, question, string(in.QueryType), digest, summarizer.Sample(rows)); err == nil && text != "" {
			summary = text
		} else if err != nil {
			s.log.Warn("narration failed, serving digest", "err", err)
		}
	}

	if rows == nil {
		rows = []model.Row{}
	}
	resp := &model.Response{
		QueryType: string(in.QueryType),
		SQLQuery:  q.SQL,
		Summary:   summary,
		Data:      rows,
		DataRange: dataRange,
	}

	ttl := s.cfg.TTL
	if s.hot != nil {
		s.hot.Inc(key)
		if s.hot.Score(key) >= s.cfg.HotThreshold {
			ttl = s.cfg.HotTTL
		}
	}
	if err := s.cache.Set(ctx, key, resp, ttl); err != nil {
		s.log.Warn("response cache set failed", "err", err)
	}
	if err := s.cache.Set(ctx, preKey, resp, ttl); err != nil {
		s.log.Warn("response cache set failed", "err", err)
	}
	return resp, nil
}

// draft asks the LLM producer first and falls back to the regex
// producer on any failure.
func (s *Service) draft(ctx context.Context, question string) model.RawIntent {
	if s.llm != nil {
		raw, err := s.llm.Draft(ctx, question)
		if err == nil {
			observability.IncDraft("llm")
			return raw
		}
		s.log.Warn("llm draft failed, using fallback", "err", err)
	}
	observability.IncDraft("fallback")
	raw, err := s.fallback.Draft(ctx, question)
	if err != nil {
		// the regex producer cannot fail, but stay total anyway
		return model.RawIntent{}
	}
	return raw
}

// suggestFloats handles the recoverable missing-float-id case: offer
// candidate floats matching the intent's filters instead of an error.
func (s *Service) suggestFloats(ctx context.Context, in model.Intent, snap schema.Snapshot, temporal model.Temporal, ce *model.CompileError) (*model.Response, error) {
	q, err := s.comp.CandidateFloats(in, snap, temporal)
	if err != nil {
		return &model.Response{QueryType: "Error", Summary: ce.Message, Data: []model.Row{}}, nil
	}
	rows, err := s.exec.Run(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("candidate floats: %w", err)
	}
	if rows == nil {
		rows = []model.Row{}
	}
	summary := ce.Message
	if len(rows) > 0 {
		summary = fmt.Sprintf("%s. Here are %d floats matching your filters; ask again with one of their IDs.", ce.Message, len(rows))
	}
	return &model.Response{
		QueryType: string(in.QueryType),
		SQLQuery:  q.SQL,
		Summary:   summary,
		Data:      rows,
		DataRange: describeRange(temporal),
	}, nil
}

func describeRange(t model.Temporal) string {
	if t.DataMin.IsZero() || t.DataMax.IsZero() {
		return ""
	}
	return fmt.Sprintf("Data available from %s to %s",
		t.DataMin.Format("Jan 2006"), t.DataMax.Format("Jan 2006"))
}
