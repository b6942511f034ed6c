package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/leetstreak/internal/platform/logging"
	"github.com/riskibarqy/leetstreak/internal/platform/resilience"
)

// Durable is the shared network cache behind the process-local store.
type Durable interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	IsReady() bool
}

// Outcome classifies a read for logging and health reporting. Callers outside
// this package only need to know whether a value came back.
type Outcome uint8

const (
	// OutcomeHit is a value served by the durable tier.
	OutcomeHit Outcome = iota
	// OutcomeMiss is a durable tier answer of "no such key".
	OutcomeMiss
	// OutcomeFallbackHit is a value served locally while the durable tier was unavailable.
	OutcomeFallbackHit
	// OutcomeDegradedMiss is a local miss while the durable tier was unavailable.
	OutcomeDegradedMiss
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeMiss:
		return "miss"
	case OutcomeFallbackHit:
		return "fallback_hit"
	case OutcomeDegradedMiss:
		return "degraded_miss"
	default:
		return "unknown"
	}
}

// Found reports whether the outcome carries a value.
func (o Outcome) Found() bool {
	return o == OutcomeHit || o == OutcomeFallbackHit
}

// Tiered routes reads to the durable tier when it is usable and to the local
// store otherwise. Writes always land locally first. No method returns an
// error: durable failures are logged and absorbed.
type Tiered struct {
	fallback *Store
	durable  Durable
	breaker  *resilience.CircuitBreaker
	logger   *logging.Logger

	hits           atomic.Int64
	misses         atomic.Int64
	fallbackHits   atomic.Int64
	degradedMisses atomic.Int64
	durableErrors  atomic.Int64
}

type TieredOption func(*Tiered)

// WithCircuitBreaker guards durable calls. While the breaker is open the
// durable tier is treated as not ready.
func WithCircuitBreaker(breaker *resilience.CircuitBreaker) TieredOption {
	return func(t *Tiered) {
		t.breaker = breaker
	}
}

func NewTiered(fallback *Store, durable Durable, logger *logging.Logger, opts ...TieredOption) *Tiered {
	if fallback == nil {
		fallback = NewStore(0)
	}
	if logger == nil {
		logger = logging.Default()
	}

	t := &Tiered{
		fallback: fallback,
		durable:  durable,
		logger:   logger.Named("cache"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tiered) Get(ctx context.Context, key string) ([]byte, Outcome) {
	if t.acquireDurable() {
		value, ok, err := t.durable.Get(ctx, key)
		t.releaseDurable(err)
		if err == nil {
			if ok {
				return t.record(ctx, key, value, OutcomeHit)
			}
			return t.record(ctx, key, nil, OutcomeMiss)
		}
		t.logger.WarnContext(ctx, "durable cache get failed, using fallback", "key", key, "error", err)
	}

	raw, ok := t.fallback.Get(ctx, key)
	if !ok {
		return t.record(ctx, key, nil, OutcomeDegradedMiss)
	}
	value, ok := raw.([]byte)
	if !ok {
		t.fallback.Delete(ctx, key)
		return t.record(ctx, key, nil, OutcomeDegradedMiss)
	}
	return t.record(ctx, key, value, OutcomeFallbackHit)
}

func (t *Tiered) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	t.fallback.SetWithTTL(ctx, key, value, ttl)

	if !t.acquireDurable() {
		return
	}
	err := t.durable.Set(ctx, key, value, ttl)
	t.releaseDurable(err)
	if err != nil {
		t.logger.WarnContext(ctx, "durable cache set failed", "key", key, "error", err)
	}
}

func (t *Tiered) Delete(ctx context.Context, key string) {
	t.fallback.Delete(ctx, key)

	if !t.acquireDurable() {
		return
	}
	err := t.durable.Delete(ctx, key)
	t.releaseDurable(err)
	if err != nil {
		t.logger.WarnContext(ctx, "durable cache delete failed", "key", key, "error", err)
	}
}

type Health struct {
	DurableReady    bool   `json:"durable_ready"`
	CircuitState    string `json:"circuit_state,omitempty"`
	FallbackEntries int    `json:"fallback_entries"`
	Hits            int64  `json:"hits"`
	Misses          int64  `json:"misses"`
	FallbackHits    int64  `json:"fallback_hits"`
	DegradedMisses  int64  `json:"degraded_misses"`
	DurableErrors   int64  `json:"durable_errors"`
}

func (t *Tiered) Health() Health {
	h := Health{
		DurableReady:    t.durable != nil && t.durable.IsReady(),
		FallbackEntries: t.fallback.Len(),
		Hits:            t.hits.Load(),
		Misses:          t.misses.Load(),
		FallbackHits:    t.fallbackHits.Load(),
		DegradedMisses:  t.degradedMisses.Load(),
		DurableErrors:   t.durableErrors.Load(),
	}
	if t.breaker != nil {
		h.CircuitState = string(t.breaker.State())
	}
	return h
}

func (t *Tiered) acquireDurable() bool {
	if t.durable == nil || !t.durable.IsReady() {
		return false
	}
	if t.breaker != nil && t.breaker.Allow() != nil {
		return false
	}
	return true
}

func (t *Tiered) releaseDurable(err error) {
	if err != nil {
		t.durableErrors.Add(1)
	}
	if t.breaker != nil {
		t.breaker.Record(err)
	}
}

func (t *Tiered) record(ctx context.Context, key string, value []byte, outcome Outcome) ([]byte, Outcome) {
	switch outcome {
	case OutcomeHit:
		t.hits.Add(1)
	case OutcomeMiss:
		t.misses.Add(1)
	case OutcomeFallbackHit:
		t.fallbackHits.Add(1)
	case OutcomeDegradedMiss:
		t.degradedMisses.Add(1)
	}
	t.logger.DebugContext(ctx, "cache lookup", "key", key, "outcome", outcome.String())
	return value, outcome
}
