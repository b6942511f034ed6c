package rediscache

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/leetstreak/internal/platform/logging"
	"github.com/riskibarqy/leetstreak/internal/platform/resilience"
)

var (
	ErrNotReady       = crerr.New("redis client is not ready")
	errRedisTransient = crerr.New("redis transient failure")
)

type Event string

const (
	EventConnected Event = "connected"
	EventError     Event = "error"
	EventClosed    Event = "closed"
)

type Config struct {
	URL         string
	DialTimeout time.Duration
	OpTimeout   time.Duration
	Reconnect   resilience.ReconnectPolicy
}

// Client is the durable cache tier. It connects in the background, reports
// readiness, and stops reconnecting for good once the reconnect policy is
// exhausted.
type Client struct {
	rdb       *redis.Client
	opTimeout time.Duration
	dialTime  time.Duration
	policy    resilience.ReconnectPolicy
	logger    *logging.Logger

	ready      atomic.Bool
	closed     atomic.Bool
	connecting atomic.Bool

	mu       sync.Mutex
	failures int
	gaveUp   bool

	loopCtx    context.Context
	cancelLoop context.CancelFunc
	wg         sync.WaitGroup

	sleep   func(ctx context.Context, d time.Duration) error
	onEvent func(event Event, err error)
}

type Option func(*Client)

// WithEventHook observes connection lifecycle events in addition to logging.
func WithEventHook(fn func(event Event, err error)) Option {
	return func(c *Client) {
		c.onEvent = fn
	}
}

// WithSleep replaces the wait between reconnect attempts.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		if fn != nil {
			c.sleep = fn
		}
	}
}

func New(cfg Config, logger *logging.Logger, opts ...Option) (*Client, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid REDIS_URL")
	}
	if logger == nil {
		logger = logging.Default()
	}

	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 2 * time.Second
	}
	opTimeout := cfg.OpTimeout
	if opTimeout <= 0 {
		opTimeout = 500 * time.Millisecond
	}

	opt.DialTimeout = dialTimeout
	opt.ReadTimeout = opTimeout
	opt.WriteTimeout = opTimeout
	// Reconnection is owned by the client, not by go-redis retries.
	opt.MaxRetries = -1

	loopCtx, cancel := context.WithCancel(context.Background())
	c := &Client{
		rdb:        redis.NewClient(opt),
		opTimeout:  opTimeout,
		dialTime:   dialTimeout,
		policy:     resilience.NormalizeReconnectPolicy(cfg.Reconnect),
		logger:     logger.Named("redis"),
		loopCtx:    loopCtx,
		cancelLoop: cancel,
		sleep:      sleepContext,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Start begins connecting in the background and returns immediately.
func (c *Client) Start() {
	c.reconnect()
}

// IsReady is true only while a connection is established.
func (c *Client) IsReady() bool {
	return c.ready.Load() && !c.closed.Load()
}

// GaveUp reports whether the reconnect policy has been exhausted.
func (c *Client) GaveUp() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gaveUp
}

func (c *Client) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if !c.IsReady() {
		return nil, false, ErrNotReady
	}

	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	value, err := c.rdb.Get(ctx, key).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, c.fail(ctx, "get", err)
	}
	return value, true, nil
}

func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !c.IsReady() {
		return ErrNotReady
	}

	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return c.fail(ctx, "set", err)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	if !c.IsReady() {
		return ErrNotReady
	}

	ctx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return c.fail(ctx, "delete", err)
	}
	return nil
}

// Close disconnects from redis. Failures are logged, never returned.
func (c *Client) Close() {
	c.mu.Lock()
	if !c.closed.CompareAndSwap(false, true) {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.ready.Store(false)
	c.cancelLoop()
	c.wg.Wait()

	if err := c.rdb.Close(); err != nil {
		c.logger.Warn("redis disconnect failed", "error", err)
	}
	c.emit(context.Background(), EventClosed, nil)
}

// IsTransient reports whether err came from a failed redis call.
func IsTransient(err error) bool {
	return crerr.Is(err, errRedisTransient) || crerr.Is(err, ErrNotReady)
}

// reconnect starts a connect loop unless one is running. The closed check and
// wg.Add share c.mu with Close so no loop starts once Close is waiting.
func (c *Client) reconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed.Load() || c.gaveUp {
		return
	}
	if !c.connecting.CompareAndSwap(false, true) {
		return
	}

	c.wg.Add(1)
	go c.connectLoop()
}

func (c *Client) connectLoop() {
	defer c.wg.Done()
	defer c.connecting.Store(false)

	for {
		pingCtx, cancel := context.WithTimeout(c.loopCtx, c.dialTime)
		err := c.rdb.Ping(pingCtx).Err()
		cancel()

		if c.loopCtx.Err() != nil {
			return
		}
		if err == nil {
			c.emit(c.loopCtx, EventConnected, nil)
			c.ready.Store(true)
			return
		}

		c.mu.Lock()
		c.failures++
		failures := c.failures
		exhausted := c.policy.Exhausted(failures)
		if exhausted {
			c.gaveUp = true
		}
		c.mu.Unlock()

		c.emit(c.loopCtx, EventError, err)
		if exhausted {
			c.logger.Error("redis reconnect attempts exhausted, staying on fallback cache", "attempts", failures)
			return
		}

		delay := c.policy.Delay(failures)
		c.logger.Info("redis reconnect scheduled", "attempt", failures+1, "delay", delay)
		if err := c.sleep(c.loopCtx, delay); err != nil {
			return
		}
	}
}

func (c *Client) fail(ctx context.Context, op string, err error) error {
	if isConnectionError(err) && c.ready.CompareAndSwap(true, false) {
		c.emit(ctx, EventError, err)
		c.reconnect()
	}
	return crerr.Mark(crerr.Wrapf(err, "redis %s", op), errRedisTransient)
}

func (c *Client) emit(ctx context.Context, event Event, err error) {
	switch event {
	case EventConnected:
		c.logger.InfoContext(ctx, "redis connected")
	case EventError:
		c.logger.WarnContext(ctx, "redis connection error", "error", err)
	case EventClosed:
		c.logger.InfoContext(ctx, "redis connection closed")
	}
	if c.onEvent != nil {
		c.onEvent(event, err)
	}
}

// isConnectionError separates transport failures from server replies such as
// WRONGTYPE, which leave the connection usable.
func isConnectionError(err error) bool {
	if err == nil || stderrors.Is(err, context.Canceled) {
		return false
	}
	var replyErr redis.Error
	return !stderrors.As(err, &replyErr)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
