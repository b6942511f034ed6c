package resilience

import "time"

type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	return cfg
}

// ReconnectPolicy bounds reconnection to a dependency over the lifetime of a
// client: the delay grows linearly by Step up to MaxDelay, and after
// MaxAttempts failed attempts the client stops trying.
type ReconnectPolicy struct {
	MaxAttempts int
	Step        time.Duration
	MaxDelay    time.Duration
}

func DefaultReconnectPolicy() ReconnectPolicy {
	return ReconnectPolicy{
		MaxAttempts: 3,
		Step:        500 * time.Millisecond,
		MaxDelay:    2 * time.Second,
	}
}

func NormalizeReconnectPolicy(p ReconnectPolicy) ReconnectPolicy {
	defaults := DefaultReconnectPolicy()
	if p.MaxAttempts < 1 {
		p.MaxAttempts = defaults.MaxAttempts
	}
	if p.Step <= 0 {
		p.Step = defaults.Step
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = defaults.MaxDelay
	}
	return p
}

// Delay returns the wait before the attempt that follows the given number of
// failed attempts.
func (p ReconnectPolicy) Delay(failedAttempts int) time.Duration {
	if failedAttempts < 1 {
		return 0
	}
	delay := time.Duration(failedAttempts) * p.Step
	if delay > p.MaxDelay {
		return p.MaxDelay
	}
	return delay
}

func (p ReconnectPolicy) Exhausted(failedAttempts int) bool {
	return failedAttempts >= p.MaxAttempts
}
