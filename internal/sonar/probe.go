package sonar

import (
	"context"
	"time"
)

const statusPath = "/api/system/status"

// Default probe budget.
const (
	DefaultProbeAttempts = 30
	DefaultProbeInterval = 2 * time.Second
	DefaultProbeTimeout  = 5 * time.Second
)

// Prober waits for the server to answer its health endpoint.
type Prober struct {
	Client      *Client
	MaxAttempts int
	Interval    time.Duration
	Timeout     time.Duration

	// OnRetry, when set, is called after every failed attempt that will be
	// followed by another one.
	OnRetry func(attempt, maxAttempts int, err error)
}

// NewProber returns a Prober with the default budget.
func NewProber(c *Client) *Prober {
	return &Prober{
		Client:      c,
		MaxAttempts: DefaultProbeAttempts,
		Interval:    DefaultProbeInterval,
		Timeout:     DefaultProbeTimeout,
	}
}

// Wait blocks until the health endpoint returns a 2xx status or the attempt
// budget runs out. Transport errors, timeouts, and error statuses all count
// as a failed attempt. It returns false if the server never became ready or
// ctx was cancelled.
func (p *Prober) Wait(ctx context.Context) bool {
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err := p.check(ctx)
		if err == nil {
			return true
		}
		if attempt == p.MaxAttempts {
			break
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt, p.MaxAttempts, err)
		}

		select {
		case <-ctx.Done():
			return false
		case <-time.After(p.Interval):
		}
	}
	return false
}

func (p *Prober) check(ctx context.Context) error {
	attemptCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()
	return p.Client.get(attemptCtx, statusPath, nil, nil)
}
