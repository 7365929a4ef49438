// Package ratelimiter keeps one token bucket per client key.
package ratelimiter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter decides whether a client may proceed.
type RateLimiter interface {
	Allow(key string) bool
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// PerClient hands out a rate.Limiter per key and forgets idle keys.
type PerClient struct {
	rps     rate.Limit
	burst   int
	idle    time.Duration
	clients map[string]*client
	now     func() time.Time
	mu      sync.Mutex
}

// NewPerClient creates a limiter allowing rps requests per second with the given burst.
func NewPerClient(rps float64, burst int) *PerClient {
	// Ensure positive values to prevent a limiter that never admits anything
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &PerClient{
		rps:     rate.Limit(rps),
		burst:   burst,
		idle:    3 * time.Minute,
		clients: make(map[string]*client),
		now:     time.Now,
	}
}

// Allow takes a token from key's bucket.
func (p *PerClient) Allow(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	c, ok := p.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(p.rps, p.burst)}
		p.clients[key] = c
	}
	c.lastSeen = p.now()

	return c.limiter.AllowN(c.lastSeen, 1)
}

// Len returns the number of tracked clients.
func (p *PerClient) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.clients)
}

// Sweep drops clients not seen for the idle period.
func (p *PerClient) Sweep() {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	for key, c := range p.clients {
		if now.Sub(c.lastSeen) > p.idle {
			delete(p.clients, key)
		}
	}
}

// StartCleanup sweeps idle clients every minute until ctx is done.
func (p *PerClient) StartCleanup(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.Sweep()
			case <-ctx.Done():
				return
			}
		}
	}()
}
