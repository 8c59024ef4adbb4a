package fetch

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Pacer enforces the politeness pause between requests to a host. Safe for
// concurrent use so crawls of distinct businesses can share one instance.
type Pacer struct {
	hostLastRequest   map[string]time.Time
	hostLastRequestMu sync.Mutex
	defaultDelay      time.Duration
	log               *logrus.Logger
}

// NewPacer creates a Pacer
func NewPacer(defaultDelay time.Duration, log *logrus.Logger) *Pacer {
	return &Pacer{
		hostLastRequest: make(map[string]time.Time),
		defaultDelay:    defaultDelay,
		log:             log,
	}
}

// Wait sleeps until at least minDelay has passed since the last request to
// the host, honoring context cancellation. A jitter of +/- 10% keeps request
// timing from looking mechanical.
func (p *Pacer) Wait(ctx context.Context, host string, minDelay time.Duration) error {
	if minDelay <= 0 {
		minDelay = p.defaultDelay
	}
	if minDelay <= 0 {
		return nil
	}

	p.hostLastRequestMu.Lock()
	lastReqTime, exists := p.hostLastRequest[host]
	p.hostLastRequestMu.Unlock()

	if !exists {
		return nil
	}

	elapsed := time.Since(lastReqTime)
	if elapsed >= minDelay {
		return nil
	}
	sleep := minDelay - elapsed

	var jitter time.Duration
	if jitterRange := int64(sleep) / 5; jitterRange > 0 {
		jitter = time.Duration(rand.Int63n(jitterRange)) - (sleep / 10)
	}
	sleep += jitter
	if sleep <= 0 {
		return nil
	}

	p.log.WithFields(logrus.Fields{"host": host, "sleep": sleep}).Debug("Politeness pause")

	timer := time.NewTimer(sleep)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// MarkRequest records the current time as the last request time for the host.
// Call after every request attempt, successful or not.
func (p *Pacer) MarkRequest(host string) {
	p.hostLastRequestMu.Lock()
	p.hostLastRequest[host] = time.Now()
	p.hostLastRequestMu.Unlock()
}
