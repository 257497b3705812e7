// Package sweeper runs the eager side of the expiration policy: a recurring
// background pass that closes every expired active item regardless of whether
// anyone is reading.
package sweeper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mgrady/bidwell/internal/clock"
	"github.com/mgrady/bidwell/internal/domain/items"
)

// Sweeper periodically closes expired items. It holds its own Clock,
// independent of the item service's, so tests can drive each side alone.
type Sweeper struct {
	svc      *items.Service
	clock    clock.Clock
	interval time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// New creates a sweeper that runs a pass every interval once started.
func New(svc *items.Service, clk clock.Clock, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		svc:      svc,
		clock:    clk,
		interval: interval,
		logger:   logger,
	}
}

// Sweep runs a single pass and returns the number of items it closed.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	return s.svc.CloseExpired(ctx, s.clock.Now())
}

// Start launches the background loop. Starting a running sweeper is a no-op.
func (s *Sweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})

	s.wg.Add(1)
	go s.run(s.stopCh)
}

// Stop halts future ticks and waits for an in-flight pass to finish.
// Stopping a stopped sweeper is a no-op.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.running = false
	close(s.stopCh)
	s.wg.Wait()
}

// Running reports whether the background loop is active.
func (s *Sweeper) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Sweeper) run(stopCh <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Initial pass so freshly started processes don't wait a full interval
	s.sweepAndLog()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			s.sweepAndLog()
		}
	}
}

func (s *Sweeper) sweepAndLog() {
	closed, err := s.Sweep(context.Background())
	if err != nil {
		s.logger.Error("sweep pass failed", "error", err)
		return
	}
	if closed > 0 {
		s.logger.Info("closed expired items", "count", closed)
	}
}
