package quotetimer

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Expirer closes every quote whose bidding window ended at or before now
// and reports how many were closed.
type Expirer interface {
	ExpireDue(ctx context.Context, now time.Time) (int, error)
}

// Sweeper periodically expires quotes in the background.
type Sweeper struct {
	expirer  Expirer
	interval time.Duration
	log      *slog.Logger
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSweeper returns a sweeper that runs every interval once started.
func NewSweeper(expirer Expirer, interval time.Duration, log *slog.Logger) *Sweeper {
	return &Sweeper{
		expirer:  expirer,
		interval: interval,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RunOnce performs a single sweep.
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	start := time.Now()
	n, err := s.expirer.ExpireDue(ctx, s.now())
	if err != nil {
		s.log.Error("quote_sweep_failed", "component", "quotetimer", "error", err.Error())
		return 0, err
	}
	if n > 0 {
		s.log.Info("quote_sweep", "component", "quotetimer", "expired", n,
			"duration_ms", time.Since(start).Milliseconds())
	}
	return n, nil
}

// Start launches the sweep loop. Calling Start on a running sweeper is a no-op.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		t := time.NewTicker(s.interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				_, _ = s.RunOnce(ctx)
			}
		}
	}(s.done)
}

// Stop ends the loop and waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
