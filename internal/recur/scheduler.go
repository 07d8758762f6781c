package recur

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Scheduler runs the engine once at start and then on a fixed interval. A
// tick that arrives while a pass is still running is skipped rather than
// queued; due-ness is re-derived from the store on the next tick, so a
// skipped tick loses nothing.
type Scheduler struct {
	mu       sync.RWMutex
	engine   *Engine
	interval time.Duration
	logger   *slog.Logger
	running  sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewScheduler(engine *Engine, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		engine:   engine,
		interval: interval,
		logger:   logger,
	}
}

// Start begins the scheduler loop, running the first pass immediately.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)

		s.tick()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.tick()
			}
		}
	}()
}

// Stop cancels the loop and waits for an in-flight pass to finish.
func (s *Scheduler) Stop() {
	s.mu.RLock()
	cancel := s.cancel
	done := s.done
	s.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (s *Scheduler) tick() {
	if !s.running.TryLock() {
		s.logger.Warn("previous recurrence pass still running, skipping tick")
		return
	}
	defer s.running.Unlock()

	if err := s.engine.Process(); err != nil {
		s.logger.Error("recurrence pass failed", "error", err)
	}
}
