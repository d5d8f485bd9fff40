package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// Interval between expired-session purges
	sessionPurgeInterval = 10 * time.Minute

	// Timeout for one purge round
	sessionPurgeTimeout = 30 * time.Second
)

// SessionPurger drops expired per-session state in bulk: a session store, or
// the screen loader's snapshots. The redis store expires keys on its own.
type SessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// SessionJanitorService purges expired session state in the background.
type SessionJanitorService struct {
	purgers  []SessionPurger
	interval time.Duration
	log      *logrus.Logger

	// Graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// NewSessionJanitorService starts the purge loop. Call Stop() during graceful shutdown.
func NewSessionJanitorService(interval time.Duration, log *logrus.Logger, purgers ...SessionPurger) *SessionJanitorService {
	if interval <= 0 {
		interval = sessionPurgeInterval
	}

	svc := &SessionJanitorService{
		purgers:  purgers,
		interval: interval,
		log:      log,
		stopChan: make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.purgeLoop()

	return svc
}

// Stop gracefully shuts down the service.
// Safe to call multiple times.
func (s *SessionJanitorService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("SessionJanitorService stopped")
	}
}

// PurgeOnce runs a single purge round over every purger. A failing purger
// does not stop the others; the first error is returned.
func (s *SessionJanitorService) PurgeOnce(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, sessionPurgeTimeout)
	defer cancel()

	var total int64
	var firstErr error
	for _, p := range s.purgers {
		n, err := p.PurgeExpired(ctx)
		if err != nil {
			s.log.Warnf("Failed to purge expired session state: %+v", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		total += n
	}
	if total > 0 {
		s.log.Debugf("Purged %d expired session entries", total)
	}
	return total, firstErr
}

func (s *SessionJanitorService) purgeLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Session purge goroutine stopping")
			return
		case <-ticker.C:
			_, _ = s.PurgeOnce(context.Background())
		}
	}
}
