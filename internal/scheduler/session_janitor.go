package scheduler

import (
	"context"
	"time"

	"github.com/BalajiAXG/BookMark-Repo/internal/logger"
)

// SessionReaper deletes expired session records and reports how many
// were removed.
type SessionReaper interface {
	ReapExpired(ctx context.Context) (int, error)
}

// SessionJanitor periodically sweeps expired auth sessions. The
// identity provider may write session records without a TTL; this loop
// keeps the keyspace from accumulating dead tokens.
type SessionJanitor struct {
	reaper        SessionReaper
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewSessionJanitor creates a janitor. manualTrigger may be nil when no
// on-demand sweep is needed.
func NewSessionJanitor(
	reaper SessionReaper,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *SessionJanitor {
	return &SessionJanitor{
		reaper:        reaper,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start runs one sweep immediately, then sweeps on every tick until
// stopped.
func (j *SessionJanitor) Start(ctx context.Context) error {
	if err := j.Sweep(ctx); err != nil {
		j.logger.Warn("initial session sweep failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(j.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := j.Sweep(ctx); err != nil {
					j.logger.Error("session sweep failed",
						logger.Error(err))
				}
			case <-j.manualTrigger:
				j.logger.Info("manual session sweep triggered")
				if err := j.Sweep(ctx); err != nil {
					j.logger.Error("session sweep failed",
						logger.Error(err))
				}
			case <-j.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the janitor.
func (j *SessionJanitor) Stop() {
	close(j.stopCh)
}

// Sweep runs one reap pass.
func (j *SessionJanitor) Sweep(ctx context.Context) error {
	deleted, err := j.reaper.ReapExpired(ctx)
	if err != nil {
		return err
	}

	if deleted > 0 {
		j.logger.Info("reaped expired sessions",
			logger.Int("deleted", deleted))
	} else {
		j.logger.Debug("no expired sessions to reap")
	}
	return nil
}
