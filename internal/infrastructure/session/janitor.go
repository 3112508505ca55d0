package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const defaultSweepInterval = 10 * time.Minute

// Sweeper is a store that can discard its expired entries.
type Sweeper interface {
	Sweep() int
}

// Janitor periodically sweeps expired sessions so abandoned logins do not
// accumulate between restarts.
type Janitor struct {
	store    Sweeper
	interval time.Duration
	log      zerolog.Logger
}

// NewJanitor creates a Janitor. If interval <= 0, defaultSweepInterval is used.
func NewJanitor(store Sweeper, interval time.Duration, log zerolog.Logger) *Janitor {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &Janitor{store: store, interval: interval, log: log}
}

// Run blocks until ctx is cancelled.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := j.store.Sweep(); n > 0 {
				j.log.Debug().Int("removed", n).Msg("expired sessions swept")
			}
		}
	}
}
