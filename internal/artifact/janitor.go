package artifact

import (
	"time"

	"go.uber.org/zap"
)

// Janitor sweeps aged artifacts of one tag in the background. The chat
// pipeline never purges its own replies, so without the janitor they would
// accumulate without bound.
type Janitor struct {
	store    *Store
	tag      string
	ttl      time.Duration
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
}

// NewJanitor creates a janitor sweeping artifacts of the given tag once they
// are older than ttl.
func NewJanitor(store *Store, tag string, ttl, interval time.Duration, logger *zap.Logger) *Janitor {
	return &Janitor{
		store:    store,
		tag:      tag,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start begins the background sweep process
func (j *Janitor) Start() {
	go j.sweepLoop()
	j.logger.Info("Artifact janitor started",
		zap.String("tag", j.tag),
		zap.Duration("ttl", j.ttl),
		zap.Duration("interval", j.interval))
}

// Stop gracefully stops the janitor
func (j *Janitor) Stop() {
	close(j.stopChan)
	j.logger.Info("Artifact janitor stopped")
}

func (j *Janitor) sweepLoop() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.stopChan:
			return
		case <-ticker.C:
			j.runSweep()
		}
	}
}

func (j *Janitor) runSweep() {
	if _, err := j.store.Purge(j.tag, time.Now().Add(-j.ttl)); err != nil {
		j.logger.Error("Artifact sweep failed", zap.String("tag", j.tag), zap.Error(err))
	}
}
