package workers

import (
	"time"

	"github.com/davistroy/radioforms-sub003/internal/logger"
)

// CacheSweeper is the slice of the storage layer the janitor needs.
type CacheSweeper interface {
	SweepCaches()
}

// CacheJanitor periodically drops expired entries from the repository
// caches. Entries expire lazily on read; the janitor reclaims the ones
// nothing reads again between write invalidations.
type CacheJanitor struct {
	sweeper  CacheSweeper
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}

	logger *logger.Logger
}

func NewCacheJanitor(sweeper CacheSweeper, interval time.Duration, log *logger.Logger) *CacheJanitor {
	return &CacheJanitor{
		sweeper:  sweeper,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		logger:   log,
	}
}

// Run starts the sweep loop in a goroutine and returns immediately.
// A non-positive interval disables the janitor.
func (j *CacheJanitor) Run() {
	if j.interval <= 0 {
		close(j.done)
		return
	}

	j.logger.Info().Dur("interval", j.interval).Msg("cache janitor started")

	go func() {
		defer close(j.done)

		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				j.sweeper.SweepCaches()
			case <-j.stop:
				return
			}
		}
	}()
}

// Stop ends the sweep loop and waits for it to exit. Call it once,
// after Run.
func (j *CacheJanitor) Stop() {
	close(j.stop)
	<-j.done

	j.logger.Info().Msg("cache janitor stopped")
}
