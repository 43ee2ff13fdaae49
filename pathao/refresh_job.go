package pathao

import (
	"context"
	"sync"
	"time"

	"github.com/parceldesk/pathao-sdk-go/internal/logger"
)

// DefaultRefreshInterval is the period of the background reference-data
// refresh when none is given.
const DefaultRefreshInterval = 24 * time.Hour

// refreshJob periodically re-runs a maintenance function, typically a
// reference-data refresh plus cache cleanup. Start and Stop are safe to
// call from multiple goroutines; Stop waits for an in-flight run.
type refreshJob struct {
	interval time.Duration
	run      func(context.Context) error
	log      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newRefreshJob(interval time.Duration, run func(context.Context) error, log *logger.Logger) *refreshJob {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &refreshJob{interval: interval, run: run, log: log}
}

// start launches the ticker loop with the given period; a non-positive
// interval keeps the current one. Calling start on a running job is a
// no-op.
func (j *refreshJob) start(ctx context.Context, interval time.Duration) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.cancel != nil {
		return
	}
	if interval > 0 {
		j.interval = interval
	}

	ctx, cancel := context.WithCancel(ctx)
	j.cancel = cancel

	j.wg.Add(1)
	go j.loop(ctx)
	j.log.Debug().Dur("interval", j.interval).Msg("refresh job started")
}

// stop cancels the loop and blocks until it has exited. Stopping an
// idle job is a no-op.
func (j *refreshJob) stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	j.wg.Wait()
	j.log.Debug().Msg("refresh job stopped")
}

func (j *refreshJob) loop(ctx context.Context) {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := j.run(ctx); err != nil && ctx.Err() == nil {
				j.log.Warn().Err(err).Msg("background refresh failed")
			}
		}
	}
}
