package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultRefreshInterval is the live update period.
const DefaultRefreshInterval = 5 * time.Second

var errUpdaterStopped = errors.New("dashboard: live updater already stopped")

// TickerFunc acquires a periodic tick source and returns its release func.
type TickerFunc func(interval time.Duration) (<-chan time.Time, func())

// NewTimeTicker is the default TickerFunc backed by time.Ticker.
func NewTimeTicker(interval time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(interval)
	return t.C, t.Stop
}

type refresher interface {
	Refresh(ctx context.Context, reason RefreshReason) error
}

// LiveUpdater owns the periodic refresh timer. The tick source is acquired in
// Start and released exactly once, on Stop or when the start context ends.
type LiveUpdater struct {
	target    refresher
	interval  time.Duration
	ticker    TickerFunc
	telemetry Telemetry

	mu        sync.Mutex
	started   bool
	stop      chan struct{}
	done      chan struct{}
	stopOnce  sync.Once
	releaseMu sync.Mutex
	released  int
}

// NewLiveUpdater wires a refresher to a tick source.
func NewLiveUpdater(target refresher, interval time.Duration, ticker TickerFunc, telemetry Telemetry) *LiveUpdater {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if ticker == nil {
		ticker = NewTimeTicker
	}
	return &LiveUpdater{
		target:    target,
		interval:  interval,
		ticker:    ticker,
		telemetry: normalizeTelemetry(telemetry),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Interval returns the refresh period.
func (u *LiveUpdater) Interval() time.Duration {
	return u.interval
}

// Start acquires the tick source and begins refreshing. Calling Start on a
// running updater is a no-op; a stopped updater cannot be restarted.
func (u *LiveUpdater) Start(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	select {
	case <-u.stop:
		return errUpdaterStopped
	default:
	}
	if u.started {
		return nil
	}
	u.started = true
	ticks, release := u.ticker(u.interval)
	go u.run(ctx, ticks, release)
	return nil
}

// Stop cancels the timer and waits for the loop to exit. Safe to call repeatedly.
func (u *LiveUpdater) Stop() {
	u.stopOnce.Do(func() { close(u.stop) })
	u.mu.Lock()
	started := u.started
	u.mu.Unlock()
	if started {
		<-u.done
	}
}

// Done is closed once the loop has exited and the ticker was released.
func (u *LiveUpdater) Done() <-chan struct{} {
	return u.done
}

// Releases reports how many times the tick source was released.
func (u *LiveUpdater) Releases() int {
	u.releaseMu.Lock()
	defer u.releaseMu.Unlock()
	return u.released
}

func (u *LiveUpdater) run(ctx context.Context, ticks <-chan time.Time, release func()) {
	defer close(u.done)
	defer func() {
		u.releaseMu.Lock()
		u.released++
		u.releaseMu.Unlock()
		if release != nil {
			release()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case <-u.stop:
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
			if err := u.target.Refresh(ctx, RefreshTick); err != nil {
				u.telemetry.Record(ctx, "dashboard.tick_error", map[string]any{
					"error": err.Error(),
				})
			}
		}
	}
}
