package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pulseboard/internal/client"
	"pulseboard/internal/configuration"
	"pulseboard/internal/models"

	"go.uber.org/zap"
)

// ErrInvalidWindow rejects a reporting window outside the allowed set.
var ErrInvalidWindow = fmt.Errorf(
	"window days must be one of %v", configuration.AllowedWindowDays)

// ErrInvalidInterval rejects a negative refresh interval.
var ErrInvalidInterval = errors.New("refresh interval must be zero or positive")

// Controller owns the dashboard's data-refresh lifecycle: it runs fetch
// cycles against a metrics source, commits their results atomically, and
// re-runs on a timer and on parameter change.
//
// Every cycle is issued a generation token from a monotonic counter. Issuing
// a new cycle cancels the previous one's context and supersedes its right to
// commit: at commit time the cycle's token is compared against the latest
// issued token and stale results are discarded. Cancellation is advisory for
// the network layer but authoritative for the commit decision, so a
// superseded cycle's late-arriving response can never overwrite newer state.
//
// Foreground cycles (startup, parameter change, forced refresh) set the
// loading status and clear the committed view on failure; background cycles
// (timer ticks) never touch the loading status, and their failures leave
// previously committed data in place.
type Controller struct {
	source client.IMetricsSource

	mu          sync.Mutex
	params      models.QueryParams
	view        models.ViewState
	status      models.LoadStatus
	updatedAt   time.Time
	gen         uint64
	cancelCycle context.CancelFunc
	cancelTimer context.CancelFunc
	closed      bool

	wg sync.WaitGroup
}

func NewController(source client.IMetricsSource, params models.QueryParams) *Controller {
	return &Controller{
		source: source,
		params: params,
		status: models.LoadStatus{State: models.LoadIdle},
	}
}

// Start runs the initial foreground cycle and arms the background timer when
// a refresh interval is configured.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	params := c.params
	c.armTimerLocked(params.RefreshIntervalSeconds)
	c.mu.Unlock()

	c.scheduleCycle(params, false)
}

// SetParams applies new query parameters. Setting the current values again is
// a no-op: no extra cycle is spawned and the armed timer is left untouched.
// A real change tears down the old timer, arms a new one, and runs an
// immediate foreground cycle that supersedes whatever is in flight.
func (c *Controller) SetParams(params models.QueryParams) error {
	if !allowedWindow(params.WindowDays) {
		return ErrInvalidWindow
	}
	if params.RefreshIntervalSeconds < 0 {
		return ErrInvalidInterval
	}

	c.mu.Lock()
	if c.closed || params == c.params {
		c.mu.Unlock()
		return nil
	}
	c.params = params
	c.armTimerLocked(params.RefreshIntervalSeconds)
	c.mu.Unlock()

	zap.L().Info("Query parameters changed",
		zap.Int("window_days", params.WindowDays),
		zap.Int("refresh_interval_seconds", params.RefreshIntervalSeconds))

	c.scheduleCycle(params, false)
	return nil
}

// ForceRefresh runs an immediate foreground cycle at the current parameters.
func (c *Controller) ForceRefresh() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	params := c.params
	c.mu.Unlock()

	c.scheduleCycle(params, false)
}

// Snapshot returns a copy of the committed view-state together with the load
// status and current parameters. It is the only read surface; nothing
// external can mutate controller state.
func (c *Controller) Snapshot() models.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.Snapshot{
		View:      c.view.Clone(),
		Status:    c.status,
		Params:    c.params,
		UpdatedAt: c.updatedAt,
	}
}

// Close cancels the in-flight cycle and the timer, then waits for cycle
// goroutines to drain. No state mutation happens after Close returns.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.cancelCycle != nil {
		c.cancelCycle()
		c.cancelCycle = nil
	}
	if c.cancelTimer != nil {
		c.cancelTimer()
		c.cancelTimer = nil
	}
	c.mu.Unlock()

	c.wg.Wait()
	zap.L().Info("Refresh controller stopped")
}

// scheduleCycle issues a new generation token, cancels the previous in-flight
// cycle, and runs the fetch in its own goroutine. The token decides at commit
// time whether the results are still wanted.
func (c *Controller) scheduleCycle(params models.QueryParams, background bool) {
	c.schedule(params, background, nil)
}

// schedule is scheduleCycle plus an optional guard context, checked under the
// mutex so the decision is atomic with token issuance. Timer ticks pass their
// timer's context: a tick that lost the race against a parameter change or a
// disarm reaches the mutex with a canceled guard and schedules nothing.
func (c *Controller) schedule(params models.QueryParams, background bool, guard context.Context) {
	c.mu.Lock()
	if c.closed || (guard != nil && guard.Err() != nil) {
		c.mu.Unlock()
		return
	}
	if background {
		// Ticks always poll the live parameters, never the ones they were
		// scheduled with.
		params = c.params
	}
	if c.cancelCycle != nil {
		c.cancelCycle()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancelCycle = cancel
	c.gen++
	token := c.gen
	if !background {
		c.status = models.LoadStatus{State: models.LoadLoading}
	}
	c.wg.Add(1)
	c.mu.Unlock()

	zap.L().Debug("Scheduling fetch cycle",
		zap.Uint64("generation", token),
		zap.Bool("background", background),
		zap.Int("window_days", params.WindowDays))

	go func() {
		defer c.wg.Done()
		defer cancel()

		view, err := c.source.FetchDashboard(ctx, params.WindowDays)
		c.commit(token, background, view, err)
	}()
}

// commit applies one cycle's outcome. Results are applied in issuance order
// of generation tokens, never completion order: a token that is no longer
// current is discarded silently, whatever the outcome was.
func (c *Controller) commit(token uint64, background bool, view models.ViewState, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || token != c.gen {
		return
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Not an error, not worth surfacing. Normally the canceling party
			// has already issued a newer token, but a current-token
			// cancellation must still drop the loading flag.
			if c.status.State == models.LoadLoading {
				if c.updatedAt.IsZero() {
					c.status = models.LoadStatus{State: models.LoadIdle}
				} else {
					c.status = models.LoadStatus{State: models.LoadReady}
				}
			}
			return
		}
		if errors.Is(err, client.ErrNotConfigured) {
			// Terminal: retrying on a timer cannot fix a missing base URL.
			c.disarmTimerLocked()
		}
		if !background {
			// A foreground failure replaces the content area: the committed
			// window no longer matches the parameters shown to the user.
			// Only a background failure leaves stale data visible.
			c.view = models.ViewState{}
			c.updatedAt = time.Time{}
		}
		c.status = models.LoadStatus{State: models.LoadError, Message: err.Error()}
		zap.L().Warn("Fetch cycle failed",
			zap.Uint64("generation", token),
			zap.Bool("background", background),
			zap.Error(err))
		return
	}

	c.view = view
	c.updatedAt = time.Now()
	c.status = models.LoadStatus{State: models.LoadReady}
	zap.L().Debug("Committed fetch cycle", zap.Uint64("generation", token))
}

func (c *Controller) armTimerLocked(intervalSeconds int) {
	c.disarmTimerLocked()
	if intervalSeconds <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancelTimer = cancel
	go c.runTimer(ctx, time.Duration(intervalSeconds)*time.Second)
}

func (c *Controller) disarmTimerLocked() {
	if c.cancelTimer != nil {
		c.cancelTimer()
		c.cancelTimer = nil
	}
}

func (c *Controller) runTimer(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.schedule(models.QueryParams{}, true, ctx)
		}
	}
}

func allowedWindow(days int) bool {
	for _, allowed := range configuration.AllowedWindowDays {
		if days == allowed {
			return true
		}
	}
	return false
}
