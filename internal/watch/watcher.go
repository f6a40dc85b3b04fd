package watch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gpuwatch/internal/lambdalabs"
	"gpuwatch/internal/retry"
)

// Fetcher retrieves the current provider-wide availability snapshot.
type Fetcher interface {
	InstanceTypes(ctx context.Context) (lambdalabs.Snapshot, error)
}

// Notifier delivers a formatted alert message to an external channel.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

// Recorder persists availability transitions for later inspection.
// Recording failures never affect a cycle's outcome.
type Recorder interface {
	RecordAppeared(key Key, info Info) error
	RecordDisappeared(key Key) error
}

// Options configures a Watcher. Fetcher and Spec are required; a nil
// Notifier disables webhook delivery and a nil Recorder disables history.
type Options struct {
	Spec     Spec
	Interval time.Duration
	Once     bool
	Notifier Notifier
	Recorder Recorder
	Retry    retry.Config
	Logger   *zap.Logger
}

// Watcher drives the poll cycle: fetch, filter, diff, format, notify,
// commit. It is the sole owner of the watched set; cycles never overlap,
// so no locking is needed.
type Watcher struct {
	fetcher  Fetcher
	spec     Spec
	interval time.Duration
	once     bool
	notifier Notifier
	recorder Recorder
	retryCfg retry.Config
	log      *zap.Logger

	// watched holds the (instance type, region) keys currently believed
	// available and already alerted. It is committed only after a cycle
	// completes, so a mid-cycle failure leaves it at its last good value.
	watched Set
}

// New creates a Watcher with an empty watched set.
func New(fetcher Fetcher, opts Options) *Watcher {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &Watcher{
		fetcher:  fetcher,
		spec:     opts.Spec,
		interval: interval,
		once:     opts.Once,
		notifier: opts.Notifier,
		recorder: opts.Recorder,
		retryCfg: opts.Retry,
		log:      log,
		watched:  make(Set),
	}
}

// Watched returns a copy of the currently watched set.
func (w *Watcher) Watched() Set {
	copied := make(Set, len(w.watched))
	for k := range w.watched {
		copied.Add(k)
	}
	return copied
}

// Run polls until the context ends or, in once mode, after a single
// cycle. A fetch failure on the very first cycle is returned as an error
// so a bad credential or endpoint surfaces immediately; later fetch
// failures skip the remainder of that cycle and polling continues with
// the watched set untouched. Context cancellation is a clean shutdown and
// returns nil.
func (w *Watcher) Run(ctx context.Context) error {
	for cycle := 1; ; cycle++ {
		err := w.runCycle(ctx, cycle)
		if err != nil {
			if ctx.Err() != nil {
				w.log.Info("interrupted, exiting")
				return nil
			}
			if cycle == 1 {
				return err
			}
			w.log.Error("cycle failed, keeping previous state",
				zap.Int("cycle", cycle), zap.Error(err))
		}

		if w.once {
			return nil
		}

		select {
		case <-ctx.Done():
			w.log.Info("interrupted, exiting")
			return nil
		case <-time.After(w.interval):
		}
	}
}

func (w *Watcher) runCycle(ctx context.Context, cycle int) error {
	snapshot, err := w.fetch(ctx)
	if err != nil {
		w.logFetchError(err)
		return fmt.Errorf("fetch snapshot: %w", err)
	}

	qualifying, info := Filter(snapshot, w.spec)
	delta := Diff(w.watched, qualifying)

	if len(delta.Appeared) > 0 {
		for _, line := range AppearedLines(delta.Appeared, info) {
			w.log.Info(line)
		}
		w.notify(ctx, JoinAlerts(AppearedAlerts(delta.Appeared, info)))
	}

	if len(delta.Disappeared) > 0 {
		for _, line := range DisappearedLines(delta.Disappeared) {
			w.log.Info(line)
		}
		w.notify(ctx, JoinAlerts(DisappearedAlerts(delta.Disappeared)))
	}

	w.record(delta, info)

	if len(delta.Appeared) == 0 && len(delta.Disappeared) == 0 {
		w.log.Info("no change in matching instances",
			zap.Int("watched", len(delta.Next)),
			zap.Duration("next_poll", w.interval))
	}

	w.watched = delta.Next
	return nil
}

// fetch performs the snapshot request with bounded retries for transient
// failures. Authorization failures are never retried.
func (w *Watcher) fetch(ctx context.Context) (lambdalabs.Snapshot, error) {
	var snapshot lambdalabs.Snapshot
	w.log.Info("fetching instance types")
	err := retry.Do(ctx, w.retryCfg, retryableFetch, func() error {
		var err error
		snapshot, err = w.fetcher.InstanceTypes(ctx)
		return err
	})
	return snapshot, err
}

// retryableFetch treats transport timeouts, throttling, and server-side
// errors as retryable; everything else (notably 401/403) fails fast.
func retryableFetch(err error) bool {
	if errors.Is(err, lambdalabs.ErrUnauthorized) {
		return false
	}
	if errors.Is(err, lambdalabs.ErrRateLimited) {
		return true
	}
	var apiErr *lambdalabs.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return retry.IsTransient(err)
}

func (w *Watcher) logFetchError(err error) {
	fields := []zap.Field{zap.Error(err)}
	var apiErr *lambdalabs.APIError
	if errors.As(err, &apiErr) {
		fields = append(fields, zap.Int("status", apiErr.StatusCode))
		// The body usually explains a permission failure; keep it.
		if errors.Is(err, lambdalabs.ErrUnauthorized) && apiErr.Body != "" {
			fields = append(fields, zap.String("body", apiErr.Body))
		}
	}
	w.log.Error("failed to fetch instance types", fields...)
}

// notify delivers one webhook message, if notifications are enabled.
// Delivery failures are logged and otherwise ignored: they must never
// block state-tracking correctness.
func (w *Watcher) notify(ctx context.Context, message string) {
	if message == "" {
		return
	}
	if w.notifier == nil {
		w.log.Info("notifications disabled, skipping webhook alert")
		return
	}
	if err := w.notifier.Send(ctx, message); err != nil {
		w.log.Error("failed to deliver notification", zap.Error(err))
	}
}

func (w *Watcher) record(delta Delta, info map[string]Info) {
	if w.recorder == nil {
		return
	}
	for _, key := range sortedKeys(delta.Appeared) {
		if err := w.recorder.RecordAppeared(key, info[key.InstanceType]); err != nil {
			w.log.Warn("failed to record transition", zap.Error(err))
		}
	}
	for _, key := range sortedKeys(delta.Disappeared) {
		if err := w.recorder.RecordDisappeared(key); err != nil {
			w.log.Warn("failed to record transition", zap.Error(err))
		}
	}
}
