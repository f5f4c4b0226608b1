// Package tracking implements the client-side poll loop behind the order
// tracking screen. A Watcher polls the order's status on an interval, diffs
// the observed stage against the previous one, and pushes exactly one
// notification per stage entry to a sink.
package tracking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"
)

// DefaultInterval is the base poll interval.
const DefaultInterval = 10 * time.Second

// maxBackoffMultiplier caps the failure backoff at 8x the base interval.
const maxBackoffMultiplier = 8

// Watcher polls one order until it reaches a terminal state, disappears, or
// the context is cancelled.
//
// Behavior under the loop:
//   - the first observation always fires a stage notification
//   - equal consecutive observations never re-fire
//   - a nil driver in a snapshot never erases a previously seen driver
//   - a failed fetch is silent: no notification, previousStage untouched,
//     retried next tick with the interval doubled up to 8x the base; one
//     success resets the interval
type Watcher struct {
	fetcher  StatusFetcher
	sink     NotificationSink
	interval time.Duration
	logger   *slog.Logger
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithInterval overrides the base poll interval.
func WithInterval(interval time.Duration) WatcherOption {
	return func(w *Watcher) {
		if interval > 0 {
			w.interval = interval
		}
	}
}

// WithLogger overrides the watcher's logger.
func WithLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher creates a watcher over the given fetcher and sink.
func NewWatcher(fetcher StatusFetcher, sink NotificationSink, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		fetcher:  fetcher,
		sink:     sink,
		interval: DefaultInterval,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch polls the order until it stops. The first fetch happens immediately,
// subsequent ones on the interval. Returns nil when the order reached a
// terminal state, the order's not-found error when it disappeared, and the
// context error on cancellation.
func (w *Watcher) Watch(ctx context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	var (
		previousStage order.Stage
		seen          bool
		lastDriver    *DriverInfo
		failures      int
	)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		snapshot, err := w.fetcher.Fetch(ctx, orderID)
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				return err
			}

			failures++
			timer.Reset(backoffInterval(w.interval, failures))
			continue
		}
		failures = 0

		if snapshot.Driver != nil {
			lastDriver = snapshot.Driver
		}

		stage, err := order.StageForStatus(snapshot.Status)
		if err != nil {
			return err
		}

		if !seen || stage != previousStage {
			seen = true
			previousStage = stage

			change := StageChange{
				OrderID:             orderID,
				Stage:               stage,
				Cue:                 CueForStage(stage),
				Driver:              lastDriver,
				EstimatedDeliveryAt: snapshot.EstimatedDeliveryAt,
				ObservedAt:          time.Now().UTC(),
			}
			if sinkErr := w.sink.Notify(ctx, change); sinkErr != nil {
				w.logger.WarnContext(ctx, "failed to deliver stage notification",
					slog.String("order_id", orderID.String()),
					slog.String("stage", string(stage)),
					slog.Any("error", sinkErr),
				)
			}
		}

		if snapshot.Status.IsTerminal() {
			return nil
		}

		timer.Reset(w.interval)
	}
}

// backoffInterval grows the poll interval exponentially with consecutive
// failures, capped at maxBackoffMultiplier times the base.
func backoffInterval(base time.Duration, failures int) time.Duration {
	multiplier := 1
	for i := 1; i < failures && multiplier < maxBackoffMultiplier; i++ {
		multiplier *= 2
	}
	if multiplier > maxBackoffMultiplier {
		multiplier = maxBackoffMultiplier
	}
	return base * time.Duration(multiplier)
}
