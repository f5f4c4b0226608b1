package tracking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/tracking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedFetcher replays a fixed sequence of observations, then keeps
// returning the last one.
type scriptedFetcher struct {
	mu      sync.Mutex
	script  []fetchResult
	cursor  int
	fetches int
}

type fetchResult struct {
	snapshot tracking.Snapshot
	err      error
}

func (f *scriptedFetcher) Fetch(_ context.Context, _ kernel.UUID) (tracking.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fetches++
	result := f.script[f.cursor]
	if f.cursor < len(f.script)-1 {
		f.cursor++
	}
	return result.snapshot, result.err
}

type recordingSink struct {
	mu      sync.Mutex
	changes []tracking.StageChange
	err     error
}

func (s *recordingSink) Notify(_ context.Context, change tracking.StageChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.changes = append(s.changes, change)
	return s.err
}

func (s *recordingSink) recorded() []tracking.StageChange {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]tracking.StageChange, len(s.changes))
	copy(out, s.changes)
	return out
}

func ok(status order.Status) fetchResult {
	return fetchResult{snapshot: tracking.Snapshot{Status: status}}
}

func okWithDriver(status order.Status, driver *tracking.DriverInfo) fetchResult {
	return fetchResult{snapshot: tracking.Snapshot{Status: status, Driver: driver}}
}

func failed() fetchResult {
	return fetchResult{err: errs.NewValueIsInvalidError("transport")}
}

func watch(t *testing.T, fetcher tracking.StatusFetcher, sink tracking.NotificationSink) error {
	t.Helper()

	w := tracking.NewWatcher(fetcher, sink, tracking.WithInterval(time.Millisecond))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return w.Watch(ctx, kernel.NewUUID())
}

func TestWatcher_Watch(t *testing.T) {
	t.Run("should emit one notification per stage entry", func(t *testing.T) {
		fetcher := &scriptedFetcher{script: []fetchResult{
			ok(order.Pending),
			ok(order.Pending),
			ok(order.Assigned),
			ok(order.OnTheWay),
			ok(order.OnTheWay),
			ok(order.Delivered),
		}}
		sink := &recordingSink{}

		require.NoError(t, watch(t, fetcher, sink))

		changes := sink.recorded()
		require.Len(t, changes, 4)
		assert.Equal(t, order.StageAwaitingDispatch, changes[0].Stage)
		assert.Equal(t, order.StageDriverAssigned, changes[1].Stage)
		assert.Equal(t, order.StageOnTheWay, changes[2].Stage)
		assert.Equal(t, order.StageDelivered, changes[3].Stage)
	})

	t.Run("should fire on the first observation", func(t *testing.T) {
		fetcher := &scriptedFetcher{script: []fetchResult{ok(order.Delivered)}}
		sink := &recordingSink{}

		require.NoError(t, watch(t, fetcher, sink))

		changes := sink.recorded()
		require.Len(t, changes, 1)
		assert.Equal(t, order.StageDelivered, changes[0].Stage)
		assert.Equal(t, "Your order has been delivered. Thank you!", changes[0].Cue)
	})

	t.Run("should carry the on-the-way cue", func(t *testing.T) {
		fetcher := &scriptedFetcher{script: []fetchResult{
			ok(order.OnTheWay),
			ok(order.Delivered),
		}}
		sink := &recordingSink{}

		require.NoError(t, watch(t, fetcher, sink))

		changes := sink.recorded()
		require.Len(t, changes, 2)
		assert.Equal(t, "Your water is on the way!", changes[0].Cue)
	})

	t.Run("should stop on terminal status", func(t *testing.T) {
		fetcher := &scriptedFetcher{script: []fetchResult{ok(order.Cancelled)}}
		sink := &recordingSink{}

		require.NoError(t, watch(t, fetcher, sink))

		assert.Equal(t, 1, fetcher.fetches)
	})

	t.Run("should stop with error when the order is gone", func(t *testing.T) {
		fetcher := &scriptedFetcher{script: []fetchResult{
			ok(order.Pending),
			{err: errs.NewObjectNotFoundError("order", "x")},
		}}
		sink := &recordingSink{}

		err := watch(t, fetcher, sink)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Len(t, sink.recorded(), 1)
	})

	t.Run("should retry silently through failed fetches", func(t *testing.T) {
		fetcher := &scriptedFetcher{script: []fetchResult{
			ok(order.OnTheWay),
			failed(),
			failed(),
			ok(order.OnTheWay),
			ok(order.Delivered),
		}}
		sink := &recordingSink{}

		require.NoError(t, watch(t, fetcher, sink))

		// failures and the repeated OnTheWay observation add nothing
		changes := sink.recorded()
		require.Len(t, changes, 2)
		assert.Equal(t, order.StageOnTheWay, changes[0].Stage)
		assert.Equal(t, order.StageDelivered, changes[1].Stage)
	})

	t.Run("should keep the last known driver through a nil fetch", func(t *testing.T) {
		driver := &tracking.DriverInfo{ID: kernel.NewUUID(), Name: "Bekzod"}
		fetcher := &scriptedFetcher{script: []fetchResult{
			okWithDriver(order.Assigned, driver),
			ok(order.OnTheWay), // driver missing from this snapshot
			ok(order.Delivered),
		}}
		sink := &recordingSink{}

		require.NoError(t, watch(t, fetcher, sink))

		changes := sink.recorded()
		require.Len(t, changes, 3)
		require.NotNil(t, changes[1].Driver)
		assert.Equal(t, "Bekzod", changes[1].Driver.Name)
		require.NotNil(t, changes[2].Driver)
	})

	t.Run("should keep polling when the sink fails", func(t *testing.T) {
		fetcher := &scriptedFetcher{script: []fetchResult{
			ok(order.Pending),
			ok(order.Delivered),
		}}
		sink := &recordingSink{err: errs.NewValueIsInvalidError("sink")}

		require.NoError(t, watch(t, fetcher, sink))

		assert.Len(t, sink.recorded(), 2)
	})

	t.Run("should stop on context cancellation", func(t *testing.T) {
		fetcher := &scriptedFetcher{script: []fetchResult{ok(order.Pending)}}
		sink := &recordingSink{}

		w := tracking.NewWatcher(fetcher, sink, tracking.WithInterval(time.Millisecond))
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := w.Watch(ctx, kernel.NewUUID())

		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("should reject a zero order ID", func(t *testing.T) {
		fetcher := &scriptedFetcher{script: []fetchResult{ok(order.Pending)}}
		sink := &recordingSink{}

		w := tracking.NewWatcher(fetcher, sink)
		err := w.Watch(context.Background(), kernel.UUID{})

		require.Error(t, err)
	})
}

func TestCueForStage(t *testing.T) {
	t.Run("should have a cue for every stage", func(t *testing.T) {
		for _, stage := range []order.Stage{
			order.StageAwaitingDispatch,
			order.StageDriverAssigned,
			order.StageOnTheWay,
			order.StageDelivered,
			order.StageCancelled,
		} {
			assert.NotEmpty(t, tracking.CueForStage(stage))
		}
	})

	t.Run("should fall back to the default cue", func(t *testing.T) {
		assert.Equal(t, "Your order status was updated.", tracking.CueForStage(order.Stage("SOMETHING_NEW")))
	})
}
