// Package console implements the firm operator's order console: a cached
// order list plus the two corrective actions (cancel, return to queue)
// wrapped with the UI contract for them.
package console

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
)

// ErrActionInFlight is returned when an action is submitted while a previous
// one has not finished. The UI disables controls for the duration; this is
// the backstop for double submission.
var ErrActionInFlight = errors.New("another action is already in flight")

// RefreshError wraps a failure of the post-action list refresh, keeping it
// distinguishable from the action's own error.
type RefreshError struct {
	Cause error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("failed to refresh order list: %s", e.Cause)
}

func (e *RefreshError) Unwrap() error {
	return e.Cause
}

// OrderCanceller handles cancel commands.
type OrderCanceller interface {
	Handle(ctx context.Context, cmd commands.CancelOrderCommand) (*order.Order, error)
}

// OrderReturner handles return-to-queue commands.
type OrderReturner interface {
	Handle(ctx context.Context, cmd commands.ReturnToQueueCommand) (*order.Order, error)
}

// OrderLister handles order list queries.
type OrderLister interface {
	Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.ListOrdersQueryResponse, error)
}

// Console is one operator's session over their firm's orders. It keeps a
// cached list and guarantees that after any action, successful or not, the
// cache is refreshed from the store rather than patched locally: the store
// may have moved the order in ways the optimistic UI never saw.
//
// Not safe for use by multiple operators; each session takes its own
// Console.
type Console struct {
	firmID    kernel.UUID
	operator  commands.Actor
	canceller OrderCanceller
	returner  OrderReturner
	lister    OrderLister

	mu       sync.Mutex
	inFlight bool
	orders   []queries.ListOrdersQueryResponse
}

// NewConsole creates a console for the given firm.
func NewConsole(
	firmID kernel.UUID,
	canceller OrderCanceller,
	returner OrderReturner,
	lister OrderLister,
) (*Console, error) {
	operator, err := commands.NewActor(commands.RoleOperator, firmID)
	if err != nil {
		return nil, err
	}

	return &Console{
		firmID:    firmID,
		operator:  operator,
		canceller: canceller,
		returner:  returner,
		lister:    lister,
	}, nil
}

// Orders returns a copy of the cached order list.
func (c *Console) Orders() []queries.ListOrdersQueryResponse {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]queries.ListOrdersQueryResponse, len(c.orders))
	copy(out, c.orders)
	return out
}

// Refresh replaces the cached list with the store's current state.
func (c *Console) Refresh(ctx context.Context) error {
	query, err := queries.NewListOrdersQuery(c.firmID, order.Unknown)
	if err != nil {
		return err
	}

	orders, err := c.lister.Handle(ctx, query)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.orders = orders
	c.mu.Unlock()
	return nil
}

// CancelOrder cancels an order with the given reason. The cached list is
// re-fetched whether the cancel succeeded or not; the cancel's error is
// surfaced after the refresh, a refresh failure comes wrapped in
// RefreshError alongside it.
func (c *Console) CancelOrder(ctx context.Context, orderID kernel.UUID, reason string) error {
	release, err := c.acquire()
	if err != nil {
		return err
	}
	defer release()

	cmd, err := commands.NewCancelOrderCommand(orderID, c.operator, reason)
	if err != nil {
		return err
	}

	_, actionErr := c.canceller.Handle(ctx, cmd)
	return c.finish(ctx, actionErr)
}

// ReturnToQueue sends an order back to the dispatch queue. Same refresh
// contract as CancelOrder.
func (c *Console) ReturnToQueue(ctx context.Context, orderID kernel.UUID) error {
	release, err := c.acquire()
	if err != nil {
		return err
	}
	defer release()

	cmd, err := commands.NewReturnToQueueCommand(orderID, c.operator)
	if err != nil {
		return err
	}

	_, actionErr := c.returner.Handle(ctx, cmd)
	return c.finish(ctx, actionErr)
}

// acquire takes the in-flight slot, rejecting concurrent submissions.
func (c *Console) acquire() (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlight {
		return nil, ErrActionInFlight
	}
	c.inFlight = true

	return func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}, nil
}

// finish refreshes the cache and combines the action's outcome with the
// refresh outcome.
func (c *Console) finish(ctx context.Context, actionErr error) error {
	if refreshErr := c.Refresh(ctx); refreshErr != nil {
		return errors.Join(actionErr, &RefreshError{Cause: refreshErr})
	}
	return actionErr
}
