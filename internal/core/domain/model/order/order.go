package order

import (
	"errors"
	"time"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root for one delivery request from a customer to a
// firm. It is the single authoritative holder of the order's lifecycle status.
//
// Invariants:
//   - items and total are frozen at creation and never recomputed
//   - total equals the sum of the items' subtotals at creation time
//   - status only moves along the legal edge set; Delivered and Cancelled
//     are terminal and freeze every field
//   - at most one driver reference at a time
//   - cancelReason is set exactly when status becomes Cancelled
//
// Three independent actors (customer, firm operator, driver) mutate orders
// without a shared transaction; every mutation below re-validates against the
// aggregate's current status, so a stale caller gets a conflict instead of
// silently corrupting the record.
type Order struct {
	id          kernel.UUID
	orderNumber int64 // issued by the store at insert, per firm, display-only
	firmID      kernel.UUID
	clientID    kernel.UUID
	clientName  string

	address string // opaque display string owned by the address collaborator
	geo     kernel.GeoPoint

	items []Item
	total decimal.Decimal

	status       Status
	driver       *DriverRef
	cancelReason string

	createdAt           time.Time
	updatedAt           time.Time
	estimatedDeliveryAt time.Time

	isConstructed bool
}

// NewOrder creates a Pending order from a frozen cart snapshot. The item list
// must come from the cart collaborator already immutable; the total is
// computed here once and stored.
func NewOrder(
	id kernel.UUID,
	firmID kernel.UUID,
	clientID kernel.UUID,
	clientName string,
	address string,
	geo kernel.GeoPoint,
	items []Item,
	estimatedDeliveryAt time.Time,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:              Pending,
		createdAt:           now,
		updatedAt:           now,
		estimatedDeliveryAt: estimatedDeliveryAt,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setFirmID(firmID),
		o.setClientID(clientID),
		o.setClientName(clientName),
		o.setAddress(address, geo),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence without re-running
// creation-time rules, but still checking structural consistency (valid
// status, driver presence matching the status, reason present on Cancelled).
func RestoreOrder(
	id kernel.UUID,
	orderNumber int64,
	firmID kernel.UUID,
	clientID kernel.UUID,
	clientName string,
	address string,
	geo kernel.GeoPoint,
	items []Item,
	total decimal.Decimal,
	status Status,
	driver *DriverRef,
	cancelReason string,
	createdAt time.Time,
	updatedAt time.Time,
	estimatedDeliveryAt time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := status.ValidateCanHaveDriver(driver != nil); err != nil {
		return nil, err
	}
	if driver != nil {
		if err := driver.Validate(); err != nil {
			return nil, err
		}
	}
	if status == Cancelled && cancelReason == "" {
		return nil, errs.NewValueIsRequiredError("cancel reason")
	}

	o := &Order{
		orderNumber:         orderNumber,
		total:               total,
		status:              status,
		driver:              driver,
		cancelReason:        cancelReason,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
		estimatedDeliveryAt: estimatedDeliveryAt,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setFirmID(firmID),
		o.setClientID(clientID),
		o.setClientName(clientName),
		o.setAddress(address, geo),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's globally unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the per-firm sequential display number,
// or 0 before the store has issued one.
func (o *Order) OrderNumber() int64 {
	return o.orderNumber
}

// FirmID returns the identifier of the firm fulfilling the order.
func (o *Order) FirmID() kernel.UUID {
	return o.firmID
}

// ClientID returns the ordering customer's identifier.
func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// ClientName returns the ordering customer's display name.
func (o *Order) ClientName() string {
	return o.clientName
}

// Address returns the opaque delivery address string.
func (o *Order) Address() string {
	return o.address
}

// Geo returns the delivery coordinates.
func (o *Order) Geo() kernel.GeoPoint {
	return o.geo
}

// Items returns a copy of the frozen item list.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Total returns the order total computed at creation.
func (o *Order) Total() decimal.Decimal {
	return o.total
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Driver returns the assigned driver reference, or nil when unassigned.
func (o *Order) Driver() *DriverRef {
	return o.driver
}

// CancelReason returns the stored reason, empty unless the order is Cancelled.
func (o *Order) CancelReason() string {
	return o.cancelReason
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// EstimatedDeliveryAt returns the promised delivery time.
func (o *Order) EstimatedDeliveryAt() time.Time {
	return o.estimatedDeliveryAt
}

// AssignDriver attaches a driver and moves the order to Assigned.
//
// Allowed from Pending and from Assigned: assigning to an already-assigned
// order replaces the prior assignment atomically, no two-phase handoff.
// Any other source status is a conflict and leaves the order unchanged.
func (o *Order) AssignDriver(driver DriverRef) error {
	if err := driver.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driver = &driver
	o.touch()
	return nil
}

// Advance moves the order exactly one step forward:
// Assigned -> OnTheWay -> Delivered. Skip-ahead and terminal sources conflict.
func (o *Order) Advance(next Status) error {
	newStatus, err := o.status.Advance(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// Cancel moves any non-terminal order to Cancelled, storing the reason.
// The reason is required and is validated before the status is touched.
func (o *Order) Cancel(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("cancel reason")
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.cancelReason = reason
	o.touch()
	return nil
}

// ReturnToQueue reverts an Assigned or OnTheWay order back to Pending and
// clears the driver reference. Unconditional once the source state matches;
// no driver acknowledgment is modeled. Conflict from Pending and from
// terminal states.
func (o *Order) ReturnToQueue() error {
	newStatus, err := o.status.ReturnToQueue()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driver = nil
	o.touch()
	return nil
}

// SetOrderNumber records the per-firm sequential number issued by the store.
// It can be set exactly once.
func (o *Order) SetOrderNumber(n int64) error {
	if n <= 0 {
		return errs.NewValueIsInvalidError("order number")
	}
	if o.orderNumber != 0 {
		return errs.NewConflictError("order number is already issued")
	}
	o.orderNumber = n
	return nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setFirmID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("firm id", err)
	}
	o.firmID = id
	return nil
}

func (o *Order) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("client id", err)
	}
	o.clientID = id
	return nil
}

func (o *Order) setClientName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("client name")
	}
	o.clientName = name
	return nil
}

func (o *Order) setAddress(address string, geo kernel.GeoPoint) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	if err := geo.Validate(); err != nil {
		return err
	}
	o.address = address
	o.geo = geo
	return nil
}

// setItems freezes the item list and computes the total once. The slice is
// copied so the caller cannot mutate the lines afterwards.
func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	frozen := make([]Item, len(items))
	total := decimal.Zero
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		frozen[i] = item
		total = total.Add(item.Subtotal())
	}

	o.items = frozen
	if o.total.IsZero() {
		o.total = total
	}
	return nil
}
