package order

import (
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

// ErrDriverRefIsNotConstructed is returned when validating a zero-value DriverRef.
var ErrDriverRefIsNotConstructed = errs.NewValueIsRequiredError(
	"DriverRef must be created via NewDriverRef constructor")

// DriverRef is a weak reference to the driver assigned to an order. The order
// does not own the driver lifecycle; it records just enough for display and
// lookup. Which driver gets picked is an external dispatch decision the core
// merely records.
type DriverRef struct { //nolint:recvcheck //using for validation
	id    kernel.UUID
	name  string
	guard guard.ConstructorGuard
}

// NewDriverRef creates a driver reference with a valid id and non-empty name.
func NewDriverRef(id kernel.UUID, name string) (DriverRef, error) {
	if err := id.Validate(); err != nil {
		return DriverRef{}, err
	}
	if name == "" {
		return DriverRef{}, errs.NewValueIsRequiredError("driver name")
	}

	return DriverRef{
		id:    id,
		name:  name,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// ID returns the driver's identifier.
func (d DriverRef) ID() kernel.UUID {
	return d.id
}

// Name returns the driver's display name.
func (d DriverRef) Name() string {
	return d.name
}

// IsEqual compares driver references by identifier.
func (d DriverRef) IsEqual(other DriverRef) bool {
	return d.id.IsEqual(other.id)
}

// Validate ensures the reference was created via NewDriverRef.
func (d DriverRef) Validate() error {
	return d.guard.Validate(ErrDriverRefIsNotConstructed)
}
