package commands

import (
	"fmt"

	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

// Role identifies which kind of party is issuing a mutation.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleOperator Role = "operator"
	RoleDriver   Role = "driver"
)

// ErrActorIsNotConstructed is returned when an Actor was not created via NewActor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError(
	"Actor must be created via NewActor constructor")

// Actor is the authenticated party behind a mutation: a firm operator, the
// ordering customer, or the assigned driver. Authentication itself happens
// at the boundary; the core only checks that the actor may touch the
// targeted order.
type Actor struct {
	role Role
	// id is the firm id for operators, the client id for customers,
	// and the driver id for drivers.
	id kernel.UUID

	guard guard.ConstructorGuard
}

// NewActor creates an actor of the given role identified by id.
func NewActor(role Role, id kernel.UUID) (Actor, error) {
	switch role {
	case RoleCustomer, RoleOperator, RoleDriver:
	default:
		return Actor{}, errs.NewValueIsInvalidErrorWithCause("actor role",
			fmt.Errorf("%q is not a known role", role))
	}
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{
		role:  role,
		id:    id,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// ID returns the identity the role is scoped to.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Validate ensures the actor was created via NewActor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// authorize checks that the actor's role is among the allowed ones and that
// the actor owns or operates the targeted order. Returns AuthorizationError
// otherwise; the check runs after the load and before any transition.
func (a Actor) authorize(o *order.Order, allowed ...Role) error {
	permitted := false
	for _, r := range allowed {
		if a.role == r {
			permitted = true
			break
		}
	}
	if !permitted {
		return errs.NewAuthorizationErrorWithCause("actor role",
			fmt.Errorf("%s may not perform this operation", a.role))
	}

	switch a.role {
	case RoleOperator:
		if !a.id.IsEqual(o.FirmID()) {
			return errs.NewAuthorizationError("firm")
		}
	case RoleCustomer:
		if !a.id.IsEqual(o.ClientID()) {
			return errs.NewAuthorizationError("client")
		}
	case RoleDriver:
		if o.Driver() == nil || !a.id.IsEqual(o.Driver().ID()) {
			return errs.NewAuthorizationError("driver")
		}
	}

	return nil
}
