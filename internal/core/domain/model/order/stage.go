package order

import (
	"fmt"

	"waterdelivery/internal/pkg/errs"
)

// Stage is the customer-facing vocabulary for an order's lifecycle position.
// The operator console and the customer app historically used two parallel
// status sets; Stage exists only at the presentation boundary, as a total,
// bidirectional mapping over the single canonical Status enum.
type Stage string

const (
	StageAwaitingDispatch Stage = "awaiting_dispatch"
	StageDriverAssigned   Stage = "driver_assigned"
	StageOnTheWay         Stage = "on_the_way"
	StageDelivered        Stage = "delivered"
	StageCancelled        Stage = "cancelled"
)

// stageByStatus is the forward half of the mapping. Every valid Status has
// exactly one Stage; stageMappingIsTotal in the tests enforces totality so the
// two vocabularies cannot drift apart again.
func stageByStatus() map[Status]Stage {
	//nolint:exhaustive // Unknown has no presentation stage
	return map[Status]Stage{
		Pending:   StageAwaitingDispatch,
		Assigned:  StageDriverAssigned,
		OnTheWay:  StageOnTheWay,
		Delivered: StageDelivered,
		Cancelled: StageCancelled,
	}
}

// StageForStatus maps a canonical status to its customer-facing stage.
func StageForStatus(s Status) (Stage, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}

	stage, ok := stageByStatus()[s]
	if !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s has no presentation stage", s))
	}
	return stage, nil
}

// StatusForStage maps a customer-facing stage back to its canonical status.
func StatusForStage(stage Stage) (Status, error) {
	for status, st := range stageByStatus() {
		if st == stage {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("stage is invalid",
		fmt.Errorf("%q is not a known stage", stage))
}
