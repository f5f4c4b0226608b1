package tracking

import "waterdelivery/internal/core/domain/model/order"

// defaultCue is used for any stage without a dedicated line, so an added
// stage degrades to a generic notification instead of a blank one.
const defaultCue = "Your order status was updated."

// cueByStage maps each stage to the notification line shown on entry.
// OnTheWay carries the one distinct line customers actually wait for.
func cueByStage() map[order.Stage]string {
	return map[order.Stage]string{
		order.StageAwaitingDispatch: "Your order is waiting for a driver.",
		order.StageDriverAssigned:   "A driver has been assigned to your order.",
		order.StageOnTheWay:         "Your water is on the way!",
		order.StageDelivered:        "Your order has been delivered. Thank you!",
		order.StageCancelled:        "Your order was cancelled.",
	}
}

// CueForStage returns the notification line for a stage entry.
func CueForStage(stage order.Stage) string {
	if cue, ok := cueByStage()[stage]; ok {
		return cue
	}
	return defaultCue
}
