// Package order provides the Order aggregate and its lifecycle state machine
// for the water-delivery marketplace.
//
// The package includes:
//   - Order: the aggregate root holding the frozen item list, computed total,
//     driver reference, and lifecycle status
//   - Status: the canonical state machine (Pending -> Assigned -> OnTheWay ->
//     Delivered, Cancelled from any non-terminal state, and the backward
//     return-to-queue edge)
//   - Stage: the customer-facing presentation vocabulary, kept as one total
//     bidirectional mapping over Status rather than a second enum
//   - Item and DriverRef value objects
//
// Key business rules:
//   - Items and the total are frozen when the order is created; catalog price
//     changes never retroactively alter an existing order
//   - Delivered and Cancelled are terminal: every mutation fails afterwards
//   - Cancelling requires a reason; return-to-queue clears the driver
//   - Illegal transitions are rejected with a conflict error, including
//     re-applying a transition that already happened
package order
