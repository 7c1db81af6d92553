// Package order provides the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: aggregate root owning status, token spend, token award and completion
//   - Status: the lifecycle state machine
//   - LineItem: immutable child records fixed at creation time
//
// Key business rules:
//   - An order has a positive amount, at least one line item and a non-negative token spend
//   - Status follows pending -> confirmed -> preparing -> ready -> fulfilled,
//     with cancelled reachable from every non-terminal state
//   - fulfilled and cancelled are terminal
//   - tokensAwarded is written once, by Complete; completed implies fulfilled and completedAt
//
// Token spend and award are recorded on the order only. Debiting and crediting
// the owning account is the job of the application commands, which run both
// inside one unit of work.
package order
