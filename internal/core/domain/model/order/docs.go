// Package order provides the Order aggregate of the restaurant point of sale and the
// state machine that governs its lifecycle.
//
// The package includes:
//   - Order: The aggregate root holding seating, line items, totals and the promo snapshot
//   - Status: A state machine that enforces valid order status transitions
//   - Table: The normalized seating designator (dine-in table 1..10 or take-away)
//   - LineItem: A product entry with optional size, spice level and extras
//   - Snapshot: The flat record used on the wire and by the durable stores
//
// Key business rules:
//   - Orders start as Pending and follow Pending -> Preparing -> Ready -> Delivered -> Paid
//   - Any non-terminal order can be Cancelled; Paid and Cancelled are terminal
//   - Moving to the current status is an idempotent no-op
//   - Items, table, totals and promo fields never change after creation
//   - paidAt and cancelledAt are stamped exactly once by their transitions
package order
