// Package core contains the domain events, projections, and decision rules
// for library circulation: membership, copies, loans, reservations, and
// fines.
//
// Events represent meaningful business occurrences like LoanOpened and
// ReservationFulfilled rather than generic create/update operations. All
// domain events implement the DomainEvent interface with EventType() and
// HasOccurredAt() methods.
//
// Everything in this package is pure: projections fold event history into
// state, and decision functions turn state plus a command into a
// DecisionResult. Side effects live in the shell and feature packages.
package core
