// Package eventlog defines the storage-agnostic building blocks of the
// lending journal: the Entry DTO that engines persist and query back, the
// Filter that selects the dynamic event stream an operation works on, and the
// small dependency-free observability interfaces that engines accept.
//
// Concurrency control is optimistic: an Append is conditional on the maximum
// sequence number of the filtered stream as seen by the preceding Query.
// When a concurrent writer got there first, the engine reports
// ErrConcurrencyConflict and the caller re-reads and re-decides.
package eventlog
