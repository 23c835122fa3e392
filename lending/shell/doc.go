// Package shell contains the imperative adapters around the pure domain
// core: mapping between domain events and journal entries, event metadata,
// retry logic for concurrency conflicts, and the interfaces the command and
// query handlers depend on.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would
// be called the 'application' or 'adapter' layer.
package shell
