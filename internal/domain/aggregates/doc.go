// Package aggregates defines domain-facing aggregate contracts for the
// marketplace write paths: cart mutation, checkout, order status and
// report status.
//
// Contracts avoid persistence/transport details and mark the semantic write
// boundaries where invariants must hold atomically.
package aggregates
