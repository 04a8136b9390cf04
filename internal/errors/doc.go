// Package errors defines sentinel errors shared across keyfold packages.
//
// Callers match against these with errors.Is after unwrapping, so every
// workflow wraps them with fmt.Errorf("...: %w", err) rather than returning
// them bare. The groups mirror how commands report failures: state problems
// suggest running share or sync first, conflicts require manual cleanup, and
// provider failures surface the underlying tool's one-line diagnostic.
package errors
