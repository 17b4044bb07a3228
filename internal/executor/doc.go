// Package executor runs recipes: it takes a snapshot of the recipe's
// top-level scope and reifies then evaluates each statement in order, on the
// calling goroutine.
package executor
