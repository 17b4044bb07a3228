// Package value defines the runtime values produced by evaluating blocks and
// the base types used to check slots while a script is being reified.
//
// A Value is immutable and comparable, so it can be copied freely between
// slots, descriptors, and evaluation results.
package value
