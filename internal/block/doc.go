// Package block turns descriptors into executable blocks and evaluates them.
//
// A Kind is the fixed definition a block is stamped from: its fields, the
// base type each field expects, and its evaluation rule. Kinds are collected
// in a Registry, usually by Modules. Registry.Reify compiles a
// descriptor.Instance tree into an owned tree of Blocks, validating every
// field on the way, and Evaluate walks that tree to produce a value.Value.
//
// Reification never returns a partially built block. When a nested block
// fails, the error is wrapped in a ChildError for every level between the
// root and the failure, so Path can recover the exact slot at fault.
package block
