// Package app wires the block registry, the script formats and the game host
// together and drives one invocation: list kinds, convert, check or run.
package app
