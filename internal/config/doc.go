// Package config defines the format-agnostic interfaces for loading recipes
// from disk and writing them back, and a Dispatcher that picks the format
// for each file by its extension.
//
// Concrete formats, such as HCL and the JSON wire format, live in separate
// packages and are registered with a Dispatcher by the application.
package config
