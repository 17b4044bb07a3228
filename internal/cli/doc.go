// Package cli turns the rpgbaker command line, plus an optional TOML file of
// defaults, into an app.Config. Usage problems surface as *ExitError values
// carrying the process exit code.
package cli
