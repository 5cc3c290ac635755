// Package resolve turns the set of variable names found in a template into a
// resolution table. Each name is looked up in order: explicit command-line
// value, environment variable of the same name, defaults file, and finally
// an interactive prompt when one is configured. Names left unresolved are
// reported together in a single MissingError before any file is written.
package resolve
