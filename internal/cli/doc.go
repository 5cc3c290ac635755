// Package cli defines the Cobra command tree for the skel CLI. The root
// command installs a project template; the other files each register one
// subcommand (list, vars, config, version). Commands delegate to internal
// packages for the work and only handle argument parsing and output.
package cli
