// Package logging configures the process-wide zerolog logger. Commands call
// Setup once after flag parsing; library packages obtain component-scoped
// loggers through GetLogger and never configure output themselves.
package logging
