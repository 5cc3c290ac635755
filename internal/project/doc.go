// Package project discovers the project templates available under a
// templates root. Every visible subdirectory of the root is a project; there
// is no manifest.
package project
