// Package platform papers over filesystem differences between operating
// systems. Today that is only permission handling: Windows has no Unix mode
// bits, so chmod becomes a no-op there.
package platform
