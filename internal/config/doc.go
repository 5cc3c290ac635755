// Package config manages user-level settings stored at ~/.skel/config.yaml.
// Settings can be overridden with SKEL_-prefixed environment variables, and
// the file is checked against an embedded JSON Schema before it is written.
package config
