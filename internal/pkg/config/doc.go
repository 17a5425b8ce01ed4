// Package config provides loading and validation of the settings used by the
// key trust layer and its command-line front-end.
//
// Settings are read from a YAML document, filled with defaults for anything
// left out, and validated before any component is built from them.
package config
