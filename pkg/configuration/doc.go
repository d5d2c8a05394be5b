// Package configuration provides loading facilities for bmsync's TOML
// configuration file: general settings, named storages, and the pairs that
// bind them together.
package configuration
