// Package server holds the HTTP server configuration.
//
// While the devserver feature owns the listener lifecycle, this package
// defines the configuration structure and the small helpers that turn raw
// input into usable settings: parsing the positional port argument and
// resolving the absolute serving root.
//
// # Serving Root
//
// The serving root is computed once and passed explicitly to everything that
// reads files. The process working directory is never changed.
package server
