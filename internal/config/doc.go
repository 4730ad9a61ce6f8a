// Package config loads and validates the costsync agent configuration.
//
// Values are merged from environment variables, command-line flags, an
// optional JSON file, and built-in defaults; earlier sources win. See
// [GetStructuredConfig] for the exact priority order.
package config
