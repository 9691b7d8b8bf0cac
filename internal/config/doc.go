// Package config loads, merges, and validates the gateway's configuration.
//
// Values are assembled from several sources, later ones overriding earlier
// non-zero fields:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// [GetStructuredConfig] is the entry point.
package config
