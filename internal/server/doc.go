// Package server runs the gateway's transport servers.
//
// It owns the HTTP and gRPC listener lifecycles: startup, OS signal
// handling, and graceful shutdown of every enabled transport.
package server
