package server

// Server is the lifecycle contract shared by the transports this package
// manages.
//
// RunServer blocks until shutdown is requested; Shutdown releases the
// listener and any associated resources.
type Server interface {
	RunServer()
	Shutdown()
}
