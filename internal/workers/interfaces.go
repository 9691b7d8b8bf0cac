// Package workers runs the gateway's background workers.
//
// A Worker is anything with a blocking Run method; the Workers aggregate
// runs a set of them behind a single call.
package workers

// Worker is a background job. Run blocks for the lifetime of the worker.
type Worker interface {
	Run()
}
