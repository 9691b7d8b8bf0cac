// Package http is the REST transport of the authorization gateway.
//
// It wires the chi router, the request/governance/token handlers, and the
// middleware chain (authentication, trace ids, access logging, response
// compression) in front of the service layer.
package http
