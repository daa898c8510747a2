// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, and middleware used by the
// privacy API and the card upload endpoint. Cross-cutting concerns such as
// authentication, identifier ownership checks, request tracing, access
// logging, compression, and body integrity checks are handled in this
// package before requests are delegated to the service layer.
package http
