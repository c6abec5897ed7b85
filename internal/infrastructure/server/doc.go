// Package server assembles the incgamma HTTP server: configuration, logging,
// metrics, the service registry with the math provider, middleware and
// routes.
//
// Responses are gzip-compressed when the client accepts it. Shutdown drains
// in-flight requests before returning.
package server
