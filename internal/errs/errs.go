// Package errs defines the error shapes the service returns to clients.
//
// Handlers return *HTTPError values; the global error handler serializes
// them so every failure reaches the client with the same JSON layout.
package errs
