// Package handler is the HTTP layer: it binds and validates requests,
// calls the service layer and renders the page or JSON response.
package handler
