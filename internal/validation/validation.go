// Package validation binds request payloads and turns validator errors
// into field errors the client can act on.
//
// It also hosts small format checks shared by several packages.
package validation
