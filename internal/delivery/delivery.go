// Package delivery defines the contract every transport entrypoint satisfies.
package delivery

import "context"

// Delivery is a serving entrypoint, such as the HTTP server.
type Delivery interface {
	// Serve blocks until the entrypoint stops or the context is canceled.
	Serve(ctx context.Context) error
}
