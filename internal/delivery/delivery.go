// Package delivery defines the contract every serving surface implements.
package delivery

import "context"

// Delivery is a long-running serving component (HTTP server, scheduler).
// Serve blocks until the component stops or fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
