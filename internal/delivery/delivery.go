// Package delivery defines the contract every transport front end satisfies.
package delivery

import "context"

// Delivery is a long-running transport server. Implementations block inside
// Serve until the context ends or the listener fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
