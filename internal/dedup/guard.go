// Package dedup guards comment processing against webhook redelivery.
// Platforms redeliver and parallel-deliver events; without the guard the same
// comment would receive multiple public replies.
package dedup

import "context"

// Guard tracks which comment IDs have already been handled.
type Guard interface {
	// ShouldProcess atomically records commentID as seen and reports whether
	// the caller holds the processing slot. The slot is reserved before any
	// reply is attempted, biasing toward at-most-once: a failed reply is not
	// retried, a duplicate delivery is never replied to twice.
	ShouldProcess(ctx context.Context, commentID string) bool
}
