package dedup

import (
	"context"
	"sync"
)

type memoryGuard struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewMemoryGuard returns a process-local Guard. The seen set grows
// monotonically for the process lifetime; deployments that need eviction or
// cross-replica coordination use the Redis guard instead.
func NewMemoryGuard() Guard {
	return &memoryGuard{seen: make(map[string]struct{})}
}

func (g *memoryGuard) ShouldProcess(_ context.Context, commentID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.seen[commentID]; ok {
		return false
	}
	g.seen[commentID] = struct{}{}
	return true
}
