// Package identity resolves the account ID that represents "self" at runtime.
//
// Operators rarely configure the business account ID correctly (or at all), so
// the resolver bootstraps it from echo messages: an echo is a copy of a message
// the account itself sent, and its sender field therefore carries the
// account's own ID.
package identity

import (
	"context"
	"log/slog"
	"sync"
)

// PersistFunc durably records the resolved self-ID so the next process start
// can reuse it without re-discovery.
type PersistFunc func(id string) error

// Resolver is a one-shot latch around the self-ID. Once verified, the ID is
// immutable for the process lifetime, even if the platform later reissues a
// different one.
type Resolver struct {
	mu       sync.Mutex
	selfID   string
	verified bool
	persist  PersistFunc
}

// NewResolver starts from the configured ID (possibly empty) in unverified
// state. persist must not be nil.
func NewResolver(configuredID string, persist PersistFunc) *Resolver {
	return &Resolver{
		selfID:  configuredID,
		persist: persist,
	}
}

// Resolve verifies the self-ID against echo evidence. The whole
// check-then-persist section runs under the lock so concurrent webhook
// deliveries cannot both pass the unverified check and record different IDs.
//
// If the durable write fails the resolver stays unverified; the discovered ID
// would otherwise be lost on restart. The next echo event retries.
func (r *Resolver) Resolve(ctx context.Context, candidateID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.verified {
		return
	}

	if candidateID != r.selfID {
		slog.InfoContext(ctx, "updating business id from echo evidence",
			"previous_id", r.selfID,
			"candidate_id", candidateID,
		)
		if err := r.persist(candidateID); err != nil {
			slog.ErrorContext(ctx, "failed to persist business id, staying unverified", "error", err)
			return
		}
		r.selfID = candidateID
	}

	r.verified = true
}

// IsVerified reports whether the latch has flipped.
func (r *Resolver) IsVerified() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.verified
}

// CurrentID returns the self-ID as currently known, verified or not.
func (r *Resolver) CurrentID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selfID
}
