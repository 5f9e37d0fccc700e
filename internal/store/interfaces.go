package store

import (
	"context"
	"errors"

	"github.com/growthgenius/engagebot/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// InteractionStore defines the contract for interaction history access.
// Writes for different users may proceed concurrently; per-user ordering is
// only required to hold at read time.
type InteractionStore interface {
	Create(ctx context.Context, interaction *model.Interaction) error
	// ListRecent returns at most limit interactions for the user, newest first.
	ListRecent(ctx context.Context, userID string, limit int32) ([]model.Interaction, error)
}
