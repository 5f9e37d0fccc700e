package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/growthgenius/engagebot/internal/model"
)

type interactionStore struct {
	pool *pgxpool.Pool
}

// NewInteractionStore returns an InteractionStore backed by Postgres.
func NewInteractionStore(pool *pgxpool.Pool) InteractionStore {
	return &interactionStore{pool: pool}
}

func (s *interactionStore) Create(ctx context.Context, interaction *model.Interaction) error {
	const q = `
		INSERT INTO interactions (id, user_id, channel_kind, message_text, response_text)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := s.pool.QueryRow(ctx, q,
		interaction.ID,
		interaction.UserID,
		string(interaction.ChannelKind),
		interaction.MessageText,
		interaction.ResponseText,
	).Scan(&interaction.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting interaction: %w", err)
	}
	return nil
}

func (s *interactionStore) ListRecent(ctx context.Context, userID string, limit int32) ([]model.Interaction, error) {
	const q = `
		SELECT id, user_id, channel_kind, message_text, response_text, created_at
		FROM interactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := s.pool.Query(ctx, q, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying interactions: %w", err)
	}
	defer rows.Close()

	result := make([]model.Interaction, 0, limit)
	for rows.Next() {
		var it model.Interaction
		var kind string
		if err := rows.Scan(&it.ID, &it.UserID, &kind, &it.MessageText, &it.ResponseText, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning interaction: %w", err)
		}
		it.ChannelKind = model.ChannelKind(kind)
		result = append(result, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading interactions: %w", err)
	}

	return result, nil
}
