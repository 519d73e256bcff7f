package storage

import (
	"context"

	"resort-concierge/chat-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type PostgresRepository struct {
	DB *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) InsertMessage(ctx context.Context, m *domain.ChatMessage) error {
	err := r.DB.QueryRowxContext(ctx, `
		INSERT INTO chat_messages (id, profile_id, role, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, m.ID, m.ProfileID, string(m.Role), m.Content).Scan(&m.CreatedAt)
	return errors.Wrap(err, "insert chat message")
}

// ListMessages returns the profile's own messages together with every
// assistant and system message, oldest first. A nil profile sees only the
// latter.
func (r *PostgresRepository) ListMessages(ctx context.Context, profileID *uuid.UUID, limit, offset int) ([]domain.ChatMessage, error) {
	messages := []domain.ChatMessage{}
	err := r.DB.SelectContext(ctx, &messages, `
		SELECT id, profile_id, role, content, created_at
		FROM chat_messages
		WHERE role IN ('ASSISTANT', 'SYSTEM') OR profile_id = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3
	`, profileID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "list chat messages")
	}
	return messages, nil
}
