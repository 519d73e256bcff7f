package service

import (
	"context"

	"resort-concierge/auth"
	"resort-concierge/chat-svc/internal/domain"

	"github.com/google/uuid"
)

type ChatServiceInterface interface {
	Send(ctx context.Context, identity *auth.Identity, content string) (*domain.ChatMessage, error)
	List(ctx context.Context, identity *auth.Identity, limit, offset int) ([]domain.ChatMessage, error)
}

type MessageRepository interface {
	InsertMessage(ctx context.Context, m *domain.ChatMessage) error
	ListMessages(ctx context.Context, profileID *uuid.UUID, limit, offset int) ([]domain.ChatMessage, error)
}

type ProfileResolver interface {
	Resolve(ctx context.Context, identity *auth.Identity) (*auth.Profile, error)
	Lookup(ctx context.Context, identity *auth.Identity) (*auth.Profile, error)
}

type SendThrottle interface {
	Allow(ctx context.Context, profileID uuid.UUID) (bool, error)
}

var _ ChatServiceInterface = (*ChatService)(nil)
